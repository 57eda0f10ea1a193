package domain

import "encoding/json"

// The members of every sealed sum type marshal with a "type" discriminator,
// the same key content documents use to select the variant.

func (g GenericStep) MarshalJSON() ([]byte, error) {
	type plain GenericStep
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{string(StepTypeGeneric), plain(g)})
}

func (i InputStep) MarshalJSON() ([]byte, error) {
	type plain InputStep
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{string(StepTypeInput), plain(i)})
}

func (b BranchStep) MarshalJSON() ([]byte, error) {
	type plain BranchStep
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{string(StepTypeBranch), plain(b)})
}

func (p PlayScenarioInput) MarshalJSON() ([]byte, error) {
	type plain PlayScenarioInput
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{string(InputTypePlayScenario), plain(p)})
}

func (c CounterInput) MarshalJSON() ([]byte, error) {
	type plain CounterInput
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{string(InputTypeCounter), plain(c)})
}

func (c ChooseOneInput) MarshalJSON() ([]byte, error) {
	type plain ChooseOneInput
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{string(InputTypeChooseOne), plain(c)})
}

func (i InvestigatorStatusInput) MarshalJSON() ([]byte, error) {
	type plain InvestigatorStatusInput
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{string(InputTypeInvestigatorStatus), plain(i)})
}

func (u UpgradeDecksInput) MarshalJSON() ([]byte, error) {
	type plain UpgradeDecksInput
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{string(InputTypeUpgradeDecks), plain(u)})
}

func (p ProceedInput) MarshalJSON() ([]byte, error) {
	type plain ProceedInput
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{string(InputTypeProceed), plain(p)})
}

func (e EarnXPEffect) MarshalJSON() ([]byte, error) {
	type plain EarnXPEffect
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{string(EffectTypeEarnXP), plain(e)})
}

func (c CampaignLogEffect) MarshalJSON() ([]byte, error) {
	type plain CampaignLogEffect
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{string(EffectTypeCampaignLog), plain(c)})
}

func (c CampaignDataEffect) MarshalJSON() ([]byte, error) {
	type plain CampaignDataEffect
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{string(EffectTypeCampaignData), plain(c)})
}

func (t TraumaEffect) MarshalJSON() ([]byte, error) {
	type plain TraumaEffect
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{string(EffectTypeTrauma), plain(t)})
}

func (s SectionCountEntry) MarshalJSON() ([]byte, error) {
	type plain SectionCountEntry
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{string(LogEntryTypeSectionCount), plain(s)})
}

func (c CardEntry) MarshalJSON() ([]byte, error) {
	type plain CardEntry
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{string(LogEntryTypeCard), plain(c)})
}

func (t TextEntry) MarshalJSON() ([]byte, error) {
	type plain TextEntry
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{string(LogEntryTypeText), plain(t)})
}

func (s SuppliesEntry) MarshalJSON() ([]byte, error) {
	type plain SuppliesEntry
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{string(LogEntryTypeSupplies), plain(s)})
}

func (i InvestigatorCountEntry) MarshalJSON() ([]byte, error) {
	type plain InvestigatorCountEntry
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{string(LogEntryTypeInvestigatorCount), plain(i)})
}
