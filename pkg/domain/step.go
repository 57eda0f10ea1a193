package domain

// StepType is the discriminator of the Step sum type.
type StepType string

const (
	StepTypeGeneric StepType = "generic"
	StepTypeInput   StepType = "input"
	StepTypeBranch  StepType = "branch"
)

// Step is one node of a scenario script.
// The set of implementations is closed: GenericStep, InputStep and BranchStep.
type Step interface {
	StepID() string
	StepType() StepType
	isStep()
}

// GenericStep shows narration and applies its effects unconditionally.
type GenericStep struct {
	ID      string   `json:"id"`
	Title   string   `json:"title,omitempty"`
	Text    string   `json:"text,omitempty"`
	Effects []Effect `json:"effects,omitempty"`
}

// InputStep halts the script until the player records the decision it prompts for.
type InputStep struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
	Text  string `json:"text,omitempty"`
	Input Input  `json:"input"`
}

// BranchStep continues with Steps when the campaign log holds Section/Entry,
// and with ElseSteps otherwise.
type BranchStep struct {
	ID        string   `json:"id"`
	Text      string   `json:"text,omitempty"`
	Section   string   `json:"section"`
	Entry     string   `json:"entry"`
	Steps     []string `json:"steps,omitempty"`
	ElseSteps []string `json:"else_steps,omitempty"`
}

func (s GenericStep) StepID() string     { return s.ID }
func (s GenericStep) StepType() StepType { return StepTypeGeneric }
func (GenericStep) isStep()              {}

func (s InputStep) StepID() string     { return s.ID }
func (s InputStep) StepType() StepType { return StepTypeInput }
func (InputStep) isStep()              {}

func (s BranchStep) StepID() string     { return s.ID }
func (s BranchStep) StepType() StepType { return StepTypeBranch }
func (BranchStep) isStep()              {}

// InputType is the discriminator of the Input sum type.
type InputType string

const (
	InputTypePlayScenario       InputType = "play_scenario"
	InputTypeCounter            InputType = "counter"
	InputTypeChooseOne          InputType = "choose_one"
	InputTypeInvestigatorStatus InputType = "investigator_status"
	InputTypeUpgradeDecks       InputType = "upgrade_decks"
	InputTypeProceed            InputType = "proceed"
)

// Input is the prompt of an InputStep.
type Input interface {
	InputType() InputType
	isInput()
}

// ResolutionBranch is one resolution the player may pick after playing a scenario.
type ResolutionBranch struct {
	ID    string   `json:"id"`
	Text  string   `json:"text,omitempty"`
	Steps []string `json:"steps,omitempty"`
}

// CampaignLogTrigger records log effects the player may flag while playing.
type CampaignLogTrigger struct {
	ID      string   `json:"id"`
	Text    string   `json:"text,omitempty"`
	Effects []Effect `json:"effects,omitempty"`
}

// PlayScenarioInput asks the player to play the scenario and report its resolution.
type PlayScenarioInput struct {
	NoResolutions bool                 `json:"no_resolutions,omitempty"`
	Branches      []ResolutionBranch   `json:"branches,omitempty"`
	CampaignLog   []CampaignLogTrigger `json:"campaign_log,omitempty"`
}

// CounterInput asks for a number; its effects scale with the recorded count.
type CounterInput struct {
	Text    string   `json:"text,omitempty"`
	Max     int      `json:"max,omitempty"`
	Effects []Effect `json:"effects,omitempty"`
}

// Choice is one option of a ChooseOneInput.
type Choice struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Effects []Effect `json:"effects,omitempty"`
	Steps   []string `json:"steps,omitempty"`
}

// ChooseOneInput asks the player to pick exactly one choice.
type ChooseOneInput struct {
	Choices []Choice `json:"choices"`
}

// InvestigatorStatusInput records which investigators were killed or insane.
type InvestigatorStatusInput struct{}

// UpgradeDecksInput asks the player to spend experience on their decks.
type UpgradeDecksInput struct{}

// ProceedInput asks the player to confirm the scenario is over.
type ProceedInput struct {
	Text string `json:"text,omitempty"`
}

func (PlayScenarioInput) InputType() InputType       { return InputTypePlayScenario }
func (CounterInput) InputType() InputType            { return InputTypeCounter }
func (ChooseOneInput) InputType() InputType          { return InputTypeChooseOne }
func (InvestigatorStatusInput) InputType() InputType { return InputTypeInvestigatorStatus }
func (UpgradeDecksInput) InputType() InputType       { return InputTypeUpgradeDecks }
func (ProceedInput) InputType() InputType            { return InputTypeProceed }

func (PlayScenarioInput) isInput()       {}
func (CounterInput) isInput()            {}
func (ChooseOneInput) isInput()          {}
func (InvestigatorStatusInput) isInput() {}
func (UpgradeDecksInput) isInput()       {}
func (ProceedInput) isInput()            {}

// EffectType is the discriminator of the Effect sum type.
type EffectType string

const (
	EffectTypeEarnXP       EffectType = "earn_xp"
	EffectTypeCampaignLog  EffectType = "campaign_log"
	EffectTypeCampaignData EffectType = "campaign_data"
	EffectTypeTrauma       EffectType = "trauma"
)

// Effect mutates the campaign log when its step resolves.
type Effect interface {
	EffectType() EffectType
	isEffect()
}

// AllInvestigators targets every investigator of the campaign.
const AllInvestigators = "all"

// EarnXPEffect grants (or, with a negative bonus, charges) experience.
type EarnXPEffect struct {
	Investigator     string `json:"investigator"`
	Bonus            int    `json:"bonus,omitempty"`
	SideScenarioCost bool   `json:"side_scenario_cost,omitempty"`
}

// CampaignLogEffect records, or crosses out, an entry of a log section.
type CampaignLogEffect struct {
	Section string `json:"section"`
	ID      string `json:"id"`
	Remove  bool   `json:"remove,omitempty"`
}

// CampaignSetting names the campaign datum a CampaignDataEffect changes.
type CampaignSetting string

const (
	SettingNextScenario   CampaignSetting = "next_scenario"
	SettingResult         CampaignSetting = "result"
	SettingScenarioStatus CampaignSetting = "scenario_status"
	SettingScenarios      CampaignSetting = "scenarios"
)

// CampaignDataEffect changes campaign-level routing data.
type CampaignDataEffect struct {
	Setting    CampaignSetting `json:"setting"`
	Value      string          `json:"value,omitempty"`
	ScenarioID string          `json:"scenario_id,omitempty"`
	Scenarios  []string        `json:"scenarios,omitempty"`
}

// TraumaEffect adds trauma to an investigator.
type TraumaEffect struct {
	Investigator string `json:"investigator"`
	Physical     int    `json:"physical,omitempty"`
	Mental       int    `json:"mental,omitempty"`
	Killed       bool   `json:"killed,omitempty"`
	Insane       bool   `json:"insane,omitempty"`
}

func (EarnXPEffect) EffectType() EffectType       { return EffectTypeEarnXP }
func (CampaignLogEffect) EffectType() EffectType  { return EffectTypeCampaignLog }
func (CampaignDataEffect) EffectType() EffectType { return EffectTypeCampaignData }
func (TraumaEffect) EffectType() EffectType       { return EffectTypeTrauma }

func (EarnXPEffect) isEffect()       {}
func (CampaignLogEffect) isEffect()  {}
func (CampaignDataEffect) isEffect() {}
func (TraumaEffect) isEffect()       {}
