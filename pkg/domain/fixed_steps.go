package domain

// Step ids that every campaign can reference without defining them.
const (
	PlayScenarioStepID        = "$play_scenario"
	ProceedStepID             = "$proceed"
	UpgradeDecksStepID        = "$upgrade_decks"
	EndOfScenarioStatusStepID = "$end_of_scenario_status"
	EarnXPStepID              = "$earn_xp"
	SpendXPCostStepID         = "spend_xp_cost"
)

// InvestigatorStatusStep builds the step that records killed and insane investigators.
func InvestigatorStatusStep(id string) Step {
	return InputStep{
		ID:    id,
		Text:  "Record which investigators were killed or driven insane.",
		Input: InvestigatorStatusInput{},
	}
}

// FixedStep resolves a built-in step that scenarios may reference without defining.
func FixedStep(id string) (Step, bool) {
	switch id {
	case UpgradeDecksStepID:
		return InputStep{
			ID:    id,
			Text:  "Each investigator may spend experience to upgrade their deck.",
			Input: UpgradeDecksInput{},
		}, true
	case ProceedStepID:
		return InputStep{
			ID:    id,
			Input: ProceedInput{Text: "Proceed to the next scenario."},
		}, true
	case EndOfScenarioStatusStepID:
		return InvestigatorStatusStep(id), true
	}
	return nil, false
}
