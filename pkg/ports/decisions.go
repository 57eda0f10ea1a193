package ports

import "github.com/aretw0/campaignguide/pkg/domain"

// CampaignState is the persisted decision store of one campaign.
// Every key is namespaced by an encoded scenario id. A walk treats it as an
// immutable snapshot; implementations need not be safe for concurrent writes
// during a walk.
type CampaignState interface {
	StartedScenario(encodedScenarioID string) bool
	// ScenarioEntries returns the decisions recorded for one scenario, oldest first.
	ScenarioEntries(id domain.ScenarioID) []domain.Entry
	// LinkedEntries returns decisions received from linked campaigns.
	LinkedEntries() []domain.Entry
	// SideScenario returns the side scenario inserted after a scenario.
	SideScenario(encodedScenarioID string) (domain.SideScenarioEntry, bool)
	// SideScenarioEmbarkData returns the travel record that leads into a scenario.
	SideScenarioEmbarkData(scenarioID string) (domain.EmbarkData, bool)
	// CloseOnUndo reports whether undoing the scenario's last decision un-starts it.
	CloseOnUndo(encodedScenarioID string) bool

	Choice(id, scenarioID string) (int, bool)
	SetChoice(id string, value int, scenarioID string)
	Text(id, scenarioID string) (string, bool)
	SetText(id, value, scenarioID, inputID string)
	Decision(id, scenarioID string) (bool, bool)
	SetDecision(id string, value bool, scenarioID string)
	Count(id, scenarioID string) (int, bool)
	SetCount(id string, value int, scenarioID string)
	NumberChoices(id, scenarioID string) (domain.NumberChoices, *domain.DeckEdits, bool)
	SetNumberChoices(id string, value domain.NumberChoices, edits *domain.DeckEdits, scenarioID string)
	StringChoices(id, scenarioID string) (domain.StringChoices, bool)
	SetStringChoices(id string, value domain.StringChoices, scenarioID string)
	Supplies(id, scenarioID string) (domain.SupplyCounts, bool)
	SetSupplies(id string, value domain.SupplyCounts, scenarioID string)
	CampaignLink(side domain.LinkSide, id, scenarioID string) (string, bool)
	SetCampaignLink(id, decision, scenarioID string)
	InterScenarioInvestigatorData(scenarioID string) (domain.InvestigatorTraumaData, bool)
	InterScenarioCampaignLogEntries(scenarioID string) ([]string, bool)
	ScenarioEmbarkData(scenarioID string) (domain.EmbarkData, bool)
	ScenarioArriveData(scenarioID string) (domain.EmbarkData, bool)

	// Undo removes the newest decision recorded for the scenario.
	Undo(scenarioID string)
}

// ScenarioState is CampaignState with the scenario namespace curried away.
// It is what a StepExecutor sees while running one scenario.
type ScenarioState interface {
	ScenarioID() string

	Choice(id string) (int, bool)
	SetChoice(id string, value int)
	Text(id string) (string, bool)
	SetText(id, value, inputID string)
	Decision(id string) (bool, bool)
	SetDecision(id string, value bool)
	Count(id string) (int, bool)
	SetCount(id string, value int)
	NumberChoices(id string) (domain.NumberChoices, bool)
	NumberAndDeckChoices(id string) (domain.NumberChoices, *domain.DeckEdits, bool)
	SetNumberChoices(id string, value domain.NumberChoices, edits *domain.DeckEdits)
	StringChoices(id string) (domain.StringChoices, bool)
	SetStringChoices(id string, value domain.StringChoices)
	Supplies(id string) (domain.SupplyCounts, bool)
	SetSupplies(id string, value domain.SupplyCounts)
	CampaignLink(side domain.LinkSide, id string) (string, bool)
	SetCampaignLink(id, decision string)
	InterScenarioInvestigatorData() (domain.InvestigatorTraumaData, bool)
	InterScenarioCampaignLogEntries() ([]string, bool)
	EmbarkData() (domain.EmbarkData, bool)
	ArriveData() (domain.EmbarkData, bool)
	Undo()
}
