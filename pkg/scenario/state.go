package scenario

import (
	"github.com/aretw0/campaignguide/pkg/domain"
	"github.com/aretw0/campaignguide/pkg/ports"
)

var _ ports.ScenarioState = (*State)(nil)

// State scopes a CampaignState to one encoded scenario id.
type State struct {
	scenarioID string
	campaign   ports.CampaignState
}

// NewState binds scenarioID to the given campaign state.
func NewState(scenarioID string, campaign ports.CampaignState) *State {
	return &State{scenarioID: scenarioID, campaign: campaign}
}

// ScenarioID returns the encoded scenario id this view is bound to.
func (s *State) ScenarioID() string {
	return s.scenarioID
}

// Campaign returns the underlying campaign state.
func (s *State) Campaign() ports.CampaignState {
	return s.campaign
}

func (s *State) Choice(id string) (int, bool) {
	return s.campaign.Choice(id, s.scenarioID)
}

func (s *State) SetChoice(id string, value int) {
	s.campaign.SetChoice(id, value, s.scenarioID)
}

func (s *State) Text(id string) (string, bool) {
	return s.campaign.Text(id, s.scenarioID)
}

func (s *State) SetText(id, value, inputID string) {
	s.campaign.SetText(id, value, s.scenarioID, inputID)
}

func (s *State) Decision(id string) (bool, bool) {
	return s.campaign.Decision(id, s.scenarioID)
}

func (s *State) SetDecision(id string, value bool) {
	s.campaign.SetDecision(id, value, s.scenarioID)
}

func (s *State) Count(id string) (int, bool) {
	return s.campaign.Count(id, s.scenarioID)
}

func (s *State) SetCount(id string, value int) {
	s.campaign.SetCount(id, value, s.scenarioID)
}

// NumberChoices returns only the chosen numbers, dropping any deferred deck edits.
func (s *State) NumberChoices(id string) (domain.NumberChoices, bool) {
	choices, _, ok := s.campaign.NumberChoices(id, s.scenarioID)
	return choices, ok
}

// NumberAndDeckChoices returns the chosen numbers together with deferred deck edits.
func (s *State) NumberAndDeckChoices(id string) (domain.NumberChoices, *domain.DeckEdits, bool) {
	return s.campaign.NumberChoices(id, s.scenarioID)
}

func (s *State) SetNumberChoices(id string, value domain.NumberChoices, edits *domain.DeckEdits) {
	s.campaign.SetNumberChoices(id, value, edits, s.scenarioID)
}

func (s *State) StringChoices(id string) (domain.StringChoices, bool) {
	return s.campaign.StringChoices(id, s.scenarioID)
}

func (s *State) SetStringChoices(id string, value domain.StringChoices) {
	s.campaign.SetStringChoices(id, value, s.scenarioID)
}

func (s *State) Supplies(id string) (domain.SupplyCounts, bool) {
	return s.campaign.Supplies(id, s.scenarioID)
}

func (s *State) SetSupplies(id string, value domain.SupplyCounts) {
	s.campaign.SetSupplies(id, value, s.scenarioID)
}

func (s *State) CampaignLink(side domain.LinkSide, id string) (string, bool) {
	return s.campaign.CampaignLink(side, id, s.scenarioID)
}

func (s *State) SetCampaignLink(id, decision string) {
	s.campaign.SetCampaignLink(id, decision, s.scenarioID)
}

func (s *State) InterScenarioInvestigatorData() (domain.InvestigatorTraumaData, bool) {
	return s.campaign.InterScenarioInvestigatorData(s.scenarioID)
}

func (s *State) InterScenarioCampaignLogEntries() ([]string, bool) {
	return s.campaign.InterScenarioCampaignLogEntries(s.scenarioID)
}

func (s *State) EmbarkData() (domain.EmbarkData, bool) {
	return s.campaign.ScenarioEmbarkData(s.scenarioID)
}

func (s *State) ArriveData() (domain.EmbarkData, bool) {
	return s.campaign.ScenarioArriveData(s.scenarioID)
}

func (s *State) Undo() {
	s.campaign.Undo(s.scenarioID)
}
