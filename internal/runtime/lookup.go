package runtime

import (
	"github.com/aretw0/campaignguide/pkg/domain"
	"github.com/aretw0/campaignguide/pkg/ports"
)

const campaignSetupName = "Campaign Setup"

// FindScenario resolves an encoded scenario id to its definition.
// The campaign setup sentinel resolves to a synthesized interlude wrapping
// the campaign's own setup script. Main scenarios shadow side scenarios.
// An id neither pool knows yields a *domain.CampaignUpdateRequiredError.
func (g *Guide) FindScenario(encodedScenarioID string) (domain.UnprocessedScenario, error) {
	if encodedScenarioID == domain.CampaignSetupID {
		return domain.UnprocessedScenario{
			ID:       domain.NewScenarioID(domain.CampaignSetupID),
			Scenario: g.setupScenario(),
		}, nil
	}
	id, err := domain.ParseScenarioID(encodedScenarioID)
	if err != nil {
		return domain.UnprocessedScenario{}, err
	}
	if s := findIn(g.campaign.Scenarios, id.ScenarioID); s != nil {
		return domain.UnprocessedScenario{ID: id, Scenario: s}, nil
	}
	if s := findIn(g.sideCampaign.Scenarios, id.ScenarioID); s != nil {
		return domain.UnprocessedScenario{ID: id, Scenario: s, Side: true}, nil
	}
	return domain.UnprocessedScenario{}, &domain.CampaignUpdateRequiredError{ScenarioID: encodedScenarioID}
}

func (g *Guide) setupScenario() *domain.Scenario {
	return &domain.Scenario{
		ID:           domain.CampaignSetupID,
		Type:         domain.ScenarioTypeInterlude,
		Icon:         g.campaign.Campaign.ID,
		ScenarioName: campaignSetupName,
		FullName:     campaignSetupName,
		Setup:        g.campaign.Campaign.Setup,
		Steps:        g.campaign.Campaign.Steps,
	}
}

// NextScenario returns the scenario that follows the log's current position.
// The first matching rule wins:
//  1. no scenario written yet: the campaign setup sentinel
//  2. a side scenario recorded after the current one
//  3. a successor pinned by the log
//  4. the next id of the play order, skipped ids filtered unless includeSkipped
//
// The boolean is false when the log is at the end of the play order.
func (g *Guide) NextScenario(state ports.CampaignState, log domain.CampaignLog, includeSkipped bool) (domain.UnprocessedScenario, bool, error) {
	if log.ScenarioID() == "" {
		un, err := g.FindScenario(domain.CampaignSetupID)
		return un, err == nil, err
	}
	current, err := domain.ParseScenarioID(log.ScenarioID())
	if err != nil {
		return domain.UnprocessedScenario{}, false, err
	}

	if entry, ok := state.SideScenario(current.EncodedScenarioID); ok {
		un, err := g.sideScenario(entry)
		return un, err == nil, err
	}

	if next := log.NextScenarioID(); next != "" {
		un, err := g.FindScenario(next)
		return un, err == nil, err
	}

	ids := g.allScenarioIDs(log.ScenarioIDs())
	filtered := ids[:0:0]
	for _, id := range ids {
		if includeSkipped || log.ScenarioStatus(id) != domain.LogStatusSkipped {
			filtered = append(filtered, id)
		}
	}
	for i, id := range filtered {
		if id != current.ScenarioID {
			continue
		}
		if i+1 >= len(filtered) {
			break
		}
		un, err := g.FindScenario(filtered[i+1])
		return un, err == nil, err
	}
	return domain.UnprocessedScenario{}, false, nil
}

// sideScenario resolves a recorded side scenario entry and splices the
// campaign's side scenario steps into it.
func (g *Guide) sideScenario(entry domain.SideScenarioEntry) (domain.UnprocessedScenario, error) {
	id, err := domain.ParseScenarioID(entry.Scenario)
	if err != nil {
		return domain.UnprocessedScenario{}, err
	}
	var scenario *domain.Scenario
	if entry.Type == domain.SideScenarioCustom {
		scenario = g.CustomScenario(entry)
	} else {
		scenario = findIn(g.sideCampaign.Scenarios, id.ScenarioID)
	}
	if scenario == nil {
		return domain.UnprocessedScenario{}, &domain.CampaignUpdateRequiredError{ScenarioID: entry.Scenario}
	}
	return domain.UnprocessedScenario{
		ID:       id,
		Scenario: g.InsertCustomPlayScenarioStep(scenario),
		Side:     true,
	}, nil
}

// allScenarioIDs is the play order used for linear navigation: the setup
// sentinel, then the log's override list or the authored list.
func (g *Guide) allScenarioIDs(override []string) []string {
	ids := override
	if ids == nil {
		ids = g.campaign.Campaign.Scenarios
	}
	return append([]string{domain.CampaignSetupID}, ids...)
}

// PrologueScenarioID is the first scenario of the given play order, or of
// the authored one when scenarios is nil.
func (g *Guide) PrologueScenarioID(scenarios []string) string {
	if scenarios == nil {
		scenarios = g.campaign.Campaign.Scenarios
	}
	if len(scenarios) == 0 {
		return ""
	}
	return scenarios[0]
}

// NextScenarioName returns the full name of the scenario a player would be
// routed to next, skipped scenarios excluded.
func (g *Guide) NextScenarioName(state ports.CampaignState, log domain.CampaignLog) (string, bool, error) {
	un, ok, err := g.NextScenario(state, log, false)
	if err != nil || !ok {
		return "", false, err
	}
	return un.Scenario.FullName, true, nil
}

// FindScenarioData returns a main campaign scenario by plain id.
func (g *Guide) FindScenarioData(id string) (*domain.Scenario, bool) {
	s := findIn(g.campaign.Scenarios, id)
	return s, s != nil
}

// ScenarioName returns the short name of a main campaign scenario.
func (g *Guide) ScenarioName(id string) (string, bool) {
	s := findIn(g.campaign.Scenarios, id)
	if s == nil {
		return "", false
	}
	return s.ScenarioName, true
}

// FullScenarioName returns the full name of a main campaign scenario,
// accepting replay-encoded ids.
func (g *Guide) FullScenarioName(encodedScenarioID string) (string, bool) {
	id, err := domain.ParseScenarioID(encodedScenarioID)
	if err != nil {
		return "", false
	}
	s := findIn(g.campaign.Scenarios, id.ScenarioID)
	if s == nil {
		return "", false
	}
	return s.FullName, true
}
