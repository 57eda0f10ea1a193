package runtime

import (
	"fmt"
	"slices"

	"github.com/aretw0/campaignguide/pkg/domain"
)

const victoryDisplayText = "Each investigator earns experience equal to the Victory X value of each card in the victory display."

// CustomScenario builds the script of a player-defined side scenario:
// pay the XP cost, the campaign's scenario setup, play, end-of-scenario
// status, earn XP from the victory display, upgrade decks, the campaign's
// side scenario resolution, and proceed.
func (g *Guide) CustomScenario(entry domain.SideScenarioEntry) *domain.Scenario {
	setup := []string{domain.SpendXPCostStepID}
	setup = append(setup, g.ScenarioSetupStepIDs()...)
	setup = append(setup,
		domain.PlayScenarioStepID,
		domain.EndOfScenarioStatusStepID,
		domain.EarnXPStepID,
		domain.UpgradeDecksStepID,
	)
	setup = append(setup, g.SideScenarioResolutionStepIDs()...)
	setup = append(setup, domain.ProceedStepID)

	return &domain.Scenario{
		ID:           entry.Scenario,
		Type:         domain.ScenarioTypeSide,
		ScenarioName: entry.Name,
		FullName:     entry.Name,
		XPCost:       entry.XPCost,
		Setup:        setup,
		Steps: []domain.Step{
			domain.InvestigatorStatusStep(domain.EndOfScenarioStatusStepID),
			domain.InputStep{
				ID:   domain.EarnXPStepID,
				Text: victoryDisplayText,
				Input: domain.CounterInput{
					Text:    "Victory display:",
					Effects: []domain.Effect{domain.EarnXPEffect{Investigator: domain.AllInvestigators}},
				},
			},
			domain.InputStep{
				ID:    domain.PlayScenarioStepID,
				Input: domain.PlayScenarioInput{NoResolutions: true},
			},
			domain.GenericStep{
				ID:   domain.SpendXPCostStepID,
				Text: spendXPText(entry.XPCost),
				Effects: []domain.Effect{domain.EarnXPEffect{
					Investigator:     domain.AllInvestigators,
					Bonus:            -entry.XPCost,
					SideScenarioCost: true,
				}},
			},
		},
	}
}

func spendXPText(cost int) string {
	if cost == 1 {
		return "Each investigator pays 1 experience point to play this scenario."
	}
	return fmt.Sprintf("Each investigator pays %d experience points to play this scenario.", cost)
}

// InsertCustomPlayScenarioStep returns a copy of scenario carrying the
// campaign's side scenario steps. When both the campaign block and the
// scenario define a play_scenario input step, the two are merged into one
// whose branches and campaign log triggers list the campaign's first.
// Otherwise the campaign block is prepended as is.
func (g *Guide) InsertCustomPlayScenarioStep(scenario *domain.Scenario) *domain.Scenario {
	campaignSteps := g.campaign.Campaign.SideScenarioSteps
	out := *scenario

	campaignPlay, campaignOK := playScenarioInput(campaignSteps)
	scenarioPlay, scenarioOK := playScenarioInput(scenario.Steps)
	if !campaignOK || !scenarioOK {
		out.Steps = append(slices.Clone(campaignSteps), scenario.Steps...)
		return &out
	}

	steps := make([]domain.Step, 0, len(campaignSteps)+len(scenario.Steps))
	for _, step := range campaignSteps {
		if step.StepID() != domain.PlayScenarioStepID {
			steps = append(steps, step)
		}
	}
	for _, step := range scenario.Steps {
		if step.StepID() != domain.PlayScenarioStepID {
			steps = append(steps, step)
		}
	}
	steps = append(steps, domain.InputStep{
		ID: domain.PlayScenarioStepID,
		Input: domain.PlayScenarioInput{
			NoResolutions: scenarioPlay.NoResolutions,
			Branches:      concat(campaignPlay.Branches, scenarioPlay.Branches),
			CampaignLog:   concat(campaignPlay.CampaignLog, scenarioPlay.CampaignLog),
		},
	})
	out.Steps = steps
	return &out
}

// playScenarioInput finds the play_scenario step and reports whether it is
// an input step prompting for a play_scenario input.
func playScenarioInput(steps []domain.Step) (domain.PlayScenarioInput, bool) {
	for _, step := range steps {
		if step.StepID() != domain.PlayScenarioStepID {
			continue
		}
		input, ok := step.(domain.InputStep)
		if !ok {
			return domain.PlayScenarioInput{}, false
		}
		play, ok := input.Input.(domain.PlayScenarioInput)
		return play, ok
	}
	return domain.PlayScenarioInput{}, false
}

func concat[T any](a, b []T) []T {
	if len(a)+len(b) == 0 {
		return nil
	}
	out := make([]T, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
