package logbook

import (
	"fmt"
	"slices"

	"github.com/aretw0/campaignguide/pkg/domain"
	"github.com/aretw0/campaignguide/pkg/ports"
)

// maxSteps bounds one script run; branch steps can re-enqueue ids.
const maxSteps = 10_000

// CampaignLogChoice is the string-choices key under which a play_scenario
// step records the campaign log triggers the player flagged.
const CampaignLogChoice = "campaign_log"

var (
	_ ports.StepExecutor = (*Executor)(nil)
	_ ports.LogFactory   = Factory{}
)

// Factory seeds walks with an empty *Log.
type Factory struct{}

func (Factory) NewLog(state ports.CampaignState, standalone bool) domain.CampaignLog {
	return New(standalone)
}

// Executor runs a scenario script against a *Log.
type Executor struct{}

// NewExecutor creates a step executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// SetupSteps resolves the scenario's setup ids in order. It stops at the
// first input step whose decision is not recorded and reports InProgress.
func (x *Executor) SetupSteps(state ports.ScenarioState, un domain.UnprocessedScenario, log domain.CampaignLog, standalone bool) (domain.ExecutedScenario, error) {
	current, ok := log.(*Log)
	if !ok {
		return domain.ExecutedScenario{}, fmt.Errorf("unsupported campaign log %T", log)
	}
	encoded := un.ID.EncodedScenarioID
	current = current.enterScenario(encoded)

	queue := slices.Clone(un.Scenario.Setup)
	var steps []domain.ResolvedStep

	for n := 0; len(queue) > 0; n++ {
		if n >= maxSteps {
			return domain.ExecutedScenario{}, fmt.Errorf("scenario %s: step limit exceeded", encoded)
		}
		id := queue[0]
		queue = queue[1:]

		step, ok := un.Scenario.Step(id)
		if !ok {
			step, ok = domain.FixedStep(id)
		}
		if !ok {
			return domain.ExecutedScenario{}, fmt.Errorf("scenario %s: unknown step %q", encoded, id)
		}

		switch s := step.(type) {
		case domain.GenericStep:
			current = current.apply(s.Effects, 0)
		case domain.BranchStep:
			if current.HasEntry(s.Section, s.Entry) {
				queue = append(slices.Clone(s.Steps), queue...)
			} else {
				queue = append(slices.Clone(s.ElseSteps), queue...)
			}
		case domain.InputStep:
			next, follow, done, err := resolveInput(state, s, encoded, current)
			if err != nil {
				return domain.ExecutedScenario{}, err
			}
			if !done {
				steps = append(steps, domain.ResolvedStep{ID: id, Step: step, Pending: true})
				return domain.ExecutedScenario{InProgress: true, LatestCampaignLog: current, Steps: steps}, nil
			}
			current = next
			queue = append(follow, queue...)
		default:
			return domain.ExecutedScenario{}, fmt.Errorf("scenario %s: unsupported step %T", encoded, step)
		}
		steps = append(steps, domain.ResolvedStep{ID: id, Step: step})
	}

	if current.ScenarioStatus(encoded) != domain.LogStatusResolution {
		current = current.withStatus(encoded, domain.LogStatusCompleted)
	}
	return domain.ExecutedScenario{LatestCampaignLog: current, Steps: steps}, nil
}

// resolveInput returns the log after the input, the step ids it enqueues,
// and false when the decision has not been recorded yet.
func resolveInput(state ports.ScenarioState, step domain.InputStep, encoded string, log *Log) (*Log, []string, bool, error) {
	switch in := step.Input.(type) {
	case domain.PlayScenarioInput:
		var follow []string
		if in.NoResolutions || len(in.Branches) == 0 {
			if _, ok := state.Decision(step.ID); !ok {
				return log, nil, false, nil
			}
		} else {
			choice, ok := state.Choice(step.ID)
			if !ok {
				return log, nil, false, nil
			}
			if choice < 0 || choice >= len(in.Branches) {
				return nil, nil, false, fmt.Errorf("scenario %s: resolution %d out of range for step %q", encoded, choice, step.ID)
			}
			follow = slices.Clone(in.Branches[choice].Steps)
		}
		log = log.withStatus(encoded, domain.LogStatusResolution)
		if flagged, ok := state.StringChoices(step.ID); ok {
			for _, trigger := range in.CampaignLog {
				if slices.Contains(flagged[CampaignLogChoice], trigger.ID) {
					log = log.apply(trigger.Effects, 0)
				}
			}
		}
		return log, follow, true, nil

	case domain.CounterInput:
		count, ok := state.Count(step.ID)
		if !ok {
			return log, nil, false, nil
		}
		if in.Max > 0 && count > in.Max {
			count = in.Max
		}
		return log.apply(in.Effects, count), nil, true, nil

	case domain.ChooseOneInput:
		choice, ok := state.Choice(step.ID)
		if !ok {
			return log, nil, false, nil
		}
		if choice < 0 || choice >= len(in.Choices) {
			return nil, nil, false, fmt.Errorf("scenario %s: choice %d out of range for step %q", encoded, choice, step.ID)
		}
		picked := in.Choices[choice]
		return log.apply(picked.Effects, 0), slices.Clone(picked.Steps), true, nil

	case domain.InvestigatorStatusInput:
		status, ok := state.StringChoices(step.ID)
		if !ok {
			return log, nil, false, nil
		}
		var effects []domain.Effect
		for _, code := range status["killed"] {
			effects = append(effects, domain.TraumaEffect{Investigator: code, Killed: true})
		}
		for _, code := range status["insane"] {
			effects = append(effects, domain.TraumaEffect{Investigator: code, Insane: true})
		}
		return log.apply(effects, 0), nil, true, nil

	case domain.UpgradeDecksInput, domain.ProceedInput:
		if _, ok := state.Decision(step.ID); !ok {
			return log, nil, false, nil
		}
		return log, nil, true, nil
	}
	return nil, nil, false, fmt.Errorf("scenario %s: unsupported input %T", encoded, step.Input)
}
