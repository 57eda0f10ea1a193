package dsl

import (
	"fmt"

	"github.com/aretw0/campaignguide/pkg/domain"
)

// ScenarioBuilder provides a fluent API for configuring a scenario.
type ScenarioBuilder struct {
	scenario domain.Scenario
	err      error
}

func newScenario(id string, kind domain.ScenarioType) *ScenarioBuilder {
	return &ScenarioBuilder{scenario: domain.Scenario{
		ID:           id,
		Type:         kind,
		ScenarioName: id,
		FullName:     id,
	}}
}

// Name sets both the short and the full display name.
func (s *ScenarioBuilder) Name(name string) *ScenarioBuilder {
	s.scenario.ScenarioName = name
	s.scenario.FullName = name
	return s
}

// Type overrides the scenario type.
func (s *ScenarioBuilder) Type(kind domain.ScenarioType) *ScenarioBuilder {
	s.scenario.Type = kind
	return s
}

// Main attaches the scenario to a parent scenario.
func (s *ScenarioBuilder) Main(scenarioID string) *ScenarioBuilder {
	s.scenario.MainScenarioID = scenarioID
	return s
}

// XPCost sets the experience cost of a side scenario.
func (s *ScenarioBuilder) XPCost(cost int) *ScenarioBuilder {
	s.scenario.XPCost = cost
	return s
}

// Rule adds a scenario rule.
func (s *ScenarioBuilder) Rule(id, title string) *ScenarioBuilder {
	s.scenario.Rules = append(s.scenario.Rules, domain.Rule{ID: id, Title: title})
	return s
}

// Then appends step ids to the setup script without defining them.
// Use it for fixed steps and for steps defined with Define.
func (s *ScenarioBuilder) Then(ids ...string) *ScenarioBuilder {
	s.scenario.Setup = append(s.scenario.Setup, ids...)
	return s
}

// Define adds step definitions without scheduling them.
func (s *ScenarioBuilder) Define(steps ...domain.Step) *ScenarioBuilder {
	for _, step := range steps {
		if _, exists := s.scenario.Step(step.StepID()); exists {
			s.err = fmt.Errorf("duplicate step %q", step.StepID())
			return s
		}
		s.scenario.Steps = append(s.scenario.Steps, step)
	}
	return s
}

// Step defines a step and schedules it.
func (s *ScenarioBuilder) Step(step domain.Step) *ScenarioBuilder {
	return s.Define(step).Then(step.StepID())
}

// Do defines and schedules a generic step applying effects.
func (s *ScenarioBuilder) Do(id string, effects ...domain.Effect) *ScenarioBuilder {
	return s.Step(domain.GenericStep{ID: id, Effects: effects})
}

// Ask defines and schedules an input step.
func (s *ScenarioBuilder) Ask(id string, input domain.Input) *ScenarioBuilder {
	return s.Step(domain.InputStep{ID: id, Input: input})
}

// Play defines and schedules the play_scenario step. Without branches the
// step only asks whether the scenario was played.
func (s *ScenarioBuilder) Play(branches ...domain.ResolutionBranch) *ScenarioBuilder {
	return s.PlayInput(domain.PlayScenarioInput{
		NoResolutions: len(branches) == 0,
		Branches:      branches,
	})
}

// PlayInput is Play with full control over the input.
func (s *ScenarioBuilder) PlayInput(input domain.PlayScenarioInput) *ScenarioBuilder {
	return s.Ask(domain.PlayScenarioStepID, input)
}
