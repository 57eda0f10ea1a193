package runtime_test

import (
	"sync"

	"github.com/aretw0/campaignguide/internal/runtime"
	"github.com/aretw0/campaignguide/pkg/domain"
	"github.com/aretw0/campaignguide/pkg/dsl"
	"github.com/aretw0/campaignguide/pkg/logbook"
	"github.com/aretw0/campaignguide/pkg/ports"
)

// countingExecutor records how often each scenario script runs.
type countingExecutor struct {
	mu    sync.Mutex
	inner ports.StepExecutor
	calls map[string]int
}

func newCountingExecutor() *countingExecutor {
	return &countingExecutor{inner: logbook.NewExecutor(), calls: map[string]int{}}
}

func (c *countingExecutor) SetupSteps(state ports.ScenarioState, un domain.UnprocessedScenario, log domain.CampaignLog, standalone bool) (domain.ExecutedScenario, error) {
	c.mu.Lock()
	c.calls[un.ID.EncodedScenarioID]++
	c.mu.Unlock()
	return c.inner.SetupSteps(state, un, log, standalone)
}

func (c *countingExecutor) total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, v := range c.calls {
		n += v
	}
	return n
}

type panickingExecutor struct{}

func (panickingExecutor) SetupSteps(ports.ScenarioState, domain.UnprocessedScenario, domain.CampaignLog, bool) (domain.ExecutedScenario, error) {
	panic("boom")
}

// fakeLog is a hand-set campaign log for navigation tests.
type fakeLog struct {
	scenarioID string
	next       string
	result     domain.CampaignResult
	ids        []string
	statuses   map[string]domain.LogScenarioStatus
}

func (f fakeLog) ScenarioID() string                                { return f.scenarioID }
func (f fakeLog) NextScenarioID() string                            { return f.next }
func (f fakeLog) Result() domain.CampaignResult                     { return f.result }
func (f fakeLog) ScenarioIDs() []string                             { return f.ids }
func (f fakeLog) ScenarioStatus(id string) domain.LogScenarioStatus { return f.statuses[id] }

// nightCampaign has a setup script and three scenarios. Resolution 1 of
// "a" loses the campaign; "c" is an epilogue.
func nightCampaign() *dsl.Builder {
	b := dsl.New("night").Name("Night of the Zealot")
	b.Setup("prologue").Step(domain.GenericStep{ID: "prologue", Effects: []domain.Effect{
		domain.CampaignLogEffect{Section: "campaign_notes", ID: "begun"},
	}})
	b.Section("campaign_notes", "Campaign Notes", domain.LogSectionText)
	b.Rule("r_zeta", "Zeta").Rule("r_alpha", "alpha")

	b.Scenario("a").Name("The Gathering").Rule("r_emile", "Émile").
		Define(domain.GenericStep{ID: "lost", Effects: []domain.Effect{
			domain.CampaignDataEffect{Setting: domain.SettingResult, Value: string(domain.ResultLose)},
		}}).
		Play(
			domain.ResolutionBranch{ID: "win"},
			domain.ResolutionBranch{ID: "lose", Steps: []string{"lost"}},
		)
	b.Scenario("b").Name("The Midnight Masks").Play()
	b.Scenario("c").Name("Epilogue").Type(domain.ScenarioTypeEpilogue).Play()
	b.Side("rougarou").Name("The Curse of the Rougarou").Main("a").Play()
	return b
}

func newGuide(content domain.Content, executor ports.StepExecutor, opts ...runtime.Option) *runtime.Guide {
	return runtime.NewGuide(content, executor, logbook.Factory{}, opts...)
}

func statuses(c *domain.ProcessedCampaign) []string {
	var out []string
	for _, s := range c.Scenarios {
		out = append(out, s.ID.EncodedScenarioID+":"+string(s.Status))
	}
	return out
}

func undoable(c *domain.ProcessedCampaign) []string {
	var out []string
	for _, s := range c.Scenarios {
		if s.CanUndo {
			out = append(out, s.ID.EncodedScenarioID)
		}
	}
	return out
}
