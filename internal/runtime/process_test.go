package runtime_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aretw0/campaignguide/internal/runtime"
	"github.com/aretw0/campaignguide/pkg/adapters/memory"
	"github.com/aretw0/campaignguide/pkg/domain"
	"github.com/aretw0/campaignguide/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessAllScenarios_NothingStarted(t *testing.T) {
	guide := newGuide(nightCampaign().MustBuild(), newCountingExecutor())
	decisions := memory.NewDecisions("night")

	trace, err := guide.ProcessAllScenarios(context.Background(), decisions, "", nil, "en")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"$campaign_setup:playable",
		"a:locked",
		"b:locked",
		"c:locked",
	}, statuses(trace))
	for _, s := range trace.Scenarios {
		assert.Empty(t, s.Steps)
		assert.False(t, s.CanUndo)
	}
}

func TestProcessAllScenarios_FirstScenarioPlayable(t *testing.T) {
	guide := newGuide(nightCampaign().MustBuild(), newCountingExecutor())
	decisions := memory.NewDecisions("night")
	decisions.StartScenario(domain.CampaignSetupID)

	trace, err := guide.ProcessAllScenarios(context.Background(), decisions, "", nil, "en")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"$campaign_setup:completed",
		"a:playable",
		"b:locked",
		"c:locked",
	}, statuses(trace))
	assert.Equal(t, []string{domain.CampaignSetupID}, undoable(trace))

	playable, ok := trace.Playable()
	require.True(t, ok)
	assert.Equal(t, "a", playable.ID.EncodedScenarioID)
	assert.Same(t, trace.Scenarios[0].LatestCampaignLog, trace.Scenarios[1].LatestCampaignLog)
}

func TestProcessAllScenarios_LossSkipsUntilEpilogue(t *testing.T) {
	guide := newGuide(nightCampaign().MustBuild(), newCountingExecutor())
	decisions := memory.NewDecisions("night")
	decisions.StartScenario(domain.CampaignSetupID)
	decisions.StartScenario("a")
	decisions.SetChoice(domain.PlayScenarioStepID, 1, "a")

	trace, err := guide.ProcessAllScenarios(context.Background(), decisions, "", nil, "en")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"$campaign_setup:completed",
		"a:completed",
		"b:skipped",
		"c:playable",
	}, statuses(trace))
	assert.Equal(t, domain.ResultLose, trace.CampaignLog.Result())
	// The skipped entry carries the log of the scenario before it.
	assert.Same(t, trace.Scenarios[1].LatestCampaignLog, trace.Scenarios[2].LatestCampaignLog)
	assert.Equal(t, []string{"a"}, undoable(trace))
}

func TestProcessAllScenarios_StartedHoldsPlayableSlot(t *testing.T) {
	guide := newGuide(nightCampaign().MustBuild(), newCountingExecutor())
	decisions := memory.NewDecisions("night")
	decisions.StartScenario(domain.CampaignSetupID)
	decisions.StartScenario("a")

	trace, err := guide.ProcessAllScenarios(context.Background(), decisions, "", nil, "en")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"$campaign_setup:completed",
		"a:started",
		"b:locked",
		"c:locked",
	}, statuses(trace))
	_, ok := trace.Playable()
	assert.False(t, ok)

	started := trace.Scenarios[1]
	require.NotEmpty(t, started.Steps)
	assert.True(t, started.Steps[len(started.Steps)-1].Pending)
	assert.True(t, started.CloseOnUndo)
	assert.Equal(t, []string{"a"}, undoable(trace))
}

func TestProcessAllScenarios_RulesSortedByLocale(t *testing.T) {
	guide := newGuide(nightCampaign().MustBuild(), newCountingExecutor())
	decisions := memory.NewDecisions("night")
	decisions.StartScenario(domain.CampaignSetupID)
	decisions.StartScenario("a")

	trace, err := guide.ProcessAllScenarios(context.Background(), decisions, "", nil, "en")
	require.NoError(t, err)

	var titles []string
	for _, r := range trace.Scenarios[1].Rules {
		titles = append(titles, r.Title)
	}
	assert.Equal(t, []string{"alpha", "Émile", "Zeta"}, titles)
	assert.Empty(t, trace.Scenarios[2].Rules)
}

func TestProcessAllScenarios_MemoizedReuse(t *testing.T) {
	executor := newCountingExecutor()
	guide := newGuide(nightCampaign().MustBuild(), executor)
	decisions := memory.NewDecisions("night")
	decisions.StartScenario(domain.CampaignSetupID)
	decisions.StartScenario("a")
	decisions.SetChoice(domain.PlayScenarioStepID, 0, "a")
	decisions.StartScenario("b")

	first, err := guide.ProcessAllScenarios(context.Background(), decisions, "", nil, "en")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"$campaign_setup:completed",
		"a:completed",
		"b:started",
		"c:locked",
	}, statuses(first))
	assert.Equal(t, 3, executor.total())

	// Only b receives a new decision.
	decisions.SetDecision(domain.PlayScenarioStepID, true, "b")

	second, err := guide.ProcessAllScenarios(context.Background(), decisions, "", first, "en")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"$campaign_setup:completed",
		"a:completed",
		"b:completed",
		"c:playable",
	}, statuses(second))

	assert.Equal(t, 1, executor.calls[domain.CampaignSetupID])
	assert.Equal(t, 1, executor.calls["a"])
	assert.Equal(t, 2, executor.calls["b"])

	// Reused entries are the previous results, log included.
	assert.Same(t, first.Scenarios[1].LatestCampaignLog, second.Scenarios[1].LatestCampaignLog)
	assert.Equal(t, first.Scenarios[1].Inputs, second.Scenarios[1].Inputs)
	assert.Equal(t, []string{"b"}, undoable(second))
}

func TestProcessAllScenarios_ReuseIgnoresUnplayedPrevious(t *testing.T) {
	executor := newCountingExecutor()
	guide := newGuide(nightCampaign().MustBuild(), executor)
	decisions := memory.NewDecisions("night")

	first, err := guide.ProcessAllScenarios(context.Background(), decisions, "", nil, "en")
	require.NoError(t, err)
	assert.Equal(t, 0, executor.total())

	decisions.StartScenario(domain.CampaignSetupID)
	_, err = guide.ProcessAllScenarios(context.Background(), decisions, "", first, "en")
	require.NoError(t, err)
	assert.Equal(t, 1, executor.calls[domain.CampaignSetupID])
}

func TestProcessAllScenarios_LinkedEntriesInvalidateReuse(t *testing.T) {
	executor := newCountingExecutor()
	guide := newGuide(nightCampaign().MustBuild(), executor)
	decisions := memory.NewDecisions("night")
	decisions.StartScenario(domain.CampaignSetupID)

	first, err := guide.ProcessAllScenarios(context.Background(), decisions, "", nil, "en")
	require.NoError(t, err)

	decisions.Link(domain.Entry{Kind: domain.EntryCampaignLink, Scenario: "x", Step: "sent", Text: "yes"})
	second, err := guide.ProcessAllScenarios(context.Background(), decisions, "", first, "en")
	require.NoError(t, err)

	assert.Equal(t, 2, executor.calls[domain.CampaignSetupID])
	assert.Len(t, second.Scenarios[0].Inputs, 2)
}

func TestProcessAllScenarios_ChainTermination(t *testing.T) {
	const n = 6
	b := dsl.New("long")
	for i := 0; i < n; i++ {
		b.Scenario(fmt.Sprintf("s%d", i)).Play()
	}
	executor := newCountingExecutor()
	guide := newGuide(b.MustBuild(), executor)

	decisions := memory.NewDecisions("long")
	decisions.StartScenario(domain.CampaignSetupID)
	for i := 0; i < n-1; i++ {
		id := fmt.Sprintf("s%d", i)
		decisions.StartScenario(id)
		decisions.SetDecision(domain.PlayScenarioStepID, true, id)
	}

	trace, err := guide.ProcessAllScenarios(context.Background(), decisions, "", nil, "en")
	require.NoError(t, err)
	require.Len(t, trace.Scenarios, n+1)

	seen := map[string]bool{}
	for _, s := range trace.Scenarios {
		assert.False(t, seen[s.ID.EncodedScenarioID], "duplicate %s", s.ID.EncodedScenarioID)
		seen[s.ID.EncodedScenarioID] = true
	}
	last := trace.Scenarios[n]
	assert.Equal(t, fmt.Sprintf("s%d", n-1), last.ID.EncodedScenarioID)
	assert.Equal(t, domain.StatusPlayable, last.Status)
	assert.Equal(t, n, executor.total())
}

func TestProcessAllScenarios_CycleIsDetected(t *testing.T) {
	b := dsl.New("loop")
	b.Scenario("a").Play()
	b.Scenario("b").
		Do("back", domain.CampaignDataEffect{Setting: domain.SettingNextScenario, Value: "a"}).
		Play()
	guide := newGuide(b.MustBuild(), newCountingExecutor())

	decisions := memory.NewDecisions("loop")
	decisions.StartScenario(domain.CampaignSetupID)
	for _, id := range []string{"a", "b"} {
		decisions.StartScenario(id)
		decisions.SetDecision(domain.PlayScenarioStepID, true, id)
	}

	trace, err := guide.ProcessAllScenarios(context.Background(), decisions, "", nil, "en")
	assert.Nil(t, trace)
	require.ErrorIs(t, err, domain.ErrScenarioCycle)

	var cycle *domain.ScenarioCycleError
	require.True(t, errors.As(err, &cycle))
	assert.Equal(t, "a", cycle.ScenarioID)
	assert.Equal(t, []string{domain.CampaignSetupID, "a", "b", "a"}, cycle.Trace)

	var walkErr *domain.WalkError
	assert.True(t, errors.As(err, &walkErr))
}

func TestProcessAllScenarios_UnknownScenarioAborts(t *testing.T) {
	b := dsl.New("stale")
	b.Scenario("a").
		Do("jump", domain.CampaignDataEffect{Setting: domain.SettingNextScenario, Value: "from_the_future"}).
		Play()
	guide := newGuide(b.MustBuild(), newCountingExecutor())

	decisions := memory.NewDecisions("stale")
	decisions.StartScenario(domain.CampaignSetupID)
	decisions.StartScenario("a")
	decisions.SetDecision(domain.PlayScenarioStepID, true, "a")

	trace, err := guide.ProcessAllScenarios(context.Background(), decisions, "", nil, "en")
	assert.Nil(t, trace)
	assert.ErrorIs(t, err, domain.ErrCampaignUpdateRequired)

	var update *domain.CampaignUpdateRequiredError
	require.True(t, errors.As(err, &update))
	assert.Equal(t, "from_the_future", update.ScenarioID)
}

func TestProcessAllScenarios_ExecutorPanicIsContained(t *testing.T) {
	guide := newGuide(nightCampaign().MustBuild(), panickingExecutor{})
	decisions := memory.NewDecisions("night")
	decisions.StartScenario(domain.CampaignSetupID)

	trace, err := guide.ProcessAllScenarios(context.Background(), decisions, "", nil, "en")
	assert.Nil(t, trace)
	var walkErr *domain.WalkError
	require.True(t, errors.As(err, &walkErr))
	assert.ErrorContains(t, err, "panicked: boom")
}

func TestProcessAllScenarios_CanceledContext(t *testing.T) {
	guide := newGuide(nightCampaign().MustBuild(), newCountingExecutor())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	trace, err := guide.ProcessAllScenarios(ctx, memory.NewDecisions("night"), "", nil, "en")
	assert.Nil(t, trace)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcessAllScenarios_SideScenario(t *testing.T) {
	guide := newGuide(nightCampaign().MustBuild(), newCountingExecutor())
	decisions := memory.NewDecisions("night")
	decisions.StartScenario(domain.CampaignSetupID)
	decisions.StartScenario("a")
	decisions.SetChoice(domain.PlayScenarioStepID, 0, "a")
	decisions.StartSideScenario("a", domain.SideScenarioEntry{Type: domain.SideScenarioOfficial, Scenario: "rougarou"})
	decisions.SetEmbark("a", domain.EmbarkData{Destination: "bayou", NextScenario: "a"})

	trace, err := guide.ProcessAllScenarios(context.Background(), decisions, "", nil, "en")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"$campaign_setup:completed",
		"a:completed",
		"rougarou:playable",
		"b:locked",
		"c:locked",
	}, statuses(trace))

	side := trace.Scenarios[2]
	assert.True(t, side.Side)
	assert.Equal(t, "bayou", side.Location)
	assert.Equal(t, "bayou", trace.Scenarios[1].Location)

	// Once the side scenario is finished the sweep picks the main line up again.
	decisions.StartScenario("rougarou")
	decisions.SetDecision(domain.PlayScenarioStepID, true, "rougarou")

	trace, err = guide.ProcessAllScenarios(context.Background(), decisions, "", trace, "en")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"$campaign_setup:completed",
		"a:completed",
		"rougarou:completed",
		"b:playable",
		"c:locked",
	}, statuses(trace))
	assert.Equal(t, []string{"rougarou"}, undoable(trace))
}

func TestProcessAllScenarios_CustomSideScenarioChargesXP(t *testing.T) {
	guide := newGuide(nightCampaign().MustBuild(), newCountingExecutor())
	decisions := memory.NewDecisions("night")
	decisions.StartScenario(domain.CampaignSetupID)
	decisions.StartScenario("a")
	decisions.SetChoice(domain.PlayScenarioStepID, 0, "a")
	decisions.StartSideScenario("a", domain.SideScenarioEntry{
		Type: domain.SideScenarioCustom, Scenario: "replay_x", Name: "Replay X", XPCost: 3,
	})
	decisions.StartScenario("replay_x")

	trace, err := guide.ProcessAllScenarios(context.Background(), decisions, "", nil, "en")
	require.NoError(t, err)

	custom, ok := trace.Scenario("replay_x")
	require.True(t, ok)
	assert.Equal(t, domain.StatusStarted, custom.Status)
	assert.True(t, custom.Side)
	assert.Equal(t, "Replay X", custom.Scenario.FullName)
	require.NotEmpty(t, custom.Steps)
	assert.Equal(t, domain.SpendXPCostStepID, custom.Steps[0].ID)
	assert.Equal(t, domain.PlayScenarioStepID, custom.Steps[1].ID)
}

func TestProcessAllScenarios_Standalone(t *testing.T) {
	guide := newGuide(nightCampaign().MustBuild(), newCountingExecutor())
	decisions := memory.NewDecisions("night")
	decisions.StartScenario("b")
	decisions.SetDecision(domain.PlayScenarioStepID, true, "b")

	trace, err := guide.ProcessAllScenarios(context.Background(), decisions, "b", nil, "en")
	require.NoError(t, err)

	require.NotEmpty(t, trace.Scenarios)
	assert.Equal(t, "b", trace.Scenarios[0].ID.EncodedScenarioID)
	assert.Equal(t, domain.StatusCompleted, trace.Scenarios[0].Status)
	_, hasSetup := trace.Scenario(domain.CampaignSetupID)
	assert.False(t, hasSetup)
}

func TestProcessAllScenarios_Hooks(t *testing.T) {
	var processed []*domain.ScenarioEvent
	var finished *domain.WalkEvent
	hooks := domain.WalkHooks{
		OnScenarioProcessed: func(ctx context.Context, e *domain.ScenarioEvent) {
			processed = append(processed, e)
		},
		OnWalkFinished: func(ctx context.Context, e *domain.WalkEvent) {
			finished = e
		},
	}
	guide := newGuide(nightCampaign().MustBuild(), newCountingExecutor(), runtime.WithHooks(hooks))
	decisions := memory.NewDecisions("night")
	decisions.StartScenario(domain.CampaignSetupID)

	first, err := guide.ProcessAllScenarios(context.Background(), decisions, "", nil, "en")
	require.NoError(t, err)
	require.Len(t, processed, 4)
	assert.True(t, processed[0].Executed)
	assert.False(t, processed[1].Executed)
	require.NotNil(t, finished)
	assert.Equal(t, 4, finished.Scenarios)
	assert.Equal(t, 1, finished.Executed)
	assert.NoError(t, finished.Err)

	processed = nil
	_, err = guide.ProcessAllScenarios(context.Background(), decisions, "", first, "en")
	require.NoError(t, err)
	assert.True(t, processed[0].Reused)
	assert.Equal(t, 1, finished.Reused)
	assert.Equal(t, 0, finished.Executed)
}

func TestProcessAllScenarios_AtMostOnePlayable(t *testing.T) {
	content := nightCampaign().MustBuild()
	setups := map[string]func(d *memory.Decisions){
		"empty":   func(d *memory.Decisions) {},
		"setup":   func(d *memory.Decisions) { d.StartScenario(domain.CampaignSetupID) },
		"started": func(d *memory.Decisions) { d.StartScenario(domain.CampaignSetupID); d.StartScenario("b") },
		"won": func(d *memory.Decisions) {
			d.StartScenario(domain.CampaignSetupID)
			d.StartScenario("a")
			d.SetChoice(domain.PlayScenarioStepID, 0, "a")
		},
	}
	for name, setup := range setups {
		t.Run(name, func(t *testing.T) {
			decisions := memory.NewDecisions("night")
			setup(decisions)
			trace, err := newGuide(content, newCountingExecutor()).ProcessAllScenarios(context.Background(), decisions, "", nil, "en")
			require.NoError(t, err)

			playable := 0
			startedSeen := false
			for _, s := range trace.Scenarios {
				if s.Status == domain.StatusPlayable {
					playable++
					assert.False(t, startedSeen, "playable after a started scenario")
				}
				if s.Status == domain.StatusStarted {
					startedSeen = true
				}
			}
			assert.LessOrEqual(t, playable, 1)
			assert.LessOrEqual(t, len(undoable(trace)), 1)
		})
	}
}

func TestProcessAllScenarios_PlaceholdersNeverTakeTheSlot(t *testing.T) {
	b := dsl.New("dunwich").Name("The Dunwich Legacy")
	b.Setup("prologue").Step(domain.GenericStep{ID: "prologue"})
	b.Scenario("coming_soon").Type(domain.ScenarioTypePlaceholder)
	b.Scenario("a").Name("Extracurricular Activity").Play()
	b.Scenario("to_be_announced").Type(domain.ScenarioTypePlaceholder)
	b.Scenario("b").Name("The House Always Wins").Play()
	guide := newGuide(b.MustBuild(), newCountingExecutor())
	ctx := context.Background()

	decisions := memory.NewDecisions("dunwich")
	decisions.StartScenario(domain.CampaignSetupID)

	trace, err := guide.ProcessAllScenarios(ctx, decisions, "", nil, "en")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"$campaign_setup:completed",
		"coming_soon:placeholder",
		"a:playable",
		"to_be_announced:placeholder",
		"b:locked",
	}, statuses(trace))
	playable, ok := trace.Playable()
	require.True(t, ok)
	assert.Equal(t, "a", playable.ID.EncodedScenarioID)

	decisions.StartScenario("a")
	decisions.SetDecision(domain.PlayScenarioStepID, true, "a")

	trace, err = guide.ProcessAllScenarios(ctx, decisions, "", trace, "en")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"$campaign_setup:completed",
		"coming_soon:placeholder",
		"a:completed",
		"to_be_announced:placeholder",
		"b:playable",
	}, statuses(trace))
	for _, s := range trace.Scenarios {
		if s.Status == domain.StatusPlaceholder {
			assert.Empty(t, s.Steps)
			assert.False(t, s.CanUndo)
		}
	}
}
