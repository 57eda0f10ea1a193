package campaignguide_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/aretw0/campaignguide"
	"github.com/aretw0/campaignguide/pkg/adapters/memory"
	"github.com/aretw0/campaignguide/pkg/domain"
	"github.com/aretw0/campaignguide/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nightCampaign() domain.Content {
	b := dsl.New("night").Name("Night of the Zealot")
	b.Setup("prologue").Step(domain.GenericStep{ID: "prologue"})
	b.Scenario("a").Name("The Gathering").
		Define(domain.GenericStep{ID: "lost", Effects: []domain.Effect{
			domain.CampaignDataEffect{Setting: domain.SettingResult, Value: string(domain.ResultLose)},
		}}).
		Play(
			domain.ResolutionBranch{ID: "win"},
			domain.ResolutionBranch{ID: "lose", Steps: []string{"lost"}},
		)
	b.Scenario("b").Name("The Midnight Masks").Play()
	b.Scenario("c").Name("Epilogue").Type(domain.ScenarioTypeEpilogue).Play()
	return b.MustBuild()
}

func statuses(c *domain.ProcessedCampaign) []string {
	var out []string
	for _, s := range c.Scenarios {
		out = append(out, s.ID.EncodedScenarioID+":"+string(s.Status))
	}
	return out
}

func start(scenario string) campaignguide.Decision {
	return campaignguide.Decision{Kind: domain.EntryStartScenario, Scenario: scenario}
}

func resolve(scenario string, branch int) campaignguide.Decision {
	return campaignguide.Decision{Kind: domain.EntryChoice, Scenario: scenario, Step: domain.PlayScenarioStepID, Number: branch}
}

func newEngine(t *testing.T, opts ...campaignguide.Option) *campaignguide.Engine {
	t.Helper()
	eng, err := campaignguide.New("", append([]campaignguide.Option{campaignguide.WithContent(nightCampaign())}, opts...)...)
	require.NoError(t, err)
	return eng
}

func TestEngine_Lifecycle(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(t)
	assert.Equal(t, "night", eng.Name)

	trace, err := eng.Process(ctx, "run")
	require.NoError(t, err)
	assert.Equal(t, []string{"$campaign_setup:playable", "a:locked", "b:locked", "c:locked"}, statuses(trace))

	trace, err = eng.Record(ctx, "run", start(domain.CampaignSetupID), start("a"), resolve("a", 0))
	require.NoError(t, err)
	assert.Equal(t, []string{"$campaign_setup:completed", "a:completed", "b:playable", "c:locked"}, statuses(trace))

	next, ok, err := eng.Next(ctx, "run")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "b", next.ID.EncodedScenarioID)

	trace, err = eng.Undo(ctx, "run", "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"$campaign_setup:completed", "a:started", "b:locked", "c:locked"}, statuses(trace))

	ids, err := eng.Sessions().List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"run"}, ids)

	require.NoError(t, eng.Reset(ctx, "run"))
	trace, err = eng.Process(ctx, "run")
	require.NoError(t, err)
	assert.Equal(t, "$campaign_setup:playable", statuses(trace)[0])
}

func played(scenario string) campaignguide.Decision {
	return campaignguide.Decision{Kind: domain.EntryDecision, Scenario: scenario, Step: domain.PlayScenarioStepID, Bool: true}
}

func TestEngine_UndoIsLastInFirstOut(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	eng := newEngine(t, campaignguide.WithStore(store))

	_, err := eng.Undo(ctx, "run", domain.CampaignSetupID)
	assert.ErrorIs(t, err, domain.ErrUndoRejected, "nothing recorded yet")
	_, err = store.Load(ctx, "run")
	assert.ErrorIs(t, err, domain.ErrCampaignNotFound)

	trace, err := eng.Record(ctx, "run", start(domain.CampaignSetupID), start("a"), resolve("a", 0), start("b"), played("b"))
	require.NoError(t, err)
	before := statuses(trace)
	assert.Equal(t, []string{"$campaign_setup:completed", "a:completed", "b:completed", "c:playable"}, before)

	for _, id := range []string{domain.CampaignSetupID, "a", "c"} {
		_, err = eng.Undo(ctx, "run", id)
		var rejected *domain.UndoRejectedError
		require.ErrorAs(t, err, &rejected, id)
		assert.Equal(t, "b", rejected.Undoable)
	}

	_, err = eng.Undo(ctx, "run", "no#such#id")
	var malformed *domain.MalformedScenarioIDError
	assert.ErrorAs(t, err, &malformed)

	trace, err = eng.Process(ctx, "run")
	require.NoError(t, err)
	assert.Equal(t, before, statuses(trace), "rejected undos change nothing")

	trace, err = eng.Undo(ctx, "run", "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"$campaign_setup:completed", "a:completed", "b:started", "c:locked"}, statuses(trace))

	trace, err = eng.Undo(ctx, "run", "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"$campaign_setup:completed", "a:completed", "b:playable", "c:locked"}, statuses(trace))

	last, ok := trace.Undoable()
	require.True(t, ok)
	assert.Equal(t, "a", last.ID.EncodedScenarioID)
}

func TestEngine_NextWhileStarted(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(t)

	_, err := eng.Record(ctx, "run", start(domain.CampaignSetupID), start("a"))
	require.NoError(t, err)

	next, ok, err := eng.Next(ctx, "run")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a", next.ID.EncodedScenarioID, "the started scenario is still the one to play")
	assert.Equal(t, "The Gathering", next.Scenario.FullName)
}

func TestEngine_RecordTravelAndLinks(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(t)

	trace, err := eng.Record(ctx, "run",
		start(domain.CampaignSetupID),
		campaignguide.Decision{Kind: domain.EntryEmbark, Scenario: domain.CampaignSetupID,
			Embark: &domain.EmbarkData{Previous: "arkham", Destination: "venice", NextScenario: "a"}},
		campaignguide.Decision{Kind: domain.EntryCampaignLink, Scenario: "a", Step: "sealed", Text: "yes", Linked: true},
		start("a"),
	)
	require.NoError(t, err)
	require.Equal(t, []string{"$campaign_setup:completed", "a:started", "b:locked", "c:locked"}, statuses(trace))
	assert.Equal(t, "venice", trace.Scenarios[1].Location)

	d, err := eng.Decisions(ctx, "run")
	require.NoError(t, err)
	received, ok := d.CampaignLink(domain.LinkReceive, "sealed", "b")
	require.True(t, ok)
	assert.Equal(t, "yes", received)
	assert.Equal(t, 3, d.Len(), "linked decisions stay out of the campaign's own log")
}

func TestEngine_LossSkips(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(t)

	trace, err := eng.Record(ctx, "run", start(domain.CampaignSetupID), start("a"), resolve("a", 1))
	require.NoError(t, err)
	assert.Equal(t, []string{"$campaign_setup:completed", "a:completed", "b:skipped", "c:playable"}, statuses(trace))
}

func TestEngine_InvalidDecisionWritesNothing(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	eng := newEngine(t, campaignguide.WithStore(store))

	_, err := eng.Record(ctx, "run", start(domain.CampaignSetupID), campaignguide.Decision{Kind: domain.EntryChoice, Scenario: "a"})
	assert.ErrorIs(t, err, campaignguide.ErrInvalidDecision)

	_, err = store.Load(ctx, "run")
	assert.ErrorIs(t, err, domain.ErrCampaignNotFound)
}

func TestEngine_ReusesPreviousTrace(t *testing.T) {
	ctx := context.Background()
	var executed, reused atomic.Int32
	eng := newEngine(t, campaignguide.WithHooks(domain.WalkHooks{
		OnWalkFinished: func(_ context.Context, e *domain.WalkEvent) {
			executed.Add(int32(e.Executed))
			reused.Add(int32(e.Reused))
		},
	}))

	_, err := eng.Record(ctx, "run", start(domain.CampaignSetupID), start("a"), resolve("a", 0))
	require.NoError(t, err)
	firstExecuted := executed.Load()

	_, err = eng.Process(ctx, "run")
	require.NoError(t, err)
	assert.Equal(t, firstExecuted, executed.Load(), "an unchanged campaign runs no script again")
	assert.Positive(t, reused.Load())
}

func TestEngine_Standalone(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(t)

	trace, err := eng.ProcessStandalone(ctx, "solo", "b")
	require.NoError(t, err)
	require.NotEmpty(t, trace.Scenarios)
	assert.Equal(t, "b", trace.Scenarios[0].ID.EncodedScenarioID)

	_, err = eng.ProcessStandalone(ctx, "solo", "")
	assert.Error(t, err)
}

func TestEngine_Graph(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(t)

	plain, err := eng.Graph(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, plain, "campaign_setup --> a")
	assert.NotContains(t, plain, "classDef")

	_, err = eng.Record(ctx, "run", start(domain.CampaignSetupID))
	require.NoError(t, err)
	painted, err := eng.Graph(ctx, "run")
	require.NoError(t, err)
	assert.Contains(t, painted, "class a playable;")
}

func TestNew_FromDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "campaign.yaml"), []byte(`
campaign:
  id: dunwich
  name: The Dunwich Legacy
  scenarios: [extracurricular]
  setup: []
scenarios:
  - id: extracurricular
    scenario_name: Extracurricular Activity
    setup: [$play_scenario, $proceed]
    steps:
      - id: $play_scenario
        type: input
        input:
          type: play_scenario
          no_resolutions: true
`), 0o644))

	eng, err := campaignguide.New(dir)
	require.NoError(t, err)
	assert.Equal(t, "dunwich", eng.Name)
	assert.Equal(t, "The Dunwich Legacy", eng.Guide().CampaignName())
}

func TestNew_Errors(t *testing.T) {
	_, err := campaignguide.New("")
	assert.Error(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "campaign.yaml"), []byte(`
campaign:
  id: broken
  scenarios: [ghost]
`), 0o644))
	_, err = campaignguide.New(dir)
	assert.ErrorContains(t, err, "invalid campaign")

	_, err = campaignguide.New(dir, campaignguide.WithoutValidation())
	assert.NoError(t, err)

	content := nightCampaign()
	content.Campaign.Campaign.Scenarios = append(content.Campaign.Campaign.Scenarios, "ghost")
	_, err = campaignguide.New("", campaignguide.WithContent(content))
	assert.ErrorContains(t, err, `unknown scenario "ghost"`)
}
