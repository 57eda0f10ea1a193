package memory_test

import (
	"testing"

	"github.com/aretw0/campaignguide/pkg/adapters/memory"
	"github.com/aretw0/campaignguide/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecisions_LatestWins(t *testing.T) {
	d := memory.NewDecisions("night")
	d.SetChoice("$play_scenario", 0, "a")
	d.SetChoice("$play_scenario", 2, "a")
	d.SetChoice("$play_scenario", 5, "b")

	got, ok := d.Choice("$play_scenario", "a")
	require.True(t, ok)
	assert.Equal(t, 2, got)

	got, ok = d.Choice("$play_scenario", "b")
	require.True(t, ok)
	assert.Equal(t, 5, got)

	_, ok = d.Choice("$play_scenario", "c")
	assert.False(t, ok)
}

func TestDecisions_ScenarioEntriesAreScoped(t *testing.T) {
	d := memory.NewDecisions("night")
	d.StartScenario("a")
	d.SetDecision("x", true, "a")
	d.StartScenario("a#1")
	d.SetDecision("x", false, "a#1")

	first := d.ScenarioEntries(domain.NewScenarioID("a"))
	replay := d.ScenarioEntries(domain.ReplayScenarioID("a", 1))
	assert.Len(t, first, 2)
	assert.Len(t, replay, 2)
	assert.True(t, first[1].Bool)
	assert.False(t, replay[1].Bool)
}

func TestDecisions_UndoAndCloseOnUndo(t *testing.T) {
	d := memory.NewDecisions("night")
	d.StartScenario("a")
	d.SetCount("$earn_xp", 3, "a")
	d.StartScenario("b")

	assert.False(t, d.CloseOnUndo("a"))
	assert.True(t, d.CloseOnUndo("b"))

	d.Undo("a")
	_, ok := d.Count("$earn_xp", "a")
	assert.False(t, ok)
	assert.True(t, d.CloseOnUndo("a"))
	assert.True(t, d.StartedScenario("b"))

	d.Undo("a")
	assert.False(t, d.StartedScenario("a"))
	assert.Equal(t, 1, d.Len())
}

func TestDecisions_UndoDoesNotAliasEntries(t *testing.T) {
	d := memory.NewDecisions("night")
	d.StartScenario("a")
	d.SetChoice("c", 1, "a")
	before := d.Snapshot()

	d.Undo("a")
	assert.Len(t, before.Entries, 2)
	assert.Equal(t, domain.EntryChoice, before.Entries[1].Kind)
}

func TestDecisions_SideScenarioAndEmbark(t *testing.T) {
	d := memory.NewDecisions("dunwich")
	_, ok := d.SideScenario("a")
	assert.False(t, ok)

	d.StartSideScenario("a", domain.SideScenarioEntry{Type: domain.SideScenarioCustom, Scenario: "replay", Name: "Replay X", XPCost: 3})
	d.SetEmbark("a", domain.EmbarkData{Previous: "arkham", Destination: "dunwich", NextScenario: "side_b"})

	side, ok := d.SideScenario("a")
	require.True(t, ok)
	assert.Equal(t, 3, side.XPCost)

	embark, ok := d.SideScenarioEmbarkData("side_b")
	require.True(t, ok)
	assert.Equal(t, "dunwich", embark.Destination)

	embark, ok = d.ScenarioEmbarkData("a")
	require.True(t, ok)
	assert.Equal(t, "side_b", embark.NextScenario)
}

func TestDecisions_CampaignLinks(t *testing.T) {
	d := memory.NewDecisions("a_side")
	d.SetCampaignLink("sent", "yes", "s1")
	d.Link(domain.Entry{Kind: domain.EntryCampaignLink, Scenario: "other", Step: "received", Text: "no"})

	got, ok := d.CampaignLink(domain.LinkSend, "sent", "s1")
	require.True(t, ok)
	assert.Equal(t, "yes", got)

	got, ok = d.CampaignLink(domain.LinkReceive, "received", "s1")
	require.True(t, ok)
	assert.Equal(t, "no", got)
	assert.Len(t, d.LinkedEntries(), 1)
}

func TestDecisions_SnapshotRoundTrip(t *testing.T) {
	d := memory.NewDecisions("night")
	d.StartScenario("a")
	d.SetStringChoices("$play_scenario", domain.StringChoices{"campaign_log": {"ghoul"}}, "a")
	d.SetInterScenario("a", domain.InvestigatorTraumaData{"01001": {Physical: 1}}, []string{"entry"})

	restored := memory.FromSnapshot(d.Snapshot())
	choices, ok := restored.StringChoices("$play_scenario", "a")
	require.True(t, ok)
	assert.Equal(t, []string{"ghoul"}, choices["campaign_log"])

	trauma, ok := restored.InterScenarioInvestigatorData("a")
	require.True(t, ok)
	assert.Equal(t, 1, trauma["01001"].Physical)

	entries, ok := restored.InterScenarioCampaignLogEntries("a")
	require.True(t, ok)
	assert.Equal(t, []string{"entry"}, entries)
	assert.Equal(t, "night", restored.Snapshot().CampaignID)
}
