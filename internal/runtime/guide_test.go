package runtime_test

import (
	"testing"

	"github.com/aretw0/campaignguide/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(rules []domain.Rule) []string {
	var out []string
	for _, r := range rules {
		out = append(out, r.Title)
	}
	return out
}

func errataCampaign() domain.Content {
	content := nightCampaign().Errata(domain.Errata{
		Cards: []domain.EncounterErrata{
			{EncounterCode: "ghouls", Cards: []domain.CardErrata{{Code: []string{"01160"}, Text: "Ghoul Minion"}}},
			{EncounterCode: "rats", Cards: []domain.CardErrata{{Code: []string{"01159"}, Text: "Swarm of Rats"}}},
			{EncounterCode: "cult", Cards: []domain.CardErrata{{Code: []string{"01169"}, Text: "Acolyte"}}},
		},
		FAQ: []domain.ScenarioFAQ{
			{ScenarioCode: "a", CampaignCode: "other", Questions: []domain.Question{{Question: "Elsewhere?"}}},
			{ScenarioCode: "a", Questions: []domain.Question{{Question: "Can I?", Answer: "Yes."}}},
		},
		CampaignFAQ: []domain.CampaignFAQ{
			{Cycles: []string{"dunwich"}, Questions: []domain.Question{{Question: "Wrong cycle"}}},
			{Cycles: []string{"core", "night"}, Questions: []domain.Question{{Question: "Right cycle"}}},
		},
	}).MustBuild()
	content.EncounterSets = map[string]string{"ghouls": "Ghouls"}
	content.Campaign.Campaign.Cards = []domain.CampaignCard{{Code: "01117", Name: "Lita Chantler"}}
	content.Campaign.Campaign.Tarot = []string{"b"}
	return content
}

func TestGuide_Errata(t *testing.T) {
	guide := newGuide(errataCampaign(), newCountingExecutor())

	errata := guide.CardErrata([]string{"ghouls", "cult"})
	require.Len(t, errata, 2)
	assert.Equal(t, "Ghoul Minion", errata[0].Text)
	assert.Equal(t, "Acolyte", errata[1].Text)
	assert.Empty(t, guide.CardErrata(nil))

	faq := guide.ScenarioFAQ("a")
	require.Len(t, faq, 1)
	assert.Equal(t, "Can I?", faq[0].Question)
	assert.Empty(t, guide.ScenarioFAQ("b"))

	campaignFAQ := guide.CampaignFAQ()
	require.Len(t, campaignFAQ, 1)
	assert.Equal(t, "Right cycle", campaignFAQ[0].Question)
}

func TestGuide_Rules(t *testing.T) {
	guide := newGuide(nightCampaign().MustBuild(), newCountingExecutor())

	assert.Equal(t, []string{"alpha", "Zeta"}, titles(guide.CampaignRules("en")))
	assert.Equal(t, []string{"alpha", "Émile", "Zeta"}, titles(guide.ScenarioRules("en", "a")))
	assert.Equal(t, []string{"alpha", "Zeta"}, titles(guide.ScenarioRules("en", domain.CampaignSetupID)))
	assert.Equal(t, []string{"alpha", "Zeta"}, titles(guide.ScenarioRules("not a tag!", "b")))

	// Sorting works on a copy.
	assert.Equal(t, []string{"Zeta", "alpha"}, titles(guide.Campaign().Campaign.Rules))
}

func TestGuide_Accessors(t *testing.T) {
	guide := newGuide(errataCampaign(), newCountingExecutor())

	assert.Equal(t, "night", guide.CycleCode())
	assert.Equal(t, "Night of the Zealot", guide.CampaignName())
	assert.Equal(t, 1, guide.Version())
	assert.False(t, guide.NoSideScenarioXP())
	assert.Equal(t, []string{"b"}, guide.TarotScenarios())
	assert.Empty(t, guide.ScenarioSetupStepIDs())
	assert.Empty(t, guide.SideScenarioResolutionStepIDs())
	assert.Empty(t, guide.Achievements())

	card, ok := guide.Card("01117")
	assert.True(t, ok)
	assert.Equal(t, "Lita Chantler", card.Name)
	_, ok = guide.Card("00000")
	assert.False(t, ok)

	name, ok := guide.EncounterSet("ghouls")
	assert.True(t, ok)
	assert.Equal(t, "Ghouls", name)
	_, ok = guide.EncounterSet("rats")
	assert.False(t, ok)

	side := guide.SideScenarios()
	require.Len(t, side, 1)
	assert.Equal(t, "rougarou", side[0].ID)
}
