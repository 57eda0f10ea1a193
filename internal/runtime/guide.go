package runtime

import (
	"log/slog"
	"slices"

	"github.com/aretw0/campaignguide/internal/logging"
	"github.com/aretw0/campaignguide/pkg/domain"
	"github.com/aretw0/campaignguide/pkg/ports"
)

// Guide is the static knowledge base of one campaign and the interpreter
// that walks it. Content is immutable after construction; a Guide is safe
// for concurrent walks as long as each walk gets its own decision snapshot.
type Guide struct {
	campaign      domain.FullCampaign
	log           domain.LogText
	sideCampaign  domain.FullCampaign
	errata        domain.Errata
	encounterSets map[string]string

	executor ports.StepExecutor
	logs     ports.LogFactory
	hooks    domain.WalkHooks
	logger   *slog.Logger
}

// Option configures a Guide.
type Option func(*Guide)

// WithLogger sets the structured logger used for walk diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Guide) {
		g.logger = logger
	}
}

// WithHooks registers walk observability hooks.
func WithHooks(hooks domain.WalkHooks) Option {
	return func(g *Guide) {
		g.hooks = hooks
	}
}

// NewGuide creates a guide over the given content. The executor runs single
// scenario scripts and logs seeds the campaign log of every walk.
func NewGuide(content domain.Content, executor ports.StepExecutor, logs ports.LogFactory, opts ...Option) *Guide {
	g := &Guide{
		campaign:      content.Campaign,
		log:           content.Log,
		sideCampaign:  content.SideCampaign,
		errata:        content.Errata,
		encounterSets: content.EncounterSets,
		executor:      executor,
		logs:          logs,
		logger:        logging.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Campaign returns the authored campaign.
func (g *Guide) Campaign() domain.FullCampaign {
	return g.campaign
}

// CardErrata returns the card errata of the given encounter sets.
func (g *Guide) CardErrata(encounterSets []string) []domain.CardErrata {
	var out []domain.CardErrata
	for _, errata := range g.errata.Cards {
		if slices.Contains(encounterSets, errata.EncounterCode) {
			out = append(out, errata.Cards...)
		}
	}
	return out
}

// ScenarioSetupStepIDs are the steps every custom side scenario runs before play.
func (g *Guide) ScenarioSetupStepIDs() []string {
	return g.campaign.Campaign.ScenarioSetup
}

// SideScenarioResolutionStepIDs are the steps every custom side scenario runs after play.
func (g *Guide) SideScenarioResolutionStepIDs() []string {
	return g.campaign.Campaign.SideScenarioResolution
}

// TarotScenarios returns the scenarios that draw tarot cards, or nil.
func (g *Guide) TarotScenarios() []string {
	return g.campaign.Campaign.Tarot
}

// CampaignFAQ returns the FAQ shared by the campaign's cycle.
func (g *Guide) CampaignFAQ() []domain.Question {
	for _, faq := range g.errata.CampaignFAQ {
		if slices.Contains(faq.Cycles, g.campaign.Campaign.ID) {
			return faq.Questions
		}
	}
	return nil
}

// ScenarioFAQ returns the FAQ of one scenario. Entries pinned to another
// campaign are ignored.
func (g *Guide) ScenarioFAQ(scenarioID string) []domain.Question {
	for _, faq := range g.errata.FAQ {
		if faq.ScenarioCode != scenarioID {
			continue
		}
		if faq.CampaignCode == "" || faq.CampaignCode == g.campaign.Campaign.ID {
			return faq.Questions
		}
	}
	return nil
}

// CampaignRules returns the campaign rules sorted by title for lang.
func (g *Guide) CampaignRules(lang string) []domain.Rule {
	return sortRules(lang, g.campaign.Campaign.Rules)
}

// ScenarioRules returns campaign and scenario rules sorted by title for lang.
func (g *Guide) ScenarioRules(lang, scenarioID string) []domain.Rule {
	if scenarioID == "" || scenarioID == domain.CampaignSetupID {
		return g.CampaignRules(lang)
	}
	rules := slices.Clone(g.campaign.Campaign.Rules)
	if scenario, ok := g.FindScenarioData(scenarioID); ok {
		rules = append(rules, scenario.Rules...)
	}
	return sortRules(lang, rules)
}

// SideScenarios returns the side scenario pool in authored order.
// Ids without a definition are dropped.
func (g *Guide) SideScenarios() []domain.Scenario {
	var out []domain.Scenario
	for _, id := range g.sideCampaign.Campaign.Scenarios {
		if s := findIn(g.sideCampaign.Scenarios, id); s != nil {
			out = append(out, *s)
		}
	}
	return out
}

// Card returns a story card of the campaign.
func (g *Guide) Card(code string) (domain.CampaignCard, bool) {
	for _, c := range g.campaign.Campaign.Cards {
		if c.Code == code {
			return c, true
		}
	}
	return domain.CampaignCard{}, false
}

func (g *Guide) Achievements() []domain.Achievement {
	return g.campaign.Campaign.Achievements
}

// CycleCode is the campaign id.
func (g *Guide) CycleCode() string {
	return g.campaign.Campaign.ID
}

func (g *Guide) CampaignName() string {
	return g.campaign.Campaign.Name
}

func (g *Guide) NoSideScenarioXP() bool {
	return g.campaign.Campaign.NoSideScenarioXP
}

func (g *Guide) Version() int {
	return g.campaign.Campaign.Version
}

// EncounterSet returns the display name of an encounter set code.
func (g *Guide) EncounterSet(code string) (string, bool) {
	name, ok := g.encounterSets[code]
	return name, ok
}

func findIn(scenarios []domain.Scenario, id string) *domain.Scenario {
	for i := range scenarios {
		if scenarios[i].ID == id {
			return &scenarios[i]
		}
	}
	return nil
}
