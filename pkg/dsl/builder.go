package dsl

import (
	"fmt"

	"github.com/aretw0/campaignguide/pkg/domain"
)

// Builder manages the campaign construction.
type Builder struct {
	campaign domain.CampaignData
	log      domain.LogText
	errata   domain.Errata

	scenarios []*ScenarioBuilder
	side      []*ScenarioBuilder
}

// New creates a new campaign builder.
func New(campaignID string) *Builder {
	return &Builder{
		campaign: domain.CampaignData{ID: campaignID, Version: 1},
		log:      domain.LogText{CampaignID: campaignID},
	}
}

// Name sets the campaign display name.
func (b *Builder) Name(name string) *Builder {
	b.campaign.Name = name
	return b
}

// Setup appends step ids to the campaign setup script.
func (b *Builder) Setup(ids ...string) *Builder {
	b.campaign.Setup = append(b.campaign.Setup, ids...)
	return b
}

// Step defines a campaign setup step.
func (b *Builder) Step(steps ...domain.Step) *Builder {
	b.campaign.Steps = append(b.campaign.Steps, steps...)
	return b
}

// Rule adds a campaign-wide rule.
func (b *Builder) Rule(id, title string) *Builder {
	b.campaign.Rules = append(b.campaign.Rules, domain.Rule{ID: id, Title: title})
	return b
}

// Section declares a campaign log section.
func (b *Builder) Section(id, title string, kind domain.LogSectionType) *Builder {
	b.campaign.CampaignLog = append(b.campaign.CampaignLog, domain.LogSectionDef{ID: id, Title: title, Type: kind})
	return b
}

// LogText adds the display text of a log entry.
func (b *Builder) LogText(section, id, text string) *Builder {
	for i := range b.log.Sections {
		if b.log.Sections[i].Section == section {
			b.log.Sections[i].Entries = append(b.log.Sections[i].Entries, domain.LogTextEntry{ID: id, Text: text})
			return b
		}
	}
	b.log.Sections = append(b.log.Sections, domain.LogTextSection{
		Section: section,
		Entries: []domain.LogTextEntry{{ID: id, Text: text}},
	})
	return b
}

// Supply adds a supply to the log text.
func (b *Builder) Supply(supply domain.Supply) *Builder {
	b.log.Supplies = append(b.log.Supplies, supply)
	return b
}

// SideScenarioSteps sets the step block spliced into every side scenario.
func (b *Builder) SideScenarioSteps(steps ...domain.Step) *Builder {
	b.campaign.SideScenarioSteps = append(b.campaign.SideScenarioSteps, steps...)
	return b
}

// ScenarioSetup sets the steps custom side scenarios run before play.
func (b *Builder) ScenarioSetup(ids ...string) *Builder {
	b.campaign.ScenarioSetup = append(b.campaign.ScenarioSetup, ids...)
	return b
}

// SideScenarioResolution sets the steps custom side scenarios run after play.
func (b *Builder) SideScenarioResolution(ids ...string) *Builder {
	b.campaign.SideScenarioResolution = append(b.campaign.SideScenarioResolution, ids...)
	return b
}

// Errata sets the published errata.
func (b *Builder) Errata(errata domain.Errata) *Builder {
	b.errata = errata
	return b
}

// Scenario adds a main scenario at the end of the play order.
// If the scenario already exists, it returns the existing builder.
func (b *Builder) Scenario(id string) *ScenarioBuilder {
	for _, sb := range b.scenarios {
		if sb.scenario.ID == id {
			return sb
		}
	}
	sb := newScenario(id, domain.ScenarioTypeScenario)
	b.scenarios = append(b.scenarios, sb)
	return sb
}

// Side adds a scenario to the side scenario pool.
func (b *Builder) Side(id string) *ScenarioBuilder {
	for _, sb := range b.side {
		if sb.scenario.ID == id {
			return sb
		}
	}
	sb := newScenario(id, domain.ScenarioTypeSide)
	b.side = append(b.side, sb)
	return sb
}

// Build compiles the campaign into guide content.
func (b *Builder) Build() (domain.Content, error) {
	campaign := domain.FullCampaign{Campaign: b.campaign}
	for _, sb := range b.scenarios {
		if sb.err != nil {
			return domain.Content{}, fmt.Errorf("scenario %s: %w", sb.scenario.ID, sb.err)
		}
		campaign.Campaign.Scenarios = append(campaign.Campaign.Scenarios, sb.scenario.ID)
		campaign.Scenarios = append(campaign.Scenarios, sb.scenario)
	}

	side := domain.FullCampaign{Campaign: domain.CampaignData{ID: b.campaign.ID + "_side"}}
	for _, sb := range b.side {
		if sb.err != nil {
			return domain.Content{}, fmt.Errorf("side scenario %s: %w", sb.scenario.ID, sb.err)
		}
		side.Campaign.Scenarios = append(side.Campaign.Scenarios, sb.scenario.ID)
		side.Scenarios = append(side.Scenarios, sb.scenario)
	}

	return domain.Content{
		Campaign:     campaign,
		Log:          b.log,
		SideCampaign: side,
		Errata:       b.errata,
	}, nil
}

// MustBuild is like Build but panics on error. Intended for tests.
func (b *Builder) MustBuild() domain.Content {
	content, err := b.Build()
	if err != nil {
		panic(err)
	}
	return content
}
