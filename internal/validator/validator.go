package validator

import (
	"bytes"
	"embed"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/aretw0/campaignguide/internal/compiler"
	"github.com/aretw0/campaignguide/pkg/domain"
	"github.com/aretw0/campaignguide/pkg/ports"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

const schemaBase = "https://campaignguide.dev/schemas/v1/"

var loadSchemas = sync.OnceValues(compileSchemas)

func compileSchemas() (map[string]*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	for _, name := range compiler.DocumentNames {
		payload, err := schemaFS.ReadFile("schemas/" + name + ".schema.json")
		if err != nil {
			return nil, fmt.Errorf("schema not found: %s: %w", name, err)
		}
		if err := c.AddResource(schemaBase+name+".schema.json", bytes.NewReader(payload)); err != nil {
			return nil, fmt.Errorf("add schema resource %s: %w", name, err)
		}
	}

	out := make(map[string]*jsonschema.Schema, len(compiler.DocumentNames))
	for _, name := range compiler.DocumentNames {
		schema, err := c.Compile(schemaBase + name + ".schema.json")
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", name, err)
		}
		out[name] = schema
	}
	return out, nil
}

// ValidateDocuments checks every decoded document against its JSON schema.
func ValidateDocuments(docs compiler.Documents) error {
	schemas, err := loadSchemas()
	if err != nil {
		return err
	}
	var problems []string
	for _, name := range compiler.DocumentNames {
		value, ok := docs[name]
		if !ok {
			continue
		}
		if err := schemas[name].Validate(value); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", name, err))
		}
	}
	return report(problems)
}

// ValidateCampaign loads, schema-checks, compiles and graph-checks the
// campaign provided by src.
func ValidateCampaign(src ports.ContentSource) error {
	docs, err := compiler.Load(src)
	if err != nil {
		return err
	}
	if err := ValidateDocuments(docs); err != nil {
		return err
	}
	content, err := compiler.Build(docs)
	if err != nil {
		return err
	}
	return ValidateContent(content)
}

// ValidateContent checks that every id the content references resolves:
// the play order, step ids of each script, side scenario parents and the
// scenario targets of campaign data effects.
func ValidateContent(content domain.Content) error {
	c := checker{
		main: make(map[string]bool),
		side: make(map[string]bool),
	}
	campaign := content.Campaign.Campaign

	for _, s := range content.Campaign.Scenarios {
		if c.main[s.ID] {
			c.addf("duplicate scenario %q", s.ID)
		}
		c.main[s.ID] = true
	}
	for _, s := range content.SideCampaign.Scenarios {
		if c.side[s.ID] {
			c.addf("duplicate side scenario %q", s.ID)
		}
		if c.main[s.ID] {
			c.addf("side scenario %q is shadowed by a main scenario", s.ID)
		}
		c.side[s.ID] = true
	}

	for _, id := range campaign.Scenarios {
		if !c.main[id] {
			c.addf("play order references unknown scenario %q", id)
		}
	}
	if campaign.ID == "" {
		c.addf("campaign has no id")
	}

	c.script(domain.CampaignSetupID, campaign.Setup, campaign.Steps)
	for _, s := range content.Campaign.Scenarios {
		c.script(s.ID, s.Setup, s.Steps)
	}
	for _, s := range content.SideCampaign.Scenarios {
		c.script(s.ID, s.Setup, s.Steps)
		if s.MainScenarioID != "" && !c.main[s.MainScenarioID] {
			c.addf("side scenario %q: unknown main scenario %q", s.ID, s.MainScenarioID)
		}
	}

	// Custom side scenarios run these ids against the side scenario steps.
	var custom []string
	custom = append(custom, campaign.ScenarioSetup...)
	custom = append(custom, campaign.SideScenarioResolution...)
	c.script("side scenario steps", custom, campaign.SideScenarioSteps)

	for _, id := range campaign.Tarot {
		if !c.main[id] {
			c.addf("tarot references unknown scenario %q", id)
		}
	}
	return report(c.problems)
}

type checker struct {
	main     map[string]bool
	side     map[string]bool
	problems []string
}

func (c *checker) addf(format string, args ...any) {
	c.problems = append(c.problems, fmt.Sprintf(format, args...))
}

// script checks one setup list and every step id its steps can enqueue.
func (c *checker) script(owner string, setup []string, steps []domain.Step) {
	defined := make(map[string]bool, len(steps))
	for _, step := range steps {
		if defined[step.StepID()] {
			c.addf("%s: duplicate step %q", owner, step.StepID())
		}
		defined[step.StepID()] = true
	}
	resolve := func(ref, id string) {
		if defined[id] {
			return
		}
		if _, ok := domain.FixedStep(id); ok {
			return
		}
		c.addf("%s: %s references unknown step %q", owner, ref, id)
	}

	for _, id := range setup {
		resolve("setup", id)
	}
	for _, step := range steps {
		ref := "step " + step.StepID()
		switch s := step.(type) {
		case domain.GenericStep:
			c.effects(owner, s.Effects)
		case domain.BranchStep:
			for _, id := range slices.Concat(s.Steps, s.ElseSteps) {
				resolve(ref, id)
			}
		case domain.InputStep:
			switch in := s.Input.(type) {
			case domain.PlayScenarioInput:
				for _, b := range in.Branches {
					for _, id := range b.Steps {
						resolve(ref, id)
					}
				}
				for _, t := range in.CampaignLog {
					c.effects(owner, t.Effects)
				}
			case domain.ChooseOneInput:
				for _, choice := range in.Choices {
					for _, id := range choice.Steps {
						resolve(ref, id)
					}
					c.effects(owner, choice.Effects)
				}
			case domain.CounterInput:
				c.effects(owner, in.Effects)
			case nil:
				c.addf("%s: %s has no input", owner, ref)
			}
		}
	}
}

func (c *checker) effects(owner string, effects []domain.Effect) {
	for _, e := range effects {
		data, ok := e.(domain.CampaignDataEffect)
		if !ok {
			continue
		}
		switch data.Setting {
		case domain.SettingNextScenario:
			c.scenarioRef(owner, data.Value)
		case domain.SettingScenarioStatus:
			c.scenarioRef(owner, data.ScenarioID)
		case domain.SettingScenarios:
			for _, id := range data.Scenarios {
				c.scenarioRef(owner, id)
			}
		}
	}
}

func (c *checker) scenarioRef(owner, encoded string) {
	if encoded == "" {
		return
	}
	id, err := domain.ParseScenarioID(encoded)
	if err != nil {
		c.addf("%s: %v", owner, err)
		return
	}
	if !c.main[id.ScenarioID] && !c.side[id.ScenarioID] {
		c.addf("%s: effect references unknown scenario %q", owner, encoded)
	}
}

func report(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("found %d errors:\n- %s", len(problems), strings.Join(problems, "\n- "))
}
