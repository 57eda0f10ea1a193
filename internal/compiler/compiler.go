package compiler

import (
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"reflect"
	"strings"

	"github.com/aretw0/campaignguide/pkg/domain"
	"github.com/aretw0/campaignguide/pkg/ports"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Logical document names.
const (
	DocCampaign      = "campaign"
	DocLog           = "log"
	DocSide          = "side"
	DocErrata        = "errata"
	DocEncounterSets = "encounter_sets"
)

// DocumentNames lists every logical document in compile order.
var DocumentNames = []string{DocCampaign, DocLog, DocSide, DocErrata, DocEncounterSets}

var extensions = []string{".yaml", ".yml", ".json"}

// Documents maps a logical document name to its decoded, JSON-shaped value:
// objects are map[string]any and numbers float64.
type Documents map[string]any

// Load reads and decodes every known document of src. Only the campaign
// document is required.
func Load(src ports.ContentSource) (Documents, error) {
	names, err := src.ListDocuments()
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	docs := make(Documents)
	for _, logical := range DocumentNames {
		file, ok := pick(names, logical)
		if !ok {
			continue
		}
		data, err := src.ReadDocument(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		value, err := Decode(file, data)
		if err != nil {
			return nil, err
		}
		docs[logical] = value
	}
	if _, ok := docs[DocCampaign]; !ok {
		return nil, fmt.Errorf("%w: %s", ports.ErrDocumentNotFound, DocCampaign)
	}
	return docs, nil
}

// pick returns the first existing file for a logical name, by extension preference.
func pick(names []string, logical string) (string, bool) {
	for _, ext := range extensions {
		for _, name := range names {
			if name == logical+ext {
				return name, true
			}
		}
	}
	return "", false
}

// Decode parses a YAML or JSON document, chosen by the extension of name,
// and normalizes it to the shape encoding/json produces.
func Decode(name string, data []byte) (any, error) {
	var raw any
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		return raw, nil
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
	default:
		return nil, fmt.Errorf("unsupported document %s", name)
	}

	normalized, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize %s: %w", name, err)
	}
	var out any
	if err := json.Unmarshal(normalized, &out); err != nil {
		return nil, fmt.Errorf("failed to normalize %s: %w", name, err)
	}
	return out, nil
}

// Compile loads src and builds the content of one campaign.
func Compile(src ports.ContentSource) (domain.Content, error) {
	docs, err := Load(src)
	if err != nil {
		return domain.Content{}, err
	}
	return Build(docs)
}

// Build turns decoded documents into content.
func Build(docs Documents) (domain.Content, error) {
	var content domain.Content
	targets := map[string]any{
		DocCampaign:      &content.Campaign,
		DocLog:           &content.Log,
		DocSide:          &content.SideCampaign,
		DocErrata:        &content.Errata,
		DocEncounterSets: &content.EncounterSets,
	}
	for _, name := range DocumentNames {
		raw, ok := docs[name]
		if !ok {
			continue
		}
		if err := decodeInto(raw, targets[name]); err != nil {
			return domain.Content{}, fmt.Errorf("failed to decode %s: %w", name, err)
		}
	}
	if content.SideCampaign.Campaign.ID == "" && len(content.SideCampaign.Scenarios) > 0 {
		content.SideCampaign.Campaign.ID = content.Campaign.Campaign.ID + "_side"
	}
	return content, nil
}

func decodeInto(raw, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: sumTypeHook,
		TagName:    "json",
		Result:     out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

var (
	stepType   = reflect.TypeOf((*domain.Step)(nil)).Elem()
	inputType  = reflect.TypeOf((*domain.Input)(nil)).Elem()
	effectType = reflect.TypeOf((*domain.Effect)(nil)).Elem()
)

var errNotObject = errors.New("expected an object")

// sumTypeHook resolves the Step, Input and Effect interfaces to the variant
// named by the "type" key.
func sumTypeHook(from, to reflect.Type, data any) (any, error) {
	if to != stepType && to != inputType && to != effectType {
		return data, nil
	}
	m, ok := data.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: %w, got %T", to.Name(), errNotObject, data)
	}
	kind, _ := m["type"].(string)

	switch to {
	case stepType:
		switch domain.StepType(kind) {
		case "", domain.StepTypeGeneric:
			return variant[domain.GenericStep](m)
		case domain.StepTypeInput:
			return variant[domain.InputStep](m)
		case domain.StepTypeBranch:
			return variant[domain.BranchStep](m)
		}
		return nil, fmt.Errorf("step %v: unknown step type %q", m["id"], kind)

	case inputType:
		switch domain.InputType(kind) {
		case domain.InputTypePlayScenario:
			return variant[domain.PlayScenarioInput](m)
		case domain.InputTypeCounter:
			return variant[domain.CounterInput](m)
		case domain.InputTypeChooseOne:
			return variant[domain.ChooseOneInput](m)
		case domain.InputTypeInvestigatorStatus:
			return variant[domain.InvestigatorStatusInput](m)
		case domain.InputTypeUpgradeDecks:
			return variant[domain.UpgradeDecksInput](m)
		case domain.InputTypeProceed:
			return variant[domain.ProceedInput](m)
		}
		return nil, fmt.Errorf("unknown input type %q", kind)

	default:
		switch domain.EffectType(kind) {
		case domain.EffectTypeEarnXP:
			return variant[domain.EarnXPEffect](m)
		case domain.EffectTypeCampaignLog:
			return variant[domain.CampaignLogEffect](m)
		case domain.EffectTypeCampaignData:
			return variant[domain.CampaignDataEffect](m)
		case domain.EffectTypeTrauma:
			return variant[domain.TraumaEffect](m)
		}
		return nil, fmt.Errorf("unknown effect type %q", kind)
	}
}

func variant[T any](m map[string]any) (any, error) {
	var v T
	if err := decodeInto(m, &v); err != nil {
		return nil, err
	}
	return v, nil
}
