package memory

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/aretw0/campaignguide/pkg/domain"
	"github.com/aretw0/campaignguide/pkg/ports"
)

var _ ports.ContentSource = (*Loader)(nil)

// Loader implements ports.ContentSource over an in-memory map of raw documents.
type Loader struct {
	docs map[string][]byte
}

// NewLoader creates a loader from document name to raw YAML or JSON text.
func NewLoader(data map[string]string) *Loader {
	docs := make(map[string][]byte, len(data))
	for name, text := range data {
		docs[name] = []byte(text)
	}
	return &Loader{docs: docs}
}

// NewFromContent serializes already built content into JSON documents.
// Empty optional parts are left out.
func NewFromContent(content domain.Content) (*Loader, error) {
	parts := map[string]any{"campaign.json": content.Campaign}
	if content.Log.CampaignID != "" || len(content.Log.Sections) > 0 || len(content.Log.Supplies) > 0 {
		parts["log.json"] = content.Log
	}
	if content.SideCampaign.Campaign.ID != "" || len(content.SideCampaign.Scenarios) > 0 {
		parts["side.json"] = content.SideCampaign
	}
	if len(content.Errata.Cards)+len(content.Errata.FAQ)+len(content.Errata.CampaignFAQ) > 0 {
		parts["errata.json"] = content.Errata
	}
	if len(content.EncounterSets) > 0 {
		parts["encounter_sets.json"] = content.EncounterSets
	}

	docs := make(map[string][]byte, len(parts))
	for name, part := range parts {
		data, err := json.Marshal(part)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s: %w", name, err)
		}
		docs[name] = data
	}
	return &Loader{docs: docs}, nil
}

// ReadDocument returns the raw bytes of a document.
func (l *Loader) ReadDocument(name string) ([]byte, error) {
	data, ok := l.docs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ports.ErrDocumentNotFound, name)
	}
	return data, nil
}

// ListDocuments returns all document names in lexical order.
func (l *Loader) ListDocuments() ([]string, error) {
	return slices.Sorted(maps.Keys(l.docs)), nil
}
