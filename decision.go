package campaignguide

import (
	"errors"
	"fmt"

	"github.com/aretw0/campaignguide/pkg/adapters/memory"
	"github.com/aretw0/campaignguide/pkg/domain"
)

// ErrInvalidDecision is matched (errors.Is) by every rejected Decision.
var ErrInvalidDecision = errors.New("invalid decision")

// Decision is one player input addressed to a scenario step. It is the
// transport shape of a decision: Kind selects which value field is read.
type Decision struct {
	Kind     domain.EntryKind `json:"type"`
	Scenario string           `json:"scenario"`
	Step     string           `json:"step,omitempty"`

	Number  int                       `json:"number,omitempty"`
	Bool    bool                      `json:"bool,omitempty"`
	Text    string                    `json:"text,omitempty"`
	InputID string                    `json:"input_id,omitempty"`
	Strings domain.StringChoices      `json:"strings,omitempty"`
	Side    *domain.SideScenarioEntry `json:"side,omitempty"`

	Numbers    domain.NumberChoices          `json:"numbers,omitempty"`
	DeckEdits  *domain.DeckEdits             `json:"deck_edits,omitempty"`
	Supplies   domain.SupplyCounts           `json:"supplies,omitempty"`
	Embark     *domain.EmbarkData            `json:"embark,omitempty"`
	Trauma     domain.InvestigatorTraumaData `json:"trauma,omitempty"`
	LogEntries []string                      `json:"log_entries,omitempty"`

	// Linked marks a campaign_link decision received from the linked
	// campaign. It is kept apart from this campaign's own log and never undone.
	Linked bool `json:"linked,omitempty"`
}

// Apply records the decision in d.
func (x Decision) Apply(d *memory.Decisions) error {
	if x.Scenario == "" {
		return fmt.Errorf("%w: scenario is required", ErrInvalidDecision)
	}
	if _, err := domain.ParseScenarioID(x.Scenario); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDecision, err)
	}
	if x.Linked && x.Kind != domain.EntryCampaignLink {
		return fmt.Errorf("%w: only %q decisions can be linked", ErrInvalidDecision, domain.EntryCampaignLink)
	}
	switch x.Kind {
	case domain.EntryStartScenario:
		d.StartScenario(x.Scenario)
		return nil
	case domain.EntryStartSideScenario:
		if x.Side == nil || x.Side.Scenario == "" {
			return fmt.Errorf("%w: side scenario is required", ErrInvalidDecision)
		}
		side := *x.Side
		if side.Type == "" {
			side.Type = domain.SideScenarioOfficial
		}
		d.StartSideScenario(x.Scenario, side)
		return nil
	case domain.EntryEmbark, domain.EntryArrive:
		if x.Embark == nil || x.Embark.Destination == "" {
			return fmt.Errorf("%w: embark destination is required for %q", ErrInvalidDecision, x.Kind)
		}
		if x.Kind == domain.EntryEmbark {
			d.SetEmbark(x.Scenario, *x.Embark)
		} else {
			d.SetArrive(x.Scenario, *x.Embark)
		}
		return nil
	case domain.EntryInterScenario:
		if x.Trauma == nil && x.LogEntries == nil {
			return fmt.Errorf("%w: trauma or log entries are required", ErrInvalidDecision)
		}
		d.SetInterScenario(x.Scenario, x.Trauma, x.LogEntries)
		return nil
	}

	if x.Step == "" {
		return fmt.Errorf("%w: step is required for %q", ErrInvalidDecision, x.Kind)
	}
	switch x.Kind {
	case domain.EntryChoice:
		d.SetChoice(x.Step, x.Number, x.Scenario)
	case domain.EntryDecision:
		d.SetDecision(x.Step, x.Bool, x.Scenario)
	case domain.EntryCount:
		d.SetCount(x.Step, x.Number, x.Scenario)
	case domain.EntryText:
		d.SetText(x.Step, x.Text, x.Scenario, x.InputID)
	case domain.EntryStringChoices:
		d.SetStringChoices(x.Step, x.Strings, x.Scenario)
	case domain.EntryNumberChoices:
		if x.Numbers == nil {
			return fmt.Errorf("%w: numbers are required", ErrInvalidDecision)
		}
		d.SetNumberChoices(x.Step, x.Numbers, x.DeckEdits, x.Scenario)
	case domain.EntrySupplies:
		if x.Supplies == nil {
			return fmt.Errorf("%w: supplies are required", ErrInvalidDecision)
		}
		d.SetSupplies(x.Step, x.Supplies, x.Scenario)
	case domain.EntryCampaignLink:
		if x.Text == "" {
			return fmt.Errorf("%w: link decision text is required", ErrInvalidDecision)
		}
		if x.Linked {
			d.Link(domain.Entry{Kind: domain.EntryCampaignLink, Scenario: x.Scenario, Step: x.Step, Text: x.Text})
		} else {
			d.SetCampaignLink(x.Step, x.Text, x.Scenario)
		}
	default:
		return fmt.Errorf("%w: unsupported type %q", ErrInvalidDecision, x.Kind)
	}
	return nil
}
