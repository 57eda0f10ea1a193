package memory

import (
	"sync"

	"github.com/aretw0/campaignguide/pkg/domain"
	"github.com/aretw0/campaignguide/pkg/ports"
)

var _ ports.CampaignState = (*Decisions)(nil)

// Decisions implements ports.CampaignState over an ordered decision log.
// Later entries shadow earlier ones with the same kind, scenario and step.
// Safe for concurrent use.
type Decisions struct {
	mu         sync.RWMutex
	campaignID string
	entries    []domain.Entry
	linked     []domain.Entry
}

// NewDecisions creates an empty decision log for a campaign.
func NewDecisions(campaignID string) *Decisions {
	return &Decisions{campaignID: campaignID}
}

// FromSnapshot rebuilds a decision log from its persisted form.
func FromSnapshot(s *domain.Snapshot) *Decisions {
	d := &Decisions{}
	d.Restore(s)
	return d
}

// Snapshot returns the persisted form of the decision log.
func (d *Decisions) Snapshot() *domain.Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return cloneSnapshot(&domain.Snapshot{
		CampaignID: d.campaignID,
		Entries:    d.entries,
		Linked:     d.linked,
	})
}

// Restore replaces the decision log with the snapshot contents.
func (d *Decisions) Restore(s *domain.Snapshot) {
	copied := cloneSnapshot(s)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.campaignID = copied.CampaignID
	d.entries = copied.Entries
	d.linked = copied.Linked
}

// CampaignID returns the id of the campaign the decisions belong to.
func (d *Decisions) CampaignID() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.campaignID
}

// Len returns the number of recorded entries, linked entries excluded.
func (d *Decisions) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}

func (d *Decisions) record(e domain.Entry) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries = append(d.entries, e)
}

// latest returns the newest entry matching kind, scenario and step.
func (d *Decisions) latest(kind domain.EntryKind, scenarioID, step string) (domain.Entry, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for i := len(d.entries) - 1; i >= 0; i-- {
		e := d.entries[i]
		if e.Kind == kind && e.Scenario == scenarioID && e.Step == step {
			return e, true
		}
	}
	return domain.Entry{}, false
}

// StartScenario marks an encoded scenario id as started.
func (d *Decisions) StartScenario(encodedScenarioID string) {
	d.record(domain.Entry{Kind: domain.EntryStartScenario, Scenario: encodedScenarioID})
}

// StartSideScenario records a side scenario to be played after the given scenario.
func (d *Decisions) StartSideScenario(afterScenarioID string, side domain.SideScenarioEntry) {
	d.record(domain.Entry{Kind: domain.EntryStartSideScenario, Scenario: afterScenarioID, Side: &side})
}

// SetEmbark records travel started from a scenario.
func (d *Decisions) SetEmbark(scenarioID string, data domain.EmbarkData) {
	d.record(domain.Entry{Kind: domain.EntryEmbark, Scenario: scenarioID, Embark: &data})
}

// SetArrive records the arrival of a travel into a scenario.
func (d *Decisions) SetArrive(scenarioID string, data domain.EmbarkData) {
	d.record(domain.Entry{Kind: domain.EntryArrive, Scenario: scenarioID, Embark: &data})
}

// SetInterScenario records trauma and log entries chosen between scenarios.
func (d *Decisions) SetInterScenario(scenarioID string, trauma domain.InvestigatorTraumaData, logEntries []string) {
	d.record(domain.Entry{Kind: domain.EntryInterScenario, Scenario: scenarioID, Trauma: trauma, LogEntries: logEntries})
}

// Link appends decisions received from a linked campaign.
func (d *Decisions) Link(entries ...domain.Entry) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.linked = append(d.linked, entries...)
}

func (d *Decisions) StartedScenario(encodedScenarioID string) bool {
	_, ok := d.latest(domain.EntryStartScenario, encodedScenarioID, "")
	return ok
}

func (d *Decisions) ScenarioEntries(id domain.ScenarioID) []domain.Entry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []domain.Entry
	for _, e := range d.entries {
		if e.Scenario == id.EncodedScenarioID {
			out = append(out, e)
		}
	}
	return out
}

func (d *Decisions) LinkedEntries() []domain.Entry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]domain.Entry(nil), d.linked...)
}

func (d *Decisions) SideScenario(encodedScenarioID string) (domain.SideScenarioEntry, bool) {
	e, ok := d.latest(domain.EntryStartSideScenario, encodedScenarioID, "")
	if !ok || e.Side == nil {
		return domain.SideScenarioEntry{}, false
	}
	return *e.Side, true
}

func (d *Decisions) SideScenarioEmbarkData(scenarioID string) (domain.EmbarkData, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for i := len(d.entries) - 1; i >= 0; i-- {
		e := d.entries[i]
		if e.Kind == domain.EntryEmbark && e.Embark != nil && e.Embark.NextScenario == scenarioID {
			return *e.Embark, true
		}
	}
	return domain.EmbarkData{}, false
}

// CloseOnUndo is true when only the start marker is left to undo.
func (d *Decisions) CloseOnUndo(encodedScenarioID string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for i := len(d.entries) - 1; i >= 0; i-- {
		e := d.entries[i]
		if e.Scenario == encodedScenarioID {
			return e.Kind == domain.EntryStartScenario
		}
	}
	return false
}

func (d *Decisions) Choice(id, scenarioID string) (int, bool) {
	e, ok := d.latest(domain.EntryChoice, scenarioID, id)
	return e.Number, ok
}

func (d *Decisions) SetChoice(id string, value int, scenarioID string) {
	d.record(domain.Entry{Kind: domain.EntryChoice, Scenario: scenarioID, Step: id, Number: value})
}

func (d *Decisions) Text(id, scenarioID string) (string, bool) {
	e, ok := d.latest(domain.EntryText, scenarioID, id)
	return e.Text, ok
}

func (d *Decisions) SetText(id, value, scenarioID, inputID string) {
	d.record(domain.Entry{Kind: domain.EntryText, Scenario: scenarioID, Step: id, Text: value, InputID: inputID})
}

func (d *Decisions) Decision(id, scenarioID string) (bool, bool) {
	e, ok := d.latest(domain.EntryDecision, scenarioID, id)
	return e.Bool, ok
}

func (d *Decisions) SetDecision(id string, value bool, scenarioID string) {
	d.record(domain.Entry{Kind: domain.EntryDecision, Scenario: scenarioID, Step: id, Bool: value})
}

func (d *Decisions) Count(id, scenarioID string) (int, bool) {
	e, ok := d.latest(domain.EntryCount, scenarioID, id)
	return e.Number, ok
}

func (d *Decisions) SetCount(id string, value int, scenarioID string) {
	d.record(domain.Entry{Kind: domain.EntryCount, Scenario: scenarioID, Step: id, Number: value})
}

func (d *Decisions) NumberChoices(id, scenarioID string) (domain.NumberChoices, *domain.DeckEdits, bool) {
	e, ok := d.latest(domain.EntryNumberChoices, scenarioID, id)
	return e.Numbers, e.DeckEdits, ok
}

func (d *Decisions) SetNumberChoices(id string, value domain.NumberChoices, edits *domain.DeckEdits, scenarioID string) {
	d.record(domain.Entry{Kind: domain.EntryNumberChoices, Scenario: scenarioID, Step: id, Numbers: value, DeckEdits: edits})
}

func (d *Decisions) StringChoices(id, scenarioID string) (domain.StringChoices, bool) {
	e, ok := d.latest(domain.EntryStringChoices, scenarioID, id)
	return e.Strings, ok
}

func (d *Decisions) SetStringChoices(id string, value domain.StringChoices, scenarioID string) {
	d.record(domain.Entry{Kind: domain.EntryStringChoices, Scenario: scenarioID, Step: id, Strings: value})
}

func (d *Decisions) Supplies(id, scenarioID string) (domain.SupplyCounts, bool) {
	e, ok := d.latest(domain.EntrySupplies, scenarioID, id)
	return e.Supplies, ok
}

func (d *Decisions) SetSupplies(id string, value domain.SupplyCounts, scenarioID string) {
	d.record(domain.Entry{Kind: domain.EntrySupplies, Scenario: scenarioID, Step: id, Supplies: value})
}

// CampaignLink reads a sent decision from this campaign, or a received one
// from the linked entries regardless of scenario.
func (d *Decisions) CampaignLink(side domain.LinkSide, id, scenarioID string) (string, bool) {
	if side == domain.LinkSend {
		e, ok := d.latest(domain.EntryCampaignLink, scenarioID, id)
		return e.Text, ok
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	for i := len(d.linked) - 1; i >= 0; i-- {
		e := d.linked[i]
		if e.Kind == domain.EntryCampaignLink && e.Step == id {
			return e.Text, true
		}
	}
	return "", false
}

func (d *Decisions) SetCampaignLink(id, decision, scenarioID string) {
	d.record(domain.Entry{Kind: domain.EntryCampaignLink, Scenario: scenarioID, Step: id, Text: decision})
}

func (d *Decisions) InterScenarioInvestigatorData(scenarioID string) (domain.InvestigatorTraumaData, bool) {
	e, ok := d.latest(domain.EntryInterScenario, scenarioID, "")
	if !ok || e.Trauma == nil {
		return nil, false
	}
	return e.Trauma, true
}

func (d *Decisions) InterScenarioCampaignLogEntries(scenarioID string) ([]string, bool) {
	e, ok := d.latest(domain.EntryInterScenario, scenarioID, "")
	if !ok || e.LogEntries == nil {
		return nil, false
	}
	return e.LogEntries, true
}

func (d *Decisions) ScenarioEmbarkData(scenarioID string) (domain.EmbarkData, bool) {
	e, ok := d.latest(domain.EntryEmbark, scenarioID, "")
	if !ok || e.Embark == nil {
		return domain.EmbarkData{}, false
	}
	return *e.Embark, true
}

func (d *Decisions) ScenarioArriveData(scenarioID string) (domain.EmbarkData, bool) {
	e, ok := d.latest(domain.EntryArrive, scenarioID, "")
	if !ok || e.Embark == nil {
		return domain.EmbarkData{}, false
	}
	return *e.Embark, true
}

// Undo drops the newest entry recorded for the scenario, the start marker included.
func (d *Decisions) Undo(scenarioID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := len(d.entries) - 1; i >= 0; i-- {
		if d.entries[i].Scenario == scenarioID {
			d.entries = append(d.entries[:i:i], d.entries[i+1:]...)
			return
		}
	}
}
