package logbook

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/aretw0/campaignguide/pkg/domain"
)

var _ domain.CampaignLog = (*Log)(nil)

// Log is an immutable campaign log. Every change returns a new *Log and
// leaves the receiver untouched, so a log handed to a trace entry stays valid.
type Log struct {
	scenarioID     string
	nextScenarioID string
	result         domain.CampaignResult
	scenarioIDs    []string
	standalone     bool

	statuses map[string]domain.LogScenarioStatus
	sections map[string][]string
	xp       map[string]int
	sideXP   int
	trauma   map[string]domain.Trauma
}

// New returns an empty campaign log.
func New(standalone bool) *Log {
	return &Log{
		standalone: standalone,
		statuses:   map[string]domain.LogScenarioStatus{},
		sections:   map[string][]string{},
		xp:         map[string]int{},
		trauma:     map[string]domain.Trauma{},
	}
}

func (l *Log) ScenarioID() string {
	return l.scenarioID
}

func (l *Log) NextScenarioID() string {
	return l.nextScenarioID
}

// ScenarioStatus is keyed by the exact encoded id. A replay attempt has its
// own status, so skipping "a" leaves "a#1" untouched.
func (l *Log) ScenarioStatus(scenarioID string) domain.LogScenarioStatus {
	if status, ok := l.statuses[scenarioID]; ok {
		return status
	}
	return domain.LogStatusOther
}

func (l *Log) Result() domain.CampaignResult {
	return l.result
}

func (l *Log) ScenarioIDs() []string {
	return l.scenarioIDs
}

// Standalone reports whether the log tracks a single standalone scenario.
func (l *Log) Standalone() bool {
	return l.standalone
}

// HasEntry reports whether a section holds the given entry id.
func (l *Log) HasEntry(section, id string) bool {
	return slices.Contains(l.sections[section], id)
}

// Entries returns the entry ids of a section in recording order.
func (l *Log) Entries(section string) []string {
	return slices.Clone(l.sections[section])
}

// XP returns the experience earned by an investigator, shared awards included.
func (l *Log) XP(investigator string) int {
	if investigator == domain.AllInvestigators {
		return l.xp[domain.AllInvestigators]
	}
	return l.xp[investigator] + l.xp[domain.AllInvestigators]
}

// SideScenarioXP is the experience spent entering side scenarios.
func (l *Log) SideScenarioXP() int {
	return l.sideXP
}

// Trauma returns the trauma recorded for an investigator.
func (l *Log) Trauma(investigator string) domain.Trauma {
	return l.trauma[investigator]
}

func (l *Log) clone() *Log {
	c := *l
	c.statuses = maps.Clone(l.statuses)
	c.sections = maps.Clone(l.sections)
	c.xp = maps.Clone(l.xp)
	c.trauma = maps.Clone(l.trauma)
	return &c
}

// enterScenario starts writing a new scenario. A pinned successor only
// applies to the scenario that pinned it, so it is cleared.
func (l *Log) enterScenario(encodedScenarioID string) *Log {
	c := l.clone()
	c.scenarioID = encodedScenarioID
	c.nextScenarioID = ""
	c.statuses[encodedScenarioID] = domain.LogStatusStarted
	return c
}

func (l *Log) withStatus(scenarioID string, status domain.LogScenarioStatus) *Log {
	c := l.clone()
	c.statuses[scenarioID] = status
	return c
}

func (l *Log) apply(effects []domain.Effect, scale int) *Log {
	if len(effects) == 0 {
		return l
	}
	c := l.clone()
	for _, effect := range effects {
		c.applyInPlace(effect, scale)
	}
	return c
}

// applyInPlace must only be called on a fresh clone.
func (l *Log) applyInPlace(effect domain.Effect, scale int) {
	switch e := effect.(type) {
	case domain.EarnXPEffect:
		amount := e.Bonus + scale
		if l.standalone {
			return
		}
		l.xp[e.Investigator] += amount
		if e.SideScenarioCost {
			l.sideXP -= amount
		}
	case domain.CampaignLogEffect:
		current := l.sections[e.Section]
		if e.Remove {
			idx := slices.Index(current, e.ID)
			if idx >= 0 {
				l.sections[e.Section] = slices.Delete(slices.Clone(current), idx, idx+1)
			}
			return
		}
		if !slices.Contains(current, e.ID) {
			l.sections[e.Section] = append(slices.Clone(current), e.ID)
		}
	case domain.CampaignDataEffect:
		switch e.Setting {
		case domain.SettingNextScenario:
			l.nextScenarioID = e.Value
		case domain.SettingResult:
			l.result = domain.CampaignResult(e.Value)
		case domain.SettingScenarioStatus:
			l.statuses[e.ScenarioID] = domain.LogScenarioStatus(e.Value)
		case domain.SettingScenarios:
			l.scenarioIDs = slices.Clone(e.Scenarios)
		}
	case domain.TraumaEffect:
		t := l.trauma[e.Investigator]
		t.Physical += e.Physical
		t.Mental += e.Mental
		t.Killed = t.Killed || e.Killed
		t.Insane = t.Insane || e.Insane
		l.trauma[e.Investigator] = t
	}
}

type logView struct {
	ScenarioID     string                              `json:"scenario_id,omitempty"`
	NextScenarioID string                              `json:"next_scenario_id,omitempty"`
	Result         domain.CampaignResult               `json:"result,omitempty"`
	ScenarioIDs    []string                            `json:"scenario_ids,omitempty"`
	Statuses       map[string]domain.LogScenarioStatus `json:"statuses,omitempty"`
	Sections       map[string][]string                 `json:"sections,omitempty"`
	XP             map[string]int                      `json:"xp,omitempty"`
	SideXP         int                                 `json:"side_scenario_xp,omitempty"`
	Trauma         map[string]domain.Trauma            `json:"trauma,omitempty"`
}

// MarshalJSON renders the log for transport adapters.
func (l *Log) MarshalJSON() ([]byte, error) {
	return json.Marshal(logView{
		ScenarioID:     l.scenarioID,
		NextScenarioID: l.nextScenarioID,
		Result:         l.result,
		ScenarioIDs:    l.scenarioIDs,
		Statuses:       l.statuses,
		Sections:       l.sections,
		XP:             l.xp,
		SideXP:         l.sideXP,
		Trauma:         l.trauma,
	})
}
