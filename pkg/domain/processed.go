package domain

// Status is the discriminator of a ProcessedScenario.
type Status string

const (
	// StatusSkipped: never started, and the log skips it or the campaign is lost.
	StatusSkipped Status = "skipped"
	// StatusPlayable: the single scenario the player may start next.
	StatusPlayable Status = "playable"
	// StatusLocked: would be playable, but an earlier scenario holds the slot.
	StatusLocked Status = "locked"
	// StatusPlaceholder: not started, authored as a placeholder.
	StatusPlaceholder Status = "placeholder"
	// StatusStarted: the script stopped at an unanswered input.
	StatusStarted Status = "started"
	// StatusCompleted: the script ran to the end.
	StatusCompleted Status = "completed"
)

// UnprocessedScenario is a scenario id resolved to its definition.
type UnprocessedScenario struct {
	ID       ScenarioID
	Scenario *Scenario
	Side     bool
}

// ResolvedStep is one step the executor reached while running a script.
type ResolvedStep struct {
	ID      string `json:"id"`
	Step    Step   `json:"-"`
	Pending bool   `json:"pending,omitempty"`
}

// ExecutedScenario is the outcome of running one scenario script.
type ExecutedScenario struct {
	InProgress        bool
	LatestCampaignLog CampaignLog
	Steps             []ResolvedStep
}

// ProcessedScenario is one entry of the execution trace.
// Inputs and Rules are only set for started and completed entries.
type ProcessedScenario struct {
	Status   Status     `json:"status"`
	ID       ScenarioID `json:"id"`
	Scenario *Scenario  `json:"-"`
	Side     bool       `json:"side,omitempty"`
	Location string     `json:"location,omitempty"`

	// LatestCampaignLog is owned by this entry; the walk never mutates it.
	LatestCampaignLog CampaignLog `json:"-"`

	CanUndo     bool           `json:"can_undo"`
	CloseOnUndo bool           `json:"close_on_undo"`
	Steps       []ResolvedStep `json:"steps"`
	Inputs      []Entry        `json:"inputs,omitempty"`
	Rules       []Rule         `json:"rules,omitempty"`
}

// Played reports whether the scenario script has executed.
func (p *ProcessedScenario) Played() bool {
	return p.Status == StatusStarted || p.Status == StatusCompleted
}

// ProcessedCampaign is the full execution trace of a campaign.
type ProcessedCampaign struct {
	Scenarios   []ProcessedScenario `json:"scenarios"`
	CampaignLog CampaignLog         `json:"-"`
}

// Scenario returns the trace entry with the given encoded id.
func (c *ProcessedCampaign) Scenario(encodedScenarioID string) (ProcessedScenario, bool) {
	if c == nil {
		return ProcessedScenario{}, false
	}
	for _, s := range c.Scenarios {
		if s.ID.EncodedScenarioID == encodedScenarioID {
			return s, true
		}
	}
	return ProcessedScenario{}, false
}

// Playable returns the scenario the player may start next, if any.
func (c *ProcessedCampaign) Playable() (ProcessedScenario, bool) {
	if c == nil {
		return ProcessedScenario{}, false
	}
	for _, s := range c.Scenarios {
		if s.Status == StatusPlayable {
			return s, true
		}
	}
	return ProcessedScenario{}, false
}

// Undoable returns the single entry whose newest decision may be undone.
func (c *ProcessedCampaign) Undoable() (ProcessedScenario, bool) {
	if c == nil {
		return ProcessedScenario{}, false
	}
	for _, s := range c.Scenarios {
		if s.CanUndo {
			return s, true
		}
	}
	return ProcessedScenario{}, false
}

// InProgress returns the scenario holding the playable slot: the started
// entry, or the playable one when nothing is started.
func (c *ProcessedCampaign) InProgress() (ProcessedScenario, bool) {
	if c == nil {
		return ProcessedScenario{}, false
	}
	for _, s := range c.Scenarios {
		if s.Status == StatusStarted || s.Status == StatusPlayable {
			return s, true
		}
	}
	return ProcessedScenario{}, false
}
