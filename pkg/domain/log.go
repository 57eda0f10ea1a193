package domain

// LogScenarioStatus is how the campaign log classifies a scenario.
type LogScenarioStatus string

const (
	LogStatusOther      LogScenarioStatus = ""
	LogStatusSkipped    LogScenarioStatus = "skipped"
	LogStatusStarted    LogScenarioStatus = "started"
	LogStatusResolution LogScenarioStatus = "resolution"
	LogStatusCompleted  LogScenarioStatus = "completed"
)

// CampaignResult is the outcome of the campaign recorded so far.
type CampaignResult string

const (
	ResultNone CampaignResult = ""
	ResultWin  CampaignResult = "win"
	ResultLose CampaignResult = "lose"
)

// CampaignLog is the accumulated campaign state threaded through a walk.
// Implementations must be immutable: applying effects yields a new value and
// never changes a log already handed to a ProcessedScenario.
type CampaignLog interface {
	// ScenarioID is the encoded id of the scenario that last wrote the log, or "".
	ScenarioID() string
	// NextScenarioID is a successor pinned by an effect, or "".
	NextScenarioID() string
	// ScenarioStatus classifies a scenario by its encoded id.
	ScenarioStatus(scenarioID string) LogScenarioStatus
	// Result is the campaign outcome recorded so far.
	Result() CampaignResult
	// ScenarioIDs overrides the authored play order when non-nil.
	ScenarioIDs() []string
}
