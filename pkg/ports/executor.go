package ports

import "github.com/aretw0/campaignguide/pkg/domain"

// StepExecutor runs one scenario script against the running campaign log.
// It must be deterministic: equal decisions and equal logs yield equal output.
type StepExecutor interface {
	SetupSteps(state ScenarioState, scenario domain.UnprocessedScenario, log domain.CampaignLog, standalone bool) (domain.ExecutedScenario, error)
}

// LogFactory seeds the empty campaign log a walk starts from.
type LogFactory interface {
	NewLog(state CampaignState, standalone bool) domain.CampaignLog
}
