package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/campaignguide/pkg/domain"
)

// Combine returns hooks that call every non-nil callback of each set, in order.
func Combine(sets ...domain.WalkHooks) domain.WalkHooks {
	var scenario []func(context.Context, *domain.ScenarioEvent)
	var walk []func(context.Context, *domain.WalkEvent)
	for _, h := range sets {
		if h.OnScenarioProcessed != nil {
			scenario = append(scenario, h.OnScenarioProcessed)
		}
		if h.OnWalkFinished != nil {
			walk = append(walk, h.OnWalkFinished)
		}
	}

	var out domain.WalkHooks
	if len(scenario) > 0 {
		out.OnScenarioProcessed = func(ctx context.Context, e *domain.ScenarioEvent) {
			for _, fn := range scenario {
				fn(ctx, e)
			}
		}
	}
	if len(walk) > 0 {
		out.OnWalkFinished = func(ctx context.Context, e *domain.WalkEvent) {
			for _, fn := range walk {
				fn(ctx, e)
			}
		}
	}
	return out
}

// LogHooks logs scenario entries at debug level and finished walks at info
// level, or at error level when the walk failed.
func LogHooks(logger *slog.Logger) domain.WalkHooks {
	return domain.WalkHooks{
		OnScenarioProcessed: func(ctx context.Context, e *domain.ScenarioEvent) {
			logger.DebugContext(ctx, "scenario_processed",
				"scenario_id", e.ScenarioID,
				"status", e.Status,
				"executed", e.Executed,
				"reused", e.Reused,
			)
		},
		OnWalkFinished: func(ctx context.Context, e *domain.WalkEvent) {
			attrs := []any{
				"campaign_id", e.CampaignID,
				"scenarios", e.Scenarios,
				"executed", e.Executed,
				"reused", e.Reused,
				"duration", e.Duration,
			}
			if e.Err != nil {
				logger.ErrorContext(ctx, "walk_failed", append(attrs, "error", e.Err)...)
				return
			}
			logger.InfoContext(ctx, "walk_finished", attrs...)
		},
	}
}
