package observability

import (
	"context"

	"github.com/aretw0/campaignguide/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "campaignguide"

// Origin labels of the scenarios counter.
const (
	OriginExecuted = "executed"
	OriginReused   = "reused"
	OriginDerived  = "derived"
)

// Metrics holds the Prometheus collectors of campaign walks.
type Metrics struct {
	scenarios *prometheus.CounterVec
	walks     *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewMetrics creates the walk collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		scenarios: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "scenarios_processed_total",
				Help:      "Trace entries produced by campaign walks.",
			},
			[]string{"status", "origin"},
		),
		walks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "walks_total",
				Help:      "Finished campaign walks.",
			},
			[]string{"campaign_id", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "walk_duration_seconds",
				Help:      "Duration of campaign walks.",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
			[]string{"campaign_id"},
		),
	}
	for _, c := range []prometheus.Collector{m.scenarios, m.walks, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns walk hooks that record into m.
func (m *Metrics) Hooks() domain.WalkHooks {
	return domain.WalkHooks{
		OnScenarioProcessed: func(_ context.Context, e *domain.ScenarioEvent) {
			origin := OriginDerived
			switch {
			case e.Executed:
				origin = OriginExecuted
			case e.Reused:
				origin = OriginReused
			}
			m.scenarios.WithLabelValues(string(e.Status), origin).Inc()
		},
		OnWalkFinished: func(_ context.Context, e *domain.WalkEvent) {
			outcome := "ok"
			if e.Err != nil {
				outcome = "error"
			}
			m.walks.WithLabelValues(e.CampaignID, outcome).Inc()
			m.duration.WithLabelValues(e.CampaignID).Observe(e.Duration.Seconds())
		},
	}
}
