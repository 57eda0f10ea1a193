package observability_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/campaignguide/pkg/domain"
	"github.com/aretw0/campaignguide/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findMetric(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) *dto.Metric {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
	next:
		for _, m := range f.GetMetric() {
			for _, l := range m.GetLabel() {
				if want, ok := labels[l.GetName()]; ok && want != l.GetValue() {
					continue next
				}
			}
			return m
		}
	}
	return nil
}

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	require.NoError(t, err)
	hooks := metrics.Hooks()
	ctx := context.Background()

	hooks.OnScenarioProcessed(ctx, &domain.ScenarioEvent{ScenarioID: "a", Status: domain.StatusCompleted, Executed: true})
	hooks.OnScenarioProcessed(ctx, &domain.ScenarioEvent{ScenarioID: "b", Status: domain.StatusCompleted, Reused: true})
	hooks.OnScenarioProcessed(ctx, &domain.ScenarioEvent{ScenarioID: "c", Status: domain.StatusLocked})
	hooks.OnScenarioProcessed(ctx, &domain.ScenarioEvent{ScenarioID: "d", Status: domain.StatusLocked})
	hooks.OnWalkFinished(ctx, &domain.WalkEvent{CampaignID: "night", Duration: 2 * time.Millisecond})
	hooks.OnWalkFinished(ctx, &domain.WalkEvent{CampaignID: "night", Err: errors.New("boom")})

	executed := findMetric(t, reg, "campaignguide_scenarios_processed_total", map[string]string{"status": "completed", "origin": observability.OriginExecuted})
	require.NotNil(t, executed)
	assert.Equal(t, 1.0, executed.GetCounter().GetValue())

	reused := findMetric(t, reg, "campaignguide_scenarios_processed_total", map[string]string{"status": "completed", "origin": observability.OriginReused})
	require.NotNil(t, reused)
	assert.Equal(t, 1.0, reused.GetCounter().GetValue())

	locked := findMetric(t, reg, "campaignguide_scenarios_processed_total", map[string]string{"status": "locked", "origin": observability.OriginDerived})
	require.NotNil(t, locked)
	assert.Equal(t, 2.0, locked.GetCounter().GetValue())

	ok := findMetric(t, reg, "campaignguide_walks_total", map[string]string{"campaign_id": "night", "outcome": "ok"})
	require.NotNil(t, ok)
	assert.Equal(t, 1.0, ok.GetCounter().GetValue())

	failed := findMetric(t, reg, "campaignguide_walks_total", map[string]string{"campaign_id": "night", "outcome": "error"})
	require.NotNil(t, failed)
	assert.Equal(t, 1.0, failed.GetCounter().GetValue())

	duration := findMetric(t, reg, "campaignguide_walk_duration_seconds", map[string]string{"campaign_id": "night"})
	require.NotNil(t, duration)
	assert.Equal(t, uint64(2), duration.GetHistogram().GetSampleCount())
}

func TestMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	_, err = observability.NewMetrics(reg)
	var already prometheus.AlreadyRegisteredError
	assert.ErrorAs(t, err, &already)
}
