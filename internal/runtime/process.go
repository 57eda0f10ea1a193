package runtime

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/aretw0/campaignguide/pkg/domain"
	"github.com/aretw0/campaignguide/pkg/ports"
	"github.com/aretw0/campaignguide/pkg/scenario"
)

// walk is the per-call bookkeeping of ProcessAllScenarios.
// The campaign log is not part of it: it is threaded through return values.
type walk struct {
	ctx        context.Context
	state      ports.CampaignState
	standalone bool
	lang       string
	previous   map[string]*domain.ProcessedScenario

	trace    []domain.ProcessedScenario
	emitted  map[string]bool
	executed int
	reused   int
}

// ProcessAllScenarios walks the campaign in play order and returns the full
// execution trace. With a standaloneID the walk starts at that scenario
// instead of the campaign setup. Entries of previous whose recorded inputs
// still match are reused without running their scripts again. lang only
// affects the order of surfaced rules.
//
// Any failure aborts the whole walk: the result is nil and the error is a
// *domain.WalkError wrapping the cause.
func (g *Guide) ProcessAllScenarios(ctx context.Context, state ports.CampaignState, standaloneID string, previous *domain.ProcessedCampaign, lang string) (result *domain.ProcessedCampaign, err error) {
	started := time.Now()
	w := &walk{
		ctx:        ctx,
		state:      state,
		standalone: standaloneID != "",
		lang:       lang,
		previous:   indexTrace(previous),
		emitted:    make(map[string]bool),
	}
	g.logger.Debug("campaign walk started",
		"campaign_id", g.CycleCode(),
		"standalone", standaloneID,
		"previous", len(w.previous),
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("step executor panicked: %v", r)
		}
		if err != nil {
			err = &domain.WalkError{Err: err}
			result = nil
			g.logger.Warn("campaign walk aborted", "campaign_id", g.CycleCode(), "err", err)
		}
		g.emitWalkFinished(ctx, w, time.Since(started), err)
	}()

	log := g.logs.NewLog(state, w.standalone)

	entry := domain.CampaignSetupID
	if w.standalone {
		entry = standaloneID
	}
	un, err := g.FindScenario(entry)
	if err != nil {
		return nil, err
	}
	if log, err = g.processChain(w, un, log); err != nil {
		return nil, err
	}

	// Scenarios unreachable through the chain are still part of the campaign.
	ids := log.ScenarioIDs()
	if ids == nil {
		ids = g.campaign.Campaign.Scenarios
	}
	for _, id := range ids {
		if w.emitted[id] {
			continue
		}
		un, err := g.FindScenario(id)
		if err != nil {
			return nil, err
		}
		if log, err = g.processChain(w, un, log); err != nil {
			return nil, err
		}
	}

	lockExtraPlayable(w.trace)
	keepLastUndo(w.trace)

	g.logger.Debug("campaign walk finished",
		"campaign_id", g.CycleCode(),
		"scenarios", len(w.trace),
		"executed", w.executed,
		"reused", w.reused,
	)
	return &domain.ProcessedCampaign{Scenarios: w.trace, CampaignLog: log}, nil
}

// processChain follows next-scenario pointers from un while scenarios
// complete, appending every entry to the trace. It returns the log after the
// last entry. A pointer back into the chain is a *domain.ScenarioCycleError;
// a pointer to an entry emitted by an earlier chain ends this one.
func (g *Guide) processChain(w *walk, un domain.UnprocessedScenario, log domain.CampaignLog) (domain.CampaignLog, error) {
	var chain []string
	inChain := make(map[string]bool)

	for {
		if err := w.ctx.Err(); err != nil {
			return nil, err
		}
		encoded := un.ID.EncodedScenarioID
		if inChain[encoded] {
			return nil, &domain.ScenarioCycleError{ScenarioID: encoded, Trace: append(chain, encoded)}
		}
		if w.emitted[encoded] {
			g.logger.Debug("chain joins an earlier chain", "scenario_id", encoded)
			return log, nil
		}
		chain = append(chain, encoded)
		inChain[encoded] = true

		entry, executed, err := g.processScenario(w, un, log)
		if err != nil {
			return nil, err
		}
		w.trace = append(w.trace, entry)
		w.emitted[encoded] = true
		g.emitScenarioProcessed(w.ctx, entry, executed)

		log = entry.LatestCampaignLog
		if entry.Status != domain.StatusCompleted {
			return log, nil
		}

		next, ok, err := g.NextScenario(w.state, log, true)
		if err != nil {
			return nil, err
		}
		if !ok {
			return log, nil
		}
		un = next
	}
}

// processScenario produces the trace entry of one scenario from the log
// before it. The reported bool is true when the step executor ran.
func (g *Guide) processScenario(w *walk, un domain.UnprocessedScenario, log domain.CampaignLog) (domain.ProcessedScenario, bool, error) {
	encoded := un.ID.EncodedScenarioID

	if !w.state.StartedScenario(encoded) {
		entry := domain.ProcessedScenario{
			ID:                un.ID,
			Scenario:          un.Scenario,
			Side:              un.Side,
			LatestCampaignLog: log,
		}
		lost := log.Result() == domain.ResultLose && un.Scenario.Type != domain.ScenarioTypeEpilogue
		if lost || log.ScenarioStatus(encoded) == domain.LogStatusSkipped {
			entry.Status = domain.StatusSkipped
			return entry, false, nil
		}
		entry.Status = domain.StatusPlayable
		if un.Scenario.Type == domain.ScenarioTypePlaceholder {
			entry.Status = domain.StatusPlaceholder
		}
		if main := un.Scenario.MainScenarioID; main != "" {
			if embark, ok := w.state.SideScenarioEmbarkData(main); ok {
				entry.Location = embark.Destination
			}
		}
		return entry, false, nil
	}

	inputs := concat(w.state.ScenarioEntries(un.ID), w.state.LinkedEntries())
	if prev, ok := w.previous[encoded]; ok && prev.Played() && inputsEqual(inputs, prev.Inputs) {
		reused := *prev
		reused.CanUndo = true
		w.reused++
		g.logger.Debug("scenario reused", "scenario_id", encoded, "status", reused.Status)
		return reused, false, nil
	}

	executed, err := g.executor.SetupSteps(scenario.NewState(encoded, w.state), un, log, w.standalone)
	if err != nil {
		return domain.ProcessedScenario{}, false, fmt.Errorf("scenario %s: %w", encoded, err)
	}
	if executed.LatestCampaignLog == nil {
		return domain.ProcessedScenario{}, false, fmt.Errorf("scenario %s: executor returned no campaign log", encoded)
	}
	w.executed++

	status := domain.StatusCompleted
	if executed.InProgress {
		status = domain.StatusStarted
	}
	locationKey := un.Scenario.MainScenarioID
	if locationKey == "" {
		locationKey = encoded
	}
	var location string
	if embark, ok := w.state.SideScenarioEmbarkData(locationKey); ok {
		location = embark.Destination
	}

	g.logger.Debug("scenario executed", "scenario_id", encoded, "status", status, "steps", len(executed.Steps))
	return domain.ProcessedScenario{
		Status:            status,
		ID:                un.ID,
		Scenario:          un.Scenario,
		Side:              un.Side,
		Location:          location,
		LatestCampaignLog: executed.LatestCampaignLog,
		CanUndo:           true,
		CloseOnUndo:       w.state.CloseOnUndo(encoded),
		Steps:             executed.Steps,
		Inputs:            inputs,
		Rules:             sortRules(w.lang, concat(g.campaign.Campaign.Rules, un.Scenario.Rules)),
	}, true, nil
}

// inputsEqual compares recorded decisions entry by entry.
// A nil and an empty list are equal.
func inputsEqual(a, b []domain.Entry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !reflect.DeepEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// lockExtraPlayable keeps the first playable entry and locks every later one.
// A started entry already holds the playable slot.
func lockExtraPlayable(trace []domain.ProcessedScenario) {
	found := false
	for i := range trace {
		switch trace[i].Status {
		case domain.StatusPlayable:
			if found {
				trace[i].Status = domain.StatusLocked
			} else {
				found = true
			}
		case domain.StatusStarted:
			found = true
		}
	}
}

// keepLastUndo leaves CanUndo set on the last eligible entry only.
func keepLastUndo(trace []domain.ProcessedScenario) {
	found := false
	for i := len(trace) - 1; i >= 0; i-- {
		if !trace[i].CanUndo {
			continue
		}
		if found {
			trace[i].CanUndo = false
		} else {
			found = true
		}
	}
}

func indexTrace(previous *domain.ProcessedCampaign) map[string]*domain.ProcessedScenario {
	index := make(map[string]*domain.ProcessedScenario)
	if previous == nil {
		return index
	}
	for i := range previous.Scenarios {
		s := &previous.Scenarios[i]
		if _, ok := index[s.ID.EncodedScenarioID]; !ok {
			index[s.ID.EncodedScenarioID] = s
		}
	}
	return index
}

func (g *Guide) emitScenarioProcessed(ctx context.Context, entry domain.ProcessedScenario, executed bool) {
	if g.hooks.OnScenarioProcessed == nil {
		return
	}
	g.hooks.OnScenarioProcessed(ctx, &domain.ScenarioEvent{
		EventBase:  domain.EventBase{Timestamp: time.Now(), Type: domain.EventScenarioProcessed},
		ScenarioID: entry.ID.EncodedScenarioID,
		Status:     entry.Status,
		Executed:   executed,
		Reused:     entry.Played() && !executed,
	})
}

func (g *Guide) emitWalkFinished(ctx context.Context, w *walk, d time.Duration, err error) {
	if g.hooks.OnWalkFinished == nil {
		return
	}
	g.hooks.OnWalkFinished(ctx, &domain.WalkEvent{
		EventBase:  domain.EventBase{Timestamp: time.Now(), Type: domain.EventWalkFinished},
		CampaignID: g.CycleCode(),
		Scenarios:  len(w.trace),
		Executed:   w.executed,
		Reused:     w.reused,
		Duration:   d,
		Err:        err,
	})
}
