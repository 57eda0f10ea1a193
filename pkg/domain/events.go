package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventScenarioProcessed EventType = "scenario_processed"
	EventWalkFinished      EventType = "walk_finished"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// ScenarioEvent reports one trace entry produced by a walk.
// Executed is false for pre-start entries and for memoized reuse.
type ScenarioEvent struct {
	EventBase
	ScenarioID string `json:"scenario_id"`
	Status     Status `json:"status"`
	Executed   bool   `json:"executed"`
	Reused     bool   `json:"reused"`
}

// WalkEvent summarizes a finished walk.
type WalkEvent struct {
	EventBase
	CampaignID string        `json:"campaign_id"`
	Scenarios  int           `json:"scenarios"`
	Executed   int           `json:"executed"`
	Reused     int           `json:"reused"`
	Duration   time.Duration `json:"duration"`
	Err        error         `json:"-"`
}

// WalkHooks defines callbacks for walk observability.
type WalkHooks struct {
	OnScenarioProcessed func(context.Context, *ScenarioEvent)
	OnWalkFinished      func(context.Context, *WalkEvent)
}
