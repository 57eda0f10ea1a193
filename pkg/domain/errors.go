package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCampaignUpdateRequired is matched (errors.Is) by every CampaignUpdateRequiredError.
var ErrCampaignUpdateRequired = errors.New("an app update is required to access this campaign")

// ErrCampaignNotFound is returned when a campaign id cannot be found in the store.
var ErrCampaignNotFound = errors.New("campaign not found")

// ErrScenarioCycle is matched (errors.Is) by every ScenarioCycleError.
var ErrScenarioCycle = errors.New("scenario chain revisits a scenario")

// ErrUndoRejected is matched (errors.Is) by every UndoRejectedError.
var ErrUndoRejected = errors.New("only the latest decision can be undone")

// CampaignUpdateRequiredError reports a scenario id that the locally known
// content cannot resolve. Callers should prompt for a content update instead
// of rendering a partial trace.
type CampaignUpdateRequiredError struct {
	ScenarioID string
}

func (e *CampaignUpdateRequiredError) Error() string {
	return fmt.Sprintf("%s (unknown scenario %q)", ErrCampaignUpdateRequired.Error(), e.ScenarioID)
}

func (e *CampaignUpdateRequiredError) Is(target error) bool {
	return target == ErrCampaignUpdateRequired
}

// MalformedScenarioIDError reports an encoded scenario id with an invalid replay suffix.
type MalformedScenarioIDError struct {
	Encoded string
	Reason  string
}

func (e *MalformedScenarioIDError) Error() string {
	return fmt.Sprintf("malformed scenario id %q: %s", e.Encoded, e.Reason)
}

// ScenarioCycleError reports a next-scenario pointer back into the chain being walked.
type ScenarioCycleError struct {
	ScenarioID string
	Trace      []string
}

func (e *ScenarioCycleError) Error() string {
	return fmt.Sprintf("scenario %q reached twice (trace: %s)", e.ScenarioID, strings.Join(e.Trace, " -> "))
}

func (e *ScenarioCycleError) Unwrap() error {
	return ErrScenarioCycle
}

// LogEntryError reports a campaign log reference that content does not define.
type LogEntryError struct {
	Section string
	ID      string
	Reason  string
}

func (e *LogEntryError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("could not find section %q: %s", e.Section, e.Reason)
	}
	return fmt.Sprintf("could not find section(%s), id(%s): %s", e.Section, e.ID, e.Reason)
}

// WalkError is the single error boundary of a campaign walk.
// A walk that fails yields no trace at all.
type WalkError struct {
	Err error
}

func (e *WalkError) Error() string {
	return "campaign walk aborted: " + e.Err.Error()
}

func (e *WalkError) Unwrap() error {
	return e.Err
}

// UndoRejectedError reports an undo addressed to a scenario other than the
// one holding the newest decision. Undoable is empty when nothing can be undone.
type UndoRejectedError struct {
	ScenarioID string
	Undoable   string
}

func (e *UndoRejectedError) Error() string {
	if e.Undoable == "" {
		return fmt.Sprintf("cannot undo %q: nothing to undo", e.ScenarioID)
	}
	return fmt.Sprintf("cannot undo %q: only %q can be undone", e.ScenarioID, e.Undoable)
}

func (e *UndoRejectedError) Is(target error) bool {
	return target == ErrUndoRejected
}
