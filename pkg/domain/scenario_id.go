package domain

import (
	"strconv"
	"strings"
)

// ReplaySeparator splits a scenario id from its replay attempt.
const ReplaySeparator = "#"

// CampaignSetupID is the sentinel id of the synthesized campaign setup scenario.
const CampaignSetupID = "$campaign_setup"

// ScenarioID identifies one play of a scenario.
// ScenarioID keys the static definition, EncodedScenarioID keys persisted
// decisions so that replays of the same scenario never collide.
type ScenarioID struct {
	EncodedScenarioID string `json:"encoded_scenario_id"`
	ScenarioID        string `json:"scenario_id"`
	ReplayAttempt     int    `json:"replay_attempt,omitempty"`
	HasReplayAttempt  bool   `json:"has_replay_attempt,omitempty"`
}

// NewScenarioID returns the identifier of a first play of scenarioID.
func NewScenarioID(scenarioID string) ScenarioID {
	return ScenarioID{
		EncodedScenarioID: scenarioID,
		ScenarioID:        scenarioID,
	}
}

// ReplayScenarioID returns the identifier of a replay of scenarioID.
func ReplayScenarioID(scenarioID string, attempt int) ScenarioID {
	return ScenarioID{
		EncodedScenarioID: EncodeScenarioID(scenarioID, attempt),
		ScenarioID:        scenarioID,
		ReplayAttempt:     attempt,
		HasReplayAttempt:  true,
	}
}

// EncodeScenarioID appends a replay attempt to scenarioID.
func EncodeScenarioID(scenarioID string, attempt int) string {
	return scenarioID + ReplaySeparator + strconv.Itoa(attempt)
}

// ParseScenarioID decodes an encoded scenario id.
// The suffix after the first separator must be a canonical non-negative
// integer, so that Encode(ParseScenarioID(x)) == x always holds.
func ParseScenarioID(encoded string) (ScenarioID, error) {
	base, suffix, found := strings.Cut(encoded, ReplaySeparator)
	if !found {
		return NewScenarioID(encoded), nil
	}
	if base == "" {
		return ScenarioID{}, &MalformedScenarioIDError{Encoded: encoded, Reason: "empty scenario id"}
	}
	attempt, err := strconv.Atoi(suffix)
	if err != nil {
		return ScenarioID{}, &MalformedScenarioIDError{Encoded: encoded, Reason: "replay attempt is not an integer"}
	}
	if attempt < 0 || strconv.Itoa(attempt) != suffix {
		return ScenarioID{}, &MalformedScenarioIDError{Encoded: encoded, Reason: "replay attempt must be a canonical non-negative integer"}
	}
	return ScenarioID{
		EncodedScenarioID: encoded,
		ScenarioID:        base,
		ReplayAttempt:     attempt,
		HasReplayAttempt:  true,
	}, nil
}

// Encode rebuilds the encoded form from ScenarioID and ReplayAttempt.
func (id ScenarioID) Encode() string {
	if !id.HasReplayAttempt {
		return id.ScenarioID
	}
	return EncodeScenarioID(id.ScenarioID, id.ReplayAttempt)
}

// NextReplay returns the identifier of the following replay attempt.
func (id ScenarioID) NextReplay() ScenarioID {
	if !id.HasReplayAttempt {
		return ReplayScenarioID(id.ScenarioID, 1)
	}
	return ReplayScenarioID(id.ScenarioID, id.ReplayAttempt+1)
}

func (id ScenarioID) String() string {
	return id.EncodedScenarioID
}
