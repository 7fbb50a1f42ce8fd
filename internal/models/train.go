package models

import (
	"errors"
	"fmt"
)

// LiveTrain is the current state of an in-service train. Records are seeded
// at startup and mutated in place by the live refresh; none are added or
// removed during a run.
type LiveTrain struct {
	TrainNumber    string     `json:"trainNumber"`
	Line           Line       `json:"line"`
	Route          string     `json:"route"`
	CurrentStation string     `json:"currentStation"`
	NextStation    string     `json:"nextStation"`
	ETA            Minutes    `json:"etaMinutes"`
	Status         Status     `json:"status"`
	Delay          Minutes    `json:"delayMinutes"`
	Coaches        int        `json:"coaches"`
	CrowdLevel     CrowdLevel `json:"crowdLevel"`
}

// ETALabel renders the ETA the way the departure boards show it
func (t LiveTrain) ETALabel() string {
	return fmt.Sprintf("%d min", int(t.ETA))
}

// Validate checks the invariants of a live train record
func (t *LiveTrain) Validate() error {
	if t.TrainNumber == "" {
		return errors.New("train number is required")
	}
	if !t.Line.Valid() {
		return fmt.Errorf("train %s: %w: %q", t.TrainNumber, ErrInvalidLine, t.Line)
	}
	if t.ETA < 1 {
		return fmt.Errorf("train %s: eta must be at least 1 minute, got %d", t.TrainNumber, t.ETA)
	}
	if !t.Status.Valid() {
		return fmt.Errorf("train %s: invalid status %q", t.TrainNumber, t.Status)
	}
	if t.Status == StatusOnTime && t.Delay != 0 {
		return fmt.Errorf("train %s: on-time train cannot carry a delay", t.TrainNumber)
	}
	if !t.CrowdLevel.Valid() {
		return fmt.Errorf("train %s: invalid crowd level %q", t.TrainNumber, t.CrowdLevel)
	}
	return nil
}
