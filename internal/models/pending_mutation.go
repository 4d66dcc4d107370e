package models

import "time"

// Two-step operations tracked by the recovery journal
const (
	MutationDischarge = "discharge"
)

// Steps of a discharge
const (
	StepArchived = "archived"
)

// PendingMutation is a two-step operation whose first step succeeded and whose
// second step has not been confirmed yet.
type PendingMutation struct {
	ID        string    `json:"id"`
	Operation string    `json:"operation"`
	Step      string    `json:"step"`
	Patient   Patient   `json:"patient"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
