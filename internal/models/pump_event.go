package models

import "time"

// PumpEvent is one entry in the command audit log.
type PumpEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // RUN | STOP | CONTROL | PROGRAM
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
