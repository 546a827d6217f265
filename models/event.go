package models

import "time"

// Event is one append-only audit record. Events are written as a side
// effect of almost every authentication and file operation, are never
// mutated, and disappear only when the owning user is deleted.
type Event struct {
	// EventID is the internal unique identifier of the event record.
	EventID int64 `json:"id"`

	// Description is a human-readable summary of the action, e.g.
	// "file uploaded and encrypted: report.pdf". It is free text and is
	// never matched programmatically.
	Description string `json:"description"`

	// OccurredAt is the timestamp when the event was recorded.
	OccurredAt time.Time `json:"occurred_at"`

	// OwnerID references the owning user. Orphan events are not
	// representable; the column is NOT NULL with a cascade delete.
	OwnerID int64 `json:"-"`
}

// TableName returns the name of the database table
// associated with the Event model.
func (e Event) TableName() string {
	return "events"
}
