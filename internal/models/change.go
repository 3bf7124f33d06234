package models

import "time"

const (
	ChangeEventCreated = "event.created"
	ChangeEventDeleted = "event.deleted"
)

// EventChange is published on the change feed after a successful write.
type EventChange struct {
	Type       string    `json:"type"`
	EventID    int64     `json:"event_id"`
	Event      *Event    `json:"event,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewEventChange(changeType string, eventID int64, event *Event) EventChange {
	return EventChange{
		Type:       changeType,
		EventID:    eventID,
		Event:      event,
		OccurredAt: time.Now().UTC(),
	}
}
