package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventContactSubmitted EventType = "contact_submitted"
	EventWaitlistJoined   EventType = "waitlist_joined"
	EventAdminRegistered  EventType = "admin_registered"
	EventAdminDeleted     EventType = "admin_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType EventType, subjectID string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// ContactSubmittedPayload payload.
type ContactSubmittedPayload struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	MessagePreview string `json:"message_preview"`
}

// WaitlistJoinedPayload payload.
type WaitlistJoinedPayload struct {
	Email string `json:"email"`
}

// AdminPayload payload.
type AdminPayload struct {
	Username string `json:"username"`
}
