package dto

import (
	"time"

	"github.com/waitlisthq/waitlist-service/internal/domain"
)

// ContactRequest is the contact form payload.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ContactResponse is a stored contact submission.
type ContactResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// WaitlistRequest is the waitlist join payload.
type WaitlistRequest struct {
	Email string `json:"email"`
}

// WaitlistResponse is a stored waitlist entry.
type WaitlistResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewContactResponse(c *domain.Contact) ContactResponse {
	return ContactResponse{ID: c.ID, Name: c.Name, Email: c.Email, Message: c.Message, CreatedAt: c.CreatedAt}
}

func NewContactList(contacts []domain.Contact) []ContactResponse {
	out := make([]ContactResponse, 0, len(contacts))
	for i := range contacts {
		out = append(out, NewContactResponse(&contacts[i]))
	}
	return out
}

func NewWaitlistResponse(e *domain.WaitlistEntry) WaitlistResponse {
	return WaitlistResponse{ID: e.ID, Email: e.Email, CreatedAt: e.CreatedAt}
}

func NewWaitlistList(entries []domain.WaitlistEntry) []WaitlistResponse {
	out := make([]WaitlistResponse, 0, len(entries))
	for i := range entries {
		out = append(out, NewWaitlistResponse(&entries[i]))
	}
	return out
}
