package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/waitlisthq/waitlist-service/internal/domain"
	"github.com/waitlisthq/waitlist-service/internal/events"
	"github.com/waitlisthq/waitlist-service/internal/repository"
	apperrors "github.com/waitlisthq/waitlist-service/pkg/util/errorutil"
)

const (
	MsgContactFieldsRequired = "All fields are required"
	messagePreviewLen        = 80
)

// ContactService accepts contact form submissions.
type ContactService struct {
	contacts   repository.ContactRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewContactService builds the service. dispatcher may be nil.
func NewContactService(contacts repository.ContactRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ContactService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactService{contacts: contacts, dispatcher: dispatcher, logger: logger}
}

// Submit validates and stores a contact message. Nothing is stored when a field is blank.
func (s *ContactService) Submit(ctx context.Context, name, email, message string) (*domain.Contact, error) {
	contact := &domain.Contact{
		Name:    strings.TrimSpace(name),
		Email:   strings.TrimSpace(email),
		Message: strings.TrimSpace(message),
	}
	if contact.Name == "" || contact.Email == "" || contact.Message == "" {
		return nil, apperrors.NewValidationError(MsgContactFieldsRequired, nil)
	}

	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventContactSubmitted, contact.ID, events.ContactSubmittedPayload{
		Name:           contact.Name,
		Email:          contact.Email,
		MessagePreview: preview(contact.Message, messagePreviewLen),
	}))
	return contact, nil
}

// List returns all submissions, newest first.
func (s *ContactService) List(ctx context.Context) ([]domain.Contact, error) {
	contacts, err := s.contacts.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return contacts, nil
}

func preview(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "…"
}
