package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/waitlisthq/waitlist-service/internal/domain"
	"github.com/waitlisthq/waitlist-service/internal/events"
	"github.com/waitlisthq/waitlist-service/internal/repository"
	apperrors "github.com/waitlisthq/waitlist-service/pkg/util/errorutil"
)

const MsgEmailRequired = "Email is required"

// WaitlistService manages waitlist sign-ups. Joining is idempotent by email.
type WaitlistService struct {
	entries    repository.WaitlistRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewWaitlistService builds the service. dispatcher may be nil.
func NewWaitlistService(entries repository.WaitlistRepository, dispatcher events.Dispatcher, logger *zap.Logger) *WaitlistService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WaitlistService{entries: entries, dispatcher: dispatcher, logger: logger}
}

// Join adds email to the waitlist. created is false when the email was already
// listed, in which case the existing entry is returned.
func (s *WaitlistService) Join(ctx context.Context, email string) (entry *domain.WaitlistEntry, created bool, err error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, false, apperrors.NewValidationError(MsgEmailRequired, nil)
	}

	existing, err := s.entries.GetByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, apperrors.NewInternalError(err)
	}

	entry = &domain.WaitlistEntry{Email: email}
	if err := s.entries.Create(ctx, entry); err != nil {
		if !errors.Is(err, repository.ErrConflict) {
			return nil, false, apperrors.NewInternalError(err)
		}
		// Lost a race with an identical join; the winner's row is the answer.
		existing, err := s.entries.GetByEmail(ctx, email)
		if err != nil {
			return nil, false, apperrors.NewInternalError(err)
		}
		return existing, false, nil
	}

	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventWaitlistJoined, entry.ID, events.WaitlistJoinedPayload{Email: entry.Email}))
	return entry, true, nil
}

// List returns all entries, newest first.
func (s *WaitlistService) List(ctx context.Context) ([]domain.WaitlistEntry, error) {
	entries, err := s.entries.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return entries, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
