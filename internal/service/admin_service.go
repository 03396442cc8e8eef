package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/waitlisthq/waitlist-service/internal/auth"
	"github.com/waitlisthq/waitlist-service/internal/domain"
	"github.com/waitlisthq/waitlist-service/internal/events"
	"github.com/waitlisthq/waitlist-service/internal/repository"
	apperrors "github.com/waitlisthq/waitlist-service/pkg/util/errorutil"
)

// Messages returned to clients. Login keeps distinct messages for unknown username
// and wrong password.
const (
	MsgAdminExists       = "Admin already exists"
	MsgInvalidUsername   = "Invalid username"
	MsgInvalidPassword   = "Invalid password"
	MsgAdminNotFound     = "Admin not found"
	MsgUsernameTaken     = "Username already taken"
	MsgCredentialsNeeded = "username and password are required"
	MsgPasswordTooLong   = "Password must be at most 72 bytes"
)

// AdminService coordinates signup, login and self-management of admins.
type AdminService struct {
	admins     repository.AdminRepository
	hasher     *auth.PasswordHasher
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// AdminDependencies encapsulates requirements for the admin service.
type AdminDependencies struct {
	AdminRepo  repository.AdminRepository
	Hasher     *auth.PasswordHasher
	Tokens     *auth.TokenManager
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// AuthResult is returned by signup and login.
type AuthResult struct {
	Admin     *domain.Admin
	Token     string
	ExpiresAt time.Time
	Strength  *auth.PasswordStrength
}

// AdminChanges is the caller-supplied partial update. Nil means "keep".
type AdminChanges struct {
	Username *string
	Password *string
}

// NewAdminService builds the service.
func NewAdminService(deps AdminDependencies) *AdminService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{
		admins:     deps.AdminRepo,
		hasher:     deps.Hasher,
		tokens:     deps.Tokens,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Signup registers a new admin and issues a token for it.
func (s *AdminService) Signup(ctx context.Context, username, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperrors.NewValidationError(MsgCredentialsNeeded, nil)
	}
	if len(password) > auth.MaxPasswordBytes {
		return nil, apperrors.NewValidationError(MsgPasswordTooLong, nil)
	}

	if _, err := s.admins.GetByUsername(ctx, username); err == nil {
		return nil, apperrors.NewConflict(MsgAdminExists, nil)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewInternalError(err)
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}

	admin := &domain.Admin{Username: username, PasswordHash: hash}
	if err := s.admins.Create(ctx, admin); err != nil {
		// A concurrent signup can win between the lookup and the insert.
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperrors.NewConflict(MsgAdminExists, nil)
		}
		return nil, apperrors.NewInternalError(err)
	}

	token, exp, err := s.tokens.GenerateToken(admin.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.NewEvent(events.EventAdminRegistered, admin.ID, events.AdminPayload{Username: admin.Username}))

	strength := auth.RateStrength(password)
	if !strength.IsStrong {
		s.logger.Info("admin registered with weak password", zap.String("admin_id", admin.ID))
	}
	return &AuthResult{Admin: admin, Token: token, ExpiresAt: exp, Strength: &strength}, nil
}

// Login authenticates an admin by username and password.
func (s *AdminService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperrors.NewValidationError(MsgCredentialsNeeded, nil)
	}

	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewUnauthorized(MsgInvalidUsername)
		}
		return nil, apperrors.NewInternalError(err)
	}

	ok, err := s.hasher.Verify(password, admin.PasswordHash)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if !ok {
		return nil, apperrors.NewUnauthorized(MsgInvalidPassword)
	}

	token, exp, err := s.tokens.GenerateToken(admin.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &AuthResult{Admin: admin, Token: token, ExpiresAt: exp}, nil
}

// Update changes the username and/or password of adminID. An empty password
// keeps the stored hash.
func (s *AdminService) Update(ctx context.Context, adminID string, changes AdminChanges) (*domain.Admin, error) {
	existing, err := s.admins.GetByID(ctx, adminID)
	if err != nil {
		return nil, s.mapLookupErr(err)
	}

	var update domain.AdminUpdate
	if changes.Username != nil {
		username := strings.TrimSpace(*changes.Username)
		if username == "" {
			return nil, apperrors.NewValidationError("username cannot be empty", nil)
		}
		update.Username = &username
	}
	if changes.Password != nil && *changes.Password != "" {
		hash, err := s.hashPassword(*changes.Password)
		if err != nil {
			return nil, err
		}
		update.PasswordHash = &hash
	}

	if update.IsEmpty() {
		return existing, nil
	}

	updated, err := s.admins.Update(ctx, adminID, update)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperrors.NewConflict(MsgUsernameTaken, nil)
		}
		return nil, s.mapLookupErr(err)
	}
	return updated, nil
}

// Delete permanently removes adminID. Tokens already issued stay valid until expiry.
func (s *AdminService) Delete(ctx context.Context, adminID string) error {
	if err := s.admins.Delete(ctx, adminID); err != nil {
		return s.mapLookupErr(err)
	}
	s.publish(ctx, events.NewEvent(events.EventAdminDeleted, adminID, nil))
	return nil
}

func (s *AdminService) hashPassword(password string) (string, error) {
	hash, err := s.hasher.Hash(password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return "", apperrors.NewValidationError(MsgPasswordTooLong, nil)
	}
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	return hash, nil
}

func (s *AdminService) mapLookupErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound(MsgAdminNotFound)
	}
	return apperrors.NewInternalError(err)
}

func (s *AdminService) publish(ctx context.Context, event events.Event) {
	publish(ctx, s.dispatcher, s.logger, event)
}

// publish delivers event; handler failures never fail the request.
func publish(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("event handler failed",
			zap.String("event_type", string(event.Type)),
			zap.String("subject_id", event.SubjectID),
			zap.Error(err))
	}
}
