package dto

import (
	"time"

	"github.com/waitlisthq/waitlist-service/internal/auth"
	"github.com/waitlisthq/waitlist-service/internal/domain"
)

// AdminCredentialsRequest is the signup and login payload.
type AdminCredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminUpdateRequest is the partial update payload; absent fields are nil.
type AdminUpdateRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

// AuthResponse is returned by signup and login. It never carries the password or its hash.
type AuthResponse struct {
	ID               string                 `json:"id"`
	Username         string                 `json:"username"`
	Token            string                 `json:"token"`
	ExpiresAt        time.Time              `json:"expiresAt"`
	PasswordStrength *auth.PasswordStrength `json:"passwordStrength,omitempty"`
}

// AdminResponse is the public view of an admin.
type AdminResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewAdminResponse maps the domain model to its public view.
func NewAdminResponse(a *domain.Admin) AdminResponse {
	return AdminResponse{ID: a.ID, Username: a.Username, CreatedAt: a.CreatedAt, UpdatedAt: a.UpdatedAt}
}
