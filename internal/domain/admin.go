package domain

import "time"

// Admin is the single principal kind allowed to manage the site.
type Admin struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AdminUpdate carries a partial update. Nil fields keep their stored value.
type AdminUpdate struct {
	Username     *string
	PasswordHash *string
}

// IsEmpty reports whether the update changes nothing.
func (u AdminUpdate) IsEmpty() bool {
	return u.Username == nil && u.PasswordHash == nil
}
