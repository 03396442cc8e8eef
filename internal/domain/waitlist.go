package domain

import "time"

// WaitlistEntry records an email address waiting for launch. Email is unique.
type WaitlistEntry struct {
	ID        string
	Email     string
	CreatedAt time.Time
}
