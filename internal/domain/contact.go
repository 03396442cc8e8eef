package domain

import "time"

// Contact is a message left through the public contact form.
type Contact struct {
	ID        string
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time
}
