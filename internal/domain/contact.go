package domain

import "time"

// Contact is a customer contact captured through the ordering UI.
type Contact struct {
	ID         string
	BusinessID string
	Name       string
	Phone      string
	Email      string
	CreatedAt  time.Time
}
