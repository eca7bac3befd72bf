package domain

import "time"

// MenuItem is a sellable entry on a tenant's menu.
type MenuItem struct {
	ID          string
	BusinessID  string
	Name        string
	Description string
	Category    string
	Price       float64
	ImageURL    string
	Available   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
