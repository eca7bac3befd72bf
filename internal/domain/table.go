package domain

import "time"

// Table is a physical table carrying a QR code that opens the public menu.
type Table struct {
	ID         string
	BusinessID string
	Name       string
	QRToken    string
	CreatedAt  time.Time
}
