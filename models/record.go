package models

import "time"

// GeneratedRecord is the composed result handed to the page and JSON API.
type GeneratedRecord struct {
	ID          string           `json:"id"`
	Country     Country          `json:"country"`
	Address     FormattedAddress `json:"address"`
	Identity    IdentityProfile  `json:"identity"`
	Phone       string           `json:"phone"`
	GeneratedAt time.Time        `json:"generated_at"`
}
