package models

import "time"

// FormattedAddress is a validated address derived from a RawAddress.
// Full is the comma-joined non-empty parts in the order
// street, city, state, postal code, country.
type FormattedAddress struct {
	Full       string `json:"full"`
	State      string `json:"state,omitempty"`
	City       string `json:"city,omitempty"`
	Street     string `json:"street,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

// AddressCacheEntry is one row of the address cache
type AddressCacheEntry struct {
	Country  Country          `db:"country" json:"country"`
	Address  FormattedAddress `db:"address" json:"address"`
	CachedAt time.Time        `db:"cached_at" json:"cached_at"`
}
