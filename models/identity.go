package models

import "strings"

type Gender string

const (
	GenderMale    Gender = "Male"
	GenderFemale  Gender = "Female"
	GenderUnknown Gender = "Unknown"
)

// Lower returns the lowercase form used by the people-generator API.
func (g Gender) Lower() string {
	return strings.ToLower(string(g))
}

// IdentityProfile is a synthesized name and gender. It is never cached.
type IdentityProfile struct {
	Name   string `json:"name"`
	Gender Gender `json:"gender"`
}
