package address

import (
	"strings"

	"addrgen/models"
)

// IsComplete reports whether raw can be shown as a street address: it needs a
// house number, a road and a city or town.
func IsComplete(raw models.RawAddress) bool {
	return raw.HouseNumber != "" && raw.Road != "" && (raw.City != "" || raw.Town != "")
}

// FormatAddress normalizes a provider address into display fields. Full joins
// the non-empty street, city, state, postal code and country with ", ".
func FormatAddress(raw models.RawAddress, country models.Country) models.FormattedAddress {
	state := firstNonEmpty(raw.State, raw.StateDistrict, raw.Province, raw.Region)
	city := firstNonEmpty(raw.City, raw.Town, raw.Village)

	street := raw.Road
	if raw.HouseNumber != "" && raw.Road != "" {
		street = raw.HouseNumber + " " + raw.Road
	}

	parts := make([]string, 0, 5)
	for _, p := range []string{street, city, state, raw.Postcode, country.String()} {
		if p != "" {
			parts = append(parts, p)
		}
	}

	return models.FormattedAddress{
		Full:       strings.Join(parts, ", "),
		State:      state,
		City:       city,
		Street:     street,
		PostalCode: raw.Postcode,
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
