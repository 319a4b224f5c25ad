package testutils

import (
	"fmt"

	"addrgen/models"

	"github.com/brianvoe/gofakeit/v6"
)

// CreateTestRawAddress returns a complete provider address with fake values.
func CreateTestRawAddress(faker *gofakeit.Faker) models.RawAddress {
	return models.RawAddress{
		HouseNumber: fmt.Sprint(faker.Number(1, 999)),
		Road:        faker.StreetName() + " " + faker.StreetSuffix(),
		City:        faker.City(),
		State:       faker.State(),
		Postcode:    faker.Zip(),
	}
}

// NominatimPayload renders addr the way the reverse endpoint does.
func NominatimPayload(p models.GeoPoint, addr models.RawAddress) map[string]any {
	fields := map[string]any{}
	for k, v := range map[string]string{
		"house_number": addr.HouseNumber,
		"road":         addr.Road,
		"village":      addr.Village,
		"town":         addr.Town,
		"city":         addr.City,
		"state":        addr.State,
		"province":     addr.Province,
		"postcode":     addr.Postcode,
	} {
		if v != "" {
			fields[k] = v
		}
	}
	return map[string]any{
		"place_id":     12345,
		"lat":          fmt.Sprintf("%f", p.Lat),
		"lon":          fmt.Sprintf("%f", p.Lng),
		"display_name": addr.Road,
		"address":      fields,
	}
}

// RandomUserPayload renders one randomuser.me result.
func RandomUserPayload(first, last, gender string) map[string]any {
	return map[string]any{
		"results": []map[string]any{{
			"gender": gender,
			"name":   map[string]any{"title": "Mx", "first": first, "last": last},
		}},
	}
}
