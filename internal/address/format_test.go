package address

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"addrgen/models"
)

func TestIsComplete(t *testing.T) {
	tests := []struct {
		name string
		raw  models.RawAddress
		want bool
	}{
		{"city", models.RawAddress{HouseNumber: "12", Road: "Main St", City: "Springfield"}, true},
		{"town", models.RawAddress{HouseNumber: "3", Road: "High St", Town: "Bath"}, true},
		{"village only", models.RawAddress{HouseNumber: "3", Road: "Lane", Village: "Mells"}, false},
		{"no house number", models.RawAddress{Road: "Main St", City: "Springfield"}, false},
		{"no road", models.RawAddress{HouseNumber: "12", City: "Springfield"}, false},
		{"empty", models.RawAddress{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsComplete(tt.raw))
		})
	}
}

func TestFormatAddress_US(t *testing.T) {
	raw := models.RawAddress{
		HouseNumber: "12",
		Road:        "Main St",
		City:        "Springfield",
		State:       "IL",
		Postcode:    "62704",
	}

	got := FormatAddress(raw, models.CountryUS)

	assert.Equal(t, models.FormattedAddress{
		Full:       "12 Main St, Springfield, IL, 62704, US",
		State:      "IL",
		City:       "Springfield",
		Street:     "12 Main St",
		PostalCode: "62704",
	}, got)
}

func TestFormatAddress_Fallbacks(t *testing.T) {
	tests := []struct {
		name string
		raw  models.RawAddress
		want models.FormattedAddress
	}{
		{
			name: "state district and town",
			raw:  models.RawAddress{HouseNumber: "5", Road: "Rue Haute", Town: "Lyon", StateDistrict: "Rhône"},
			want: models.FormattedAddress{Full: "5 Rue Haute, Lyon, Rhône, FR", State: "Rhône", City: "Lyon", Street: "5 Rue Haute"},
		},
		{
			name: "province and village",
			raw:  models.RawAddress{Road: "Via Roma", Village: "Borgo", Province: "Torino", Postcode: "10100"},
			want: models.FormattedAddress{Full: "Via Roma, Borgo, Torino, 10100, FR", State: "Torino", City: "Borgo", Street: "Via Roma", PostalCode: "10100"},
		},
		{
			name: "region only",
			raw:  models.RawAddress{Region: "Île-de-France"},
			want: models.FormattedAddress{Full: "Île-de-France, FR", State: "Île-de-France"},
		},
		{
			name: "house number without road is dropped",
			raw:  models.RawAddress{HouseNumber: "9", City: "Paris"},
			want: models.FormattedAddress{Full: "Paris, FR", City: "Paris"},
		},
		{
			name: "state wins over province",
			raw:  models.RawAddress{State: "Bavaria", Province: "Upper", City: "Munich"},
			want: models.FormattedAddress{Full: "Munich, Bavaria, FR", State: "Bavaria", City: "Munich"},
		},
		{
			name: "city wins over town",
			raw:  models.RawAddress{City: "Paris", Town: "Other"},
			want: models.FormattedAddress{Full: "Paris, FR", City: "Paris"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAddress(tt.raw, models.CountryFR))
		})
	}
}

func TestFormatAddress_Idempotent(t *testing.T) {
	raw := models.RawAddress{HouseNumber: "1", Road: "Chome", City: "Tokyo", Postcode: "100-0001"}
	assert.Equal(t, FormatAddress(raw, models.CountryJP), FormatAddress(raw, models.CountryJP))
}
