package models

// Country is a two-letter token identifying one of the supported countries.
// The United Kingdom is "UK" rather than the ISO "GB".
type Country string

const (
	CountryUS Country = "US"
	CountryUK Country = "UK"
	CountryFR Country = "FR"
	CountryDE Country = "DE"
	CountryCN Country = "CN"
	CountryTW Country = "TW"
	CountryHK Country = "HK"
	CountryJP Country = "JP"
	CountryIN Country = "IN"
	CountryAU Country = "AU"
	CountryBR Country = "BR"
	CountryCA Country = "CA"
	CountryRU Country = "RU"
	CountryZA Country = "ZA"
	CountryMX Country = "MX"
	CountryKR Country = "KR"
	CountryIT Country = "IT"
	CountryES Country = "ES"
	CountryTR Country = "TR"
	CountrySA Country = "SA"
	CountryAR Country = "AR"
	CountryEG Country = "EG"
	CountryNG Country = "NG"
	CountryID Country = "ID"
)

func (c Country) String() string {
	return string(c)
}

// CountryOption is one entry of the country selection control
type CountryOption struct {
	Code    Country `json:"code"`
	Name    string  `json:"name"`
	English string  `json:"english"`
}
