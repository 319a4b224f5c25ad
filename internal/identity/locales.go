package identity

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"addrgen/internal/random"
	"addrgen/models"
)

//go:embed locales.yaml
var localesYAML []byte

// DefaultLocale is the key of the table used when nothing better applies.
const DefaultLocale = "default"

// NameOrder says how a surname and a given name are joined.
type NameOrder string

const (
	FamilyFirst NameOrder = "family-first"
	GivenFirst  NameOrder = "given-first"
)

// Locale is one offline name table.
type Locale struct {
	Order          NameOrder `yaml:"order"`
	Surnames       []string  `yaml:"surnames"`
	FemaleSurnames []string  `yaml:"female_surnames"`
	Male           []string  `yaml:"male"`
	Female         []string  `yaml:"female"`
}

// Locales maps a country code (or DefaultLocale) to its table.
type Locales map[string]Locale

// ParseLocales decodes and validates YAML name tables. The default table is
// required.
func ParseLocales(data []byte) (Locales, error) {
	var l Locales
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("decode locales: %w", err)
	}
	if _, ok := l[DefaultLocale]; !ok {
		return nil, fmt.Errorf("locales: missing %q table", DefaultLocale)
	}
	for key, loc := range l {
		if err := loc.validate(); err != nil {
			return nil, fmt.Errorf("locale %s: %w", key, err)
		}
	}
	return l, nil
}

var builtin = sync.OnceValues(func() (Locales, error) {
	return ParseLocales(localesYAML)
})

// BuiltinLocales returns the embedded tables.
func BuiltinLocales() (Locales, error) {
	return builtin()
}

// For returns the table for c, if any.
func (l Locales) For(c models.Country) (Locale, bool) {
	loc, ok := l[string(c)]
	return loc, ok
}

// Default returns the fallback table.
func (l Locales) Default() Locale {
	return l[DefaultLocale]
}

// Name draws a surname and a given name for gender and composes them.
func (loc Locale) Name(src *random.Source, gender models.Gender) string {
	surnames := loc.Surnames
	given := loc.Male
	if gender == models.GenderFemale {
		given = loc.Female
		if len(loc.FemaleSurnames) > 0 {
			surnames = loc.FemaleSurnames
		}
	}
	return loc.compose(random.Pick(src, given), random.Pick(src, surnames))
}

func (loc Locale) compose(given, surname string) string {
	if loc.Order == FamilyFirst {
		return surname + given
	}
	return given + " " + surname
}

func (loc Locale) validate() error {
	switch loc.Order {
	case FamilyFirst, GivenFirst:
	default:
		return fmt.Errorf("unknown order %q", loc.Order)
	}
	if len(loc.Surnames) == 0 || len(loc.Male) == 0 || len(loc.Female) == 0 {
		return fmt.Errorf("surnames, male and female must be non-empty")
	}
	return nil
}
