package phone

import (
	"fmt"
	"regexp"

	"addrgen/internal/random"
	"addrgen/models"
)

// Format pairs a number generator with the pattern its output must match.
type Format struct {
	Generate func(src *random.Source) string
	Pattern  *regexp.Regexp
}

var (
	nanp = Format{
		Generate: func(src *random.Source) string {
			return fmt.Sprintf("+1 (%d) %d-%d", src.Between(200, 1000), src.Between(200, 1000), src.Between(1000, 10000))
		},
		Pattern: regexp.MustCompile(`^\+1 \([2-9]\d{2}\) [2-9]\d{2}-[1-9]\d{3}$`),
	}

	uk = Format{
		Generate: func(src *random.Source) string {
			return fmt.Sprintf("+44 %d %d", src.Between(1000, 10000), src.Between(100000, 1000000))
		},
		Pattern: regexp.MustCompile(`^\+44 [1-9]\d{3} [1-9]\d{5}$`),
	}

	fr = Format{
		Generate: func(src *random.Source) string {
			return fmt.Sprintf("+33 %d %s", src.Between(1, 9), src.Digits(8))
		},
		Pattern: regexp.MustCompile(`^\+33 [1-8] \d{8}$`),
	}

	cn = Format{
		Generate: func(src *random.Source) string {
			return fmt.Sprintf("+86 %d %s", src.Between(130, 190), src.Digits(8))
		},
		Pattern: regexp.MustCompile(`^\+86 1[3-8]\d \d{8}$`),
	}

	tw = Format{
		Generate: func(src *random.Source) string {
			return "+886 9" + src.Digits(8)
		},
		Pattern: regexp.MustCompile(`^\+886 9\d{8}$`),
	}

	hk = Format{
		Generate: func(src *random.Source) string {
			return "+852 " + src.Digits(8)
		},
		Pattern: regexp.MustCompile(`^\+852 \d{8}$`),
	}

	in = Format{
		Generate: func(src *random.Source) string {
			return fmt.Sprintf("+91 %d %s", src.Between(700, 800), src.Digits(7))
		},
		Pattern: regexp.MustCompile(`^\+91 7\d{2} \d{7}$`),
	}

	au = Format{
		Generate: func(src *random.Source) string {
			return fmt.Sprintf("+61 %d %s", src.Between(2, 10), src.Digits(8))
		},
		Pattern: regexp.MustCompile(`^\+61 [2-9] \d{8}$`),
	}

	tr = Format{
		Generate: func(src *random.Source) string {
			return fmt.Sprintf("+90 %d %s", src.Between(200, 1000), src.Digits(7))
		},
		Pattern: regexp.MustCompile(`^\+90 [2-9]\d{2} \d{7}$`),
	}
)

// areaFormat builds "+cc AREA DIGITS" where AREA is a number in [lo, hi) and
// DIGITS has n digits.
func areaFormat(cc string, lo, hi, n int) Format {
	areaLen := len(fmt.Sprint(lo))
	return Format{
		Generate: func(src *random.Source) string {
			return fmt.Sprintf("+%s %d %s", cc, src.Between(lo, hi), src.Digits(n))
		},
		Pattern: regexp.MustCompile(fmt.Sprintf(`^\+%s [1-9]\d{%d} \d{%d}$`, cc, areaLen-1, n)),
	}
}

var (
	de = areaFormat("49", 100, 1000, 7)
	jp = areaFormat("81", 10, 100, 8)
	br = areaFormat("55", 10, 100, 8)
	ru = areaFormat("7", 100, 1000, 7)
	za = areaFormat("27", 10, 100, 7)
	mx = areaFormat("52", 10, 100, 8)
	kr = areaFormat("82", 10, 100, 8)
	it = areaFormat("39", 10, 100, 8)
	es = areaFormat("34", 10, 100, 8)
	sa = areaFormat("966", 10, 100, 7)
	ar = areaFormat("54", 10, 100, 8)
	eg = areaFormat("20", 10, 100, 8)
	ng = areaFormat("234", 10, 100, 8)
	id = areaFormat("62", 10, 100, 8)
)

// FormatFor returns the number format for c. Unknown countries use the US
// format.
func FormatFor(c models.Country) Format {
	switch c {
	case models.CountryUS, models.CountryCA:
		return nanp
	case models.CountryUK:
		return uk
	case models.CountryFR:
		return fr
	case models.CountryDE:
		return de
	case models.CountryCN:
		return cn
	case models.CountryTW:
		return tw
	case models.CountryHK:
		return hk
	case models.CountryJP:
		return jp
	case models.CountryIN:
		return in
	case models.CountryAU:
		return au
	case models.CountryBR:
		return br
	case models.CountryRU:
		return ru
	case models.CountryZA:
		return za
	case models.CountryMX:
		return mx
	case models.CountryKR:
		return kr
	case models.CountryIT:
		return it
	case models.CountryES:
		return es
	case models.CountryTR:
		return tr
	case models.CountrySA:
		return sa
	case models.CountryAR:
		return ar
	case models.CountryEG:
		return eg
	case models.CountryNG:
		return ng
	case models.CountryID:
		return id
	default:
		return nanp
	}
}
