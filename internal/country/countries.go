// Package country holds the static table of supported countries, their seed
// coordinates, and the random point sampler built on top of it.
package country

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"addrgen/internal/random"
	"addrgen/models"
)

// ErrUnsupportedCountry is returned for a code outside the supported set.
var ErrUnsupportedCountry = errors.New("unsupported country")

// DefaultJitter is the side length, in degrees, of the square a seed is
// jittered within.
const DefaultJitter = 0.1

type seed struct {
	Lat float64
	Lng float64
}

type entry struct {
	code    models.Country
	name    string
	english string
	seeds   []seed
	jitter  float64
}

// table is ordered as the codes are listed in models; Options sorts a copy.
var table = []entry{
	{models.CountryUS, "United States 美国", "United States", []seed{{37.7749, -122.4194}, {34.0522, -118.2437}}, 0},
	{models.CountryUK, "United Kingdom 英国", "United Kingdom", []seed{{51.5074, -0.1278}, {53.4808, -2.2426}}, 0},
	{models.CountryFR, "France 法国", "France", []seed{{48.8566, 2.3522}, {45.7640, 4.8357}}, 0},
	{models.CountryDE, "Germany 德国", "Germany", []seed{{52.5200, 13.4050}, {48.1351, 11.5820}}, 0},
	{models.CountryCN, "China 中国", "China", []seed{{39.9042, 116.4074}, {31.2304, 121.4737}}, 0},
	{models.CountryTW, "Taiwan 中国台湾", "Taiwan", []seed{{25.0330, 121.5654}, {22.6273, 120.3014}}, 0},
	{models.CountryHK, "Hong Kong 中国香港", "Hong Kong", []seed{{22.3193, 114.1694}, {22.3964, 114.1095}}, 0.03},
	{models.CountryJP, "Japan 日本", "Japan", []seed{{35.6895, 139.6917}, {34.6937, 135.5023}}, 0},
	{models.CountryIN, "India 印度", "India", []seed{{28.6139, 77.2090}, {19.0760, 72.8777}}, 0},
	{models.CountryAU, "Australia 澳大利亚", "Australia", []seed{{-33.8688, 151.2093}, {-37.8136, 144.9631}}, 0},
	{models.CountryBR, "Brazil 巴西", "Brazil", []seed{{-23.5505, -46.6333}, {-22.9068, -43.1729}}, 0},
	{models.CountryCA, "Canada 加拿大", "Canada", []seed{{43.651070, -79.347015}, {45.501690, -73.567253}}, 0},
	{models.CountryRU, "Russia 俄罗斯", "Russia", []seed{{55.7558, 37.6173}, {59.9343, 30.3351}}, 0},
	{models.CountryZA, "South Africa 南非", "South Africa", []seed{{-33.9249, 18.4241}, {-26.2041, 28.0473}}, 0},
	{models.CountryMX, "Mexico 墨西哥", "Mexico", []seed{{19.4326, -99.1332}, {20.6597, -103.3496}}, 0},
	{models.CountryKR, "South Korea 韩国", "South Korea", []seed{{37.5665, 126.9780}, {35.1796, 129.0756}}, 0},
	{models.CountryIT, "Italy 意大利", "Italy", []seed{{41.9028, 12.4964}, {45.4642, 9.1900}}, 0},
	{models.CountryES, "Spain 西班牙", "Spain", []seed{{40.4168, -3.7038}, {41.3851, 2.1734}}, 0},
	{models.CountryTR, "Turkey 土耳其", "Turkey", []seed{{41.0082, 28.9784}, {39.9334, 32.8597}}, 0},
	{models.CountrySA, "Saudi Arabia 沙特阿拉伯", "Saudi Arabia", []seed{{24.7136, 46.6753}, {21.3891, 39.8579}}, 0},
	{models.CountryAR, "Argentina 阿根廷", "Argentina", []seed{{-34.6037, -58.3816}, {-31.4201, -64.1888}}, 0},
	{models.CountryEG, "Egypt 埃及", "Egypt", []seed{{30.0444, 31.2357}, {31.2156, 29.9553}}, 0},
	{models.CountryNG, "Nigeria 尼日利亚", "Nigeria", []seed{{6.5244, 3.3792}, {9.0579, 7.4951}}, 0},
	{models.CountryID, "Indonesia 印度尼西亚", "Indonesia", []seed{{-6.2088, 106.8456}, {-7.7956, 110.3695}}, 0},
}

var byCode = func() map[models.Country]*entry {
	m := make(map[models.Country]*entry, len(table))
	for i := range table {
		m[table[i].code] = &table[i]
	}
	return m
}()

func lookup(c models.Country) (*entry, error) {
	e, ok := byCode[c]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnsupportedCountry, string(c))
	}
	return e, nil
}

// Supported returns every supported country code.
func Supported() []models.Country {
	codes := make([]models.Country, len(table))
	for i, e := range table {
		codes[i] = e.code
	}
	return codes
}

// IsSupported reports whether c is in the supported set.
func IsSupported(c models.Country) bool {
	_, ok := byCode[c]
	return ok
}

// Parse normalizes s to upper case and validates it.
func Parse(s string) (models.Country, error) {
	c := models.Country(strings.ToUpper(strings.TrimSpace(s)))
	if _, err := lookup(c); err != nil {
		return "", err
	}
	return c, nil
}

// Random picks a supported country uniformly.
func Random(src *random.Source) models.Country {
	return random.Pick(src, table).code
}

// Jitter returns the jitter side length for c.
func Jitter(c models.Country) (float64, error) {
	e, err := lookup(c)
	if err != nil {
		return 0, err
	}
	return e.jitterOrDefault(), nil
}

// Seeds returns the seed coordinates of c as points.
func Seeds(c models.Country) ([]models.GeoPoint, error) {
	e, err := lookup(c)
	if err != nil {
		return nil, err
	}
	points := make([]models.GeoPoint, len(e.seeds))
	for i, s := range e.seeds {
		points[i] = models.GeoPoint{Lat: s.Lat, Lng: s.Lng}
	}
	return points, nil
}

// Options lists every supported country sorted by English display name.
func Options() []models.CountryOption {
	opts := make([]models.CountryOption, len(table))
	for i, e := range table {
		opts[i] = models.CountryOption{Code: e.code, Name: e.name, English: e.english}
	}
	sort.Slice(opts, func(i, j int) bool {
		return opts[i].English < opts[j].English
	})
	return opts
}

func (e *entry) jitterOrDefault() float64 {
	if e.jitter > 0 {
		return e.jitter
	}
	return DefaultJitter
}
