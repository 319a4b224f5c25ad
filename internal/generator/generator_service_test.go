package generator

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"addrgen/internal/address"
	"addrgen/internal/country"
	"addrgen/internal/logging"
	"addrgen/internal/random"
	"addrgen/models"
)

type stubResolver struct {
	addr  models.FormattedAddress
	err   error
	calls []models.Country
}

func (s *stubResolver) Resolve(_ context.Context, c models.Country) (models.FormattedAddress, error) {
	s.calls = append(s.calls, c)
	return s.addr, s.err
}

type stubNames struct{ calls int }

func (s *stubNames) Synthesize(context.Context, models.Country) models.IdentityProfile {
	s.calls++
	return models.IdentityProfile{Name: "Ada Lovelace", Gender: models.GenderFemale}
}

type stubPhones struct{ calls int }

func (s *stubPhones) Synthesize(models.Country) string {
	s.calls++
	return "+1 (555) 555-5555"
}

var springfield = models.FormattedAddress{
	Full:       "12 Main St, Springfield, IL, 62704, US",
	State:      "IL",
	City:       "Springfield",
	Street:     "12 Main St",
	PostalCode: "62704",
}

func newTestService(r AddressResolver) (*GeneratorService, *stubNames, *stubPhones) {
	names, phones := &stubNames{}, &stubPhones{}
	s := NewGeneratorService(r, names, phones, random.NewSeeded(3), logging.Discard())
	s.nowFn = func() time.Time { return time.Date(2026, 10, 18, 8, 0, 0, 0, time.FixedZone("X", 3600)) }
	return s, names, phones
}

func TestGenerate_ComposesRecord(t *testing.T) {
	s, _, _ := newTestService(&stubResolver{addr: springfield})

	rec, err := s.Generate(context.Background(), models.CountryUS)
	require.NoError(t, err)

	_, err = uuid.Parse(rec.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.CountryUS, rec.Country)
	assert.Equal(t, springfield, rec.Address)
	assert.Equal(t, "Ada Lovelace", rec.Identity.Name)
	assert.Equal(t, models.GenderFemale, rec.Identity.Gender)
	assert.Equal(t, "+1 (555) 555-5555", rec.Phone)
	assert.Equal(t, time.UTC, rec.GeneratedAt.Location())
	assert.Equal(t, 7, rec.GeneratedAt.Hour())
}

func TestGenerate_AddressFailureSkipsIdentity(t *testing.T) {
	s, names, phones := newTestService(&stubResolver{err: address.ErrAddressUnavailable})

	_, err := s.Generate(context.Background(), models.CountryCN)
	assert.ErrorIs(t, err, address.ErrAddressUnavailable)
	assert.Zero(t, names.calls)
	assert.Zero(t, phones.calls)
}

func TestGenerate_UniqueIDs(t *testing.T) {
	s, _, _ := newTestService(&stubResolver{addr: springfield})

	a, err := s.Generate(context.Background(), models.CountryUS)
	require.NoError(t, err)
	b, err := s.Generate(context.Background(), models.CountryUS)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestResolveCountry(t *testing.T) {
	s, _, _ := newTestService(&stubResolver{})

	c, err := s.ResolveCountry("jp")
	require.NoError(t, err)
	assert.Equal(t, models.CountryJP, c)

	c, err = s.ResolveCountry("")
	require.NoError(t, err)
	assert.True(t, country.IsSupported(c))

	_, err = s.ResolveCountry("ZZ")
	assert.ErrorIs(t, err, country.ErrUnsupportedCountry)
}

func TestCountries_SortedByEnglishName(t *testing.T) {
	s, _, _ := newTestService(&stubResolver{})
	opts := s.Countries()

	require.Len(t, opts, len(country.Supported()))
	assert.Equal(t, "Argentina", opts[0].English)
	for i := 1; i < len(opts); i++ {
		assert.Less(t, opts[i-1].English, opts[i].English)
	}
}

func TestStatusFor(t *testing.T) {
	_, err := country.Parse("zz")
	status, msg := StatusFor(err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, `unsupported country "ZZ"`, msg)

	status, msg = StatusFor(address.ErrAddressUnavailable)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, UnavailableMessage, msg)

	status, _ = StatusFor(errors.New("anything"))
	assert.Equal(t, http.StatusInternalServerError, status)
}
