package country

import (
	"github.com/golang/geo/s2"

	"addrgen/internal/random"
	"addrgen/models"
)

// Sampler draws jittered points inside a country's seed regions.
type Sampler struct {
	src *random.Source
}

// NewSampler creates a sampler. A nil src uses a time-seeded source.
func NewSampler(src *random.Source) *Sampler {
	if src == nil {
		src = random.New()
	}
	return &Sampler{src: src}
}

// Sample picks one of c's seeds uniformly and offsets latitude and longitude
// independently by a uniform value in [-r/2, r/2], r being c's jitter.
func (s *Sampler) Sample(c models.Country) (models.GeoPoint, error) {
	e, err := lookup(c)
	if err != nil {
		return models.GeoPoint{}, err
	}

	base := random.Pick(s.src, e.seeds)
	r := e.jitterOrDefault()
	lat := base.Lat + (s.src.Float64()-0.5)*r
	lng := base.Lng + (s.src.Float64()-0.5)*r

	ll := s2.LatLngFromDegrees(lat, lng).Normalized()
	return models.GeoPoint{Lat: ll.Lat.Degrees(), Lng: ll.Lng.Degrees()}, nil
}
