package models

import (
	"fmt"

	geohash "github.com/TomiHiltunen/geohash-golang"
)

// geohashPrecision of 7 characters is a cell of roughly 150m.
const geohashPrecision = 7

// GeoPoint is a sampled latitude/longitude pair
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geohash returns the point's geohash cell, used in logs and trace attributes.
func (p GeoPoint) Geohash() string {
	return geohash.EncodeWithPrecision(p.Lat, p.Lng, geohashPrecision)
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lng)
}

// RawAddress mirrors the "address" object of a Nominatim reverse lookup.
// Every field is optional.
type RawAddress struct {
	HouseNumber   string `json:"house_number,omitempty"`
	Road          string `json:"road,omitempty"`
	Village       string `json:"village,omitempty"`
	Town          string `json:"town,omitempty"`
	City          string `json:"city,omitempty"`
	StateDistrict string `json:"state_district,omitempty"`
	State         string `json:"state,omitempty"`
	Province      string `json:"province,omitempty"`
	Region        string `json:"region,omitempty"`
	Postcode      string `json:"postcode,omitempty"`
	Country       string `json:"country,omitempty"`
	CountryCode   string `json:"country_code,omitempty"`
}

// RawGeocodeResult is the provider's response for a single point
type RawGeocodeResult struct {
	PlaceID     int64      `json:"place_id"`
	Lat         string     `json:"lat"`
	Lon         string     `json:"lon"`
	DisplayName string     `json:"display_name"`
	Address     RawAddress `json:"address"`
}
