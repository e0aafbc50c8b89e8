package geo

import (
	"github.com/mmcloughlin/geohash"
)

// DefaultPrecision is the geohash character length used when a caller does
// not request one. Nine characters resolves to roughly 5 meters.
const DefaultPrecision = 9

// Encode returns the geohash of a coordinate at DefaultPrecision.
func Encode(lat, lon float64) string {
	return geohash.EncodeWithPrecision(lat, lon, DefaultPrecision)
}

// EncodeWithPrecision returns the geohash of a coordinate at the given
// character length (1..12).
func EncodeWithPrecision(lat, lon float64, chars int) string {
	if chars <= 0 || chars > 12 {
		chars = DefaultPrecision
	}
	return geohash.EncodeWithPrecision(lat, lon, uint(chars))
}

// Decode returns the center coordinate of a geohash cell, optionally
// truncated to the given precision first.
func Decode(hash string, precision int) (lat, lon float64) {
	if precision > 0 && precision < len(hash) {
		hash = hash[:precision]
	}
	return geohash.DecodeCenter(hash)
}
