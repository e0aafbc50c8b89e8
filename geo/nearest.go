package geo

import (
	"math"
	"sort"

	"github.com/tidwall/rtree"
)

const earthRadiusKM = 6371.0

// Candidate is one stop entry offered to the nearest lookup.
type Candidate struct {
	Title   string
	GeoHash string
}

// Ranked is a candidate ordered by distance from the query point.
type Ranked struct {
	Title      string  `json:"title"`
	GeoHash    string  `json:"geoHash"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	DistanceKM float64 `json:"distanceKm"`
}

// Nearest ranks the k candidates closest to (lat, lon). Candidate positions
// are taken from their geohashes truncated to the requested precision;
// precision <= 0 uses the full hash. Candidates with empty geohashes are
// skipped.
func Nearest(lat, lon float64, candidates []Candidate, k, precision int) []Ranked {
	if k <= 0 || len(candidates) == 0 {
		return []Ranked{}
	}

	tree := &rtree.RTree{}
	for _, cand := range candidates {
		if cand.GeoHash == "" {
			continue
		}
		clat, clon := Decode(cand.GeoHash, precision)
		r := Ranked{Title: cand.Title, GeoHash: cand.GeoHash, Lat: clat, Lon: clon}
		// For points, min and max are the same [lat, lon]
		tree.Insert([2]float64{clat, clon}, [2]float64{clat, clon}, r)
	}

	// Expanding-window search: grow the box around the query point until at
	// least k candidates fall inside, then rank by haversine distance.
	found := []Ranked{}
	for radius := 0.005; ; radius *= 2 {
		found = found[:0]
		tree.Search(
			[2]float64{lat - radius, lon - radius},
			[2]float64{lat + radius, lon + radius},
			func(min, max [2]float64, data interface{}) bool {
				if r, ok := data.(Ranked); ok {
					found = append(found, r)
				}
				return true
			},
		)
		if len(found) >= k || radius > 360 {
			break
		}
	}

	for i := range found {
		found[i].DistanceKM = HaversineKM(lat, lon, found[i].Lat, found[i].Lon)
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].DistanceKM != found[j].DistanceKM {
			return found[i].DistanceKM < found[j].DistanceKM
		}
		return found[i].Title < found[j].Title
	})
	if len(found) > k {
		found = found[:k]
	}
	return found
}

// HaversineKM returns the great-circle distance between two coordinates.
func HaversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKM * math.Asin(math.Sqrt(a))
}
