// Package geo provides geohash encoding and nearest-stop candidate ranking.
//
// Stops are stored as geohashes in the topology cache; Nearest decodes the
// candidate set into an R-tree and ranks the closest entries to a query
// point. The package adds no ranking policy of its own beyond great-circle
// distance.
package geo
