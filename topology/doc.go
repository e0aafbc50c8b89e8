/*
Package topology builds and indexes one agency's route/stop topology.

The package is data-source agnostic: it accepts a parsed routeConfig Body
and builds an in-memory Index. It does not perform HTTP fetches.

# Basic Usage

	body, err := feedClient.RouteConfig(true)
	if err != nil {
	    // transport or parse failure, surfaced verbatim
	}
	index := topology.Build("ttc", body, 43.0, 44.0)

	route := index.GetRoute("501")
	fragment := route.QueryFragment("")

# Invariants

  - A route is kept only if every one of its stops lies inside the latitude
    bounds given to Build; one out-of-bound stop discards the whole route.
  - Stop tags are unique within a route's stop sequence (first wins).
  - Query fragments and sorter indices are memoized at most once per
    (record, direction); a rebuild replaces the whole index, so memoized
    values are never stale.

# Persistence

SerializeIndex/DeserializeIndex gob-encode the index so callers can park it
in an external store and skip the topology fetch on restart. The payload is
opaque to this package's callers.
*/
package topology
