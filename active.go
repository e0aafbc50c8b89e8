package nextbusclient

import (
	"sort"

	"github.com/theoremus-urban-solutions/nextbus-client/topology"
)

// EstimateActive probes vehicle locations to approximate which routes
// currently have vehicles in service. Every in-cache route with a vehicle
// inside the configured latitude window is active; every stop an active
// route touches is active, deduplicated by title. The resulting snapshot
// replaces any prior one. A probe failure leaves the previous snapshot (and
// its freshness clock) untouched.
func (c *Client) EstimateActive() (*topology.ActiveSnapshot, error) {
	idx, err := c.requireIndex()
	if err != nil {
		return nil, err
	}

	body, err := c.feed.VehicleLocations("", idx.LastVehicleTime)
	if err != nil {
		return nil, err
	}

	latMin, latMax := c.cfg.Agency.LatMin, c.cfg.Agency.LatMax
	activeRoutes := map[string]bool{}
	for i := range body.Vehicles {
		v := &body.Vehicles[i]
		if v.Lat < latMin || v.Lat > latMax {
			continue
		}
		if idx.GetRoute(v.RouteTag) != nil {
			activeRoutes[v.RouteTag] = true
		}
	}

	snap := &topology.ActiveSnapshot{Timestamp: c.now()}
	seenTitles := map[string]bool{}
	for tag := range activeRoutes {
		route := idx.GetRoute(tag)
		snap.Routes = append(snap.Routes, topology.RouteEntry{Tag: route.Tag, Title: route.Title})
		for _, stopTag := range route.Stops {
			stop := idx.GetStop(stopTag)
			if stop == nil || seenTitles[stop.Title] {
				continue
			}
			seenTitles[stop.Title] = true
			entry := topology.StopEntry{Title: stop.Title}
			if group := idx.GetTitleGroup(stop.Title); group != nil {
				entry.GeoHash = group.GeoHash
			}
			snap.Stops = append(snap.Stops, entry)
		}
	}
	sort.Slice(snap.Routes, func(i, j int) bool { return snap.Routes[i].Title < snap.Routes[j].Title })
	sort.Slice(snap.Stops, func(i, j int) bool { return snap.Stops[i].Title < snap.Stops[j].Title })

	idx.SetActive(snap)
	if body.LastTime != nil {
		idx.LastVehicleTime = body.LastTime.Time
	}
	return snap, nil
}

// IsActiveFresh reports whether an active snapshot exists and is younger
// than the configured expiry.
func (c *Client) IsActiveFresh() bool {
	if c.index == nil {
		return false
	}
	return c.index.ActiveFresh(c.activeExpiry, c.now())
}
