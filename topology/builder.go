package topology

import (
	"github.com/theoremus-urban-solutions/nextbus-client/feed"
	"github.com/theoremus-urban-solutions/nextbus-client/geo"
)

// Build consumes a parsed routeConfig document and produces a fully
// populated Index. Routes with any stop outside [latMin, latMax] are
// discarded entirely. An empty route list yields an empty index, not an
// error; transport and parse failures belong to the fetch layer.
func Build(agencyTag string, body *feed.Body, latMin, latMax float64) *Index {
	x := NewIndex(agencyTag)

	for i := range body.Routes {
		re := &body.Routes[i]
		if re.Tag == "" {
			continue
		}

		// First pass: collect this route's stop elements before touching
		// shared records, so a discarded route leaves no partial state.
		seen := map[string]bool{}
		kept := make([]*feed.Stop, 0, len(re.Stops))
		inBounds := true
		for j := range re.Stops {
			se := &re.Stops[j]
			// Stops without a title are direction-listing echoes.
			if se.Title == "" || se.Tag == "" {
				continue
			}
			if seen[se.Tag] {
				continue
			}
			if se.Lat < latMin || se.Lat > latMax {
				inBounds = false
				break
			}
			seen[se.Tag] = true
			kept = append(kept, se)
		}
		if !inBounds {
			continue
		}

		route := &Route{
			Tag:     re.Tag,
			Title:   re.Title,
			Stops:   make([]string, 0, len(kept)),
			Queries: map[string]string{},
		}
		for _, se := range kept {
			route.Stops = append(route.Stops, se.Tag)
			stop := x.Stops[se.Tag]
			if stop == nil {
				stop = &Stop{
					Tag:     se.Tag,
					Title:   se.Title,
					Lat:     se.Lat,
					Lon:     se.Lon,
					StopID:  se.StopID,
					Queries: map[string]string{},
				}
				x.Stops[se.Tag] = stop
				x.StopOrder = append(x.StopOrder, se.Tag)
			}
			stop.Routes = append(stop.Routes, route.Tag)
		}
		for _, de := range re.Directions {
			route.Directions = append(route.Directions, DirectionRef{Tag: de.Tag, Title: de.Title})
		}
		x.Routes[route.Tag] = route
	}

	x.combineTitles()
	x.sortListings()
	return x
}

// combineTitles groups stops by display title into TitleGroups, geohashing
// each group's representative coordinate once.
func (x *Index) combineTitles() {
	for _, tag := range x.StopOrder {
		stop := x.Stops[tag]
		group := x.StopsByTitle[stop.Title]
		if group == nil {
			group = &TitleGroup{
				Title:   stop.Title,
				GeoHash: geo.Encode(stop.Lat, stop.Lon),
				Queries: map[string]string{},
			}
			x.StopsByTitle[stop.Title] = group
		}
		group.Tags = append(group.Tags, tag)
	}
}
