package topology

import (
	"sort"
	"sync"
	"time"
)

// Index stores one agency's route/stop topology in memory for fast lookups.
// It is replaced wholesale on rebuild, never mutated piecemeal; the only
// post-build writes are memoizations (query fragments, sorter indices),
// guarded by per-record mutexes, and active-snapshot replacement.
//
// Fields are exported for gob round-tripping through external stores.
type Index struct {
	AgencyTag       string
	Routes          map[string]*Route      // route tag -> record
	Stops           map[string]*Stop       // stop tag -> record
	StopsByTitle    map[string]*TitleGroup // display title -> group of stop tags
	RoutesByTitle   map[string]*Route      // display title -> record (back-reference)
	StopOrder       []string               // stop tags in first-seen config order
	SortedRoutes    []RouteEntry           // title-collated
	SortedStops     []StopEntry            // title-collated, one per TitleGroup
	Active          *ActiveSnapshot
	LastVehicleTime string // epoch-ms watermark from the last vehicleLocations probe
}

// Route is one route record. Stops holds stop tags in config order with
// duplicates removed (first occurrence wins). The mutex guards the lazily
// memoized fields so predictors can run concurrently against a stable
// index; gob skips it along with every other unexported field.
type Route struct {
	Tag        string
	Title      string
	Stops      []string
	Directions []DirectionRef
	Queries    map[string]string // direction -> memoized stops fragment
	Sorter     map[string]int    // stop tag -> config position, built on first use

	mu sync.Mutex
}

// DirectionRef names one direction of a route.
type DirectionRef struct {
	Tag   string
	Title string
}

// Stop is one physical stop record shared across the routes that serve it.
type Stop struct {
	Tag     string
	Title   string
	Lat     float64
	Lon     float64
	StopID  string
	Routes  []string          // route tags serving this stop
	Queries map[string]string // direction -> memoized stops fragment

	mu sync.Mutex
}

// TitleGroup collects the stop tags sharing one rider-facing title so they
// can be queried as a single logical stop.
type TitleGroup struct {
	Title   string
	Tags    []string // first-seen order, each tag once
	GeoHash string
	Queries map[string]string

	mu sync.Mutex
}

// RouteEntry is a listing row for a route.
type RouteEntry struct {
	Tag   string `json:"tag"`
	Title string `json:"title"`
}

// StopEntry is a listing row for a logical (title-grouped) stop.
type StopEntry struct {
	Title   string `json:"title"`
	GeoHash string `json:"geoHash"`
}

// ActiveSnapshot is the estimator's view of which routes and stops currently
// have vehicles in service. It is immutable once produced and superseded
// wholesale by the next estimation run.
type ActiveSnapshot struct {
	Timestamp time.Time
	Routes    []RouteEntry // title-sorted
	Stops     []StopEntry  // title-sorted
}

// NewIndex creates an empty topology index for an agency.
func NewIndex(agencyTag string) *Index {
	return &Index{
		AgencyTag:     agencyTag,
		Routes:        map[string]*Route{},
		Stops:         map[string]*Stop{},
		StopsByTitle:  map[string]*TitleGroup{},
		RoutesByTitle: map[string]*Route{},
	}
}

// Accessor methods

func (x *Index) GetRoute(tag string) *Route             { return x.Routes[tag] }
func (x *Index) GetStop(tag string) *Stop               { return x.Stops[tag] }
func (x *Index) GetTitleGroup(title string) *TitleGroup { return x.StopsByTitle[title] }
func (x *Index) GetRouteByTitle(title string) *Route    { return x.RoutesByTitle[title] }

// RouteListing returns the title-collated route entries.
func (x *Index) RouteListing() []RouteEntry { return x.SortedRoutes }

// StopListing returns the title-collated logical stop entries.
func (x *Index) StopListing() []StopEntry { return x.SortedStops }

// ActiveFresh reports whether the active snapshot exists and is younger than
// the expiry window at the given instant.
func (x *Index) ActiveFresh(expiry time.Duration, now time.Time) bool {
	if x.Active == nil {
		return false
	}
	return now.Sub(x.Active.Timestamp) < expiry
}

// SetActive replaces the active snapshot wholesale.
func (x *Index) SetActive(snap *ActiveSnapshot) { x.Active = snap }

// sortListings produces the title-collated listings and the title reverse
// index for routes. Called once at the end of Build.
func (x *Index) sortListings() {
	x.SortedRoutes = make([]RouteEntry, 0, len(x.Routes))
	for _, r := range x.Routes {
		x.SortedRoutes = append(x.SortedRoutes, RouteEntry{Tag: r.Tag, Title: r.Title})
		x.RoutesByTitle[r.Title] = r
	}
	sort.Slice(x.SortedRoutes, func(i, j int) bool {
		if x.SortedRoutes[i].Title != x.SortedRoutes[j].Title {
			return x.SortedRoutes[i].Title < x.SortedRoutes[j].Title
		}
		return x.SortedRoutes[i].Tag < x.SortedRoutes[j].Tag
	})

	x.SortedStops = make([]StopEntry, 0, len(x.StopsByTitle))
	for _, g := range x.StopsByTitle {
		x.SortedStops = append(x.SortedStops, StopEntry{Title: g.Title, GeoHash: g.GeoHash})
	}
	sort.Slice(x.SortedStops, func(i, j int) bool {
		return x.SortedStops[i].Title < x.SortedStops[j].Title
	})
}
