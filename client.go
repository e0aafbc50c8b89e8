package nextbusclient

import (
	"slices"
	"time"

	"github.com/theoremus-urban-solutions/nextbus-client/config"
	"github.com/theoremus-urban-solutions/nextbus-client/feed"
	"github.com/theoremus-urban-solutions/nextbus-client/geo"
	"github.com/theoremus-urban-solutions/nextbus-client/topology"
)

// Client owns one agency's topology cache and issues prediction and vehicle
// queries against it. A single logical owner is assumed: operations must not
// race a BuildCache/ImportCache on the same instance. Predictors against a
// stable cache may run concurrently; their only writes are idempotent
// query-fragment memoizations.
type Client struct {
	cfg          *config.AppConfig
	feed         *feed.Client
	index        *topology.Index
	activeExpiry time.Duration

	now func() time.Time
}

// NewClient creates a client for the configured agency. No network I/O
// happens until BuildCache or a predictor is called.
func NewClient(cfg *config.AppConfig) *Client {
	expiry := time.Duration(cfg.Active.ExpirySec) * time.Second
	if expiry <= 0 {
		expiry = config.DefaultActiveExpirySec * time.Second
	}
	return &Client{
		cfg:          cfg,
		feed:         feed.NewClient(cfg.Feed.BaseURL, cfg.Agency.Tag, time.Duration(cfg.Feed.TimeoutMS)*time.Millisecond),
		activeExpiry: expiry,
		now:          time.Now,
	}
}

// BuildCache fetches the routeConfig document and replaces the topology
// cache wholesale. A failed fetch leaves any previous cache intact.
func (c *Client) BuildCache() error {
	body, err := c.feed.RouteConfig(true)
	if err != nil {
		return err
	}
	c.index = topology.Build(c.cfg.Agency.Tag, body, c.cfg.Agency.LatMin, c.cfg.Agency.LatMax)
	return nil
}

func (c *Client) requireIndex() (*topology.Index, error) {
	if c.index == nil {
		return nil, ErrNoCache
	}
	return c.index, nil
}

// Routes lists routes, preferring the active subset while it is fresh. The
// returned slice is the caller's to mutate.
func (c *Client) Routes() ([]topology.RouteEntry, error) {
	idx, err := c.requireIndex()
	if err != nil {
		return nil, err
	}
	if idx.ActiveFresh(c.activeExpiry, c.now()) {
		return slices.Clone(idx.Active.Routes), nil
	}
	return slices.Clone(idx.RouteListing()), nil
}

// Stops lists logical (title-grouped) stops, preferring the active subset
// while it is fresh. The returned slice is the caller's to mutate.
func (c *Client) Stops() ([]topology.StopEntry, error) {
	idx, err := c.requireIndex()
	if err != nil {
		return nil, err
	}
	if idx.ActiveFresh(c.activeExpiry, c.now()) {
		return slices.Clone(idx.Active.Stops), nil
	}
	return slices.Clone(idx.StopListing()), nil
}

// NearestStops ranks the count stops closest to (lat, lon). The candidate
// set is the fresh active subset when available, else the full listing.
// precision <= 0 lets the geo package pick its default.
func (c *Client) NearestStops(lat, lon float64, count, precision int) ([]geo.Ranked, error) {
	entries, err := c.Stops()
	if err != nil {
		return nil, err
	}
	if precision <= 0 {
		precision = c.cfg.Geo.Precision
	}
	candidates := make([]geo.Candidate, 0, len(entries))
	for _, e := range entries {
		candidates = append(candidates, geo.Candidate{Title: e.Title, GeoHash: e.GeoHash})
	}
	return geo.Nearest(lat, lon, candidates, count, precision), nil
}

// SetActiveExpiry overrides the active-subset freshness window.
func (c *Client) SetActiveExpiry(d time.Duration) {
	if d > 0 {
		c.activeExpiry = d
	}
}

// VehicleLocations fetches current vehicle positions, filtered to one route
// when routeTag is non-empty. When a cache exists its vehicle-report
// watermark scopes the probe to updates since the previous call.
func (c *Client) VehicleLocations(routeTag string) ([]feed.Vehicle, error) {
	lastTime := ""
	if c.index != nil {
		lastTime = c.index.LastVehicleTime
	}
	body, err := c.feed.VehicleLocations(routeTag, lastTime)
	if err != nil {
		return nil, err
	}
	if c.index != nil && body.LastTime != nil {
		c.index.LastVehicleTime = body.LastTime.Time
	}
	return body.Vehicles, nil
}

// ExportCache returns the topology cache as an opaque payload for external
// persistence.
func (c *Client) ExportCache() ([]byte, error) {
	idx, err := c.requireIndex()
	if err != nil {
		return nil, err
	}
	return topology.SerializeIndex(idx)
}

// ImportCache replaces the topology cache with a previously exported
// payload, skipping the routeConfig fetch.
func (c *Client) ImportCache(data []byte) error {
	idx, err := topology.DeserializeIndex(data)
	if err != nil {
		return err
	}
	c.index = idx
	return nil
}
