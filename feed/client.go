package feed

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Feed commands understood by the upstream service.
const (
	cmdRouteConfig              = "routeConfig"
	cmdPredictionsForMultiStops = "predictionsForMultiStops"
	cmdVehicleLocations         = "vehicleLocations"
)

// Client is a simple HTTP client for the public NextBus XML feed.
type Client struct {
	baseURL    string
	agency     string
	httpClient *http.Client
}

// NewClient creates a feed client for one agency. A zero timeout disables
// the HTTP deadline.
func NewClient(baseURL, agency string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		agency:     agency,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Agency returns the agency tag the client was built for.
func (c *Client) Agency() string { return c.agency }

// RouteConfig fetches the full route/stop topology document. The terse flag
// asks the service to omit path geometry, which this client never uses.
func (c *Client) RouteConfig(terse bool) (*Body, error) {
	params := url.Values{}
	params.Set("command", cmdRouteConfig)
	params.Set("a", c.agency)
	if terse {
		params.Set("terse", "true")
	}
	return c.get(params, "")
}

// PredictionsForMultiStops fetches batched predictions. The stopsFragment is
// a prebuilt "&stops=route|stopTag" sequence from the topology cache.
func (c *Client) PredictionsForMultiStops(stopsFragment string) (*Body, error) {
	params := url.Values{}
	params.Set("command", cmdPredictionsForMultiStops)
	params.Set("a", c.agency)
	return c.get(params, stopsFragment)
}

// VehicleLocations fetches vehicle positions. routeTag filters to one route
// when non-empty; lastTime is the epoch-millisecond watermark of the previous
// probe ("0" for a full snapshot).
func (c *Client) VehicleLocations(routeTag, lastTime string) (*Body, error) {
	params := url.Values{}
	params.Set("command", cmdVehicleLocations)
	params.Set("a", c.agency)
	if routeTag != "" {
		params.Set("r", routeTag)
	}
	if lastTime == "" {
		lastTime = "0"
	}
	params.Set("t", lastTime)
	return c.get(params, "")
}

func (c *Client) get(params url.Values, extraQuery string) (*Body, error) {
	u := c.baseURL + "?" + params.Encode() + extraQuery
	resp, err := c.httpClient.Get(u)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", u, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, u)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", u, err)
	}
	return ParseBody(data)
}

// ParseBody unmarshals a feed response and surfaces any embedded Error
// element as a failure.
func ParseBody(data []byte) (*Body, error) {
	var body Body
	if err := xml.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("failed to parse feed response: %w", err)
	}
	if body.Error != nil {
		return nil, fmt.Errorf("feed error (shouldRetry=%t): %s", body.Error.ShouldRetry, strings.TrimSpace(body.Error.Text))
	}
	return &body, nil
}
