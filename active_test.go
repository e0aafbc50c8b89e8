package nextbusclient

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateActive_SnapshotContents(t *testing.T) {
	stub := &stubFeed{vehicles: testVehiclesXML}
	c := newTestClient(t, stub)
	require.NoError(t, c.BuildCache())

	snap, err := c.EstimateActive()
	require.NoError(t, err)

	// Vehicle 8002 is outside the latitude window and 8003 names a route
	// missing from the cache, so only route a counts as active.
	require.Len(t, snap.Routes, 1)
	assert.Equal(t, "a", snap.Routes[0].Tag)

	require.Len(t, snap.Stops, 3)
	assert.Equal(t, "First St", snap.Stops[0].Title)
	assert.Equal(t, "Second St", snap.Stops[1].Title)
	assert.Equal(t, "Third St", snap.Stops[2].Title)
	for _, s := range snap.Stops {
		assert.NotEmpty(t, s.GeoHash, "active stops carry the group geohash")
	}
}

func TestEstimateActive_FreshnessExpires(t *testing.T) {
	stub := &stubFeed{vehicles: testVehiclesXML}
	c := newTestClient(t, stub)
	require.NoError(t, c.BuildCache())

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	assert.False(t, c.IsActiveFresh(), "no snapshot yet")

	_, err := c.EstimateActive()
	require.NoError(t, err)
	assert.True(t, c.IsActiveFresh())

	routes, err := c.Routes()
	require.NoError(t, err)
	assert.Len(t, routes, 1, "fresh snapshot narrows the listing")
	stops, err := c.Stops()
	require.NoError(t, err)
	assert.Len(t, stops, 3)

	// Past the expiry window the listings fall back to the full sorted set.
	c.now = func() time.Time { return base.Add(c.activeExpiry + time.Second) }
	assert.False(t, c.IsActiveFresh())

	routes, err = c.Routes()
	require.NoError(t, err)
	assert.Len(t, routes, 2)
	stops, err = c.Stops()
	require.NoError(t, err)
	assert.Len(t, stops, 4)
}

func TestEstimateActive_ProbeFailureKeepsSnapshot(t *testing.T) {
	stub := &stubFeed{vehicles: testVehiclesXML}
	c := newTestClient(t, stub)
	require.NoError(t, c.BuildCache())

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }
	_, err := c.EstimateActive()
	require.NoError(t, err)

	stub.fail = true
	_, err = c.EstimateActive()
	assert.Error(t, err)
	assert.True(t, c.IsActiveFresh(), "failed probe must not clear the snapshot")
	assert.Equal(t, base, c.index.Active.Timestamp)
}

func TestEstimateActive_WatermarkScopesNextProbe(t *testing.T) {
	stub := &stubFeed{vehicles: testVehiclesXML}
	c := newTestClient(t, stub)
	require.NoError(t, c.BuildCache())

	_, err := c.EstimateActive()
	require.NoError(t, err)
	assert.Equal(t, "1770000000123", c.index.LastVehicleTime)

	_, err = c.EstimateActive()
	require.NoError(t, err)

	var vehicleQueries []string
	for i, cmd := range stub.commands {
		if cmd == "vehicleLocations" {
			vehicleQueries = append(vehicleQueries, stub.queries[i])
		}
	}
	require.Len(t, vehicleQueries, 2)
	assert.Contains(t, vehicleQueries[0], "t=0")
	assert.True(t, strings.Contains(vehicleQueries[1], "t=1770000000123"),
		"second probe reuses the watermark")
}
