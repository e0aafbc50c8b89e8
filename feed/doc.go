// Package feed handles fetching and unmarshalling the public NextBus XML feed.
//
// It supports three commands:
//   - routeConfig: the full route/stop topology document
//   - predictionsForMultiStops: batched arrival predictions
//   - vehicleLocations: current vehicle positions
//
// The main type is Client which fetches one command at a time and returns the
// parsed Body. It performs a single attempt per call; retry policy belongs to
// the caller.
package feed
