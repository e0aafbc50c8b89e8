package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	lib "github.com/theoremus-urban-solutions/nextbus-client"
	"github.com/theoremus-urban-solutions/nextbus-client/config"
)

func main() {
	call := flag.String("call", "routes", "routes|stops|predict-route|predict-stop|predict-pairs|nearest|vehicles")
	route := flag.String("route", "", "route tag or title")
	stop := flag.String("stop", "", "stop tag or title")
	direction := flag.String("direction", "", "direction tag filter")
	pairs := flag.String("pairs", "", "comma-separated route|stop pairs for predict-pairs")
	units := flag.String("units", "minutes", "minutes|seconds|both")
	lat := flag.Float64("lat", 0, "latitude for nearest")
	lon := flag.Float64("lon", 0, "longitude for nearest")
	count := flag.Int("count", 5, "number of nearest stops")
	precision := flag.Int("precision", 0, "geohash precision for nearest (0 = default)")
	active := flag.Bool("active", false, "estimate the active subset before listing")
	cachePath := flag.String("cache", "", "path for topology cache import/export")
	flag.Parse()

	lib.InitLogging()
	cfg, err := config.LoadAppConfig()
	if err != nil {
		fatal(err)
	}
	client := lib.NewClient(cfg)

	// Prefer a cached topology when one is on disk; fall back to a fetch and
	// write the fetched topology back for the next run.
	cached := false
	if *cachePath != "" {
		if data, err := os.ReadFile(*cachePath); err == nil {
			if err := client.ImportCache(data); err == nil {
				cached = true
			}
		}
	}
	if !cached {
		if err := client.BuildCache(); err != nil {
			fatal(err)
		}
		if *cachePath != "" {
			if data, err := client.ExportCache(); err == nil {
				_ = os.WriteFile(*cachePath, data, 0644)
			}
		}
	}

	if *active {
		if _, err := client.EstimateActive(); err != nil {
			fatal(err)
		}
	}

	var out any
	switch *call {
	case "routes":
		out, err = client.Routes()
	case "stops":
		out, err = client.Stops()
	case "predict-route":
		out, err = client.PredictByRoute(*route, *direction, unitMode(*units))
	case "predict-stop":
		out, err = client.PredictByStop(*stop, *direction, unitMode(*units))
	case "predict-pairs":
		out, err = client.PredictByPairs(parsePairs(*pairs), unitMode(*units))
	case "nearest":
		out, err = client.NearestStops(*lat, *lon, *count, *precision)
	case "vehicles":
		out, err = client.VehicleLocations(*route)
	default:
		fatal(fmt.Errorf("unknown call %q", *call))
	}
	if err != nil {
		fatal(err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(out)
}

func unitMode(s string) lib.UnitMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "seconds":
		return lib.UnitSeconds
	case "both":
		return lib.UnitBoth
	default:
		return lib.UnitMinutes
	}
}

func parsePairs(s string) []lib.Pair {
	var out []lib.Pair
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		parts := strings.SplitN(item, "|", 2)
		if len(parts) != 2 {
			continue
		}
		out = append(out, lib.Pair{Route: parts[0], Stop: parts[1]})
	}
	return out
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
