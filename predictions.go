package nextbusclient

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/theoremus-urban-solutions/nextbus-client/feed"
	"github.com/theoremus-urban-solutions/nextbus-client/topology"
)

// UnitMode selects which arrival units a predictor reports.
type UnitMode int

const (
	UnitMinutes UnitMode = iota
	UnitSeconds
	UnitBoth
)

// Arrival is one prediction leaf in the requested units. Values are the raw
// attribute strings the service returned.
type Arrival struct {
	Minutes string `json:"minutes,omitempty"`
	Seconds string `json:"seconds,omitempty"`
}

// RoutePrediction is one physical stop's predictions for a route query.
// Predictions is nil, not empty, when the service reported zero scheduled
// arrivals for the stop.
type RoutePrediction struct {
	Title       string    `json:"title"`
	Tag         string    `json:"tag"`
	Predictions []Arrival `json:"predictions"`
}

// StopPrediction is one direction-within-route group for a stop query.
type StopPrediction struct {
	Direction   string    `json:"direction"`
	Title       string    `json:"title"`
	Predictions []Arrival `json:"predictions"`
}

// Pair names one route/stop combination for PredictByPairs. Route and Stop
// each accept a tag or a display title.
type Pair struct {
	Route string `json:"route"`
	Stop  string `json:"stop"`
}

// PairPrediction is one direction-per-physical-stop record for a pairs query.
type PairPrediction struct {
	RouteTitle  string    `json:"routeTitle"`
	StopTitle   string    `json:"stopTitle"`
	Direction   string    `json:"direction"`
	Predictions []Arrival `json:"predictions"`
}

func arrivalFromLeaf(leaf *feed.Prediction, units UnitMode) Arrival {
	switch units {
	case UnitSeconds:
		return Arrival{Seconds: leaf.Seconds}
	case UnitBoth:
		return Arrival{Minutes: leaf.Minutes, Seconds: leaf.Seconds}
	default:
		return Arrival{Minutes: leaf.Minutes}
	}
}

// PredictByRoute fetches predictions for every stop of a route, given by tag
// or display title, and restores the config-declared stop order, which the
// service does not guarantee. When direction is non-empty, prediction leaves
// tagged with a different direction are excluded.
func (c *Client) PredictByRoute(routeRef, direction string, units UnitMode) ([]RoutePrediction, error) {
	idx, err := c.requireIndex()
	if err != nil {
		return nil, err
	}
	route := resolveRoute(idx, routeRef)
	if route == nil {
		return nil, &UnknownRouteError{Ref: routeRef}
	}

	body, err := c.feed.PredictionsForMultiStops(route.QueryFragment(direction))
	if err != nil {
		return nil, err
	}
	if len(body.Predictions) == 0 {
		return nil, &ParseError{Msg: "predictions response has no predictions elements"}
	}

	out := make([]RoutePrediction, 0, len(body.Predictions))
	for i := range body.Predictions {
		p := &body.Predictions[i]
		var arrivals []Arrival
		for j := range p.Directions {
			d := &p.Directions[j]
			for k := range d.Predictions {
				leaf := &d.Predictions[k]
				if direction != "" && leaf.DirTag != direction {
					continue
				}
				arrivals = append(arrivals, arrivalFromLeaf(leaf, units))
			}
		}
		out = append(out, RoutePrediction{Title: p.StopTitle, Tag: p.StopTag, Predictions: arrivals})
	}

	sorter := route.SorterIndex()
	sort.SliceStable(out, func(i, j int) bool {
		pi, iOK := sorter[out[i].Tag]
		pj, jOK := sorter[out[j].Tag]
		if iOK && jOK {
			return pi < pj
		}
		return iOK && !jOK
	})
	return out, nil
}

// PredictByStop fetches predictions for one stop, given by tag or display
// title, across every route serving it. Results are grouped by direction
// within route; a response group with no direction sub-elements yields a
// single record with a synthesized direction title and nil predictions.
func (c *Client) PredictByStop(stop, direction string, units UnitMode) ([]StopPrediction, error) {
	idx, err := c.requireIndex()
	if err != nil {
		return nil, err
	}
	resolved := resolveStop(idx, stop)
	if !resolved.found() {
		return nil, &UnknownStopError{Ref: stop}
	}
	var fragment string
	if resolved.stop != nil {
		fragment = resolved.stop.QueryFragment(direction)
	} else {
		fragment = resolved.group.QueryFragment(idx, direction)
	}

	body, err := c.feed.PredictionsForMultiStops(fragment)
	if err != nil {
		return nil, err
	}
	if len(body.Predictions) == 0 {
		return nil, &ParseError{Msg: "predictions response has no predictions elements"}
	}

	out := make([]StopPrediction, 0, len(body.Predictions))
	for i := range body.Predictions {
		p := &body.Predictions[i]
		if len(p.Directions) == 0 {
			out = append(out, StopPrediction{
				Direction: p.DirTitleBecauseNoPredictions,
				Title:     p.RouteTitle,
			})
			continue
		}
		for j := range p.Directions {
			d := &p.Directions[j]
			var arrivals []Arrival
			for k := range d.Predictions {
				arrivals = append(arrivals, arrivalFromLeaf(&d.Predictions[k], units))
			}
			out = append(out, StopPrediction{Direction: d.Title, Title: p.RouteTitle, Predictions: arrivals})
		}
	}
	return out, nil
}

// PredictByPairs fetches predictions for arbitrary route/stop combinations.
// Routes and stops resolve by tag or title; a stop title expands to every
// member tag of its group. Pairs whose stop is not on the route are filtered
// silently; pairs that fail resolution entirely are dropped with a warning.
// If nothing resolves the call fails with ErrEmptyQuery before any network
// request.
func (c *Client) PredictByPairs(pairs []Pair, units UnitMode) ([]PairPrediction, error) {
	idx, err := c.requireIndex()
	if err != nil {
		return nil, err
	}

	var fragment strings.Builder
	resolvedCount := 0
	for _, pair := range pairs {
		route := resolveRoute(idx, pair.Route)
		if route == nil {
			slog.Warn("dropping unresolvable pair", "route", pair.Route, "stop", pair.Stop)
			continue
		}
		resolved := resolveStop(idx, pair.Stop)
		if !resolved.found() {
			slog.Warn("dropping unresolvable pair", "route", pair.Route, "stop", pair.Stop)
			continue
		}
		for _, tag := range resolved.tags() {
			if !route.HasStop(tag) {
				continue
			}
			fragment.WriteString(topology.PairFragment(route.Tag, tag))
			resolvedCount++
		}
	}
	if resolvedCount == 0 {
		return nil, ErrEmptyQuery
	}

	body, err := c.feed.PredictionsForMultiStops(fragment.String())
	if err != nil {
		return nil, err
	}
	if len(body.Predictions) == 0 {
		return nil, &ParseError{Msg: "predictions response has no predictions elements"}
	}

	out := make([]PairPrediction, 0, len(body.Predictions))
	for i := range body.Predictions {
		p := &body.Predictions[i]
		if len(p.Directions) == 0 {
			out = append(out, PairPrediction{
				RouteTitle: p.RouteTitle,
				StopTitle:  p.StopTitle,
				Direction:  p.DirTitleBecauseNoPredictions,
			})
			continue
		}
		for j := range p.Directions {
			d := &p.Directions[j]
			var arrivals []Arrival
			for k := range d.Predictions {
				arrivals = append(arrivals, arrivalFromLeaf(&d.Predictions[k], units))
			}
			out = append(out, PairPrediction{
				RouteTitle:  p.RouteTitle,
				StopTitle:   p.StopTitle,
				Direction:   d.Title,
				Predictions: arrivals,
			})
		}
	}
	return out, nil
}
