package topology

import "strings"

// Query fragments are the "&stops=route|stopTag" sequences consumed by the
// predictionsForMultiStops command. They are deterministic for a given
// (owner, direction) pair and memoized on the owning record; the empty
// direction is a cache key of its own. Each record's mutex guards its lazy
// fields so concurrent predictors never race on a map write; memoization
// stays correct because a rebuild replaces the whole index, never
// individual records.

func stopsPair(routeTag, direction, stopTag string) string {
	if direction != "" {
		return "&stops=" + routeTag + "|" + direction + "|" + stopTag
	}
	return "&stops=" + routeTag + "|" + stopTag
}

// QueryFragment serializes every stop of the route, in config order.
func (r *Route) QueryFragment(direction string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if q, ok := r.Queries[direction]; ok {
		return q
	}
	var b strings.Builder
	for _, tag := range r.Stops {
		b.WriteString(stopsPair(r.Tag, direction, tag))
	}
	q := b.String()
	if r.Queries == nil {
		r.Queries = map[string]string{}
	}
	r.Queries[direction] = q
	return q
}

// QueryFragment serializes one pair per route serving the stop.
func (s *Stop) QueryFragment(direction string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if q, ok := s.Queries[direction]; ok {
		return q
	}
	var b strings.Builder
	for _, routeTag := range s.Routes {
		b.WriteString(stopsPair(routeTag, direction, s.Tag))
	}
	q := b.String()
	if s.Queries == nil {
		s.Queries = map[string]string{}
	}
	s.Queries[direction] = q
	return q
}

// QueryFragment serializes every member stop of the group against each of
// its routes. The index resolves member tags to their route lists.
func (g *TitleGroup) QueryFragment(x *Index, direction string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if q, ok := g.Queries[direction]; ok {
		return q
	}
	var b strings.Builder
	for _, tag := range g.Tags {
		if stop := x.Stops[tag]; stop != nil {
			b.WriteString(stop.QueryFragment(direction))
		}
	}
	q := b.String()
	if g.Queries == nil {
		g.Queries = map[string]string{}
	}
	g.Queries[direction] = q
	return q
}

// PairFragment serializes a single route/stop pair for ad hoc batches that
// have no owning record to memoize on.
func PairFragment(routeTag, stopTag string) string {
	return stopsPair(routeTag, "", stopTag)
}

// SorterIndex returns the stop tag -> config position map used to restore
// caller-declared order after a response walk. Built on first use under the
// record mutex and read-only thereafter, so returned maps are safe to share
// across goroutines.
func (r *Route) SorterIndex() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Sorter == nil {
		sorter := make(map[string]int, len(r.Stops))
		for i, tag := range r.Stops {
			sorter[tag] = i
		}
		r.Sorter = sorter
	}
	return r.Sorter
}

// HasStop reports whether the route's config-order stop sequence contains
// the tag.
func (r *Route) HasStop(tag string) bool {
	_, ok := r.SorterIndex()[tag]
	return ok
}
