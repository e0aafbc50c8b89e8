package nextbusclient

import (
	"github.com/theoremus-urban-solutions/nextbus-client/topology"
)

// resolvedStop is the outcome of a tag-or-title stop lookup: exactly one of
// stop or group is set on success, neither on a miss. All predictors consume
// this shape instead of branching on tag/title themselves.
type resolvedStop struct {
	stop  *topology.Stop
	group *topology.TitleGroup
}

func (r resolvedStop) found() bool { return r.stop != nil || r.group != nil }

// tags returns the physical stop tags the resolution expands to.
func (r resolvedStop) tags() []string {
	if r.stop != nil {
		return []string{r.stop.Tag}
	}
	if r.group != nil {
		return r.group.Tags
	}
	return nil
}

// resolveStop looks a stop up by tag first, then by display title.
func resolveStop(idx *topology.Index, ref string) resolvedStop {
	if stop := idx.GetStop(ref); stop != nil {
		return resolvedStop{stop: stop}
	}
	if group := idx.GetTitleGroup(ref); group != nil {
		return resolvedStop{group: group}
	}
	return resolvedStop{}
}

// resolveRoute looks a route up by tag first, then by display title.
func resolveRoute(idx *topology.Index, ref string) *topology.Route {
	if route := idx.GetRoute(ref); route != nil {
		return route
	}
	return idx.GetRouteByTitle(ref)
}
