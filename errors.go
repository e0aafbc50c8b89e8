package nextbusclient

import "errors"

// ErrNoCache is returned by every predictor, listing, and nearest-stop
// operation attempted before a successful BuildCache or ImportCache. No
// network request is issued in that case.
var ErrNoCache = errors.New("no topology cache: call BuildCache or ImportCache first")

// ErrEmptyQuery is returned by PredictByPairs when no caller-supplied pair
// resolves to a valid route/stop combination. It is raised before any
// network call.
var ErrEmptyQuery = errors.New("no route/stop pair resolved to a valid query")

// UnknownRouteError reports a route lookup miss by tag or title.
type UnknownRouteError struct {
	Ref string
}

func (e *UnknownRouteError) Error() string { return "no such route: " + e.Ref }

// UnknownStopError reports a stop lookup miss by tag or title.
type UnknownStopError struct {
	Ref string
}

func (e *UnknownStopError) Error() string { return "no such stop: " + e.Ref }

// ParseError reports a response document missing its expected top-level
// elements. This is treated as corrupt input, not as "no data".
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string { return "malformed feed response: " + e.Msg }
