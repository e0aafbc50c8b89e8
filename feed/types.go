package feed

import "encoding/xml"

// Body is the top-level element of every public XML feed response.
type Body struct {
	XMLName     xml.Name      `xml:"body"`
	Error       *FeedError    `xml:"Error"`
	Routes      []Route       `xml:"route"`
	Predictions []Predictions `xml:"predictions"`
	Vehicles    []Vehicle     `xml:"vehicle"`
	LastTime    *LastTime     `xml:"lastTime"`
}

// FeedError is the error element the upstream service embeds in an
// otherwise-200 response body.
type FeedError struct {
	ShouldRetry bool   `xml:"shouldRetry,attr"`
	Text        string `xml:",chardata"`
}

// Route is a route element from a routeConfig response.
type Route struct {
	Tag        string      `xml:"tag,attr"`
	Title      string      `xml:"title,attr"`
	Stops      []Stop      `xml:"stop"`
	Directions []Direction `xml:"direction"`
}

// Stop is a stop element from a routeConfig response. Stops echoed inside
// direction elements carry only a tag attribute.
type Stop struct {
	Tag    string  `xml:"tag,attr"`
	Title  string  `xml:"title,attr"`
	Lat    float64 `xml:"lat,attr"`
	Lon    float64 `xml:"lon,attr"`
	StopID string  `xml:"stopId,attr"`
}

// Direction is a direction element from a routeConfig response.
type Direction struct {
	Tag   string `xml:"tag,attr"`
	Title string `xml:"title,attr"`
	Stops []Stop `xml:"stop"`
}

// Predictions is a predictions container element from a
// predictionsForMultiStops response, one per queried route/stop pair.
type Predictions struct {
	AgencyTitle string `xml:"agencyTitle,attr"`
	RouteTitle  string `xml:"routeTitle,attr"`
	RouteTag    string `xml:"routeTag,attr"`
	StopTitle   string `xml:"stopTitle,attr"`
	StopTag     string `xml:"stopTag,attr"`
	// Set by the service instead of direction sub-elements when the
	// route/stop pair has no scheduled arrivals.
	DirTitleBecauseNoPredictions string `xml:"dirTitleBecauseNoPredictions,attr"`

	Directions []PredictionDirection `xml:"direction"`
}

// PredictionDirection groups prediction leaves under one direction title.
type PredictionDirection struct {
	Title       string       `xml:"title,attr"`
	Predictions []Prediction `xml:"prediction"`
}

// Prediction is a single arrival prediction leaf. Minutes and seconds are
// kept as the raw attribute strings the service returned.
type Prediction struct {
	Minutes           string `xml:"minutes,attr"`
	Seconds           string `xml:"seconds,attr"`
	EpochTime         string `xml:"epochTime,attr"`
	DirTag            string `xml:"dirTag,attr"`
	Vehicle           string `xml:"vehicle,attr"`
	Block             string `xml:"block,attr"`
	TripTag           string `xml:"tripTag,attr"`
	IsDeparture       bool   `xml:"isDeparture,attr"`
	AffectedByLayover bool   `xml:"affectedByLayover,attr"`
}

// Vehicle is a vehicle element from a vehicleLocations response.
type Vehicle struct {
	ID              string  `xml:"id,attr"`
	RouteTag        string  `xml:"routeTag,attr"`
	DirTag          string  `xml:"dirTag,attr"`
	Lat             float64 `xml:"lat,attr"`
	Lon             float64 `xml:"lon,attr"`
	SecsSinceReport int     `xml:"secsSinceReport,attr"`
	Predictable     bool    `xml:"predictable,attr"`
	Heading         int     `xml:"heading,attr"`
	SpeedKmHr       float64 `xml:"speedKmHr,attr"`
}

// LastTime carries the epoch milliseconds of the most recent vehicle report.
type LastTime struct {
	Time string `xml:"time,attr"`
}
