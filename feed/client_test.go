package feed

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const routeConfigXML = `<?xml version="1.0" encoding="utf-8" ?>
<body copyright="All data copyright agency 2026.">
  <route tag="12" title="12-Example">
    <stop tag="1001" title="Main St &amp; 1st Ave" lat="37.7812" lon="-122.4101" stopId="10010"/>
    <stop tag="1002" title="Main St &amp; 2nd Ave" lat="37.7820" lon="-122.4112" stopId="10020"/>
    <direction tag="12_out" title="Outbound" name="Outbound">
      <stop tag="1001"/>
      <stop tag="1002"/>
    </direction>
  </route>
</body>`

const predictionsXML = `<?xml version="1.0" encoding="utf-8" ?>
<body copyright="All data copyright agency 2026.">
  <predictions agencyTitle="Example Agency" routeTitle="12-Example" routeTag="12" stopTitle="Main St &amp; 1st Ave" stopTag="1001">
    <direction title="Outbound">
      <prediction epochTime="1770000000000" seconds="180" minutes="3" isDeparture="false" dirTag="12_out" vehicle="8001" block="1201" tripTag="t1"/>
      <prediction epochTime="1770000600000" seconds="780" minutes="13" isDeparture="false" dirTag="12_out" vehicle="8002" block="1202" tripTag="t2"/>
    </direction>
  </predictions>
  <predictions agencyTitle="Example Agency" routeTitle="12-Example" routeTag="12" stopTitle="Main St &amp; 2nd Ave" stopTag="1002" dirTitleBecauseNoPredictions="Outbound"/>
</body>`

const vehiclesXML = `<?xml version="1.0" encoding="utf-8" ?>
<body copyright="All data copyright agency 2026.">
  <vehicle id="8001" routeTag="12" dirTag="12_out" lat="37.7815" lon="-122.4105" secsSinceReport="12" predictable="true" heading="87" speedKmHr="23.5"/>
  <lastTime time="1770000000123"/>
</body>`

const errorXML = `<?xml version="1.0" encoding="utf-8" ?>
<body>
  <Error shouldRetry="false">
  Agency parameter "a=nope" is not valid.
  </Error>
</body>`

func TestParseBody_RouteConfig(t *testing.T) {
	body, err := ParseBody([]byte(routeConfigXML))
	if err != nil {
		t.Fatalf("ParseBody failed: %v", err)
	}
	if len(body.Routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(body.Routes))
	}
	r := body.Routes[0]
	if r.Tag != "12" || r.Title != "12-Example" {
		t.Errorf("unexpected route attrs: %+v", r)
	}
	if len(r.Stops) != 2 {
		t.Fatalf("expected 2 stops, got %d", len(r.Stops))
	}
	if r.Stops[0].Lat != 37.7812 || r.Stops[0].StopID != "10010" {
		t.Errorf("unexpected stop attrs: %+v", r.Stops[0])
	}
	if len(r.Directions) != 1 || r.Directions[0].Tag != "12_out" {
		t.Fatalf("expected direction 12_out, got %+v", r.Directions)
	}
	// Direction stop echoes carry no title
	if r.Directions[0].Stops[0].Title != "" {
		t.Errorf("direction stop echo should have empty title")
	}
}

func TestParseBody_Predictions(t *testing.T) {
	body, err := ParseBody([]byte(predictionsXML))
	if err != nil {
		t.Fatalf("ParseBody failed: %v", err)
	}
	if len(body.Predictions) != 2 {
		t.Fatalf("expected 2 predictions elements, got %d", len(body.Predictions))
	}
	first := body.Predictions[0]
	if first.StopTag != "1001" || len(first.Directions) != 1 {
		t.Fatalf("unexpected first group: %+v", first)
	}
	leaf := first.Directions[0].Predictions[0]
	if leaf.Minutes != "3" || leaf.Seconds != "180" || leaf.DirTag != "12_out" {
		t.Errorf("unexpected leaf: %+v", leaf)
	}
	second := body.Predictions[1]
	if len(second.Directions) != 0 {
		t.Errorf("empty group should have no direction elements")
	}
	if second.DirTitleBecauseNoPredictions != "Outbound" {
		t.Errorf("expected synthesized direction title, got %q", second.DirTitleBecauseNoPredictions)
	}
}

func TestParseBody_Vehicles(t *testing.T) {
	body, err := ParseBody([]byte(vehiclesXML))
	if err != nil {
		t.Fatalf("ParseBody failed: %v", err)
	}
	if len(body.Vehicles) != 1 {
		t.Fatalf("expected 1 vehicle, got %d", len(body.Vehicles))
	}
	v := body.Vehicles[0]
	if v.ID != "8001" || !v.Predictable || v.Heading != 87 || v.SpeedKmHr != 23.5 {
		t.Errorf("unexpected vehicle: %+v", v)
	}
	if body.LastTime == nil || body.LastTime.Time != "1770000000123" {
		t.Errorf("unexpected lastTime: %+v", body.LastTime)
	}
}

func TestParseBody_EmbeddedError(t *testing.T) {
	_, err := ParseBody([]byte(errorXML))
	if err == nil {
		t.Fatal("embedded Error element should fail the parse")
	}
	if !strings.Contains(err.Error(), "not valid") {
		t.Errorf("error should carry the upstream message, got: %v", err)
	}
}

func TestClient_RouteConfigRequest(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(routeConfigXML))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "example", 5*time.Second)
	body, err := c.RouteConfig(true)
	if err != nil {
		t.Fatalf("RouteConfig failed: %v", err)
	}
	if len(body.Routes) != 1 {
		t.Errorf("expected 1 route, got %d", len(body.Routes))
	}
	for _, want := range []string{"command=routeConfig", "a=example", "terse=true"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}
}

func TestClient_PredictionsFragmentAppended(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(predictionsXML))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "example", 5*time.Second)
	if _, err := c.PredictionsForMultiStops("&stops=12|1001&stops=12|1002"); err != nil {
		t.Fatalf("PredictionsForMultiStops failed: %v", err)
	}
	if !strings.Contains(gotQuery, "stops=12|1001") || !strings.Contains(gotQuery, "stops=12|1002") {
		t.Errorf("stops fragment not forwarded, query: %q", gotQuery)
	}
}

func TestClient_VehicleLocationsParams(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(vehiclesXML))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "example", 5*time.Second)
	if _, err := c.VehicleLocations("12", ""); err != nil {
		t.Fatalf("VehicleLocations failed: %v", err)
	}
	for _, want := range []string{"command=vehicleLocations", "r=12", "t=0"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}
}

func TestClient_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "example", 5*time.Second)
	if _, err := c.RouteConfig(true); err == nil {
		t.Fatal("non-200 status should fail")
	}
}
