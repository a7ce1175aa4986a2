package model

// Endpoint holds the per-endpoint figures measured within a TestRun.
type Endpoint struct {
	// Name is the HTTP operation under test, e.g. "GET /products".
	Name string `json:"name"`

	// MeanLatencyMs is the mean response time of this endpoint in milliseconds.
	MeanLatencyMs int `json:"mean_latency_ms"`

	// ErrorPercent is the share of failed requests for this endpoint (0-100).
	ErrorPercent float64 `json:"error_percent"`
}

// TestRun is one load-test execution record with fixed metrics.
//
// The endpoint breakdown is kept as an ordered slice rather than a map so
// every consumer (charts, table, markdown) sees endpoints in the order the
// test plan declared them.
type TestRun struct {
	// ID is the display label of the run, e.g. "Teste 2 (500 usuários)".
	ID string `json:"id"`

	// ShortLabel is the column header used in the summary table, e.g. "Teste 2 (500u)".
	ShortLabel string `json:"short_label"`

	// EndpointTitle is the panel title used by the per-endpoint chart.
	EndpointTitle string `json:"endpoint_title"`

	// Users is the number of concurrent virtual users.
	Users int `json:"users"`

	// Requests is the total number of requests issued during the run.
	Requests int `json:"requests"`

	// MeanLatencyMs is the mean response time in milliseconds.
	MeanLatencyMs int `json:"mean_latency_ms"`

	// MaxLatencyMs is the maximum response time in milliseconds.
	MaxLatencyMs int `json:"max_latency_ms"`

	// ErrorPercent is the share of failed requests (0-100).
	ErrorPercent float64 `json:"error_percent"`

	// Throughput is the number of requests processed per second.
	Throughput float64 `json:"throughput"`

	// Endpoints is the per-endpoint breakdown, 1 to 3 entries.
	Endpoints []Endpoint `json:"endpoints"`
}

// EndpointNames returns the endpoint names in declaration order.
func (r TestRun) EndpointNames() []string {
	names := make([]string, len(r.Endpoints))
	for i, e := range r.Endpoints {
		names[i] = e.Name
	}
	return names
}

// HasMultipleEndpoints reports whether the run measured more than one endpoint.
func (r TestRun) HasMultipleEndpoints() bool {
	return len(r.Endpoints) > 1
}

// clone returns a deep copy of the run.
func (r TestRun) clone() TestRun {
	c := r
	c.Endpoints = append([]Endpoint(nil), r.Endpoints...)
	return c
}
