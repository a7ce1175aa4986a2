package model

import "testing"

// TestRuns verifies the embedded dataset literals.
func TestRuns(t *testing.T) {
	t.Parallel()

	runs := Runs()
	if len(runs) != 3 {
		t.Fatalf("expected exactly 3 runs, got %d", len(runs))
	}

	testCases := []struct {
		id         string
		users      int
		requests   int
		meanMs     int
		maxMs      int
		errPct     float64
		throughput float64
		endpoints  int
	}{
		{"Teste 1 (10 usuários)", 10, 200, 1, 69, 0.00, 7.42, 2},
		{"Teste 2 (500 usuários)", 500, 5000, 12292, 44594, 25.52, 18.69, 2},
		{"Teste 3 (1000 usuários)", 1000, 3000, 2968, 12722, 39.27, 122.26, 3},
	}

	for i, tc := range testCases {
		tc := tc
		r := runs[i]
		t.Run(tc.id, func(t *testing.T) {
			t.Parallel()
			if r.ID != tc.id {
				t.Errorf("expected ID %q, got %q", tc.id, r.ID)
			}
			if r.Users != tc.users {
				t.Errorf("expected %d users, got %d", tc.users, r.Users)
			}
			if r.Requests != tc.requests {
				t.Errorf("expected %d requests, got %d", tc.requests, r.Requests)
			}
			if r.MeanLatencyMs != tc.meanMs {
				t.Errorf("expected mean %dms, got %dms", tc.meanMs, r.MeanLatencyMs)
			}
			if r.MaxLatencyMs != tc.maxMs {
				t.Errorf("expected max %dms, got %dms", tc.maxMs, r.MaxLatencyMs)
			}
			if r.ErrorPercent != tc.errPct {
				t.Errorf("expected error %.2f, got %.2f", tc.errPct, r.ErrorPercent)
			}
			if r.Throughput != tc.throughput {
				t.Errorf("expected throughput %.2f, got %.2f", tc.throughput, r.Throughput)
			}
			if len(r.Endpoints) != tc.endpoints {
				t.Errorf("expected %d endpoints, got %d", tc.endpoints, len(r.Endpoints))
			}
		})
	}
}

// TestRunsEndpointBounds checks every run has between 1 and 3 endpoints.
func TestRunsEndpointBounds(t *testing.T) {
	t.Parallel()

	for _, r := range Runs() {
		if n := len(r.Endpoints); n < 1 || n > 3 {
			t.Errorf("%s: expected 1-3 endpoints, got %d", r.ID, n)
		}
	}
}

// TestRunsReturnsCopies ensures callers cannot mutate the embedded dataset.
func TestRunsReturnsCopies(t *testing.T) {
	t.Parallel()

	first := Runs()
	first[1].ErrorPercent = 99
	first[1].Endpoints[0].MeanLatencyMs = -1

	second := Runs()
	if second[1].ErrorPercent != 25.52 {
		t.Errorf("dataset was mutated: error percent is %.2f", second[1].ErrorPercent)
	}
	if second[1].Endpoints[0].MeanLatencyMs != 15275 {
		t.Errorf("dataset was mutated: endpoint latency is %d", second[1].Endpoints[0].MeanLatencyMs)
	}
}

// TestTestRunEndpoints tests the per-endpoint breakdown helpers.
func TestTestRunEndpoints(t *testing.T) {
	t.Parallel()

	r := Runs()[2]

	heavy := r.Endpoints[2]
	if heavy.MeanLatencyMs != 3417 || heavy.ErrorPercent != 39.20 {
		t.Errorf("unexpected GET /heavy-io values: %+v", heavy)
	}

	names := r.EndpointNames()
	want := []string{"GET /products", "GET /many-items", "GET /heavy-io"}
	if len(names) != len(want) {
		t.Fatalf("expected %d names, got %d", len(want), len(names))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("name %d: expected %q, got %q", i, want[i], names[i])
		}
	}

	if !r.HasMultipleEndpoints() {
		t.Error("expected run 3 to have multiple endpoints")
	}
}

// TestBottlenecksMatchDataset verifies every bottleneck literal matches the
// endpoint error rate it is attributed to.
func TestBottlenecksMatchDataset(t *testing.T) {
	t.Parallel()

	runs := Runs()
	for _, b := range Bottlenecks() {
		b := b
		t.Run(b.Category, func(t *testing.T) {
			t.Parallel()
			if b.RunIndex < 0 || b.RunIndex >= len(runs) {
				t.Fatalf("run index %d out of range", b.RunIndex)
			}
			found := false
			for _, e := range runs[b.RunIndex].Endpoints {
				if e.ErrorPercent == b.ErrorPercent {
					found = true
				}
			}
			if !found {
				t.Errorf("no endpoint in %s has error %.2f", runs[b.RunIndex].ID, b.ErrorPercent)
			}
		})
	}
}
