package model

// BottleneckThreshold is the error percentage above which a resource
// category is considered a critical bottleneck.
const BottleneckThreshold = 30.0

// runs is the embedded load-test dataset, extracted from the JMeter CSV
// results of the three test runs against the products API.
var runs = [...]TestRun{
	{
		ID:            "Teste 1 (10 usuários)",
		ShortLabel:    "Teste 1 (10u)",
		EndpointTitle: "Teste 1: 10 Usuários",
		Users:         10,
		Requests:      200,
		MeanLatencyMs: 1,
		MaxLatencyMs:  69,
		ErrorPercent:  0.00,
		Throughput:    7.42,
		Endpoints: []Endpoint{
			{Name: "GET /products", MeanLatencyMs: 1, ErrorPercent: 0.0},
			{Name: "GET /status", MeanLatencyMs: 0, ErrorPercent: 0.0},
		},
	},
	{
		ID:            "Teste 2 (500 usuários)",
		ShortLabel:    "Teste 2 (500u)",
		EndpointTitle: "Teste 2: 500 Usuários",
		Users:         500,
		Requests:      5000,
		MeanLatencyMs: 12292,
		MaxLatencyMs:  44594,
		ErrorPercent:  25.52,
		Throughput:    18.69,
		Endpoints: []Endpoint{
			{Name: "GET /products", MeanLatencyMs: 15275, ErrorPercent: 19.20},
			{Name: "GET /heavy-cpu", MeanLatencyMs: 9310, ErrorPercent: 31.84},
		},
	},
	{
		ID:            "Teste 3 (1000 usuários)",
		ShortLabel:    "Teste 3 (1000u)",
		EndpointTitle: "Teste 3: 1000 Usuários (Rajada)",
		Users:         1000,
		Requests:      3000,
		MeanLatencyMs: 2968,
		MaxLatencyMs:  12722,
		ErrorPercent:  39.27,
		Throughput:    122.26,
		Endpoints: []Endpoint{
			{Name: "GET /products", MeanLatencyMs: 4186, ErrorPercent: 39.30},
			{Name: "GET /many-items", MeanLatencyMs: 1300, ErrorPercent: 39.30},
			{Name: "GET /heavy-io", MeanLatencyMs: 3417, ErrorPercent: 39.20},
		},
	},
}

// bottlenecks attributes each resource category to the endpoint that
// exercises it. Declaration order is the order the categories were
// identified in the analysis, not their rank.
var bottlenecks = [...]Bottleneck{
	{Category: "CPU", Endpoint: "heavy-cpu", RunIndex: 1, ErrorPercent: 31.84, Color: "#FF0000"},
	{Category: "Banco de Dados", Endpoint: "/products", RunIndex: 1, ErrorPercent: 19.20, Color: "#FFA500"},
	{Category: "I/O", Endpoint: "heavy-io", RunIndex: 2, ErrorPercent: 39.20, Color: "#8B0000"},
	{Category: "Transferência", Endpoint: "many-items", RunIndex: 2, ErrorPercent: 39.30, Color: "#8B0000"},
}

// Runs returns a copy of the three embedded test runs, in execution order.
func Runs() []TestRun {
	out := make([]TestRun, len(runs))
	for i, r := range runs {
		out[i] = r.clone()
	}
	return out
}

// Bottlenecks returns a copy of the resource categories in declaration order.
func Bottlenecks() []Bottleneck {
	out := make([]Bottleneck, len(bottlenecks))
	copy(out, bottlenecks[:])
	return out
}
