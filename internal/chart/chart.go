package chart

import "github.com/nao1215/loadgraph/internal/model"

// captions maps figure names to the short names used in progress output.
var captions = map[string]string{
	OverallName:     "Comparativo Geral",
	ScalabilityName: "Escalabilidade",
	EndpointsName:   "Performance por Endpoint",
	BottleneckName:  "Identificação de Gargalos",
}

// All builds every figure of the report, in generation order.
func All(runs []model.TestRun, bs []model.Bottleneck) []model.Figure {
	return []model.Figure{
		Overall(runs),
		Scalability(runs),
		Endpoints(runs),
		Bottleneck(bs),
	}
}

// Caption returns the short display name of the named figure.
// Unknown names are returned unchanged.
func Caption(name string) string {
	if c, ok := captions[name]; ok {
		return c
	}
	return name
}
