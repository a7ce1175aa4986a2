package metrics

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/nao1215/loadgraph/internal/model"
)

// FileName is the textfile written inside the output directory.
const FileName = "loadtest.prom"

const namespace = "loadtest"

// Exporter holds the gauges of one dataset on a dedicated registry, so
// repeated exports never collide with the process-wide default registry.
type Exporter struct {
	registry *prometheus.Registry

	users         *prometheus.GaugeVec
	requests      *prometheus.GaugeVec
	meanLatency   *prometheus.GaugeVec
	maxLatency    *prometheus.GaugeVec
	errorPercent  *prometheus.GaugeVec
	throughput    *prometheus.GaugeVec
	endpointMean  *prometheus.GaugeVec
	endpointError *prometheus.GaugeVec
	bottleneck    *prometheus.GaugeVec
	threshold     prometheus.Gauge
}

// NewExporter creates an Exporter with all gauges registered and unset.
func NewExporter() *Exporter {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	runLabels := []string{"run", "users"}

	return &Exporter{
		registry: reg,
		users: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "concurrent_users",
			Help:      "Concurrent virtual users of the run.",
		}, runLabels),
		requests: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total requests issued during the run.",
		}, runLabels),
		meanLatency: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "response_time_mean_milliseconds",
			Help:      "Mean response time of the run.",
		}, runLabels),
		maxLatency: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "response_time_max_milliseconds",
			Help:      "Maximum response time of the run.",
		}, runLabels),
		errorPercent: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "error_percent",
			Help:      "Share of failed requests of the run (0-100).",
		}, runLabels),
		throughput: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "throughput_requests_per_second",
			Help:      "Requests processed per second during the run.",
		}, runLabels),
		endpointMean: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "endpoint",
			Name:      "response_time_mean_milliseconds",
			Help:      "Mean response time of one endpoint within a run.",
		}, []string{"run", "endpoint"}),
		endpointError: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "endpoint",
			Name:      "error_percent",
			Help:      "Share of failed requests of one endpoint within a run (0-100).",
		}, []string{"run", "endpoint"}),
		bottleneck: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "bottleneck",
			Name:      "error_percent",
			Help:      "Error rate attributed to a resource category.",
		}, []string{"category", "endpoint"}),
		threshold: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "bottleneck",
			Name:      "threshold_percent",
			Help:      "Error rate above which a resource category is critical.",
		}),
	}
}

// Registry returns the registry the gauges are registered on.
func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}

// Observe sets the gauges from runs and bottleneck categories.
func (e *Exporter) Observe(runs []model.TestRun, bs []model.Bottleneck, threshold float64) {
	for _, r := range runs {
		labels := prometheus.Labels{"run": r.ShortLabel, "users": strconv.Itoa(r.Users)}
		e.users.With(labels).Set(float64(r.Users))
		e.requests.With(labels).Set(float64(r.Requests))
		e.meanLatency.With(labels).Set(float64(r.MeanLatencyMs))
		e.maxLatency.With(labels).Set(float64(r.MaxLatencyMs))
		e.errorPercent.With(labels).Set(r.ErrorPercent)
		e.throughput.With(labels).Set(r.Throughput)

		for _, ep := range r.Endpoints {
			e.endpointMean.WithLabelValues(r.ShortLabel, ep.Name).Set(float64(ep.MeanLatencyMs))
			e.endpointError.WithLabelValues(r.ShortLabel, ep.Name).Set(ep.ErrorPercent)
		}
	}

	for _, b := range bs {
		e.bottleneck.WithLabelValues(b.Category, b.Endpoint).Set(b.ErrorPercent)
	}
	e.threshold.Set(threshold)
}

// WriteFile writes the gauges to dir/FileName and returns the artifact.
// prometheus.WriteToTextfile writes to a temporary file and renames it, so
// a collector never reads a partial file.
func (e *Exporter) WriteFile(dir string) (model.Artifact, error) {
	path := filepath.Join(dir, FileName)
	if err := prometheus.WriteToTextfile(path, e.registry); err != nil {
		return model.Artifact{}, fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return model.ArtifactFromFile("metrics", path)
}
