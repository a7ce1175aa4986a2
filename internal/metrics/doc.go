// Package metrics exports the embedded load-test dataset as Prometheus
// gauges and writes them in the text exposition format, for collection by
// the node_exporter textfile collector.
package metrics
