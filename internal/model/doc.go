// Package model defines the data structures shared across loadgraph.
//
// This package contains the following main types:
//   - TestRun: One load-test execution record with its fixed metrics
//   - Bottleneck: A resource category attributed to an endpoint's error rate
//   - Figure: Renderer-independent description of a chart image
//   - Manifest: The record of one generation (files, sizes, digests)
//
// The load-test dataset itself is a set of literals compiled into the binary
// (see Runs and Bottlenecks). Accessors return copies so no caller can mutate
// the records after startup.
//
// Figure and Manifest are serializable to JSON for the manifest file and the
// history database.
package model
