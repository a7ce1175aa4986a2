// Package main provides the entry point for the loadgraph CLI.
//
// loadgraph turns the results of three load-test runs into comparative
// charts: an overall comparison, a scalability view, a per-endpoint view and
// a bottleneck ranking, plus a summary table on standard output.
//
// Usage:
//
//	loadgraph
//	loadgraph -o relatorios --markdown --metrics
//	loadgraph table
//
// See --help for all available options.
package main

// main is the entry point for loadgraph.
func main() {
	Execute()
}
