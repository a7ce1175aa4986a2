// Package pipeline runs the steps of one chart generation in sequence.
//
// A generation creates the output directory, renders the four figures,
// prints the summary table and then writes the optional outputs (Markdown
// report, Prometheus textfile), the JSON manifest and the history record.
// Each stage is a Step that receives the shared *model.Generation and adds
// to it. Execute stops at the first failing step and checks the context
// between steps.
package pipeline
