// Package config provides the configuration of a loadgraph run: where the
// charts are written, the image resolution, which optional outputs are
// produced and how logs are emitted. Values come from built-in defaults, an
// optional YAML file and CLI flags, in increasing order of precedence.
package config
