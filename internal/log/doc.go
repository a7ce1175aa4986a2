// Package log builds the slog logger used across loadgraph.
//
// Log records go through a PathHandler before reaching the text or JSON
// handler. It rewrites file system paths under the user's home directory to
// start with "~", so logs can be attached to bug reports without exposing
// the account name, and it masks attributes whose keys name credentials
// (for example a DSN password passed through from the environment).
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, log.Options{Verbose: true})
//	logger.Info("figure written", "path", "/home/alice/graficos/01-comparativo-geral.png")
//	// path=~/graficos/01-comparativo-geral.png
package log
