// Package database provides SQLite-based storage of generation history.
//
// Every generation run with --history stores its manifest: when it ran,
// which version produced it, the figure metadata digest and the written
// files. Comparing the digests of consecutive generations shows whether the
// chart metadata stayed reproducible between runs and builds.
//
// The database is a single file opened through modernc.org/sqlite, a CGO-free
// driver, in WAL mode.
package database
