package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() so callers can use
// errors.Is() to tell them apart.
var (
	// ErrEmptyOutputDir is returned when no output directory is configured.
	ErrEmptyOutputDir = errors.New("invalid output directory: must not be empty")

	// ErrInvalidDPI is returned when the resolution is outside 1..MaxDPI.
	ErrInvalidDPI = errors.New("invalid dpi: must be between 1 and 1200")

	// ErrInvalidLanguage is returned when the report language is not a
	// valid BCP 47 tag.
	ErrInvalidLanguage = errors.New("invalid report language: must be a BCP 47 tag such as pt-BR")

	// ErrEmptyDBDir is returned when history is enabled without a database
	// directory.
	ErrEmptyDBDir = errors.New("invalid database directory: must not be empty when history is enabled")
)
