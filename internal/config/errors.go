package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrInvalidConcurrency is returned when the number of concurrent readers is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown are set.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrChartRequiresMarkdown is returned when --chart is set without --markdown.
	ErrChartRequiresMarkdown = errors.New("--chart requires --markdown")

	// ErrInvalidSnapshotID is returned for a negative snapshot ID.
	ErrInvalidSnapshotID = errors.New("invalid snapshot id: must be positive")

	// ErrSaveFromDB is returned when a snapshot loaded from the store would be saved again.
	ErrSaveFromDB = errors.New("--save cannot be combined with --from-db")
)
