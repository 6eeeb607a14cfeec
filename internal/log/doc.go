// Package log builds the slog loggers used by taskseries.
//
// Task names and raw log lines come straight from input files, so every
// string attribute passes through SanitizingHandler before it reaches the
// output. Control characters (terminal escapes, carriage returns, stray
// newlines) are rendered as Go escape sequences and overlong values are
// truncated, which keeps one record on one line.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//	logger.Warn("could not parse line", "line", line)
package log
