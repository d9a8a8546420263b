// Package log provides the slog handler used for console output.
//
// Log lines follow the "[rustavail][LEVEL] message key=value" shape so
// runs driven from cron or CI produce compact, grep-friendly output on
// stderr. The handler is a thin slog.Handler implementation; everything
// else in the tool logs through standard *slog.Logger values.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
package log
