// Package logger configures the process-wide slog logger for servicehub.
//
// Output is JSON on stderr. Setup maps the configured level name onto a
// slog.Level and installs the result with slog.SetDefault so packages that
// log through slog.Default pick it up.
package logger
