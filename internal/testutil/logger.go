package testutil

import "log/slog"

// DiscardLogger returns a logger that drops every record. Tests pass it
// to components that require a *slog.Logger but whose output is noise.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
