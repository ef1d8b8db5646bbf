// Package logging builds the loggers used by the callexpr tools.
package logging

import (
	"github.com/jcgregorio/logger"
	"github.com/jcgregorio/slog"
)

// New returns a logger that writes to dst. Debug messages are only written
// when verbose is true.
func New(dst logger.SyncWriter, verbose bool) slog.Logger {
	return logger.NewFromOptions(&logger.Options{
		SyncWriter:   dst,
		IncludeDebug: verbose,
	})
}

// Nop returns a logger that discards everything.
func Nop() slog.Logger {
	return logger.NewNopLogger()
}
