// Package slog provides logging decorators for odin services using log/slog.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/odin"
)

// Ensure LoggingSource implements odin.Source.
var _ odin.Source = (*LoggingSource)(nil)

// LoggingSource wraps a Source with logging of each load.
type LoggingSource struct {
	next   odin.Source
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next odin.Source, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// Load delegates to the wrapped source and logs the outcome. A missing
// source is logged at debug level since the loader falls through it.
func (s *LoggingSource) Load(ctx context.Context) (html string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"origin", s.next.Origin(),
			"bytes", len(html),
			"duration", time.Since(begin),
		}
		switch {
		case err == nil:
			s.logger.Info("load", attrs...)
		case odin.ErrorCode(err) == odin.ENOTFOUND:
			s.logger.Debug("load", append(attrs, "err", odin.ErrorMessage(err))...)
		default:
			s.logger.Error("load", append(attrs, "err", err)...)
		}
	}(time.Now())

	return s.next.Load(ctx)
}

// Origin delegates to the wrapped source.
func (s *LoggingSource) Origin() string {
	return s.next.Origin()
}
