package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/odin"
)

// Ensure LoggingExtractor implements odin.Extractor.
var _ odin.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging of catalog sizes.
type LoggingExtractor struct {
	next   odin.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next odin.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the result.
func (e *LoggingExtractor) Extract(html string) (catalog *odin.Catalog, err error) {
	defer func(begin time.Time) {
		if err != nil {
			e.logger.Error("extract", "bytes", len(html), "duration", time.Since(begin), "err", err)
			return
		}
		if catalog == nil {
			e.logger.Warn("extract", "bytes", len(html), "duration", time.Since(begin), "brands", 0, "result", "no data")
			return
		}
		e.logger.Info("extract",
			"bytes", len(html),
			"brands", catalog.BrandCount(),
			"models", catalog.ModelCount(),
			"duration", time.Since(begin),
		)
	}(time.Now())

	return e.next.Extract(html)
}
