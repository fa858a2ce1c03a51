// Package slog provides logging decorators for webtab interfaces using the
// standard library's log/slog.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webtab"
)

// Ensure LoggingExtractor implements webtab.Extractor at compile time.
var _ webtab.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with request/response logging.
type LoggingExtractor struct {
	next   webtab.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next webtab.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(ctx context.Context, urls []string, params webtab.ExtractParams) (*webtab.ExtractResult, error) {
	begin := time.Now()
	result, err := e.next.Extract(ctx, urls, params)
	if err != nil {
		e.logger.Error("extract",
			"urls", len(urls),
			"schema", params.Schema != nil,
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}
	e.logger.Info("extract",
		"urls", len(urls),
		"schema", params.Schema != nil,
		"status", result.Status,
		"bytes", len(result.Raw),
		"duration", time.Since(begin),
	)
	return result, nil
}
