package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/newswire"
)

// Ensure LoggingExtractor implements newswire.Extractor.
var _ newswire.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with structured logging of each call.
type LoggingExtractor struct {
	next   newswire.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next newswire.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs candidate counts.
func (e *LoggingExtractor) Extract(ctx context.Context, html, sourceName string) (*newswire.ExtractResult, error) {
	begin := time.Now()
	result, err := e.next.Extract(ctx, html, sourceName)
	if err != nil {
		e.logger.Error("extract",
			"source", sourceName,
			"input_bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}
	e.logger.Info("extract",
		"source", sourceName,
		"input_bytes", len(html),
		"candidates", len(result.Candidates),
		"incomplete", result.Incomplete,
		"duration", time.Since(begin),
	)
	return result, nil
}
