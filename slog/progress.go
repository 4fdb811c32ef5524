package slog

import (
	"log/slog"

	"github.com/fwojciec/newswire/scrape"
)

// NewRunLogger returns a scrape.ProgressFunc that logs run progress.
// Stage transitions are logged at debug level, outcomes at info or error.
func NewRunLogger(logger *slog.Logger) scrape.ProgressFunc {
	return func(event scrape.ProgressEvent) {
		switch event.Type {
		case scrape.ProgressRunStarted:
			logger.Info("run started", "sources", event.Total)
		case scrape.ProgressStage:
			logger.Debug("stage", "source", event.SourceName, "stage", string(event.Stage))
		case scrape.ProgressSelectorFallback:
			logger.Warn("selector matched nothing, using full body", "source", event.SourceName)
		case scrape.ProgressSourceCompleted:
			logger.Info("source completed",
				"source", event.SourceName,
				"extracted", event.Report.Extracted,
				"rejected", event.Report.Rejected,
				"duplicate", event.Report.Duplicate,
				"persisted", event.Report.Persisted,
			)
		case scrape.ProgressSourceFailed:
			logger.Error("source failed",
				"source", event.SourceName,
				"stage", string(event.Stage),
				"err", event.Error,
			)
		case scrape.ProgressRunFinished:
			logger.Info("run finished", "sources", event.Total)
		}
	}
}
