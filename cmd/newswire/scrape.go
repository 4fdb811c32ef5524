package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/newswire"
	"github.com/fwojciec/newswire/scrape"
)

const timeRound = 10 * time.Millisecond

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	progress := func(event scrape.ProgressEvent) {
		switch event.Type {
		case scrape.ProgressRunStarted:
			fmt.Fprintf(deps.Stdout, "Scraping %d source(s)\n", event.Total)
		case scrape.ProgressStage:
			if c.Verbose {
				fmt.Fprintf(deps.Stdout, "  %s: %s\n", event.SourceName, event.Stage)
			}
		case scrape.ProgressSelectorFallback:
			fmt.Fprintf(deps.Stderr, "  %s: selector matched nothing, using full page body\n", event.SourceName)
		case scrape.ProgressSourceFailed:
			fmt.Fprintf(deps.Stderr, "  %s: failed at %s: %s\n", event.SourceName, event.Stage, newswire.ErrorMessage(event.Error))
		}
	}

	summary, err := deps.Runner.Run(deps.Ctx, scrape.RunOptions{SourceName: c.Source}, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newswire.ErrorMessage(err))
		return err
	}

	for _, report := range summary.Reports {
		switch report.State {
		case scrape.StateDone:
			fmt.Fprintf(deps.Stdout, "  %-20s ok    extracted=%d rejected=%d duplicate=%d persisted=%d\n",
				report.SourceName, report.Extracted, report.Rejected, report.Duplicate, report.Persisted)
		case scrape.StateFailed:
			fmt.Fprintf(deps.Stdout, "  %-20s FAIL  stage=%s\n", report.SourceName, report.FailedStage)
		case scrape.StateSkipped:
			fmt.Fprintf(deps.Stdout, "  %-20s skip\n", report.SourceName)
		}
		for _, e := range report.Errs {
			fmt.Fprintf(deps.Stderr, "  %s: %s\n", report.SourceName, newswire.ErrorMessage(e))
		}
	}

	fmt.Fprintf(deps.Stdout, "Done in %s: %d succeeded, %d failed, %d new article(s), %d duplicate(s)\n",
		summary.FinishedAt.Sub(summary.StartedAt).Round(timeRound),
		summary.Succeeded, summary.Failed, summary.Persisted, summary.Duplicate)

	return nil
}
