// Package scrape provides the extraction run orchestrator. It sequences
// fetch, pre-filter, AI extraction, validation, deduplication and
// persistence per source, isolates per-source failures, and aggregates a
// run summary.
package scrape

import (
	"context"
	"net/url"
	"time"

	"github.com/fwojciec/newswire"
	"github.com/fwojciec/newswire/bloom"
	"golang.org/x/sync/errgroup"
)

// Bloom filter sizing for the run-scoped seen-key filter. A listing yields
// at most a few dozen candidates; the filter is deliberately oversized.
const (
	seenExpectedKeys      = 4096
	seenFalsePositiveRate = 0.001
)

// Stage identifies a step of the per-source pipeline.
type Stage string

// Pipeline stages in execution order.
const (
	StageFetch    Stage = "fetch"
	StageFilter   Stage = "filter"
	StageExtract  Stage = "extract"
	StageValidate Stage = "validate"
	StageDedupe   Stage = "dedupe"
	StagePersist  Stage = "persist"
)

// State is the terminal or in-flight status of one source's pipeline.
type State string

// Source pipeline states.
const (
	StatePending State = "pending"
	StateRunning State = "running"
	StateDone    State = "done"
	StateFailed  State = "failed"
	StateSkipped State = "skipped"
)

// Limiter throttles outbound requests per domain.
type Limiter interface {
	Wait(ctx context.Context, domain string) error
}

// Runner orchestrates extraction runs over configured sources.
type Runner struct {
	Sources     newswire.SourceService
	Fetcher     newswire.Fetcher
	Isolator    newswire.ContentIsolator
	Extractor   newswire.Extractor
	Articles    newswire.ArticleService
	Limiter     Limiter
	Concurrency int
	RetryDelays []time.Duration
}

// RunOptions selects the sources for a run.
type RunOptions struct {
	// SourceName restricts the run to exactly one source. Naming a source
	// explicitly overrides its active flag: operator intent wins. Empty
	// means all active sources.
	SourceName string
}

// SourceReport holds the outcome of one source's pipeline.
type SourceReport struct {
	SourceName string
	State      State

	// FailedStage and Err are set when State is StateFailed.
	FailedStage Stage
	Err         error

	// SelectorFallback reports that the content selector matched nothing
	// and the full document body was used instead.
	SelectorFallback bool

	// Per-stage counts.
	FetchedBytes int
	Extracted    int
	Incomplete   int
	Rejected     int
	Duplicate    int
	Persisted    int

	// Errs collects per-article persistence failures that did not abort
	// the source.
	Errs []error
}

// RunSummary aggregates one orchestrator invocation.
type RunSummary struct {
	StartedAt  time.Time
	FinishedAt time.Time

	Reports []*SourceReport

	Succeeded int
	Failed    int
	Persisted int
	Duplicate int
}

// ProgressType indicates the type of progress event.
type ProgressType int

// Progress event types.
const (
	ProgressRunStarted ProgressType = iota
	ProgressStage
	ProgressSelectorFallback
	ProgressSourceCompleted
	ProgressSourceFailed
	ProgressRunFinished
)

// ProgressEvent reports a stage transition or outcome during a run.
type ProgressEvent struct {
	Type       ProgressType
	SourceName string
	Stage      Stage
	Total      int
	Error      error
	Report     *SourceReport
}

// ProgressFunc is a callback for reporting run progress. The orchestrator
// emits an event on every stage transition and every failure so nothing is
// dropped without a trace.
type ProgressFunc func(event ProgressEvent)

// Run executes the pipeline for the selected sources. Individual source
// failures are absorbed into the summary; the only error Run itself
// returns is a configuration-level one, such as an explicitly named source
// that does not exist.
func (r *Runner) Run(ctx context.Context, opts RunOptions, progress ProgressFunc) (*RunSummary, error) {
	sources, err := r.selectSources(ctx, opts)
	if err != nil {
		return nil, err
	}

	summary := &RunSummary{StartedAt: time.Now().UTC()}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressRunStarted, Total: len(sources)})
	}

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	reports := make([]*SourceReport, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, source := range sources {
		// A canceled run stops launching new pipelines; sources already
		// in flight run to a terminal state.
		if ctx.Err() != nil {
			reports[i] = &SourceReport{SourceName: source.Name, State: StateSkipped}
			continue
		}

		i, source := i, source
		g.Go(func() error {
			reports[i] = r.runSource(gctx, source, progress)
			return nil
		})
	}
	_ = g.Wait()

	for _, report := range reports {
		summary.Reports = append(summary.Reports, report)
		switch report.State {
		case StateDone:
			summary.Succeeded++
		case StateFailed:
			summary.Failed++
		}
		summary.Persisted += report.Persisted
		summary.Duplicate += report.Duplicate
	}

	summary.FinishedAt = time.Now().UTC()

	if progress != nil {
		progress(ProgressEvent{Type: ProgressRunFinished, Total: len(sources)})
	}

	return summary, nil
}

// selectSources resolves the run's source set fresh from the registry.
func (r *Runner) selectSources(ctx context.Context, opts RunOptions) ([]*newswire.Source, error) {
	if opts.SourceName != "" {
		source, err := r.Sources.FindSourceByName(ctx, opts.SourceName)
		if err != nil {
			return nil, err
		}
		return []*newswire.Source{source}, nil
	}

	active := true
	return r.Sources.FindSources(ctx, newswire.SourceFilter{Active: &active})
}

// runSource drives one source through the pipeline. Every failure is
// converted into a terminal report; nothing escapes to the caller.
func (r *Runner) runSource(ctx context.Context, source *newswire.Source, progress ProgressFunc) *SourceReport {
	report := &SourceReport{SourceName: source.Name, State: StateRunning}

	stage := func(s Stage) {
		if progress != nil {
			progress(ProgressEvent{Type: ProgressStage, SourceName: source.Name, Stage: s})
		}
	}
	fail := func(s Stage, err error) *SourceReport {
		report.State = StateFailed
		report.FailedStage = s
		report.Err = err
		if progress != nil {
			progress(ProgressEvent{Type: ProgressSourceFailed, SourceName: source.Name, Stage: s, Error: err, Report: report})
		}
		return report
	}

	// Fetch
	stage(StageFetch)
	if r.Limiter != nil {
		if u, err := url.Parse(source.ListingURL); err == nil {
			if err := r.Limiter.Wait(ctx, u.Host); err != nil {
				return fail(StageFetch, err)
			}
		}
	}

	delays := r.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	fetched, err := FetchWithRetryDelays(ctx, source.ListingURL, r.Fetcher.Fetch, nil, delays)
	if err != nil {
		return fail(StageFetch, err)
	}
	report.FetchedBytes = len(fetched.HTML)

	// Pre-filter
	stage(StageFilter)
	isolated, err := r.Isolator.Isolate(fetched.HTML, source.ContentSelector)
	if err != nil {
		return fail(StageFilter, err)
	}
	if isolated.Fallback {
		report.SelectorFallback = true
		if progress != nil {
			progress(ProgressEvent{Type: ProgressSelectorFallback, SourceName: source.Name})
		}
	}

	// Extract
	stage(StageExtract)
	extracted, err := r.Extractor.Extract(ctx, isolated.HTML, source.Name)
	if err != nil {
		return fail(StageExtract, err)
	}
	report.Extracted = len(extracted.Candidates)
	report.Incomplete = extracted.Incomplete

	// Validate
	stage(StageValidate)
	var valid []newswire.Candidate
	for _, candidate := range extracted.Candidates {
		normalized, err := NormalizeCandidate(candidate, source)
		if err != nil {
			report.Rejected++
			continue
		}
		valid = append(valid, normalized)
	}

	// Dedupe: a run-scoped bloom filter drops intra-run repeats, then the
	// store is consulted for already-persisted articles. Persistence
	// remains idempotent regardless, so a racing run cannot slip a
	// duplicate past this stage.
	stage(StageDedupe)
	seen := bloom.NewSeenFilter(seenExpectedKeys, seenFalsePositiveRate)
	var fresh []newswire.Candidate
	for _, candidate := range valid {
		key := source.Name + "|" + candidate.URL
		if seen.Seen(key) {
			report.Duplicate++
			continue
		}
		seen.Add(key)

		exists, err := r.Articles.ArticleExists(ctx, source.Name, candidate.URL)
		if err != nil {
			report.Errs = append(report.Errs, err)
			continue
		}
		if exists {
			report.Duplicate++
			continue
		}
		fresh = append(fresh, candidate)
	}

	// Persist: each article is a single idempotent write; a store failure
	// skips the article, not the source.
	stage(StagePersist)
	for _, candidate := range fresh {
		article := &newswire.Article{
			SourceName:  candidate.SourceName,
			URL:         candidate.URL,
			Title:       candidate.Title,
			Summary:     candidate.Summary,
			PublishedAt: candidate.PublishedAt,
		}

		created, err := r.Articles.CreateArticleIfAbsent(ctx, article)
		if err != nil {
			report.Errs = append(report.Errs, err)
			continue
		}
		if created {
			report.Persisted++
		} else {
			report.Duplicate++
		}
	}

	report.State = StateDone
	if progress != nil {
		progress(ProgressEvent{Type: ProgressSourceCompleted, SourceName: source.Name, Report: report})
	}
	return report
}
