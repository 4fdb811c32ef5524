// Package rod provides a browser-based implementation of newswire.Fetcher
// for listing pages that only render their articles client-side.
package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/newswire"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements newswire.Fetcher at compile time.
var _ newswire.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser *rod.Browser
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher() (*Fetcher, error) {
	// Launch browser using rod's launcher (finds or downloads Chrome)
	l := launcher.New().Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill() // Clean up launched process on connection failure
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &Fetcher{browser: browser}, nil
}

// Fetch navigates to the URL, waits for the page to load, and returns the
// rendered HTML. Navigation failures are coded EUNAVAILABLE so the retry
// loop treats them as transient; the status code is reported as 200 since
// the page rendered.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*newswire.FetchResult, error) {
	// Check context before starting
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, newswire.Errorf(newswire.EUNAVAILABLE, "open page: %v", err)
	}
	defer page.Close()

	// Set context for all subsequent operations
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return nil, newswire.Errorf(newswire.EUNAVAILABLE, "navigate %s: %v", url, err)
	}

	if err := page.WaitLoad(); err != nil {
		return nil, newswire.Errorf(newswire.EUNAVAILABLE, "wait load %s: %v", url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, newswire.Errorf(newswire.EUNAVAILABLE, "read html %s: %v", url, err)
	}

	return &newswire.FetchResult{
		HTML:       html,
		StatusCode: 200,
		FetchedAt:  time.Now().UTC(),
	}, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.browser.Close()
}
