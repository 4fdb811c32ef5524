package newswire

import (
	"context"
	"time"
)

// FetchResult holds the raw outcome of retrieving a listing page. It is
// transient: consumed by the pre-filter and never persisted.
type FetchResult struct {
	// HTML is the response body.
	HTML string

	// StatusCode is the HTTP status of the response.
	StatusCode int

	// FetchedAt records when the fetch completed.
	FetchedAt time.Time
}

// Fetcher retrieves raw HTML from listing URLs.
// Implementations may use browser automation to handle JavaScript-rendered
// content. Errors are coded: EUNAVAILABLE for transient failures worth
// retrying (network errors, 5xx), EINVALID for permanent ones (4xx).
type Fetcher interface {
	// Fetch retrieves the page at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*FetchResult, error)

	// Close releases any resources held by the fetcher.
	Close() error
}
