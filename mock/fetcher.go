package mock

import (
	"context"

	"github.com/fwojciec/newswire"
)

var _ newswire.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of newswire.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*newswire.FetchResult, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*newswire.FetchResult, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
