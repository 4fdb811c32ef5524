package mock

import (
	"context"

	"github.com/fwojciec/newswire"
)

var _ newswire.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of newswire.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, html, sourceName string) (*newswire.ExtractResult, error)
}

func (e *Extractor) Extract(ctx context.Context, html, sourceName string) (*newswire.ExtractResult, error) {
	return e.ExtractFn(ctx, html, sourceName)
}
