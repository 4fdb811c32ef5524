package mock

import "github.com/fwojciec/newswire"

var _ newswire.ContentIsolator = (*ContentIsolator)(nil)

// ContentIsolator is a mock implementation of newswire.ContentIsolator.
type ContentIsolator struct {
	IsolateFn func(html, selector string) (*newswire.IsolateResult, error)
}

func (i *ContentIsolator) Isolate(html, selector string) (*newswire.IsolateResult, error) {
	return i.IsolateFn(html, selector)
}
