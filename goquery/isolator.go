// Package goquery provides a CSS-selector based implementation of
// newswire.ContentIsolator, the pre-filter that narrows listing HTML before
// AI extraction.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newswire"
)

// Ensure Isolator implements newswire.ContentIsolator at compile time.
var _ newswire.ContentIsolator = (*Isolator)(nil)

// Isolator narrows raw HTML to the subtree matched by a source's content
// selector. A selector miss (or an invalid selector expression) degrades to
// the full document body rather than failing the run, because the
// extraction step tolerates noisy input. The fallback is reported so
// operators can fix stale selectors.
type Isolator struct{}

// NewIsolator creates a new Isolator.
func NewIsolator() *Isolator {
	return &Isolator{}
}

// Isolate returns the serialized HTML of the first selector match, or the
// full body when the selector matches nothing.
func (i *Isolator) Isolate(html, selector string) (*newswire.IsolateResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, newswire.Errorf(newswire.EINVALID, "failed to parse HTML: %v", err)
	}

	if selector != "" {
		if matched := findFirst(doc, selector); matched != nil {
			if subtree, err := goquery.OuterHtml(matched); err == nil {
				return &newswire.IsolateResult{HTML: subtree}, nil
			}
		}
	}

	// Fall back to the body; if the document has no body element at all,
	// pass the input through untouched.
	if body := doc.Find("body"); body.Length() > 0 {
		if inner, err := body.Html(); err == nil && strings.TrimSpace(inner) != "" {
			return &newswire.IsolateResult{HTML: inner, Fallback: true}, nil
		}
	}
	return &newswire.IsolateResult{HTML: html, Fallback: true}, nil
}

// findFirst applies the selector, recovering from cascadia panics on
// invalid expressions so a bad operator-entered selector behaves like a
// selector miss.
func findFirst(doc *goquery.Document, selector string) (sel *goquery.Selection) {
	defer func() {
		if recover() != nil {
			sel = nil
		}
	}()
	found := doc.Find(selector)
	if found.Length() == 0 {
		return nil
	}
	return found.First()
}
