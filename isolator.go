package newswire

// IsolateResult holds the selector-narrowed HTML passed to the extraction
// engine.
type IsolateResult struct {
	// HTML is the serialized subtree of the first selector match, or the
	// full document body when the selector matched nothing.
	HTML string

	// Fallback reports that the selector did not match and the full body
	// was returned instead. Operators use this signal to fix stale
	// selectors.
	Fallback bool
}

// ContentIsolator narrows raw listing HTML to the configured content
// subtree before AI extraction. Purely a size/noise reduction step: it never
// fails on well-formed HTML, a selector miss degrades to the full body.
type ContentIsolator interface {
	Isolate(html, selector string) (*IsolateResult, error)
}
