package newswire

import "context"

// ExtractResult holds the candidates proposed by one extraction call.
type ExtractResult struct {
	// Candidates are the article records the model found in the HTML.
	Candidates []Candidate

	// Incomplete counts entries the model returned without a title or URL.
	// They are dropped at the engine, not surfaced as errors.
	Incomplete int
}

// Extractor turns filtered listing HTML into candidate article records via
// a remote generative model. The response is untrusted: implementations
// must tolerate malformed output and attempt one repair pass before giving
// up with an EINTERNAL error.
type Extractor interface {
	Extract(ctx context.Context, html, sourceName string) (*ExtractResult, error)
}
