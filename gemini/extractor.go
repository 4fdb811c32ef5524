// Package gemini implements newswire.Extractor using Google Gemini.
// It sends filtered listing HTML with a fixed instruction prompt and parses
// the model's response into candidate article records.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/newswire"
	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// maxEntries caps how many articles the model is asked for per listing.
const maxEntries = 20

// rawExcerptLen bounds how much of an unparseable response is carried in
// the error message.
const rawExcerptLen = 240

// Ensure Extractor implements newswire.Extractor at compile time.
var _ newswire.Extractor = (*Extractor)(nil)

// Extractor implements newswire.Extractor using Google Gemini.
type Extractor struct {
	client *genai.Client
	model  string
}

// NewExtractor creates a new Extractor. An empty model selects DefaultModel.
func NewExtractor(client *genai.Client, model string) *Extractor {
	if model == "" {
		model = DefaultModel
	}
	return &Extractor{client: client, model: model}
}

// Extract sends the filtered HTML to the model and parses the response into
// candidates. Entries missing a title or URL are dropped and counted, not
// raised: the call itself succeeded, the entries are simply incomplete. An
// unparseable response (after one repair pass) fails with EINTERNAL and a
// bounded excerpt of the raw output.
func (e *Extractor) Extract(ctx context.Context, html, sourceName string) (*newswire.ExtractResult, error) {
	if sourceName == "" {
		return nil, newswire.Errorf(newswire.EINVALID, "source name required")
	}
	if strings.TrimSpace(html) == "" {
		return nil, newswire.Errorf(newswire.EINVALID, "html required")
	}

	prompt := BuildUserPrompt(html)
	config := BuildConfig()

	result, err := e.client.Models.GenerateContent(ctx, e.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return nil, newswire.Errorf(newswire.EUNAVAILABLE, "gemini call failed: %v", err)
	}
	if result == nil {
		return nil, newswire.Errorf(newswire.EINTERNAL, "gemini returned nil result")
	}

	raw := result.Text()
	if strings.TrimSpace(raw) == "" {
		return nil, newswire.Errorf(newswire.EINTERNAL, "gemini returned an empty response")
	}

	candidates, incomplete, err := ParseCandidates(raw, sourceName)
	if err != nil {
		return nil, err
	}

	return &newswire.ExtractResult{Candidates: candidates, Incomplete: incomplete}, nil
}

// BuildConfig returns the GenerateContentConfig for extraction calls.
// Temperature is kept low: the task is transcription, not generation.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.1)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You extract structured article records from news listing HTML. " +
					"You respond with JSON only, never prose, and you never invent entries " +
					"that are not present in the HTML you were given.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}

// BuildUserPrompt builds the fixed instruction prompt around the filtered
// listing HTML.
func BuildUserPrompt(html string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Analyze the following HTML from a news listing page and extract the %d most recent articles.\n", maxEntries)
	sb.WriteString("Respond with a single JSON array. Each element is an object with exactly these keys:\n")
	sb.WriteString(`  "title": the article headline` + "\n")
	sb.WriteString(`  "url": the article link, relative or absolute, exactly as found in the markup` + "\n")
	sb.WriteString(`  "summary": the briefest description that captures the main idea` + "\n")
	sb.WriteString(`  "published_at": the publication date if visible, otherwise null` + "\n")
	sb.WriteString("Only include articles visible in the HTML below. Do not fabricate entries.\n\n")
	sb.WriteString("<html>\n")
	sb.WriteString(html)
	sb.WriteString("\n</html>")
	return sb.String()
}
