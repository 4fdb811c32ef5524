package newswire

import (
	"context"
	"net/url"
	"time"
)

// Source represents a configured news listing page to scrape. Sources are
// created and edited by an operator; the pipeline only reads them.
type Source struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	ListingURL      string    `json:"listingUrl"`
	BaseURL         string    `json:"baseUrl"`
	ContentSelector string    `json:"contentSelector"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Validate returns an error if the source contains invalid fields.
func (s *Source) Validate() error {
	if s.Name == "" {
		return Errorf(EINVALID, "source name required")
	}
	if err := validateAbsoluteURL(s.ListingURL); err != nil {
		return Errorf(EINVALID, "source listing URL: %s", ErrorMessage(err))
	}
	if err := validateAbsoluteURL(s.BaseURL); err != nil {
		return Errorf(EINVALID, "source base URL: %s", ErrorMessage(err))
	}
	return nil
}

// validateAbsoluteURL checks that raw parses as an absolute http(s) URL.
func validateAbsoluteURL(raw string) error {
	if raw == "" {
		return Errorf(EINVALID, "URL required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Errorf(EINVALID, "malformed URL %q", raw)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Errorf(EINVALID, "URL %q must be absolute http(s)", raw)
	}
	return nil
}

// SourceService represents a service for managing scraping sources.
// The pipeline queries it fresh on every run; implementations must not
// cache beyond a single call so live operator edits take effect.
type SourceService interface {
	// CreateSource creates a new source.
	// Returns ECONFLICT if a source with the same name exists.
	CreateSource(ctx context.Context, source *Source) error

	// FindSourceByName retrieves a source by its unique name.
	// Returns ENOTFOUND if the source does not exist.
	FindSourceByName(ctx context.Context, name string) (*Source, error)

	// FindSources retrieves sources matching the filter.
	FindSources(ctx context.Context, filter SourceFilter) ([]*Source, error)

	// UpdateSource updates an existing source.
	// Returns ENOTFOUND if the source does not exist.
	UpdateSource(ctx context.Context, name string, upd SourceUpdate) (*Source, error)

	// DeleteSource permanently removes a source. Persisted articles for the
	// source are retained unless deleteArticles is true.
	DeleteSource(ctx context.Context, name string, deleteArticles bool) error
}

// SourceFilter represents a filter for FindSources.
type SourceFilter struct {
	Name   *string `json:"name"`
	Active *bool   `json:"active"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// SourceUpdate represents fields that can be updated on a source.
type SourceUpdate struct {
	ListingURL      *string `json:"listingUrl"`
	BaseURL         *string `json:"baseUrl"`
	ContentSelector *string `json:"contentSelector"`
	Active          *bool   `json:"active"`
}
