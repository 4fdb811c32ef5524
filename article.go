package newswire

import (
	"context"
	"time"
)

// Candidate is an unvalidated article record proposed by the extraction
// engine. Its URL may still be relative to the source's base URL.
type Candidate struct {
	Title       string     `json:"title"`
	Summary     string     `json:"summary"`
	URL         string     `json:"url"`
	PublishedAt *time.Time `json:"publishedAt"`
	SourceName  string     `json:"sourceName"`
}

// Article represents a persisted news article. Articles are created once on
// first sighting and never mutated by the pipeline afterwards.
type Article struct {
	ID          string     `json:"id"`
	SourceName  string     `json:"sourceName"`
	URL         string     `json:"url"`
	URLKey      string     `json:"urlKey"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Validate returns an error if the article contains invalid fields.
func (a *Article) Validate() error {
	if a.SourceName == "" {
		return Errorf(EINVALID, "article source name required")
	}
	if a.Title == "" {
		return Errorf(EINVALID, "article title required")
	}
	if err := validateAbsoluteURL(a.URL); err != nil {
		return Errorf(EINVALID, "article URL: %s", ErrorMessage(err))
	}
	return nil
}

// ArticleService represents the persisted-article store. It is the only
// component that writes articles, and its create operation is idempotent on
// the (source name, URL) identity key.
type ArticleService interface {
	// CreateArticleIfAbsent persists the article unless one with the same
	// identity key already exists. Returns created=false (and no error)
	// when the article was already present.
	CreateArticleIfAbsent(ctx context.Context, article *Article) (created bool, err error)

	// ArticleExists reports whether an article with the given identity key
	// has been persisted.
	ArticleExists(ctx context.Context, sourceName, articleURL string) (bool, error)

	// FindArticles retrieves articles matching the filter.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*Article, error)

	// DeleteArticlesBySource removes all articles for a source.
	DeleteArticlesBySource(ctx context.Context, sourceName string) error
}

// ArticleFilter represents a filter for FindArticles.
type ArticleFilter struct {
	SourceName *string `json:"sourceName"`
	URL        *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
