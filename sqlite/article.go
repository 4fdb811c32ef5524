package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/newswire"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ newswire.ArticleService = (*ArticleService)(nil)

// ArticleService implements newswire.ArticleService using SQLite.
type ArticleService struct {
	db *DB
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *DB) *ArticleService {
	return &ArticleService{db: db}
}

// URLKey computes the identity-key hash for an article URL. The key is
// deterministic so re-scraping the same listing maps an article to the same
// row every time.
func URLKey(articleURL string) string {
	h := xxhash.Sum64String(articleURL)
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}

// CreateArticleIfAbsent persists the article unless one with the same
// (source_name, url_key) identity already exists. The insert relies on the
// unique index rather than a prior existence check, so two concurrent runs
// racing on the same article cannot produce a duplicate: the second writer
// simply observes created=false.
func (s *ArticleService) CreateArticleIfAbsent(ctx context.Context, article *newswire.Article) (bool, error) {
	if err := article.Validate(); err != nil {
		return false, err
	}

	article.ID = uuid.New().String()
	article.URLKey = URLKey(article.URL)
	article.CreatedAt = time.Now().UTC()

	var publishedAt any
	if article.PublishedAt != nil {
		publishedAt = article.PublishedAt.UTC().Format(time.RFC3339)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO articles (id, source_name, url, url_key, title, summary, published_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (source_name, url_key) DO NOTHING
	`, article.ID, article.SourceName, article.URL, article.URLKey, article.Title,
		article.Summary, publishedAt, article.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// ArticleExists reports whether an article with the given identity key has
// been persisted.
func (s *ArticleService) ArticleExists(ctx context.Context, sourceName, articleURL string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(1) FROM articles WHERE source_name = ? AND url_key = ?
	`, sourceName, URLKey(articleURL)).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// FindArticles retrieves articles matching the filter, newest first.
func (s *ArticleService) FindArticles(ctx context.Context, filter newswire.ArticleFilter) ([]*newswire.Article, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source_name, url, url_key, title, summary, published_at, created_at FROM articles WHERE 1=1")

	if filter.SourceName != nil {
		query.WriteString(" AND source_name = ?")
		args = append(args, *filter.SourceName)
	}
	if filter.URL != nil {
		query.WriteString(" AND url_key = ?")
		args = append(args, URLKey(*filter.URL))
	}

	query.WriteString(" ORDER BY created_at DESC, id")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*newswire.Article
	for rows.Next() {
		var article newswire.Article
		var publishedAt sql.NullString
		var createdAt string

		if err := rows.Scan(&article.ID, &article.SourceName, &article.URL, &article.URLKey,
			&article.Title, &article.Summary, &publishedAt, &createdAt); err != nil {
			return nil, err
		}

		if publishedAt.Valid {
			t, err := parseRFC3339(publishedAt.String, "published_at")
			if err != nil {
				return nil, err
			}
			article.PublishedAt = &t
		}
		if article.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}

		articles = append(articles, &article)
	}

	return articles, rows.Err()
}

// DeleteArticlesBySource removes all articles for a source.
func (s *ArticleService) DeleteArticlesBySource(ctx context.Context, sourceName string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM articles WHERE source_name = ?", sourceName)
	return err
}
