package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/newswire"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ newswire.SourceService = (*SourceService)(nil)

// SourceService implements newswire.SourceService using SQLite.
type SourceService struct {
	db *DB
}

// NewSourceService creates a new SourceService.
func NewSourceService(db *DB) *SourceService {
	return &SourceService{db: db}
}

// CreateSource creates a new source.
func (s *SourceService) CreateSource(ctx context.Context, source *newswire.Source) error {
	if err := source.Validate(); err != nil {
		return err
	}

	source.ID = uuid.New().String()
	now := time.Now().UTC()
	source.CreatedAt = now
	source.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sources (id, name, listing_url, base_url, content_selector, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, source.ID, source.Name, source.ListingURL, source.BaseURL, source.ContentSelector,
		boolToInt(source.Active), source.CreatedAt.Format(time.RFC3339), source.UpdatedAt.Format(time.RFC3339))

	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return newswire.Errorf(newswire.ECONFLICT, "source %q already exists", source.Name)
	}
	return err
}

// FindSourceByName retrieves a source by its unique name.
func (s *SourceService) FindSourceByName(ctx context.Context, name string) (*newswire.Source, error) {
	var source newswire.Source
	var active int
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, listing_url, base_url, content_selector, active, created_at, updated_at
		FROM sources
		WHERE name = ?
	`, name).Scan(&source.ID, &source.Name, &source.ListingURL, &source.BaseURL,
		&source.ContentSelector, &active, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, newswire.Errorf(newswire.ENOTFOUND, "source %q not found", name)
	}
	if err != nil {
		return nil, err
	}

	source.Active = active != 0
	if source.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if source.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &source, nil
}

// FindSources retrieves sources matching the filter.
func (s *SourceService) FindSources(ctx context.Context, filter newswire.SourceFilter) ([]*newswire.Source, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, name, listing_url, base_url, content_selector, active, created_at, updated_at FROM sources WHERE 1=1")

	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}
	if filter.Active != nil {
		query.WriteString(" AND active = ?")
		args = append(args, boolToInt(*filter.Active))
	}

	query.WriteString(" ORDER BY name ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []*newswire.Source
	for rows.Next() {
		var source newswire.Source
		var active int
		var createdAt, updatedAt string

		if err := rows.Scan(&source.ID, &source.Name, &source.ListingURL, &source.BaseURL,
			&source.ContentSelector, &active, &createdAt, &updatedAt); err != nil {
			return nil, err
		}

		source.Active = active != 0
		if source.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		if source.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
			return nil, err
		}

		sources = append(sources, &source)
	}

	return sources, rows.Err()
}

// UpdateSource updates an existing source.
func (s *SourceService) UpdateSource(ctx context.Context, name string, upd newswire.SourceUpdate) (*newswire.Source, error) {
	source, err := s.FindSourceByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if upd.ListingURL != nil {
		source.ListingURL = *upd.ListingURL
	}
	if upd.BaseURL != nil {
		source.BaseURL = *upd.BaseURL
	}
	if upd.ContentSelector != nil {
		source.ContentSelector = *upd.ContentSelector
	}
	if upd.Active != nil {
		source.Active = *upd.Active
	}
	source.UpdatedAt = time.Now().UTC()

	if err := source.Validate(); err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE sources
		SET listing_url = ?, base_url = ?, content_selector = ?, active = ?, updated_at = ?
		WHERE name = ?
	`, source.ListingURL, source.BaseURL, source.ContentSelector, boolToInt(source.Active),
		source.UpdatedAt.Format(time.RFC3339), name)

	if err != nil {
		return nil, err
	}

	return source, nil
}

// DeleteSource permanently removes a source. Articles are retained unless
// deleteArticles is true; disabling or deleting a source never silently
// destroys history.
func (s *SourceService) DeleteSource(ctx context.Context, name string, deleteArticles bool) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM sources WHERE name = ?", name)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return newswire.Errorf(newswire.ENOTFOUND, "source %q not found", name)
	}

	if deleteArticles {
		_, err = s.db.ExecContext(ctx, "DELETE FROM articles WHERE source_name = ?", name)
	}
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
