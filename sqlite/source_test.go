package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/newswire"
	"github.com/fwojciec/newswire/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSource(name string) *newswire.Source {
	return &newswire.Source{
		Name:            name,
		ListingURL:      "https://news.example.com/latest",
		BaseURL:         "https://news.example.com",
		ContentSelector: "main#content",
		Active:          true,
	}
}

func TestSourceService_CreateSource(t *testing.T) {
	t.Parallel()

	t.Run("creates source with generated ID and timestamps", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSourceService(db)
		ctx := context.Background()

		source := testSource("example")
		err := svc.CreateSource(ctx, source)
		require.NoError(t, err)

		assert.NotEmpty(t, source.ID, "ID should be generated")
		assert.False(t, source.CreatedAt.IsZero(), "CreatedAt should be set")
		assert.False(t, source.UpdatedAt.IsZero(), "UpdatedAt should be set")
	})

	t.Run("returns ECONFLICT for duplicate name", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSourceService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreateSource(ctx, testSource("example")))

		err := svc.CreateSource(ctx, testSource("example"))
		require.Error(t, err)
		assert.Equal(t, newswire.ECONFLICT, newswire.ErrorCode(err))
	})

	t.Run("returns error for invalid source", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSourceService(db)
		ctx := context.Background()

		err := svc.CreateSource(ctx, &newswire.Source{}) // missing required fields
		require.Error(t, err)
		assert.Equal(t, newswire.EINVALID, newswire.ErrorCode(err))
	})
}

func TestSourceService_FindSourceByName(t *testing.T) {
	t.Parallel()

	t.Run("returns source when found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSourceService(db)
		ctx := context.Background()

		source := testSource("example")
		require.NoError(t, svc.CreateSource(ctx, source))

		found, err := svc.FindSourceByName(ctx, "example")
		require.NoError(t, err)
		assert.Equal(t, source.ID, found.ID)
		assert.Equal(t, source.ListingURL, found.ListingURL)
		assert.Equal(t, source.BaseURL, found.BaseURL)
		assert.Equal(t, source.ContentSelector, found.ContentSelector)
		assert.True(t, found.Active)
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSourceService(db)

		_, err := svc.FindSourceByName(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, newswire.ENOTFOUND, newswire.ErrorCode(err))
	})
}

func TestSourceService_FindSources(t *testing.T) {
	t.Parallel()

	t.Run("filters by active flag", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSourceService(db)
		ctx := context.Background()

		active := testSource("active-source")
		require.NoError(t, svc.CreateSource(ctx, active))

		inactive := testSource("inactive-source")
		inactive.Active = false
		require.NoError(t, svc.CreateSource(ctx, inactive))

		isActive := true
		sources, err := svc.FindSources(ctx, newswire.SourceFilter{Active: &isActive})
		require.NoError(t, err)
		require.Len(t, sources, 1)
		assert.Equal(t, "active-source", sources[0].Name)
	})

	t.Run("returns all sources with empty filter", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSourceService(db)
		ctx := context.Background()

		for _, name := range []string{"a", "b", "c"} {
			require.NoError(t, svc.CreateSource(ctx, testSource(name)))
		}

		sources, err := svc.FindSources(ctx, newswire.SourceFilter{})
		require.NoError(t, err)
		assert.Len(t, sources, 3)
	})
}

func TestSourceService_UpdateSource(t *testing.T) {
	t.Parallel()

	t.Run("updates selector and active flag", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSourceService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreateSource(ctx, testSource("example")))

		selector := "div.articles"
		inactive := false
		updated, err := svc.UpdateSource(ctx, "example", newswire.SourceUpdate{
			ContentSelector: &selector,
			Active:          &inactive,
		})
		require.NoError(t, err)
		assert.Equal(t, "div.articles", updated.ContentSelector)
		assert.False(t, updated.Active)

		found, err := svc.FindSourceByName(ctx, "example")
		require.NoError(t, err)
		assert.Equal(t, "div.articles", found.ContentSelector)
		assert.False(t, found.Active)
	})

	t.Run("returns ENOTFOUND for missing source", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSourceService(db)

		selector := "main"
		_, err := svc.UpdateSource(context.Background(), "missing", newswire.SourceUpdate{ContentSelector: &selector})
		require.Error(t, err)
		assert.Equal(t, newswire.ENOTFOUND, newswire.ErrorCode(err))
	})

	t.Run("rejects update producing invalid source", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSourceService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreateSource(ctx, testSource("example")))

		bad := "not-a-url"
		_, err := svc.UpdateSource(ctx, "example", newswire.SourceUpdate{BaseURL: &bad})
		require.Error(t, err)
		assert.Equal(t, newswire.EINVALID, newswire.ErrorCode(err))
	})
}

func TestSourceService_DeleteSource(t *testing.T) {
	t.Parallel()

	t.Run("retains articles by default", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		sources := sqlite.NewSourceService(db)
		articles := sqlite.NewArticleService(db)
		ctx := context.Background()

		require.NoError(t, sources.CreateSource(ctx, testSource("example")))
		created, err := articles.CreateArticleIfAbsent(ctx, &newswire.Article{
			SourceName: "example",
			URL:        "https://news.example.com/a1",
			Title:      "A1",
		})
		require.NoError(t, err)
		require.True(t, created)

		require.NoError(t, sources.DeleteSource(ctx, "example", false))

		name := "example"
		remaining, err := articles.FindArticles(ctx, newswire.ArticleFilter{SourceName: &name})
		require.NoError(t, err)
		assert.Len(t, remaining, 1, "deleting a source must not delete history")
	})

	t.Run("deletes articles when requested", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		sources := sqlite.NewSourceService(db)
		articles := sqlite.NewArticleService(db)
		ctx := context.Background()

		require.NoError(t, sources.CreateSource(ctx, testSource("example")))
		_, err := articles.CreateArticleIfAbsent(ctx, &newswire.Article{
			SourceName: "example",
			URL:        "https://news.example.com/a1",
			Title:      "A1",
		})
		require.NoError(t, err)

		require.NoError(t, sources.DeleteSource(ctx, "example", true))

		name := "example"
		remaining, err := articles.FindArticles(ctx, newswire.ArticleFilter{SourceName: &name})
		require.NoError(t, err)
		assert.Empty(t, remaining)
	})

	t.Run("returns ENOTFOUND for missing source", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSourceService(db)

		err := svc.DeleteSource(context.Background(), "missing", false)
		require.Error(t, err)
		assert.Equal(t, newswire.ENOTFOUND, newswire.ErrorCode(err))
	})
}
