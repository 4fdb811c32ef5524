package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/newswire"
	main "github.com/fwojciec/newswire/cmd/newswire"
	"github.com/fwojciec/newswire/mock"
	"github.com/fwojciec/newswire/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDeps(stdout, stderr *bytes.Buffer) *main.Dependencies {
	return &main.Dependencies{
		Ctx:    testContext(),
		Stdout: stdout,
		Stderr: stderr,
	}
}

func TestAddCmd(t *testing.T) {
	t.Parallel()

	t.Run("derives base URL from listing origin", func(t *testing.T) {
		t.Parallel()

		var created *newswire.Source
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := testDeps(stdout, stderr)
		deps.Sources = &mock.SourceService{
			CreateSourceFn: func(ctx context.Context, s *newswire.Source) error {
				created = s
				return nil
			},
		}

		cmd := &main.AddCmd{Name: "technews", URL: "https://news.example.com/latest", Selector: "main"}
		require.NoError(t, cmd.Run(deps))

		require.NotNil(t, created)
		assert.Equal(t, "https://news.example.com", created.BaseURL)
		assert.True(t, created.Active)
		assert.Contains(t, stdout.String(), "Added source")
		assert.Empty(t, stderr.String())
	})

	t.Run("registers inactive with --inactive", func(t *testing.T) {
		t.Parallel()

		var created *newswire.Source
		deps := testDeps(&bytes.Buffer{}, &bytes.Buffer{})
		deps.Sources = &mock.SourceService{
			CreateSourceFn: func(ctx context.Context, s *newswire.Source) error {
				created = s
				return nil
			},
		}

		cmd := &main.AddCmd{Name: "technews", URL: "https://news.example.com/latest", Inactive: true}
		require.NoError(t, cmd.Run(deps))
		require.NotNil(t, created)
		assert.False(t, created.Active)
	})

	t.Run("reports conflict on duplicate name", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := testDeps(stdout, stderr)
		deps.Sources = &mock.SourceService{
			CreateSourceFn: func(ctx context.Context, s *newswire.Source) error {
				return newswire.Errorf(newswire.ECONFLICT, "source already exists: %s", s.Name)
			},
		}

		cmd := &main.AddCmd{Name: "technews", URL: "https://news.example.com/latest"}
		require.Error(t, cmd.Run(deps))
		assert.Contains(t, stderr.String(), "error:")
		assert.Empty(t, stdout.String())
	})
}

func TestScrapeCmd(t *testing.T) {
	t.Parallel()

	t.Run("exits cleanly when a source fails", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := testDeps(stdout, stderr)
		active := true
		deps.Runner = &scrape.Runner{
			Sources: &mock.SourceService{
				FindSourcesFn: func(ctx context.Context, filter newswire.SourceFilter) ([]*newswire.Source, error) {
					return []*newswire.Source{{
						Name:       "broken",
						ListingURL: "https://broken.example.com/latest",
						BaseURL:    "https://broken.example.com",
						Active:     active,
					}}, nil
				},
			},
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (*newswire.FetchResult, error) {
					return nil, newswire.Errorf(newswire.EINVALID, "HTTP 404 for %s", url)
				},
			},
			Isolator:  &mock.ContentIsolator{},
			Extractor: &mock.Extractor{},
			Articles:  &mock.ArticleService{},
		}

		cmd := &main.ScrapeCmd{}
		require.NoError(t, cmd.Run(deps), "per-source failures must not fail the command")
		assert.Contains(t, stdout.String(), "FAIL")
		assert.Contains(t, stdout.String(), "1 failed")
		assert.Contains(t, stderr.String(), "HTTP 404")
	})

	t.Run("fails for an unknown named source", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := testDeps(stdout, stderr)
		deps.Runner = &scrape.Runner{
			Sources: &mock.SourceService{
				FindSourceByNameFn: func(ctx context.Context, name string) (*newswire.Source, error) {
					return nil, newswire.Errorf(newswire.ENOTFOUND, "source %q not found", name)
				},
			},
			Fetcher:   &mock.Fetcher{},
			Isolator:  &mock.ContentIsolator{},
			Extractor: &mock.Extractor{},
			Articles:  &mock.ArticleService{},
		}

		cmd := &main.ScrapeCmd{Source: "missing"}
		require.Error(t, cmd.Run(deps))
		assert.Contains(t, stderr.String(), "not found")
	})
}

func TestArticlesCmd(t *testing.T) {
	t.Parallel()

	t.Run("lists articles for a source", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := testDeps(stdout, stderr)
		deps.Sources = &mock.SourceService{
			FindSourceByNameFn: func(ctx context.Context, name string) (*newswire.Source, error) {
				return &newswire.Source{Name: name}, nil
			},
		}
		deps.Articles = &mock.ArticleService{
			FindArticlesFn: func(ctx context.Context, filter newswire.ArticleFilter) ([]*newswire.Article, error) {
				require.NotNil(t, filter.SourceName)
				assert.Equal(t, "technews", *filter.SourceName)
				return []*newswire.Article{
					{Title: "Article 1", URL: "https://news.example.com/tech/article-1"},
				}, nil
			},
		}

		cmd := &main.ArticlesCmd{Name: "technews", Limit: 20}
		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "Article 1")
		assert.Contains(t, stdout.String(), "https://news.example.com/tech/article-1")
		assert.Empty(t, stderr.String())
	})

	t.Run("reports unknown source", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := testDeps(stdout, stderr)
		deps.Sources = &mock.SourceService{
			FindSourceByNameFn: func(ctx context.Context, name string) (*newswire.Source, error) {
				return nil, newswire.Errorf(newswire.ENOTFOUND, "source %q not found", name)
			},
		}

		cmd := &main.ArticlesCmd{Name: "missing"}
		require.Error(t, cmd.Run(deps))
		assert.Contains(t, stderr.String(), "not found")
		assert.Empty(t, stdout.String())
	})
}

func TestRemoveCmd(t *testing.T) {
	t.Parallel()

	t.Run("keeps articles by default", func(t *testing.T) {
		t.Parallel()

		var purged bool
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := testDeps(stdout, stderr)
		deps.Sources = &mock.SourceService{
			DeleteSourceFn: func(ctx context.Context, name string, deleteArticles bool) error {
				purged = deleteArticles
				return nil
			},
		}

		cmd := &main.RemoveCmd{Name: "technews"}
		require.NoError(t, cmd.Run(deps))
		assert.False(t, purged)
		assert.Contains(t, stdout.String(), "articles kept")
	})

	t.Run("purges articles when asked", func(t *testing.T) {
		t.Parallel()

		var purged bool
		deps := testDeps(&bytes.Buffer{}, &bytes.Buffer{})
		deps.Sources = &mock.SourceService{
			DeleteSourceFn: func(ctx context.Context, name string, deleteArticles bool) error {
				purged = deleteArticles
				return nil
			},
		}

		cmd := &main.RemoveCmd{Name: "technews", PurgeArticles: true}
		require.NoError(t, cmd.Run(deps))
		assert.True(t, purged)
	})
}

func TestImportCmd(t *testing.T) {
	t.Parallel()

	const sampleYAML = `sources:
  - name: technews
    listing_url: https://news.example.com/latest
    base_url: https://news.example.com
    content_selector: main#content
  - name: dormant
    listing_url: https://dormant.example.com/news
    base_url: https://dormant.example.com
    content_selector: div.articles
    active: false
`

	writeFile := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "sources.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	t.Run("creates new sources", func(t *testing.T) {
		t.Parallel()

		var created []*newswire.Source
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := testDeps(stdout, stderr)
		deps.Sources = &mock.SourceService{
			CreateSourceFn: func(ctx context.Context, s *newswire.Source) error {
				created = append(created, s)
				return nil
			},
		}

		cmd := &main.ImportCmd{File: writeFile(t, sampleYAML)}
		require.NoError(t, cmd.Run(deps))

		require.Len(t, created, 2)
		assert.Equal(t, "technews", created[0].Name)
		assert.True(t, created[0].Active, "active defaults to true")
		assert.False(t, created[1].Active)
		assert.Contains(t, stdout.String(), "2 created")
	})

	t.Run("updates existing sources in place", func(t *testing.T) {
		t.Parallel()

		var updates []string
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := testDeps(stdout, stderr)
		deps.Sources = &mock.SourceService{
			CreateSourceFn: func(ctx context.Context, s *newswire.Source) error {
				return newswire.Errorf(newswire.ECONFLICT, "source already exists: %s", s.Name)
			},
			UpdateSourceFn: func(ctx context.Context, name string, upd newswire.SourceUpdate) (*newswire.Source, error) {
				updates = append(updates, name)
				return &newswire.Source{Name: name}, nil
			},
		}

		cmd := &main.ImportCmd{File: writeFile(t, sampleYAML)}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, []string{"technews", "dormant"}, updates)
		assert.Contains(t, stdout.String(), "2 updated")
	})

	t.Run("rejects invalid YAML", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := testDeps(stdout, stderr)

		cmd := &main.ImportCmd{File: writeFile(t, "sources: [not: {valid")}
		require.Error(t, cmd.Run(deps))
		assert.Contains(t, stderr.String(), "invalid YAML")
		assert.Empty(t, stdout.String())
	})

	t.Run("reports missing file", func(t *testing.T) {
		t.Parallel()

		deps := testDeps(&bytes.Buffer{}, &bytes.Buffer{})

		cmd := &main.ImportCmd{File: filepath.Join(t.TempDir(), "nope.yaml")}
		require.Error(t, cmd.Run(deps))
	})
}
