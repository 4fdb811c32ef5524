package mock

import (
	"context"

	"github.com/fwojciec/newswire"
)

var _ newswire.ArticleService = (*ArticleService)(nil)

// ArticleService is a mock implementation of newswire.ArticleService.
type ArticleService struct {
	CreateArticleIfAbsentFn  func(ctx context.Context, article *newswire.Article) (bool, error)
	ArticleExistsFn          func(ctx context.Context, sourceName, articleURL string) (bool, error)
	FindArticlesFn           func(ctx context.Context, filter newswire.ArticleFilter) ([]*newswire.Article, error)
	DeleteArticlesBySourceFn func(ctx context.Context, sourceName string) error
}

func (s *ArticleService) CreateArticleIfAbsent(ctx context.Context, article *newswire.Article) (bool, error) {
	return s.CreateArticleIfAbsentFn(ctx, article)
}

func (s *ArticleService) ArticleExists(ctx context.Context, sourceName, articleURL string) (bool, error) {
	return s.ArticleExistsFn(ctx, sourceName, articleURL)
}

func (s *ArticleService) FindArticles(ctx context.Context, filter newswire.ArticleFilter) ([]*newswire.Article, error) {
	return s.FindArticlesFn(ctx, filter)
}

func (s *ArticleService) DeleteArticlesBySource(ctx context.Context, sourceName string) error {
	return s.DeleteArticlesBySourceFn(ctx, sourceName)
}
