package mock

import (
	"context"

	"github.com/fwojciec/newswire"
)

var _ newswire.SourceService = (*SourceService)(nil)

// SourceService is a mock implementation of newswire.SourceService.
type SourceService struct {
	CreateSourceFn     func(ctx context.Context, source *newswire.Source) error
	FindSourceByNameFn func(ctx context.Context, name string) (*newswire.Source, error)
	FindSourcesFn      func(ctx context.Context, filter newswire.SourceFilter) ([]*newswire.Source, error)
	UpdateSourceFn     func(ctx context.Context, name string, upd newswire.SourceUpdate) (*newswire.Source, error)
	DeleteSourceFn     func(ctx context.Context, name string, deleteArticles bool) error
}

func (s *SourceService) CreateSource(ctx context.Context, source *newswire.Source) error {
	return s.CreateSourceFn(ctx, source)
}

func (s *SourceService) FindSourceByName(ctx context.Context, name string) (*newswire.Source, error) {
	return s.FindSourceByNameFn(ctx, name)
}

func (s *SourceService) FindSources(ctx context.Context, filter newswire.SourceFilter) ([]*newswire.Source, error) {
	return s.FindSourcesFn(ctx, filter)
}

func (s *SourceService) UpdateSource(ctx context.Context, name string, upd newswire.SourceUpdate) (*newswire.Source, error) {
	return s.UpdateSourceFn(ctx, name, upd)
}

func (s *SourceService) DeleteSource(ctx context.Context, name string, deleteArticles bool) error {
	return s.DeleteSourceFn(ctx, name, deleteArticles)
}
