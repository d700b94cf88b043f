package mock

import (
	"context"

	"github.com/fwojciec/htmlsitemap"
)

var _ htmlsitemap.PageService = (*PageService)(nil)

// PageService is a mock implementation of htmlsitemap.PageService.
type PageService struct {
	CreatePageFn   func(ctx context.Context, page *htmlsitemap.Page) error
	FindPageByIDFn func(ctx context.Context, id string) (*htmlsitemap.Page, error)
	FindPagesFn    func(ctx context.Context, filter htmlsitemap.PageFilter) ([]*htmlsitemap.Page, error)
}

func (s *PageService) CreatePage(ctx context.Context, page *htmlsitemap.Page) error {
	return s.CreatePageFn(ctx, page)
}

func (s *PageService) FindPageByID(ctx context.Context, id string) (*htmlsitemap.Page, error) {
	return s.FindPageByIDFn(ctx, id)
}

func (s *PageService) FindPages(ctx context.Context, filter htmlsitemap.PageFilter) ([]*htmlsitemap.Page, error) {
	return s.FindPagesFn(ctx, filter)
}
