package mock

import (
	"context"
	"io"

	"github.com/fwojciec/htmlsitemap"
)

var _ htmlsitemap.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of htmlsitemap.SitemapService.
type SitemapService struct {
	SelectPagesFn func(ctx context.Context, cfg *htmlsitemap.Config, req htmlsitemap.Request) ([]htmlsitemap.AnnotatedPage, error)
}

func (s *SitemapService) SelectPages(ctx context.Context, cfg *htmlsitemap.Config, req htmlsitemap.Request) ([]htmlsitemap.AnnotatedPage, error) {
	return s.SelectPagesFn(ctx, cfg, req)
}

var _ htmlsitemap.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of htmlsitemap.Renderer.
type Renderer struct {
	RenderFn func(w io.Writer, pages []htmlsitemap.AnnotatedPage) error
}

func (r *Renderer) Render(w io.Writer, pages []htmlsitemap.AnnotatedPage) error {
	return r.RenderFn(w, pages)
}

var _ htmlsitemap.RenderService = (*RenderService)(nil)

// RenderService is a mock implementation of htmlsitemap.RenderService.
type RenderService struct {
	RenderSitemapFn func(ctx context.Context, w io.Writer, configID string, req htmlsitemap.Request, format htmlsitemap.Format) error
}

func (s *RenderService) RenderSitemap(ctx context.Context, w io.Writer, configID string, req htmlsitemap.Request, format htmlsitemap.Format) error {
	return s.RenderSitemapFn(ctx, w, configID, req, format)
}
