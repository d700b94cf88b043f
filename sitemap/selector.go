// Package sitemap selects the pages of a sitemap config and renders them.
package sitemap

import (
	"context"
	"sort"

	"github.com/fwojciec/htmlsitemap"
)

var _ htmlsitemap.SitemapService = (*Selector)(nil)

// Selector implements htmlsitemap.SitemapService on top of a page store.
// It never writes to the store.
type Selector struct {
	Pages htmlsitemap.PageService
}

// NewSelector creates a new Selector reading from pages.
func NewSelector(pages htmlsitemap.PageService) *Selector {
	return &Selector{Pages: pages}
}

// SelectPages returns the pages shown by cfg for req, annotated for
// rendering. The result is never nil.
func (s *Selector) SelectPages(ctx context.Context, cfg *htmlsitemap.Config, req htmlsitemap.Request) ([]htmlsitemap.AnnotatedPage, error) {
	if cfg.Empty() {
		return []htmlsitemap.AnnotatedPage{}, nil
	}

	filter := htmlsitemap.NewPageFilter(cfg, req)
	pages, err := s.Pages.FindPages(ctx, filter)
	if err != nil {
		return nil, err
	}

	// Annotate requires distinct pages ordered by path.
	seen := make(map[string]bool, len(pages))
	selected := make([]*htmlsitemap.Page, 0, len(pages))
	for _, p := range pages {
		if seen[p.ID] || !filter.Match(p) {
			continue
		}
		seen[p.ID] = true
		selected = append(selected, p)
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Path < selected[j].Path
	})

	return htmlsitemap.Annotate(selected, req.Language), nil
}
