package sitemap

import (
	"context"
	"io"

	"github.com/fwojciec/htmlsitemap"
)

var _ htmlsitemap.RenderService = (*Plugin)(nil)

// Plugin renders stored sitemap configs. It is the unit a page embeds: one
// config row, rendered for the current request.
type Plugin struct {
	Configs   htmlsitemap.ConfigService
	Sitemaps  htmlsitemap.SitemapService
	Renderers map[htmlsitemap.Format]htmlsitemap.Renderer
}

// RenderSitemap loads the config with configID and renders it.
func (p *Plugin) RenderSitemap(ctx context.Context, w io.Writer, configID string, req htmlsitemap.Request, format htmlsitemap.Format) error {
	cfg, err := p.Configs.FindConfigByID(ctx, configID)
	if err != nil {
		return err
	}
	return p.RenderConfig(ctx, w, cfg, req, format)
}

// RenderConfig renders cfg without loading it from the store.
func (p *Plugin) RenderConfig(ctx context.Context, w io.Writer, cfg *htmlsitemap.Config, req htmlsitemap.Request, format htmlsitemap.Format) error {
	renderer, ok := p.Renderers[format]
	if !ok {
		return htmlsitemap.Errorf(htmlsitemap.EINVALID, "unsupported format %q", format)
	}

	pages, err := p.Sitemaps.SelectPages(ctx, cfg, req)
	if err != nil {
		return err
	}

	return renderer.Render(w, pages)
}
