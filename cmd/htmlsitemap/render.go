package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/htmlsitemap"
	"github.com/fwojciec/htmlsitemap/etree"
	"github.com/fwojciec/htmlsitemap/fs"
	"github.com/fwojciec/htmlsitemap/html"
	"github.com/fwojciec/htmlsitemap/htmltomarkdown"
	"github.com/fwojciec/htmlsitemap/sitemap"
	logging "github.com/fwojciec/htmlsitemap/slog"
)

// Run executes the render command.
func (c *RenderCmd) Run(deps *Dependencies) error {
	format, err := htmlsitemap.ParseFormat(c.Format)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", htmlsitemap.ErrorMessage(err))
		return err
	}

	req := htmlsitemap.Request{
		SiteID:   c.Site,
		Language: c.Lang,
		Viewer:   htmlsitemap.Viewer{Authenticated: c.Authenticated},
	}

	if c.Output == "" {
		return c.render(deps, deps.Stdout, req, format)
	}

	out := fs.NewFileStore(c.Output)
	if err := c.render(deps, out, req, format); err != nil {
		_ = out.Abort()
		return err
	}
	if err := out.Commit(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	fmt.Fprintf(deps.Stderr, "Wrote %s\n", c.Output)
	return nil
}

func (c *RenderCmd) render(deps *Dependencies, w io.Writer, req htmlsitemap.Request, format htmlsitemap.Format) error {
	plugin := newPlugin(deps, c.BaseURL)

	var err error
	if c.Config != "" {
		err = newRenderService(deps, plugin).RenderSitemap(deps.Ctx, w, c.Config, req, format)
	} else {
		var cfg *htmlsitemap.Config
		if cfg, err = c.inlineConfig(); err == nil {
			err = plugin.RenderConfig(deps.Ctx, w, cfg, req, format)
		}
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", htmlsitemap.ErrorMessage(err))
		return err
	}
	return nil
}

func (c *RenderCmd) inlineConfig() (*htmlsitemap.Config, error) {
	inNav, err := parseInNavigation(c.InNavigation)
	if err != nil {
		return nil, err
	}
	cfg := &htmlsitemap.Config{
		ID:           "inline",
		MinDepth:     c.MinDepth,
		MaxDepth:     c.MaxDepth,
		InNavigation: inNav,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newPlugin wires the sitemap plugin with a renderer per format.
func newPlugin(deps *Dependencies, baseURL string) *sitemap.Plugin {
	htmlRenderer := html.NewRenderer()
	return &sitemap.Plugin{
		Configs:  deps.Configs,
		Sitemaps: deps.Sitemaps,
		Renderers: map[htmlsitemap.Format]htmlsitemap.Renderer{
			htmlsitemap.FormatHTML:     htmlRenderer,
			htmlsitemap.FormatXML:      etree.NewRenderer(baseURL),
			htmlsitemap.FormatMarkdown: htmltomarkdown.NewRenderer(htmlRenderer),
		},
	}
}

// newRenderService decorates plugin with logging when debug logging is on.
func newRenderService(deps *Dependencies, plugin *sitemap.Plugin) htmlsitemap.RenderService {
	if deps.Logger == nil {
		return plugin
	}
	return logging.NewLoggingRenderService(plugin, deps.Logger)
}
