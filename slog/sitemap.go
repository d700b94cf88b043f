// Package slog provides log/slog decorators for htmlsitemap services.
package slog

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/htmlsitemap"
)

// Ensure LoggingSitemapService implements htmlsitemap.SitemapService.
var _ htmlsitemap.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService with debug logging.
type LoggingSitemapService struct {
	next   htmlsitemap.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next htmlsitemap.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// SelectPages delegates to the wrapped service and logs the operation.
func (s *LoggingSitemapService) SelectPages(ctx context.Context, cfg *htmlsitemap.Config, req htmlsitemap.Request) (pages []htmlsitemap.AnnotatedPage, err error) {
	defer func(begin time.Time) {
		s.logger.Info("sitemap selection",
			"config", cfg.ID,
			"site", req.SiteID,
			"language", req.Language,
			"authenticated", req.Viewer.Authenticated,
			"count", len(pages),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SelectPages(ctx, cfg, req)
}

// Ensure LoggingRenderService implements htmlsitemap.RenderService.
var _ htmlsitemap.RenderService = (*LoggingRenderService)(nil)

// LoggingRenderService wraps a RenderService with debug logging.
type LoggingRenderService struct {
	next   htmlsitemap.RenderService
	logger *slog.Logger
}

// NewLoggingRenderService creates a new LoggingRenderService.
func NewLoggingRenderService(next htmlsitemap.RenderService, logger *slog.Logger) *LoggingRenderService {
	return &LoggingRenderService{next: next, logger: logger}
}

// RenderSitemap delegates to the wrapped service and logs the operation.
func (s *LoggingRenderService) RenderSitemap(ctx context.Context, w io.Writer, configID string, req htmlsitemap.Request, format htmlsitemap.Format) (err error) {
	cw := &countingWriter{w: w}
	defer func(begin time.Time) {
		s.logger.Info("sitemap render",
			"config", configID,
			"format", string(format),
			"language", req.Language,
			"bytes", cw.n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.RenderSitemap(ctx, cw, configID, req, format)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
