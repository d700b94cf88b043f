package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/htmlsitemap"
)

// Ensure LoggingPageService implements htmlsitemap.PageService.
var _ htmlsitemap.PageService = (*LoggingPageService)(nil)

// LoggingPageService wraps a PageService with debug logging.
type LoggingPageService struct {
	next   htmlsitemap.PageService
	logger *slog.Logger
}

// NewLoggingPageService creates a new LoggingPageService.
func NewLoggingPageService(next htmlsitemap.PageService, logger *slog.Logger) *LoggingPageService {
	return &LoggingPageService{next: next, logger: logger}
}

// CreatePage delegates to the wrapped service and logs the created page.
func (s *LoggingPageService) CreatePage(ctx context.Context, page *htmlsitemap.Page) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("page create",
			"id", page.ID,
			"site", page.SiteID,
			"path", page.Path,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreatePage(ctx, page)
}

// FindPageByID delegates to the wrapped service.
func (s *LoggingPageService) FindPageByID(ctx context.Context, id string) (*htmlsitemap.Page, error) {
	return s.next.FindPageByID(ctx, id)
}

// FindPages delegates to the wrapped service and logs the query.
func (s *LoggingPageService) FindPages(ctx context.Context, filter htmlsitemap.PageFilter) (pages []*htmlsitemap.Page, err error) {
	defer func(begin time.Time) {
		s.logger.Info("page query",
			"count", len(pages),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindPages(ctx, filter)
}
