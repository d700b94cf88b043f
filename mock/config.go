package mock

import (
	"context"

	"github.com/fwojciec/htmlsitemap"
)

var _ htmlsitemap.ConfigService = (*ConfigService)(nil)

// ConfigService is a mock implementation of htmlsitemap.ConfigService.
type ConfigService struct {
	CreateConfigFn   func(ctx context.Context, cfg *htmlsitemap.Config) error
	FindConfigByIDFn func(ctx context.Context, id string) (*htmlsitemap.Config, error)
	FindConfigsFn    func(ctx context.Context, filter htmlsitemap.ConfigFilter) ([]*htmlsitemap.Config, error)
	UpdateConfigFn   func(ctx context.Context, id string, upd htmlsitemap.ConfigUpdate) (*htmlsitemap.Config, error)
	DeleteConfigFn   func(ctx context.Context, id string) error
}

func (s *ConfigService) CreateConfig(ctx context.Context, cfg *htmlsitemap.Config) error {
	return s.CreateConfigFn(ctx, cfg)
}

func (s *ConfigService) FindConfigByID(ctx context.Context, id string) (*htmlsitemap.Config, error) {
	return s.FindConfigByIDFn(ctx, id)
}

func (s *ConfigService) FindConfigs(ctx context.Context, filter htmlsitemap.ConfigFilter) ([]*htmlsitemap.Config, error) {
	return s.FindConfigsFn(ctx, filter)
}

func (s *ConfigService) UpdateConfig(ctx context.Context, id string, upd htmlsitemap.ConfigUpdate) (*htmlsitemap.Config, error) {
	return s.UpdateConfigFn(ctx, id, upd)
}

func (s *ConfigService) DeleteConfig(ctx context.Context, id string) error {
	return s.DeleteConfigFn(ctx, id)
}
