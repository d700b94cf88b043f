package htmlsitemap

import (
	"context"
	"time"
)

// Config is the persisted configuration of one sitemap plugin instance.
type Config struct {
	ID string `json:"id"`

	// MinDepth is the lowest tree depth included.
	MinDepth int `json:"minDepth"`

	// MaxDepth is the highest tree depth included. Nil means unbounded.
	MaxDepth *int `json:"maxDepth"`

	// InNavigation restricts the sitemap to pages whose navigation flag
	// equals the value. Nil disables the filter.
	InNavigation *bool `json:"inNavigation"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the config contains invalid fields.
// A MaxDepth below MinDepth is valid and selects no pages.
func (c *Config) Validate() error {
	if c.MinDepth < 0 {
		return Errorf(EINVALID, "minimum depth must not be negative")
	}
	if c.MaxDepth != nil && *c.MaxDepth < 0 {
		return Errorf(EINVALID, "maximum depth must not be negative")
	}
	return nil
}

// Empty reports whether the depth bounds exclude every page.
func (c *Config) Empty() bool {
	return c.MaxDepth != nil && *c.MaxDepth < c.MinDepth
}

func (c *Config) String() string {
	return "HTML Sitemap #" + c.ID
}

// ConfigService represents a service for managing sitemap configs.
type ConfigService interface {
	// CreateConfig creates a new config.
	CreateConfig(ctx context.Context, cfg *Config) error

	// FindConfigByID retrieves a config by ID.
	// Returns ENOTFOUND if config does not exist.
	FindConfigByID(ctx context.Context, id string) (*Config, error)

	// FindConfigs retrieves configs matching the filter.
	FindConfigs(ctx context.Context, filter ConfigFilter) ([]*Config, error)

	// UpdateConfig updates an existing config.
	// Returns ENOTFOUND if config does not exist.
	UpdateConfig(ctx context.Context, id string, upd ConfigUpdate) (*Config, error)

	// DeleteConfig permanently removes a config.
	// Returns ENOTFOUND if config does not exist.
	DeleteConfig(ctx context.Context, id string) error
}

// ConfigFilter represents a filter for FindConfigs.
type ConfigFilter struct {
	ID *string `json:"id"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ConfigUpdate represents fields that can be updated on a config.
// The Clear flags reset the optional fields to unset and win over the
// corresponding values.
type ConfigUpdate struct {
	MinDepth          *int  `json:"minDepth"`
	MaxDepth          *int  `json:"maxDepth"`
	ClearMaxDepth     bool  `json:"clearMaxDepth"`
	InNavigation      *bool `json:"inNavigation"`
	ClearInNavigation bool  `json:"clearInNavigation"`
}

// Apply copies the update onto cfg.
func (u ConfigUpdate) Apply(cfg *Config) {
	if u.MinDepth != nil {
		cfg.MinDepth = *u.MinDepth
	}
	if u.MaxDepth != nil {
		v := *u.MaxDepth
		cfg.MaxDepth = &v
	}
	if u.ClearMaxDepth {
		cfg.MaxDepth = nil
	}
	if u.InNavigation != nil {
		v := *u.InNavigation
		cfg.InNavigation = &v
	}
	if u.ClearInNavigation {
		cfg.InNavigation = nil
	}
}
