package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/htmlsitemap"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ htmlsitemap.ConfigService = (*ConfigService)(nil)

// ConfigService implements htmlsitemap.ConfigService using SQLite.
type ConfigService struct {
	db *DB
}

// NewConfigService creates a new ConfigService.
func NewConfigService(db *DB) *ConfigService {
	return &ConfigService{db: db}
}

// CreateConfig creates a new config.
func (s *ConfigService) CreateConfig(ctx context.Context, cfg *htmlsitemap.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	cfg.ID = uuid.New().String()
	now := time.Now().UTC()
	cfg.CreatedAt = now
	cfg.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sitemap_configs (id, min_depth, max_depth, in_navigation, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, cfg.ID, cfg.MinDepth, nullInt(cfg.MaxDepth), nullBool(cfg.InNavigation),
		cfg.CreatedAt.Format(time.RFC3339), cfg.UpdatedAt.Format(time.RFC3339))

	return err
}

const configColumns = "id, min_depth, max_depth, in_navigation, created_at, updated_at"

// FindConfigByID retrieves a config by ID.
func (s *ConfigService) FindConfigByID(ctx context.Context, id string) (*htmlsitemap.Config, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+configColumns+" FROM sitemap_configs WHERE id = ?", id)
	cfg, err := scanConfig(row)
	if err == sql.ErrNoRows {
		return nil, htmlsitemap.Errorf(htmlsitemap.ENOTFOUND, "config not found")
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfigs retrieves configs matching the filter, oldest first.
func (s *ConfigService) FindConfigs(ctx context.Context, filter htmlsitemap.ConfigFilter) ([]*htmlsitemap.Config, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + configColumns + " FROM sitemap_configs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}

	query.WriteString(" ORDER BY created_at ASC, id ASC")

	// SQLite requires LIMIT before OFFSET.
	if filter.Limit <= 0 && filter.Offset > 0 {
		query.WriteString(" LIMIT -1")
	}
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var configs []*htmlsitemap.Config
	for rows.Next() {
		cfg, err := scanConfig(rows)
		if err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}

	return configs, rows.Err()
}

// UpdateConfig updates an existing config.
func (s *ConfigService) UpdateConfig(ctx context.Context, id string, upd htmlsitemap.ConfigUpdate) (*htmlsitemap.Config, error) {
	cfg, err := s.FindConfigByID(ctx, id)
	if err != nil {
		return nil, err
	}

	upd.Apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE sitemap_configs
		SET min_depth = ?, max_depth = ?, in_navigation = ?, updated_at = ?
		WHERE id = ?
	`, cfg.MinDepth, nullInt(cfg.MaxDepth), nullBool(cfg.InNavigation),
		cfg.UpdatedAt.Format(time.RFC3339), id)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// DeleteConfig permanently removes a config.
func (s *ConfigService) DeleteConfig(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM sitemap_configs WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return htmlsitemap.Errorf(htmlsitemap.ENOTFOUND, "config not found")
	}

	return nil
}

func scanConfig(row scanner) (*htmlsitemap.Config, error) {
	var cfg htmlsitemap.Config
	var maxDepth sql.NullInt64
	var inNavigation sql.NullBool
	var createdAt, updatedAt string

	if err := row.Scan(&cfg.ID, &cfg.MinDepth, &maxDepth, &inNavigation, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	if maxDepth.Valid {
		v := int(maxDepth.Int64)
		cfg.MaxDepth = &v
	}
	if inNavigation.Valid {
		v := inNavigation.Bool
		cfg.InNavigation = &v
	}

	var err error
	if cfg.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if cfg.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &cfg, nil
}
