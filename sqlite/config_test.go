package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/htmlsitemap"
	"github.com/fwojciec/htmlsitemap/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigService_CreateConfig(t *testing.T) {
	t.Parallel()

	t.Run("creates config with generated ID and timestamps", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewConfigService(db)

		cfg := &htmlsitemap.Config{MinDepth: 2}
		err := svc.CreateConfig(context.Background(), cfg)
		require.NoError(t, err)

		assert.NotEmpty(t, cfg.ID, "ID should be generated")
		assert.False(t, cfg.CreatedAt.IsZero(), "CreatedAt should be set")
		assert.False(t, cfg.UpdatedAt.IsZero(), "UpdatedAt should be set")
	})

	t.Run("returns error for invalid config", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewConfigService(db)

		err := svc.CreateConfig(context.Background(), &htmlsitemap.Config{MinDepth: -1})
		require.Error(t, err)
		assert.Equal(t, htmlsitemap.EINVALID, htmlsitemap.ErrorCode(err))
	})
}

func TestConfigService_FindConfigByID(t *testing.T) {
	t.Parallel()

	t.Run("round-trips unset optional fields", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewConfigService(db)
		ctx := context.Background()

		cfg := &htmlsitemap.Config{}
		require.NoError(t, svc.CreateConfig(ctx, cfg))

		found, err := svc.FindConfigByID(ctx, cfg.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, found.MinDepth)
		assert.Nil(t, found.MaxDepth)
		assert.Nil(t, found.InNavigation)
	})

	t.Run("round-trips set optional fields", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewConfigService(db)
		ctx := context.Background()

		cfg := &htmlsitemap.Config{MinDepth: 1, MaxDepth: ptr(3), InNavigation: ptr(false)}
		require.NoError(t, svc.CreateConfig(ctx, cfg))

		found, err := svc.FindConfigByID(ctx, cfg.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, found.MinDepth)
		require.NotNil(t, found.MaxDepth)
		assert.Equal(t, 3, *found.MaxDepth)
		require.NotNil(t, found.InNavigation)
		assert.False(t, *found.InNavigation)
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewConfigService(db)

		_, err := svc.FindConfigByID(context.Background(), "nonexistent-id")
		require.Error(t, err)
		assert.Equal(t, htmlsitemap.ENOTFOUND, htmlsitemap.ErrorCode(err))
	})
}

func TestConfigService_FindConfigs(t *testing.T) {
	t.Parallel()

	t.Run("returns all configs with empty filter", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewConfigService(db)
		ctx := context.Background()

		for i := 0; i < 3; i++ {
			require.NoError(t, svc.CreateConfig(ctx, &htmlsitemap.Config{MinDepth: i}))
		}

		configs, err := svc.FindConfigs(ctx, htmlsitemap.ConfigFilter{})
		require.NoError(t, err)
		assert.Len(t, configs, 3)
	})

	t.Run("filters by ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewConfigService(db)
		ctx := context.Background()

		a := &htmlsitemap.Config{}
		b := &htmlsitemap.Config{MinDepth: 2}
		require.NoError(t, svc.CreateConfig(ctx, a))
		require.NoError(t, svc.CreateConfig(ctx, b))

		configs, err := svc.FindConfigs(ctx, htmlsitemap.ConfigFilter{ID: &b.ID})
		require.NoError(t, err)
		require.Len(t, configs, 1)
		assert.Equal(t, 2, configs[0].MinDepth)
	})

	t.Run("respects limit and offset", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewConfigService(db)
		ctx := context.Background()

		for i := 0; i < 5; i++ {
			require.NoError(t, svc.CreateConfig(ctx, &htmlsitemap.Config{MinDepth: i}))
		}

		configs, err := svc.FindConfigs(ctx, htmlsitemap.ConfigFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, configs, 2)

		configs, err = svc.FindConfigs(ctx, htmlsitemap.ConfigFilter{Offset: 3})
		require.NoError(t, err)
		assert.Len(t, configs, 2)
	})
}

func TestConfigService_UpdateConfig(t *testing.T) {
	t.Parallel()

	t.Run("updates and clears fields", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewConfigService(db)
		ctx := context.Background()

		cfg := &htmlsitemap.Config{MaxDepth: ptr(2), InNavigation: ptr(true)}
		require.NoError(t, svc.CreateConfig(ctx, cfg))

		updated, err := svc.UpdateConfig(ctx, cfg.ID, htmlsitemap.ConfigUpdate{
			MinDepth:          ptr(1),
			ClearMaxDepth:     true,
			ClearInNavigation: true,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, updated.MinDepth)
		assert.Nil(t, updated.MaxDepth)
		assert.Nil(t, updated.InNavigation)

		found, err := svc.FindConfigByID(ctx, cfg.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, found.MinDepth)
		assert.Nil(t, found.MaxDepth)
		assert.Nil(t, found.InNavigation)
	})

	t.Run("returns EINVALID for invalid result", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewConfigService(db)
		ctx := context.Background()

		cfg := &htmlsitemap.Config{}
		require.NoError(t, svc.CreateConfig(ctx, cfg))

		_, err := svc.UpdateConfig(ctx, cfg.ID, htmlsitemap.ConfigUpdate{MaxDepth: ptr(-3)})
		assert.Equal(t, htmlsitemap.EINVALID, htmlsitemap.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for missing config", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewConfigService(db)

		_, err := svc.UpdateConfig(context.Background(), "missing", htmlsitemap.ConfigUpdate{})
		assert.Equal(t, htmlsitemap.ENOTFOUND, htmlsitemap.ErrorCode(err))
	})
}

func TestConfigService_DeleteConfig(t *testing.T) {
	t.Parallel()

	t.Run("deletes existing config", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewConfigService(db)
		ctx := context.Background()

		cfg := &htmlsitemap.Config{}
		require.NoError(t, svc.CreateConfig(ctx, cfg))
		require.NoError(t, svc.DeleteConfig(ctx, cfg.ID))

		_, err := svc.FindConfigByID(ctx, cfg.ID)
		assert.Equal(t, htmlsitemap.ENOTFOUND, htmlsitemap.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for missing config", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewConfigService(db)

		err := svc.DeleteConfig(context.Background(), "missing")
		assert.Equal(t, htmlsitemap.ENOTFOUND, htmlsitemap.ErrorCode(err))
	})
}
