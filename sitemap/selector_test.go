package sitemap_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/htmlsitemap"
	"github.com/fwojciec/htmlsitemap/mock"
	"github.com/fwojciec/htmlsitemap/sitemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func memPage(id, path string, inNav bool) *htmlsitemap.Page {
	return &htmlsitemap.Page{
		ID:           id,
		SiteID:       "site-1",
		Path:         path,
		Depth:        len(path) / htmlsitemap.PathStepLen,
		Published:    true,
		InNavigation: inNav,
		Titles: map[string]htmlsitemap.Title{
			"en": {Language: "en", Title: id, Path: id},
		},
	}
}

// memTree mirrors the eight page fixture of the integration tests.
func memTree() []*htmlsitemap.Page {
	return []*htmlsitemap.Page{
		memPage("index", "0000", true),
		memPage("d2p1", "00000000", true),
		memPage("d2p2", "00000001", false),
		memPage("d3p1", "000000010000", false),
		memPage("d3p2", "000000010001", false),
		memPage("d2p3", "00000002", false),
		memPage("d2p4", "00000003", false),
		memPage("d3p3", "000000030000", false),
	}
}

// storeOf returns a page service answering FindPages from pages in memory.
func storeOf(pages []*htmlsitemap.Page) *mock.PageService {
	return &mock.PageService{
		FindPagesFn: func(_ context.Context, filter htmlsitemap.PageFilter) ([]*htmlsitemap.Page, error) {
			var out []*htmlsitemap.Page
			for _, p := range pages {
				if filter.Match(p) {
					out = append(out, p)
				}
			}
			return out, nil
		},
	}
}

func ids(pages []htmlsitemap.AnnotatedPage) []string {
	out := make([]string, 0, len(pages))
	for _, p := range pages {
		out = append(out, p.Page.ID)
	}
	return out
}

var enRequest = htmlsitemap.Request{SiteID: "site-1", Language: "en"}

func TestSelector_SelectPages(t *testing.T) {
	t.Parallel()

	t.Run("returns empty result without querying when max depth is below min depth", func(t *testing.T) {
		t.Parallel()

		pages := &mock.PageService{
			FindPagesFn: func(_ context.Context, _ htmlsitemap.PageFilter) ([]*htmlsitemap.Page, error) {
				t.Fatal("FindPages must not be called")
				return nil, nil
			},
		}

		result, err := sitemap.NewSelector(pages).SelectPages(context.Background(), &htmlsitemap.Config{MinDepth: 3, MaxDepth: ptr(2)}, enRequest)

		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result)
	})

	t.Run("max depth zero is a bound, not unset", func(t *testing.T) {
		t.Parallel()

		svc := sitemap.NewSelector(storeOf(memTree()))

		bounded, err := svc.SelectPages(context.Background(), &htmlsitemap.Config{MaxDepth: ptr(0)}, enRequest)
		require.NoError(t, err)
		assert.NotNil(t, bounded)
		assert.Empty(t, bounded)

		unbounded, err := svc.SelectPages(context.Background(), &htmlsitemap.Config{}, enRequest)
		require.NoError(t, err)
		assert.Len(t, unbounded, 8)
	})

	t.Run("passes the config and request to the store", func(t *testing.T) {
		t.Parallel()

		var got htmlsitemap.PageFilter
		pages := &mock.PageService{
			FindPagesFn: func(_ context.Context, filter htmlsitemap.PageFilter) ([]*htmlsitemap.Page, error) {
				got = filter
				return nil, nil
			},
		}

		cfg := &htmlsitemap.Config{MinDepth: 1, MaxDepth: ptr(4), InNavigation: ptr(true)}
		_, err := sitemap.NewSelector(pages).SelectPages(context.Background(), cfg, enRequest)

		require.NoError(t, err)
		assert.Equal(t, "site-1", *got.SiteID)
		assert.Equal(t, "en", *got.Language)
		assert.Equal(t, 1, *got.MinDepth)
		assert.Equal(t, 4, *got.MaxDepth)
		assert.True(t, *got.InNavigation)
		assert.True(t, *got.Published)
		assert.False(t, *got.LoginRequired)
	})

	t.Run("propagates store errors unmodified", func(t *testing.T) {
		t.Parallel()

		storeErr := errors.New("database is locked")
		pages := &mock.PageService{
			FindPagesFn: func(_ context.Context, _ htmlsitemap.PageFilter) ([]*htmlsitemap.Page, error) {
				return nil, storeErr
			},
		}

		_, err := sitemap.NewSelector(pages).SelectPages(context.Background(), &htmlsitemap.Config{}, enRequest)

		assert.Same(t, storeErr, err)
	})

	t.Run("deduplicates and orders store rows", func(t *testing.T) {
		t.Parallel()

		tree := memTree()
		pages := &mock.PageService{
			FindPagesFn: func(_ context.Context, _ htmlsitemap.PageFilter) ([]*htmlsitemap.Page, error) {
				return []*htmlsitemap.Page{tree[2], tree[0], tree[2], tree[3], tree[0]}, nil
			},
		}

		result, err := sitemap.NewSelector(pages).SelectPages(context.Background(), &htmlsitemap.Config{}, enRequest)

		require.NoError(t, err)
		assert.Equal(t, []string{"index", "d2p2", "d3p1"}, ids(result))
	})

	t.Run("drops rows the store should have filtered", func(t *testing.T) {
		t.Parallel()

		tree := memTree()
		draft := memPage("draft", "00000004", false)
		draft.Published = false
		pages := &mock.PageService{
			FindPagesFn: func(_ context.Context, _ htmlsitemap.PageFilter) ([]*htmlsitemap.Page, error) {
				return append(tree, draft), nil
			},
		}

		result, err := sitemap.NewSelector(pages).SelectPages(context.Background(), &htmlsitemap.Config{MinDepth: 3}, enRequest)

		require.NoError(t, err)
		assert.Equal(t, []string{"d3p1", "d3p2", "d3p3"}, ids(result))
	})

	t.Run("anonymous viewers do not see login-gated pages", func(t *testing.T) {
		t.Parallel()

		tree := memTree()
		tree[2].LoginRequired = true
		svc := sitemap.NewSelector(storeOf(tree))

		anonymous, err := svc.SelectPages(context.Background(), &htmlsitemap.Config{}, enRequest)
		require.NoError(t, err)
		assert.NotContains(t, ids(anonymous), "d2p2")
		// Children of a gated page stay visible and are flattened.
		assert.Contains(t, ids(anonymous), "d3p1")

		req := enRequest
		req.Viewer.Authenticated = true
		authenticated, err := svc.SelectPages(context.Background(), &htmlsitemap.Config{}, req)
		require.NoError(t, err)
		assert.Contains(t, ids(authenticated), "d2p2")
	})
}

func TestSelector_Properties(t *testing.T) {
	t.Parallel()

	tree := memTree()
	svc := sitemap.NewSelector(storeOf(tree))
	preorder := make(map[string]int, len(tree))
	for i, p := range tree {
		preorder[p.ID] = i
	}

	var configs []*htmlsitemap.Config
	navs := []*bool{nil, ptr(true), ptr(false)}
	for minDepth := 0; minDepth <= 4; minDepth++ {
		for _, maxDepth := range []*int{nil, ptr(0), ptr(1), ptr(2), ptr(3), ptr(4)} {
			for _, nav := range navs {
				configs = append(configs, &htmlsitemap.Config{MinDepth: minDepth, MaxDepth: maxDepth, InNavigation: nav})
			}
		}
	}

	for _, cfg := range configs {
		result, err := svc.SelectPages(context.Background(), cfg, enRequest)
		require.NoError(t, err)

		if cfg.Empty() {
			assert.Empty(t, result)
			continue
		}

		seen := make(map[string]bool)
		last := -1
		for _, p := range result {
			assert.GreaterOrEqual(t, p.Page.Depth, cfg.MinDepth)
			if cfg.MaxDepth != nil {
				assert.LessOrEqual(t, p.Page.Depth, *cfg.MaxDepth)
			}
			if cfg.InNavigation != nil {
				assert.Equal(t, *cfg.InNavigation, p.Page.InNavigation)
			}
			assert.False(t, seen[p.Page.ID], "duplicate %s", p.Page.ID)
			seen[p.Page.ID] = true
			assert.Greater(t, preorder[p.Page.ID], last, "pre-order violated")
			last = preorder[p.Page.ID]
		}

		// Every page that matches is selected.
		filter := htmlsitemap.NewPageFilter(cfg, enRequest)
		for _, p := range tree {
			assert.Equal(t, filter.Match(p), seen[p.ID], "page %s", p.ID)
		}
	}
}
