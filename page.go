package htmlsitemap

import (
	"context"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// PathStepLen is the number of characters each tree level adds to Page.Path.
const PathStepLen = 4

// Page represents a node in a site's content tree.
type Page struct {
	ID       string `json:"id"`
	SiteID   string `json:"siteId"`
	ParentID string `json:"parentId,omitempty"`

	// Path is the materialized tree position. Every level adds PathStepLen
	// characters, so ordering by Path yields a pre-order traversal.
	Path string `json:"path"`

	// Depth is the distance from the top of the tree. Top-level pages have depth 1.
	Depth int `json:"depth"`

	Published     bool `json:"published"`
	LoginRequired bool `json:"loginRequired"`
	InNavigation  bool `json:"inNavigation"`
	IsHome        bool `json:"isHome"`

	// Titles holds the localized titles keyed by language code.
	Titles map[string]Title `json:"titles"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the page contains invalid fields.
func (p *Page) Validate() error {
	if p.SiteID == "" {
		return Errorf(EINVALID, "page site ID required")
	}
	if len(p.Titles) == 0 {
		return Errorf(EINVALID, "page requires at least one title")
	}
	for lang, t := range p.Titles {
		if lang == "" {
			return Errorf(EINVALID, "page title language required")
		}
		if strings.TrimSpace(t.Title) == "" {
			return Errorf(EINVALID, "page title required for language %q", lang)
		}
	}
	return nil
}

// Title returns the page's title in the given language.
func (p *Page) Title(language string) (Title, bool) {
	t, ok := p.Titles[language]
	return t, ok
}

// IsAncestorOf reports whether p is a proper ancestor of other.
func (p *Page) IsAncestorOf(other *Page) bool {
	return len(other.Path) > len(p.Path) && strings.HasPrefix(other.Path, p.Path)
}

// Title is the language-specific part of a page.
type Title struct {
	Language string `json:"language"`
	Title    string `json:"title"`
	Slug     string `json:"slug"`

	// Path is the URL path without surrounding slashes. The home page has an
	// empty path.
	Path string `json:"path"`
}

// URL returns the absolute URL path of the title.
func (t Title) URL() string {
	path := strings.Trim(t.Path, "/")
	if path == "" {
		return "/"
	}
	return "/" + path + "/"
}

// PageService represents a service for reading the page tree.
type PageService interface {
	// CreatePage inserts a page below page.ParentID, or at the top level
	// when ParentID is empty. Path, Depth and missing title paths are computed.
	// Returns ENOTFOUND if the parent does not exist.
	CreatePage(ctx context.Context, page *Page) error

	// FindPageByID retrieves a page by ID.
	// Returns ENOTFOUND if page does not exist.
	FindPageByID(ctx context.Context, id string) (*Page, error)

	// FindPages retrieves pages matching the filter ordered by path.
	FindPages(ctx context.Context, filter PageFilter) ([]*Page, error)
}

// PageFilter represents a filter for FindPages.
// Nil fields do not restrict the result.
type PageFilter struct {
	SiteID        *string `json:"siteId"`
	Language      *string `json:"language"`
	MinDepth      *int    `json:"minDepth"`
	MaxDepth      *int    `json:"maxDepth"`
	InNavigation  *bool   `json:"inNavigation"`
	Published     *bool   `json:"published"`
	LoginRequired *bool   `json:"loginRequired"`
}

// NewPageFilter returns the page filter selecting the pages a sitemap
// config shows for a request.
func NewPageFilter(cfg *Config, req Request) PageFilter {
	published := true
	minDepth := cfg.MinDepth
	filter := PageFilter{
		SiteID:    &req.SiteID,
		Language:  &req.Language,
		MinDepth:  &minDepth,
		Published: &published,
	}
	if cfg.MaxDepth != nil {
		maxDepth := *cfg.MaxDepth
		filter.MaxDepth = &maxDepth
	}
	if cfg.InNavigation != nil {
		inNav := *cfg.InNavigation
		filter.InNavigation = &inNav
	}
	if !req.Viewer.Authenticated {
		loginRequired := false
		filter.LoginRequired = &loginRequired
	}
	return filter
}

// Match returns true if the page passes the filter.
// If the filter is nil, all pages pass.
func (f *PageFilter) Match(p *Page) bool {
	if f == nil {
		return true
	}
	if f.SiteID != nil && p.SiteID != *f.SiteID {
		return false
	}
	if f.MinDepth != nil && p.Depth < *f.MinDepth {
		return false
	}
	if f.MaxDepth != nil && p.Depth > *f.MaxDepth {
		return false
	}
	if f.InNavigation != nil && p.InNavigation != *f.InNavigation {
		return false
	}
	if f.Published != nil && p.Published != *f.Published {
		return false
	}
	if f.LoginRequired != nil && p.LoginRequired != *f.LoginRequired {
		return false
	}
	if f.Language != nil {
		if _, ok := p.Titles[*f.Language]; !ok {
			return false
		}
	}
	return true
}

// Slugify converts a title into a URL slug: lowercase ASCII letters and
// digits separated by single hyphens.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}

	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(stripped) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if hyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			hyphen = false
			b.WriteRune(r)
		default:
			hyphen = true
		}
	}
	return b.String()
}
