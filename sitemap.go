package htmlsitemap

import (
	"context"
	"io"
	"strings"
)

// Viewer describes who is looking at the sitemap.
// The zero value is an anonymous visitor.
type Viewer struct {
	Authenticated bool `json:"authenticated"`
}

// Request carries the render context of a sitemap: the current site, the
// active language and the viewer.
type Request struct {
	SiteID   string `json:"siteId"`
	Language string `json:"language"`
	Viewer   Viewer `json:"viewer"`
}

// AnnotatedPage pairs a selected page with its position in the selection.
type AnnotatedPage struct {
	Page *Page `json:"page"`

	// Title is the page title in the request language.
	Title Title `json:"title"`

	// Level is the nesting level within the selection. Entries without a
	// selected ancestor are at level 0, whatever their tree depth.
	Level int `json:"level"`

	// Open is set when the entry starts a new list level.
	Open bool `json:"open"`

	// Close is the number of list levels closed after the entry. The last
	// entry also closes the outermost list.
	Close int `json:"close"`

	// Last is set when no later sibling follows at the same level.
	Last bool `json:"last"`
}

// Annotate computes the nesting information of pages, which must be ordered
// by path. A page nests under its nearest ancestor present in pages; pages
// whose ancestors are absent are lifted to that ancestor's level.
func Annotate(pages []*Page, language string) []AnnotatedPage {
	result := make([]AnnotatedPage, 0, len(pages))

	// Selected ancestors of the current page, outermost first.
	var stack []*Page
	for i, p := range pages {
		for len(stack) > 0 && !stack[len(stack)-1].IsAncestorOf(p) {
			stack = stack[:len(stack)-1]
		}
		title, _ := p.Title(language)
		a := AnnotatedPage{
			Page:  p,
			Title: title,
			Level: len(stack),
		}
		a.Open = i == 0 || a.Level > result[i-1].Level
		result = append(result, a)
		stack = append(stack, p)
	}

	for i := range result {
		next := -1
		if i+1 < len(result) {
			next = result[i+1].Level
		}
		if d := result[i].Level - next; d > 0 {
			result[i].Close = d
		}
	}

	// Walk backwards remembering which levels already have a later sibling.
	var seen []bool
	for i := len(result) - 1; i >= 0; i-- {
		level := result[i].Level
		for len(seen) <= level {
			seen = append(seen, false)
		}
		result[i].Last = !seen[level]
		seen[level] = true
		seen = seen[:level+1]
	}

	return result
}

// SitemapService selects the pages shown by a sitemap.
type SitemapService interface {
	// SelectPages returns the published pages of req.SiteID matching cfg,
	// ordered by path and annotated for rendering. A config whose maximum
	// depth is below its minimum depth selects nothing.
	SelectPages(ctx context.Context, cfg *Config, req Request) ([]AnnotatedPage, error)
}

// Renderer writes an annotated page sequence in an output format.
type Renderer interface {
	Render(w io.Writer, pages []AnnotatedPage) error
}

// Format names a sitemap output format.
type Format string

// Supported output formats.
const (
	FormatHTML     Format = "html"
	FormatXML      Format = "xml"
	FormatMarkdown Format = "markdown"
)

// ParseFormat returns the format named s. The empty string is FormatHTML.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatHTML, nil
	case FormatHTML, FormatXML, FormatMarkdown:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", Errorf(EINVALID, "unknown format %q", s)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatXML:
		return "application/xml; charset=utf-8"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	default:
		return "text/html; charset=utf-8"
	}
}

// RenderService renders the sitemap of a stored config.
type RenderService interface {
	// RenderSitemap loads the config, selects its pages and writes them in
	// the given format. Returns ENOTFOUND if the config does not exist.
	RenderSitemap(ctx context.Context, w io.Writer, configID string, req Request, format Format) error
}
