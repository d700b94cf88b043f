// Package etree renders sitemaps as sitemaps.org XML documents.
package etree

import (
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/htmlsitemap"
)

// Namespace is the sitemaps.org schema namespace of <urlset>.
const Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Ensure Renderer implements htmlsitemap.Renderer at compile time.
var _ htmlsitemap.Renderer = (*Renderer)(nil)

// Renderer writes a <urlset> with one <url> per selected page. Nesting
// does not exist in the XML format, so only the order is kept.
type Renderer struct {
	// BaseURL is prepended to every page path, e.g. https://example.com.
	BaseURL string
}

// NewRenderer creates a new Renderer producing absolute URLs below baseURL.
func NewRenderer(baseURL string) *Renderer {
	return &Renderer{BaseURL: baseURL}
}

// Render writes pages as an indented XML document.
func (r *Renderer) Render(w io.Writer, pages []htmlsitemap.AnnotatedPage) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", Namespace)

	base := strings.TrimRight(r.BaseURL, "/")
	for _, p := range pages {
		u := urlset.CreateElement("url")
		u.CreateElement("loc").SetText(base + p.Title.URL())
		if p.Page != nil && !p.Page.UpdatedAt.IsZero() {
			u.CreateElement("lastmod").SetText(p.Page.UpdatedAt.UTC().Format("2006-01-02"))
		}
	}

	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}
