// Package html renders sitemaps as nested HTML lists.
package html

import (
	"io"

	"github.com/fwojciec/htmlsitemap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RootID is the id attribute of the element wrapping the sitemap.
const RootID = "sitemap"

// Ensure Renderer implements htmlsitemap.Renderer at compile time.
var _ htmlsitemap.Renderer = (*Renderer)(nil)

// Renderer writes a sitemap as a <div id="sitemap"> holding nested
// <ul>/<li> lists of links. A nested list lives inside the <li> of the
// page it belongs to.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render writes pages as an HTML fragment without whitespace between tags.
// An empty sequence renders an empty list.
func (r *Renderer) Render(w io.Writer, pages []htmlsitemap.AnnotatedPage) error {
	return html.Render(w, Build(pages))
}

// Build returns the node tree of the sitemap.
func Build(pages []htmlsitemap.AnnotatedPage) *html.Node {
	root := element(atom.Div, html.Attribute{Key: "id", Val: RootID})
	top := element(atom.Ul)
	root.AppendChild(top)

	// lists[n] is the open list at level n.
	lists := []*html.Node{top}
	var item *html.Node
	for _, p := range pages {
		if p.Level >= len(lists) && item != nil {
			nested := element(atom.Ul)
			item.AppendChild(nested)
			lists = append(lists, nested)
		}
		level := min(p.Level, len(lists)-1)
		lists = lists[:level+1]

		link := element(atom.A,
			html.Attribute{Key: "href", Val: p.Title.URL()},
			html.Attribute{Key: "title", Val: p.Title.Title},
		)
		link.AppendChild(&html.Node{Type: html.TextNode, Data: p.Title.Title})

		item = element(atom.Li)
		item.AppendChild(link)
		lists[level].AppendChild(item)
	}

	return root
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}
