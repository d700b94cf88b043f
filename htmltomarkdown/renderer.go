// Package htmltomarkdown renders sitemaps as nested Markdown lists.
package htmltomarkdown

import (
	"bytes"
	"io"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/fwojciec/htmlsitemap"
)

// Ensure Renderer implements htmlsitemap.Renderer at compile time.
var _ htmlsitemap.Renderer = (*Renderer)(nil)

// Renderer converts the output of an HTML renderer to Markdown.
type Renderer struct {
	html htmlsitemap.Renderer
	conv *converter.Converter
}

// NewRenderer creates a new Renderer converting the output of html.
func NewRenderer(html htmlsitemap.Renderer) *Renderer {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithBulletListMarker("-"),
			),
		),
	)
	return &Renderer{html: html, conv: conv}
}

// Render writes pages as a Markdown list of links followed by a newline.
// An empty sequence writes nothing.
func (r *Renderer) Render(w io.Writer, pages []htmlsitemap.AnnotatedPage) error {
	var buf bytes.Buffer
	if err := r.html.Render(&buf, pages); err != nil {
		return err
	}

	md, err := r.conv.ConvertString(buf.String())
	if err != nil {
		return err
	}

	md = strings.TrimSpace(md)
	if md == "" {
		return nil
	}
	_, err = io.WriteString(w, md+"\n")
	return err
}
