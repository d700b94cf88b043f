// Package yaml loads page trees from YAML documents.
//
// A document names a site and a default language and lists the top-level
// pages; every page may list children:
//
//	site: example.com
//	language: en
//	pages:
//	  - title: Index
//	    in_navigation: true
//	    titles:
//	      fr: Accueil
//	    children:
//	      - title: About
//	        slug: about-us
package yaml

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/htmlsitemap"
	"gopkg.in/yaml.v3"
)

// Document is a page tree of one site.
type Document struct {
	Site     string `yaml:"site"`
	Language string `yaml:"language"`
	Pages    []Node `yaml:"pages"`
}

// Node is one page of the tree.
type Node struct {
	// Title and Slug are in the document language.
	Title string `yaml:"title"`
	Slug  string `yaml:"slug"`

	// Titles holds titles in other languages keyed by language code.
	Titles map[string]string `yaml:"titles"`

	InNavigation  bool  `yaml:"in_navigation"`
	Published     *bool `yaml:"published"`
	LoginRequired bool  `yaml:"login_required"`

	Children []Node `yaml:"children"`
}

// Decode parses and validates a page tree document.
func Decode(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("yaml: read document: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, htmlsitemap.Errorf(htmlsitemap.EINVALID, "page tree document is empty")
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, htmlsitemap.Errorf(htmlsitemap.EINVALID, "decode page tree: %s", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if strings.TrimSpace(d.Site) == "" {
		return htmlsitemap.Errorf(htmlsitemap.EINVALID, "page tree site required")
	}
	if strings.TrimSpace(d.Language) == "" {
		return htmlsitemap.Errorf(htmlsitemap.EINVALID, "page tree language required")
	}
	return validateNodes(d.Pages, "pages")
}

func validateNodes(nodes []Node, where string) error {
	for i, n := range nodes {
		at := fmt.Sprintf("%s[%d]", where, i)
		if strings.TrimSpace(n.Title) == "" && len(n.Titles) == 0 {
			return htmlsitemap.Errorf(htmlsitemap.EINVALID, "%s: title required", at)
		}
		if err := validateNodes(n.Children, at+".children"); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of pages in the document.
func (d *Document) Count() int {
	return countNodes(d.Pages)
}

func countNodes(nodes []Node) int {
	n := len(nodes)
	for _, c := range nodes {
		n += countNodes(c.Children)
	}
	return n
}

// Import creates the pages of doc in pre-order so that every parent exists
// before its children. It returns the created pages in creation order.
//
// Each page is created on its own. Import stops at the first failure and
// returns the pages created so far alongside the error; those pages stay in
// the store, so running the same document again creates them a second time.
func Import(ctx context.Context, pages htmlsitemap.PageService, doc *Document) ([]*htmlsitemap.Page, error) {
	created := make([]*htmlsitemap.Page, 0, doc.Count())
	if err := importNodes(ctx, pages, doc, doc.Pages, "", &created); err != nil {
		return created, err
	}
	return created, nil
}

func importNodes(ctx context.Context, pages htmlsitemap.PageService, doc *Document, nodes []Node, parentID string, created *[]*htmlsitemap.Page) error {
	for _, n := range nodes {
		page := n.page(doc)
		page.ParentID = parentID
		if err := pages.CreatePage(ctx, page); err != nil {
			return fmt.Errorf("yaml: create page %q: %w", n.label(doc), err)
		}
		*created = append(*created, page)

		if err := importNodes(ctx, pages, doc, n.Children, page.ID, created); err != nil {
			return err
		}
	}
	return nil
}

func (n Node) page(doc *Document) *htmlsitemap.Page {
	published := true
	if n.Published != nil {
		published = *n.Published
	}

	titles := make(map[string]htmlsitemap.Title, len(n.Titles)+1)
	for lang, title := range n.Titles {
		titles[lang] = htmlsitemap.Title{Language: lang, Title: title}
	}
	if strings.TrimSpace(n.Title) != "" {
		titles[doc.Language] = htmlsitemap.Title{Language: doc.Language, Title: n.Title, Slug: n.Slug}
	}

	return &htmlsitemap.Page{
		SiteID:        doc.Site,
		Published:     published,
		LoginRequired: n.LoginRequired,
		InNavigation:  n.InNavigation,
		Titles:        titles,
	}
}

func (n Node) label(doc *Document) string {
	if n.Title != "" {
		return n.Title
	}
	if t, ok := n.Titles[doc.Language]; ok {
		return t
	}
	for _, t := range n.Titles {
		return t
	}
	return ""
}
