package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/htmlsitemap"
	"github.com/fwojciec/htmlsitemap/goquery"
	"github.com/fwojciec/htmlsitemap/yaml"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	f, err := os.Open(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	defer f.Close()

	var doc *yaml.Document
	if c.HTML {
		doc, err = c.decodeNavigation(f)
	} else {
		doc, err = yaml.Decode(f)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", htmlsitemap.ErrorMessage(err))
		return err
	}

	created, err := yaml.Import(deps.Ctx, deps.Pages, doc)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", htmlsitemap.ErrorMessage(err))
		fmt.Fprintf(deps.Stderr, "Imported %d of %d pages before the failure\n", len(created), doc.Count())
		return err
	}

	fmt.Fprintf(deps.Stdout, "Imported %d pages into site %q\n", len(created), doc.Site)
	return nil
}

func (c *ImportCmd) decodeNavigation(f *os.File) (*yaml.Document, error) {
	links, err := goquery.ParseNavigation(f, c.Selector)
	if err != nil {
		return nil, err
	}
	doc := &yaml.Document{
		Site:     c.Site,
		Language: c.Lang,
		Pages:    nodesFromLinks(links),
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// nodesFromLinks converts a navigation menu into a page tree. Menu entries
// are navigation pages.
func nodesFromLinks(links []goquery.Link) []yaml.Node {
	nodes := make([]yaml.Node, 0, len(links))
	for _, l := range links {
		nodes = append(nodes, yaml.Node{
			Title:        l.Title,
			Slug:         l.Slug(),
			InNavigation: true,
			Children:     nodesFromLinks(l.Children),
		})
	}
	return nodes
}
