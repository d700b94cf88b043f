// Package goquery reads page trees from the navigation menus of existing
// HTML pages.
package goquery

import (
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/htmlsitemap"
)

// DefaultSelector matches the container of the site navigation.
const DefaultSelector = "nav"

// Link is one item of a navigation menu.
type Link struct {
	Title    string
	Href     string
	Children []Link
}

// Slug returns the last path segment of the link target, or an empty string
// for the site root and external links.
func (l Link) Slug() string {
	u, err := url.Parse(l.Href)
	if err != nil || u.Host != "" {
		return ""
	}
	path := strings.Trim(u.Path, "/")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		path = path[i+1:]
	}
	return path
}

// ParseNavigation returns the menu nested below the first element matching
// selector. The outermost <ul> or <ol> of that element is the top level;
// lists nested inside an item are its children.
func ParseNavigation(r io.Reader, selector string) ([]Link, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, htmlsitemap.Errorf(htmlsitemap.EINVALID, "failed to parse HTML: %v", err)
	}

	root := doc.Find(selector).First()
	if root.Length() == 0 {
		return nil, htmlsitemap.Errorf(htmlsitemap.EINVALID, "no element matches %q", selector)
	}

	list := root.Find("ul, ol").First()
	if root.Is("ul, ol") {
		list = root
	}
	if list.Length() == 0 {
		return nil, htmlsitemap.Errorf(htmlsitemap.EINVALID, "no list below %q", selector)
	}

	return parseList(list), nil
}

func parseList(list *goquery.Selection) []Link {
	var links []Link
	list.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		var children []Link
		if nested := li.ChildrenFiltered("ul, ol").First(); nested.Length() > 0 {
			children = parseList(nested)
		}

		label := li.Children().Not("ul, ol")
		a := label.Filter("a[href]").First()
		if a.Length() == 0 {
			a = label.Find("a[href]").First()
		}
		title := strings.Join(strings.Fields(a.Text()), " ")

		// Items without a link, like section headings, lift their children.
		if a.Length() == 0 || title == "" {
			links = append(links, children...)
			return
		}

		href, _ := a.Attr("href")
		links = append(links, Link{Title: title, Href: href, Children: children})
	})
	return links
}

// Count returns the number of links in the menu, nested ones included.
func Count(links []Link) int {
	n := len(links)
	for _, l := range links {
		n += Count(l.Children)
	}
	return n
}
