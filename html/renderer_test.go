package html_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/htmlsitemap"
	"github.com/fwojciec/htmlsitemap/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(title, path string, level int) htmlsitemap.AnnotatedPage {
	return htmlsitemap.AnnotatedPage{
		Page:  &htmlsitemap.Page{ID: title},
		Title: htmlsitemap.Title{Language: "en", Title: title, Path: path},
		Level: level,
	}
}

func render(t *testing.T, pages []htmlsitemap.AnnotatedPage) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, html.NewRenderer().Render(&buf, pages))
	return buf.String()
}

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	t.Run("renders empty list for no pages", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, `<div id="sitemap"><ul></ul></div>`, render(t, nil))
	})

	t.Run("renders flat list", func(t *testing.T) {
		t.Parallel()

		got := render(t, []htmlsitemap.AnnotatedPage{
			entry("A", "a", 0),
			entry("B", "b", 0),
		})

		assert.Equal(t, `<div id="sitemap"><ul>`+
			`<li><a href="/a/" title="A">A</a></li>`+
			`<li><a href="/b/" title="B">B</a></li>`+
			`</ul></div>`, got)
	})

	t.Run("nests lists inside the parent item", func(t *testing.T) {
		t.Parallel()

		got := render(t, []htmlsitemap.AnnotatedPage{
			entry("Index", "", 0),
			entry("A", "a", 1),
			entry("A1", "a/a1", 2),
			entry("B", "b", 1),
		})

		assert.Equal(t, `<div id="sitemap"><ul>`+
			`<li><a href="/" title="Index">Index</a><ul>`+
			`<li><a href="/a/" title="A">A</a><ul>`+
			`<li><a href="/a/a1/" title="A1">A1</a></li>`+
			`</ul></li>`+
			`<li><a href="/b/" title="B">B</a></li>`+
			`</ul></li>`+
			`</ul></div>`, got)
	})

	t.Run("closes several levels at once", func(t *testing.T) {
		t.Parallel()

		got := render(t, []htmlsitemap.AnnotatedPage{
			entry("A", "a", 0),
			entry("A1", "a/a1", 1),
			entry("A11", "a/a1/a11", 2),
			entry("B", "b", 0),
		})

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(got))
		require.NoError(t, err)
		assert.Equal(t, 2, doc.Find("#sitemap > ul > li").Length())
		assert.Equal(t, "A11", doc.Find("#sitemap > ul > li > ul > li > ul > li > a").Text())
		assert.Equal(t, "B", doc.Find("#sitemap > ul > li").Last().Children().First().Text())
	})

	t.Run("escapes titles", func(t *testing.T) {
		t.Parallel()

		got := render(t, []htmlsitemap.AnnotatedPage{
			entry(`Tom & "Jerry" <3`, "tom", 0),
		})

		assert.Contains(t, got, `title="Tom &amp; &#34;Jerry&#34; &lt;3"`)
		assert.Contains(t, got, `>Tom &amp; &#34;Jerry&#34; &lt;3</a>`)

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(got))
		require.NoError(t, err)
		title, ok := doc.Find("a").Attr("title")
		require.True(t, ok)
		assert.Equal(t, `Tom & "Jerry" <3`, title)
	})

	t.Run("does not open a nested list before the first item", func(t *testing.T) {
		t.Parallel()

		got := render(t, []htmlsitemap.AnnotatedPage{
			entry("A", "a", 2),
		})

		assert.Equal(t, `<div id="sitemap"><ul><li><a href="/a/" title="A">A</a></li></ul></div>`, got)
	})

	t.Run("renders annotated pages", func(t *testing.T) {
		t.Parallel()

		page := func(id, path, title, urlPath string) *htmlsitemap.Page {
			return &htmlsitemap.Page{
				ID:   id,
				Path: path,
				Titles: map[string]htmlsitemap.Title{
					"en": {Title: title, Path: urlPath},
				},
			}
		}
		pages := htmlsitemap.Annotate([]*htmlsitemap.Page{
			page("b", "00000001", "B", "b"),
			page("b1", "000000010000", "B1", "b/b1"),
			page("c", "00000002", "C", "c"),
		}, "en")

		got := render(t, pages)

		assert.Equal(t, `<div id="sitemap"><ul>`+
			`<li><a href="/b/" title="B">B</a><ul>`+
			`<li><a href="/b/b1/" title="B1">B1</a></li>`+
			`</ul></li>`+
			`<li><a href="/c/" title="C">C</a></li>`+
			`</ul></div>`, got)
	})
}
