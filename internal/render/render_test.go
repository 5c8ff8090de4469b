package render

import (
	"errors"
	"fmt"
	"html/template"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/landingkit/internal/content"
)

func parse(t *testing.T, html template.HTML) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(html)))
	require.NoError(t, err)
	return doc
}

func sampleSections() []content.Section {
	return []content.Section{
		{ID: "home", Title: "Home", Type: content.TypeHero, Content: content.HeroContent{Heading: "A", Subtitle: "B", CTA: "C"}},
		{ID: "products", Title: "Products", Type: content.TypeGrid, Content: content.GridContent{
			Title: "Solutions",
			Items: []content.GridItem{{Icon: "x", Title: "T1", Description: "D1"}},
		}},
		{ID: "contact", Title: "Contact", Type: content.TypeHero, Content: content.HeroContent{Heading: "Talk", Subtitle: "to", CTA: "us"}},
	}
}

func TestRenderNavigationOrder(t *testing.T) {
	t.Parallel()

	sections := sampleSections()
	html, err := New().RenderNavigation(sections)
	require.NoError(t, err)

	links := parse(t, html).Find("ul.nav-list li a")
	require.Equal(t, len(sections), links.Length())
	links.Each(func(i int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		require.Equal(t, "#"+sections[i].ID, href)
		require.Equal(t, sections[i].Title, a.Text())
	})
}

func TestRenderNavigationEmpty(t *testing.T) {
	t.Parallel()

	html, err := New().RenderNavigation(nil)
	require.NoError(t, err)

	doc := parse(t, html)
	require.Equal(t, 1, doc.Find("ul.nav-list").Length())
	require.Equal(t, 0, doc.Find("li").Length())
}

func TestRenderSectionsOrderAndIDs(t *testing.T) {
	t.Parallel()

	sections := sampleSections()
	html, errs := New().RenderSections(sections)
	require.Empty(t, errs)

	rendered := parse(t, html).Find("section")
	require.Equal(t, len(sections), rendered.Length())
	rendered.Each(func(i int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		require.Equal(t, sections[i].ID, id)
		require.True(t, s.HasClass("section-"+string(sections[i].Type)))
	})
}

func TestRenderSectionsTitleHeader(t *testing.T) {
	t.Parallel()

	html, errs := New().RenderSections(sampleSections())
	require.Empty(t, errs)

	doc := parse(t, html)
	require.Equal(t, 0, doc.Find("#home .section-title").Length(), "hero declares no title")
	require.Equal(t, "Solutions", doc.Find("#products h2.section-title").Text())
}

func TestRenderHero(t *testing.T) {
	t.Parallel()

	html, err := RenderHero(content.HeroContent{Heading: "A", Subtitle: "B", CTA: "C"})
	require.NoError(t, err)

	doc := parse(t, html)
	require.Equal(t, "A", doc.Find(".hero-content h1").Text())
	require.Equal(t, "B", doc.Find(".hero-content p.hero-subtitle").Text())
	require.Equal(t, "C", doc.Find(".hero-content button.cta-button").Text())
	require.Equal(t, 0, doc.Find(".card").Length())
}

func TestRenderGridSingleCard(t *testing.T) {
	t.Parallel()

	html, err := RenderGrid(content.GridContent{Items: []content.GridItem{{Icon: "x", Title: "T1", Description: "D1"}}})
	require.NoError(t, err)

	cards := parse(t, html).Find(".architecture-grid .card")
	require.Equal(t, 1, cards.Length())
	require.Equal(t, "x", cards.Find(".card-icon").Text())
	require.Equal(t, "T1", cards.Find("h3").Text())
	require.Equal(t, "D1", cards.Find("p").Text())
}

func TestRenderGridEscapesText(t *testing.T) {
	t.Parallel()

	html, err := RenderGrid(content.GridContent{Items: []content.GridItem{{
		Icon:        "<b>",
		Title:       "<script>alert(1)</script>",
		Description: "<img src=x onerror=alert(1)>",
	}}})
	require.NoError(t, err)

	out := string(html)
	require.NotContains(t, out, "<script>")
	require.NotContains(t, out, "onerror")
}

func TestRenderGridMarkdownDescription(t *testing.T) {
	t.Parallel()

	html, err := RenderGrid(content.GridContent{Items: []content.GridItem{
		{Icon: "⚡", Title: "Fast", Description: "**30%+** faster"},
		{Icon: "📦", Title: "Install", Description: "Run this:\n\n```sh\ngo install ./...\n```"},
	}})
	require.NoError(t, err)

	doc := parse(t, html)
	require.Equal(t, "30%+", doc.Find(".card").Eq(0).Find("p strong").Text())
	require.Equal(t, 1, doc.Find(".card").Eq(1).Find(".card-description pre").Length())
}

func TestUnknownSectionTypeDoesNotAbortPage(t *testing.T) {
	t.Parallel()

	sections := sampleSections()
	sections = append(sections[:1], append([]content.Section{{
		ID: "gallery", Title: "Gallery", Type: "carousel",
		Content: content.RawContent{"title": "Shots"},
	}}, sections[1:]...)...)

	html, errs := New().RenderSections(sections)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Error(), "unknown section type: carousel")

	var unknown *UnknownSectionTypeError
	require.True(t, errors.As(errs[0], &unknown))
	require.Equal(t, "gallery", unknown.SectionID)

	var serr *SectionError
	require.True(t, errors.As(errs[0], &serr))
	require.Equal(t, 1, serr.Index)

	doc := parse(t, html)
	require.Equal(t, 3, doc.Find("section").Length())
	require.Equal(t, 0, doc.Find("#gallery").Length())
	require.Equal(t, 1, doc.Find("#contact").Length())
}

func TestRegistryRegisterCustomType(t *testing.T) {
	t.Parallel()

	r := New()
	r.Registry().Register("quote", func(c content.Content) (template.HTML, error) {
		raw := c.(content.RawContent)
		return template.HTML(fmt.Sprintf("<blockquote>%s</blockquote>", template.HTMLEscapeString(raw["text"].(string)))), nil
	})

	html, errs := r.RenderSections([]content.Section{{
		ID: "q", Title: "Quote", Type: "quote", Content: content.RawContent{"text": "hi"},
	}})
	require.Empty(t, errs)
	require.Equal(t, "hi", parse(t, html).Find("section.section-quote blockquote").Text())
	require.Equal(t, []content.SectionType{"grid", "hero", "quote"}, r.Registry().Types())
}

func TestMismatchedContentIsSectionError(t *testing.T) {
	t.Parallel()

	_, errs := New().RenderSections([]content.Section{{ID: "home", Type: content.TypeHero, Content: content.GridContent{}}})
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Error(), "unexpected content")
}
