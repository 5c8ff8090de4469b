package render

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
)

var (
	md = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
	)
	policy = newPolicy()
)

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	// Highlighted code blocks carry inline colours.
	p.AllowAttrs("style").OnElements("pre", "span")
	return p
}

// Markdown converts card text to sanitised HTML. A single paragraph is
// unwrapped so it can sit inside the card's own <p>; block is false in
// that case.
func Markdown(src string) (out template.HTML, block bool) {
	if strings.TrimSpace(src) == "" {
		return "", false
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src)), false
	}
	clean := strings.TrimSpace(policy.Sanitize(buf.String()))

	inner, ok := strings.CutPrefix(clean, "<p>")
	if ok {
		if inner, ok = strings.CutSuffix(inner, "</p>"); ok && !strings.Contains(inner, "<p>") {
			return template.HTML(inner), false
		}
	}
	return template.HTML(clean), true
}
