package page

import (
	"sort"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

// Element is a node of the mounted document with an inline style map
// that is mirrored into its style attribute. Exported methods take the
// owning page's lock; the unexported ones expect it to be held.
type Element struct {
	mu    *sync.Mutex
	sel   *goquery.Selection
	style map[string]string
}

func newElement(sel *goquery.Selection, mu *sync.Mutex) *Element {
	el := &Element{mu: mu, sel: sel, style: make(map[string]string)}
	if raw, ok := sel.Attr("style"); ok {
		for _, decl := range strings.Split(raw, ";") {
			prop, val, found := strings.Cut(decl, ":")
			if !found {
				continue
			}
			el.style[strings.TrimSpace(prop)] = strings.TrimSpace(val)
		}
	}
	return el
}

// ID returns the element's id attribute.
func (e *Element) ID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	id, _ := e.sel.Attr("id")
	return id
}

// Attr returns the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.attr(name)
}

// HasClass reports whether the element carries class.
func (e *Element) HasClass(class string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sel.HasClass(class)
}

// Text returns the element's text content.
func (e *Element) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sel.Text()
}

// Style returns an inline style property.
func (e *Element) Style(prop string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.style[prop]
}

// SetStyle sets an inline style property.
func (e *Element) SetStyle(prop, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setStyle(prop, value)
}

func (e *Element) attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

func (e *Element) setStyle(prop, value string) {
	e.style[prop] = value
	e.sel.SetAttr("style", e.styleAttr())
}

func (e *Element) styleAttr() string {
	props := make([]string, 0, len(e.style))
	for p := range e.style {
		props = append(props, p)
	}
	sort.Strings(props)
	var b strings.Builder
	for i, p := range props {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p)
		b.WriteString(": ")
		b.WriteString(e.style[p])
		b.WriteByte(';')
	}
	return b.String()
}
