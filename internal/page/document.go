package page

import (
	"sync"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// document wraps the parsed shell and hands out stable *Element values,
// one per node.
type document struct {
	doc      *goquery.Document
	elements map[*html.Node]*Element
	mu       *sync.Mutex // guards every element; held by RenderedPage
}

func newDocument(doc *goquery.Document, mu *sync.Mutex) *document {
	return &document{doc: doc, elements: make(map[*html.Node]*Element), mu: mu}
}

func (d *document) element(sel *goquery.Selection) *Element {
	node := sel.Get(0)
	if el, ok := d.elements[node]; ok {
		return el
	}
	el := newElement(sel, d.mu)
	d.elements[node] = el
	return el
}

func (d *document) all(selector string) []*Element {
	var out []*Element
	d.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, d.element(s))
	})
	return out
}

func (d *document) anchors() []*Element { return d.all("a[href]") }

func (d *document) cards() []*Element { return d.all(".card") }

// byID compares id attributes directly so arbitrary fragments never reach
// the selector parser.
func (d *document) byID(id string) *Element {
	match := d.doc.Find("[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr("id")
		return v == id
	})
	if match.Length() == 0 {
		return nil
	}
	return d.element(match.First())
}

func (d *document) html() (string, error) {
	return d.doc.Html()
}
