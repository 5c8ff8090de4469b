package page

import (
	"strings"

	"go.uber.org/zap"
)

// DefaultScrollOffset keeps targets clear of the fixed navigation bar.
const DefaultScrollOffset = 80

// ClickEvent is delivered to anchor listeners.
type ClickEvent struct {
	Target           *Element
	defaultPrevented bool
}

// PreventDefault suppresses the browser's own fragment jump.
func (e *ClickEvent) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether a listener called PreventDefault.
func (e *ClickEvent) DefaultPrevented() bool { return e.defaultPrevented }

type clickListener func(*ClickEvent)

// navigator owns the click listeners attached to in-page anchors.
type navigator struct {
	doc       *document
	host      Host
	offset    float64
	logger    *zap.Logger
	listeners map[*Element]clickListener
}

func newNavigator(doc *document, host Host, offset float64, logger *zap.Logger) *navigator {
	return &navigator{
		doc:       doc,
		host:      host,
		offset:    offset,
		logger:    logger,
		listeners: make(map[*Element]clickListener),
	}
}

// attach registers a listener on every anchor whose href starts with '#'.
func (n *navigator) attach() int {
	for _, a := range n.doc.anchors() {
		href, _ := a.attr("href")
		if !strings.HasPrefix(href, "#") {
			continue
		}
		n.listeners[a] = n.handler(href)
	}
	return len(n.listeners)
}

func (n *navigator) handler(href string) clickListener {
	return func(e *ClickEvent) {
		e.PreventDefault()
		id := strings.TrimPrefix(href, "#")
		if id == "" || n.doc.byID(id) == nil {
			n.logger.Warn("anchor target not found", zap.String("href", href))
			return
		}
		n.host.ScrollTo(n.host.OffsetTop(id)-n.offset, ScrollSmooth)
	}
}

// click dispatches a click to the first anchor with the given href.
func (n *navigator) click(href string) *ClickEvent {
	for _, a := range n.doc.anchors() {
		if h, _ := a.attr("href"); h != href {
			continue
		}
		e := &ClickEvent{Target: a}
		if l, ok := n.listeners[a]; ok {
			l(e)
		}
		return e
	}
	return nil
}

func (n *navigator) detach() {
	clear(n.listeners)
}
