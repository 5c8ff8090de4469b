// Package page mounts rendered sections into a host page and runs the
// page's interactive behaviors: offset smooth scrolling for in-page
// anchors and a one-shot reveal of cards as they enter the viewport.
//
// Events are handled one at a time; RenderedPage serialises calls so it
// can be driven from several goroutines. Elements it hands out share the
// page's lock, so reading them races with nothing.
package page

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/ziadkadry99/landingkit/internal/content"
	"github.com/ziadkadry99/landingkit/internal/render"
)

// ErrContainerNotFound is returned when a configured selector matches
// nothing in the shell markup.
var ErrContainerNotFound = errors.New("container not found")

const (
	DefaultContainer    = "#app"
	DefaultNavContainer = ".nav-container .container"
)

// Options configures mounting and behaviors.
type Options struct {
	Container       string
	NavContainer    string
	// ScrollOffset is subtracted from a target's offsetTop when scrolling.
	// nil means DefaultScrollOffset; use Offset(0) for no offset.
	ScrollOffset    *float64
	RevealThreshold float64
	Renderer        *render.Renderer
	Logger          *zap.Logger
}

// DefaultOptions returns the stock selectors and behavior constants.
func DefaultOptions() Options {
	return Options{
		Container:       DefaultContainer,
		NavContainer:    DefaultNavContainer,
		ScrollOffset:    Offset(DefaultScrollOffset),
		RevealThreshold: DefaultRevealThreshold,
	}
}

// Offset returns a pointer to px for Options.ScrollOffset.
func Offset(px float64) *float64 { return &px }

func (o *Options) applyDefaults() {
	if o.ScrollOffset == nil {
		o.ScrollOffset = Offset(DefaultScrollOffset)
	}
	if o.Container == "" {
		o.Container = DefaultContainer
	}
	if o.NavContainer == "" {
		o.NavContainer = DefaultNavContainer
	}
	if o.RevealThreshold <= 0 {
		o.RevealThreshold = DefaultRevealThreshold
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Renderer == nil {
		o.Renderer = render.New(render.WithLogger(o.Logger))
	}
}

// Mounted is a shell with navigation and sections written into it.
type Mounted struct {
	Document *goquery.Document
	// Errors holds one entry per section that could not be rendered.
	Errors []error
}

// Mount renders navigation and sections into the shell's containers.
// It fails only when a container is missing or the navigation cannot be
// rendered; per-section problems are collected in Mounted.Errors.
func Mount(shell io.Reader, sections []content.Section, opts Options) (*Mounted, error) {
	opts.applyDefaults()

	doc, err := goquery.NewDocumentFromReader(shell)
	if err != nil {
		return nil, fmt.Errorf("parsing shell: %w", err)
	}

	nav := doc.Find(opts.NavContainer).First()
	if nav.Length() == 0 {
		return nil, fmt.Errorf("nav container %q: %w", opts.NavContainer, ErrContainerNotFound)
	}
	main := doc.Find(opts.Container).First()
	if main.Length() == 0 {
		return nil, fmt.Errorf("container %q: %w", opts.Container, ErrContainerNotFound)
	}

	navHTML, err := opts.Renderer.RenderNavigation(sections)
	if err != nil {
		return nil, fmt.Errorf("rendering navigation: %w", err)
	}
	nav.SetHtml(string(navHTML))

	var sectionsHTML template.HTML
	m := &Mounted{Document: doc}
	sectionsHTML, m.Errors = opts.Renderer.RenderSections(sections)
	main.SetHtml(string(sectionsHTML))

	return m, nil
}

// RenderedPage is a mounted page with its listeners and observer live.
type RenderedPage struct {
	mu       *sync.Mutex
	doc      *document
	nav      *navigator
	observer *revealObserver
	errors   []error
	logger   *zap.Logger
	disposed bool
}

// Initialize mounts sections into shell, attaches click handlers to
// in-page anchors and starts observing cards for reveal. Call Dispose to
// remove the handlers and stop observation.
func Initialize(shell io.Reader, sections []content.Section, host Host, opts Options) (*RenderedPage, error) {
	if host == nil {
		return nil, errors.New("page: nil host")
	}
	if err := (&content.Page{Sections: sections}).Validate(); err != nil {
		return nil, fmt.Errorf("invalid sections: %w", err)
	}
	opts.applyDefaults()

	m, err := Mount(shell, sections, opts)
	if err != nil {
		return nil, err
	}

	mu := &sync.Mutex{}
	doc := newDocument(m.Document, mu)
	p := &RenderedPage{
		mu:       mu,
		doc:      doc,
		nav:      newNavigator(doc, host, *opts.ScrollOffset, opts.Logger),
		observer: newRevealObserver(opts.RevealThreshold),
		errors:   m.Errors,
		logger:   opts.Logger,
	}

	listeners := p.nav.attach()
	cards := doc.cards()
	for _, card := range cards {
		p.observer.observe(card)
	}

	opts.Logger.Debug("page initialized",
		zap.Int("sections", len(sections)),
		zap.Int("anchors", listeners),
		zap.Int("cards", len(cards)),
		zap.Int("errors", len(m.Errors)),
	)
	return p, nil
}

// HTML returns the current markup, including inline reveal styles.
func (p *RenderedPage) HTML() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.doc.html()
}

// Errors returns the per-section render errors.
func (p *RenderedPage) Errors() []error {
	return p.errors
}

// Element returns the element with the given id, or nil.
func (p *RenderedPage) Element(id string) *Element {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.doc.byID(id)
}

// Cards returns every card element in document order.
func (p *RenderedPage) Cards() []*Element {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.doc.cards()
}

// Click simulates a click on the first anchor whose href equals href.
// It returns nil when no such anchor exists.
func (p *RenderedPage) Click(href string) *ClickEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.nav.click(href)
}

// Intersect delivers a batch of visibility changes to the reveal observer.
func (p *RenderedPage) Intersect(entries ...IntersectionEntry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observer.deliver(entries)
}

// Observing returns the number of cards still waiting to be revealed.
func (p *RenderedPage) Observing() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.observer.pending()
}

// Dispose removes all click listeners and stops observation. It is safe
// to call more than once.
func (p *RenderedPage) Dispose() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.disposed {
		return
	}
	p.nav.detach()
	p.observer.disconnect()
	p.disposed = true
	p.logger.Debug("page disposed")
}
