// Package render turns a page definition into navigation and section
// markup. Section bodies are produced by RenderFuncs looked up in a
// Registry keyed by section type.
package render

import (
	"bytes"
	"fmt"
	"html/template"

	"go.uber.org/zap"

	"github.com/ziadkadry99/landingkit/internal/content"
)

// Renderer dispatches sections to their registered render functions.
type Renderer struct {
	registry *Registry
	logger   *zap.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithRegistry replaces the default registry.
func WithRegistry(reg *Registry) Option {
	return func(r *Renderer) { r.registry = reg }
}

// WithLogger sets the logger used to report section errors.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) { r.logger = logger }
}

// New creates a Renderer with the built-in section types.
func New(opts ...Option) *Renderer {
	r := &Renderer{registry: NewRegistry(), logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	return r
}

// Registry returns the renderer's registry so callers can add types.
func (r *Renderer) Registry() *Registry { return r.registry }

// RenderNavigation produces one anchor per section, in section order.
func (r *Renderer) RenderNavigation(sections []content.Section) (template.HTML, error) {
	return execute("nav", sections)
}

// SectionError wraps a failure to render one section.
type SectionError struct {
	Index     int
	SectionID string
	Err       error
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("section %q: %v", e.SectionID, e.Err)
}

func (e *SectionError) Unwrap() error { return e.Err }

type sectionView struct {
	ID    string
	Type  content.SectionType
	Title string
	Body  template.HTML
}

// RenderSections renders every section in order. A section that cannot
// be rendered is left out and reported in the returned slice; the others
// are still emitted.
func (r *Renderer) RenderSections(sections []content.Section) (template.HTML, []error) {
	var (
		buf  bytes.Buffer
		errs []error
	)
	for i, s := range sections {
		frag, err := r.RenderSection(s)
		if err != nil {
			serr := &SectionError{Index: i, SectionID: s.ID, Err: err}
			r.logger.Warn("skipping section",
				zap.Int("index", i),
				zap.String("id", s.ID),
				zap.String("type", string(s.Type)),
				zap.Error(err),
			)
			errs = append(errs, serr)
			continue
		}
		buf.WriteString(string(frag))
		buf.WriteByte('\n')
	}
	return template.HTML(buf.String()), errs
}

// RenderSection renders a single section container and its body.
func (r *Renderer) RenderSection(s content.Section) (template.HTML, error) {
	fn, err := r.registry.Lookup(s.Type)
	if err != nil {
		if unknown, ok := err.(*UnknownSectionTypeError); ok {
			unknown.SectionID = s.ID
		}
		return "", err
	}
	view := sectionView{ID: s.ID, Type: s.Type}
	if s.Content != nil {
		view.Title = s.Content.SectionTitle()
	}
	view.Body, err = fn(s.Content)
	if err != nil {
		return "", err
	}
	return execute("section", view)
}

// RenderHero renders a hero banner.
func RenderHero(c content.HeroContent) (template.HTML, error) {
	return execute("hero", c)
}

type cardView struct {
	Icon        string
	Title       string
	Description template.HTML
	Block       bool
}

// RenderGrid renders a feature grid with one card per item. Descriptions
// are treated as inline markdown.
func RenderGrid(c content.GridContent) (template.HTML, error) {
	cards := make([]cardView, 0, len(c.Items))
	for _, item := range c.Items {
		desc, block := Markdown(item.Description)
		cards = append(cards, cardView{
			Icon:        item.Icon,
			Title:       item.Title,
			Description: desc,
			Block:       block,
		})
	}
	return execute("grid", cards)
}

func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("executing %s template: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}
