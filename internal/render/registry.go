package render

import (
	"fmt"
	"html/template"
	"sort"
	"sync"

	"github.com/ziadkadry99/landingkit/internal/content"
)

// RenderFunc turns a section payload into a markup fragment. It must be
// pure: the same payload always yields the same fragment.
type RenderFunc func(c content.Content) (template.HTML, error)

// UnknownSectionTypeError is reported when no RenderFunc is registered
// for a section's type.
type UnknownSectionTypeError struct {
	SectionID string
	Type      content.SectionType
}

func (e *UnknownSectionTypeError) Error() string {
	return fmt.Sprintf("unknown section type: %s", e.Type)
}

// Registry maps section types to their render functions.
type Registry struct {
	mu    sync.RWMutex
	funcs map[content.SectionType]RenderFunc
}

// NewRegistry returns a registry with the built-in hero and grid renderers.
func NewRegistry() *Registry {
	r := &Registry{funcs: make(map[content.SectionType]RenderFunc)}
	r.Register(content.TypeHero, renderHeroContent)
	r.Register(content.TypeGrid, renderGridContent)
	return r
}

// Register adds or replaces the render function for a section type.
func (r *Registry) Register(t content.SectionType, fn RenderFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[t] = fn
}

// Lookup returns the render function for t, or an UnknownSectionTypeError.
func (r *Registry) Lookup(t content.SectionType) (RenderFunc, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[t]
	if !ok {
		return nil, &UnknownSectionTypeError{Type: t}
	}
	return fn, nil
}

// Types lists the registered section types in sorted order.
func (r *Registry) Types() []content.SectionType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]content.SectionType, 0, len(r.funcs))
	for t := range r.funcs {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

func renderHeroContent(c content.Content) (template.HTML, error) {
	hero, ok := c.(content.HeroContent)
	if !ok {
		return "", fmt.Errorf("hero section: unexpected content %T", c)
	}
	return RenderHero(hero)
}

func renderGridContent(c content.Content) (template.HTML, error) {
	grid, ok := c.(content.GridContent)
	if !ok {
		return "", fmt.Errorf("grid section: unexpected content %T", c)
	}
	return RenderGrid(grid)
}
