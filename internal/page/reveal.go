package page

const (
	// DefaultRevealThreshold is the visible fraction that triggers a reveal.
	DefaultRevealThreshold = 0.1

	hiddenOpacity    = "0"
	hiddenTransform  = "translateY(20px)"
	shownOpacity     = "1"
	shownTransform   = "translateY(0)"
	revealTransition = "all 0.6s cubic-bezier(0.25, 0.46, 0.45, 0.94)"
)

// IntersectionEntry reports how much of an observed element is inside
// the viewport.
type IntersectionEntry struct {
	Target            *Element
	IntersectionRatio float64
	IsIntersecting    bool
}

// revealObserver fades cards in the first time they become visible.
type revealObserver struct {
	threshold float64
	observed  map[*Element]struct{}
}

func newRevealObserver(threshold float64) *revealObserver {
	return &revealObserver{threshold: threshold, observed: make(map[*Element]struct{})}
}

// observe hides el and starts watching it.
func (o *revealObserver) observe(el *Element) {
	el.setStyle("opacity", hiddenOpacity)
	el.setStyle("transform", hiddenTransform)
	el.setStyle("transition", revealTransition)
	o.observed[el] = struct{}{}
}

// deliver applies a batch of intersection changes. Revealed elements are
// unobserved, so later entries for them are ignored.
func (o *revealObserver) deliver(entries []IntersectionEntry) {
	for _, e := range entries {
		if _, ok := o.observed[e.Target]; !ok {
			continue
		}
		if !e.IsIntersecting || e.IntersectionRatio < o.threshold {
			continue
		}
		e.Target.setStyle("opacity", shownOpacity)
		e.Target.setStyle("transform", shownTransform)
		delete(o.observed, e.Target)
	}
}

func (o *revealObserver) pending() int { return len(o.observed) }

func (o *revealObserver) disconnect() {
	clear(o.observed)
}
