package page

// ScrollBehavior mirrors the browser's scroll behavior option.
type ScrollBehavior string

const (
	ScrollSmooth  ScrollBehavior = "smooth"
	ScrollInstant ScrollBehavior = "instant"
)

// Host is the environment a page is mounted into. It supplies layout
// information and performs viewport scrolling.
type Host interface {
	// OffsetTop returns the distance in pixels from the top of the
	// document to the element with the given id.
	OffsetTop(id string) float64
	// ScrollTo moves the viewport so its top edge is at top.
	ScrollTo(top float64, behavior ScrollBehavior)
}
