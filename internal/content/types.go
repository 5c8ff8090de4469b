package content

// SectionType selects the template that renders a section's content.
type SectionType string

const (
	TypeHero SectionType = "hero"
	TypeGrid SectionType = "grid"
)

// Page is the ordered list of sections that make up the site. Order
// determines both navigation order and vertical page order.
type Page struct {
	Sections []Section `yaml:"sections" json:"sections"`
}

// Section is one vertically stacked block of the page.
type Section struct {
	ID      string      `yaml:"id" json:"id"`
	Title   string      `yaml:"title" json:"title"`
	Type    SectionType `yaml:"type" json:"type"`
	Content Content     `yaml:"-" json:"content"`
}

// Content is a type-specific section payload.
type Content interface {
	// SectionTitle returns the optional heading rendered above the body.
	SectionTitle() string
}

// HeroContent is the payload of a hero banner.
type HeroContent struct {
	Heading  string `yaml:"heading" json:"heading"`
	Subtitle string `yaml:"subtitle" json:"subtitle"`
	CTA      string `yaml:"cta" json:"cta"`
}

func (HeroContent) SectionTitle() string { return "" }

// GridContent is the payload of a feature grid.
type GridContent struct {
	Title string     `yaml:"title,omitempty" json:"title,omitempty"`
	Items []GridItem `yaml:"items" json:"items"`
}

func (c GridContent) SectionTitle() string { return c.Title }

// GridItem is a single card in a feature grid.
type GridItem struct {
	Icon        string `yaml:"icon" json:"icon"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// RawContent holds the payload of a section whose type has no typed
// decoder. The renderer decides whether it can handle it.
type RawContent map[string]any

func (c RawContent) SectionTitle() string {
	if title, ok := c["title"].(string); ok {
		return title
	}
	return ""
}
