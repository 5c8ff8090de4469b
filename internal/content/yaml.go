package content

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// sectionFields mirrors Section with the payload left undecoded.
type sectionFields struct {
	ID      string      `yaml:"id"`
	Title   string      `yaml:"title"`
	Type    SectionType `yaml:"type"`
	Content yaml.Node   `yaml:"content"`
}

// UnmarshalYAML decodes the content payload according to the section type.
func (s *Section) UnmarshalYAML(node *yaml.Node) error {
	var raw sectionFields
	if err := node.Decode(&raw); err != nil {
		return err
	}
	s.ID = raw.ID
	s.Title = raw.Title
	s.Type = raw.Type

	if raw.Content.Kind == 0 {
		s.Content = nil
		return nil
	}

	switch raw.Type {
	case TypeHero:
		var c HeroContent
		if err := raw.Content.Decode(&c); err != nil {
			return fmt.Errorf("section %q: decoding hero content: %w", raw.ID, err)
		}
		s.Content = c
	case TypeGrid:
		var c GridContent
		if err := raw.Content.Decode(&c); err != nil {
			return fmt.Errorf("section %q: decoding grid content: %w", raw.ID, err)
		}
		s.Content = c
	default:
		c := RawContent{}
		if err := raw.Content.Decode(&c); err != nil {
			return fmt.Errorf("section %q: decoding content: %w", raw.ID, err)
		}
		s.Content = c
	}
	return nil
}

// MarshalYAML writes the section back with its payload under "content".
func (s Section) MarshalYAML() (any, error) {
	out := struct {
		ID      string      `yaml:"id"`
		Title   string      `yaml:"title"`
		Type    SectionType `yaml:"type"`
		Content Content     `yaml:"content,omitempty"`
	}{s.ID, s.Title, s.Type, s.Content}
	return out, nil
}
