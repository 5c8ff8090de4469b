package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

// fragmentID matches ids that are safe to use as URL fragments and
// CSS id selectors without escaping.
var fragmentID = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// ValidationError describes a problem with one section.
type ValidationError struct {
	Index  int
	ID     string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("section %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("section %d (%s): %s", e.Index, e.ID, e.Reason)
}

// Load reads a page definition from a YAML file.
func Load(path string) (*Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content %s: %w", path, err)
	}
	return Parse(data)
}

// LoadOrDefault reads the page at path, falling back to DefaultPage when
// the file does not exist.
func LoadOrDefault(path string) (*Page, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultPage(), nil
	}
	return Load(path)
}

// Parse decodes and validates a YAML page definition.
func Parse(data []byte) (*Page, error) {
	var p Page
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing content: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks that every section has a unique, fragment-safe id and a
// type tag. Section types are not checked here; unknown types are reported
// by the renderer so the rest of the page can still be built.
func (p *Page) Validate() error {
	var errs []error
	seen := make(map[string]int, len(p.Sections))
	for i, s := range p.Sections {
		switch {
		case s.ID == "":
			errs = append(errs, &ValidationError{Index: i, Reason: "id is required"})
		case !fragmentID.MatchString(s.ID):
			errs = append(errs, &ValidationError{Index: i, ID: s.ID, Reason: "id is not a valid fragment identifier"})
		default:
			if prev, dup := seen[s.ID]; dup {
				errs = append(errs, &ValidationError{Index: i, ID: s.ID, Reason: fmt.Sprintf("duplicate id (first used by section %d)", prev)})
			} else {
				seen[s.ID] = i
			}
		}
		if s.Type == "" {
			errs = append(errs, &ValidationError{Index: i, ID: s.ID, Reason: "type is required"})
		}
	}
	return errors.Join(errs...)
}

// Save writes the page as YAML, replacing path atomically.
func (p *Page) Save(path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshalling content: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing content to %s: %w", path, err)
	}
	return nil
}

// JSON returns the resolved page as indented JSON.
func (p *Page) JSON() ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}
