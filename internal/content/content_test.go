package content

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

const sampleYAML = `
sections:
  - id: home
    title: Home
    type: hero
    content:
      heading: A
      subtitle: B
      cta: C
  - id: products
    title: Products
    type: grid
    content:
      title: Solutions
      items:
        - icon: x
          title: T1
          description: D1
  - id: gallery
    title: Gallery
    type: carousel
    content:
      title: Shots
      slides: [a, b]
`

func TestParseDecodesTypedContent(t *testing.T) {
	p, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(p.Sections) != 3 {
		t.Fatalf("sections = %d, want 3", len(p.Sections))
	}

	hero, ok := p.Sections[0].Content.(HeroContent)
	if !ok {
		t.Fatalf("section 0 content = %T, want HeroContent", p.Sections[0].Content)
	}
	if hero.Heading != "A" || hero.Subtitle != "B" || hero.CTA != "C" {
		t.Errorf("hero = %+v", hero)
	}

	grid, ok := p.Sections[1].Content.(GridContent)
	if !ok {
		t.Fatalf("section 1 content = %T, want GridContent", p.Sections[1].Content)
	}
	if grid.SectionTitle() != "Solutions" {
		t.Errorf("grid title = %q, want Solutions", grid.SectionTitle())
	}
	if len(grid.Items) != 1 || grid.Items[0].Icon != "x" {
		t.Errorf("grid items = %+v", grid.Items)
	}

	raw, ok := p.Sections[2].Content.(RawContent)
	if !ok {
		t.Fatalf("section 2 content = %T, want RawContent", p.Sections[2].Content)
	}
	if raw.SectionTitle() != "Shots" {
		t.Errorf("raw title = %q, want Shots", raw.SectionTitle())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		sections []Section
		wantErrs int
	}{
		{"valid", []Section{{ID: "a", Type: TypeHero}, {ID: "b-2", Type: TypeGrid}}, 0},
		{"empty page", nil, 0},
		{"missing id", []Section{{Type: TypeHero}}, 1},
		{"unsafe id", []Section{{ID: "my section", Type: TypeHero}}, 1},
		{"leading digit", []Section{{ID: "1st", Type: TypeHero}}, 1},
		{"duplicate", []Section{{ID: "a", Type: TypeHero}, {ID: "a", Type: TypeGrid}}, 1},
		{"missing type", []Section{{ID: "a"}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Page{Sections: tt.sections}
			err := p.Validate()
			if tt.wantErrs == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("error %v is not a ValidationError", err)
			}
			if got := strings.Count(err.Error(), "\n") + 1; got != tt.wantErrs {
				t.Errorf("error count = %d, want %d (%v)", got, tt.wantErrs, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sections.yml")

	original := DefaultPage()
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded.Sections) != len(original.Sections) {
		t.Fatalf("sections = %d, want %d", len(loaded.Sections), len(original.Sections))
	}
	for i := range original.Sections {
		if loaded.Sections[i].ID != original.Sections[i].ID {
			t.Errorf("section %d id = %q, want %q", i, loaded.Sections[i].ID, original.Sections[i].ID)
		}
		if loaded.Sections[i].Type != original.Sections[i].Type {
			t.Errorf("section %d type = %q, want %q", i, loaded.Sections[i].Type, original.Sections[i].Type)
		}
	}
	grid := loaded.Sections[1].Content.(GridContent)
	if len(grid.Items) != 3 {
		t.Errorf("grid items = %d, want 3", len(grid.Items))
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	p, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("LoadOrDefault failed: %v", err)
	}
	if len(p.Sections) != 2 || p.Sections[0].ID != "home" {
		t.Errorf("expected default page, got %+v", p.Sections)
	}
}

func TestJSONIncludesContent(t *testing.T) {
	data, err := DefaultPage().JSON()
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}
	var decoded struct {
		Sections []struct {
			ID      string         `json:"id"`
			Content map[string]any `json:"content"`
		} `json:"sections"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Sections[0].Content["heading"] != "Intelligent Platform" {
		t.Errorf("hero heading missing from JSON: %s", data)
	}
}
