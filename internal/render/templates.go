package render

import "html/template"

const navTemplate = `<ul class="nav-list">
{{- range .}}
  <li><a href="#{{.ID}}">{{.Title}}</a></li>
{{- end}}
</ul>`

const sectionTemplate = `<section id="{{.ID}}" class="section-{{.Type}}">
  <div class="container">
    {{- if .Title}}
    <h2 class="section-title">{{.Title}}</h2>
    {{- end}}
    {{.Body}}
  </div>
</section>`

const heroTemplate = `<div class="hero-content">
  <h1>{{.Heading}}</h1>
  <p class="hero-subtitle">{{.Subtitle}}</p>
  <button class="cta-button">{{.CTA}}</button>
</div>`

const gridTemplate = `<div class="architecture-grid">
{{- range .}}
  <div class="card">
    <div class="card-icon">{{.Icon}}</div>
    <h3>{{.Title}}</h3>
    {{- if .Block}}
    <div class="card-description">{{.Description}}</div>
    {{- else}}
    <p>{{.Description}}</p>
    {{- end}}
  </div>
{{- end}}
</div>`

var templates = parseTemplates()

func parseTemplates() *template.Template {
	t := template.New("nav")
	template.Must(t.Parse(navTemplate))
	template.Must(t.New("section").Parse(sectionTemplate))
	template.Must(t.New("hero").Parse(heroTemplate))
	template.Must(t.New("grid").Parse(gridTemplate))
	return t
}
