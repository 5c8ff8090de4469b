package content

// DefaultPage returns the starter page written by `landingkit init`.
func DefaultPage() *Page {
	return &Page{
		Sections: []Section{
			{
				ID:    "home",
				Title: "Home",
				Type:  TypeHero,
				Content: HeroContent{
					Heading:  "Intelligent Platform",
					Subtitle: "Advanced algorithms on a distributed compute architecture",
					CTA:      "Get started",
				},
			},
			{
				ID:    "products",
				Title: "Products",
				Type:  TypeGrid,
				Content: GridContent{
					Title: "Solutions",
					Items: []GridItem{
						{Icon: "🧠", Title: "Model Factory", Description: "Full lifecycle management from training to deployment"},
						{Icon: "⚡", Title: "Compute Scheduler", Description: "Smart resource allocation, **30%+** higher utilisation"},
						{Icon: "📊", Title: "Data Visualisation", Description: "Multi-dimensional analysis and live monitoring dashboards"},
					},
				},
			},
		},
	}
}
