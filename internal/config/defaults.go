package config

// DefaultAssets are glob patterns copied into the output directory.
var DefaultAssets = []string{
	"assets/**/*.{png,jpg,jpeg,gif,svg,webp,ico}",
	"assets/**/*.{woff,woff2}",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Title:           "Landing",
		Lang:            "en",
		ContentFile:     "sections.yml",
		OutputDir:       "dist",
		Container:       "#app",
		NavContainer:    ".nav-container .container",
		ScrollOffset:    80,
		RevealThreshold: 0.1,
		Assets:          DefaultAssets,
		Port:            8080,
		HistoryDB:       ".landingkit/history.db",
		FailOnError:     false,
	}
}
