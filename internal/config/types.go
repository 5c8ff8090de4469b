package config

// Config is the top-level landingkit configuration, corresponding to .landingkit.yml.
type Config struct {
	Title           string   `yaml:"title" koanf:"title"`
	Lang            string   `yaml:"lang" koanf:"lang"`
	ContentFile     string   `yaml:"content_file" koanf:"content_file"`
	Shell           string   `yaml:"shell,omitempty" koanf:"shell"`
	OutputDir       string   `yaml:"output_dir" koanf:"output_dir"`
	Container       string   `yaml:"container" koanf:"container"`
	NavContainer    string   `yaml:"nav_container" koanf:"nav_container"`
	ScrollOffset    float64  `yaml:"scroll_offset" koanf:"scroll_offset"`
	RevealThreshold float64  `yaml:"reveal_threshold" koanf:"reveal_threshold"`
	Assets          []string `yaml:"assets" koanf:"assets"`
	Port            int      `yaml:"port" koanf:"port"`
	HistoryDB       string   `yaml:"history_db" koanf:"history_db"`
	FailOnError     bool     `yaml:"fail_on_error" koanf:"fail_on_error"`
}
