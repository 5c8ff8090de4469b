package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ziadkadry99/landingkit/internal/content"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// configPath and writes a starter section file if none exists.
func RunWizard(configPath string) (*Config, error) {
	fmt.Println("Welcome to landingkit! Let's set up your page.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Page title.
	titlePrompt := promptui.Prompt{
		Label:   "Page title",
		Default: cfg.Title,
	}
	title, err := titlePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("page title: %w", err)
	}
	cfg.Title = title

	// 2. Document language.
	langPrompt := promptui.Select{
		Label: "Document language",
		Items: []string{"en", "zh", "ja", "de", "fr", "es"},
	}
	_, lang, err := langPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("language selection: %w", err)
	}
	cfg.Lang = lang

	// 3. Section file.
	contentPrompt := promptui.Prompt{
		Label:   "Section file",
		Default: cfg.ContentFile,
	}
	contentFile, err := contentPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("section file: %w", err)
	}
	cfg.ContentFile = contentFile

	// 4. Output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for the built site",
		Default: cfg.OutputDir,
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}
	cfg.OutputDir = outputDir

	// 5. Asset globs.
	assetsPrompt := promptui.Prompt{
		Label:   "Asset patterns (comma-separated globs)",
		Default: strings.Join(cfg.Assets, ","),
	}
	assetsStr, err := assetsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("asset patterns: %w", err)
	}
	cfg.Assets = splitAndTrim(assetsStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}
	fmt.Printf("\nConfiguration saved to %s\n", configPath)

	if _, err := os.Stat(cfg.ContentFile); os.IsNotExist(err) {
		if err := content.DefaultPage().Save(cfg.ContentFile); err != nil {
			return nil, fmt.Errorf("writing starter sections: %w", err)
		}
		fmt.Printf("Starter sections written to %s\n", cfg.ContentFile)
	}

	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
// Commas inside {a,b} brace groups do not split.
func splitAndTrim(s string) []string {
	var result []string
	depth, start := 0, 0
	for i := 0; i <= len(s); i++ {
		if i < len(s) {
			switch s[i] {
			case '{':
				depth++
				continue
			case '}':
				if depth > 0 {
					depth--
				}
				continue
			}
		}
		if i == len(s) || (s[i] == ',' && depth == 0) {
			if token := strings.TrimSpace(s[start:i]); token != "" {
				result = append(result, token)
			}
			start = i + 1
		}
	}
	return result
}
