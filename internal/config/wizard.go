package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard, scaffolds a starter
// site in dir and returns the resulting Config.
func RunWizard(dir string) (*Config, error) {
	fmt.Println("Welcome to persona! Let's set up your site.")
	fmt.Println()

	// 1. Site title.
	titlePrompt := promptui.Prompt{
		Label:   "Site title",
		Default: "Multi-Profile Static Site",
	}
	title, err := titlePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site title: %w", err)
	}

	// 2. First person and profile keys.
	personPrompt := promptui.Prompt{
		Label:    "First person key (used in URLs)",
		Default:  "me",
		Validate: validateKey,
	}
	person, err := personPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("person key: %w", err)
	}

	profilePrompt := promptui.Prompt{
		Label:    "First profile key",
		Default:  "developer",
		Validate: validateKey,
	}
	profile, err := profilePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("profile key: %w", err)
	}

	// 3. Theme variant.
	variantPrompt := promptui.Select{
		Label: "Theme toggle",
		Items: []string{
			"two-state   — light / dark",
			"three-state — system / light / dark",
		},
	}
	variantIdx, _, err := variantPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("theme selection: %w", err)
	}
	variant := []string{"two-state", "three-state"}[variantIdx]

	// 4. Preference storage.
	backendPrompt := promptui.Select{
		Label: "Where should `persona serve` keep theme preferences",
		Items: []string{"cookie", "sqlite"},
	}
	_, backend, err := backendPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("preference backend: %w", err)
	}

	// 5. Port.
	portPrompt := promptui.Prompt{
		Label:   "Port for persona serve",
		Default: "8080",
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	port, _ := strconv.Atoi(portStr)

	cfg, err := Scaffold(dir, Answers{
		Title:   title,
		Person:  person,
		Profile: profile,
		Variant: variant,
		Backend: backend,
		Port:    port,
	})
	if err != nil {
		return nil, err
	}

	fmt.Printf("\nConfiguration saved to %s\n", FileName)
	fmt.Println("Run `persona serve` to preview the site.")
	return cfg, nil
}

func validateKey(s string) error {
	if s == "" {
		return fmt.Errorf("key is required")
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-' || r == '_') {
			return fmt.Errorf("use lowercase letters, digits, - and _")
		}
	}
	return nil
}
