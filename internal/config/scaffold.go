package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ziadkadry99/persona/internal/model"
)

// Answers are the choices collected by the init wizard.
type Answers struct {
	Title   string
	Person  string
	Profile string
	Variant string
	Backend string
	Port    int
}

// KeyLabel turns a config key such as "open-source" into "Open Source".
func KeyLabel(key string) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(key)
	return cases.Title(language.English).String(words)
}

// Scaffold writes .persona.yml, a site config and one sample profile
// document into dir. Existing files are left untouched.
func Scaffold(dir string, a Answers) (*Config, error) {
	cfg := DefaultConfig()
	if a.Variant != "" {
		cfg.Theme.Variant = a.Variant
	}
	if a.Backend != "" {
		cfg.Preferences.Backend = a.Backend
	}
	if a.Port != 0 {
		cfg.Port = a.Port
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dataFile := fmt.Sprintf("data/%s-%s.json", a.Person, a.Profile)

	profiles := orderedmap.New[string, model.ProfileRef]()
	profiles.Set(a.Profile, model.ProfileRef{Enabled: true, DataFile: dataFile})
	people := orderedmap.New[string, model.Person]()
	people.Set(a.Person, model.Person{Enabled: true, Label: KeyLabel(a.Person), Profiles: profiles})
	meta := orderedmap.New[string, model.ProfileMeta]()
	meta.Set(a.Profile, model.ProfileMeta{Label: KeyLabel(a.Profile)})

	site := model.SiteConfig{
		Site:     model.SiteInfo{Title: a.Title, Tagline: "Profiles, one link each."},
		Defaults: model.Defaults{Person: a.Person, Profile: a.Profile},
		People:   people,
		Profiles: meta,
	}

	content := model.NewContent(
		model.ContentPair{Label: "Email", Value: model.Scalar("mailto:" + a.Person + "@example.com")},
		model.ContentPair{Label: "Website", Value: model.LinkValue("example.com", "https://example.com", false)},
		model.ContentPair{Label: "Skills", Value: model.List("Go", "SQL")},
	)
	sample := model.ProfileData{
		Headline: model.Text(KeyLabel(a.Profile) + " profile"),
		Sections: []model.Section{{Title: "Contact", Visible: true, Kind: model.KindKeyValue, Content: content}},
	}

	if err := writeJSON(filepath.Join(dir, filepath.FromSlash(cfg.SiteConfig)), site); err != nil {
		return nil, err
	}
	if err := writeJSON(filepath.Join(dir, filepath.FromSlash(dataFile)), sample); err != nil {
		return nil, err
	}

	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := cfg.Save(path); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func writeJSON(path string, v any) error {
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(os.Stderr, "Warning: %s exists, leaving it unchanged\n", path)
		return nil
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
