package site

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// ManifestName is written at the output root after every build.
const ManifestName = "manifest.json"

// Manifest lists what a build produced.
type Manifest struct {
	BuildID   string         `json:"build_id"`
	Generated time.Time      `json:"generated"`
	Pages     []ManifestPage `json:"pages"`
	Assets    []string       `json:"assets"`
	Failures  []string       `json:"failures,omitempty"`
}

// ManifestPage is one exported HTML file.
type ManifestPage struct {
	Path      string `json:"path"`
	Title     string `json:"title"`
	Archetype string `json:"archetype"`
	Person    string `json:"person,omitempty"`
	Profile   string `json:"profile,omitempty"`
	Markdown  string `json:"markdown,omitempty"`
}

// WriteManifest writes m as indented JSON.
func WriteManifest(m *Manifest, path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding manifest %s: %w", path, err)
	}
	return &m, nil
}
