package site

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ziadkadry99/persona/internal/config"
	"github.com/ziadkadry99/persona/internal/loader"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func testSite(t *testing.T) (*config.Config, string) {
	t.Helper()
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"data/site.json": `{
		  "defaults": {"person": "ada", "profile": "dev"},
		  "people": {
		    "ada": {"enabled": true, "label": "Ada", "profiles": {
		      "dev": {"enabled": true, "dataFile": "data/ada-dev.json"},
		      "art": {"enabled": true, "dataFile": "data/ada-art.json"},
		      "old": {"enabled": false, "dataFile": "data/ada-old.json"}
		    }},
		    "bob": {"enabled": false, "profiles": {"dev": {"enabled": true, "dataFile": "data/bob.json"}}}
		  }
		}`,
		"data/ada-dev.json": `{"headline": "Dev", "sections": [{"title": "Contact", "visible": true, "kind": "keyValue", "content": {"Web": "https://ada.dev"}}]}`,
		"data/ada-art.json": `{"headline": "Art", "sections": []}`,
		"data/landing.json": `{"title": "Fair", "groups": [{"title": "People", "items": [{"name": "Ada", "href": "people/ada/dev/index.html"}]}]}`,
		"assets/img/ada.png": "png",
		"assets/notes.txt":   "txt",
	})

	cfg := config.DefaultConfig()
	cfg.SiteRoot = root
	cfg.OutputDir = filepath.Join(t.TempDir(), "public")
	cfg.Assets = []string{"assets/**/*.png"}
	cfg.Pages = []config.PageConfig{
		{Path: "/", Archetype: "landing", Data: "data/landing.json"},
		{Path: "/people/", Archetype: "index"},
	}
	return cfg, root
}

func TestGenerate(t *testing.T) {
	cfg, root := testSite(t)
	g := NewGenerator(cfg, loader.New(root))
	g.Markdown = true

	m, err := g.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if m.BuildID == "" {
		t.Error("manifest has no build id")
	}

	wantPages := []string{
		"index.html",
		"people/index.html",
		"people/ada/index.html",
		"people/ada/dev/index.html",
		"people/ada/art/index.html",
	}
	if len(m.Pages) != len(wantPages) {
		t.Fatalf("pages = %d, want %d: %+v", len(m.Pages), len(wantPages), m.Pages)
	}
	for i, want := range wantPages {
		if m.Pages[i].Path != want {
			t.Errorf("page %d = %q, want %q", i, m.Pages[i].Path, want)
		}
		if _, err := os.Stat(filepath.Join(cfg.OutputDir, filepath.FromSlash(want))); err != nil {
			t.Errorf("%s not written: %v", want, err)
		}
	}
	for _, missing := range []string{"people/ada/old/index.html", "people/bob/index.html"} {
		if _, err := os.Stat(filepath.Join(cfg.OutputDir, filepath.FromSlash(missing))); err == nil {
			t.Errorf("%s exported for disabled entry", missing)
		}
	}

	dev, err := os.ReadFile(filepath.Join(cfg.OutputDir, "people", "ada", "dev", "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`href="../../../persona.css"`,
		`href="../../ada/art/index.html"`,
		`<a href="https://ada.dev" target="_blank" rel="noopener noreferrer">https://ada.dev</a>`,
	} {
		if !strings.Contains(string(dev), want) {
			t.Errorf("ada/dev page missing %q", want)
		}
	}

	md, err := os.ReadFile(filepath.Join(cfg.OutputDir, "people", "ada", "dev", "index.md"))
	if err != nil {
		t.Fatalf("markdown export missing: %v", err)
	}
	if !strings.Contains(string(md), "## Contact") {
		t.Errorf("markdown = %q", md)
	}

	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "assets", "img", "ada.png")); err != nil {
		t.Errorf("asset not copied: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "assets", "notes.txt")); err == nil {
		t.Error("asset outside the globs copied")
	}

	read, err := ReadManifest(filepath.Join(cfg.OutputDir, ManifestName))
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	if read.BuildID != m.BuildID {
		t.Errorf("manifest build id = %q, want %q", read.BuildID, m.BuildID)
	}
}

func TestGenerateWritesFailureView(t *testing.T) {
	cfg, root := testSite(t)
	cfg.Pages = append(cfg.Pages, config.PageConfig{Path: "/biz/", Archetype: "business", Data: "data/missing.json"})

	m, err := NewGenerator(cfg, loader.New(root)).Generate(context.Background())
	if err == nil {
		t.Fatal("expected an error for the missing business document")
	}
	if m == nil || len(m.Failures) != 1 || m.Failures[0] != "biz/index.html" {
		t.Fatalf("failures = %+v", m)
	}
	out, readErr := os.ReadFile(filepath.Join(cfg.OutputDir, "biz", "index.html"))
	if readErr != nil {
		t.Fatal(readErr)
	}
	if !strings.Contains(string(out), "Failed to load profile") {
		t.Errorf("failure view not written: %s", out)
	}
}

func TestGenerateSkipsUnsafeKeys(t *testing.T) {
	cfg, root := testSite(t)
	writeFiles(t, root, map[string]string{
		"data/site.json": `{
		  "defaults": {"person": "ada", "profile": "dev"},
		  "people": {
		    "ada": {"enabled": true, "profiles": {
		      "dev": {"enabled": true, "dataFile": "data/ada-dev.json"},
		      "a/b": {"enabled": true, "dataFile": "data/ada-dev.json"}
		    }},
		    "..": {"enabled": true, "profiles": {"x": {"enabled": true, "dataFile": "data/ada-dev.json"}}}
		  }
		}`,
	})

	m, err := NewGenerator(cfg, loader.New(root)).Generate(context.Background())
	if !errors.Is(err, ErrUnsafeKey) {
		t.Fatalf("Generate error = %v, want ErrUnsafeKey", err)
	}
	if m == nil {
		t.Fatal("no manifest")
	}
	for _, p := range m.Pages {
		if strings.Contains(p.Path, "..") || strings.Contains(p.Path, "a/b") {
			t.Errorf("unsafe page exported: %s", p.Path)
		}
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "people", "ada", "dev", "index.html")); err != nil {
		t.Errorf("safe selection not exported: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "x")); !os.IsNotExist(err) {
		t.Errorf("page written outside its mount: %v", err)
	}
}

func TestFileHandler(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"index.html": "<p>hi</p>"})

	rec := httptest.NewRecorder()
	FileHandler(dir).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "hi") {
		t.Errorf("GET / = %d %q", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("Cache-Control") != "no-store" {
		t.Error("cache header missing")
	}
}
