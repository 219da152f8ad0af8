package page

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/ziadkadry99/persona/internal/links"
	"github.com/ziadkadry99/persona/internal/loader"
)

func writeSite(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

const site = `{
  "site": {"title": "Team <Sites>", "tagline": "hello"},
  "defaults": {"person": "ada", "profile": "dev"},
  "people": {
    "ada": {"enabled": true, "label": "Ada", "profiles": {
      "dev": {"enabled": true, "dataFile": "data/ada-dev.json"},
      "art": {"enabled": true}
    }},
    "bob": {"enabled": false, "profiles": {"dev": {"enabled": true, "dataFile": "data/bob.json"}}}
  },
  "profiles": {"dev": {"label": "Developer"}}
}`

const adaDev = `{
  "headline": "Builds things",
  "sections": [
    {"title": "Links", "visible": true, "kind": "keyValue", "content": {"GitHub": {"label": "gh", "href": "https://github.com/ada"}, "CV": "resume.pdf"}},
    {"title": "Chart", "visible": true, "kind": "chart"}
  ]
}`

func indexOpts(dir string) Options {
	return Options{
		Archetype:      ArchetypeIndex,
		SiteConfigPath: "data/site.json",
		Source:         loader.New(dir),
	}
}

func findID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if f := findID(c, id); f != nil {
			return f
		}
	}
	return nil
}

func text(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

const malformedDev = `{"sections": [
  {"title": "Good", "visible": true, "kind": "keyValue", "content": {"k": "v"}},
  {"title": 2024, "visible": 1, "kind": "chart", "content": {}}
]}`

func TestIndexMalformedSectionKeepsPage(t *testing.T) {
	dir := writeSite(t, map[string]string{"data/site.json": site, "data/ada-dev.json": malformedDev})

	res, err := Index(context.Background(), indexOpts(dir), "ada", "dev")
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	body := res.Body()
	if !strings.Contains(body, "<h2>Good</h2>") {
		t.Errorf("valid section missing: %s", body)
	}
	if !strings.Contains(body, "Unsupported section kind: chart") {
		t.Errorf("malformed sibling missing: %s", body)
	}
}

func TestIndexDefaultSelection(t *testing.T) {
	dir := writeSite(t, map[string]string{"data/site.json": site, "data/ada-dev.json": adaDev})

	res, err := Index(context.Background(), indexOpts(dir), "", "")
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if res.Selection.Person != "ada" || res.Selection.Profile != "dev" {
		t.Errorf("Selection = %+v", res.Selection)
	}
	if len(res.Unsupported) != 1 || res.Unsupported[0] != "chart" {
		t.Errorf("Unsupported = %v", res.Unsupported)
	}

	var buf bytes.Buffer
	if err := res.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	doc, err := html.Parse(&buf)
	if err != nil {
		t.Fatal(err)
	}

	checks := map[string]string{
		"site-title":     "Team <Sites>",
		"site-tagline":   "hello",
		"person-display": "Ada",
		"hero-title":     "Ada — Developer",
		"hero-subtitle":  "Builds things",
	}
	for id, want := range checks {
		if got := text(findID(doc, id)); got != want {
			t.Errorf("#%s = %q, want %q", id, got, want)
		}
	}

	sections := text(findID(doc, "sections"))
	if !strings.Contains(sections, "Unsupported section kind: chart") {
		t.Errorf("sections missing unsupported notice: %q", sections)
	}
	if !strings.Contains(sections, "resume.pdf") {
		t.Errorf("sibling section missing: %q", sections)
	}
	if share := findID(doc, "share-link"); share == nil {
		t.Error("share link missing")
	}
}

func TestIndexDisabledPersonFallsBack(t *testing.T) {
	dir := writeSite(t, map[string]string{"data/site.json": site, "data/ada-dev.json": adaDev})
	res, err := Index(context.Background(), indexOpts(dir), "bob", "dev")
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if res.Selection.Person != "ada" {
		t.Errorf("Person = %q, want ada", res.Selection.Person)
	}
}

func TestIndexMissingDataFile(t *testing.T) {
	dir := writeSite(t, map[string]string{"data/site.json": site})
	_, err := Index(context.Background(), indexOpts(dir), "ada", "art")
	if !errors.Is(err, ErrMissingDataFile) {
		t.Errorf("err = %v, want ErrMissingDataFile", err)
	}
}

func TestIndexMissingProfileDocument(t *testing.T) {
	dir := writeSite(t, map[string]string{"data/site.json": site})
	_, err := Index(context.Background(), indexOpts(dir), "", "")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want fs.ErrNotExist", err)
	}
}

func TestIndexNothingEnabled(t *testing.T) {
	dir := writeSite(t, map[string]string{"data/site.json": `{"people": {"x": {"enabled": false}}}`})
	_, err := Index(context.Background(), indexOpts(dir), "", "")
	if !errors.Is(err, ErrNoSelection) {
		t.Errorf("err = %v, want ErrNoSelection", err)
	}
}

func TestIndexStaticLinks(t *testing.T) {
	dir := writeSite(t, map[string]string{"data/site.json": site, "data/ada-dev.json": adaDev})
	opts := indexOpts(dir)
	opts.Links = links.Static("../../")
	res, err := Index(context.Background(), opts, "ada", "dev")
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	var buf bytes.Buffer
	if err := res.Write(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `href="../../ada/dev/index.html"`) {
		t.Errorf("static share link missing")
	}
}

func TestProfileAndBusiness(t *testing.T) {
	dir := writeSite(t, map[string]string{
		"p.json": `{"navTitle": "Ada", "hero": {"title": "Ada L."}, "sections": [{"type": "text", "title": "About", "body": "hi"}, {"type": "map"}]}`,
		"b.json": `{"sections": []}`,
	})
	src := loader.New(dir)

	res, err := Profile(context.Background(), Options{Archetype: ArchetypeProfile, DataPath: "p.json", Source: src})
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if res.Title != "Ada L. · persona" {
		t.Errorf("Title = %q", res.Title)
	}
	if len(res.Unsupported) != 1 || res.Unsupported[0] != "map" {
		t.Errorf("Unsupported = %v", res.Unsupported)
	}
	if !strings.Contains(res.Body(), "persona · static profiles") {
		t.Error("footer missing")
	}

	res, err = Business(context.Background(), Options{DataPath: "b.json", Source: src})
	if err != nil {
		t.Fatalf("Business: %v", err)
	}
	if res.Title != "Profile · persona" || res.Archetype != ArchetypeBusiness {
		t.Errorf("Business result = %q / %q", res.Title, res.Archetype)
	}
	var buf bytes.Buffer
	if err := res.Write(&buf); err != nil {
		t.Fatal(err)
	}
	doc, _ := html.Parse(&buf)
	if got := text(findID(doc, "navTitle")); got != "persona" {
		t.Errorf("navTitle = %q, want persona", got)
	}
}

func TestLanding(t *testing.T) {
	dir := writeSite(t, map[string]string{"l.json": `{"groups": [{"title": "Speakers", "items": [{"name": "Ada", "href": "ada/"}]}]}`})
	res, err := Render(context.Background(), Options{Archetype: ArchetypeLanding, DataPath: "l.json", Source: loader.New(dir)}, "", "")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if res.Title != "persona · fairs" {
		t.Errorf("Title = %q", res.Title)
	}
	if !strings.Contains(res.Body(), "Speakers") {
		t.Error("group missing")
	}
}

func TestFailure(t *testing.T) {
	err := &loader.StatusError{Path: "data/site.json", Code: 404}
	tests := []struct {
		archetype Archetype
		heading   string
		hint      bool
	}{
		{ArchetypeIndex, "Failed to load site", true},
		{ArchetypeProfile, "Failed to load profile", true},
		{ArchetypeBusiness, "Failed to load profile", true},
		{ArchetypeLanding, "Failed to load site", false},
	}
	for _, tt := range tests {
		got := Failure(err, tt.archetype)
		if !strings.Contains(got, tt.heading) {
			t.Errorf("Failure(%s) missing heading %q", tt.archetype, tt.heading)
		}
		if !strings.Contains(got, "Failed to load data/site.json: 404") {
			t.Errorf("Failure(%s) missing message", tt.archetype)
		}
		if strings.Contains(got, "persona serve") != tt.hint {
			t.Errorf("Failure(%s) hint = %v, want %v", tt.archetype, !tt.hint, tt.hint)
		}
	}
}

func TestParseArchetype(t *testing.T) {
	if _, err := ParseArchetype("gallery"); err == nil {
		t.Error("expected error")
	}
	if a, err := ParseArchetype("business"); err != nil || a != ArchetypeBusiness {
		t.Errorf("ParseArchetype(business) = %q, %v", a, err)
	}
}
