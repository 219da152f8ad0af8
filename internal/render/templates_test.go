package render

import (
	"bytes"
	"html/template"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/ziadkadry99/persona/internal/links"
	"github.com/ziadkadry99/persona/internal/selection"
)

// byID walks the parsed document and returns the element with the given id.
func byID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := byID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textOf(n *html.Node) string {
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

func TestWriteIndex(t *testing.T) {
	opts := []selection.Option{{Key: "dev", Label: "Developer"}, {Key: "art", Label: "Artist"}}
	page := IndexPage{
		Chrome: Chrome{
			BasePath:  "../../",
			ThemeAttr: template.HTMLAttr(`data-theme="dark"`),
			ThemeMode: "dark", ThemeVariant: "two-state", ThemeKey: "theme",
			ThemeLabel: "Light", ThemeAria: "Switch to Light mode",
		},
		DocTitle:      "Ada — Developer",
		SiteTitle:     "Sites & Co",
		Person:        "ada",
		PersonDisplay: "Ada",
		SelectOptions: template.HTML(SelectOptions("ada", opts, "dev", links.Href)),
		Tabs:          template.HTML(Tabs("ada", opts, "dev", links.Href)),
		HeroTitle:     "Ada — Developer",
		ShareHref:     links.Href("ada", "dev"),
	}

	var buf bytes.Buffer
	if err := WriteIndex(&buf, page); err != nil {
		t.Fatalf("WriteIndex: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `href="../../persona.css"`) {
		t.Error("stylesheet path not relative to base")
	}
	doc, err := html.Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("html.Parse: %v", err)
	}

	root := doc.FirstChild.NextSibling
	if root == nil || root.Data != "html" {
		t.Fatalf("no html element")
	}
	if got := attr(root, "data-theme"); got != "dark" {
		t.Errorf("data-theme = %q, want dark", got)
	}

	if n := byID(doc, "site-title"); n == nil || textOf(n) != "Sites & Co" {
		t.Errorf("site-title wrong")
	}
	share := byID(doc, "share-link")
	if share == nil || attr(share, "href") != "./?person=ada&profile=dev" {
		t.Errorf("share-link href wrong")
	}
	toggle := byID(doc, "theme-toggle")
	if toggle == nil || attr(toggle, "aria-label") != "Switch to Light mode" {
		t.Errorf("theme-toggle aria-label wrong")
	}
	if toggle != nil && toggle.Parent.Data == "form" {
		t.Error("toggle wrapped in form without endpoint")
	}

	sel := byID(doc, "profile-select")
	if sel == nil {
		t.Fatal("profile-select missing")
	}
	var selected []string
	for c := sel.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		for _, a := range c.Attr {
			if a.Key == "selected" {
				selected = append(selected, attr(c, "value"))
			}
		}
	}
	if len(selected) != 1 || selected[0] != "dev" {
		t.Errorf("selected options = %v, want [dev]", selected)
	}
}

func TestWritePersonaThemeEndpoint(t *testing.T) {
	var buf bytes.Buffer
	err := WritePersona(&buf, PersonaPage{
		Chrome: Chrome{
			ThemeAttr:     template.HTMLAttr(`data-bs-theme="light"`),
			ThemeMode:     "system",
			ThemeVariant:  "three-state",
			ThemeLabel:    "Theme: System",
			ThemeEndpoint: "/_persona/theme",
		},
		DocTitle: "Ada · persona",
		NavTitle: "Ada",
		Main:     template.HTML(`<p>main</p>`),
	})
	if err != nil {
		t.Fatalf("WritePersona: %v", err)
	}
	doc, err := html.Parse(&buf)
	if err != nil {
		t.Fatalf("html.Parse: %v", err)
	}
	btn := byID(doc, "personaThemeBtn")
	if btn == nil {
		t.Fatal("theme button missing")
	}
	if btn.Parent.Data != "form" || attr(btn.Parent, "action") != "/_persona/theme" {
		t.Errorf("theme button not posting to endpoint")
	}
	var current string
	for c := btn.Parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && attr(c, "name") == "current" {
			current = attr(c, "value")
		}
	}
	if current != "system" {
		t.Errorf("current field = %q, want system", current)
	}
	if textOf(btn) != "Theme: System" {
		t.Errorf("label = %q", textOf(btn))
	}
	if app := byID(doc, "app"); app == nil || !strings.Contains(textOf(app), "main") {
		t.Error("main content missing")
	}
}

func TestWriteFailure(t *testing.T) {
	var buf bytes.Buffer
	body := Failure("Failed to load", &testError{"Failed to load data/site.json: 404"}, true)
	if err := WriteFailure(&buf, FailurePage{DocTitle: "Error", Body: template.HTML(body)}); err != nil {
		t.Fatalf("WriteFailure: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Failed to load data/site.json: 404") {
		t.Errorf("message missing: %s", out)
	}
	if !strings.Contains(out, "persona serve --port 8080") {
		t.Errorf("hint missing: %s", out)
	}
}

func TestFailureWithoutHint(t *testing.T) {
	got := Failure("Oops", nil, false)
	if strings.Contains(got, "persona serve") {
		t.Error("hint rendered")
	}
	if !strings.Contains(got, "unknown error") {
		t.Errorf("got %s", got)
	}
}

type testError struct{ msg string }

func (e *testError) Error() string { return e.msg }
