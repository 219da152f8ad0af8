package render

import (
	"html/template"
	"io"
)

// Chrome carries the parts every page shell shares: the relative path back to
// the site root, the applied theme and the optional server endpoints.
type Chrome struct {
	BasePath      string
	ThemeAttr     template.HTMLAttr
	ThemeMode     string
	ThemeVariant  string
	ThemeKey      string
	ThemeStored   bool
	ThemeLabel    string
	ThemeAria     string
	ThemeEndpoint string
	LiveReload    string
}

// IndexPage is the data for the person/profile index shell.
type IndexPage struct {
	Chrome
	DocTitle      string
	SiteTitle     string
	Tagline       string
	Person        string
	PersonDisplay string
	SelectOptions template.HTML
	Tabs          template.HTML
	QuickLinks    template.HTML
	HeroTitle     string
	HeroSubtitle  string
	Sections      template.HTML
	ShareHref     string
}

// PersonaPage is the data for landing, profile and business shells.
type PersonaPage struct {
	Chrome
	DocTitle string
	NavTitle string
	Main     template.HTML
}

// FailurePage replaces the whole body when a page fails to load.
type FailurePage struct {
	Chrome
	DocTitle string
	Body     template.HTML
}

var pages = template.Must(template.New("head").Parse(headTemplate))

func init() {
	template.Must(pages.New("index").Parse(indexTemplate))
	template.Must(pages.New("persona").Parse(personaTemplate))
	template.Must(pages.New("failure").Parse(failureTemplate))
}

// WriteIndex renders the index shell.
func WriteIndex(w io.Writer, p IndexPage) error {
	return pages.ExecuteTemplate(w, "index", p)
}

// WritePersona renders a landing, profile or business shell.
func WritePersona(w io.Writer, p PersonaPage) error {
	return pages.ExecuteTemplate(w, "persona", p)
}

// WriteFailure renders the failure shell.
func WriteFailure(w io.Writer, p FailurePage) error {
	return pages.ExecuteTemplate(w, "failure", p)
}

const headTemplate = `{{define "open"}}<!DOCTYPE html>
<html lang="en" {{.ThemeAttr}} data-theme-mode="{{.ThemeMode}}" data-theme-variant="{{.ThemeVariant}}" data-theme-key="{{.ThemeKey}}"{{if .ThemeStored}} data-theme-stored="true"{{end}}{{if .LiveReload}} data-livereload="{{.LiveReload}}"{{end}}>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.DocTitle}}</title>
  <link rel="stylesheet" href="{{.BasePath}}persona.css">
</head>
{{end}}
{{define "close"}}  <script src="{{.BasePath}}persona.js"></script>
</body>
</html>
{{end}}`

const indexTemplate = `{{template "open" .}}<body>
  <header class="site-header container">
    <div>
      <h1 id="site-title">{{.SiteTitle}}</h1>
      <p id="site-tagline" class="muted">{{.Tagline}}</p>
    </div>
    <div class="header-controls">
      <span id="person-display">{{.PersonDisplay}}</span>
      <form method="get" action="./" class="profile-form">
        <input type="hidden" name="person" value="{{.Person}}">
        <select id="profile-select" name="profile">{{.SelectOptions}}</select>
        <noscript><button type="submit">Go</button></noscript>
      </form>
      {{if .ThemeEndpoint}}<form method="post" action="{{.ThemeEndpoint}}" class="theme-form"><input type="hidden" name="current" value="{{.ThemeMode}}"><button id="theme-toggle" type="submit" aria-label="{{.ThemeAria}}">{{.ThemeLabel}}</button></form>{{else}}<button id="theme-toggle" type="button" aria-label="{{.ThemeAria}}">{{.ThemeLabel}}</button>{{end}}
    </div>
  </header>
  <main class="container">
    <nav id="profile-tabs" class="tabs">{{.Tabs}}</nav>
    <section class="hero">
      <h2 id="hero-title">{{.HeroTitle}}</h2>
      <p id="hero-subtitle" class="muted">{{.HeroSubtitle}}</p>
      <a id="share-link" href="{{.ShareHref}}">Copy Link</a>
    </section>
    <div id="quick-links-grid" class="quick-links">{{.QuickLinks}}</div>
    <div id="sections">{{.Sections}}</div>
  </main>
{{template "close" .}}`

const personaTemplate = `{{template "open" .}}<body>
  <nav class="navbar container">
    <span id="navTitle" class="navbar-brand">{{.NavTitle}}</span>
    {{if .ThemeEndpoint}}<form method="post" action="{{.ThemeEndpoint}}" class="theme-form"><input type="hidden" name="current" value="{{.ThemeMode}}"><button id="personaThemeBtn" type="submit" class="btn btn-sm btn-outline-secondary">{{.ThemeLabel}}</button></form>{{else}}<button id="personaThemeBtn" type="button" class="btn btn-sm btn-outline-secondary">{{.ThemeLabel}}</button>{{end}}
  </nav>
  <div id="app"><main class="container my-4">{{.Main}}</main></div>
{{template "close" .}}`

const failureTemplate = `{{template "open" .}}<body>
{{.Body}}
{{template "close" .}}`
