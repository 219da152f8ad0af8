// Package page runs the per-page load sequence: fetch the documents a page
// archetype needs, resolve the selection and render the shell. Every entry
// point takes an explicit Options value instead of reading page globals.
package page

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"

	"github.com/ziadkadry99/persona/internal/links"
	"github.com/ziadkadry99/persona/internal/model"
	"github.com/ziadkadry99/persona/internal/render"
	"github.com/ziadkadry99/persona/internal/selection"
)

// Archetype names the kind of page being rendered.
type Archetype string

const (
	ArchetypeIndex    Archetype = "index"
	ArchetypeProfile  Archetype = "profile"
	ArchetypeBusiness Archetype = "business"
	ArchetypeLanding  Archetype = "landing"
)

// ParseArchetype validates a configured archetype name.
func ParseArchetype(s string) (Archetype, error) {
	switch a := Archetype(s); a {
	case ArchetypeIndex, ArchetypeProfile, ArchetypeBusiness, ArchetypeLanding:
		return a, nil
	}
	return "", fmt.Errorf("unknown page archetype %q", s)
}

var (
	// ErrMissingDataFile is returned when the resolved profile has no data file.
	ErrMissingDataFile = errors.New("Missing dataFile for the selected person/profile.")
	// ErrNoSelection is returned when the config has nothing enabled to show.
	ErrNoSelection = errors.New("no enabled person/profile in site config")
)

// Source supplies the documents a page needs. *loader.Loader implements it.
type Source interface {
	SiteConfig(ctx context.Context, path string) (*model.SiteConfig, error)
	ProfileData(ctx context.Context, path string) (*model.ProfileData, error)
	PersonaProfile(ctx context.Context, path string) (*model.PersonaProfile, error)
	Landing(ctx context.Context, path string) (*model.Landing, error)
}

// Options configures one page render.
type Options struct {
	Archetype Archetype
	// SiteConfigPath is the people/profiles document for index pages.
	SiteConfigPath string
	// DataPath is the document for profile, business and landing pages.
	DataPath string
	Source   Source
	// Links builds selection hrefs; links.Href when nil.
	Links  links.Func
	Chrome render.Chrome
}

func (o Options) links() links.Func {
	if o.Links != nil {
		return o.Links
	}
	return links.Href
}

// Result is a rendered page ready to be written.
type Result struct {
	Archetype Archetype
	Title     string
	Selection selection.Selection
	// Unsupported lists section kinds that rendered as a notice.
	Unsupported []string

	index   *render.IndexPage
	persona *render.PersonaPage
}

// Write executes the page shell into w.
func (r *Result) Write(w io.Writer) error {
	if r.index != nil {
		return render.WriteIndex(w, *r.index)
	}
	return render.WritePersona(w, *r.persona)
}

// Body returns the rendered main content, without the shell.
func (r *Result) Body() string {
	if r.index != nil {
		return string(r.index.Sections)
	}
	return string(r.persona.Main)
}

// Render dispatches on opts.Archetype. person and profile are only used by
// index pages.
func Render(ctx context.Context, opts Options, person, profile string) (*Result, error) {
	switch opts.Archetype {
	case ArchetypeIndex, "":
		return Index(ctx, opts, person, profile)
	case ArchetypeProfile:
		return Profile(ctx, opts)
	case ArchetypeBusiness:
		return Business(ctx, opts)
	case ArchetypeLanding:
		return Landing(ctx, opts)
	}
	return nil, fmt.Errorf("unknown page archetype %q", opts.Archetype)
}

// Index renders the person/profile page: config, selection, navigation,
// then the selected profile's sections.
func Index(ctx context.Context, opts Options, person, profile string) (*Result, error) {
	cfg, err := opts.Source.SiteConfig(ctx, opts.SiteConfigPath)
	if err != nil {
		return nil, err
	}

	siteTitle := cfg.Site.Title
	if siteTitle == "" {
		siteTitle = "Multi-Profile Static Site"
	}

	sel := selection.Resolve(cfg, person, profile)
	if !sel.Valid() {
		return nil, ErrNoSelection
	}

	href := opts.links()
	personLabel := cfg.PersonLabel(sel.Person)
	options := selection.ProfileOptions(cfg, sel.Person)

	p := &render.IndexPage{
		Chrome:        opts.Chrome,
		DocTitle:      siteTitle,
		SiteTitle:     siteTitle,
		Tagline:       cfg.Site.Tagline,
		Person:        sel.Person,
		PersonDisplay: personLabel,
		SelectOptions: template.HTML(render.SelectOptions(sel.Person, options, sel.Profile, href)),
		Tabs:          template.HTML(render.Tabs(sel.Person, options, sel.Profile, href)),
		QuickLinks:    template.HTML(render.QuickLinks(cfg, sel.Person, sel.Profile, href)),
	}

	who, _ := cfg.Person(sel.Person)
	ref, ok := who.Profile(sel.Profile)
	if !ok || ref.DataFile == "" {
		return nil, ErrMissingDataFile
	}
	data, err := opts.Source.ProfileData(ctx, ref.DataFile)
	if err != nil {
		return nil, err
	}

	p.HeroTitle = personLabel + " — " + cfg.ProfileLabel(sel.Profile)
	p.HeroSubtitle = string(data.Headline)
	p.Sections = template.HTML(render.Sections(*data))
	p.ShareHref = href(sel.Person, sel.Profile)

	return &Result{
		Archetype:   ArchetypeIndex,
		Title:       siteTitle,
		Selection:   sel,
		Unsupported: render.UnsupportedKinds(*data),
		index:       p,
	}, nil
}

// Profile renders a single persona profile document.
func Profile(ctx context.Context, opts Options) (*Result, error) {
	return persona(ctx, opts, ArchetypeProfile)
}

// Business renders a business document; it shares the profile layout.
func Business(ctx context.Context, opts Options) (*Result, error) {
	return persona(ctx, opts, ArchetypeBusiness)
}

func persona(ctx context.Context, opts Options, a Archetype) (*Result, error) {
	doc, err := opts.Source.PersonaProfile(ctx, opts.DataPath)
	if err != nil {
		return nil, err
	}
	title := doc.Hero.Title.Or("Profile") + " · persona"
	var unknown []string
	for _, s := range doc.Sections {
		if u, ok := s.(model.UnknownSection); ok {
			unknown = append(unknown, u.Type)
		}
	}
	return &Result{
		Archetype:   a,
		Title:       title,
		Unsupported: unknown,
		persona: &render.PersonaPage{
			Chrome:   opts.Chrome,
			DocTitle: title,
			NavTitle: doc.NavTitle.Or("persona"),
			Main:     template.HTML(render.ProfileMain(*doc)),
		},
	}, nil
}

// Landing renders the landing document.
func Landing(ctx context.Context, opts Options) (*Result, error) {
	doc, err := opts.Source.Landing(ctx, opts.DataPath)
	if err != nil {
		return nil, err
	}
	const title = "persona · fairs"
	return &Result{
		Archetype: ArchetypeLanding,
		Title:     title,
		persona: &render.PersonaPage{
			Chrome:   opts.Chrome,
			DocTitle: title,
			NavTitle: "persona",
			Main:     template.HTML(render.LandingMain(*doc)),
		},
	}, nil
}

// Failure renders the view that replaces a page whose load failed.
func Failure(err error, a Archetype) string {
	switch a {
	case ArchetypeProfile, ArchetypeBusiness:
		return render.Failure("Failed to load profile", err, true)
	case ArchetypeLanding:
		return render.Failure("Failed to load site", err, false)
	}
	return render.Failure("Failed to load site", err, true)
}

// WriteFailure writes the full failure page.
func WriteFailure(w io.Writer, err error, a Archetype, chrome render.Chrome) error {
	return render.WriteFailure(w, render.FailurePage{
		Chrome:   chrome,
		DocTitle: "persona",
		Body:     template.HTML(Failure(err, a)),
	})
}
