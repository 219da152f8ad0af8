// Package check lints a persona site: it renders every page the way the
// server would and reports what would fail or degrade.
package check

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ziadkadry99/persona/internal/config"
	"github.com/ziadkadry99/persona/internal/links"
	"github.com/ziadkadry99/persona/internal/page"
	"github.com/ziadkadry99/persona/internal/selection"
)

// Level ranks a finding.
type Level string

const (
	Warning Level = "warning"
	Error   Level = "error"
)

// Finding is one problem found in the site.
type Finding struct {
	Level   Level
	Path    string
	Message string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s: %s", f.Level, f.Path, f.Message)
}

// Report collects findings in the order they were found.
type Report struct {
	Findings []Finding
	// Pages is the number of page renders attempted.
	Pages int
}

// Errors returns the number of error findings.
func (r *Report) Errors() int {
	n := 0
	for _, f := range r.Findings {
		if f.Level == Error {
			n++
		}
	}
	return n
}

func (r *Report) add(level Level, p, format string, args ...any) {
	r.Findings = append(r.Findings, Finding{Level: level, Path: p, Message: fmt.Sprintf(format, args...)})
}

// Checker renders pages from Source. Root, when set, is the local site
// directory scanned for unreferenced data documents.
type Checker struct {
	Config *config.Config
	Source page.Source
	Root   fs.FS
}

// New returns a Checker. Local site roots are scanned for orphans.
func New(cfg *config.Config, source page.Source, remote bool) *Checker {
	c := &Checker{Config: cfg, Source: source}
	if !remote {
		c.Root = os.DirFS(cfg.SiteRoot)
	}
	return c
}

// Run checks every configured page.
func (c *Checker) Run(ctx context.Context) (*Report, error) {
	r := &Report{}
	referenced := map[string]bool{}

	for _, pc := range c.Config.EffectivePages() {
		archetype, err := page.ParseArchetype(pc.Archetype)
		if err != nil {
			return nil, err
		}
		if archetype != page.ArchetypeIndex {
			referenced[clean(pc.Data)] = true
			c.render(ctx, r, pc.Path, page.Options{Archetype: archetype, DataPath: pc.Data, Source: c.Source}, "", "")
			continue
		}

		referenced[clean(c.Config.SiteConfig)] = true
		if err := c.index(ctx, r, pc, referenced); err != nil {
			return nil, err
		}
	}

	if c.Root != nil {
		if err := c.orphans(r, referenced); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (c *Checker) index(ctx context.Context, r *Report, pc config.PageConfig, referenced map[string]bool) error {
	cfg, err := c.Source.SiteConfig(ctx, c.Config.SiteConfig)
	if err != nil {
		r.Pages++
		r.add(Error, c.Config.SiteConfig, "%v", err)
		return nil
	}

	if d := cfg.Defaults.Person; d != "" && !cfg.PersonEnabled(d) {
		r.add(Warning, c.Config.SiteConfig, "defaults.person %q is missing or disabled", d)
	}
	if d := cfg.Defaults.Profile; d != "" {
		sel := selection.Resolve(cfg, "", "")
		if sel.Valid() && sel.Profile != d {
			r.add(Warning, c.Config.SiteConfig, "defaults.profile %q is not enabled for %q", d, sel.Person)
		}
	}

	for _, person := range cfg.PersonKeys() {
		if !links.SafeKey(person) {
			r.add(Error, c.Config.SiteConfig, "person key %q cannot be exported: use a single path segment", person)
		}
		p, _ := cfg.Person(person)
		for _, key := range p.ProfileKeys() {
			if !links.SafeKey(key) {
				r.add(Error, c.Config.SiteConfig, "profile key %q of %q cannot be exported: use a single path segment", key, person)
			}
		}
	}

	sels := selection.Enumerate(cfg)
	if len(sels) == 0 {
		r.add(Error, c.Config.SiteConfig, "no enabled person has an enabled profile")
		return nil
	}

	opts := page.Options{Archetype: page.ArchetypeIndex, SiteConfigPath: c.Config.SiteConfig, Source: c.Source}
	for _, sel := range sels {
		p, _ := cfg.Person(sel.Person)
		ref, _ := p.Profile(sel.Profile)
		if ref.DataFile != "" {
			referenced[clean(ref.DataFile)] = true
		}
		c.render(ctx, r, fmt.Sprintf("%s?person=%s&profile=%s", pc.Path, sel.Person, sel.Profile), opts, sel.Person, sel.Profile)
	}
	// Disabled entries still count as referenced so they are not reported
	// as orphans.
	for _, person := range cfg.PersonKeys() {
		p, _ := cfg.Person(person)
		for _, key := range p.ProfileKeys() {
			if ref, _ := p.Profile(key); ref.DataFile != "" {
				referenced[clean(ref.DataFile)] = true
			}
		}
	}
	return nil
}

func (c *Checker) render(ctx context.Context, r *Report, where string, opts page.Options, person, profile string) {
	r.Pages++
	res, err := page.Render(ctx, opts, person, profile)
	if err != nil {
		r.add(Error, where, "%v", err)
		return
	}
	for _, kind := range res.Unsupported {
		r.add(Warning, where, "section kind %q renders as unsupported", kind)
	}
}

// orphans reports data documents next to the site config that nothing
// references.
func (c *Checker) orphans(r *Report, referenced map[string]bool) error {
	dir := path.Dir(clean(c.Config.SiteConfig))
	pattern := "**/*.{json,yaml,yml}"
	if dir != "." {
		pattern = dir + "/" + pattern
	}
	matches, err := doublestar.Glob(c.Root, pattern)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", dir, err)
	}
	sort.Strings(matches)
	for _, m := range matches {
		if referenced[m] || c.excluded(m) {
			continue
		}
		r.add(Warning, m, "not referenced by any page or profile")
	}
	return nil
}

func (c *Checker) excluded(p string) bool {
	for _, pattern := range c.Config.Exclude {
		if ok, _ := doublestar.Match(pattern, p); ok {
			return true
		}
	}
	return false
}

func clean(p string) string {
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}
