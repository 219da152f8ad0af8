// Package site exports every configured page to a static directory tree
// that works from any sub-path without a server.
package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"

	"github.com/ziadkadry99/persona/internal/config"
	"github.com/ziadkadry99/persona/internal/export"
	"github.com/ziadkadry99/persona/internal/links"
	"github.com/ziadkadry99/persona/internal/page"
	"github.com/ziadkadry99/persona/internal/progress"
	"github.com/ziadkadry99/persona/internal/render"
	"github.com/ziadkadry99/persona/internal/selection"
	"github.com/ziadkadry99/persona/internal/theme"
)

// Generator renders pages ahead of time.
type Generator struct {
	Config    *config.Config
	Source    page.Source
	OutputDir string
	// Markdown writes an index.md next to every index.html.
	Markdown bool
	Reporter progress.Reporter
}

// NewGenerator creates a Generator for cfg reading documents from source.
func NewGenerator(cfg *config.Config, source page.Source) *Generator {
	return &Generator{
		Config:    cfg,
		Source:    source,
		OutputDir: cfg.OutputDir,
		Reporter:  progress.Discard{},
	}
}

// ErrUnsafeKey reports a person or profile key that cannot be exported
// because it is not a single path segment.
var ErrUnsafeKey = errors.New("key is not usable as a directory name")

// job is one page to export.
type job struct {
	rel     string // output dir relative to OutputDir, "" for the root
	mount   string // dir of the configured page the job belongs to
	opts    page.Options
	person  string
	profile string
}

// Generate exports every page and returns the build manifest. A page whose
// load fails is written as the failure view and reported in the returned
// error; the remaining pages are still exported.
func (g *Generator) Generate(ctx context.Context) (*Manifest, error) {
	variant, err := theme.ParseVariant(g.Config.Theme.Variant)
	if err != nil {
		return nil, err
	}

	jobs, skipped, err := g.plan(ctx)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	m := &Manifest{BuildID: uuid.NewString(), Generated: time.Now().UTC()}

	assets, err := g.writeAssets()
	if err != nil {
		return nil, err
	}
	m.Assets = assets

	ctl := &theme.Controller{Variant: variant}
	applied, _ := ctl.Initial(ctx)
	converter := export.NewConverter()

	reporter := g.Reporter
	if reporter == nil {
		reporter = progress.Discard{}
	}
	reporter.Start(len(jobs))
	defer reporter.Finish()

	failures := skipped
	for i, j := range jobs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		outRel := path.Join(j.rel, "index.html")
		reporter.Update(i+1, outRel)

		j.opts.Chrome = page.Chrome(applied, variant, g.Config.StorageKey(), false, links.BasePath(j.rel), "")
		j.opts.Links = links.Static(links.BasePath(strings.TrimPrefix(strings.TrimPrefix(j.rel, j.mount), "/")))

		var buf bytes.Buffer
		res, err := page.Render(ctx, j.opts, j.person, j.profile)
		if err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", outRel, err))
			m.Failures = append(m.Failures, outRel)
			if werr := page.WriteFailure(&buf, err, j.opts.Archetype, j.opts.Chrome); werr != nil {
				return nil, werr
			}
			if err := g.write(outRel, buf.Bytes()); err != nil {
				return nil, err
			}
			continue
		}
		if err := res.Write(&buf); err != nil {
			return nil, fmt.Errorf("rendering %s: %w", outRel, err)
		}
		if err := g.write(outRel, buf.Bytes()); err != nil {
			return nil, err
		}

		entry := ManifestPage{
			Path:      outRel,
			Title:     res.Title,
			Archetype: string(res.Archetype),
			Person:    res.Selection.Person,
			Profile:   res.Selection.Profile,
		}
		if g.Markdown {
			md, err := converter.Page(res)
			if err != nil {
				return nil, fmt.Errorf("exporting %s as markdown: %w", outRel, err)
			}
			entry.Markdown = path.Join(j.rel, "index.md")
			if err := g.write(entry.Markdown, []byte(md)); err != nil {
				return nil, err
			}
		}
		m.Pages = append(m.Pages, entry)
	}

	if err := WriteManifest(m, filepath.Join(g.OutputDir, ManifestName)); err != nil {
		return nil, err
	}
	return m, errors.Join(failures...)
}

// plan expands the configured pages into export jobs. Index pages produce
// one job per enabled selection, one per enabled person (its default
// profile) and one for the default selection at the mount point.
// Selections whose keys cannot name a directory are skipped and reported.
func (g *Generator) plan(ctx context.Context) ([]job, []error, error) {
	var (
		jobs    []job
		skipped []error
	)
	for _, p := range g.Config.EffectivePages() {
		archetype, err := page.ParseArchetype(p.Archetype)
		if err != nil {
			return nil, nil, err
		}
		mount := strings.Trim(p.Path, "/")
		opts := page.Options{
			Archetype:      archetype,
			SiteConfigPath: g.Config.SiteConfig,
			DataPath:       p.Data,
			Source:         g.Source,
		}
		if archetype != page.ArchetypeIndex {
			jobs = append(jobs, job{rel: mount, mount: mount, opts: opts})
			continue
		}

		jobs = append(jobs, job{rel: mount, mount: mount, opts: opts})
		cfg, err := g.Source.SiteConfig(ctx, g.Config.SiteConfig)
		if err != nil {
			// The root job renders the failure view for this.
			continue
		}
		for _, person := range cfg.PersonKeys() {
			if !cfg.PersonEnabled(person) {
				continue
			}
			if !links.SafeKey(person) {
				skipped = append(skipped, fmt.Errorf("person %q: %w", person, ErrUnsafeKey))
				continue
			}
			jobs = append(jobs, job{rel: path.Join(mount, links.StaticDir(person, "")), mount: mount, opts: opts, person: person})
		}
		for _, sel := range selection.Enumerate(cfg) {
			if !links.SafeKey(sel.Person) || !links.SafeKey(sel.Profile) {
				if links.SafeKey(sel.Person) {
					skipped = append(skipped, fmt.Errorf("profile %q of %q: %w", sel.Profile, sel.Person, ErrUnsafeKey))
				}
				continue
			}
			jobs = append(jobs, job{
				rel:     path.Join(mount, links.StaticDir(sel.Person, sel.Profile)),
				mount:   mount,
				opts:    opts,
				person:  sel.Person,
				profile: sel.Profile,
			})
		}
	}
	return jobs, skipped, nil
}

func (g *Generator) write(rel string, data []byte) error {
	out := filepath.Join(g.OutputDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	return os.WriteFile(out, data, 0o644)
}

// writeAssets writes the embedded stylesheet and script, then copies every
// file under SiteRoot matching the configured asset globs.
func (g *Generator) writeAssets() ([]string, error) {
	written := []string{render.StylesheetName, render.ScriptName}
	if err := g.write(render.StylesheetName, []byte(render.Stylesheet)); err != nil {
		return nil, err
	}
	if err := g.write(render.ScriptName, []byte(render.Script)); err != nil {
		return nil, err
	}

	root := g.Config.SiteRoot
	if strings.HasPrefix(root, "http://") || strings.HasPrefix(root, "https://") {
		return written, nil
	}
	fsys := os.DirFS(root)
	outAbs, _ := filepath.Abs(g.OutputDir)
	for _, pattern := range g.Config.Assets {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("matching assets %q: %w", pattern, err)
		}
		for _, rel := range matches {
			src := filepath.Join(root, filepath.FromSlash(rel))
			if abs, _ := filepath.Abs(src); strings.HasPrefix(abs, outAbs+string(filepath.Separator)) {
				continue
			}
			if err := copyFile(fsys, rel, filepath.Join(g.OutputDir, filepath.FromSlash(rel))); err != nil {
				return nil, fmt.Errorf("copying %s: %w", rel, err)
			}
			written = append(written, rel)
		}
	}
	return written, nil
}

func copyFile(fsys fs.FS, rel, dst string) error {
	in, err := fsys.Open(rel)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
