// Package loader fetches site documents from a local directory or a remote
// base URL and decodes them into model types.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ziadkadry99/persona/internal/model"
)

// StatusError reports a non-success HTTP response.
type StatusError struct {
	Path string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Failed to load %s: %d", e.Path, e.Code)
}

// DecodeError reports a document that is not valid for its type.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Loader reads documents relative to Root, which is either a directory or
// an http(s) base URL. Every call reads fresh; nothing is cached.
type Loader struct {
	Root   string
	Client *http.Client
}

// New returns a Loader for root using http.DefaultClient for remote roots.
func New(root string) *Loader {
	return &Loader{Root: root, Client: http.DefaultClient}
}

// Remote reports whether the loader reads over HTTP.
func (l *Loader) Remote() bool {
	return strings.HasPrefix(l.Root, "http://") || strings.HasPrefix(l.Root, "https://")
}

// SiteConfig loads the people/profiles configuration document.
func (l *Loader) SiteConfig(ctx context.Context, p string) (*model.SiteConfig, error) {
	var cfg model.SiteConfig
	if err := l.decode(ctx, p, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ProfileData loads a keyValue profile document.
func (l *Loader) ProfileData(ctx context.Context, p string) (*model.ProfileData, error) {
	var pd model.ProfileData
	if err := l.decode(ctx, p, &pd); err != nil {
		return nil, err
	}
	return &pd, nil
}

// PersonaProfile loads a persona profile or business document.
func (l *Loader) PersonaProfile(ctx context.Context, p string) (*model.PersonaProfile, error) {
	var doc model.PersonaProfile
	if err := l.decode(ctx, p, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Landing loads a landing document.
func (l *Loader) Landing(ctx context.Context, p string) (*model.Landing, error) {
	var doc model.Landing
	if err := l.decode(ctx, p, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Raw returns the document at p as JSON bytes.
func (l *Loader) Raw(ctx context.Context, p string) ([]byte, error) {
	data, err := l.read(ctx, p)
	if err != nil {
		return nil, err
	}
	if isYAML(p) {
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, &DecodeError{Path: p, Err: err}
		}
		data = converted
	}
	return data, nil
}

func (l *Loader) decode(ctx context.Context, p string, v any) error {
	data, err := l.Raw(ctx, p)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &DecodeError{Path: p, Err: err}
	}
	return nil
}

func (l *Loader) read(ctx context.Context, p string) ([]byte, error) {
	if l.Remote() {
		return l.fetch(ctx, p)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(l.localPath(p))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", p, err)
	}
	return data, nil
}

// localPath keeps p inside Root.
func (l *Loader) localPath(p string) string {
	clean := path.Clean("/" + strings.TrimPrefix(p, "./"))
	return filepath.Join(l.Root, filepath.FromSlash(clean))
}

func (l *Loader) fetch(ctx context.Context, p string) ([]byte, error) {
	base, err := url.Parse(strings.TrimSuffix(l.Root, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("parsing root %q: %w", l.Root, err)
	}
	ref, err := url.Parse(strings.TrimPrefix(p, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing path %q: %w", p, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base.ResolveReference(ref).String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", p, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Path: p, Code: resp.StatusCode}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", p, err)
	}
	return data, nil
}

func isYAML(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
