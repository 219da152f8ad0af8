// Package theme implements the light/dark theme controller. The persisted
// preference is reached through a Store so the same controller works against
// a cookie, a database row or plain memory.
package theme

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Mode is a theme state.
type Mode string

const (
	Light  Mode = "light"
	Dark   Mode = "dark"
	System Mode = "system"
)

// Variant selects the controller behaviour.
type Variant string

const (
	// TwoState flips light and dark; the toggle label names the next mode.
	TwoState Variant = "two-state"
	// ThreeState cycles system, light, dark; the label names the current mode.
	ThreeState Variant = "three-state"
)

// ParseVariant accepts the config spelling of a variant.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case TwoState, ThreeState:
		return Variant(s), nil
	case "":
		return TwoState, nil
	}
	return "", fmt.Errorf("unknown theme variant %q", s)
}

// Attribute is the root element attribute the variant writes.
func (v Variant) Attribute() string {
	if v == ThreeState {
		return "data-bs-theme"
	}
	return "data-theme"
}

// StorageKey is the default preference key for the variant.
func (v Variant) StorageKey() string {
	if v == ThreeState {
		return "persona-theme"
	}
	return "theme"
}

// Valid reports whether m is a state the variant can persist.
func (v Variant) Valid(m Mode) bool {
	switch m {
	case Light, Dark:
		return true
	case System:
		return v == ThreeState
	}
	return false
}

// Store persists the theme preference.
type Store interface {
	Get(ctx context.Context) (string, bool, error)
	Set(ctx context.Context, mode string) error
}

// MemoryStore keeps the preference in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	value string
	ok    bool
}

func (s *MemoryStore) Get(_ context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.ok, nil
}

func (s *MemoryStore) Set(_ context.Context, mode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value, s.ok = mode, true
	return nil
}

// Applied is the visible result of applying a mode: the root attribute to
// set and the toggle control's text.
type Applied struct {
	Attribute string
	Value     string
	Mode      Mode
	Label     string
	AriaLabel string
}

// Controller reconciles the stored preference with the OS preference.
type Controller struct {
	Variant     Variant
	Store       Store
	PrefersDark func() bool
}

var title = cases.Title(language.English)

func (c *Controller) prefersDark() bool {
	return c.PrefersDark != nil && c.PrefersDark()
}

func (c *Controller) osMode() Mode {
	if c.prefersDark() {
		return Dark
	}
	return Light
}

// stored returns the persisted mode when it is valid for the variant.
func (c *Controller) stored(ctx context.Context) (Mode, bool, error) {
	if c.Store == nil {
		return "", false, nil
	}
	v, ok, err := c.Store.Get(ctx)
	if err != nil {
		return "", false, fmt.Errorf("reading theme preference: %w", err)
	}
	m := Mode(v)
	if !ok || !c.Variant.Valid(m) {
		return "", false, nil
	}
	return m, true, nil
}

// Initial computes the state to apply on page load.
func (c *Controller) Initial(ctx context.Context) (Applied, error) {
	m, ok, err := c.stored(ctx)
	if err != nil {
		return c.Apply(c.fallback()), err
	}
	if !ok {
		m = c.fallback()
	}
	return c.Apply(m), nil
}

// Stored reports whether a valid preference is persisted.
func (c *Controller) Stored(ctx context.Context) bool {
	_, ok, err := c.stored(ctx)
	return ok && err == nil
}

func (c *Controller) fallback() Mode {
	if c.Variant == ThreeState {
		return System
	}
	return c.osMode()
}

// Next returns the state one click moves to from m.
func (c *Controller) Next(m Mode) Mode {
	if c.Variant == ThreeState {
		switch m {
		case System:
			return Light
		case Light:
			return Dark
		default:
			return System
		}
	}
	if m == Dark {
		return Light
	}
	return Dark
}

// Toggle advances the state by one click, persists it and returns the
// applied result. The two-state variant flips the currently applied mode;
// the three-state variant cycles from the stored mode.
func (c *Controller) Toggle(ctx context.Context) (Applied, error) {
	return c.ToggleFrom(ctx, "")
}

// ToggleFrom is Toggle for a client that reports the mode it shows. With
// nothing stored, the two-state variant flips shown instead of the OS
// preference known to the server, which may be missing or stale.
func (c *Controller) ToggleFrom(ctx context.Context, shown Mode) (Applied, error) {
	current, err := c.Initial(ctx)
	if err != nil {
		return current, err
	}
	if c.Variant == TwoState && (shown == Light || shown == Dark) && !c.Stored(ctx) {
		current = c.Apply(shown)
	}
	next := c.Next(current.Mode)
	if c.Store != nil {
		if err := c.Store.Set(ctx, string(next)); err != nil {
			return current, fmt.Errorf("saving theme preference: %w", err)
		}
	}
	return c.Apply(next), nil
}

// Apply resolves m to the attribute value and toggle labels.
func (c *Controller) Apply(m Mode) Applied {
	value := m
	if m == System || !c.Variant.Valid(m) {
		value = c.osMode()
	}
	a := Applied{
		Attribute: c.Variant.Attribute(),
		Value:     string(value),
		Mode:      m,
	}
	if c.Variant == ThreeState {
		a.Label = "Theme: " + title.String(string(m))
		a.AriaLabel = a.Label
		return a
	}
	a.Mode = value
	next := title.String(string(c.Next(value)))
	a.Label = next
	a.AriaLabel = "Switch to " + next + " mode"
	return a
}

// SchemeChanged re-applies the state after the OS preference changed. It
// reports false unless the persisted state is system, so an explicit light
// or dark choice is never overridden.
func (c *Controller) SchemeChanged(ctx context.Context) (Applied, bool) {
	if c.Variant != ThreeState {
		return Applied{}, false
	}
	m, ok, err := c.stored(ctx)
	if err != nil {
		return Applied{}, false
	}
	if ok && m != System {
		return Applied{}, false
	}
	return c.Apply(System), true
}
