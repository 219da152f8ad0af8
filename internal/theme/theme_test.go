package theme

import (
	"context"
	"errors"
	"testing"
)

func TestTwoStateFallsBackToOSAndToggles(t *testing.T) {
	ctx := context.Background()
	store := &MemoryStore{}
	c := &Controller{Variant: TwoState, Store: store, PrefersDark: func() bool { return true }}

	got, err := c.Initial(ctx)
	if err != nil {
		t.Fatalf("Initial: %v", err)
	}
	if got.Mode != Dark || got.Value != "dark" || got.Attribute != "data-theme" {
		t.Errorf("Initial() = %+v, want dark on data-theme", got)
	}
	if got.Label != "Light" || got.AriaLabel != "Switch to Light mode" {
		t.Errorf("labels = %q / %q", got.Label, got.AriaLabel)
	}

	got, err = c.Toggle(ctx)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if got.Value != "light" {
		t.Errorf("Toggle() applied %q, want light", got.Value)
	}
	if v, ok, _ := store.Get(ctx); !ok || v != "light" {
		t.Errorf("stored = %q,%v, want light", v, ok)
	}
	if got.Label != "Dark" {
		t.Errorf("label after toggle = %q, want Dark", got.Label)
	}
}

func TestToggleFromShownMode(t *testing.T) {
	ctx := context.Background()

	// The server sees no OS preference but the page already shows dark.
	store := &MemoryStore{}
	c := &Controller{Variant: TwoState, Store: store}
	got, err := c.ToggleFrom(ctx, Dark)
	if err != nil {
		t.Fatalf("ToggleFrom: %v", err)
	}
	if got.Value != "light" {
		t.Errorf("ToggleFrom(dark) applied %q, want light", got.Value)
	}
	if v, _, _ := store.Get(ctx); v != "light" {
		t.Errorf("stored = %q, want light", v)
	}

	// Once a preference is stored it wins over what the client reports.
	got, err = c.ToggleFrom(ctx, Light)
	if err != nil {
		t.Fatalf("ToggleFrom: %v", err)
	}
	if got.Value != "dark" {
		t.Errorf("ToggleFrom with stored light applied %q, want dark", got.Value)
	}

	// Three-state cycles from the stored mode regardless.
	three := &Controller{Variant: ThreeState, Store: &MemoryStore{}}
	got, err = three.ToggleFrom(ctx, Dark)
	if err != nil {
		t.Fatalf("ToggleFrom: %v", err)
	}
	if got.Mode != Light {
		t.Errorf("three-state ToggleFrom = %q, want light", got.Mode)
	}
}

func TestTwoStateStoredWinsOverOS(t *testing.T) {
	ctx := context.Background()
	store := &MemoryStore{}
	_ = store.Set(ctx, "light")
	c := &Controller{Variant: TwoState, Store: store, PrefersDark: func() bool { return true }}
	got, _ := c.Initial(ctx)
	if got.Value != "light" {
		t.Errorf("Initial() = %q, want light", got.Value)
	}
}

func TestTwoStateIgnoresSystemPreference(t *testing.T) {
	ctx := context.Background()
	store := &MemoryStore{}
	_ = store.Set(ctx, "system")
	c := &Controller{Variant: TwoState, Store: store}
	got, _ := c.Initial(ctx)
	if got.Mode != Light {
		t.Errorf("Initial() mode = %q, want light", got.Mode)
	}
	if c.Stored(ctx) {
		t.Error("system counted as a stored two-state preference")
	}
}

func TestThreeStateCycle(t *testing.T) {
	ctx := context.Background()
	store := &MemoryStore{}
	c := &Controller{Variant: ThreeState, Store: store, PrefersDark: func() bool { return false }}

	got, _ := c.Initial(ctx)
	if got.Mode != System || got.Label != "Theme: System" || got.Attribute != "data-bs-theme" || got.Value != "light" {
		t.Fatalf("Initial() = %+v", got)
	}

	want := []Mode{Light, Dark, System, Light}
	for i, w := range want {
		got, err := c.Toggle(ctx)
		if err != nil {
			t.Fatalf("Toggle #%d: %v", i, err)
		}
		if got.Mode != w {
			t.Errorf("Toggle #%d = %q, want %q", i, got.Mode, w)
		}
	}
}

func TestThreeStateLabels(t *testing.T) {
	c := &Controller{Variant: ThreeState}
	tests := []struct {
		mode Mode
		want string
	}{
		{System, "Theme: System"},
		{Light, "Theme: Light"},
		{Dark, "Theme: Dark"},
	}
	for _, tt := range tests {
		if got := c.Apply(tt.mode).Label; got != tt.want {
			t.Errorf("Apply(%q).Label = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestSchemeChangedOnlyWhileSystem(t *testing.T) {
	ctx := context.Background()
	dark := false
	store := &MemoryStore{}
	c := &Controller{Variant: ThreeState, Store: store, PrefersDark: func() bool { return dark }}

	_ = store.Set(ctx, "system")
	dark = true
	got, ok := c.SchemeChanged(ctx)
	if !ok || got.Value != "dark" {
		t.Errorf("SchemeChanged() = %+v,%v, want dark,true", got, ok)
	}

	_ = store.Set(ctx, "light")
	if _, ok := c.SchemeChanged(ctx); ok {
		t.Error("explicit light overridden by OS change")
	}

	two := &Controller{Variant: TwoState, Store: store, PrefersDark: func() bool { return dark }}
	if _, ok := two.SchemeChanged(ctx); ok {
		t.Error("two-state variant re-applied on OS change")
	}
}

type failingStore struct{}

func (failingStore) Get(context.Context) (string, bool, error) { return "", false, errors.New("boom") }
func (failingStore) Set(context.Context, string) error { return errors.New("boom") }

func TestStoreErrors(t *testing.T) {
	c := &Controller{Variant: TwoState, Store: failingStore{}}
	got, err := c.Initial(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if got.Value != "light" {
		t.Errorf("fallback applied %q, want light", got.Value)
	}
	if _, err := c.Toggle(context.Background()); err == nil {
		t.Error("Toggle swallowed store error")
	}
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in      string
		want    Variant
		wantErr bool
	}{
		{"", TwoState, false},
		{"two-state", TwoState, false},
		{"three-state", ThreeState, false},
		{"four-state", "", true},
	}
	for _, tt := range tests {
		got, err := ParseVariant(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseVariant(%q) = %q,%v", tt.in, got, err)
		}
	}
}
