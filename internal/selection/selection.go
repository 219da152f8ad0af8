// Package selection resolves which person and profile a page shows.
package selection

import "github.com/ziadkadry99/persona/internal/model"

// Selection is the resolved (person, profile) pair for one page render.
type Selection struct {
	Person  string
	Profile string
}

// Valid reports whether both halves resolved to a key.
func (s Selection) Valid() bool {
	return s.Person != "" && s.Profile != ""
}

// Option is one selectable profile of the resolved person.
type Option struct {
	Key   string
	Label string
}

// Resolve computes the effective selection from the requested keys (either
// may be empty) and the config defaults:
//
//  1. person = requested, else defaults.person, else first enabled person.
//  2. if that person is absent or disabled: defaults.person when enabled,
//     else first enabled person.
//  3. profile = requested, else defaults.profile, else first enabled profile
//     of the person.
//  4. if that profile is absent or disabled under the person:
//     defaults.profile when enabled there, else first enabled profile.
//
// Resolve never fails. When nothing is enabled the result is not Valid.
func Resolve(cfg *model.SiteConfig, person, profile string) Selection {
	defaults := cfg.Defaults

	p := firstNonEmpty(person, defaults.Person)
	if p == "" {
		p = FirstEnabledPerson(cfg)
	}
	if !cfg.PersonEnabled(p) {
		if cfg.PersonEnabled(defaults.Person) {
			p = defaults.Person
		} else {
			p = FirstEnabledPerson(cfg)
		}
	}

	pr := firstNonEmpty(profile, defaults.Profile)
	if pr == "" {
		pr = FirstEnabledProfile(cfg, p)
	}
	if !cfg.ProfileEnabled(p, pr) {
		if cfg.ProfileEnabled(p, defaults.Profile) {
			pr = defaults.Profile
		} else {
			pr = FirstEnabledProfile(cfg, p)
		}
	}

	return Selection{Person: p, Profile: pr}
}

// FirstEnabledPerson returns the first person key, in document order, whose
// enabled flag is true, or "" when there is none.
func FirstEnabledPerson(cfg *model.SiteConfig) string {
	for _, key := range cfg.PersonKeys() {
		if cfg.PersonEnabled(key) {
			return key
		}
	}
	return ""
}

// FirstEnabledProfile returns the first enabled profile key of person, or "".
func FirstEnabledProfile(cfg *model.SiteConfig, person string) string {
	p, ok := cfg.Person(person)
	if !ok {
		return ""
	}
	for _, key := range p.ProfileKeys() {
		if ref, _ := p.Profile(key); ref.Enabled {
			return key
		}
	}
	return ""
}

// ProfileOptions lists the enabled profiles of person in document order,
// labelled from the shared profile metadata.
func ProfileOptions(cfg *model.SiteConfig, person string) []Option {
	p, ok := cfg.Person(person)
	if !ok {
		return nil
	}
	var opts []Option
	for _, key := range p.ProfileKeys() {
		if ref, _ := p.Profile(key); !ref.Enabled {
			continue
		}
		opts = append(opts, Option{Key: key, Label: cfg.ProfileLabel(key)})
	}
	return opts
}

// Enumerate returns every enabled (person, profile) pair in document order.
// Profiles of disabled people are skipped.
func Enumerate(cfg *model.SiteConfig) []Selection {
	var out []Selection
	for _, person := range cfg.PersonKeys() {
		if !cfg.PersonEnabled(person) {
			continue
		}
		for _, opt := range ProfileOptions(cfg, person) {
			out = append(out, Selection{Person: person, Profile: opt.Key})
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
