// Package model defines the documents persona reads: the site config, the
// keyValue profile data used by the index archetype, and the typed section
// documents used by the profile, business and landing archetypes.
package model

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// SiteConfig is the top-level config document (config/site.json).
type SiteConfig struct {
	Site     SiteInfo                                    `json:"site"`
	Defaults Defaults                                    `json:"defaults"`
	People   *orderedmap.OrderedMap[string, Person]      `json:"people"`
	Profiles *orderedmap.OrderedMap[string, ProfileMeta] `json:"profiles"`
}

// SiteInfo holds the header text.
type SiteInfo struct {
	Title   string `json:"title"`
	Tagline string `json:"tagline"`
}

// Defaults names the preferred person and profile keys.
type Defaults struct {
	Person  string `json:"person"`
	Profile string `json:"profile"`
}

// Person is a top-level identity owning one or more profiles.
type Person struct {
	Enabled  bool                                       `json:"enabled"`
	Label    string                                     `json:"label"`
	Profiles *orderedmap.OrderedMap[string, ProfileRef] `json:"profiles"`
}

// ProfileRef points at the data document backing one profile of a person.
type ProfileRef struct {
	Enabled  bool   `json:"enabled"`
	DataFile string `json:"dataFile"`
}

// ProfileMeta is label metadata shared by every person's profile of that key.
type ProfileMeta struct {
	Label string `json:"label"`
}

// Person returns the person stored under key.
func (c *SiteConfig) Person(key string) (Person, bool) {
	return lookup(c.People, key)
}

// PersonKeys returns person keys in document order.
func (c *SiteConfig) PersonKeys() []string {
	return keys(c.People)
}

// PersonEnabled reports whether key names an enabled person.
func (c *SiteConfig) PersonEnabled(key string) bool {
	if key == "" {
		return false
	}
	p, ok := c.Person(key)
	return ok && p.Enabled
}

// ProfileEnabled reports whether profile is enabled under an existing person.
// The person itself is not required to be enabled.
func (c *SiteConfig) ProfileEnabled(person, profile string) bool {
	if person == "" || profile == "" {
		return false
	}
	p, ok := c.Person(person)
	if !ok {
		return false
	}
	ref, ok := p.Profile(profile)
	return ok && ref.Enabled
}

// PersonLabel returns the display label of a person, falling back to its key.
func (c *SiteConfig) PersonLabel(key string) string {
	if p, ok := c.Person(key); ok && p.Label != "" {
		return p.Label
	}
	return key
}

// ProfileLabel returns the shared label of a profile key, falling back to the key.
func (c *SiteConfig) ProfileLabel(key string) string {
	if m, ok := lookup(c.Profiles, key); ok && m.Label != "" {
		return m.Label
	}
	return key
}

// Profile returns the profile reference stored under key.
func (p Person) Profile(key string) (ProfileRef, bool) {
	return lookup(p.Profiles, key)
}

// ProfileKeys returns profile keys in document order.
func (p Person) ProfileKeys() []string {
	return keys(p.Profiles)
}

func lookup[V any](m *orderedmap.OrderedMap[string, V], key string) (V, bool) {
	if m == nil {
		var zero V
		return zero, false
	}
	return m.Get(key)
}

func keys[V any](m *orderedmap.OrderedMap[string, V]) []string {
	if m == nil {
		return nil
	}
	out := make([]string, 0, m.Len())
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}
