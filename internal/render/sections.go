package render

import (
	"fmt"
	"strings"

	"github.com/ziadkadry99/persona/internal/escape"
	"github.com/ziadkadry99/persona/internal/model"
)

const noSections = `<div class="card"><h2>No sections</h2><p class="muted">Add sections in the JSON data file.</p></div>`

// Sections renders the keyValue sections of a profile document. Hidden
// sections are skipped; a section of any other kind renders a notice in
// place and does not affect its siblings.
func Sections(data model.ProfileData) string {
	if len(data.Sections) == 0 {
		return noSections
	}
	var b strings.Builder
	for _, s := range data.Sections {
		if !s.Visible {
			continue
		}
		b.WriteString(Section(s))
	}
	return b.String()
}

// Section renders a single keyValue section card.
func Section(s model.Section) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<div class="card"><h2>%s</h2>`, escape.String(s.Title.Or("Section")))

	if s.Kind != model.KindKeyValue {
		fmt.Fprintf(&b, `<p class="muted">Unsupported section kind: %s</p></div>`, escape.String(kindName(string(s.Kind))))
		return b.String()
	}
	if s.Err != nil {
		b.WriteString(`<p class="muted">This section's content could not be read.</p></div>`)
		return b.String()
	}

	b.WriteString(`<div class="kv">`)
	for _, e := range s.Entries() {
		fmt.Fprintf(&b, `<div class="kv-row"><div class="kv-key">%s</div><div class="kv-val">%s</div></div>`,
			escape.String(e.Label), Value(e.Value))
	}
	b.WriteString(`</div></div>`)
	return b.String()
}

func kindName(kind string) string {
	if kind == "" {
		return "(missing)"
	}
	return kind
}

// UnsupportedKinds lists the distinct unrenderable kinds among visible sections.
func UnsupportedKinds(data model.ProfileData) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range data.Sections {
		kind := kindName(string(s.Kind))
		if !bool(s.Visible) || s.Kind == model.KindKeyValue || seen[kind] {
			continue
		}
		seen[kind] = true
		out = append(out, kind)
	}
	return out
}
