package render

import (
	"fmt"
	"strings"

	"github.com/ziadkadry99/persona/internal/escape"
	"github.com/ziadkadry99/persona/internal/links"
	"github.com/ziadkadry99/persona/internal/model"
	"github.com/ziadkadry99/persona/internal/selection"
)

// SelectOptions renders the profile dropdown options. Each option carries
// the href of its selection so the page script can navigate on change.
func SelectOptions(person string, opts []selection.Option, active string, href links.Func) string {
	var b strings.Builder
	for _, o := range opts {
		selected := ""
		if o.Key == active {
			selected = " selected"
		}
		fmt.Fprintf(&b, `<option value="%s" data-href="%s"%s>%s</option>`,
			escape.String(o.Key), escape.String(href(person, o.Key)), selected, escape.String(o.Label))
	}
	return b.String()
}

// Tabs renders one tab per profile option, marking the active one.
func Tabs(person string, opts []selection.Option, active string, href links.Func) string {
	var b strings.Builder
	for _, o := range opts {
		class := "tab"
		if o.Key == active {
			class += " active"
		}
		fmt.Fprintf(&b, `<a class="%s" href="%s" data-key="%s">%s</a>`,
			class, escape.String(href(person, o.Key)), escape.String(o.Key), escape.String(o.Label))
	}
	return b.String()
}

// QuickLinks renders the quick-link grid for the enabled profiles of person.
// It is empty when the person is missing or disabled.
func QuickLinks(cfg *model.SiteConfig, person, active string, href links.Func) string {
	if !cfg.PersonEnabled(person) {
		return ""
	}
	var b strings.Builder
	for _, o := range selection.ProfileOptions(cfg, person) {
		class := "quick-link"
		if o.Key == active {
			class += " active"
		}
		fmt.Fprintf(&b, `<a class="%s" href="%s"><strong>%s</strong><small>Open</small></a>`,
			class, escape.String(href(person, o.Key)), escape.String(o.Label))
	}
	return b.String()
}
