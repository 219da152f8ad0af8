package render

import (
	"fmt"
	"strings"

	"github.com/ziadkadry99/persona/internal/escape"
	"github.com/ziadkadry99/persona/internal/model"
)

const (
	defaultLandingTitle    = "Persona Fairs"
	defaultLandingSubtitle = "Curated entry points. Profiles are link-based and not cross-linked."
)

// LandingMain renders the landing page body: header card, optional business
// banner, then one card grid per group.
func LandingMain(l model.Landing) string {
	var b strings.Builder
	b.WriteString(`<div class="persona-card p-4 mb-4"><div class="d-flex align-items-start justify-content-between flex-wrap gap-3"><div>`)
	fmt.Fprintf(&b, `<div class="display-6 fw-bold hero-title mb-1">%s</div>`, escape.String(l.Title.Or(defaultLandingTitle)))
	fmt.Fprintf(&b, `<div class="muted">%s</div>`, escape.String(l.Subtitle.Or(defaultLandingSubtitle)))
	fmt.Fprintf(&b, `</div><div class="small muted">%s</div></div></div>`, esc(l.Note))

	if l.Business != nil {
		bz := l.Business
		b.WriteString(`<section class="mb-5"><div class="persona-card p-4"><div class="d-flex align-items-center justify-content-between flex-wrap gap-3"><div>`)
		fmt.Fprintf(&b, `<div class="h5 mb-1">%s</div><div class="muted">%s</div></div>`,
			escape.String(bz.Title.Or("Business")), esc(bz.Subtitle))
		fmt.Fprintf(&b, `<a class="btn btn-primary" href="%s">Open Business</a></div></div></section>`,
			escape.String(bz.Href.Or("business/")))
	}

	for _, g := range l.Groups {
		b.WriteString(landingGroup(g))
	}
	b.WriteString(`<div class="text-center small muted py-4">persona · static</div>`)
	return b.String()
}

func landingGroup(g model.LandingGroup) string {
	var cards strings.Builder
	for _, it := range g.Items {
		cards.WriteString(`<div class="col-12 col-sm-6 col-lg-4 col-xl-3"><div class="persona-card p-3 h-100"><div class="d-flex align-items-center gap-3">`)
		fmt.Fprintf(&cards, `<img class="avatar" src="%s" alt="avatar"><div class="flex-grow-1"><div class="fw-semibold">%s</div>`, esc(it.Avatar), esc(it.Name))
		if it.Note != "" {
			fmt.Fprintf(&cards, `<div class="small muted">%s</div>`, esc(it.Note))
		}
		fmt.Fprintf(&cards, `</div></div><div class="mt-3"><a class="btn btn-sm btn-primary w-100" href="%s">Open</a></div></div></div>`, esc(it.Href))
	}

	var b strings.Builder
	b.WriteString(`<section class="mb-4"><div class="d-flex align-items-baseline justify-content-between flex-wrap gap-2 mb-2">`)
	fmt.Fprintf(&b, `<h2 class="h5 section-title mb-0">%s</h2>`, esc(g.Title))
	if g.Subtitle != "" {
		fmt.Fprintf(&b, `<div class="small muted">%s</div>`, esc(g.Subtitle))
	}
	fmt.Fprintf(&b, `</div><div class="row g-3">%s</div></section>`, cards.String())
	return b.String()
}
