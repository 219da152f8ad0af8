package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ziadkadry99/persona/internal/escape"
	"github.com/ziadkadry99/persona/internal/model"
)

var blankLine = regexp.MustCompile(`\n\s*\n`)

func esc(t model.Text) string { return escape.String(string(t)) }

// Text splits body into paragraphs on blank lines and renders each
// non-empty chunk as its own <p>.
func Text(body string) string {
	var b strings.Builder
	for _, part := range blankLine.Split(body, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fmt.Fprintf(&b, `<p class="mb-3">%s</p>`, escape.String(part))
	}
	return b.String()
}

// PersonaSections renders every section in order.
func PersonaSections(sections model.PersonaSections) string {
	var b strings.Builder
	for _, s := range sections {
		b.WriteString(PersonaSection(s))
	}
	return b.String()
}

// PersonaSection renders one typed section. The switch is exhaustive over
// the section union; anything unrecognized renders a visible notice.
func PersonaSection(section model.PersonaSection) string {
	switch s := section.(type) {
	case model.TextSection:
		return card(s.Title, textBody(s))
	case model.KVSection:
		return kvSection(s)
	case model.BadgesSection:
		return badgesSection(s)
	case model.TimelineSection:
		return timelineSection(s)
	case model.CardsSection:
		return cardsSection(s)
	case model.DownloadsSection:
		return downloadsSection(s)
	case model.GallerySection:
		return gallerySection(s)
	case model.UnknownSection:
		return unknownSection(s)
	default:
		return unknownSection(model.UnknownSection{Title: section.SectionTitle(), Type: fmt.Sprintf("%T", section)})
	}
}

func card(title model.Text, inner string) string {
	return fmt.Sprintf(`<div class="persona-card p-4 mb-4"><h2 class="h5 section-title mb-3">%s</h2>%s</div>`, esc(title), inner)
}

func textBody(s model.TextSection) string {
	if string(s.Format) == model.FormatMarkdown {
		if html, err := Markdown(string(s.Body)); err == nil {
			return html
		}
	}
	return Text(string(s.Body))
}

func kvSection(s model.KVSection) string {
	var rows strings.Builder
	for _, r := range s.Rows {
		fmt.Fprintf(&rows, `<tr><th class="text-nowrap" style="width: 34%%">%s</th><td>%s</td></tr>`, esc(r.Label), esc(r.Value))
	}
	return card(s.Title, `<div class="table-responsive"><table class="table table-sm align-middle mb-0"><tbody>`+rows.String()+`</tbody></table></div>`)
}

func badgesSection(s model.BadgesSection) string {
	var groups strings.Builder
	for _, g := range s.Groups {
		var badges strings.Builder
		for _, item := range g.Items {
			fmt.Fprintf(&badges, `<span class="badge text-bg-secondary me-2 mb-2">%s</span>`, esc(item))
		}
		fmt.Fprintf(&groups, `<div class="mb-3"><div class="fw-semibold mb-2">%s</div><div>%s</div></div>`, esc(g.Title), badges.String())
	}
	return card(s.Title, groups.String())
}

func timelineSection(s model.TimelineSection) string {
	var items strings.Builder
	for _, it := range s.Items {
		items.WriteString(`<div class="timeline-item"><div class="d-flex flex-wrap align-items-baseline justify-content-between gap-2">`)
		fmt.Fprintf(&items, `<div class="fw-semibold">%s</div>`, esc(it.Title))
		if it.Period != "" {
			fmt.Fprintf(&items, `<div class="small muted">%s</div>`, esc(it.Period))
		}
		items.WriteString(`</div>`)
		if it.Subtitle != "" {
			fmt.Fprintf(&items, `<div class="small muted mb-2">%s</div>`, esc(it.Subtitle))
		}
		if len(it.Bullets) > 0 {
			items.WriteString(`<ul class="mb-0">`)
			for _, bullet := range it.Bullets {
				fmt.Fprintf(&items, "<li>%s</li>", esc(bullet))
			}
			items.WriteString(`</ul>`)
		}
		items.WriteString(`</div>`)
	}
	return card(s.Title, `<div class="timeline">`+items.String()+`</div>`)
}

func cardsSection(s model.CardsSection) string {
	var cards strings.Builder
	for _, it := range s.Items {
		cards.WriteString(`<div class="col-md-6"><div class="persona-card p-4 h-100">`)
		fmt.Fprintf(&cards, `<div class="fw-semibold mb-1">%s</div>`, esc(it.Title))
		if it.Subtitle != "" {
			fmt.Fprintf(&cards, `<div class="small muted mb-2">%s</div>`, esc(it.Subtitle))
		}
		if it.Body != "" {
			cards.WriteString(Text(string(it.Body)))
		}
		if len(it.Links) > 0 {
			cards.WriteString(`<div class="mt-2">`)
			for _, l := range it.Links {
				fmt.Fprintf(&cards, `<a class="btn btn-sm btn-outline-primary me-2 mb-2" href="%s"%s>%s</a>`,
					escape.String(l.Href.Or("#")), targetAttr(l.Target), escape.String(l.Label.Or("Link")))
			}
			cards.WriteString(`</div>`)
		}
		cards.WriteString(`</div></div>`)
	}

	var b strings.Builder
	b.WriteString(`<div class="mb-4"><div class="d-flex align-items-baseline justify-content-between flex-wrap gap-2 mb-2">`)
	fmt.Fprintf(&b, `<h2 class="h5 section-title mb-0">%s</h2>`, esc(s.Title))
	if s.Note != "" {
		fmt.Fprintf(&b, `<div class="small muted">%s</div>`, esc(s.Note))
	}
	fmt.Fprintf(&b, `</div><div class="row g-3">%s</div></div>`, cards.String())
	return b.String()
}

func downloadsSection(s model.DownloadsSection) string {
	var items strings.Builder
	for _, it := range s.Items {
		items.WriteString(`<div class="d-flex align-items-center justify-content-between gap-3 py-2 border-bottom"><div>`)
		fmt.Fprintf(&items, `<div class="fw-semibold">%s</div>`, escape.String(it.Label.Or("Download")))
		if it.Note != "" {
			fmt.Fprintf(&items, `<div class="small muted">%s</div>`, esc(it.Note))
		}
		fmt.Fprintf(&items, `</div><a class="btn btn-sm btn-primary" href="%s" download>Download</a></div>`, escape.String(it.File.Or("#")))
	}
	return card(s.Title, "<div>"+items.String()+"</div>")
}

func gallerySection(s model.GallerySection) string {
	var imgs strings.Builder
	for _, src := range s.Images {
		fmt.Fprintf(&imgs, `<div class="col-6 col-md-4"><div class="persona-card p-2 h-100"><img src="%s" class="img-fluid rounded" alt="photo"></div></div>`, esc(src))
	}
	return fmt.Sprintf(`<div class="mb-4"><h2 class="h5 section-title mb-3">%s</h2><div class="row g-3">%s</div></div>`, esc(s.Title), imgs.String())
}

func unknownSection(s model.UnknownSection) string {
	notice := "Unknown section type: " + kindName(s.Type)
	if s.Err != nil {
		notice = "Malformed " + kindName(s.Type) + " section"
	}
	return fmt.Sprintf(`<div class="persona-card p-4 mb-4"><h2 class="h5 section-title mb-3">%s</h2><div class="small muted">%s</div></div>`,
		escape.String(s.Title.Or("Section")), escape.String(notice))
}

// Hero renders the profile header with its action buttons.
func Hero(h model.Hero) string {
	var actions strings.Builder
	for _, a := range h.Actions {
		icon := ""
		if a.Icon != "" {
			icon = fmt.Sprintf(`<span class="me-1">%s</span>`, esc(a.Icon))
		}
		download := ""
		if a.Download {
			download = " download"
		}
		fmt.Fprintf(&actions, `<a class="btn btn-sm %s me-2 mb-2" href="%s"%s%s>%s%s</a>`,
			escape.String(a.Variant.Or("btn-primary")), escape.String(a.Href.Or("#")),
			download, targetAttr(a.Target), icon, escape.String(a.Label.Or("Open")))
	}

	var left strings.Builder
	left.WriteString(`<div class="d-flex align-items-center gap-3">`)
	if h.Avatar != "" {
		fmt.Fprintf(&left, `<img class="avatar" src="%s" alt="avatar">`, esc(h.Avatar))
	}
	fmt.Fprintf(&left, `<div><div class="h4 mb-1 hero-title">%s</div>`, esc(h.Title))
	if h.Subtitle != "" {
		fmt.Fprintf(&left, `<div class="muted">%s</div>`, esc(h.Subtitle))
	}
	if h.Meta != "" {
		fmt.Fprintf(&left, `<div class="small muted mt-1">%s</div>`, esc(h.Meta))
	}
	left.WriteString(`</div></div>`)

	right := ""
	if actions.Len() > 0 {
		right = `<div class="text-md-end mt-3 mt-md-0">` + actions.String() + `</div>`
	}

	return fmt.Sprintf(`<div class="persona-card p-4 mb-4"><div class="row align-items-center"><div class="col-md-8">%s</div><div class="col-md-4">%s</div></div></div>`,
		left.String(), right)
}

// ProfileMain renders the body of a profile or business page.
func ProfileMain(doc model.PersonaProfile) string {
	return Hero(doc.Hero) + PersonaSections(doc.Sections) +
		`<div class="text-center small muted py-4">persona · static profiles</div>`
}

func targetAttr(target model.Text) string {
	if target == "" {
		return ""
	}
	return fmt.Sprintf(` target="%s" rel="noopener"`, esc(target))
}
