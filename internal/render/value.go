// Package render turns profile documents into HTML fragments and pages.
// Every config-supplied string goes through escape before it is written.
package render

import (
	"fmt"
	"strings"

	"github.com/ziadkadry99/persona/internal/escape"
	"github.com/ziadkadry99/persona/internal/model"
)

const (
	mutedDash = `<span class="muted">—</span>`
	newTab    = ` target="_blank" rel="noopener noreferrer"`
)

// Value renders one keyValue content value.
func Value(v model.Value) string {
	switch v.Kind {
	case model.ValueNull:
		return mutedDash
	case model.ValueLink:
		label := v.Link.Label
		if label == "" {
			label = v.Link.Href
		}
		var attrs string
		if v.Link.Download {
			attrs += " download"
		}
		if isHTTP(v.Link.Href) {
			attrs += newTab
		}
		return fmt.Sprintf(`<a href="%s"%s>%s</a>`, escape.String(v.Link.Href), attrs, escape.String(label))
	case model.ValueList:
		var b strings.Builder
		b.WriteString("<ul>")
		for _, item := range v.List {
			fmt.Fprintf(&b, "<li>%s</li>", escape.String(item))
		}
		b.WriteString("</ul>")
		return b.String()
	default:
		return scalar(v.Scalar)
	}
}

// scalar auto-links absolute URLs, mailto: URIs and PDF paths.
func scalar(s string) string {
	isURL := isHTTP(s) || strings.HasPrefix(s, "mailto:")
	isPDF := strings.HasSuffix(strings.ToLower(s), ".pdf")
	if !isURL && !isPDF {
		return escape.String(s)
	}
	var attrs string
	if isPDF {
		attrs += " download"
	}
	if isHTTP(s) {
		attrs += newTab
	}
	return fmt.Sprintf(`<a href="%s"%s>%s</a>`, escape.String(s), attrs, escape.String(s))
}

func isHTTP(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
