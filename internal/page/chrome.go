package page

import (
	"html/template"

	"github.com/ziadkadry99/persona/internal/escape"
	"github.com/ziadkadry99/persona/internal/render"
	"github.com/ziadkadry99/persona/internal/theme"
)

// Chrome builds the shell data for an applied theme. endpoint is empty for
// exported pages, where the page script keeps the preference itself.
func Chrome(applied theme.Applied, variant theme.Variant, key string, stored bool, basePath, endpoint string) render.Chrome {
	return render.Chrome{
		BasePath:      basePath,
		ThemeAttr:     template.HTMLAttr(applied.Attribute + `="` + escape.String(applied.Value) + `"`),
		ThemeMode:     string(applied.Mode),
		ThemeVariant:  string(variant),
		ThemeKey:      key,
		ThemeStored:   stored,
		ThemeLabel:    applied.Label,
		ThemeAria:     applied.AriaLabel,
		ThemeEndpoint: endpoint,
	}
}
