// Package escape makes config-supplied values safe for HTML text and
// double-quoted attribute positions.
package escape

import (
	"encoding/json"
	"fmt"
	"strings"
)

// The ampersand must be replaced first so entities produced by the later
// substitutions are not escaped again. strings.Replacer scans left to right
// and never rescans its own output, which gives the same result.
var replacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// String escapes s.
func String(s string) string {
	return replacer.Replace(s)
}

// Escape stringifies v and escapes the result. A nil value yields "".
func Escape(v any) string {
	return String(Stringify(v))
}

// Stringify converts an arbitrary decoded JSON value to its display text.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	case json.Number:
		return x.String()
	case bool, int, int64, float64, float32, int32, uint, uint64:
		return fmt.Sprint(x)
	default:
		var b strings.Builder
		enc := json.NewEncoder(&b)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(x); err != nil {
			return fmt.Sprint(x)
		}
		return strings.TrimSuffix(b.String(), "\n")
	}
}
