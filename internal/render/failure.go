package render

import (
	"fmt"

	"github.com/ziadkadry99/persona/internal/escape"
)

// LocalServerHint is shown under load failures.
const LocalServerHint = `If running locally, start a server: <code>persona serve --port 8080</code>`

// Failure renders the minimal view that replaces a page whose load failed.
func Failure(heading string, err error, hint bool) string {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	h := ""
	if hint {
		h = `<p class="muted">` + LocalServerHint + `</p>`
	}
	return fmt.Sprintf(`<div class="container failure" style="padding: 24px 0;"><h1>%s</h1><p class="muted">%s</p>%s</div>`,
		escape.String(heading), escape.String(msg), h)
}
