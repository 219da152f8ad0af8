// Package export converts rendered pages to markdown for the static build
// and for tool clients.
package export

import (
	"fmt"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"

	"github.com/ziadkadry99/persona/internal/page"
)

var excessiveLines = regexp.MustCompile(`\n{3,}`)

// Converter turns page bodies into GitHub-flavored markdown.
type Converter struct {
	converter *md.Converter
}

// NewConverter creates a converter with tables and strikethrough enabled.
func NewConverter() *Converter {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())
	return &Converter{converter: converter}
}

// HTML converts an HTML fragment.
func (c *Converter) HTML(fragment string) (string, error) {
	out, err := c.converter.ConvertString(fragment)
	if err != nil {
		return "", fmt.Errorf("converting html: %w", err)
	}
	return strings.TrimSpace(excessiveLines.ReplaceAllString(out, "\n\n")) + "\n", nil
}

// Page converts a rendered page, headed by its title.
func (c *Converter) Page(res *page.Result) (string, error) {
	body, err := c.HTML(res.Body())
	if err != nil {
		return "", err
	}
	return "# " + res.Title + "\n\n" + body, nil
}
