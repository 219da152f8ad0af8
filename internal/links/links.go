// Package links builds relative URLs that encode a (person, profile) selection.
package links

import (
	"net/url"
	"strings"
)

// Func builds the href for a selection. Either key may be empty.
type Func func(person, profile string) string

// Href returns a document-relative URL carrying the selection as query
// parameters: "./?person=a&profile=b". Empty keys are omitted and "./" is
// returned when both are empty, so the link resolves against the current
// directory whether the site lives at a domain root or under a sub-path.
func Href(person, profile string) string {
	var q []string
	if person != "" {
		q = append(q, "person="+url.QueryEscape(person))
	}
	if profile != "" {
		q = append(q, "profile="+url.QueryEscape(profile))
	}
	if len(q) == 0 {
		return "./"
	}
	return "./?" + strings.Join(q, "&")
}

// Static returns a builder for exported sites, where each selection is its
// own page at <person>/<profile>/index.html. base is the relative prefix
// back to the site root ("" at the root, "../../" two levels down).
func Static(base string) Func {
	return func(person, profile string) string {
		switch {
		case person == "" && profile == "":
			return base + "index.html"
		case profile == "":
			return base + pathSegment(person) + "/index.html"
		case person == "":
			return base + "index.html"
		}
		return base + pathSegment(person) + "/" + pathSegment(profile) + "/index.html"
	}
}

// StaticDir is the output directory, relative to the site root, of a
// selection page in an exported site. Keys are used verbatim since browsers
// decode the escaped hrefs Static produces back to these names.
func StaticDir(person, profile string) string {
	if profile == "" {
		return person
	}
	return person + "/" + profile
}

// SafeKey reports whether key can name a directory of an exported site:
// a single path segment that is not "." or "..".
func SafeKey(key string) bool {
	return key != "" && key != "." && key != ".." && !strings.ContainsAny(key, `/\`)
}

// BasePath returns the "../" prefix leading from relDir back to the root.
func BasePath(relDir string) string {
	relDir = strings.Trim(relDir, "/")
	if relDir == "" || relDir == "." {
		return ""
	}
	return strings.Repeat("../", strings.Count(relDir, "/")+1)
}

func pathSegment(s string) string {
	return url.PathEscape(s)
}
