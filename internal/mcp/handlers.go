package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/persona/internal/config"
	"github.com/ziadkadry99/persona/internal/links"
	"github.com/ziadkadry99/persona/internal/page"
	"github.com/ziadkadry99/persona/internal/selection"
)

// handleListPeople lists people and profiles from the site config.
func (s *Server) handleListPeople(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := s.source.SiteConfig(ctx, s.cfg.SiteConfig)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading site config: %v", err)), nil
	}
	all := request.GetBool("include_disabled", false)

	var sb strings.Builder
	fmt.Fprintf(&sb, "# People in %s\n\n", s.cfg.SiteConfig)
	listed := 0
	for _, key := range cfg.PersonKeys() {
		p, _ := cfg.Person(key)
		if !p.Enabled && !all {
			continue
		}
		listed++
		fmt.Fprintf(&sb, "## %s (`%s`)", cfg.PersonLabel(key), key)
		if !p.Enabled {
			sb.WriteString(" [disabled]")
		}
		sb.WriteString("\n\n")
		for _, pk := range p.ProfileKeys() {
			ref, _ := p.Profile(pk)
			if !ref.Enabled && !all {
				continue
			}
			fmt.Fprintf(&sb, "- %s (`%s`)", cfg.ProfileLabel(pk), pk)
			if ref.DataFile != "" {
				fmt.Fprintf(&sb, ": %s", ref.DataFile)
			} else {
				sb.WriteString(": no dataFile")
			}
			if !ref.Enabled {
				sb.WriteString(" [disabled]")
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	if listed == 0 {
		return mcp.NewToolResultText("No enabled people found in the site config."), nil
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// resolvedSelection is the resolve_selection result.
type resolvedSelection struct {
	Person       string `json:"person"`
	PersonLabel  string `json:"person_label"`
	Profile      string `json:"profile"`
	ProfileLabel string `json:"profile_label"`
	DataFile     string `json:"data_file,omitempty"`
	Href         string `json:"href"`
}

// handleResolveSelection applies the selection rules to the requested keys.
func (s *Server) handleResolveSelection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := s.source.SiteConfig(ctx, s.cfg.SiteConfig)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading site config: %v", err)), nil
	}

	sel := selection.Resolve(cfg, request.GetString("person", ""), request.GetString("profile", ""))
	if !sel.Valid() {
		return mcp.NewToolResultError("no enabled person/profile in the site config"), nil
	}

	out := resolvedSelection{
		Person:       sel.Person,
		PersonLabel:  cfg.PersonLabel(sel.Person),
		Profile:      sel.Profile,
		ProfileLabel: cfg.ProfileLabel(sel.Profile),
		Href:         links.Href(sel.Person, sel.Profile),
	}
	if p, ok := cfg.Person(sel.Person); ok {
		if ref, ok := p.Profile(sel.Profile); ok {
			out.DataFile = ref.DataFile
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// handleGetProfile renders a page and returns it as Markdown.
func (s *Server) handleGetProfile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pc := config.PageConfig{Path: "/", Archetype: string(page.ArchetypeIndex)}
	if path := request.GetString("path", ""); path != "" {
		found, ok := s.findPage(path)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("no page configured at %q. Use list_pages to see configured pages.", path)), nil
		}
		pc = found
	}

	archetype, err := page.ParseArchetype(pc.Archetype)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := page.Render(ctx, page.Options{
		Archetype:      archetype,
		SiteConfigPath: s.cfg.SiteConfig,
		DataPath:       pc.Data,
		Source:         s.source,
	}, request.GetString("person", ""), request.GetString("profile", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("rendering page: %v", err)), nil
	}

	md, err := s.converter.Page(res)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("converting page: %v", err)), nil
	}
	return mcp.NewToolResultText(md), nil
}

// handleListPages lists the pages from the persona config.
func (s *Server) handleListPages(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var sb strings.Builder
	sb.WriteString("# Pages\n\n")
	for _, p := range s.cfg.EffectivePages() {
		fmt.Fprintf(&sb, "- `%s` (%s)", p.Path, p.Archetype)
		if p.Data != "" {
			fmt.Fprintf(&sb, ": %s", p.Data)
		}
		sb.WriteString("\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) findPage(path string) (config.PageConfig, bool) {
	want := strings.Trim(path, "/")
	for _, p := range s.cfg.EffectivePages() {
		if strings.Trim(p.Path, "/") == want {
			return p, true
		}
	}
	return config.PageConfig{}, false
}
