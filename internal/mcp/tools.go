package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listPeopleTool defines the list_people MCP tool.
var listPeopleTool = mcp.NewTool("list_people",
	mcp.WithDescription("List the people in the site config with their profiles, labels and enabled state."),
	mcp.WithBoolean("include_disabled",
		mcp.Description("Also list disabled people and profiles (default false)"),
	),
)

// resolveSelectionTool defines the resolve_selection MCP tool.
var resolveSelectionTool = mcp.NewTool("resolve_selection",
	mcp.WithDescription("Resolve a requested person and profile to the pair the site would actually show, applying defaults and fallbacks."),
	mcp.WithString("person",
		mcp.Description("Requested person key (optional)"),
	),
	mcp.WithString("profile",
		mcp.Description("Requested profile key (optional)"),
	),
)

// getProfileTool defines the get_profile MCP tool.
var getProfileTool = mcp.NewTool("get_profile",
	mcp.WithDescription("Render a page as Markdown. Without a path, renders the index page for the resolved person and profile."),
	mcp.WithString("person",
		mcp.Description("Requested person key (optional)"),
	),
	mcp.WithString("profile",
		mcp.Description("Requested profile key (optional)"),
	),
	mcp.WithString("path",
		mcp.Description("Configured page path, e.g. /ada/ (optional)"),
	),
)

// listPagesTool defines the list_pages MCP tool.
var listPagesTool = mcp.NewTool("list_pages",
	mcp.WithDescription("List the configured pages with their archetype and data document."),
)
