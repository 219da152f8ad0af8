package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/persona/internal/config"
	"github.com/ziadkadry99/persona/internal/export"
	"github.com/ziadkadry99/persona/internal/page"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the site's people and profiles.
type Server struct {
	cfg       *config.Config
	source    page.Source
	converter *export.Converter
	mcp       *server.MCPServer
}

// NewServer creates a new MCP server reading documents from source.
func NewServer(cfg *config.Config, source page.Source) *Server {
	s := &Server{
		cfg:       cfg,
		source:    source,
		converter: export.NewConverter(),
	}

	s.mcp = server.NewMCPServer(
		"persona",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listPeopleTool, s.handleListPeople)
	s.mcp.AddTool(resolveSelectionTool, s.handleResolveSelection)
	s.mcp.AddTool(getProfileTool, s.handleGetProfile)
	s.mcp.AddTool(listPagesTool, s.handleListPages)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
