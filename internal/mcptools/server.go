package mcptools

import (
	"github.com/mark3labs/mcp-go/server"

	"methodology-advisor/internal/consultations"
)

// Version is set at build time via ldflags.
var Version = "dev"

// NewServer creates the MCP server with every advisor tool registered.
func NewServer(svc *consultations.Service) *server.MCPServer {
	s := server.NewMCPServer(
		"methodology-advisor",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	recommend := NewRecommendTool(svc)
	s.AddTool(recommend.Definition(), recommend.Handle)

	rules := NewRulesTool(svc)
	s.AddTool(rules.Definition(), rules.Handle)

	return s
}

// ServeStdio runs the MCP server over stdin/stdout until the client disconnects.
func ServeStdio(svc *consultations.Service) error {
	return server.ServeStdio(NewServer(svc))
}
