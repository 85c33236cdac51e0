package main

import (
	"github.com/spf13/cobra"

	"methodology-advisor/internal/mcptools"
)

func newMCPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the advisor as an MCP server over stdio",
		Long: `Serve the advisor as an MCP server over stdin/stdout.

Exposes the recommend_methodology and list_rules tools.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			mcptools.Version = version
			return mcptools.ServeStdio(svc)
		},
	}
}
