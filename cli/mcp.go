// ABOUTME: MCP server subcommand
// ABOUTME: Serves the copilot, CRM, NPS, widget and monitoring tools over stdio
package cli

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/harperreed/socialpulse/handlers"
)

func newMCPCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server on stdio for desktop assistants",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.loadStore()
			if err != nil {
				return err
			}

			// stdout carries the protocol; logging already goes to stderr
			a.logger.Info("starting MCP server")
			server := handlers.NewServer(handlers.ServerOptions{
				DB:       a.db,
				Store:    store,
				Identity: a.cfg.Identity(),
				Logger:   a.logger,
				Version:  a.version,
			})
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
