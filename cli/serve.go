// ABOUTME: Web UI subcommand
// ABOUTME: Serves the dashboard, widget API, copilot websocket and metrics until interrupted
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harperreed/socialpulse/web"
)

func newServeCommand(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.loadStore()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("port") {
				port = a.cfg.Web.Port
			}

			server, err := web.NewServer(web.Options{
				DB:         a.db,
				Store:      store,
				Identity:   a.cfg.Identity(),
				ReplyDelay: a.cfg.Copilot.ReplyDelay,
				Logger:     a.logger,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Social Pulse 360 at http://localhost:%d\n", port)
			return server.Start(cmd.Context(), fmt.Sprintf(":%d", port))
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "Port to listen on (default from config)")
	return cmd
}
