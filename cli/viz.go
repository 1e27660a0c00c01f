// ABOUTME: Visualization CLI commands
// ABOUTME: Handles the terminal dashboard and pipeline graph generation
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/harperreed/socialpulse/analytics"
	"github.com/harperreed/socialpulse/viz"
)

func newDashboardCommand(a *app) *cobra.Command {
	var withWidgets bool

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Print the pipeline, contact, NPS and mention overview",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if withWidgets {
				store, err := a.loadStore()
				if err != nil {
					return err
				}
				if d, ok := store.Dashboard(analytics.DefaultDashboardID); ok {
					fmt.Fprintln(out, viz.RenderWidgets(d))
				}
			}

			stats, err := viz.GenerateDashboardStats(a.db, a.cfg.User, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprint(out, viz.RenderDashboard(stats))
			return nil
		},
	}

	cmd.Flags().BoolVar(&withWidgets, "widgets", false, "Also draw the main dashboard's widgets")
	return cmd
}

func newGraphCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Generate GraphViz graphs",
	}
	cmd.AddCommand(newGraphPipelineCommand(a))
	return cmd
}

// newGraphPipelineCommand generates the contact to opportunity to stage graph.
func newGraphPipelineCommand(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "pipeline [contact-id]",
		Short: "Draw contacts, their opportunities and pipeline stages",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var contactID *uuid.UUID
			if len(args) > 0 {
				id, err := uuid.Parse(args[0])
				if err != nil {
					return fmt.Errorf("invalid contact ID: %w", err)
				}
				contactID = &id
			}

			g, err := viz.NewGraphGenerator(a.db).GeneratePipelineGraph(cmd.Context(), contactID)
			if err != nil {
				return err
			}

			if output != "" {
				if err := os.WriteFile(output, []byte(g.DOT), 0644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s (%d nodes, %d edges)\n", output, g.Nodes, g.Edges)
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), g.DOT)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	return cmd
}
