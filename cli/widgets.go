// ABOUTME: Dashboard widget CLI commands
// ABOUTME: Add, remove and list widgets; changes are saved to the database
package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harperreed/socialpulse/analytics"
	"github.com/harperreed/socialpulse/models"
	"github.com/harperreed/socialpulse/viz"
)

func newWidgetsCommand(a *app) *cobra.Command {
	var dashboardID string

	cmd := &cobra.Command{
		Use:     "widgets",
		Aliases: []string{"widget"},
		Short:   "Manage dashboard widgets",
	}
	cmd.PersistentFlags().StringVar(&dashboardID, "dashboard", analytics.DefaultDashboardID, "Dashboard id")

	cmd.AddCommand(
		newWidgetsAddCommand(a, &dashboardID),
		newWidgetsRemoveCommand(a, &dashboardID),
		newWidgetsListCommand(a, &dashboardID),
	)
	return cmd
}

func newWidgetsAddCommand(a *app, dashboardID *string) *cobra.Command {
	var spec analytics.WidgetSpec

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a widget with placeholder data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !models.IsValidWidgetType(spec.Type) {
				return fmt.Errorf("invalid widget type %q (metric, bar, pie or line)", spec.Type)
			}

			store, err := a.loadStore()
			if err != nil {
				return err
			}
			w, ok := store.AddWidget(*dashboardID, spec)
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing added: a widget needs a title and an existing dashboard")
				return nil
			}
			if err := a.saveStore(store); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Widget added: %s (ID: %s, %s)\n", w.Title, w.ID, w.Size)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&spec.Type, "type", models.WidgetMetric, "metric, bar, pie or line")
	f.StringVar(&spec.Title, "title", "", "Widget title (required)")
	f.StringVar(&spec.Size, "size", models.SizeMedium, "small, medium or large")
	return cmd
}

func newWidgetsRemoveCommand(a *app, dashboardID *string) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <widget-id>",
		Short: "Remove a widget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.loadStore()
			if err != nil {
				return err
			}
			if !store.RemoveWidget(*dashboardID, args[0]) {
				fmt.Fprintf(cmd.OutOrStdout(), "No widget %s on dashboard %s\n", args[0], *dashboardID)
				return nil
			}
			if err := a.saveStore(store); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Widget removed: %s\n", args[0])
			return nil
		},
	}
}

func newWidgetsListCommand(a *app, dashboardID *string) *cobra.Command {
	var render bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a dashboard's widgets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.loadStore()
			if err != nil {
				return err
			}
			d, ok := store.Dashboard(*dashboardID)
			if !ok {
				return fmt.Errorf("dashboard %s not found", *dashboardID)
			}

			if render {
				fmt.Fprint(cmd.OutOrStdout(), viz.RenderWidgets(d))
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "TITLE\tTYPE\tSIZE\tPOINTS\tID")
			for _, widget := range d.Widgets {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
					widget.Title, widget.Type, widget.Size, len(widget.Data), widget.ID)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&render, "render", false, "Draw the widgets as terminal charts")
	return cmd
}
