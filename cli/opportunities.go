// ABOUTME: Opportunity CLI commands
// ABOUTME: Add and list pipeline opportunities and print the pipeline summary
package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/harperreed/socialpulse/crm"
	"github.com/harperreed/socialpulse/db"
	"github.com/harperreed/socialpulse/models"
)

func newOpportunitiesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "opportunities",
		Aliases: []string{"opps"},
		Short:   "Manage the sales pipeline",
	}
	cmd.AddCommand(newOppsAddCommand(a), newOppsListCommand(a), newOppsSummaryCommand(a))
	return cmd
}

func newOppsAddCommand(a *app) *cobra.Command {
	var o models.Opportunity
	var contactID, closeDate string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an opportunity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if o.Title == "" {
				return fmt.Errorf("--title is required")
			}

			contactName := crm.UnknownContact
			if contactID != "" {
				id, err := uuid.Parse(contactID)
				if err != nil {
					return fmt.Errorf("invalid --contact: %w", err)
				}
				contact, err := db.GetContact(a.db, id)
				if err != nil {
					return fmt.Errorf("failed to lookup contact: %w", err)
				}
				if contact == nil {
					return fmt.Errorf("contact not found: %s", contactID)
				}
				o.ContactID = &id
				contactName = contact.Name
			}

			if closeDate != "" {
				d, err := time.Parse("2006-01-02", closeDate)
				if err != nil {
					return fmt.Errorf("invalid --close-date: %w", err)
				}
				o.CloseDate = &d
			}

			if err := db.CreateOpportunity(a.db, &o); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Opportunity created: %s (ID: %s)\n", o.Title, o.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "  %s · $%.0f · %s · %d%%\n", contactName, o.Value, o.Stage, o.Probability)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.Title, "title", "", "Opportunity title (required)")
	f.StringVar(&contactID, "contact", "", "Contact UUID")
	f.Float64Var(&o.Value, "value", 0, "Deal value in dollars")
	f.StringVar(&o.Stage, "stage", models.StageProspecting, "Pipeline stage")
	f.IntVar(&o.Probability, "probability", 0, "Win probability 0-100")
	f.StringVar(&closeDate, "close-date", "", "Expected close date (YYYY-MM-DD)")
	f.StringVar(&o.Notes, "notes", "", "Notes")
	return cmd
}

func newOppsListCommand(a *app) *cobra.Command {
	var stage string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List opportunities",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opps, err := db.ListOpportunities(a.db, stage)
			if err != nil {
				return fmt.Errorf("failed to list opportunities: %w", err)
			}
			if len(opps) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No opportunities found")
				return nil
			}

			contacts, err := db.ListContacts(a.db)
			if err != nil {
				return fmt.Errorf("failed to list contacts: %w", err)
			}
			idx := crm.NewContactIndex(contacts)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "TITLE\tCONTACT\tVALUE\tSTAGE\tPROB\tCLOSE")
			_, _ = fmt.Fprintln(w, "-----\t-------\t-----\t-----\t----\t-----")
			for _, o := range opps {
				closing := "-"
				if o.CloseDate != nil {
					closing = o.CloseDate.Format("2006-01-02")
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t$%.0f\t%s\t%d%%\t%s\n",
					o.Title, idx.Name(o.ContactID), o.Value, o.Stage, o.Probability, closing)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&stage, "stage", "", "Only list this stage")
	return cmd
}

func newOppsSummaryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print pipeline totals and the per-stage breakdown",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opps, err := db.ListOpportunities(a.db, "")
			if err != nil {
				return fmt.Errorf("failed to list opportunities: %w", err)
			}

			s := crm.AggregateOpportunities(opps)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Opportunities:    %d\n", s.Count)
			fmt.Fprintf(out, "Total value:      $%.0f\n", s.Total)
			fmt.Fprintf(out, "Avg probability:  %.0f%%\n", s.AvgProbability)
			fmt.Fprintf(out, "Weighted value:   $%.0f\n\n", s.Weighted)

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "STAGE\tCOUNT\tVALUE")
			for _, st := range crm.PipelineByStage(opps) {
				_, _ = fmt.Fprintf(w, "%s\t%d\t$%.0f\n", st.Stage, st.Count, st.Value)
			}
			return w.Flush()
		},
	}
}
