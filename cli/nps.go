// ABOUTME: NPS survey CLI commands
// ABOUTME: Record a 0-10 rating and print the aggregate score
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harperreed/socialpulse/db"
	"github.com/harperreed/socialpulse/models"
	"github.com/harperreed/socialpulse/nps"
)

func newNPSCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nps",
		Short: "Net Promoter Score survey results",
	}
	cmd.AddCommand(newNPSSubmitCommand(a), newNPSSummaryCommand(a))
	return cmd
}

func newNPSSubmitCommand(a *app) *cobra.Command {
	var r models.NPSResponse

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Record a survey response",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := db.CreateNPSResponse(a.db, &r); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Recorded %d (%s)\n", r.Score, nps.Classify(r.Score))
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&r.Score, "score", -1, "Rating from 0 to 10 (required)")
	f.StringVar(&r.Feedback, "feedback", "", "Free-text comment")
	f.StringVar(&r.Source, "source", "", "Channel, e.g. Email or In-app")
	_ = cmd.MarkFlagRequired("score")
	return cmd
}

func newNPSSummaryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the NPS score and promoter/passive/detractor counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			responses, err := db.ListNPSResponses(a.db)
			if err != nil {
				return fmt.Errorf("failed to list nps responses: %w", err)
			}

			s := nps.Compute(responses)
			out := cmd.OutOrStdout()
			if s.Total == 0 {
				fmt.Fprintln(out, "No NPS responses yet")
				return nil
			}
			fmt.Fprintf(out, "NPS score:   %d\n", s.Score)
			fmt.Fprintf(out, "Standard:    %.0f\n", s.Standard)
			fmt.Fprintf(out, "Average:     %.1f\n", s.Average)
			fmt.Fprintf(out, "Promoters:   %d\n", s.Promoters)
			fmt.Fprintf(out, "Passives:    %d\n", s.Passives)
			fmt.Fprintf(out, "Detractors:  %d\n", s.Detractors)
			fmt.Fprintf(out, "Responses:   %d\n", s.Total)
			return nil
		},
	}
}
