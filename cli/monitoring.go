// ABOUTME: Social listening CLI commands
// ABOUTME: Fetch and list brand mentions, discover and track influencers, score text sentiment
package cli

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/harperreed/socialpulse/db"
	"github.com/harperreed/socialpulse/sentiment"
	pulsesync "github.com/harperreed/socialpulse/sync"
)

// errSignIn wraps the auth gate error with a hint about the --user flag.
func errSignIn(err error) error {
	if errors.Is(err, pulsesync.ErrNotAuthenticated) {
		return fmt.Errorf("%w: pass --user or set PULSE_USER", err)
	}
	return err
}

func newMentionsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mentions",
		Short: "Brand mentions across social platforms",
	}
	cmd.AddCommand(newMentionsFetchCommand(a), newMentionsListCommand(a))
	return cmd
}

func newMentionsFetchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch [keyword...]",
		Short: "Import mentions for a keyword",
		RunE: func(cmd *cobra.Command, args []string) error {
			importer := pulsesync.NewMonitoringImporter(a.db, a.logger)
			mentions, err := importer.FetchMentions(cmd.Context(), a.cfg.Identity(), args)
			if err != nil {
				return errSignIn(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %d mentions\n", len(mentions))
			return nil
		},
	}
}

func newMentionsListCommand(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored mentions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			identity := a.cfg.Identity()
			if !identity.Authenticated() {
				return errSignIn(pulsesync.ErrNotAuthenticated)
			}
			mentions, err := db.ListMentions(a.db, identity.UserID, limit)
			if err != nil {
				return err
			}
			if len(mentions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No mentions yet. Run: socialpulse mentions fetch")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "DATE\tPLATFORM\tAUTHOR\tSENTIMENT\tREACH\tCONTENT")
			for _, m := range mentions {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s (%+.2f)\t%d\t%s\n",
					m.MentionDate.Format("2006-01-02"), m.Platform, m.Author,
					m.SentimentLabel, m.Sentiment, m.Reach, truncate(m.Content, 60))
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum results (0 for all)")
	return cmd
}

func newInfluencersCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "influencers",
		Short: "Influencer discovery and tracking",
	}
	cmd.AddCommand(newInfluencersDiscoverCommand(a), newInfluencersListCommand(a), newInfluencersTrackCommand(a))
	return cmd
}

func newInfluencersDiscoverCommand(a *app) *cobra.Command {
	var category, platform string

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Import influencer profiles for a category and platform",
		RunE: func(cmd *cobra.Command, _ []string) error {
			importer := pulsesync.NewInfluencerImporter(a.db, a.logger)
			found, err := importer.Discover(cmd.Context(), a.cfg.Identity(), category, platform)
			if err != nil {
				return errSignIn(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %d influencers\n", len(found))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Category (default tech)")
	cmd.Flags().StringVar(&platform, "platform", "", "Platform (default instagram)")
	return cmd
}

func newInfluencersListCommand(a *app) *cobra.Command {
	var trackedOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored influencers by follower count",
		RunE: func(cmd *cobra.Command, _ []string) error {
			identity := a.cfg.Identity()
			if !identity.Authenticated() {
				return errSignIn(pulsesync.ErrNotAuthenticated)
			}
			influencers, err := db.ListInfluencers(a.db, identity.UserID)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "NAME\tHANDLE\tPLATFORM\tFOLLOWERS\tENGAGEMENT\tTRACKED\tID")
			for _, inf := range influencers {
				if trackedOnly && !inf.IsTracked {
					continue
				}
				tracked := ""
				if inf.IsTracked {
					tracked = "✓"
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.1f%%\t%s\t%s\n",
					inf.Name, inf.Handle, inf.Platform, inf.FollowerCount, inf.EngagementRate, tracked, inf.ID)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&trackedOnly, "tracked", false, "Only tracked influencers")
	return cmd
}

func newInfluencersTrackCommand(a *app) *cobra.Command {
	var untrack bool

	cmd := &cobra.Command{
		Use:   "track <influencer-id>",
		Short: "Start (or with --off, stop) tracking an influencer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			identity := a.cfg.Identity()
			if !identity.Authenticated() {
				return errSignIn(pulsesync.ErrNotAuthenticated)
			}
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid influencer ID: %w", err)
			}
			if err := db.SetInfluencerTracked(a.db, identity.UserID, id, !untrack); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Tracking %s: %t\n", id, !untrack)
			return nil
		},
	}

	cmd.Flags().BoolVar(&untrack, "off", false, "Stop tracking")
	return cmd
}

func newSentimentCommand(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sentiment <text...>",
		Short: "Score the sentiment of a piece of text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := sentiment.Analyze(strings.Join(args, " "))
			fmt.Fprintf(cmd.OutOrStdout(), "%s (score %+.2f, confidence %.2f)\n", r.Label, r.Score, r.Confidence)
			return nil
		},
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
