// ABOUTME: Contact CLI commands
// ABOUTME: Human-friendly commands for adding, listing and re-rating contacts
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

func newContactsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "contacts",
		Aliases: []string{"contact"},
		Short:   "Manage business development contacts",
	}
	cmd.AddCommand(newContactsAddCommand(a), newContactsListCommand(a), newContactsStatusCommand(a))
	return cmd
}

func newContactsAddCommand(a *app) *cobra.Command {
	var c models.Contact
	var lastContact string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new contact",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.Name == "" {
				return fmt.Errorf("--name is required")
			}
			if lastContact != "" {
				d, err := time.Parse("2006-01-02", lastContact)
				if err != nil {
					return fmt.Errorf("invalid --last-contact: %w", err)
				}
				c.LastContact = &d
			}

			if err := db.CreateContact(a.db, &c); err != nil {
				return fmt.Errorf("failed to create contact: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Contact created: %s (ID: %s)\n", c.Name, c.ID)
			if c.Company != "" {
				fmt.Fprintf(out, "  Company: %s\n", c.Company)
			}
			fmt.Fprintf(out, "  Status: %s\n", c.Status)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&c.Name, "name", "", "Contact name (required)")
	f.StringVar(&c.Email, "email", "", "Email address")
	f.StringVar(&c.Phone, "phone", "", "Phone number")
	f.StringVar(&c.Company, "company", "", "Company name")
	f.StringVar(&c.Role, "role", "", "Job title")
	f.StringVar(&c.Status, "status", models.StatusCold, "hot, warm or cold")
	f.StringVar(&c.Source, "source", "", "Where the lead came from")
	f.StringVar(&c.Notes, "notes", "", "Notes about the contact")
	f.StringVar(&lastContact, "last-contact", "", "Date of last contact (YYYY-MM-DD)")
	return cmd
}

func newContactsListCommand(a *app) *cobra.Command {
	var query, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts, optionally filtered by search term and status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			contacts, err := db.ListContacts(a.db)
			if err != nil {
				return fmt.Errorf("failed to list contacts: %w", err)
			}

			contacts = crm.FilterContacts(contacts, query, status)
			if len(contacts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No contacts found")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "NAME\tCOMPANY\tROLE\tSTATUS\tLAST CONTACT\tID")
			_, _ = fmt.Fprintln(w, "----\t-------\t----\t------\t------------\t--")
			for _, c := range contacts {
				last := "-"
				if c.LastContact != nil {
					last = c.LastContact.Format("2006-01-02")
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					c.Name, dash(c.Company), dash(c.Role), c.Status, last, c.ID)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Case-insensitive search over name and company")
	cmd.Flags().StringVar(&status, "status", models.StatusAll, "all, hot, warm or cold")
	return cmd
}

func newContactsStatusCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status <contact-id> <hot|warm|cold>",
		Short: "Change a contact's lead temperature",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid contact ID: %w", err)
			}
			if err := db.UpdateContactStatus(a.db, id, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Contact %s is now %s\n", id, args[1])
			return nil
		},
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
