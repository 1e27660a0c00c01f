// ABOUTME: Line-oriented copilot chat for the terminal
// ABOUTME: Each line is sent to a copilot session and the reply is printed once it arrives
package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harperreed/socialpulse/copilot"
	"github.com/harperreed/socialpulse/db"
	"github.com/harperreed/socialpulse/models"
)

func newChatCommand(a *app) *cobra.Command {
	var suggestions bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the copilot (reads questions from stdin, one per line)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if suggestions {
				for _, s := range copilot.Suggestions() {
					fmt.Fprintf(out, "[%s] %s (%d%%)\n  %s\n", s.Type, s.Title, s.Confidence, s.Description)
				}
				return nil
			}

			sessionID := uuid.NewString()
			replies := make(chan models.ChatMessage, 1)
			session := copilot.NewSession(
				copilot.WithReplyDelay(a.cfg.Copilot.ReplyDelay),
				copilot.WithLogger(a.logger),
				copilot.WithOnReply(func(msg models.ChatMessage) { replies <- msg }),
			)
			defer session.Close()

			save := func(msg models.ChatMessage) {
				if err := db.AppendChatMessage(a.db, sessionID, msg); err != nil {
					a.logger.Warn("failed to save chat message", zap.Error(err))
				}
			}

			for _, msg := range session.Messages() {
				save(msg)
				fmt.Fprintf(out, "Copilot: %s\n", msg.Content)
			}

			ctx := cmd.Context()
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(out, "> ")
				if !scanner.Scan() {
					fmt.Fprintln(out)
					return scanner.Err()
				}

				line := scanner.Text()
				if strings.TrimSpace(line) == "/quit" {
					return nil
				}
				msg, ok := session.Send(line)
				if !ok {
					continue
				}
				save(msg)

				select {
				case reply := <-replies:
					save(reply)
					fmt.Fprintf(out, "Copilot: %s\n", reply.Content)
				case <-ctx.Done():
					return nil
				}
			}
		},
	}

	cmd.Flags().BoolVar(&suggestions, "suggestions", false, "Print the suggestion cards and exit")
	return cmd
}
