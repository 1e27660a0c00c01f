// ABOUTME: TUI view for importer sync status and controls
// ABOUTME: Displays sync_state rows and runs the mention/influencer importers on demand

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/socialpulse/db"
	pulsesync "github.com/harperreed/socialpulse/sync"
)

// syncTimeout bounds one importer run started from the TUI.
const syncTimeout = 30 * time.Second

// syncCompleteMsg is sent when an importer run completes.
type syncCompleteMsg struct {
	Result *pulsesync.Result
	Err    error
}

func (m Model) renderSyncView() string {
	var s strings.Builder

	if len(m.syncStates) == 0 {
		s.WriteString(m.theme.muted.Render("Nothing imported yet. Press Enter to fetch mentions and influencers."))
		s.WriteString("\n")
	}

	for _, state := range m.syncStates {
		fmt.Fprintf(&s, "%-12s ", state.Service)
		switch {
		case m.syncing || state.Status == db.SyncSyncing:
			s.WriteString(m.theme.warn.Render("⟳ Syncing..."))
		case state.Status == db.SyncError:
			s.WriteString(m.theme.bad.Render("✗ Error"))
			if state.ErrorMessage != nil {
				s.WriteString(m.theme.bad.Render(": " + *state.ErrorMessage))
			}
		default:
			s.WriteString(m.theme.ok.Render("✓ Idle"))
			if state.LastSyncTime != nil {
				s.WriteString(m.theme.muted.Render(fmt.Sprintf(" • %d records, last synced %s", state.LastItems, formatTimeSince(*state.LastSyncTime))))
			}
		}
		s.WriteString("\n")
	}

	if len(m.syncMessages) > 0 {
		s.WriteString("\n")
		start := max(len(m.syncMessages)-5, 0)
		for _, line := range m.syncMessages[start:] {
			s.WriteString(m.theme.muted.Render("  " + line))
			s.WriteString("\n")
		}
	}

	s.WriteString(m.renderHelp("Enter: Run importers", "r: Refresh status"))
	return s.String()
}

func (m *Model) loadSyncStates() {
	states, err := db.GetAllSyncStates(m.db)
	if err != nil {
		m.syncStates = nil
		m.err = fmt.Errorf("failed to load sync states: %w", err)
		return
	}
	m.syncStates = states
}

func (m Model) handleSyncKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.syncing {
			return m, nil
		}
		m.syncing = true
		m.addSyncMessage("Starting import...")
		return m, m.runImport()
	case "r":
		m.loadSyncStates()
	}
	return m, nil
}

func (m Model) runImport() tea.Cmd {
	runner, identity := m.runner, m.identity
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()
		res, err := runner.Run(ctx, identity, pulsesync.Request{})
		return syncCompleteMsg{Result: res, Err: err}
	}
}

func (m *Model) addSyncMessage(msg string) {
	m.syncMessages = append(m.syncMessages, fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), msg))
}

func (m *Model) handleSyncComplete(msg syncCompleteMsg) {
	m.syncing = false
	if msg.Err != nil {
		m.addSyncMessage(fmt.Sprintf("✗ import failed: %v", msg.Err))
	} else {
		m.addSyncMessage(fmt.Sprintf("✓ %d mentions, %d influencers", len(msg.Result.Mentions), len(msg.Result.Influencers)))
	}
	m.loadSyncStates()
}

// formatTimeSince formats a time duration in a human-readable way.
func formatTimeSince(t time.Time) string {
	duration := time.Since(t)

	switch {
	case duration < time.Minute:
		return "just now"
	case duration < time.Hour:
		return plural(int(duration.Minutes()), "minute")
	case duration < 24*time.Hour:
		return plural(int(duration.Hours()), "hour")
	default:
		return plural(int(duration.Hours()/24), "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
