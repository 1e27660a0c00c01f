// ABOUTME: Copilot chat tab
// ABOUTME: Sends input to the session, shows a typing hint while replies are pending, handles voice commands

package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/socialpulse/copilot"
	"github.com/harperreed/socialpulse/db"
	"github.com/harperreed/socialpulse/models"
)

// voicePrefix lets a typed line stand in for a voice transcript.
const voicePrefix = "/voice "

func (m Model) renderChatView() string {
	var s strings.Builder

	wrap := lipgloss.NewStyle().Width(max(m.width-4, 20))
	for _, msg := range m.session.Messages() {
		if msg.Role == models.RoleUser {
			s.WriteString(m.theme.user.Render("You"))
		} else {
			s.WriteString(m.theme.assistant.Render("Copilot"))
		}
		s.WriteString(m.theme.muted.Render(" " + msg.Timestamp.Format("15:04")))
		s.WriteString("\n")
		s.WriteString(wrap.Render(msg.Content))
		s.WriteString("\n\n")
	}

	if m.session.Pending() > 0 {
		s.WriteString(m.theme.muted.Render("Copilot is typing..."))
		s.WriteString("\n\n")
	}

	s.WriteString(m.chatInput.View())
	s.WriteString("\n")
	s.WriteString(m.renderHelp("Enter: Send", "Ctrl+V: Voice", voicePrefix+"<phrase>: Voice command"))
	return s.String()
}

func (m Model) handleChatKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		text := m.chatInput.Value()
		m.chatInput.SetValue("")
		m.notice = ""

		if strings.HasPrefix(text, voicePrefix) {
			return m.applyVoice(copilot.ParseVoiceCommand(strings.TrimPrefix(text, voicePrefix))), nil
		}

		sent, ok := m.session.Send(text)
		if !ok {
			return m, nil
		}
		if err := db.AppendChatMessage(m.db, m.sessionID, sent); err != nil {
			m.err = err
		}
		return m, nil

	case "ctrl+v":
		m.notice = m.startVoice()
		return m, nil
	}

	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

func (m Model) startVoice() string {
	if !m.voiceEnabled {
		return "Voice commands are off (accessibility.voice_commands)"
	}
	if err := m.voice.Start(); err != nil {
		if errors.Is(err, copilot.ErrVoiceUnsupported) {
			return "Voice commands are not supported in this terminal. Type " + voicePrefix + "<phrase> instead."
		}
		return fmt.Sprintf("Voice input failed: %v", err)
	}
	return "Listening..."
}

func (m Model) applyVoice(cmd copilot.VoiceCommand) Model {
	switch cmd.Action {
	case copilot.VoiceNavigate:
		if cmd.Route == "/" {
			m = m.switchView(ViewDashboard)
			m.notice = cmd.Announcement
			return m
		}
		m.notice = cmd.Announcement + " (open the web dashboard for this view)"
	case copilot.VoiceToggleHighContrast:
		m.toggleHighContrast()
	case copilot.VoiceHelp:
		m.notice = cmd.Announcement
	default:
		m.notice = "Command not recognized. " + copilot.VoiceHelpText
	}
	return m
}
