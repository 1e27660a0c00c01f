// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Copilot chat, contacts, dashboard and sync tabs over the shared database

package tui

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/harperreed/socialpulse/analytics"
	"github.com/harperreed/socialpulse/copilot"
	"github.com/harperreed/socialpulse/db"
	"github.com/harperreed/socialpulse/models"
	pulsesync "github.com/harperreed/socialpulse/sync"
)

// ViewMode represents the current TUI tab
type ViewMode int

const (
	ViewChat ViewMode = iota
	ViewContacts
	ViewDashboard
	ViewSync
)

var viewNames = []string{"Copilot", "Contacts", "Dashboard", "Sync"}

type Options struct {
	Identity     models.Identity
	Store        *analytics.Store
	ReplyDelay   time.Duration
	HighContrast bool
	// VoiceEnabled mirrors the accessibility.voice_commands setting.
	VoiceEnabled bool
	Voice        copilot.VoiceInput
	Logger       *zap.Logger
	SessionID    string

	// Scheduler replaces the reply timers; used by tests.
	Scheduler copilot.Scheduler
}

// replyMsg carries an assistant reply from the session's timer into Update.
type replyMsg models.ChatMessage

// Model is the main bubbletea model
type Model struct {
	db       *sql.DB
	store    *analytics.Store
	identity models.Identity
	logger   *zap.Logger
	viewMode ViewMode

	theme        theme
	highContrast bool
	voiceEnabled bool
	voice        copilot.VoiceInput

	// Chat state
	session   *copilot.Session
	sessionID string
	replies   chan models.ChatMessage
	done      chan struct{}
	closeOnce *sync.Once
	chatInput textinput.Model
	notice    string

	// Contacts state
	contacts     []models.Contact
	searchInput  textinput.Model
	searching    bool
	statusFilter string
	selectedRow  int

	// Sync state
	runner       *pulsesync.Runner
	syncStates   []db.SyncState
	syncMessages []string
	syncing      bool

	width  int
	height int
	err    error
}

// NewModel creates a new TUI model and starts its copilot session.
func NewModel(database *sql.DB, opts Options) (Model, error) {
	if opts.Store == nil {
		opts.Store = analytics.NewStore()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Voice == nil {
		opts.Voice = copilot.UnsupportedVoice{}
	}
	if opts.SessionID == "" {
		opts.SessionID = uuid.NewString()
	}
	if opts.ReplyDelay == 0 {
		opts.ReplyDelay = copilot.DefaultReplyDelay
	}

	replies := make(chan models.ChatMessage, 16)
	done := make(chan struct{})

	sessionOpts := []copilot.SessionOption{
		copilot.WithReplyDelay(opts.ReplyDelay),
		copilot.WithLogger(opts.Logger),
		copilot.WithOnReply(func(msg models.ChatMessage) {
			select {
			case replies <- msg:
			case <-done:
			}
		}),
	}
	if opts.Scheduler != nil {
		sessionOpts = append(sessionOpts, copilot.WithScheduler(opts.Scheduler))
	}
	session := copilot.NewSession(sessionOpts...)

	for _, msg := range session.Messages() {
		if err := db.AppendChatMessage(database, opts.SessionID, msg); err != nil {
			session.Close()
			return Model{}, fmt.Errorf("failed to save welcome message: %w", err)
		}
	}

	chatInput := textinput.New()
	chatInput.Placeholder = "Ask me anything about your social media monitoring..."
	chatInput.CharLimit = 500
	chatInput.Focus()

	searchInput := textinput.New()
	searchInput.Placeholder = "Search contacts..."
	searchInput.CharLimit = 100

	m := Model{
		db:           database,
		store:        opts.Store,
		identity:     opts.Identity,
		logger:       opts.Logger,
		viewMode:     ViewChat,
		theme:        newTheme(opts.HighContrast),
		highContrast: opts.HighContrast,
		voiceEnabled: opts.VoiceEnabled,
		voice:        opts.Voice,
		session:      session,
		sessionID:    opts.SessionID,
		replies:      replies,
		done:         done,
		closeOnce:    &sync.Once{},
		chatInput:    chatInput,
		searchInput:  searchInput,
		statusFilter: models.StatusAll,
		runner:       pulsesync.NewRunner(database, opts.Logger),
		width:        80,
		height:       24,
	}
	m.loadContacts()
	m.loadSyncStates()
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForReply())
}

// waitForReply blocks until the session delivers a reply or the model shuts down.
func (m Model) waitForReply() tea.Cmd {
	replies, done := m.replies, m.done
	return func() tea.Msg {
		select {
		case msg := <-replies:
			return replyMsg(msg)
		case <-done:
			return nil
		}
	}
}

// Close cancels pending replies and stops the reply listener. Safe to call twice.
func (m Model) Close() {
	m.closeOnce.Do(func() {
		m.session.Close()
		close(m.done)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case replyMsg:
		if err := db.AppendChatMessage(m.db, m.sessionID, models.ChatMessage(msg)); err != nil {
			m.err = err
		}
		return m, m.waitForReply()
	case syncCompleteMsg:
		m.handleSyncComplete(msg)
		return m, nil
	}

	if m.viewMode == ViewChat {
		var cmd tea.Cmd
		m.chatInput, cmd = m.chatInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(m.theme.title.Render("SOCIAL PULSE 360"))
	s.WriteString("\n")
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	switch m.viewMode {
	case ViewChat:
		s.WriteString(m.renderChatView())
	case ViewContacts:
		s.WriteString(m.renderContactsView())
	case ViewDashboard:
		s.WriteString(m.renderDashboardView())
	case ViewSync:
		s.WriteString(m.renderSyncView())
	}

	if m.notice != "" {
		s.WriteString("\n")
		s.WriteString(m.theme.warn.Render(m.notice))
	}
	if m.err != nil {
		s.WriteString("\n")
		s.WriteString(m.theme.bad.Render("Error: " + m.err.Error()))
	}

	return s.String()
}

func (m Model) renderTabs() string {
	rendered := make([]string, len(viewNames))
	for i, name := range viewNames {
		if ViewMode(i) == m.viewMode {
			rendered[i] = m.theme.tabActive.Render(name)
		} else {
			rendered[i] = m.theme.tabInactive.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.Close()
		return m, tea.Quit
	case "tab":
		if !m.searching {
			return m.switchView((m.viewMode + 1) % ViewMode(len(viewNames))), nil
		}
	case "shift+tab":
		if !m.searching {
			return m.switchView((m.viewMode + ViewMode(len(viewNames)) - 1) % ViewMode(len(viewNames))), nil
		}
	case "ctrl+t":
		m.toggleHighContrast()
		return m, nil
	}

	// Delegate to view-specific handlers
	switch m.viewMode {
	case ViewChat:
		return m.handleChatKeys(msg)
	case ViewContacts:
		return m.handleContactsKeys(msg)
	case ViewDashboard:
		return m.handleDashboardKeys(msg)
	case ViewSync:
		return m.handleSyncKeys(msg)
	}

	return m, nil
}

func (m Model) switchView(v ViewMode) Model {
	m.viewMode = v
	m.notice = ""
	m.err = nil
	if v == ViewChat {
		m.chatInput.Focus()
	} else {
		m.chatInput.Blur()
	}
	switch v {
	case ViewContacts:
		m.loadContacts()
	case ViewSync:
		m.loadSyncStates()
	}
	return m
}

func (m *Model) toggleHighContrast() {
	m.highContrast = !m.highContrast
	m.theme = newTheme(m.highContrast)
	if m.highContrast {
		m.notice = "High contrast on"
	} else {
		m.notice = "High contrast off"
	}
}

func (m Model) renderHelp(keys ...string) string {
	keys = append(keys, "Tab: Switch tabs", "Ctrl+T: High contrast", "Ctrl+C: Quit")
	return m.theme.help.Render(strings.Join(keys, " • "))
}
