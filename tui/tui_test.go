// ABOUTME: Tests for the TUI model
// ABOUTME: Drives Update with key messages and fires copilot replies through a fake scheduler

package tui

import (
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/harperreed/socialpulse/copilot"
	"github.com/harperreed/socialpulse/db"
	"github.com/harperreed/socialpulse/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

type fakeTask struct {
	stopped bool
}

func (f *fakeTask) Stop() bool {
	was := !f.stopped
	f.stopped = true
	return was
}

type fakeScheduler struct {
	mu    sync.Mutex
	tasks []*fakeTask
	fns   []func()
}

func (s *fakeScheduler) AfterFunc(_ time.Duration, f func()) copilot.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	task := &fakeTask{}
	s.tasks = append(s.tasks, task)
	s.fns = append(s.fns, f)
	return task
}

// fireAll runs every scheduled callback that was not stopped.
func (s *fakeScheduler) fireAll() {
	s.mu.Lock()
	tasks, fns := s.tasks, s.fns
	s.tasks, s.fns = nil, nil
	s.mu.Unlock()

	for i, f := range fns {
		if !tasks[i].stopped {
			f()
		}
	}
}

func newTestModel(t *testing.T, database *sql.DB, opts Options) (Model, *fakeScheduler) {
	t.Helper()
	sch := &fakeScheduler{}
	opts.Scheduler = sch
	if opts.SessionID == "" {
		opts.SessionID = "test-session"
	}
	m, err := NewModel(database, opts)
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m, sch
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+v":
		return tea.KeyMsg{Type: tea.KeyCtrlV}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(key(k))
		m = updated.(Model)
	}
	return m
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return updated.(Model)
}

func TestNewModelSavesWelcome(t *testing.T) {
	database := setupTestDB(t)
	m, _ := newTestModel(t, database, Options{})

	msgs, err := db.ListChatMessages(database, "test-session")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, copilot.Welcome, msgs[0].Content)
	assert.Contains(t, m.View(), "SOCIAL PULSE 360")
}

func TestChatDelayedReply(t *testing.T) {
	database := setupTestDB(t)
	m, sch := newTestModel(t, database, Options{})

	m = typeText(t, m, "show me the dashboard")
	m = press(t, m, "enter")

	assert.Equal(t, 1, m.session.Pending())
	assert.Len(t, m.session.Messages(), 2)
	assert.Contains(t, m.View(), "Copilot is typing...")
	assert.Empty(t, m.chatInput.Value())

	sch.fireAll()
	msg := m.waitForReply()()
	reply, ok := msg.(replyMsg)
	require.True(t, ok)
	assert.Equal(t, models.RoleAssistant, reply.Role)

	updated, _ := m.Update(msg)
	m = updated.(Model)
	assert.NotContains(t, m.View(), "Copilot is typing...")

	saved, err := db.ListChatMessages(database, "test-session")
	require.NoError(t, err)
	require.Len(t, saved, 3)
	assert.Equal(t, models.RoleUser, saved[1].Role)
	assert.Equal(t, reply.Content, saved[2].Content)
}

func TestChatIgnoresBlankInput(t *testing.T) {
	m, _ := newTestModel(t, setupTestDB(t), Options{})
	m = typeText(t, m, "   ")
	m = press(t, m, "enter")
	assert.Len(t, m.session.Messages(), 1)
	assert.Equal(t, 0, m.session.Pending())
}

func TestCloseCancelsPendingReplies(t *testing.T) {
	m, sch := newTestModel(t, setupTestDB(t), Options{})
	m = typeText(t, m, "hello")
	m = press(t, m, "enter")
	require.Equal(t, 1, m.session.Pending())

	m.Close()
	m.Close()
	assert.Equal(t, 0, m.session.Pending())

	sch.fireAll()
	assert.Len(t, m.session.Messages(), 2)
	assert.Nil(t, m.waitForReply()())
}

func TestCloseLeavesNoGoroutines(t *testing.T) {
	defer goleak.VerifyNone(t)

	database, err := db.OpenDatabase(filepath.Join(t.TempDir(), "leak.db"))
	require.NoError(t, err)
	defer database.Close()

	m, err := NewModel(database, Options{ReplyDelay: time.Hour})
	require.NoError(t, err)
	m = typeText(t, m, "hello")
	m = press(t, m, "enter")
	m.Close()
}

func TestVoiceCommands(t *testing.T) {
	m, _ := newTestModel(t, setupTestDB(t), Options{VoiceEnabled: true})

	m = typeText(t, m, "/voice go to dashboard")
	m = press(t, m, "enter")
	assert.Equal(t, ViewDashboard, m.viewMode)
	assert.Equal(t, "Navigating to dashboard", m.notice)
	assert.Len(t, m.session.Messages(), 1, "voice commands are not chat messages")

	m = m.switchView(ViewChat)
	m = typeText(t, m, "/voice toggle high contrast")
	m = press(t, m, "enter")
	assert.True(t, m.highContrast)

	m = press(t, m, "ctrl+v")
	assert.Contains(t, m.notice, "not supported")

	m = press(t, m, "ctrl+t")
	assert.False(t, m.highContrast)
	assert.Equal(t, "High contrast off", m.notice)
}

func TestVoiceDisabled(t *testing.T) {
	m, _ := newTestModel(t, setupTestDB(t), Options{})
	m = press(t, m, "ctrl+v")
	assert.Contains(t, m.notice, "Voice commands are off")
}

func TestContactsSearchAndFilter(t *testing.T) {
	database := setupTestDB(t)
	require.NoError(t, db.Seed(database))
	m, _ := newTestModel(t, database, Options{})

	m = press(t, m, "tab")
	require.Equal(t, ViewContacts, m.viewMode)
	assert.Len(t, m.visibleContacts(), 3)

	m = press(t, m, "/")
	require.True(t, m.searching)
	m = typeText(t, m, "corp")
	assert.Len(t, m.visibleContacts(), 2)

	m = press(t, m, "enter")
	assert.False(t, m.searching)

	m = press(t, m, "f")
	assert.Equal(t, models.StatusHot, m.statusFilter)
	visible := m.visibleContacts()
	require.Len(t, visible, 1)
	assert.Equal(t, "Sarah Johnson", visible[0].Name)
	assert.Contains(t, m.View(), "Sarah Johnson")

	m = press(t, m, "/", "esc")
	assert.Empty(t, m.searchInput.Value())
	assert.Len(t, m.visibleContacts(), 1)
}

func TestContactsCycleStatus(t *testing.T) {
	database := setupTestDB(t)
	require.NoError(t, db.Seed(database))
	m, _ := newTestModel(t, database, Options{})
	m = press(t, m, "tab")

	var sarah models.Contact
	for _, c := range m.visibleContacts() {
		if c.Name == "Sarah Johnson" {
			sarah = c
		}
	}
	for i, c := range m.visibleContacts() {
		if c.ID == sarah.ID {
			m.selectedRow = i
		}
	}

	m = press(t, m, "s")
	got, err := db.GetContact(database, sarah.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusWarm, got.Status)
	assert.Equal(t, "Sarah Johnson is now warm", m.notice)
}

func TestSyncViewRunsImporters(t *testing.T) {
	database := setupTestDB(t)
	m, _ := newTestModel(t, database, Options{Identity: models.Identity{UserID: "user-1"}})
	m = press(t, m, "tab", "tab", "tab")
	require.Equal(t, ViewSync, m.viewMode)
	assert.Contains(t, m.View(), "Nothing imported yet")

	m.syncing = true
	msg := m.runImport()()
	done, ok := msg.(syncCompleteMsg)
	require.True(t, ok)
	require.NoError(t, done.Err)

	updated, _ := m.Update(msg)
	m = updated.(Model)
	assert.False(t, m.syncing)
	assert.Len(t, m.syncStates, 2)
	assert.Contains(t, m.View(), "3 mentions")
}

func TestSyncViewReportsAuthError(t *testing.T) {
	m, _ := newTestModel(t, setupTestDB(t), Options{})
	updated, _ := m.Update(m.runImport()())
	m = updated.(Model)
	require.NotEmpty(t, m.syncMessages)
	assert.Contains(t, m.syncMessages[len(m.syncMessages)-1], "import failed")
}

func TestFormatTimeSince(t *testing.T) {
	now := time.Now()
	assert.Equal(t, "just now", formatTimeSince(now))
	assert.Equal(t, "1 minute ago", formatTimeSince(now.Add(-90*time.Second)))
	assert.Equal(t, "5 hours ago", formatTimeSince(now.Add(-5*time.Hour-time.Minute)))
	assert.Equal(t, "2 days ago", formatTimeSince(now.Add(-49*time.Hour)))
}
