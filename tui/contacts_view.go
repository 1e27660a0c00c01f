// ABOUTME: Contacts tab with live search, status filter and status cycling
// ABOUTME: Filtering goes through crm.FilterContacts on every keystroke

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/socialpulse/crm"
	"github.com/harperreed/socialpulse/db"
	"github.com/harperreed/socialpulse/models"
)

var statusFilters = []string{models.StatusAll, models.StatusHot, models.StatusWarm, models.StatusCold}

// nextStatus is the order the "s" key walks a contact through.
var nextStatus = map[string]string{
	models.StatusHot:  models.StatusWarm,
	models.StatusWarm: models.StatusCold,
	models.StatusCold: models.StatusHot,
}

func (m *Model) loadContacts() {
	contacts, err := db.ListContacts(m.db)
	if err != nil {
		m.err = fmt.Errorf("failed to load contacts: %w", err)
		return
	}
	m.contacts = contacts
}

func (m Model) visibleContacts() []models.Contact {
	return crm.FilterContacts(m.contacts, m.searchInput.Value(), m.statusFilter)
}

func (m Model) renderContactsView() string {
	var s strings.Builder

	if m.searching || m.searchInput.Value() != "" {
		s.WriteString(m.searchInput.View())
		s.WriteString("\n")
	}
	s.WriteString(m.theme.muted.Render("Status: " + m.statusFilter))
	s.WriteString("\n\n")

	visible := m.visibleContacts()
	if len(visible) == 0 {
		s.WriteString(m.theme.muted.Render("No contacts found"))
		s.WriteString("\n")
	} else {
		s.WriteString(m.renderContactsTable(visible))
		s.WriteString("\n")
	}

	s.WriteString(m.renderHelp("↑/↓: Navigate", "/: Search", "f: Filter status", "s: Cycle status"))
	return s.String()
}

func (m Model) renderContactsTable(contacts []models.Contact) string {
	columns := []table.Column{
		{Title: "Name", Width: 18},
		{Title: "Company", Width: 16},
		{Title: "Role", Width: 18},
		{Title: "Status", Width: 6},
		{Title: "Last Contact", Width: 12},
		{Title: "Source", Width: 10},
	}

	rows := make([]table.Row, 0, len(contacts))
	for _, c := range contacts {
		last := ""
		if c.LastContact != nil {
			last = c.LastContact.Format("2006-01-02")
		}
		rows = append(rows, table.Row{c.Name, c.Company, c.Role, c.Status, last, c.Source})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-12, 5)),
	)
	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}
	return t.View()
}

func (m Model) handleContactsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "esc":
			m.searching = false
			m.searchInput.SetValue("")
			m.searchInput.Blur()
			m.selectedRow = 0
			return m, nil
		case "enter":
			m.searching = false
			m.searchInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.selectedRow = 0
		return m, cmd
	}

	switch msg.String() {
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "down", "j":
		if m.selectedRow < len(m.visibleContacts())-1 {
			m.selectedRow++
		}
	case "/":
		m.searching = true
		m.searchInput.Focus()
	case "f":
		m.statusFilter = cycle(statusFilters, m.statusFilter)
		m.selectedRow = 0
	case "s":
		m.cycleSelectedStatus()
	case "r":
		m.loadContacts()
	}
	return m, nil
}

func (m *Model) cycleSelectedStatus() {
	visible := m.visibleContacts()
	if m.selectedRow >= len(visible) {
		return
	}
	c := visible[m.selectedRow]
	next, ok := nextStatus[c.Status]
	if !ok {
		next = models.StatusCold
	}
	if err := db.UpdateContactStatus(m.db, c.ID, next); err != nil {
		m.err = err
		return
	}
	m.notice = fmt.Sprintf("%s is now %s", c.Name, next)
	m.loadContacts()

	// Keep the cursor inside the list if the contact dropped out of the filter
	if n := len(m.visibleContacts()); m.selectedRow >= n && n > 0 {
		m.selectedRow = n - 1
	}
}

func cycle(values []string, current string) string {
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}
