// ABOUTME: Lipgloss styles for the TUI
// ABOUTME: The high-contrast theme swaps greys for black/white/yellow

package tui

import "github.com/charmbracelet/lipgloss"

type theme struct {
	title       lipgloss.Style
	tabActive   lipgloss.Style
	tabInactive lipgloss.Style
	help        lipgloss.Style
	user        lipgloss.Style
	assistant   lipgloss.Style
	muted       lipgloss.Style
	selected    lipgloss.Style
	ok          lipgloss.Style
	warn        lipgloss.Style
	bad         lipgloss.Style
	status      map[string]lipgloss.Style
}

func newTheme(highContrast bool) theme {
	if highContrast {
		return theme{
			title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("0")).MarginBottom(1),
			tabActive:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11")).Padding(0, 2),
			tabInactive: lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Padding(0, 2),
			help:        lipgloss.NewStyle().Foreground(lipgloss.Color("15")).MarginTop(1),
			user:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
			assistant:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
			muted:       lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Italic(true),
			selected:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("15")),
			ok:          lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
			warn:        lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
			bad:         lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			status: map[string]lipgloss.Style{
				"hot":  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
				"warm": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
				"cold": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
			},
		}
	}

	return theme{
		title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170")).MarginBottom(1),
		tabActive:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170")).Background(lipgloss.Color("235")).Padding(0, 2),
		tabInactive: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Padding(0, 2),
		help:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1),
		user:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		assistant:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170")),
		muted:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true),
		selected:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Background(lipgloss.Color("235")),
		ok:          lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		warn:        lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		bad:         lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		status: map[string]lipgloss.Style{
			"hot":  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
			"warm": lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			"cold": lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		},
	}
}
