package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles contains lipgloss styles for the browser
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Header   lipgloss.Style
	Row      lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
	Key      lipgloss.Style
}

// DefaultStyles returns the default lipgloss styles
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")),
		Row: lipgloss.NewStyle(),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color("63")).
			Foreground(lipgloss.Color("230")).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Key: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")),
	}
}

// View renders the browser (required by Bubble Tea)
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Employees"))
	b.WriteString("\n")

	if m.user != nil {
		b.WriteString(m.styles.Subtitle.Render(
			fmt.Sprintf("signed in as %s (%s)", m.user.FullName(), m.user.Role)))
		b.WriteString("\n\n")
	}

	if m.mode == modeSearch {
		b.WriteString(m.styles.Header.Render("Search: "))
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	} else if q := m.ctrl.Query(); q.Search != "" || q.Department != "" {
		var filters []string
		if q.Search != "" {
			filters = append(filters, fmt.Sprintf("search %q", q.Search))
		}
		if q.Department != "" {
			filters = append(filters, "department "+q.Department)
		}
		b.WriteString(m.styles.Muted.Render("filter: " + strings.Join(filters, ", ")))
		b.WriteString("\n\n")
	}

	if m.loading {
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading employees...\n")
		return b.String()
	}

	if m.lastErr != "" {
		b.WriteString(m.styles.Error.Render("✗ " + m.lastErr))
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render("press r to retry, q to quit"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.renderTable())
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderTable() string {
	items := m.ctrl.Result().Items
	if len(items) == 0 {
		return m.styles.Muted.Render("No employees found.") + "\n"
	}

	var b strings.Builder
	b.WriteString(m.styles.Header.Render(
		fmt.Sprintf("  %-10s %-24s %-16s %-18s %s", "ID", "NAME", "DEPARTMENT", "POSITION", "STATUS")))
	b.WriteString("\n")

	for i, emp := range items {
		name := ""
		if emp.User != nil {
			name = emp.User.FullName()
		}
		line := fmt.Sprintf("%-10s %-24s %-16s %-18s %s",
			emp.EmployeeID, name, emp.Department, emp.Position, emp.Status)
		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(m.styles.Row.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderFooter() string {
	q := m.ctrl.Query()
	pages := m.ctrl.Result().TotalPages

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("page %d of %d", q.Page, pages)))
	b.WriteString(m.styles.Help.Render("\n" +
		m.styles.Key.Render("←/→") + " page  " +
		m.styles.Key.Render("↑/↓") + " move  " +
		m.styles.Key.Render("/") + " search  " +
		m.styles.Key.Render("d") + " department  " +
		m.styles.Key.Render("r") + " refresh  " +
		m.styles.Key.Render("q") + " quit"))
	b.WriteString("\n")
	return b.String()
}
