// Package tui provides the interactive employee browser. It renders the
// paginated employee list with search and paging keys; all list state
// lives in the employees controller, the model only mirrors it.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/staffdeck/staffdeck/internal/api"
	"github.com/staffdeck/staffdeck/internal/employees"
)

// browse mode constants
const (
	modeBrowse = iota
	modeSearch
)

// Model represents the employee browser state
type Model struct {
	ctrl *employees.Controller
	user *api.User

	spinner spinner.Model
	search  textinput.Model

	mode     int
	loading  bool
	cursor   int
	lastErr  string
	width    int
	height   int
	ready    bool
	quitting bool

	styles Styles
}

// NewModel creates a browser over an employee list controller. The user is
// shown in the header and gates nothing here; mutations live in the CLI
// commands.
func NewModel(ctrl *employees.Controller, user *api.User) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	search := textinput.New()
	search.Placeholder = "name, email or employee ID"
	search.CharLimit = 64

	return Model{
		ctrl:    ctrl,
		user:    user,
		spinner: sp,
		search:  search,
		loading: true,
		styles:  DefaultStyles(),
	}
}

// listLoadedMsg indicates a fetch round-trip finished
type listLoadedMsg struct {
	err error
}

// Init starts the spinner and the initial fetch (required by Bubble Tea)
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchCmd(employees.QueryUpdate{}))
}

// fetchCmd applies a query update and re-fetches off the UI goroutine
func (m Model) fetchCmd(update employees.QueryUpdate) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		return listLoadedMsg{err: ctrl.SetQuery(context.Background(), update)}
	}
}

// Update handles messages and updates the model state (required by Bubble Tea)
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case listLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.lastErr = msg.err.Error()
			return m, nil
		}
		m.lastErr = ""
		m.clampCursor()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.mode == modeSearch {
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.ctrl.Result().Items)-1 {
			m.cursor++
		}

	case "left", "h":
		q := m.ctrl.Query()
		if q.Page > 1 {
			page := q.Page - 1
			m.loading = true
			m.cursor = 0
			return m, tea.Batch(m.spinner.Tick, m.fetchCmd(employees.QueryUpdate{Page: &page}))
		}

	case "right", "l":
		q := m.ctrl.Query()
		if q.Page < m.ctrl.Result().TotalPages {
			page := q.Page + 1
			m.loading = true
			m.cursor = 0
			return m, tea.Batch(m.spinner.Tick, m.fetchCmd(employees.QueryUpdate{Page: &page}))
		}

	case "/":
		m.mode = modeSearch
		m.search.SetValue(m.ctrl.Query().Search)
		m.search.Focus()
		return m, textinput.Blink

	case "d":
		next := nextDepartment(m.ctrl.Query().Department)
		m.loading = true
		m.cursor = 0
		return m, tea.Batch(m.spinner.Tick, m.fetchCmd(employees.QueryUpdate{Department: &next}))

	case "r":
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.fetchCmd(employees.QueryUpdate{}))
	}

	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		term := m.search.Value()
		m.mode = modeBrowse
		m.search.Blur()
		m.loading = true
		m.cursor = 0
		return m, tea.Batch(m.spinner.Tick, m.fetchCmd(employees.QueryUpdate{Search: &term}))

	case "esc":
		m.mode = modeBrowse
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// nextDepartment cycles through the department filter values, ending back
// at the unfiltered view
func nextDepartment(current string) string {
	if current == "" {
		return employees.Departments[0]
	}
	for i, dept := range employees.Departments {
		if dept == current && i+1 < len(employees.Departments) {
			return employees.Departments[i+1]
		}
	}
	return ""
}

func (m *Model) clampCursor() {
	count := len(m.ctrl.Result().Items)
	if count == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= count {
		m.cursor = count - 1
	}
}

// Selected returns the employee under the cursor, or nil on an empty page
func (m Model) Selected() *api.Employee {
	items := m.ctrl.Result().Items
	if m.cursor < 0 || m.cursor >= len(items) {
		return nil
	}
	emp := items[m.cursor]
	return &emp
}

// Run starts the browser and blocks until the user quits
func Run(ctrl *employees.Controller, user *api.User) error {
	program := tea.NewProgram(NewModel(ctrl, user), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
