package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/staffdeck/staffdeck/internal/api"
	"github.com/staffdeck/staffdeck/internal/employees"
)

// stubListAPI serves a fixed three-page directory
type stubListAPI struct {
	lastQuery api.ListQuery
}

func (s *stubListAPI) ListEmployees(_ context.Context, q api.ListQuery) (*api.EmployeeList, error) {
	s.lastQuery = q
	return &api.EmployeeList{
		Items: []api.Employee{
			{ID: "emp-1", EmployeeID: "EMP-1", Department: "Engineering", Position: "Developer",
				Status: api.StatusActive, User: &api.User{FirstName: "Jane", LastName: "Doe"}},
			{ID: "emp-2", EmployeeID: "EMP-2", Department: "HR", Position: "Recruiter",
				Status: api.StatusActive, User: &api.User{FirstName: "John", LastName: "Smith"}},
		},
		TotalPages: 3,
	}, nil
}

func (s *stubListAPI) CreateEmployee(context.Context, api.EmployeeInput) (*api.Employee, error) {
	return &api.Employee{}, nil
}

func (s *stubListAPI) UpdateEmployee(context.Context, string, api.EmployeeInput) (*api.Employee, error) {
	return &api.Employee{}, nil
}

func (s *stubListAPI) DeleteEmployee(context.Context, string) error {
	return nil
}

func loadedModel(t *testing.T) (Model, *stubListAPI) {
	t.Helper()

	stub := &stubListAPI{}
	ctrl := employees.NewController(stub)
	if err := ctrl.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	model := NewModel(ctrl, &api.User{FirstName: "Ada", LastName: "Admin", Role: api.RoleAdmin})
	updated, _ := model.Update(listLoadedMsg{})
	return updated.(Model), stub
}

// runCmd executes a command, unwrapping batches so nested fetches run
func runCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	if batch, ok := cmd().(tea.BatchMsg); ok {
		for _, c := range batch {
			runCmd(c)
		}
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// TestNewModel tests model initialization
func TestNewModel(t *testing.T) {
	ctrl := employees.NewController(&stubListAPI{})
	model := NewModel(ctrl, nil)

	if !model.loading {
		t.Error("Expected model to start loading")
	}

	if model.mode != modeBrowse {
		t.Errorf("Expected browse mode, got %d", model.mode)
	}

	if model.quitting {
		t.Error("Expected quitting to be false by default")
	}
}

// TestListLoaded tests the fetch completion message
func TestListLoaded(t *testing.T) {
	model, _ := loadedModel(t)

	if model.loading {
		t.Error("Expected loading to be cleared")
	}

	if model.lastErr != "" {
		t.Errorf("Expected no error, got %q", model.lastErr)
	}
}

// TestCursorMovement tests up/down cursor keys
func TestCursorMovement(t *testing.T) {
	model, _ := loadedModel(t)

	updated, _ := model.Update(keyMsg("down"))
	m := updated.(Model)
	if m.cursor != 1 {
		t.Errorf("Expected cursor 1, got %d", m.cursor)
	}

	// Two items on the page; the cursor stops at the last row
	updated, _ = m.Update(keyMsg("down"))
	m = updated.(Model)
	if m.cursor != 1 {
		t.Errorf("Expected cursor to stay at 1, got %d", m.cursor)
	}

	updated, _ = m.Update(keyMsg("up"))
	m = updated.(Model)
	if m.cursor != 0 {
		t.Errorf("Expected cursor 0, got %d", m.cursor)
	}
}

// TestPaging tests next/previous page keys
func TestPaging(t *testing.T) {
	model, stub := loadedModel(t)

	updated, cmd := model.Update(keyMsg("right"))
	m := updated.(Model)
	if !m.loading {
		t.Error("Expected paging to set loading")
	}
	if cmd == nil {
		t.Fatal("Expected a fetch command")
	}
	runCmd(cmd)

	if got := m.ctrl.Query().Page; got != 2 {
		t.Errorf("Expected page 2, got %d", got)
	}
	if stub.lastQuery.Page != 2 {
		t.Errorf("Expected request for page 2, got %d", stub.lastQuery.Page)
	}
}

// TestPagingStopsAtBounds tests that paging past the edges is a no-op
func TestPagingStopsAtBounds(t *testing.T) {
	model, _ := loadedModel(t)

	_, cmd := model.Update(keyMsg("left"))
	if cmd != nil {
		t.Error("Expected no fetch when already on the first page")
	}
}

// TestSearchFlow tests entering, submitting, and cancelling search
func TestSearchFlow(t *testing.T) {
	model, stub := loadedModel(t)

	updated, _ := model.Update(keyMsg("/"))
	m := updated.(Model)
	if m.mode != modeSearch {
		t.Fatal("Expected search mode")
	}

	updated, _ = m.Update(keyMsg("jane"))
	m = updated.(Model)

	updated, cmd := m.Update(keyMsg("enter"))
	m = updated.(Model)
	if m.mode != modeBrowse {
		t.Error("Expected browse mode after submit")
	}
	if cmd == nil {
		t.Fatal("Expected a fetch command")
	}
	runCmd(cmd)

	if got := m.ctrl.Query().Search; got != "jane" {
		t.Errorf("Expected search %q, got %q", "jane", got)
	}
	if stub.lastQuery.Page != 1 {
		t.Errorf("Expected a search to request page 1, got %d", stub.lastQuery.Page)
	}
}

// TestSearchCancel tests that esc leaves search without fetching
func TestSearchCancel(t *testing.T) {
	model, _ := loadedModel(t)

	updated, _ := model.Update(keyMsg("/"))
	m := updated.(Model)

	updated, cmd := m.Update(keyMsg("esc"))
	m = updated.(Model)
	if m.mode != modeBrowse {
		t.Error("Expected browse mode after cancel")
	}
	if cmd != nil {
		t.Error("Expected no fetch on cancel")
	}
}

// TestDepartmentCycle tests the department filter key
func TestDepartmentCycle(t *testing.T) {
	model, stub := loadedModel(t)

	updated, cmd := model.Update(keyMsg("d"))
	m := updated.(Model)
	runCmd(cmd)

	if got := m.ctrl.Query().Department; got != employees.Departments[0] {
		t.Errorf("Expected department %q, got %q", employees.Departments[0], got)
	}
	if stub.lastQuery.Page != 1 {
		t.Errorf("Expected a filter change to request page 1, got %d", stub.lastQuery.Page)
	}
}

// TestNextDepartment tests the filter cycle order
func TestNextDepartment(t *testing.T) {
	if got := nextDepartment(""); got != "IT" {
		t.Errorf("nextDepartment(\"\") = %q, want %q", got, "IT")
	}
	if got := nextDepartment("IT"); got != "HR" {
		t.Errorf("nextDepartment(\"IT\") = %q, want %q", got, "HR")
	}
	// The last department wraps back to the unfiltered view
	if got := nextDepartment("Engineering"); got != "" {
		t.Errorf("nextDepartment(\"Engineering\") = %q, want %q", got, "")
	}
}

// TestQuit tests the quit keys
func TestQuit(t *testing.T) {
	model, _ := loadedModel(t)

	updated, cmd := model.Update(keyMsg("q"))
	m := updated.(Model)
	if !m.quitting {
		t.Error("Expected quitting")
	}
	if cmd == nil {
		t.Error("Expected quit command")
	}
}

// TestSelected tests cursor selection
func TestSelected(t *testing.T) {
	model, _ := loadedModel(t)

	emp := model.Selected()
	if emp == nil || emp.ID != "emp-1" {
		t.Fatalf("Expected emp-1 selected, got %+v", emp)
	}

	updated, _ := model.Update(keyMsg("down"))
	m := updated.(Model)
	emp = m.Selected()
	if emp == nil || emp.ID != "emp-2" {
		t.Fatalf("Expected emp-2 selected, got %+v", emp)
	}
}

// TestView tests rendering of the loaded table
func TestView(t *testing.T) {
	model, _ := loadedModel(t)

	out := model.View()
	if !strings.Contains(out, "Employees") {
		t.Error("Expected title in view")
	}
	if !strings.Contains(out, "Jane Doe") {
		t.Error("Expected employee name in view")
	}
	if !strings.Contains(out, "page 1 of 3") {
		t.Error("Expected pagination line in view")
	}
}

// TestViewError tests rendering of a failed fetch
func TestViewError(t *testing.T) {
	model, _ := loadedModel(t)

	updated, _ := model.Update(listLoadedMsg{err: context.DeadlineExceeded})
	m := updated.(Model)

	out := m.View()
	if !strings.Contains(out, "deadline exceeded") {
		t.Error("Expected error message in view")
	}
}
