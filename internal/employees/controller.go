// Package employees owns the paginated, filtered employee collection state
// and its mutations. The server is the sole source of truth: every
// successful mutation is followed by a full re-fetch rather than a local
// patch.
package employees

import (
	"context"
	stderrors "errors"
	"strconv"
	"sync"

	"github.com/staffdeck/staffdeck/internal/api"
	"github.com/staffdeck/staffdeck/internal/errors"
	"github.com/staffdeck/staffdeck/internal/log"
	"github.com/staffdeck/staffdeck/internal/notify"
)

// PageSize is the fixed page size for employee list requests
const PageSize = 10

// Departments is the fixed set of departments offered by the filter and
// the create/update forms
var Departments = []string{"IT", "HR", "Finance", "Marketing", "Sales", "Operations", "Engineering"}

// ListAPI is the slice of the platform API the controller depends on
type ListAPI interface {
	ListEmployees(ctx context.Context, q api.ListQuery) (*api.EmployeeList, error)
	CreateEmployee(ctx context.Context, input api.EmployeeInput) (*api.Employee, error)
	UpdateEmployee(ctx context.Context, id string, input api.EmployeeInput) (*api.Employee, error)
	DeleteEmployee(ctx context.Context, id string) error
}

// Confirmer asks the user to confirm a destructive action
type Confirmer func(prompt string) bool

// Query drives the employee list. Page starts at 1; the page size is fixed.
type Query struct {
	Page       int
	Search     string
	Department string
}

// QueryUpdate is a partial query change. Nil fields keep their current
// value.
type QueryUpdate struct {
	Page       *int
	Search     *string
	Department *string
}

// Result is the most recently completed fetch's view of the collection
type Result struct {
	Items      []api.Employee
	TotalPages int
}

// Input is raw employee form input. Salary arrives as entered by the user
// and is coerced to a number before anything crosses the wire.
type Input struct {
	EmployeeID  string
	UserID      string
	Department  string
	Position    string
	Salary      string
	PhoneNumber string
}

// Controller owns the list state machine
type Controller struct {
	mu      sync.Mutex
	query   Query
	result  Result
	seq     uint64
	editing bool

	client   ListAPI
	notifier notify.Notifier
	logger   *log.Logger
	confirm  Confirmer
}

// ControllerOption configures a Controller
type ControllerOption func(*Controller)

// WithNotifier sets the user-facing notifier
func WithNotifier(n notify.Notifier) ControllerOption {
	return func(c *Controller) { c.notifier = n }
}

// WithLogger sets the logger
func WithLogger(l *log.Logger) ControllerOption {
	return func(c *Controller) { c.logger = l }
}

// WithConfirmer sets the delete confirmation prompt
func WithConfirmer(f Confirmer) ControllerOption {
	return func(c *Controller) { c.confirm = f }
}

// NewController creates a controller with an empty first-page query
func NewController(client ListAPI, opts ...ControllerOption) *Controller {
	c := &Controller{
		query:    Query{Page: 1},
		result:   Result{TotalPages: 1},
		client:   client,
		notifier: notify.Noop{},
		logger:   log.DefaultLogger(),
		confirm:  func(string) bool { return false },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Query returns the current query
func (c *Controller) Query() Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Result returns the most recently completed fetch's result
func (c *Controller) Result() Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// BeginEditing marks an editor (create or update form) as open
func (c *Controller) BeginEditing() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = true
}

// Editing reports whether an editor is open
func (c *Controller) Editing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editing
}

func (c *Controller) closeEditing() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = false
}

// SetQuery merges a partial update into the query and fetches. Changing the
// search term or department filter resets the page to 1; changing only the
// page leaves the filters alone.
func (c *Controller) SetQuery(ctx context.Context, update QueryUpdate) error {
	c.mu.Lock()
	filtersChanged := false
	if update.Search != nil && *update.Search != c.query.Search {
		c.query.Search = *update.Search
		filtersChanged = true
	}
	if update.Department != nil && *update.Department != c.query.Department {
		c.query.Department = *update.Department
		filtersChanged = true
	}
	if filtersChanged {
		c.query.Page = 1
	} else if update.Page != nil && *update.Page >= 1 {
		c.query.Page = *update.Page
	}
	c.mu.Unlock()

	return c.Fetch(ctx)
}

// Fetch re-queries the list with the current query. Responses to
// superseded fetches are discarded: only the latest issued fetch may
// replace the result. On failure the previous result stays in place.
func (c *Controller) Fetch(ctx context.Context) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	q := c.query
	c.mu.Unlock()

	list, err := c.client.ListEmployees(ctx, api.ListQuery{
		Page:       q.Page,
		Limit:      PageSize,
		Search:     q.Search,
		Department: q.Department,
	})

	c.mu.Lock()
	stale := seq != c.seq
	c.mu.Unlock()
	if stale {
		// A newer fetch owns the result now.
		c.logger.Debug("discarding stale list response", "seq", seq)
		return nil
	}

	if err != nil {
		c.notifier.Error("Failed to fetch employees")
		return err
	}

	c.mu.Lock()
	c.result = Result{Items: list.Items, TotalPages: list.TotalPages}
	c.mu.Unlock()
	return nil
}

// Create adds an employee record and re-fetches with the current query
func (c *Controller) Create(ctx context.Context, input Input) error {
	payload, err := input.toAPI()
	if err != nil {
		return err
	}

	if _, err := c.client.CreateEmployee(ctx, payload); err != nil {
		c.notifier.Error(mutationMessage(err, "Failed to create employee. Please check all required fields."))
		return err
	}

	c.notifier.Success("Employee created successfully!")
	c.closeEditing()
	return c.Fetch(ctx)
}

// Update replaces an employee record and re-fetches with the current query
func (c *Controller) Update(ctx context.Context, id string, input Input) error {
	payload, err := input.toAPI()
	if err != nil {
		return err
	}

	if _, err := c.client.UpdateEmployee(ctx, id, payload); err != nil {
		c.notifier.Error(mutationMessage(err, "Failed to update employee. Please check all required fields."))
		return err
	}

	c.notifier.Success("Employee updated successfully!")
	c.closeEditing()
	return c.Fetch(ctx)
}

// Delete removes an employee record after explicit confirmation. Declining
// performs no network call and no state change.
func (c *Controller) Delete(ctx context.Context, id string) error {
	if !c.confirm("Are you sure you want to delete this employee?") {
		return nil
	}

	if err := c.client.DeleteEmployee(ctx, id); err != nil {
		c.notifier.Error(mutationMessage(err, "Failed to delete employee"))
		return err
	}

	c.notifier.Success("Employee deleted successfully!")
	return c.Fetch(ctx)
}

// toAPI validates and coerces form input into the wire payload. Salary
// must parse as a non-negative number before any request is issued.
func (i Input) toAPI() (api.EmployeeInput, error) {
	salary, err := strconv.ParseFloat(i.Salary, 64)
	if err != nil {
		return api.EmployeeInput{}, errors.NewSalaryInvalidError(i.Salary)
	}
	if salary < 0 {
		return api.EmployeeInput{}, errors.New(errors.ErrCodeEmployeeSalaryInvalid,
			"salary must not be negative")
	}

	return api.EmployeeInput{
		EmployeeID:  i.EmployeeID,
		UserID:      i.UserID,
		Department:  i.Department,
		Position:    i.Position,
		Salary:      salary,
		PhoneNumber: i.PhoneNumber,
	}, nil
}

// mutationMessage prefers the server's message verbatim over the
// per-operation fallback
func mutationMessage(err error, fallback string) string {
	var deckErr *errors.StaffdeckError
	if stderrors.As(err, &deckErr) && deckErr.Message != "" {
		switch deckErr.Code {
		case errors.ErrCodeServerRejected, errors.ErrCodeAuthSessionExpired:
			return deckErr.Message
		}
	}
	return fallback
}
