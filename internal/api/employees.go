package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/staffdeck/staffdeck/internal/errors"
)

// ListEmployees retrieves a page of employee records matching the query.
// An empty department means unconstrained and is omitted from the request.
func (c *Client) ListEmployees(ctx context.Context, q ListQuery) (*EmployeeList, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(q.Page))
	query.Set("limit", strconv.Itoa(q.Limit))
	if q.Search != "" {
		query.Set("search", q.Search)
	}
	if q.Department != "" {
		query.Set("department", q.Department)
	}

	data, err := c.doRaw(ctx, "GET", "/employees", query, nil)
	if err != nil {
		return nil, err
	}

	var env listEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		apiErr := errors.Wrap(errors.ErrCodeMalformedResponse, "failed to decode employee list", err)
		c.notifier.Error(genericErrorMessage)
		return nil, apiErr
	}

	pages := env.Pagination.Pages
	if pages < 1 {
		pages = 1
	}

	return &EmployeeList{Items: env.Data, TotalPages: pages}, nil
}

// GetEmployee retrieves a single employee record by ID
func (c *Client) GetEmployee(ctx context.Context, id string) (*Employee, error) {
	var emp Employee
	if err := c.doEnvelope(ctx, "GET", "/employees/"+id, nil, nil, &emp); err != nil {
		return nil, err
	}
	return &emp, nil
}

// CreateEmployee creates a new employee record
func (c *Client) CreateEmployee(ctx context.Context, input EmployeeInput) (*Employee, error) {
	var emp Employee
	if err := c.doEnvelope(ctx, "POST", "/employees", nil, input, &emp); err != nil {
		return nil, err
	}
	return &emp, nil
}

// UpdateEmployee replaces an employee record's fields
func (c *Client) UpdateEmployee(ctx context.Context, id string, input EmployeeInput) (*Employee, error) {
	var emp Employee
	if err := c.doEnvelope(ctx, "PUT", "/employees/"+id, nil, input, &emp); err != nil {
		return nil, err
	}
	return &emp, nil
}

// DeleteEmployee removes an employee record
func (c *Client) DeleteEmployee(ctx context.Context, id string) error {
	return c.doEnvelope(ctx, "DELETE", "/employees/"+id, nil, nil, nil)
}

// DepartmentStats retrieves per-department aggregates
func (c *Client) DepartmentStats(ctx context.Context) ([]DepartmentStat, error) {
	var stats []DepartmentStat
	if err := c.doEnvelope(ctx, "GET", "/employees/departments/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// String renders a one-line summary of an employee record
func (e Employee) String() string {
	name := "(unlinked)"
	if e.User != nil {
		name = e.User.FullName()
	}
	return fmt.Sprintf("%s %s — %s, %s (%s)", e.EmployeeID, name, e.Department, e.Position, e.Status)
}
