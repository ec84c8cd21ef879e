package api

import (
	"encoding/json"
	"time"
)

// Role is a user's platform role
type Role string

// Platform roles
const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// User represents a platform user account
type User struct {
	ID        string    `json:"_id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// FullName returns the user's display name
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// EmployeeStatus is an employee record's lifecycle state
type EmployeeStatus string

// Employee statuses
const (
	StatusActive     EmployeeStatus = "active"
	StatusInactive   EmployeeStatus = "inactive"
	StatusTerminated EmployeeStatus = "terminated"
)

// Employee represents an employee record with its denormalized user summary
type Employee struct {
	ID          string         `json:"_id"`
	EmployeeID  string         `json:"employeeId"`
	User        *User          `json:"user"`
	Department  string         `json:"department"`
	Position    string         `json:"position"`
	Salary      float64        `json:"salary"`
	PhoneNumber string         `json:"phoneNumber"`
	Status      EmployeeStatus `json:"status"`
}

// EmployeeInput is the payload for creating or updating an employee record.
// Salary is numeric on the wire; callers must coerce string input before
// building one.
type EmployeeInput struct {
	EmployeeID  string  `json:"employeeId"`
	UserID      string  `json:"userId"`
	Department  string  `json:"department"`
	Position    string  `json:"position"`
	Salary      float64 `json:"salary"`
	PhoneNumber string  `json:"phoneNumber"`
}

// ListQuery drives a paginated employee list request
type ListQuery struct {
	Page       int
	Limit      int
	Search     string
	Department string
}

// EmployeeList is the result of a list request
type EmployeeList struct {
	Items      []Employee
	TotalPages int
}

// ProfileUpdate is the payload for updating the current user's profile
type ProfileUpdate struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// DepartmentStat is one department's aggregate numbers
type DepartmentStat struct {
	Department string  `json:"_id"`
	Count      int     `json:"count"`
	AvgSalary  float64 `json:"avgSalary"`
}

// DashboardStats is the organization-wide summary
type DashboardStats struct {
	TotalEmployees  int              `json:"totalEmployees"`
	TotalUsers      int              `json:"totalUsers"`
	DepartmentStats []DepartmentStat `json:"departmentStats"`
	RecentHires     []Employee       `json:"recentHires"`
}

// SearchResults holds cross-entity dashboard search matches
type SearchResults struct {
	Employees []Employee `json:"employees"`
	Users     []User     `json:"users"`
}

// envelope is the server's standard response wrapper
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// listEnvelope is the employee list response wrapper
type listEnvelope struct {
	Success    bool       `json:"success"`
	Message    string     `json:"message"`
	Data       []Employee `json:"data"`
	Pagination struct {
		Pages int `json:"pages"`
	} `json:"pagination"`
}

// loginData is the payload inside a successful login envelope
type loginData struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
