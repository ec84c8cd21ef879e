package api

import (
	"context"
	"encoding/json"
	"net/url"
)

// DashboardStats retrieves the organization-wide summary
func (c *Client) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := c.doEnvelope(ctx, "GET", "/dashboard/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// EmployeeChart retrieves the raw chart dataset. The payload shape is owned
// by the server and rendered as-is.
func (c *Client) EmployeeChart(ctx context.Context) (json.RawMessage, error) {
	var chart json.RawMessage
	if err := c.doEnvelope(ctx, "GET", "/dashboard/employees/chart", nil, nil, &chart); err != nil {
		return nil, err
	}
	return chart, nil
}

// Search runs a cross-entity dashboard search. searchType narrows the
// search to "employees" or "users"; empty searches both.
func (c *Client) Search(ctx context.Context, query, searchType string) (*SearchResults, error) {
	params := url.Values{}
	params.Set("query", query)
	if searchType != "" {
		params.Set("type", searchType)
	}

	var results SearchResults
	if err := c.doEnvelope(ctx, "GET", "/dashboard/search", params, nil, &results); err != nil {
		return nil, err
	}
	return &results, nil
}
