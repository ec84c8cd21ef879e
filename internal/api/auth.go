package api

import (
	"context"
)

// Credentials is a login request payload
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is a new-account request payload
type Registration struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// LoginResult carries the authenticated user and the issued token
type LoginResult struct {
	User  User
	Token string
}

// Login authenticates with email and password
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var data loginData
	err := c.doEnvelope(ctx, "POST", "/auth/login", nil, Credentials{Email: email, Password: password}, &data)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: data.User, Token: data.Token}, nil
}

// Register creates a new user account
func (c *Client) Register(ctx context.Context, reg Registration) (*User, error) {
	var user User
	if err := c.doEnvelope(ctx, "POST", "/auth/register", nil, reg, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Me retrieves the currently authenticated user's profile
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.doEnvelope(ctx, "GET", "/auth/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile replaces the current user's profile fields and returns the
// server's view of the profile
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error) {
	var user User
	if err := c.doEnvelope(ctx, "PUT", "/auth/profile", nil, update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword changes the current user's password
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	payload := map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}
	return c.doEnvelope(ctx, "POST", "/auth/change-password", nil, payload, nil)
}

// AvailableUsers lists user accounts not yet linked to an employee record
func (c *Client) AvailableUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.doEnvelope(ctx, "GET", "/auth/users/available", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}
