// Package session owns the authenticated-user lifecycle: restoring a
// persisted token at startup, login and logout, profile updates, and the
// forced logout that follows a 401 from any API call. It is the single
// source of truth for the current bearer token.
package session

import (
	"context"
	stderrors "errors"
	"sync"

	"github.com/staffdeck/staffdeck/internal/api"
	"github.com/staffdeck/staffdeck/internal/errors"
	"github.com/staffdeck/staffdeck/internal/log"
	"github.com/staffdeck/staffdeck/internal/notify"
)

// AuthAPI is the slice of the platform API the session store depends on
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
	Me(ctx context.Context) (*api.User, error)
	UpdateProfile(ctx context.Context, update api.ProfileUpdate) (*api.User, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
}

// Result is the outcome of a session operation. Message is set on failure
// and is suitable for direct display.
type Result struct {
	Success bool
	Message string
}

// Listener observes session state changes. Listeners are invoked
// synchronously on every transition.
type Listener func(State)

// Store is the session state machine
type Store struct {
	mu       sync.Mutex
	state    State
	user     *api.User
	token    string
	tokens   TokenStore
	client   AuthAPI
	notifier notify.Notifier
	logger   *log.Logger

	listeners []Listener

	// onForcedLogout is the navigate-to-login capability, fired once when
	// a 401 invalidates the session
	onForcedLogout func()
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithNotifier sets the user-facing notifier
func WithNotifier(n notify.Notifier) StoreOption {
	return func(s *Store) { s.notifier = n }
}

// WithLogger sets the logger
func WithLogger(l *log.Logger) StoreOption {
	return func(s *Store) { s.logger = l }
}

// WithForcedLogoutHandler sets the navigation callback fired when a 401
// forces the session out
func WithForcedLogoutHandler(f func()) StoreOption {
	return func(s *Store) { s.onForcedLogout = f }
}

// NewStore creates a session store in the Initializing state
func NewStore(tokens TokenStore, opts ...StoreOption) *Store {
	s := &Store{
		state:    StateInitializing,
		tokens:   tokens,
		notifier: notify.Noop{},
		logger:   log.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bind attaches the API client. The client must in turn read its bearer
// token through this store's Token method so the two can never disagree.
func (s *Store) Bind(client AuthAPI) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.client = client
}

// Token returns the current bearer token, empty when logged out. This is
// the accessor handed to the API client; the token value is never
// duplicated elsewhere.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// State returns the current session state
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CurrentUser returns the authenticated user's profile, or nil
func (s *Store) CurrentUser() *api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated reports whether a user is logged in
func (s *Store) IsAuthenticated() bool {
	return s.State() == StateAuthenticated
}

// Subscribe registers a state-change listener and returns an unsubscribe
// function
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
	idx := len(s.listeners) - 1
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.listeners[idx] = nil
	}
}

// setState transitions the state machine and notifies listeners. user must
// be non-nil iff next is StateAuthenticated.
func (s *Store) setState(next State, user *api.User) {
	s.mu.Lock()
	if next == StateAuthenticated && user == nil {
		// Unrepresentable by construction; guard against programming errors.
		next = StateAnonymous
	}
	if next != StateAuthenticated {
		user = nil
	}
	changed := s.state != next || s.user != user
	s.state = next
	s.user = user
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		if l != nil {
			listeners = append(listeners, l)
		}
	}
	s.mu.Unlock()

	if !changed {
		return
	}
	for _, l := range listeners {
		l(next)
	}
}

// setToken updates the in-memory token under the lock
func (s *Store) setToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// Restore resolves the Initializing state from the persisted token. With no
// token it settles Anonymous; with one it asks the server who the token
// belongs to, and on any failure discards the token.
func (s *Store) Restore(ctx context.Context) {
	token, err := s.tokens.Load()
	if err != nil || token == "" {
		if err != nil {
			s.logger.WithError(err).Warn("failed to load persisted token")
		}
		s.setState(StateAnonymous, nil)
		return
	}

	s.setToken(token)

	user, err := s.client.Me(ctx)
	if err != nil {
		s.logger.WithError(err).Debug("persisted token rejected")
		s.discardToken()
		s.setState(StateAnonymous, nil)
		return
	}

	s.setState(StateAuthenticated, user)
}

// Login authenticates with email and password. On success the token is
// persisted before the session becomes Authenticated; on failure nothing
// persisted changes. Login never panics outward: every failure is a Result.
func (s *Store) Login(ctx context.Context, email, password string) Result {
	s.mu.Lock()
	switch s.state {
	case StateAuthenticated:
		s.mu.Unlock()
		return Result{Success: false, Message: "already logged in"}
	case StateTransitioning:
		s.mu.Unlock()
		return Result{Success: false, Message: "a login attempt is already in progress"}
	}
	s.mu.Unlock()

	s.setState(StateTransitioning, nil)

	res, err := s.client.Login(ctx, email, password)
	if err != nil {
		s.setState(StateAnonymous, nil)
		return Result{Success: false, Message: failureMessage(err, "Login failed. Please try again.")}
	}

	// Persist before exposing: the attached token must always equal the
	// persisted one.
	if err := s.tokens.Save(res.Token); err != nil {
		s.logger.WithError(err).Error("failed to persist token")
		s.setState(StateAnonymous, nil)
		return Result{Success: false, Message: "Login succeeded but saving credentials failed."}
	}

	s.setToken(res.Token)
	user := res.User
	s.setState(StateAuthenticated, &user)
	s.notifier.Success("Login successful!")
	return Result{Success: true}
}

// Logout discards the session. It is idempotent, synchronous, and never
// contacts the server.
func (s *Store) Logout() {
	if err := s.tokens.Clear(); err != nil {
		s.logger.WithError(err).Warn("failed to clear persisted token")
	}
	s.setToken("")
	s.setState(StateAnonymous, nil)
	s.notifier.Success("Logged out successfully")
}

// UpdateProfile replaces the current profile with the server's response
func (s *Store) UpdateProfile(ctx context.Context, update api.ProfileUpdate) Result {
	if !s.IsAuthenticated() {
		return Result{Success: false, Message: "not logged in"}
	}

	user, err := s.client.UpdateProfile(ctx, update)
	if err != nil {
		return Result{Success: false, Message: failureMessage(err, "Profile update failed. Please try again.")}
	}

	s.setState(StateAuthenticated, user)
	s.notifier.Success("Profile updated successfully!")
	return Result{Success: true}
}

// ChangePassword is a stateless pass-through; it never alters session state
func (s *Store) ChangePassword(ctx context.Context, currentPassword, newPassword string) Result {
	if !s.IsAuthenticated() {
		return Result{Success: false, Message: "not logged in"}
	}

	if err := s.client.ChangePassword(ctx, currentPassword, newPassword); err != nil {
		return Result{Success: false, Message: failureMessage(err, "Password change failed. Please try again.")}
	}

	s.notifier.Success("Password changed successfully!")
	return Result{Success: true}
}

// HandleUnauthorized is the 401 hook. Whatever state the session is in, it
// discards the token and settles Anonymous. Concurrent 401s collapse to a
// single forced logout: only the first caller notifies and navigates.
func (s *Store) HandleUnauthorized() {
	s.mu.Lock()
	if s.token == "" {
		// Already handled (or no session to invalidate): concurrent 401s
		// collapse here, and a rejected login attempt carries no token to
		// discard.
		s.mu.Unlock()
		return
	}
	s.token = ""
	onForcedLogout := s.onForcedLogout
	s.mu.Unlock()

	if err := s.tokens.Clear(); err != nil {
		s.logger.WithError(err).Warn("failed to clear persisted token")
	}
	s.setState(StateAnonymous, nil)
	s.notifier.Error("Your session has expired. Please log in again.")
	if onForcedLogout != nil {
		onForcedLogout()
	}
}

// discardToken clears both the in-memory and persisted token
func (s *Store) discardToken() {
	s.setToken("")
	if err := s.tokens.Clear(); err != nil {
		s.logger.WithError(err).Warn("failed to clear persisted token")
	}
}

// failureMessage prefers the server's structured message over a generic
// per-operation fallback
func failureMessage(err error, fallback string) string {
	var deckErr *errors.StaffdeckError
	if stderrors.As(err, &deckErr) && deckErr.Message != "" {
		switch deckErr.Code {
		case errors.ErrCodeServerRejected, errors.ErrCodeAuthSessionExpired, errors.ErrCodeAuthInvalidCredentials:
			return deckErr.Message
		}
	}
	return fallback
}
