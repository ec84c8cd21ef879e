package cmd

import (
	"context"
	"net/http"

	"github.com/staffdeck/staffdeck/internal/api"
	"github.com/staffdeck/staffdeck/internal/authz"
	"github.com/staffdeck/staffdeck/internal/config"
	"github.com/staffdeck/staffdeck/internal/errors"
	"github.com/staffdeck/staffdeck/internal/guard"
	"github.com/staffdeck/staffdeck/internal/log"
	"github.com/staffdeck/staffdeck/internal/notify"
	"github.com/staffdeck/staffdeck/internal/session"
)

// app wires the configuration, API client and session store together for
// one command invocation
type app struct {
	cfg      config.Config
	logger   *log.Logger
	notifier notify.Notifier
	store    *session.Store
	client   *api.Client
}

// newApp assembles the application from flags, config file and environment
func newApp() (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagAPIURL != "" {
		cfg.APIURL = flagAPIURL
	}

	logger := log.DefaultLogger()
	notifier := notify.NewTerminalNotifier()

	tokens := session.NewFileTokenStore(cfg.CredentialsFile)
	store := session.NewStore(tokens,
		session.WithNotifier(notifier),
		session.WithLogger(logger),
	)

	client := api.New(cfg.APIURL,
		api.WithHTTPClient(&http.Client{Timeout: cfg.Timeout()}),
		api.WithTokenSource(store.Token),
		api.WithNotifier(notifier),
		api.WithLogger(logger),
		api.WithUnauthorizedHook(store.HandleUnauthorized),
	)
	store.Bind(client)

	return &app{
		cfg:      cfg,
		logger:   logger,
		notifier: notifier,
		store:    store,
		client:   client,
	}, nil
}

// requireView restores the session and gates the command's view. Protected
// views need an authenticated session; an anonymous caller is told to log
// in instead of being shown a half-working command.
func (a *app) requireView(ctx context.Context, view guard.View) error {
	a.store.Restore(ctx)

	switch guard.Resolve(a.store.State(), view) {
	case guard.Allow:
		return nil
	case guard.RedirectLogin:
		return errors.NewNotLoggedInError()
	case guard.RedirectHome:
		// Already signed in; the login view has nothing to offer.
		return errors.New(errors.ErrCodeAuthInvalidCredentials,
			"You are already logged in").
			WithSuggestion("Run 'staffdeck auth logout' first to switch accounts")
	default:
		return errors.New(errors.ErrCodeSessionRestoreFailed,
			"session is still resolving")
	}
}

// requireCapability gates a command on the signed-in user's role
func (a *app) requireCapability(cap authz.Capability, action string) error {
	if !authz.CanUser(a.store.CurrentUser(), cap) {
		return errors.NewForbiddenError(action)
	}
	return nil
}
