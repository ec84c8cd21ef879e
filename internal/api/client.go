// Package api wraps the HR platform REST API. It attaches the bearer token
// to every request, translates failures into user-facing notifications, and
// signals session invalidation when any call comes back 401.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/staffdeck/staffdeck/internal/config"
	"github.com/staffdeck/staffdeck/internal/errors"
	"github.com/staffdeck/staffdeck/internal/log"
	"github.com/staffdeck/staffdeck/internal/notify"
)

// genericErrorMessage is the fallback when neither the server nor the
// transport provides anything better.
const genericErrorMessage = "An unexpected error occurred"

// TokenSource returns the current bearer token, or empty when logged out.
// The session store owns the token; the client must read it fresh on every
// request rather than caching a copy.
type TokenSource func() string

// UnauthorizedHook is invoked when any request comes back HTTP 401. It is
// called at most once per originating request; the hook itself is expected
// to collapse concurrent invocations.
type UnauthorizedHook func()

// Client is the HR platform API client
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	notifier       notify.Notifier
	logger         *log.Logger
	onUnauthorized UnauthorizedHook
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenSource sets the bearer token accessor
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithNotifier sets the user-facing notifier
func WithNotifier(n notify.Notifier) Option {
	return func(c *Client) { c.notifier = n }
}

// WithLogger sets the logger
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithUnauthorizedHook registers the 401 handler
func WithUnauthorizedHook(h UnauthorizedHook) Option {
	return func(c *Client) { c.onUnauthorized = h }
}

// New creates a new API client for the given base URL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: config.DefaultTimeout},
		tokens:     func() string { return "" },
		notifier:   notify.Noop{},
		logger:     log.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// doRaw performs a request and returns the raw response body for 2xx
// statuses. Transport failures, 401s, and error statuses are translated
// into coded errors here; every failing call surfaces at most one
// notification.
func (c *Client) doRaw(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeTransport, "failed to encode request body", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTransport, "failed to create request", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := c.tokens(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiErr := classifyTransport(err)
		c.logger.WithError(apiErr).Debug("request failed", "method", method, "path", path)
		c.notifier.Error(apiErr.Message)
		return nil, apiErr
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		apiErr := errors.Wrap(errors.ErrCodeTransport, "failed to read response", err)
		c.notifier.Error(apiErr.Message)
		return nil, apiErr
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// The hook fires once for this request. No request is ever retried,
		// so a 401 on a later call is a new originating request.
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		msg := serverMessage(data)
		if msg == "" {
			msg = "session expired"
		}
		return nil, errors.New(errors.ErrCodeAuthSessionExpired, msg)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := serverMessage(data)
		if msg == "" {
			msg = genericErrorMessage
		}
		c.logger.Debug("request rejected", "method", method, "path", path, "status", resp.StatusCode)
		c.notifier.Error(msg)
		return nil, errors.New(errors.ErrCodeServerRejected, msg)
	}

	return data, nil
}

// doEnvelope performs a request and unmarshals the envelope's data payload
// into target (which may be nil for operations without a result).
func (c *Client) doEnvelope(ctx context.Context, method, path string, query url.Values, body, target any) error {
	data, err := c.doRaw(ctx, method, path, query, body)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		apiErr := errors.Wrap(errors.ErrCodeMalformedResponse, "failed to decode response", err)
		c.notifier.Error(genericErrorMessage)
		return apiErr
	}

	// Some endpoints report soft failure inside a 2xx envelope.
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = genericErrorMessage
		}
		c.notifier.Error(msg)
		return errors.New(errors.ErrCodeServerRejected, msg)
	}

	if target != nil {
		if err := json.Unmarshal(env.Data, target); err != nil {
			apiErr := errors.Wrap(errors.ErrCodeMalformedResponse, "failed to decode response data", err)
			c.notifier.Error(genericErrorMessage)
			return apiErr
		}
	}

	return nil
}

// classifyTransport maps a transport-level failure to a coded error
func classifyTransport(err error) *errors.StaffdeckError {
	var urlErr *url.Error
	if stderrors.As(err, &urlErr) && urlErr.Timeout() {
		return errors.NewTimeoutError(err)
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewTimeoutError(err)
	}
	return errors.Wrap(errors.ErrCodeTransport, "request failed", err)
}

// serverMessage extracts the structured message from an error body, if any
func serverMessage(data []byte) string {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return ""
	}
	return env.Message
}
