package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/dmitrijs2005/cpguide/internal/common"
	"github.com/dmitrijs2005/cpguide/internal/logging"
	"github.com/google/uuid"
)

const (
	loginPath    = "/user/login"
	signupPath   = "/user/signup"
	progressPath = "/progress"
)

// HTTPClient is the JSON/HTTP implementation of Client. It caches the bearer
// token in memory and attaches it to every request; the cache is kept in
// sync by the credential store through SetBearer and ClearBearer.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
	log     logging.Logger

	mu     sync.RWMutex
	bearer string
}

// Option configures an HTTPClient at construction.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithTimeout sets the per-request timeout; 0 keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http.Timeout = d }
}

// WithLogger sets the logger used for per-request debug output.
func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// WithTokenStore sets the store the bearer token is read from once at
// construction and cleared on 401.
func WithTokenStore(ts TokenStore) Option {
	return func(c *HTTPClient) { c.tokens = ts }
}

// NewHTTPClient returns a client for the backend at baseURL. When a token
// store is configured, the stored token is read once and becomes the
// initial bearer.
func NewHTTPClient(ctx context.Context, baseURL string, opts ...Option) (*HTTPClient, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	c := &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{},
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.tokens != nil {
		token, ok, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("read token: %w", err)
		}
		if ok {
			c.bearer = token
		}
	}
	return c, nil
}

// SetBearer replaces the cached bearer token.
func (c *HTTPClient) SetBearer(token string) {
	c.mu.Lock()
	c.bearer = token
	c.mu.Unlock()
}

// ClearBearer drops the cached bearer token; later requests go unauthenticated.
func (c *HTTPClient) ClearBearer() {
	c.SetBearer("")
}

// Bearer returns the cached token, "" when unauthenticated.
func (c *HTTPClient) Bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bearer
}

// Login exchanges credentials for a token. Transport and status failures are
// returned as *AuthError; a 2xx body without token or user is malformed.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var resp LoginResponse
	err := c.do(ctx, http.MethodPost, loginPath, loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		var (
			netErr    *NetworkError
			statusErr *StatusError
		)
		switch {
		case errors.As(err, &netErr):
			return nil, &AuthError{Err: err}
		case errors.As(err, &statusErr):
			return nil, &AuthError{Status: statusErr.Status, Payload: statusErr.Payload, Err: err}
		default:
			return nil, err
		}
	}

	op := "POST " + loginPath
	if resp.Token == "" {
		return nil, &MalformedResponseError{Op: op, Reason: "missing token"}
	}
	if resp.User == nil {
		return nil, &MalformedResponseError{Op: op, Reason: "missing user"}
	}
	return &resp, nil
}

// Signup registers a new account. The success body is returned as decoded
// JSON of any shape (object, array, string, ...), nil when the body is empty.
func (c *HTTPClient) Signup(ctx context.Context, req SignupRequest) (any, error) {
	var resp any
	err := c.do(ctx, http.MethodPost, signupPath, req, &resp)
	if err != nil {
		var (
			netErr    *NetworkError
			statusErr *StatusError
		)
		switch {
		case errors.As(err, &netErr):
			return nil, &SignupError{Err: err}
		case errors.As(err, &statusErr):
			return nil, &SignupError{
				Status:  statusErr.Status,
				Payload: statusErr.Payload,
				Body:    json.RawMessage(statusErr.Body),
				Err:     err,
			}
		default:
			return nil, err
		}
	}
	return resp, nil
}

// Progress fetches the user's progress; a body without userProgress is
// malformed.
func (c *HTTPClient) Progress(ctx context.Context) (*ProgressResponse, error) {
	var resp ProgressResponse
	if err := c.do(ctx, http.MethodGet, progressPath, nil, &resp); err != nil {
		return nil, err
	}
	if resp.UserProgress == nil {
		return nil, &MalformedResponseError{Op: "GET " + progressPath, Reason: "missing userProgress"}
	}
	return &resp, nil
}

// do sends one JSON request and decodes a 2xx body into out. An empty 2xx
// body leaves out untouched.
func (c *HTTPClient) do(ctx context.Context, method, path string, in any, out any) error {
	op := method + " " + path

	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return fmt.Errorf("%s: build url: %w", op, err)
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(common.RequestIDHeader, requestID)
	if bearer := c.Bearer(); bearer != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+bearer)
	}

	log := c.log.With("request_id", requestID, "op", op)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug(ctx, "request failed", "error", err)
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	log.Debug(ctx, "response received", "status", resp.StatusCode)

	if resp.StatusCode == http.StatusUnauthorized {
		c.dropToken(ctx, log)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Op: op, Status: resp.StatusCode, Payload: decodePayload(raw), Body: raw}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &MalformedResponseError{Op: op, Reason: "decode body", Err: err}
	}
	return nil
}

// dropToken clears the stored token after a 401. The user is not redirected.
func (c *HTTPClient) dropToken(ctx context.Context, log logging.Logger) {
	c.ClearBearer()
	if c.tokens == nil {
		return
	}
	if err := c.tokens.ClearToken(ctx); err != nil {
		log.Warn(ctx, "failed to clear token after 401", "error", err)
	}
}
