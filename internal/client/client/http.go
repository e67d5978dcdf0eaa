package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/batyok32/shipyuusell-sub001/internal/client/auth"
	"github.com/batyok32/shipyuusell-sub001/internal/client/models"
	"github.com/batyok32/shipyuusell-sub001/internal/logging"
)

const (
	// RefreshPath is the token refresh endpoint relative to the base URL.
	RefreshPath = "/auth/token/refresh/"

	// RequestIDHeader carries a per-request correlation id.
	RequestIDHeader = "X-Request-Id"

	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 8 << 20
	expiryLeeway   = 10 * time.Second
)

// TokenStore is the durable home of the session tokens. The HTTP client
// reads it before every request and writes it after a refresh.
type TokenStore interface {
	Tokens(ctx context.Context) (access, refresh string, err error)
	SaveTokens(ctx context.Context, access, refresh string) error
	ClearTokens(ctx context.Context) error
}

// HTTPClient is the JSON/REST transport used by every API module.
//
// It attaches the bearer token, refreshes it once on a 401 (or earlier when
// the token is visibly expired), and turns every non-2xx reply into an
// *APIError. Safe for concurrent use.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
	log     logging.Logger
	now     func() time.Time

	refreshGroup singleflight.Group

	hooksMu     sync.RWMutex
	onRefreshed func(access, refresh string)
	onExpired   func()
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithTimeout sets the per-request timeout on the default *http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger sets the logger for request and refresh events. The default
// discards everything.
func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// WithClock overrides time.Now, used for token expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *HTTPClient) { c.now = now }
}

// New creates a client for baseURL (e.g. http://localhost:8000/api/v1).
func New(baseURL string, tokens TokenStore, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		tokens:  tokens,
		log:     logging.Discard(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the URL every request path is appended to.
func (c *HTTPClient) BaseURL() string { return c.baseURL }

// OnTokenRefreshed registers fn to run after a successful refresh.
func (c *HTTPClient) OnTokenRefreshed(fn func(access, refresh string)) {
	c.hooksMu.Lock()
	defer c.hooksMu.Unlock()
	c.onRefreshed = fn
}

// OnSessionExpired registers fn to run when the backend rejects the refresh
// token and the stored session has been cleared.
func (c *HTTPClient) OnSessionExpired(fn func()) {
	c.hooksMu.Lock()
	defer c.hooksMu.Unlock()
	c.onExpired = fn
}

// Get is Do with GET and no body.
func (c *HTTPClient) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post is Do with POST and a JSON body.
func (c *HTTPClient) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Do sends a request to path (relative to the base URL). A non-nil body is
// sent as JSON; a 2xx JSON reply is decoded into out when out is non-nil.
//
// Errors:
//   - *APIError for any non-2xx reply (ErrUnauthorized matches 401/403);
//   - ErrSessionExpired (wrapping the refresh rejection) when a refresh fails;
//   - ErrUnavailable, ErrTimeout or ErrCanceled when no reply was received.
func (c *HTTPClient) Do(ctx context.Context, method, path string, body, out any) error {
	payload, err := encodeBody(body)
	if err != nil {
		return err
	}

	access, refresh := "", ""
	if c.tokens != nil {
		access, refresh, err = c.tokens.Tokens(ctx)
		if err != nil {
			return fmt.Errorf("load tokens: %w", err)
		}
	}

	if access != "" && refresh != "" && auth.Expired(access, c.now(), expiryLeeway) {
		c.log.Debug(ctx, "access token expired, refreshing before request", "path", path)
		if access, err = c.refresh(ctx, access); err != nil {
			return err
		}
	}

	resp, err := c.send(ctx, method, path, payload, access)
	if err != nil {
		return err
	}

	if resp.status == http.StatusUnauthorized && refresh != "" && path != RefreshPath {
		newAccess, err := c.refresh(ctx, access)
		if err != nil {
			return err
		}
		if resp, err = c.send(ctx, method, path, payload, newAccess); err != nil {
			return err
		}
	}

	return resp.decode(out)
}

type response struct {
	status int
	body   []byte
}

func (r *response) decode(out any) error {
	if r.status < 200 || r.status > 299 {
		return newAPIError(r.status, r.body)
	}
	if out == nil || len(bytes.TrimSpace(r.body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.body, out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

func newAPIError(status int, raw []byte) *APIError {
	e := &APIError{Status: status, Raw: raw}
	var obj map[string]any
	if json.Unmarshal(raw, &obj) == nil {
		e.Body = obj
	}
	return e
}

func encodeBody(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	return b, nil
}

func (c *HTTPClient) send(ctx context.Context, method, path string, payload []byte, access string) (*response, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	start := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return nil, c.transportError(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, c.transportError(ctx, err)
	}

	c.log.Debug(ctx, "request done",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", c.now().Sub(start),
	)

	return &response{status: resp.StatusCode, body: body}, nil
}

func (c *HTTPClient) transportError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) || errors.Is(err, context.Canceled) {
		return ErrCanceled
	}
	var netErr net.Error
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return ErrTimeout
	}
	return fmt.Errorf("%w: cannot connect to backend at %s: %v", ErrUnavailable, c.baseURL, err)
}

// refresh returns an access token to use in place of rejected. Callers
// share one flight: the stored tokens are read again inside it, so a caller
// whose token was already replaced by another refresh gets the stored token
// without a round trip, and the backend only ever sees the current refresh
// token.
//
// The flight outlives the caller that started it; each caller stops waiting
// when its own ctx ends.
func (c *HTTPClient) refresh(ctx context.Context, rejected string) (string, error) {
	ch := c.refreshGroup.DoChan("refresh", func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.refreshTimeout())
		defer cancel()
		return c.exchange(fctx, rejected)
	})

	select {
	case <-ctx.Done():
		return "", c.transportError(ctx, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (c *HTTPClient) refreshTimeout() time.Duration {
	if c.http.Timeout > 0 {
		return c.http.Timeout
	}
	return defaultTimeout
}

// exchange posts the stored refresh token unless the stored access token
// has moved on from rejected.
func (c *HTTPClient) exchange(ctx context.Context, rejected string) (string, error) {
	access, refreshToken, err := c.tokens.Tokens(ctx)
	if err != nil {
		return "", fmt.Errorf("load tokens: %w", err)
	}
	if access != "" && access != rejected {
		c.log.Debug(ctx, "access token already refreshed")
		return access, nil
	}
	if refreshToken == "" {
		return "", fmt.Errorf("%w: no refresh token", ErrSessionExpired)
	}

	payload, err := encodeBody(models.RefreshRequest{Refresh: refreshToken})
	if err != nil {
		return "", err
	}

	resp, err := c.send(ctx, http.MethodPost, RefreshPath, payload, "")
	if err != nil {
		return "", err
	}

	var out models.RefreshResponse
	if err := resp.decode(&out); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			c.expire(ctx)
			return "", fmt.Errorf("%w: %w", ErrSessionExpired, err)
		}
		return "", err
	}
	if out.Access == "" {
		c.expire(ctx)
		return "", fmt.Errorf("%w: refresh returned no access token", ErrSessionExpired)
	}

	newRefresh := out.Refresh
	if newRefresh == "" {
		newRefresh = refreshToken
	}
	if err := c.tokens.SaveTokens(ctx, out.Access, newRefresh); err != nil {
		return "", fmt.Errorf("save refreshed tokens: %w", err)
	}
	c.log.Info(ctx, "access token refreshed")

	c.hooksMu.RLock()
	fn := c.onRefreshed
	c.hooksMu.RUnlock()
	if fn != nil {
		fn(out.Access, newRefresh)
	}
	return out.Access, nil
}

func (c *HTTPClient) expire(ctx context.Context) {
	c.log.Warn(ctx, "refresh token rejected, clearing session")
	if err := c.tokens.ClearTokens(ctx); err != nil {
		c.log.Error(ctx, "failed to clear tokens", "error", err)
	}

	c.hooksMu.RLock()
	fn := c.onExpired
	c.hooksMu.RUnlock()
	if fn != nil {
		fn()
	}
}
