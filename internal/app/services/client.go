package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/vcrobe/entryform/console"
)

// ClientOptions configures the HTTP Client.
type ClientOptions struct {
	BaseURL    string       // e.g. "http://localhost:8080"; required
	HTTPClient *http.Client // defaults to http.DefaultClient
	Attempts   uint         // location fetch attempts; defaults to 3
	RetryDelay time.Duration
}

// Client talks to the dev server's /api endpoints.
type Client struct {
	base       *url.URL
	http       *http.Client
	attempts   uint
	retryDelay time.Duration
}

var (
	_ LocationProvider = (*Client)(nil)
	_ NameValidator    = (*Client)(nil)
)

// NewClient validates opts and builds a Client.
func NewClient(opts ClientOptions) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", opts.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", opts.BaseURL)
	}

	c := &Client{
		base:       base,
		http:       opts.HTTPClient,
		attempts:   opts.Attempts,
		retryDelay: opts.RetryDelay,
	}
	if c.http == nil {
		c.http = http.DefaultClient
	}
	if c.attempts == 0 {
		c.attempts = 3
	}
	if c.retryDelay == 0 {
		c.retryDelay = 500 * time.Millisecond
	}
	return c, nil
}

// Locations fetches the location list, retrying transient failures.
func (c *Client) Locations(ctx context.Context) ([]string, error) {
	var body LocationsResponse
	err := retry.Do(
		func() error {
			return c.getJSON(ctx, "/api/locations", nil, &body)
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(retryable),
		retry.OnRetry(func(n uint, err error) {
			console.Warn(fmt.Sprintf("locations attempt %d/%d failed: %v", n+1, c.attempts, err))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("fetch locations: %w", err)
	}
	return body.Locations, nil
}

// IsNameValid asks the server whether name is available. Checks are
// superseded by the next keystroke, so they are not retried.
func (c *Client) IsNameValid(ctx context.Context, name string) (bool, error) {
	var body NameCheckResponse
	if err := c.getJSON(ctx, "/api/names/valid", url.Values{"name": {name}}, &body); err != nil {
		return false, fmt.Errorf("check name %q: %w", name, err)
	}
	return body.Valid, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.base.JoinPath(path)
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &StatusError{Path: path, Code: resp.StatusCode, Message: apiErr.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %w", ErrUnavailable, path, err)
	}
	return nil
}

// StatusError is a non-200 API response. It matches ErrUnavailable under errors.Is.
type StatusError struct {
	Path    string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: status %d: %s", e.Path, e.Code, e.Message)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnavailable
}

// retryable reports whether a failed location fetch is worth another attempt:
// transport failures and 5xx responses are, cancellation and 4xx are not.
func retryable(err error) bool {
	if IsCanceled(err) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code >= 500
	}
	return errors.Is(err, ErrUnavailable)
}

// IsCanceled reports whether err stems from context cancellation or deadline.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
