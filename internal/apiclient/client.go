// Package apiclient talks to the airbooking REST API on behalf of the storefront.
// Every call is a single HTTP attempt; the stored credential, when present, rides
// along as a bearer token.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Domenick1991/airbooking-storefront/internal/session"
	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 4 << 20

type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

type Client struct {
	baseURL string
	http    *http.Client
	session session.Store
	logger  logrus.FieldLogger

	Auth     *AuthService
	Flights  *FlightService
	Bookings *BookingService
	Account  *AccountService
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		hc := *c.http
		hc.Timeout = timeout
		c.http = &hc
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New configures a client for baseURL. The base URL is fixed for the lifetime of
// the client.
func New(baseURL string, store session.Store, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host are required", baseURL)
	}
	if store == nil {
		return nil, errors.New("session store is required")
	}

	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		session: store,
		logger:  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Auth = &AuthService{client: c}
	c.Flights = &FlightService{client: c}
	c.Bookings = &BookingService{client: c}
	c.Account = &AccountService{client: c}
	return c, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends req and returns the raw body of a 2xx response. Any other outcome is
// an *Error.
func (c *Client) Do(ctx context.Context, req Request) ([]byte, error) {
	_, body, err := c.do(ctx, req)
	return body, err
}

func (c *Client) do(ctx context.Context, req Request) (int, []byte, error) {
	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return 0, nil, err
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log(req).WithError(err).Warn("booking api unreachable")
		return 0, nil, &Error{Message: NetworkErrorMessage, Err: errors.Join(ErrNetwork, err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		c.log(req).WithError(err).Warn("read booking api response")
		return 0, nil, &Error{Message: NetworkErrorMessage, Err: errors.Join(ErrNetwork, fmt.Errorf("read response body: %w", err))}
	}
	if len(body) > maxBodyBytes {
		c.log(req).WithField("status", resp.StatusCode).Warn("booking api response too large")
		return resp.StatusCode, nil, &Error{
			StatusCode: resp.StatusCode,
			Message:    ResponseTooLargeMessage,
			Err:        fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, maxBodyBytes),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newStatusError(resp.StatusCode, body)
		c.log(req).WithField("status", resp.StatusCode).Info(apiErr.Message)
		return resp.StatusCode, nil, apiErr
	}
	return resp.StatusCode, body, nil
}

func (c *Client) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	target := c.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, &Error{Message: requestErrorMessage, Err: fmt.Errorf("encode request body: %w", err)}
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, &Error{Message: requestErrorMessage, Err: fmt.Errorf("build request: %w", err)}
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	token, err := c.session.Get(ctx)
	if err != nil {
		return nil, &Error{Message: credentialErrorMessage, Err: err}
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	return httpReq, nil
}

// call sends req and decodes the body into T after checking it against the
// endpoint's declared shape.
func call[T any](ctx context.Context, c *Client, req Request, s *shape) (T, error) {
	var out T
	status, body, err := c.do(ctx, req)
	if err != nil {
		return out, err
	}
	if err := s.decode(body, &out); err != nil {
		c.log(req).WithError(err).Error("booking api response rejected")
		return out, &Error{StatusCode: status, Message: UnexpectedResponseMessage, Err: err}
	}
	return out, nil
}

func (c *Client) storeCredential(ctx context.Context, token string) error {
	if err := c.session.Set(ctx, token); err != nil {
		return &Error{Message: credentialErrorMessage, Err: err}
	}
	return nil
}

func (c *Client) log(req Request) logrus.FieldLogger {
	return c.logger.WithFields(logrus.Fields{"method": req.Method, "path": req.Path})
}
