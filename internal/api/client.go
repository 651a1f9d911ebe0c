// Package api talks to the user API of the job portal backend.
package api

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/gofrs/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader carries a per-request UUID so backend logs can be matched
// with client logs.
const RequestIDHeader = "X-Request-ID"

// maxResponseSize bounds how much of a response body is read.
const maxResponseSize = 1 << 20

// Client is a user API client. Cookies set by the API are sent back on
// subsequent requests.
type Client struct {
	endpoint   string
	http       *http.Client
	log        *logrus.Entry
	requestIDs bool
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithPageOrigin tells the client which origin the page was served from.
// Request IDs are then only sent to a same-origin endpoint, so cross-origin
// form posts stay simple CORS requests without a preflight.
func WithPageOrigin(origin string) Option {
	return func(c *Client) {
		c.requestIDs = sameOrigin(c.endpoint, origin)
	}
}

func sameOrigin(endpoint, origin string) bool {
	e, err := url.Parse(endpoint)
	if err != nil {
		return false
	}
	o, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(e.Scheme, o.Scheme) && strings.EqualFold(e.Host, o.Host)
}

// New creates a client for the user API rooted at endpoint, e.g.
// https://api.example.com/api/v1/user.
func New(endpoint string, opts ...Option) (*Client, error) {
	endpoint = strings.TrimRight(endpoint, "/")
	if endpoint == "" {
		return nil, errors.New("api: empty endpoint")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "api: creating cookie jar")
	}

	c := &Client{
		endpoint:   endpoint,
		http:       &http.Client{Jar: jar},
		log:        logrus.WithField("component", "api"),
		requestIDs: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the API root the client was created with.
func (c *Client) Endpoint() string {
	return c.endpoint
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, body)
	if err != nil {
		return nil, errors.Wrap(err, "api: building request")
	}
	req.Header.Set("Accept", "application/json")
	if c.requestIDs {
		req.Header.Set(RequestIDHeader, uuid.Must(uuid.NewV4()).String())
	}
	includeCredentials(req)
	return req, nil
}

// do sends req and interprets the {success, message} envelope. A response is
// only successful when the status is 2xx and success is true; everything else
// is reported as an *Error.
func (c *Client) do(req *http.Request) (*Response, error) {
	log := c.log.WithFields(logrus.Fields{
		"method":     req.Method,
		"path":       req.URL.Path,
		"request_id": req.Header.Get(RequestIDHeader),
	})

	resp, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Warn("request failed")
		return nil, errors.Wrap(err, "api: request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, errors.Wrap(err, "api: reading response body")
	}

	r, decodeErr := decodeResponse(body)
	log = log.WithField("status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{Status: resp.StatusCode, Err: decodeErr}
		if r != nil {
			apiErr.Message = r.Message
		}
		log.Info("request rejected")
		return r, apiErr
	}
	if decodeErr != nil {
		log.WithError(decodeErr).Warn("malformed response")
		return nil, &Error{Status: resp.StatusCode, Err: decodeErr}
	}
	if !r.Success {
		log.Info("request reported failure")
		return r, &Error{Status: resp.StatusCode, Message: r.Message}
	}

	log.Debug("request succeeded")
	return r, nil
}
