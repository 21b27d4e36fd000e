package upstream

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

	"github.com/nearbuy-market/storefront-gateway/pkg/config"
	pkgerrors "github.com/nearbuy-market/storefront-gateway/pkg/errors"
	"github.com/nearbuy-market/storefront-gateway/pkg/logger"
)

const (
	tokenScheme                 = "Token"
	responseBodyReadLimit int64 = 2048
	defaultTimeout              = 10 * time.Second
)

var errBaseURLRequired = errors.New("upstream base url is required")

// Client is the single HTTP boundary to the marketplace backend. All
// storefront reads and writes go through it; there is no retry, backoff or
// circuit breaking, failures surface as typed errors to the caller.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logg       *logger.Logger
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured backend base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// New builds the marketplace backend client.
func New(cfg config.UpstreamConfig, logg *logger.Logger, opts ...Option) (*Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := &Client{
		baseURL:    strings.TrimSpace(cfg.BaseURL),
		httpClient: &http.Client{Timeout: timeout},
		logg:       logg,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.baseURL == "" {
		return nil, errBaseURLRequired
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: timeout}
	}

	return client, nil
}

// StatusError carries a non-2xx upstream response for error classification.
type StatusError struct {
	Status int
	Body   string
	Method string
	Path   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream %s %s returned %d: %s", e.Method, e.Path, e.Status, e.Body)
}

// UpstreamStatus reports the HTTP status of the failed request.
func (e *StatusError) UpstreamStatus() int { return e.Status }

// UpstreamBody reports the bounded response body of the failed request.
func (e *StatusError) UpstreamBody() string { return e.Body }

// Ping verifies the backend answers at all; used by readiness checks.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/categories/", "", nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, payload, out any) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "upstream client not configured")
	}

	endpoint := c.buildURL(path)
	if len(query) > 0 {
		endpoint = endpoint + "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal upstream request")
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build upstream request")
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	setAuthHeader(req, token)

	return c.execute(req, method, path, out)
}

func (c *Client) execute(req *http.Request, method, path string, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "execute upstream request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		statusErr := &StatusError{
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(msg)),
			Method: method,
			Path:   path,
		}
		return pkgerrors.Wrap(codeForStatus(resp.StatusCode), statusErr, "upstream request failed")
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "decode upstream response")
	}
	return nil
}

func setAuthHeader(req *http.Request, token string) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return
	}
	req.Header.Set("Authorization", tokenScheme+" "+trimmed)
}

func codeForStatus(status int) pkgerrors.Code {
	switch status {
	case http.StatusBadRequest:
		return pkgerrors.CodeValidation
	case http.StatusUnauthorized:
		return pkgerrors.CodeUnauthorized
	case http.StatusForbidden:
		return pkgerrors.CodeForbidden
	case http.StatusNotFound:
		return pkgerrors.CodeNotFound
	case http.StatusConflict:
		return pkgerrors.CodeConflict
	case http.StatusTooManyRequests:
		return pkgerrors.CodeRateLimit
	default:
		return pkgerrors.CodeUpstream
	}
}

func (c *Client) buildURL(path string) string {
	trimmed := strings.TrimRight(c.baseURL, "/")
	path = strings.TrimLeft(path, "/")
	return fmt.Sprintf("%s/%s", trimmed, path)
}
