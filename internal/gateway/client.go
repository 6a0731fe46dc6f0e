package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	apperrors "eventhub/internal/errors"
	"eventhub/internal/metrics"
	"eventhub/internal/models"
)

// TokenSource supplies the bearer token of the current session, if any.
// An empty string means the request goes out anonymous.
type TokenSource interface {
	Token(ctx context.Context) string
}

// Client is a stateless typed client for the event service REST API.
// It performs no retries and no caching; both are the caller's concern.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// New creates a gateway client. tokens may be nil for anonymous-only use.
func New(cfg Config, tokens TokenSource) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		tokens: tokens,
	}
}

// BaseURL returns the configured API base, used to resolve relative image references.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Error carries the failed operation, the HTTP status (0 for transport
// failures) and a taxonomy sentinel reachable through errors.Is.
type Error struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: status %d: %v", e.Op, e.Status, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// statusErr maps an HTTP status to the shared error taxonomy.
func statusErr(status int) error {
	switch {
	case status == http.StatusBadRequest:
		return apperrors.ErrValidation
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return apperrors.ErrUnauthorized
	case status == http.StatusNotFound:
		return apperrors.ErrNotFound
	case status == http.StatusConflict:
		return apperrors.ErrConflict
	case status >= 500:
		return apperrors.ErrServer
	default:
		return apperrors.ErrServer
	}
}

// errorBody is the message envelope the backend uses for failures.
type errorBody struct {
	Message string `json:"message"`
}

// do performs one request. body and contentType describe the payload (nil
// body for bodyless methods); out, when non-nil, receives the decoded JSON
// response.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return &Error{Op: op, Err: fmt.Errorf("build request: %w", err)}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveGatewayRequest(op, 0, time.Since(start))
		return &Error{Op: op, Err: fmt.Errorf("%v: %w", err, apperrors.ErrNetwork)}
	}
	defer resp.Body.Close()
	metrics.ObserveGatewayRequest(op, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		msg := ""
		var envelope errorBody
		if json.Unmarshal(raw, &envelope) == nil && envelope.Message != "" {
			msg = envelope.Message
		}
		return &Error{Op: op, Status: resp.StatusCode, Message: msg, Err: statusErr(resp.StatusCode)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &Error{Op: op, Err: fmt.Errorf("decode response: %w", err)}
		}
	}

	return nil
}

// getJSON performs a GET decoding the response into out.
func (c *Client) getJSON(ctx context.Context, op, path string, query url.Values, out any) error {
	return c.do(ctx, op, http.MethodGet, path, query, nil, "", out)
}

// postJSON performs a POST with a JSON payload.
func (c *Client) postJSON(ctx context.Context, op, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return &Error{Op: op, Err: fmt.Errorf("marshal request: %w", err)}
	}
	return c.do(ctx, op, http.MethodPost, path, nil, bytes.NewReader(payload), "application/json", out)
}

// putJSON performs a PUT with a JSON payload.
func (c *Client) putJSON(ctx context.Context, op, path string, in any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return &Error{Op: op, Err: fmt.Errorf("marshal request: %w", err)}
	}
	return c.do(ctx, op, http.MethodPut, path, nil, bytes.NewReader(payload), "application/json", nil)
}

// delete performs a bodyless DELETE.
func (c *Client) delete(ctx context.Context, op, path string) error {
	return c.do(ctx, op, http.MethodDelete, path, nil, nil, "", nil)
}

// pageQuery encodes list pagination, applying the default page 1 / size 10.
func pageQuery(page models.Page) url.Values {
	page = page.Normalize()
	q := url.Values{}
	q.Set("pageNumber", strconv.Itoa(page.Number))
	q.Set("pageSize", strconv.Itoa(page.Size))
	return q
}
