package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
	"github.com/simplu-io/simplu-cli/internal/ports"
	"go.uber.org/zap"
)

const (
	maxErrorBodySize = 1 << 20

	headerIdempotencyKey = "Idempotency-Key"
)

// Client is the single gateway to the backend REST API. Every call goes
// through do, which attaches the bearer token and classifies failures.
type Client struct {
	http     *resty.Client
	tokens   ports.TokenProvider
	validate *validator.Validate
	logger   *zap.Logger
}

type options struct {
	httpClient *http.Client
	timeout    time.Duration
	logger     *zap.Logger
}

type Option func(*options)

func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func New(baseURL string, tokens ports.TokenProvider, opts ...Option) *Client {
	cfg := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	var rc *resty.Client
	if cfg.httpClient != nil {
		rc = resty.NewWithClient(cfg.httpClient)
	} else {
		rc = resty.New()
	}
	if cfg.timeout > 0 {
		rc.SetTimeout(cfg.timeout)
	}
	rc.SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetLogger(cfg.logger.Sugar())

	return &Client{
		http:     rc,
		tokens:   tokens,
		validate: validator.New(),
		logger:   cfg.logger,
	}
}

type request struct {
	method  string
	path    string
	query   map[string]string
	body    any
	headers map[string]string
}

// do performs one request and returns the raw 2xx body. Requests are never
// retried.
func (c *Client) do(ctx context.Context, req request) ([]byte, error) {
	r := c.http.R().SetContext(ctx)

	if c.tokens != nil {
		if token := c.tokens.AccessToken(ctx); token != "" {
			r.SetAuthToken(token)
		}
	}
	if req.body != nil {
		r.SetBody(req.body)
	}
	if len(req.query) > 0 {
		r.SetQueryParams(req.query)
	}
	for key, value := range req.headers {
		r.SetHeader(key, value)
	}

	c.logger.Debug("api request", zap.String("method", req.method), zap.String("path", req.path))

	resp, err := r.Execute(req.method, req.path)
	if err != nil {
		c.logger.Debug("api request failed", zap.String("path", req.path), zap.Error(err))
		return nil, &NetworkError{Method: req.method, Path: req.path, Cause: err}
	}

	code := resp.StatusCode()
	if code < 200 || code > 299 {
		body := resp.Body()
		if len(body) > maxErrorBodySize {
			body = body[:maxErrorBodySize]
		}
		httpErr := &HTTPError{
			StatusCode: code,
			Message:    errorMessage(code, resp.Status(), body),
			Body:       body,
		}
		c.logger.Debug("api error response", zap.String("path", req.path), zap.Int("status", code))
		return nil, httpErr
	}

	return resp.Body(), nil
}

func errorMessage(code int, status string, body []byte) string {
	var payload struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if message := messageText(payload.Message); message != "" {
			return message
		}
	}
	return fmt.Sprintf("HTTP %d: %s", code, statusText(code, status))
}

// messageText accepts a plain message or a list of validation messages.
func messageText(raw json.RawMessage) string {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return strings.TrimSpace(text)
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		parts := make([]string, 0, len(list))
		for _, item := range list {
			if item = strings.TrimSpace(item); item != "" {
				parts = append(parts, item)
			}
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

// statusText extracts the reason phrase from "404 Not Found".
func statusText(code int, status string) string {
	text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(status), strconv.Itoa(code)))
	if text == "" {
		text = http.StatusText(code)
	}
	return text
}

func decodeOne[T any](c *Client, resource string, body []byte) (T, error) {
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return out, &SchemaError{Resource: resource, Cause: err}
	}
	if err := c.validate.Struct(&out); err != nil {
		return out, &SchemaError{Resource: resource, Cause: err}
	}
	return out, nil
}

func decodeList[T any](c *Client, resource string, body []byte) ([]T, error) {
	var out []T
	if err := json.Unmarshal(body, &out); err != nil {
		// Some list endpoints wrap the array in "items" or "data".
		var envelope map[string]json.RawMessage
		if envErr := json.Unmarshal(body, &envelope); envErr != nil {
			return nil, &SchemaError{Resource: resource, Cause: err}
		}
		raw, ok := envelope["items"]
		if !ok {
			raw, ok = envelope["data"]
		}
		if !ok {
			return nil, &SchemaError{Resource: resource, Cause: errors.New("expected a list or an items/data envelope")}
		}
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, &SchemaError{Resource: resource, Cause: err}
		}
	}
	for i := range out {
		if err := c.validate.Struct(&out[i]); err != nil {
			return nil, &SchemaError{Resource: fmt.Sprintf("%s[%d]", resource, i), Cause: err}
		}
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func IsNotFound(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound
}

func IsUnauthorized(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && (httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden)
}
