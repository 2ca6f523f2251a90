// Package api is the typed client for the QuillForge REST backend. Every
// response arrives in a uniform envelope {success, data, message?}; list
// endpoints add a pagination block. Authentication headers are the
// transport's job (see transport.go), not the client's.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/quillforge/quill/internal/log"
)

// Client is the QuillForge platform API client
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	logger *log.Logger
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Pass a client whose
// Transport is an *AuthTransport to get bearer injection and token refresh.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.HTTPClient = hc
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new platform API client
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: log.DefaultLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// StatusError is returned for non-2xx responses so callers can branch on
// the HTTP status (the 404 no-profile case, primarily)
type StatusError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// IsStatus reports whether err is a StatusError with the given code
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

// Pagination is the list metadata block of paginated envelopes
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Page is one page of a paginated listing
type Page[T any] struct {
	Items      []T
	Total      int
	PageNumber int
	Limit      int
	TotalPages int
}

// envelope is the uniform response wrapper used by every endpoint
type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message,omitempty"`
	Pagination *Pagination     `json:"pagination,omitempty"`
}

// doRequest performs an HTTP request with a JSON body
func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	c.logger.Debug("api request", "method", method, "path", path)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}

	return resp, nil
}

// doUpload performs a multipart file upload
func (c *Client) doUpload(ctx context.Context, path, filename string, file io.Reader) (*http.Response, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to buffer upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Request-Id", uuid.NewString())

	c.logger.Debug("api upload", "path", path, "filename", filename)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}

	return resp, nil
}

// parseResponse reads the envelope and decodes its data field into target.
// Non-2xx responses become a *StatusError carrying the envelope message.
func parseResponse(resp *http.Response, target any) error {
	env, err := readEnvelope(resp)
	if err != nil {
		return err
	}

	if target != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, target); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// parsePage decodes a paginated envelope into a Page of items
func parsePage[T any](resp *http.Response) (*Page[T], error) {
	env, err := readEnvelope(resp)
	if err != nil {
		return nil, err
	}

	var items []T
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &items); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	page := &Page[T]{Items: items}
	if env.Pagination != nil {
		page.PageNumber = env.Pagination.Page
		page.Limit = env.Pagination.Limit
		page.Total = env.Pagination.Total
		page.TotalPages = env.Pagination.TotalPages
	} else {
		page.Total = len(items)
	}

	return page, nil
}

func readEnvelope(resp *http.Response) (*envelope, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{StatusCode: resp.StatusCode}

		var env envelope
		if err := json.Unmarshal(body, &env); err == nil && env.Message != "" {
			statusErr.Message = env.Message
		} else if len(body) > 0 {
			statusErr.Message = string(body)
		}

		return nil, statusErr
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode response envelope: %w", err)
	}

	return &env, nil
}

// listQuery builds a query string from non-zero listing parameters
func listQuery(values url.Values) string {
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}
