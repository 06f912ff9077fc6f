package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// DefaultTimeout bounds every request made by the client
const DefaultTimeout = 15 * time.Second

// TokenStore holds the session token between calls. Implementations decide
// the persistence (memory, keychain, file).
type TokenStore interface {
	Token() string
	SetToken(token string)
	Clear()
}

// MemoryTokenStore keeps the token in memory, safe for concurrent use
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryTokenStore creates an empty in-memory token store
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

// Token returns the stored token, empty when signed out
func (s *MemoryTokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken replaces the stored token
func (s *MemoryTokenStore) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Clear removes the stored token
func (s *MemoryTokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// Client is the API gateway used by client applications. All failures are
// surfaced as *APIError; there is no fallback data.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenStore
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenStore replaces the default in-memory token store
func WithTokenStore(store TokenStore) Option {
	return func(c *Client) { c.tokens = store }
}

// New creates a client for the given API base URL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		tokens:     NewMemoryTokenStore(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Tokens exposes the token store, e.g. to restore a persisted session
func (c *Client) Tokens() TokenStore {
	return c.tokens
}

// envelope mirrors the server's success body: the payload sits under "data"
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// errorEnvelope mirrors the server's error body
type errorEnvelope struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Do performs one API call. body is JSON-encoded when non-nil; out, when
// non-nil, receives the decoded "data" payload. Every failure returns an
// *APIError.
func (c *Client) Do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &APIError{Type: ErrorTypeUnknown, Message: fmt.Sprintf("encoding request: %v", err)}
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &APIError{Type: ErrorTypeUnknown, Message: fmt.Sprintf("building request: %v", err)}
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Type: ErrorTypeNetwork, Message: fmt.Sprintf("reading response: %v", err)}
	}

	if resp.StatusCode >= 400 {
		return newStatusError(resp.StatusCode, respBody)
	}

	if out != nil && len(respBody) > 0 {
		var env envelope
		if err := json.Unmarshal(respBody, &env); err != nil {
			return &APIError{Type: ErrorTypeUnknown, Message: fmt.Sprintf("decoding response: %v", err)}
		}
		payload := env.Data
		if payload == nil {
			// Endpoints outside the envelope (health) return the payload directly
			payload = respBody
		}
		if err := json.Unmarshal(payload, out); err != nil {
			return &APIError{Type: ErrorTypeUnknown, Message: fmt.Sprintf("decoding payload: %v", err)}
		}
	}

	return nil
}

// classifyTransportError separates timeouts from other network failures
func classifyTransportError(err error) *APIError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &APIError{Type: ErrorTypeTimeout, Message: "request timed out"}
	}

	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &APIError{Type: ErrorTypeTimeout, Message: "request timed out"}
	}

	if errors.Is(err, context.Canceled) {
		return &APIError{Type: ErrorTypeNetwork, Message: "request cancelled"}
	}

	return &APIError{Type: ErrorTypeNetwork, Message: err.Error()}
}

// newStatusError builds an APIError from a non-2xx response, pulling the
// server's message out of the error body when present
func newStatusError(status int, body []byte) *APIError {
	message := http.StatusText(status)

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != nil && env.Error.Message != "" {
		message = env.Error.Message
	}

	return &APIError{
		Type:       classifyStatus(status),
		StatusCode: status,
		Message:    message,
	}
}
