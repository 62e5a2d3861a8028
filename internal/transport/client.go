// Package transport implements the HTTP collaborator the rest of the SDK
// talks through: three verbs returning the common success/message/data
// envelope, or an *domain.APIError. No other error type leaves this package.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AllStackDev1/oja-client/domain"
)

const defaultTimeout = 30 * time.Second

// Client is a thin JSON client for the Oja API.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *zap.Logger

	mu    sync.RWMutex
	token string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying *http.Client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// WithLogger installs a request logger. Default is a no-op logger, so
// library users pay nothing unless they opt in.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithTimeout sets the per-request timeout on the default http.Client.
// Ignored when WithHTTPClient is also given with a later option.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpc.Timeout = timeout
		}
	}
}

// NewClient creates a client rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: defaultTimeout},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetAuthToken installs the bearer token attached to subsequent requests.
// An empty token removes it.
func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Get implements domain.HTTPClient.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*domain.Envelope, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return c.do(ctx, http.MethodGet, target, nil)
}

// Post implements domain.HTTPClient.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*domain.Envelope, error) {
	return c.do(ctx, http.MethodPost, c.baseURL+path, body)
}

// Patch implements domain.HTTPClient.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*domain.Envelope, error) {
	return c.do(ctx, http.MethodPatch, c.baseURL+path, body)
}

func (c *Client) do(ctx context.Context, method, target string, body interface{}) (*domain.Envelope, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, domain.NewAPIError(err.Error())
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, domain.NewAPIError(err.Error())
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("method", method),
			zap.String("url", target),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return nil, domain.NewAPIError()
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewAPIError()
	}

	c.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("url", target),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	env := &domain.Envelope{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, env); err != nil {
			if resp.StatusCode >= 400 {
				return nil, domain.NewAPIError()
			}
			return nil, domain.NewAPIError("malformed response from server")
		}
	}

	if resp.StatusCode >= 400 {
		return nil, errorFromEnvelope(env)
	}
	return env, nil
}

// errorFromEnvelope normalizes a rejected payload, preferring message over
// data.message over the generic fallback.
func errorFromEnvelope(env *domain.Envelope) *domain.APIError {
	var nested struct {
		Message string `json:"message"`
	}
	if len(env.Data) > 0 {
		_ = json.Unmarshal(env.Data, &nested)
	}
	return domain.NewAPIError(env.MessageString(), nested.Message)
}

var _ domain.HTTPClient = (*Client)(nil)
