// services/gateway_client.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// Gateway is the single point of HTTP egress to the upstream platform API.
// It owns the base URL and the operator's bearer credential; nothing else in
// the process talks to the upstream directly. It does not retry and does not
// cache — callers normalize its failures.
type Gateway struct {
	base   *url.URL
	client *http.Client

	mu    sync.RWMutex
	token string
}

// NewGateway parses the upstream base URL and returns a gateway with no
// credential attached.
func NewGateway(rawURL string) (*Gateway, error) {
	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream base URL %q: %w", rawURL, err)
	}
	return &Gateway{
		base: base,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// SetCredential arms the bearer token attached to every outbound request.
// The session store is the only caller.
func (g *Gateway) SetCredential(token string) {
	g.mu.Lock()
	g.token = token
	g.mu.Unlock()
}

// ClearCredential detaches the bearer token; subsequent requests go out
// unauthenticated.
func (g *Gateway) ClearCredential() {
	g.mu.Lock()
	g.token = ""
	g.mu.Unlock()
}

// HasCredential reports whether a bearer token is currently attached.
func (g *Gateway) HasCredential() bool {
	return g.credential() != ""
}

func (g *Gateway) credential() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.token
}

// HTTPStatusError is a non-2xx upstream response. The body is preserved so
// the normalizer can mine a structured {message} out of it.
type HTTPStatusError struct {
	Status int
	Body   []byte
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.Status)
}

// Get issues a GET and decodes the 2xx response into out.
func (g *Gateway) Get(ctx context.Context, path string, out interface{}) error {
	return g.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body and decodes the 2xx response into out.
func (g *Gateway) Post(ctx context.Context, path string, body, out interface{}) error {
	return g.do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT with a JSON body and decodes the 2xx response into out.
func (g *Gateway) Put(ctx context.Context, path string, body, out interface{}) error {
	return g.do(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE, discarding any response body.
func (g *Gateway) Delete(ctx context.Context, path string) error {
	return g.do(ctx, http.MethodDelete, path, nil, nil)
}

func (g *Gateway) do(ctx context.Context, method, path string, body, out interface{}) error {
	endpoint := g.base.JoinPath(path)

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s body: %w", method, path, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reqBody)
	if err != nil {
		return fmt.Errorf("failed to build %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := g.credential(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		// Always drain & close to keep connections reusable.
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &HTTPStatusError{Status: resp.StatusCode, Body: payload}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}
