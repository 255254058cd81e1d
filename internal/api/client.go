package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenSource supplies the bearer credential for authenticated requests.
// session.Store satisfies it; tests use a literal.
type TokenSource interface {
	Token() (string, bool)
}

// StaticToken is a TokenSource holding a fixed credential. An empty value
// means unauthenticated.
type StaticToken string

// Token implements TokenSource.
func (t StaticToken) Token() (string, bool) { return string(t), t != "" }

// Client talks to the customer service. All methods are single-attempt:
// no retries, no special handling of 401s — a rejected credential surfaces
// like any other request failure.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     *zap.Logger
}

// New builds a Client for the given base URL. logger may not be nil; pass
// zap.NewNop() when logging is off.
func New(baseURL string, timeout time.Duration, tokens TokenSource, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     logger,
	}
}

// do issues one request and decodes a 2xx JSON body into out (out may be
// nil for endpoints with no required body). A non-2xx response is returned
// wrapped around kind, so callers can match with errors.Is.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any, kind error) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encoding request: %v", kind, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", kind, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)
	if token, ok := c.tokens.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return fmt.Errorf("%w: %v", kind, err)
	}
	defer resp.Body.Close()

	c.log.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: server returned %s", kind, resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", kind, err)
	}
	return nil
}

// pagingQuery builds the shared page/pageSize/search query parameters.
func pagingQuery(page, pageSize int, search string) url.Values {
	return url.Values{
		"page":     {fmt.Sprint(page)},
		"pageSize": {fmt.Sprint(pageSize)},
		"search":   {search},
	}
}
