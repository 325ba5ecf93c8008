// Package gateway is the HTTP client of the marketplace backend: base URL
// resolution, header construction, request execution and error
// normalization, plus the per-role operation groups built on top.
package gateway

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
	"unicode"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/voltmarket/market-client/internal/core/domain"
	"github.com/voltmarket/market-client/internal/core/ports"
	"github.com/voltmarket/market-client/internal/metrics"
)

const (
	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 32 << 20
)

// ErrBodyTooLarge is returned when a response body exceeds the configured
// limit.
var ErrBodyTooLarge = errors.New("response body too large")

// Config holds client configuration.
type Config struct {
	// BaseURL is the explicit endpoint override; empty selects the platform
	// default.
	BaseURL  string
	Platform Platform
	Timeout  time.Duration
	// MaxBodyBytes caps how much of a response is read; zero means 32 MiB.
	MaxBodyBytes int64
	// HTTPClient replaces the default transport, mainly for tests.
	HTTPClient *http.Client
}

// Client executes requests against a single backend. It holds no state
// besides the resolved base URL; the token is read from the session store
// on every authenticated call.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxBody    int64
	sessions   ports.SessionStore
	log        zerolog.Logger
}

// Request describes one backend call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// Body is JSON-encoded for POST and PUT; nil encodes as {}.
	Body any
	// Auth attaches the bearer token when the session store has one.
	Auth bool
}

// New resolves the base URL once and returns a ready client.
func New(cfg Config, sessions ports.SessionStore, log zerolog.Logger) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = maxBodyBytes
	}

	c := &Client{
		baseURL:    ResolveBaseURL(cfg.BaseURL, cfg.Platform),
		httpClient: httpClient,
		maxBody:    maxBody,
		sessions:   sessions,
		log:        log.With().Str("component", "gateway").Logger(),
	}
	c.log.Debug().Str("base_url", c.baseURL).Str("platform", string(cfg.Platform)).Msg("gateway configured")
	return c
}

// BaseURL returns the backend root resolved at construction.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) Get(ctx context.Context, path string, query url.Values, auth bool) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query, Auth: auth})
}

func (c *Client) Post(ctx context.Context, path string, body any, auth bool) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body, Auth: auth})
}

func (c *Client) Put(ctx context.Context, path string, body any, auth bool) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body, Auth: auth})
}

func (c *Client) Delete(ctx context.Context, path string, auth bool) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path, Auth: auth})
}

// Do executes req. Success bodies are returned as parsed; non-2xx statuses
// and transport failures come back as *domain.APIError. Nothing is retried.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	route := routeLabel(req.Path)
	log := c.log.With().
		Str("method", req.Method).
		Str("path", req.Path).
		Str("request_id", httpReq.Header.Get("X-Request-ID")).
		Logger()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.observe(req.Method, route, metrics.OutcomeNetwork, start)
		metrics.NetworkErrorsTotal.Inc()
		log.Warn().Err(err).Str("base_url", c.baseURL).Msg("backend unreachable")
		return nil, domain.NewNetworkError(c.networkMessage(), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		log.Debug().Err(err).Msg("response body unreadable, using empty object")
		raw = nil
	}
	if int64(len(raw)) > c.maxBody {
		c.observe(req.Method, route, metrics.OutcomeAPI, start)
		log.Warn().Int("status", resp.StatusCode).Int64("limit", c.maxBody).Msg("response body over limit")
		return nil, fmt.Errorf("%s %s: %w (limit %d bytes)", req.Method, req.Path, ErrBodyTooLarge, c.maxBody)
	}
	body := parseBody(raw)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.observe(req.Method, route, metrics.OutcomeAPI, start)
		msg := body.message()
		if msg == "" {
			msg = fmt.Sprintf("Request failed (%d)", resp.StatusCode)
		}
		log.Debug().Int("status", resp.StatusCode).Str("message", msg).Msg("backend returned error")
		return nil, &domain.APIError{Message: msg, Status: resp.StatusCode, Data: body.Value()}
	}

	c.observe(req.Method, route, metrics.OutcomeSuccess, start)
	log.Debug().Int("status", resp.StatusCode).Dur("took", time.Since(start)).Msg("request ok")
	return body, nil
}

func (c *Client) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var payload io.Reader
	if req.Method == http.MethodPost || req.Method == http.MethodPut {
		body := req.Body
		if body == nil {
			body = struct{}{}
		}
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", req.Method, req.Path, err)
		}
		payload = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, payload)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	if req.Auth {
		if token := c.token(ctx); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return httpReq, nil
}

// token reads the stored bearer token. A missing session or a failing store
// yields "" so the header is simply omitted.
func (c *Client) token(ctx context.Context) string {
	if c.sessions == nil {
		return ""
	}
	s, err := c.sessions.Get(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("session read failed, sending request without token")
		return ""
	}
	return s.Token
}

func (c *Client) hasToken(ctx context.Context) bool {
	return c.token(ctx) != ""
}

func (c *Client) networkMessage() string {
	return fmt.Sprintf(
		"Cannot connect to the server at %s. Make sure the backend is running, that this address is reachable from the device (set API_URL to the host's LAN address on a physical phone), and that no firewall blocks the port.",
		c.baseURL,
	)
}

func (c *Client) observe(method, route, outcome string, start time.Time) {
	metrics.RequestsTotal.WithLabelValues(method, route, outcome).Inc()
	metrics.RequestDuration.WithLabelValues(method, outcome).Observe(time.Since(start).Seconds())
}

// routeLabel collapses id-like path segments so label cardinality stays
// bounded: "/products/64f0c2/approve" → "/products/:id/approve".
func routeLabel(path string) string {
	segs := strings.Split(path, "/")
	for i, s := range segs {
		if strings.IndexFunc(s, unicode.IsDigit) >= 0 {
			segs[i] = ":id"
		}
	}
	return strings.Join(segs, "/")
}

// pathID escapes an identifier for use as a path segment.
func pathID(id string) string { return url.PathEscape(id) }
