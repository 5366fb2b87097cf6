// Package rest implements the session-aware request pipeline: a single
// shared HTTP client with an outgoing stage (bearer token injection) and an
// incoming stage (envelope unwrap, business/transport error classification,
// session invalidation on a business-level 401).
//
// Every failure is surfaced exactly once as a user-visible notification at
// this boundary, then returned to the caller as a typed error so page-level
// logic can additionally react. Nothing is retried automatically.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sparkhub/sparkhub-cli/internal/notify"
	"github.com/sparkhub/sparkhub-cli/pkg/api"
)

// DefaultTimeout is the fixed per-request ceiling. A request still pending
// after this long fails through the transport-failure path.
const DefaultTimeout = 10 * time.Second

// Default read-cache tuning, mirroring the short-lived dedupe window the
// backend tolerates for list pages.
const (
	defaultCacheTTL     = 5 * time.Second
	defaultCacheMaxSize = 256
)

// Pipeline is the single shared request pipeline. All API client functions
// dispatch through one Pipeline instance; none of them manage their own
// headers, retries, or error handling.
type Pipeline struct {
	base     *url.URL
	doer     Doer
	session  TokenSource
	notifier notify.Notifier
	logger   *slog.Logger
	metrics  *Metrics
	cache    *readCache

	// onSessionInvalid runs after the user has been notified of a
	// business-level 401. The wiring clears the session store, persists
	// the transition, and redirects to login with the current path.
	onSessionInvalid func(ctx context.Context, message string)

	timeout     time.Duration
	middlewares []Middleware
	httpClient  Doer
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithHTTPClient sets a custom transport. Useful for tests.
func WithHTTPClient(d Doer) Option {
	return func(p *Pipeline) { p.httpClient = d }
}

// WithTimeout overrides the fixed request timeout.
func WithTimeout(d time.Duration) Option {
	return func(p *Pipeline) { p.timeout = d }
}

// WithMetrics enables transport metrics recording.
func WithMetrics(m *Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// WithCallRecorder enables local call-history recording.
func WithCallRecorder(r CallRecorder) Option {
	return func(p *Pipeline) {
		p.middlewares = append(p.middlewares, RecordCalls(r))
	}
}

// WithSessionInvalidHook sets the side effect for envelope-level 401s.
func WithSessionInvalidHook(f func(ctx context.Context, message string)) Option {
	return func(p *Pipeline) { p.onSessionInvalid = f }
}

// WithReadCache tunes the GET read cache. A non-positive ttl disables it.
func WithReadCache(ttl time.Duration, maxSize int) Option {
	return func(p *Pipeline) {
		if ttl <= 0 {
			p.cache = nil
			return
		}
		p.cache = newReadCache(ttl, maxSize)
	}
}

// New creates the shared Pipeline for the given base URL (e.g.
// "http://localhost:8080/api").
func New(baseURL string, sess TokenSource, notifier notify.Notifier, logger *slog.Logger, opts ...Option) (*Pipeline, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}

	p := &Pipeline{
		base:     base,
		session:  sess,
		notifier: notifier,
		logger:   logger,
		timeout:  DefaultTimeout,
		cache:    newReadCache(defaultCacheTTL, defaultCacheMaxSize),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.httpClient == nil {
		p.httpClient = &http.Client{Timeout: p.timeout}
	}

	// Outgoing stage: request-id, then bearer token, then observation,
	// then any recording, then the transport itself.
	mws := []Middleware{RequestID(), BearerAuth(sess)}
	if p.metrics != nil {
		mws = append(mws, Observe(p.metrics))
	}
	mws = append(mws, p.middlewares...)
	p.doer = Chain(p.httpClient, mws...)

	return p, nil
}

// Get dispatches a GET and decodes the envelope payload into out.
func (p *Pipeline) Get(ctx context.Context, path string, query url.Values, out any) error {
	return p.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post dispatches a POST with a JSON body.
func (p *Pipeline) Post(ctx context.Context, path string, body, out any) error {
	return p.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put dispatches a PUT with a JSON body.
func (p *Pipeline) Put(ctx context.Context, path string, body, out any) error {
	return p.do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete dispatches a DELETE.
func (p *Pipeline) Delete(ctx context.Context, path string) error {
	return p.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// do is the full request/response pipeline for one call.
func (p *Pipeline) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := *p.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	cacheable := method == http.MethodGet && p.cache != nil && out != nil
	var key uint64
	if cacheable {
		key = cacheKey(p.session.Token(), method, u.String())
		if data, ok := p.cache.get(key); ok {
			if p.metrics != nil {
				p.metrics.CacheHits.Inc()
			}
			return json.Unmarshal(data, out)
		}
		if p.metrics != nil {
			p.metrics.CacheMisses.Inc()
		}
	}

	req, err := p.buildRequest(ctx, method, u.String(), body)
	if err != nil {
		// Request never left the client: construction failure.
		msg := buildFailureMessage(err)
		p.notifier.Error(msg)
		return &TransportError{Message: msg, Err: err}
	}

	resp, err := p.doer.Do(req)
	if err != nil {
		// Request sent, no response received (refused, DNS, timeout).
		p.logger.Debug("request failed without response",
			"method", method, "path", path, "error", err)
		p.notifier.Error(msgNetwork)
		return &TransportError{Message: msgNetwork, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		p.notifier.Error(msgNetwork)
		return &TransportError{Status: resp.StatusCode, Message: msgNetwork, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Transport failure. Deliberately no session mutation here: only
		// an explicit business 401 clears the session, so network-level
		// auth hiccups cannot cause redirect loops.
		msg := statusMessage(resp.StatusCode)
		p.logger.Debug("http error response",
			"method", method, "path", path, "status", resp.StatusCode)
		p.notifier.Error(msg)
		return &TransportError{Status: resp.StatusCode, Message: msg}
	}

	var env api.Envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		msg := buildFailureMessage(fmt.Errorf("invalid response envelope: %w", err))
		p.notifier.Error(msg)
		return &TransportError{Status: resp.StatusCode, Message: msg, Err: err}
	}

	switch {
	case env.OK():
		if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
			if err := json.Unmarshal(env.Data, out); err != nil {
				msg := buildFailureMessage(fmt.Errorf("decode payload: %w", err))
				p.notifier.Error(msg)
				return &TransportError{Status: resp.StatusCode, Message: msg, Err: err}
			}
		}
		if cacheable && len(env.Data) > 0 {
			p.cache.put(key, env.Data)
		}
		if method != http.MethodGet && p.cache != nil {
			// A successful write may invalidate anything we cached.
			p.cache.flush()
		}
		return nil

	case env.Code == api.CodeUnauthorized:
		// Stale token. Side effects in order: notify, then clear session
		// and redirect via the hook, then fail the call.
		msg := env.Message
		if msg == "" {
			msg = msgSessionExpired
		}
		p.notifier.Error(msg)
		if p.metrics != nil {
			p.metrics.SessionInvalidations.Inc()
			p.metrics.BusinessFailures.WithLabelValues(strconv.Itoa(env.Code)).Inc()
		}
		if p.onSessionInvalid != nil {
			p.onSessionInvalid(ctx, msg)
		}
		return &BusinessError{Code: env.Code, Message: msg}

	default:
		msg := env.Message
		if msg == "" {
			msg = msgBusinessFailed
		}
		p.notifier.Error(msg)
		if p.metrics != nil {
			p.metrics.BusinessFailures.WithLabelValues(strconv.Itoa(env.Code)).Inc()
		}
		return &BusinessError{Code: env.Code, Message: msg}
	}
}

// buildRequest marshals the body and constructs the HTTP request.
func (p *Pipeline) buildRequest(ctx context.Context, method, url string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// CacheSize returns the current read-cache entry count. For tests.
func (p *Pipeline) CacheSize() int {
	if p.cache == nil {
		return 0
	}
	return p.cache.size()
}
