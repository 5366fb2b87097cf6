package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Doer issues an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DoerFunc adapts a function to the Doer interface.
type DoerFunc func(req *http.Request) (*http.Response, error)

// Do calls f(req).
func (f DoerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Middleware wraps a Doer with one interception concern. Middlewares are
// explicit functions composed around the transport call; each returns the
// response or an error, nothing propagates implicitly.
type Middleware func(next Doer) Doer

// Chain composes middlewares around base. The first middleware is the
// outermost: Chain(base, a, b) runs a -> b -> base.
func Chain(base Doer, mws ...Middleware) Doer {
	d := base
	for i := len(mws) - 1; i >= 0; i-- {
		d = mws[i](d)
	}
	return d
}

// TokenSource provides the current bearer token; "" means unauthenticated.
// The session store satisfies this.
type TokenSource interface {
	Token() string
}

// BearerAuth attaches the session token as a bearer credential on every
// outgoing request. Requests without a token are sent unmodified.
func BearerAuth(ts TokenSource) Middleware {
	return func(next Doer) Doer {
		return DoerFunc(func(req *http.Request) (*http.Response, error) {
			if tok := ts.Token(); tok != "" {
				req.Header.Set("Authorization", "Bearer "+tok)
			}
			return next.Do(req)
		})
	}
}

// RequestID tags every outgoing request with a unique X-Request-ID so
// client-side history and server logs can be correlated.
func RequestID() Middleware {
	return func(next Doer) Doer {
		return DoerFunc(func(req *http.Request) (*http.Response, error) {
			if req.Header.Get("X-Request-ID") == "" {
				req.Header.Set("X-Request-ID", uuid.NewString())
			}
			return next.Do(req)
		})
	}
}

// Observe records transport-level metrics for every dispatched request.
func Observe(m *Metrics) Middleware {
	return func(next Doer) Doer {
		return DoerFunc(func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.Do(req)
			m.RequestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())
			status := "network_error"
			if err == nil {
				status = strconv.Itoa(resp.StatusCode)
			}
			m.RequestsTotal.WithLabelValues(req.Method, status).Inc()
			return resp, err
		})
	}
}

// CallRecord describes one dispatched request for the local history store.
type CallRecord struct {
	Method    string
	Path      string
	RequestID string
	// Status is the HTTP status, or 0 when no response was received.
	Status   int
	Duration time.Duration
	At       time.Time
}

// CallRecorder persists call records. The SQLite history store satisfies
// this; recording failures must not fail the request.
type CallRecorder interface {
	Record(ctx context.Context, rec CallRecord) error
}

// RecordCalls writes one CallRecord per dispatched request.
func RecordCalls(r CallRecorder) Middleware {
	return func(next Doer) Doer {
		return DoerFunc(func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.Do(req)
			rec := CallRecord{
				Method:    req.Method,
				Path:      req.URL.Path,
				RequestID: req.Header.Get("X-Request-ID"),
				Duration:  time.Since(start),
				At:        start.UTC(),
			}
			if err == nil {
				rec.Status = resp.StatusCode
			}
			// Best effort: history must never break the call itself.
			_ = r.Record(req.Context(), rec)
			return resp, err
		})
	}
}
