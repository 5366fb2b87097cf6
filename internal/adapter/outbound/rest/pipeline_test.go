package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/sparkhub/sparkhub-cli/internal/notify"
)

// staticToken is a TokenSource with a settable token.
type staticToken struct {
	mu  sync.Mutex
	tok string
}

func (s *staticToken) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tok
}

func (s *staticToken) set(tok string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tok = tok
}

func envelope(code int, message string, data any) []byte {
	raw, _ := json.Marshal(data)
	b, _ := json.Marshal(map[string]any{
		"code":    code,
		"message": message,
		"data":    json.RawMessage(raw),
	})
	return b
}

func newTestPipeline(t *testing.T, serverURL string, sess TokenSource, rec *notify.Recorder, opts ...Option) *Pipeline {
	t.Helper()
	p, err := New(serverURL+"/api", sess, rec, slog.Default(), opts...)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestEnvelopeUnwrap(t *testing.T) {
	var gotAuth, gotReqID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/projects/1" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		w.Write(envelope(200, "", map[string]int{"x": 1}))
	}))
	defer server.Close()

	sess := &staticToken{tok: "tok-1"}
	rec := notify.NewRecorder()
	p := newTestPipeline(t, server.URL, sess, rec)

	var out map[string]int
	if err := p.Get(context.Background(), "/projects/1", nil, &out); err != nil {
		t.Fatalf("Get: %v", err)
	}

	// Callers see the payload, never the envelope.
	if out["x"] != 1 || len(out) != 1 {
		t.Errorf("payload = %v, want {x:1}", out)
	}
	if gotAuth != "Bearer tok-1" {
		t.Errorf("Authorization = %q, want Bearer tok-1", gotAuth)
	}
	if gotReqID == "" {
		t.Error("missing X-Request-ID header")
	}
	if len(rec.Entries()) != 0 {
		t.Errorf("success must not notify, got %+v", rec.Entries())
	}
}

func TestNoBearerWhenLoggedOut(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h := r.Header.Get("Authorization"); h != "" {
			t.Errorf("unexpected Authorization header %q", h)
		}
		w.Write(envelope(200, "", nil))
	}))
	defer server.Close()

	p := newTestPipeline(t, server.URL, &staticToken{}, notify.NewRecorder())
	if err := p.Get(context.Background(), "/projects", nil, nil); err != nil {
		t.Fatal(err)
	}
}

func TestBusinessUnauthorizedClearsSessionAndRedirects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(envelope(401, "expired", nil))
	}))
	defer server.Close()

	sess := &staticToken{tok: "stale"}
	rec := notify.NewRecorder()
	var hookMsg atomic.Value
	p := newTestPipeline(t, server.URL, sess, rec,
		WithSessionInvalidHook(func(ctx context.Context, message string) {
			// Wiring clears the session and redirects to login.
			sess.set("")
			hookMsg.Store(message)
		}))

	err := p.Get(context.Background(), "/backings/my", nil, &struct{}{})
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "expired" {
		t.Errorf("error = %q, want backend message 'expired'", err.Error())
	}
	if !errors.Is(err, ErrSessionInvalid) || !errors.Is(err, ErrBusiness) {
		t.Error("401 must match both ErrSessionInvalid and ErrBusiness")
	}
	if got, _ := hookMsg.Load().(string); got != "expired" {
		t.Errorf("hook message = %q, want 'expired'", got)
	}
	if sess.Token() != "" {
		t.Error("session not cleared")
	}
	entries := rec.Entries()
	if len(entries) != 1 || entries[0].Message != "expired" {
		t.Errorf("notifications = %+v, want one 'expired'", entries)
	}
}

func TestBusinessUnauthorizedDefaultMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(envelope(401, "", nil))
	}))
	defer server.Close()

	rec := notify.NewRecorder()
	p := newTestPipeline(t, server.URL, &staticToken{tok: "t"}, rec)

	err := p.Get(context.Background(), "/profile", nil, nil)
	if err == nil || err.Error() != msgSessionExpired {
		t.Errorf("error = %v, want default %q", err, msgSessionExpired)
	}
}

func TestBusinessFailureDoesNotTouchSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(envelope(500, "reward sold out", nil))
	}))
	defer server.Close()

	rec := notify.NewRecorder()
	hookCalled := false
	p := newTestPipeline(t, server.URL, &staticToken{tok: "t"}, rec,
		WithSessionInvalidHook(func(context.Context, string) { hookCalled = true }))

	err := p.Post(context.Background(), "/backings", map[string]int{"rewardId": 9}, nil)
	if err == nil || err.Error() != "reward sold out" {
		t.Fatalf("error = %v, want 'reward sold out'", err)
	}
	if !errors.Is(err, ErrBusiness) || errors.Is(err, ErrSessionInvalid) {
		t.Error("non-401 business error must not match ErrSessionInvalid")
	}
	if hookCalled {
		t.Error("non-401 business error must not invalidate the session")
	}
	if entries := rec.Entries(); len(entries) != 1 || entries[0].Message != "reward sold out" {
		t.Errorf("notifications = %+v", entries)
	}
}

func TestTransportStatusMessages(t *testing.T) {
	cases := []struct {
		status int
		want   string
	}{
		{401, "unauthorized, check login status"},
		{403, "forbidden"},
		{404, "resource not found"},
		{500, "internal server error"},
		{418, "HTTP error 418"},
	}
	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", tc.status)
			}))
			defer server.Close()

			rec := notify.NewRecorder()
			hookCalled := false
			p := newTestPipeline(t, server.URL, &staticToken{tok: "t"}, rec,
				WithSessionInvalidHook(func(context.Context, string) { hookCalled = true }))

			err := p.Get(context.Background(), "/projects", nil, nil)
			if err == nil || err.Error() != tc.want {
				t.Fatalf("error = %v, want %q", err, tc.want)
			}
			if !errors.Is(err, ErrTransport) {
				t.Error("expected ErrTransport")
			}
			var terr *TransportError
			if !errors.As(err, &terr) || terr.Status != tc.status {
				t.Errorf("status = %+v, want %d", terr, tc.status)
			}
			// Transport-level auth failures are handled conservatively:
			// never a session clear, even for HTTP 401.
			if hookCalled {
				t.Error("transport failure must not invalidate the session")
			}
			if entries := rec.Entries(); len(entries) != 1 || entries[0].Message != tc.want {
				t.Errorf("notifications = %+v", entries)
			}
		})
	}
}

func TestNetworkErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close() // nothing listening anymore

	rec := notify.NewRecorder()
	sess := &staticToken{tok: "t"}
	p := newTestPipeline(t, serverURL, sess, rec)

	err := p.Get(context.Background(), "/projects", nil, nil)
	if err == nil || err.Error() != msgNetwork {
		t.Fatalf("error = %v, want %q", err, msgNetwork)
	}
	if !errors.Is(err, ErrTransport) {
		t.Error("expected ErrTransport")
	}
	if sess.Token() != "t" {
		t.Error("network failure must leave the session untouched")
	}
}

func TestRequestBuildFailure(t *testing.T) {
	rec := notify.NewRecorder()
	p := newTestPipeline(t, "http://localhost:1", &staticToken{}, rec)

	// A channel cannot be marshaled: the request never leaves the client.
	err := p.Post(context.Background(), "/projects", make(chan int), nil)
	if err == nil {
		t.Fatal("expected error")
	}
	var terr *TransportError
	if !errors.As(err, &terr) || terr.Status != 0 {
		t.Fatalf("expected TransportError without status, got %v", err)
	}
	entries := rec.Entries()
	if len(entries) != 1 {
		t.Fatalf("notifications = %+v", entries)
	}
	if got := entries[0].Message; len(got) < len("request failed: ") || got[:len("request failed: ")] != "request failed: " {
		t.Errorf("message = %q, want 'request failed: ...' prefix", got)
	}
}

func TestReadCacheServesRepeatGets(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write(envelope(200, "", map[string]int{"x": 2}))
	}))
	defer server.Close()

	p := newTestPipeline(t, server.URL, &staticToken{tok: "t"}, notify.NewRecorder())

	var out map[string]int
	for i := 0; i < 3; i++ {
		if err := p.Get(context.Background(), "/projects", url.Values{"pageNum": {"1"}}, &out); err != nil {
			t.Fatal(err)
		}
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("backend hits = %d, want 1 (cache should serve repeats)", got)
	}
	if out["x"] != 2 {
		t.Errorf("payload = %v", out)
	}
}

func TestWriteFlushesReadCache(t *testing.T) {
	var gets int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			atomic.AddInt32(&gets, 1)
		}
		w.Write(envelope(200, "", map[string]int{"x": 3}))
	}))
	defer server.Close()

	p := newTestPipeline(t, server.URL, &staticToken{tok: "t"}, notify.NewRecorder())

	var out map[string]int
	if err := p.Get(context.Background(), "/favorites/my", nil, &out); err != nil {
		t.Fatal(err)
	}
	if err := p.Post(context.Background(), "/favorites/9", nil, nil); err != nil {
		t.Fatal(err)
	}
	if p.CacheSize() != 0 {
		t.Error("successful write must flush the read cache")
	}
	if err := p.Get(context.Background(), "/favorites/my", nil, &out); err != nil {
		t.Fatal(err)
	}
	if got := atomic.LoadInt32(&gets); got != 2 {
		t.Errorf("GET hits = %d, want 2 after flush", got)
	}
}

func TestCacheKeyedByToken(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write(envelope(200, "", map[string]int{"x": 4}))
	}))
	defer server.Close()

	sess := &staticToken{tok: "alice"}
	p := newTestPipeline(t, server.URL, sess, notify.NewRecorder())

	var out map[string]int
	if err := p.Get(context.Background(), "/backings/my", nil, &out); err != nil {
		t.Fatal(err)
	}
	sess.set("bob")
	if err := p.Get(context.Background(), "/backings/my", nil, &out); err != nil {
		t.Fatal(err)
	}
	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Errorf("backend hits = %d, want 2 (cache must not leak across identities)", got)
	}
}

func TestNullDataLeavesOutUntouched(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":200,"message":"","data":null}`))
	}))
	defer server.Close()

	p := newTestPipeline(t, server.URL, &staticToken{}, notify.NewRecorder())
	out := map[string]int{"keep": 1}
	if err := p.Post(context.Background(), "/notifications/1/read", nil, &out); err != nil {
		t.Fatal(err)
	}
	if out["keep"] != 1 {
		t.Error("null data must not clobber out")
	}
}
