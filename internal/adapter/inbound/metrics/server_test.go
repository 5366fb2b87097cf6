package metrics

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/goleak"

	"github.com/sparkhub/sparkhub-cli/internal/adapter/outbound/rest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestServesPipelineMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := rest.NewMetrics(reg)
	m.CacheHits.Inc()

	s := NewServer("127.0.0.1:0", reg, slog.Default())
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	defer func() {
		if err := s.Shutdown(context.Background()); err != nil {
			t.Errorf("Shutdown: %v", err)
		}
	}()

	client := &http.Client{Transport: &http.Transport{}}
	defer client.CloseIdleConnections()
	resp, err := client.Get("http://" + s.Addr() + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "sparkhub_read_cache_hits_total") {
		t.Errorf("metrics output missing cache hit counter:\n%s", body)
	}
}

func TestShutdownIdleServer(t *testing.T) {
	s := NewServer("127.0.0.1:0", prometheus.NewRegistry(), slog.Default())
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatal(err)
	}
}
