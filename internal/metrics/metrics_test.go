package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveGeneration(t *testing.T) {
	m := New()

	m.ObserveGeneration("ok", "guaranteed", 16)
	m.ObserveGeneration("ok", "guaranteed", 12)
	m.ObserveGeneration("no_charset", "guaranteed", 8)

	if got := testutil.ToFloat64(m.generations.WithLabelValues("ok", "guaranteed")); got != 2 {
		t.Errorf("ok generations = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.generations.WithLabelValues("no_charset", "guaranteed")); got != 1 {
		t.Errorf("no_charset generations = %v, want 1", got)
	}

	if out := scrape(t, m); !strings.Contains(out, "passgen_password_length_count 2") {
		t.Errorf("expected two sampled lengths in:\n%s", out)
	}
}

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	return string(body)
}

func TestObserveRequest(t *testing.T) {
	m := New()

	m.ObserveRequest(http.MethodPost, "/generate-password", http.StatusOK, 3*time.Millisecond)
	m.ObserveRequest(http.MethodPost, "/generate-password", http.StatusBadRequest, time.Millisecond)
	m.ObserveRequest(http.MethodPost, "/generate-password", http.StatusOK, time.Millisecond)

	if got := testutil.ToFloat64(m.requests.WithLabelValues(http.MethodPost, "/generate-password", "200")); got != 2 {
		t.Errorf("200 requests = %v, want 2", got)
	}
	if got := testutil.CollectAndCount(m.requests); got != 2 {
		t.Errorf("request series = %d, want 2", got)
	}
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveGeneration("ok", "pool_only", 2)

	out := scrape(t, m)
	for _, want := range []string{
		`passgen_generations_total{mode="pool_only",outcome="ok"} 1`,
		"passgen_password_length_count 1",
		"go_goroutines",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestNewUsesIndependentRegistries(t *testing.T) {
	// Registering twice on a shared registry would panic.
	a, b := New(), New()
	a.ObserveGeneration("ok", "guaranteed", 8)

	if got := testutil.ToFloat64(b.generations.WithLabelValues("ok", "guaranteed")); got != 0 {
		t.Errorf("second registry saw %v generations, want 0", got)
	}
}
