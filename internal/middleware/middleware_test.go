package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(GetTenantFromContext(r.Context())))
}

func tenantRouter(keys map[string]string) http.Handler {
	r := chi.NewRouter()
	r.Use(APIKeyAuth(keys))
	r.Get("/health", okHandler)
	r.Route("/v1/{tenant}", func(r chi.Router) {
		r.Use(RequireValidTenant)
		r.Get("/analyses", okHandler)
	})
	return r
}

func TestAPIKeyAuth(t *testing.T) {
	h := tenantRouter(map[string]string{"acme": "k-acme", "globex": "k-globex"})

	cases := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"health path skips auth", "/health", "", http.StatusOK},
		{"missing key", "/v1/acme/analyses", "", http.StatusUnauthorized},
		{"wrong key", "/v1/acme/analyses", "Bearer nope", http.StatusUnauthorized},
		{"other tenant's key", "/v1/acme/analyses", "Bearer k-globex", http.StatusForbidden},
		{"bad tenant id", "/v1/ac$me/analyses", "Bearer k-acme", http.StatusBadRequest},
		{"valid bearer", "/v1/acme/analyses", "Bearer k-acme", http.StatusOK},
		{"valid bare key", "/v1/acme/analyses", "k-acme", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}

func TestAPIKeyAuthDisabledWithoutKeys(t *testing.T) {
	h := tenantRouter(nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/acme/analyses", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	h := RateLimitMiddleware(0.001, 2, nil)(http.HandlerFunc(okHandler))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/v1/acme/analyze", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != 200 || codes[1] != 200 || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v", codes)
	}

	// a different client has its own bucket
	req := httptest.NewRequest(http.MethodPost, "/v1/acme/analyze", nil)
	req.RemoteAddr = "10.0.0.2:5555"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("second client status = %d", rec.Code)
	}
}

func TestRateLimiterSweep(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	rl.Allow("a")
	if n := rl.Sweep(time.Now()); n != 0 {
		t.Fatalf("fresh bucket swept: %d", n)
	}
	if n := rl.Sweep(time.Now().Add(11 * time.Minute)); n != 1 {
		t.Fatalf("idle bucket kept: %d", n)
	}
}

func TestHealthHandler(t *testing.T) {
	h := HealthHandler(map[string]HealthChecker{
		"db":    CheckFunc(func(context.Context) error { return nil }),
		"store": CheckFunc(func(context.Context) error { return errors.New("bucket missing") }),
	})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "bucket missing") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestHealthHandlerTimesOutSlowCheck(t *testing.T) {
	h := healthHandler(map[string]HealthChecker{
		"db": CheckFunc(func(context.Context) error { return nil }),
		"cache": CheckFunc(func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}),
		"bus": CheckFunc(func(context.Context) error {
			time.Sleep(time.Second)
			return nil
		}),
	}, 30*time.Millisecond)

	start := time.Now()
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Fatalf("handler waited %v for slow checks", elapsed)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}

	var body HealthStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Checks["db"].Status != "healthy" {
		t.Fatalf("db = %+v", body.Checks["db"])
	}
	for _, name := range []string{"cache", "bus"} {
		c := body.Checks[name]
		if c.Status != "unhealthy" || !strings.Contains(c.Message, "deadline exceeded") {
			t.Fatalf("%s = %+v", name, c)
		}
		if c.LatencyMS < 30 {
			t.Fatalf("%s latency = %dms", name, c.LatencyMS)
		}
	}
	if !strings.Contains(rec.Body.String(), `"latency_ms"`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestMetricsRecorder(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.ObserveAnalysis("text", 45, true)
	m.ObserveAnalysis("text", 82, false)
	m.ObserveFallback("fact_check")

	if got := testutil.ToFloat64(m.AnalysesTotal.WithLabelValues("text", "flagged")); got != 1 {
		t.Fatalf("flagged = %v", got)
	}
	if got := testutil.ToFloat64(m.AnalysesTotal.WithLabelValues("text", "authentic")); got != 1 {
		t.Fatalf("authentic = %v", got)
	}
	if got := testutil.ToFloat64(m.FactChecksTotal.WithLabelValues("text")); got != 1 {
		t.Fatalf("fact checks = %v", got)
	}
	if got := testutil.ToFloat64(m.FallbacksTotal.WithLabelValues("fact_check")); got != 1 {
		t.Fatalf("fallbacks = %v", got)
	}
}

func TestMetricsMiddlewareUsesRoutePattern(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/v1/{tenant}/analyses", okHandler)
	r.Handle("/metrics", m.Handler())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/acme/analyses", nil))

	if got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/v1/{tenant}/analyses", "200")); got != 1 {
		t.Fatalf("requests = %v", got)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "verifact_http_requests_total") {
		t.Fatalf("metrics output missing counter")
	}
}

func TestMetricsMiddlewareBoundsRouteLabel(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Use(APIKeyAuth(map[string]string{"acme": "k"}))
	r.Get("/v1/{tenant}/analyses", okHandler)

	for i := 0; i < 50; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, fmt.Sprintf("/random-%d", i), nil))
	}
	if got := testutil.CollectAndCount(m.RequestsTotal); got != 1 {
		t.Fatalf("series after unknown paths = %d, want 1", got)
	}

	// rejected before routing, so no pattern either
	for i := 0; i < 50; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, fmt.Sprintf("/v1/t%d/analyses", i), nil))
	}
	if got := testutil.CollectAndCount(m.RequestsTotal); got != 1 {
		t.Fatalf("series after unauthenticated paths = %d, want 1", got)
	}
	if got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", unmatchedRoute, "401")); got != 100 {
		t.Fatalf("unmatched = %v", got)
	}

	for i := 0; i < 5; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(fmt.Sprintf("VERB%d", i), "/x", nil))
	}
	if got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues("OTHER", unmatchedRoute, "401")); got != 5 {
		t.Fatalf("custom methods = %v", got)
	}
}

func TestMetricsBandFollowsScoreBands(t *testing.T) {
	for score, want := range map[int]string{0: "flagged", 49: "flagged", 50: "warning", 69: "warning", 70: "authentic", 100: "authentic"} {
		if got := band(score); got != want {
			t.Fatalf("band(%d) = %s, want %s", score, got, want)
		}
	}
}

func TestValidators(t *testing.T) {
	if err := ValidateContentType("media"); err != nil {
		t.Fatalf("media rejected: %v", err)
	}
	if err := ValidateContentType("video"); err == nil {
		t.Fatal("video accepted")
	}
	if err := ValidateURL("example.com/news"); err != nil {
		t.Fatalf("schemeless URL rejected: %v", err)
	}
	if err := ValidateURL("ftp://example.com"); err == nil {
		t.Fatal("ftp accepted")
	}
	if err := ValidateAnalysisID("not-a-uuid"); err == nil {
		t.Fatal("bad id accepted")
	}
	if got := SanitizeString(" a\x00b\x07c "); got != "abc" {
		t.Fatalf("SanitizeString = %q", got)
	}
	if ValidateLimit(0) != 20 || ValidateLimit(500) != 100 || ValidateDays(-1) != 7 || ValidateDays(9999) != 365 {
		t.Fatal("limit/days clamping broken")
	}
}
