package obs

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestInstrumentCountsByStatus(t *testing.T) {
	handler := Instrument(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		// implicit 200: WriteHeader is never called
		_, _ = w.Write([]byte("ok"))
	}))

	okBefore := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/admin/dashboard", "200"))
	missBefore := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/missing", "404"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/admin/dashboard", "200")) - okBefore; got != 1 {
		t.Fatalf("200 series grew by %v, want 1", got)
	}
	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/missing", "404")) - missBefore; got != 1 {
		t.Fatalf("404 series grew by %v, want 1", got)
	}
	if got := testutil.ToFloat64(httpInFlight); got != 0 {
		t.Fatalf("in-flight gauge = %v after requests finished, want 0", got)
	}
}

func TestUpstreamTransportLabelsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	before := testutil.ToFloat64(upstreamRequestsTotal.WithLabelValues("GET", "502"))

	client := &http.Client{Transport: UpstreamTransport(nil)}
	resp, err := client.Get(srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", resp.StatusCode)
	}

	if got := testutil.ToFloat64(upstreamRequestsTotal.WithLabelValues("GET", "502")) - before; got != 1 {
		t.Fatalf("502 series grew by %v, want 1", got)
	}
}

func TestUpstreamTransportLabelsTransportErrors(t *testing.T) {
	boom := errors.New("connection refused")
	rt := UpstreamTransport(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return nil, boom
	}))

	before := testutil.ToFloat64(upstreamRequestsTotal.WithLabelValues("POST", "error"))

	req := httptest.NewRequest(http.MethodPost, "http://api.internal/tenants", nil)
	if _, err := rt.RoundTrip(req); !errors.Is(err, boom) {
		t.Fatalf("RoundTrip error = %v, want %v", err, boom)
	}

	if got := testutil.ToFloat64(upstreamRequestsTotal.WithLabelValues("POST", "error")) - before; got != 1 {
		t.Fatalf("error series grew by %v, want 1", got)
	}
}

func TestInitBuildInfo(t *testing.T) {
	InitBuildInfo("1.3.0-test", "abc1234")

	if got := testutil.ToFloat64(buildInfo.WithLabelValues("1.3.0-test", "abc1234")); got != 1 {
		t.Fatalf("build info gauge = %v, want 1", got)
	}

	// a second call must not panic on re-registration
	InitBuildInfo("1.3.0-test", "abc1234")
}
