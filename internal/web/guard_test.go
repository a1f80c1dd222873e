package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"automan.solutions/console/internal/session"
)

// The guard only needs the narrow Store interface, so the in-memory fake
// substitutes for the cookie store here.

func TestRequireSessionWithFakeStore(t *testing.T) {
	store := session.NewMemStore()
	var sawSession session.Session
	handler := RequireSession(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawSession, _ = session.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect without session, got %d", rr.Code)
	}
	if got := rr.Header().Get("Location"); got != "/login" {
		t.Fatalf("expected /login, got %q", got)
	}

	want := session.Session{Token: "t1", Identity: session.Identity{FullName: "Root"}}
	if err := store.Set(nil, want); err != nil {
		t.Fatalf("set: %v", err)
	}
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 with session, got %d", rr.Code)
	}
	if sawSession != want {
		t.Fatalf("handler saw %+v, want %+v", sawSession, want)
	}
}

func TestRequireSessionRejectsPartialSession(t *testing.T) {
	store := session.NewMemStore()
	handler := RequireSession(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Token without identity is not a session.
	_ = store.Set(nil, session.Session{Token: "t1"})

	req := httptest.NewRequest(http.MethodGet, "/admin/tenants", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect for partial session, got %d", rr.Code)
	}
}
