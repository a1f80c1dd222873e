package web

import (
	"net/http"

	"automan.solutions/console/internal/session"
)

// RequireSession gates every protected screen. The check is purely local:
// token and identity must both be present in the store, otherwise the
// render is replaced with a redirect to the login screen. No round trip
// validates the token here; the remote service enforces that per request.
func RequireSession(store session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := store.Get(r)
			if !ok || !s.Valid() {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r.WithContext(session.ContextWithSession(r.Context(), s)))
		})
	}
}
