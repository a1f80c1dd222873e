package web

import (
	"net/http"
	"strings"

	"automan.solutions/console/internal/adminapi"
	"automan.solutions/console/internal/audit"
	"automan.solutions/console/internal/session"
)

type loginScreen struct {
	Error string
	Email string
}

func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	// Already signed in: go straight to the dashboard.
	if s, ok := h.store.Get(r); ok && s.Valid() {
		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
		return
	}
	h.render(w, "login", "login", loginScreen{})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, "login", "login", loginScreen{Error: "Login failed"})
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		h.render(w, "login", "login", loginScreen{Error: "Email and password are required", Email: email})
		return
	}

	result, err := h.api.Login(r.Context(), email, password)
	if err != nil {
		h.render(w, "login", "login", loginScreen{
			Error: adminapi.UserMessage(err, "Login failed"),
			Email: email,
		})
		return
	}

	if err := h.store.Set(w, session.Session{Token: result.Token, Identity: result.Admin}); err != nil {
		h.render(w, "login", "login", loginScreen{Error: "Login failed", Email: email})
		return
	}
	_ = audit.LogEvent(r.Context(), "auth.login", map[string]any{"email": email})
	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

// logout clears both stored session fields; no confirmation required.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if s, ok := h.store.Get(r); ok {
		_ = audit.LogEvent(session.ContextWithSession(r.Context(), s), "auth.logout", nil)
	}
	h.store.Clear(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
