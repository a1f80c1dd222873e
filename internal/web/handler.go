// Package web is the console's HTTP surface: a server-rendered shell with
// a persistent sidebar, a login screen, and one screen per resource. Every
// screen follows the same shape — fetch the collection, render a table,
// accept a modal form post, call the admin API, redirect to re-fetch.
package web

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"automan.solutions/console/internal/adminapi"
	"automan.solutions/console/internal/obs"
	"automan.solutions/console/internal/session"
)

// Handler owns the injected collaborators. The session store is passed by
// reference to the route guard and the screens, never read as ambient
// global state.
type Handler struct {
	store     session.Store
	api       *adminapi.Client
	gate      *Gate
	templates map[string]*template.Template
	version   string
}

// Options tunes the request-shaping middleware.
type Options struct {
	LoginRatePerMin int
	LoginRateBurst  int
	MaxBodyBytes    int64
}

func NewHandler(store session.Store, api *adminapi.Client, version string) (*Handler, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &Handler{
		store:     store,
		api:       api,
		gate:      NewGate(),
		templates: templates,
		version:   version,
	}, nil
}

// Routes assembles the console router. Protected screens sit behind the
// route guard; health, metrics and login stay public.
func (h *Handler) Routes(opts Options) http.Handler {
	if opts.LoginRatePerMin <= 0 {
		opts.LoginRatePerMin = 30
	}
	if opts.LoginRateBurst <= 0 {
		opts.LoginRateBurst = 10
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 2 << 20
	}

	r := chi.NewRouter()

	r.Get("/healthz", h.healthz)
	r.Get("/readyz", h.readyz)
	r.Method(http.MethodGet, "/metrics", obs.Handler())

	r.Get("/login", h.loginPage)
	r.Method(http.MethodPost, "/login",
		RateLimit(http.HandlerFunc(h.login), opts.LoginRatePerMin, opts.LoginRateBurst))
	r.Post("/logout", h.logout)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(RequireSession(h.store))

		r.Get("/dashboard", h.dashboard)

		r.Get("/tenants", h.tenantsPage)
		r.Post("/tenants", h.createTenant)
		r.Post("/tenants/{id}", h.updateTenant)
		r.Post("/tenants/{id}/delete", h.deleteTenant)

		r.Get("/tenant-users", h.tenantUsersPage)
		r.Post("/tenant-users", h.createTenantUser)

		r.Get("/subscriptions", h.subscriptionsPage)
		r.Post("/subscriptions", h.createSubscription)
	})

	var handler http.Handler = r
	handler = MaxBodyBytes(handler, opts.MaxBodyBytes)
	handler = SecurityHeaders(handler)
	handler = Logging(handler)
	return obs.Instrument(handler)
}

// basePage carries the shell fields every screen shares.
type basePage struct {
	Title     string
	Active    string
	AdminName string
	Flash     string
	LoadError string
}

func (h *Handler) basePage(w http.ResponseWriter, r *http.Request, title, active string) basePage {
	p := basePage{Title: title, Active: active, Flash: takeFlash(w, r)}
	if s, ok := session.FromContext(r.Context()); ok {
		p.AdminName = s.Identity.FullName
	}
	return p
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	fmt.Fprintf(w, `{"status":"ok","service":"admin-console","version":%q}`, h.version)
}

func (h *Handler) readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := h.api.Ping(ctx); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprintf(w, `{"status":"not_ready","error":%q}`, err.Error())
		return
	}
	fmt.Fprint(w, `{"status":"ready"}`)
}
