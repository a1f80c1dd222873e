package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"go.uber.org/zap"

	"automan.solutions/console/internal/adminapi"
	"automan.solutions/console/internal/obs"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("02 Jan 2006")
	},
	"formatDateTime": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("02 Jan 2006 15:04")
	},
	"plans":    adminapi.Plans,
	"statuses": adminapi.Statuses,
	"roles":    adminapi.Roles,
	"roleLabel": func(r adminapi.UserRole) string {
		switch r {
		case adminapi.RoleTenantAdmin:
			return "Admin"
		default:
			return "Staff"
		}
	},
}

// parseTemplates builds one template set per screen: the shared layout
// plus that screen's content block. Login renders standalone.
func parseTemplates() (map[string]*template.Template, error) {
	sets := make(map[string]*template.Template)

	login, err := template.New("login").Funcs(templateFuncs).ParseFS(templateFS, "templates/login.html")
	if err != nil {
		return nil, fmt.Errorf("parse login template: %w", err)
	}
	sets["login"] = login

	for _, page := range []string{"dashboard", "tenants", "tenant_users", "subscriptions"} {
		t, err := template.New(page).Funcs(templateFuncs).ParseFS(templateFS,
			"templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", page, err)
		}
		sets[page] = t
	}
	return sets, nil
}

func (h *Handler) render(w http.ResponseWriter, page, root string, data any) {
	t, ok := h.templates[page]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, root, data); err != nil {
		obs.Logger().Error("render template", zap.String("page", page), zap.Error(err))
	}
}
