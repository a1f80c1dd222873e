package web

import (
	"net/http"
	"net/url"
	"strings"

	"automan.solutions/console/internal/adminapi"
	"automan.solutions/console/internal/audit"
)

type tenantUsersScreen struct {
	basePage
	TenantID    string
	Users       []adminapi.TenantUser
	ShowModal   bool
	Form        adminapi.TenantUserForm
	SubmitError string
	FormToken   string
}

// tenantUsersPage fetches only after the operator supplies a tenant id;
// an empty id renders the prompt and performs no network call.
func (h *Handler) tenantUsersPage(w http.ResponseWriter, r *http.Request) {
	data := tenantUsersScreen{
		basePage: h.basePage(w, r, "Tenant Users", "tenant-users"),
		TenantID: strings.TrimSpace(r.URL.Query().Get("tenant_id")),
	}

	if data.TenantID != "" {
		users, err := h.api.ListTenantUsers(r.Context(), data.TenantID)
		if err != nil {
			data.LoadError = "Failed to load tenant users"
		} else {
			data.Users = users
		}

		if r.URL.Query().Get("modal") == "create" {
			data.ShowModal = true
			data.Form = adminapi.TenantUserForm{Role: adminapi.RoleTenantStaff}
			data.FormToken = h.gate.Issue()
		}
	}
	h.render(w, "tenant_users", "layout", data)
}

func (h *Handler) createTenantUser(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	tenantID := strings.TrimSpace(r.PostFormValue("tenant_id"))

	// No-op boundary: without a tenant id nothing reaches the network.
	if tenantID == "" {
		http.Redirect(w, r, "/admin/tenant-users", http.StatusSeeOther)
		return
	}

	if !h.gate.Consume(r.PostFormValue("form_token")) {
		http.Redirect(w, r, "/admin/tenant-users?tenant_id="+url.QueryEscape(tenantID), http.StatusSeeOther)
		return
	}

	form := adminapi.TenantUserForm{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
		Role:     adminapi.UserRole(r.PostFormValue("role")),
	}

	if err := form.Validate(); err != nil {
		h.rerenderUserModal(w, r, tenantID, form, err.Error())
		return
	}

	message, err := h.api.CreateTenantUser(r.Context(), tenantID, form)
	if err != nil {
		h.rerenderUserModal(w, r, tenantID, form, adminapi.UserMessage(err, "Failed to create user"))
		return
	}
	if message == "" {
		message = "User created successfully"
	}
	_ = audit.LogEvent(r.Context(), "tenant_user.created", map[string]any{"tenant_id": tenantID, "email": form.Email})
	setFlash(w, message)
	http.Redirect(w, r, "/admin/tenant-users?tenant_id="+url.QueryEscape(tenantID), http.StatusSeeOther)
}

func (h *Handler) rerenderUserModal(w http.ResponseWriter, r *http.Request, tenantID string, form adminapi.TenantUserForm, submitErr string) {
	data := tenantUsersScreen{
		basePage:    h.basePage(w, r, "Tenant Users", "tenant-users"),
		TenantID:    tenantID,
		ShowModal:   true,
		Form:        form,
		SubmitError: submitErr,
		FormToken:   h.gate.Issue(),
	}
	users, err := h.api.ListTenantUsers(r.Context(), tenantID)
	if err != nil {
		data.LoadError = "Failed to load tenant users"
	} else {
		data.Users = users
	}
	h.render(w, "tenant_users", "layout", data)
}
