package web

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"automan.solutions/console/internal/adminapi"
	"automan.solutions/console/internal/audit"
)

type tenantsScreen struct {
	basePage
	Tenants         []adminapi.Tenant
	ShowModal       bool
	EditingID       int64
	Form            adminapi.TenantForm
	SubmitError     string
	FormToken       string
	ConfirmDeleteID int64
}

func (h *Handler) tenantsPage(w http.ResponseWriter, r *http.Request) {
	data := tenantsScreen{basePage: h.basePage(w, r, "Tenants", "tenants")}

	tenants, err := h.api.ListTenants(r.Context())
	if err != nil {
		data.LoadError = "Failed to load tenants"
	} else {
		data.Tenants = tenants
	}

	switch r.URL.Query().Get("modal") {
	case "create":
		data.ShowModal = true
		data.Form = adminapi.DefaultTenantForm()
	case "edit":
		id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
		if err == nil {
			for _, t := range data.Tenants {
				if t.ID == id {
					data.ShowModal = true
					data.EditingID = id
					data.Form = adminapi.TenantFormFromTenant(t)
					break
				}
			}
		}
	}

	if raw := r.URL.Query().Get("confirm_delete"); raw != "" && !data.ShowModal {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			data.ConfirmDeleteID = id
		}
	}

	if data.ShowModal || data.ConfirmDeleteID != 0 {
		data.FormToken = h.gate.Issue()
	}
	h.render(w, "tenants", "layout", data)
}

func (h *Handler) createTenant(w http.ResponseWriter, r *http.Request) {
	h.saveTenant(w, r, 0)
}

func (h *Handler) updateTenant(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.NotFound(w, r)
		return
	}
	h.saveTenant(w, r, id)
}

func (h *Handler) saveTenant(w http.ResponseWriter, r *http.Request, id int64) {
	form, token, err := parseTenantForm(r)
	if err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	// Duplicate submission of an already-spent form: discard, re-fetch.
	if !h.gate.Consume(token) {
		http.Redirect(w, r, "/admin/tenants", http.StatusSeeOther)
		return
	}

	if err := form.Validate(); err != nil {
		h.rerenderTenantModal(w, r, id, form, err.Error())
		return
	}

	if id == 0 {
		err = h.api.CreateTenant(r.Context(), form)
	} else {
		err = h.api.UpdateTenant(r.Context(), id, form)
	}
	if err != nil {
		h.rerenderTenantModal(w, r, id, form, adminapi.UserMessage(err, "Operation failed"))
		return
	}

	if id == 0 {
		_ = audit.LogEvent(r.Context(), "tenant.created", map[string]any{"name": form.Name})
		setFlash(w, "Tenant created successfully")
	} else {
		_ = audit.LogEvent(r.Context(), "tenant.updated", map[string]any{"tenant_id": id, "name": form.Name})
		setFlash(w, "Tenant updated successfully")
	}
	http.Redirect(w, r, "/admin/tenants", http.StatusSeeOther)
}

// rerenderTenantModal keeps the modal open with the buffer preserved and
// the error inline, over a freshly fetched list.
func (h *Handler) rerenderTenantModal(w http.ResponseWriter, r *http.Request, id int64, form adminapi.TenantForm, submitErr string) {
	data := tenantsScreen{
		basePage:    h.basePage(w, r, "Tenants", "tenants"),
		ShowModal:   true,
		EditingID:   id,
		Form:        form,
		SubmitError: submitErr,
		FormToken:   h.gate.Issue(),
	}
	tenants, err := h.api.ListTenants(r.Context())
	if err != nil {
		data.LoadError = "Failed to load tenants"
	} else {
		data.Tenants = tenants
	}
	h.render(w, "tenants", "layout", data)
}

func (h *Handler) deleteTenant(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	if !h.gate.Consume(r.PostFormValue("form_token")) {
		http.Redirect(w, r, "/admin/tenants", http.StatusSeeOther)
		return
	}

	if err := h.api.DeleteTenant(r.Context(), id); err != nil {
		setFlash(w, adminapi.UserMessage(err, "Failed to delete tenant"))
	} else {
		_ = audit.LogEvent(r.Context(), "tenant.deleted", map[string]any{"tenant_id": id})
		setFlash(w, "Tenant deleted successfully")
	}
	http.Redirect(w, r, "/admin/tenants", http.StatusSeeOther)
}

// parseTenantForm maps the multipart request onto the typed form buffer.
func parseTenantForm(r *http.Request) (adminapi.TenantForm, string, error) {
	if err := r.ParseMultipartForm(2 << 20); err != nil {
		return adminapi.TenantForm{}, "", err
	}
	form := adminapi.TenantForm{
		Name:              r.PostFormValue("name"),
		Email:             r.PostFormValue("email"),
		ThemeColor:        r.PostFormValue("theme_color"),
		Plan:              adminapi.Plan(r.PostFormValue("plan")),
		SubscriptionStart: r.PostFormValue("subscription_start"),
		SubscriptionEnd:   r.PostFormValue("subscription_end"),
		Status:            adminapi.TenantStatus(r.PostFormValue("status")),
	}

	file, header, err := r.FormFile("logo")
	switch {
	case err == nil:
		defer file.Close()
		content, readErr := io.ReadAll(file)
		if readErr != nil {
			return adminapi.TenantForm{}, "", readErr
		}
		if len(content) > 0 {
			form.Logo = &adminapi.LogoUpload{Filename: header.Filename, Content: content}
		}
	case errors.Is(err, http.ErrMissingFile):
		// логотип не прикреплён — это нормальный случай
	default:
		return adminapi.TenantForm{}, "", err
	}

	return form, r.PostFormValue("form_token"), nil
}
