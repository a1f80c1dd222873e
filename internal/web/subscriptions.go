package web

import (
	"net/http"

	"automan.solutions/console/internal/adminapi"
	"automan.solutions/console/internal/audit"
)

type subscriptionsScreen struct {
	basePage
	Subscriptions []adminapi.Subscription
	ShowModal     bool
	Form          adminapi.SubscriptionForm
	SubmitError   string
	FormToken     string
}

func (h *Handler) subscriptionsPage(w http.ResponseWriter, r *http.Request) {
	data := subscriptionsScreen{basePage: h.basePage(w, r, "Subscriptions", "subscriptions")}

	subs, err := h.api.ListSubscriptions(r.Context())
	if err != nil {
		data.LoadError = "Failed to load subscriptions"
	} else {
		data.Subscriptions = subs
	}

	if r.URL.Query().Get("modal") == "create" {
		data.ShowModal = true
		data.FormToken = h.gate.Issue()
	}
	h.render(w, "subscriptions", "layout", data)
}

func (h *Handler) createSubscription(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	if !h.gate.Consume(r.PostFormValue("form_token")) {
		http.Redirect(w, r, "/admin/subscriptions", http.StatusSeeOther)
		return
	}

	form := adminapi.SubscriptionForm{
		TenantID:  r.PostFormValue("tenant_id"),
		PlanName:  r.PostFormValue("plan_name"),
		Price:     r.PostFormValue("price"),
		StartDate: r.PostFormValue("start_date"),
		EndDate:   r.PostFormValue("end_date"),
	}

	if err := form.Validate(); err != nil {
		h.rerenderSubscriptionModal(w, r, form, err.Error())
		return
	}

	message, err := h.api.CreateSubscription(r.Context(), form)
	if err != nil {
		h.rerenderSubscriptionModal(w, r, form, adminapi.UserMessage(err, "Failed to create subscription"))
		return
	}
	if message == "" {
		message = "Subscription created successfully"
	}
	_ = audit.LogEvent(r.Context(), "subscription.created", map[string]any{"tenant_id": form.TenantID, "plan": form.PlanName})
	setFlash(w, message)
	http.Redirect(w, r, "/admin/subscriptions", http.StatusSeeOther)
}

func (h *Handler) rerenderSubscriptionModal(w http.ResponseWriter, r *http.Request, form adminapi.SubscriptionForm, submitErr string) {
	data := subscriptionsScreen{
		basePage:    h.basePage(w, r, "Subscriptions", "subscriptions"),
		ShowModal:   true,
		Form:        form,
		SubmitError: submitErr,
		FormToken:   h.gate.Issue(),
	}
	subs, err := h.api.ListSubscriptions(r.Context())
	if err != nil {
		data.LoadError = "Failed to load subscriptions"
	} else {
		data.Subscriptions = subs
	}
	h.render(w, "subscriptions", "layout", data)
}
