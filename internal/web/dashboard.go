package web

import (
	"net/http"

	"automan.solutions/console/internal/adminapi"
)

type dashboardScreen struct {
	basePage
	Summary adminapi.DashboardSummary
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	data := dashboardScreen{basePage: h.basePage(w, r, "Dashboard", "dashboard")}

	summary, err := h.api.DashboardSummary(r.Context())
	if err != nil {
		data.LoadError = "Failed to load dashboard data."
	} else {
		data.Summary = summary
	}
	h.render(w, "dashboard", "layout", data)
}
