package api

import (
	"net/http"
)

// dashboardHandler serves the hiring dashboard page.
type dashboardHandler struct{}

// newDashboardHandler creates a new dashboard handler.
func newDashboardHandler() *dashboardHandler {
	return &dashboardHandler{}
}

// HandleDashboard handles GET /dashboard requests.
// Returns an HTML page with JavaScript that drives the worksheet API.
func (h *dashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	// Serve embedded dashboard page
	http.ServeFileFS(w, r, dashboardFS, "dashboard.html")
}
