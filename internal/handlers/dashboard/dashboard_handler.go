// internal/handlers/dashboard/dashboard_handler.go
package dashboard

import (
	"net/http"

	"decora-admin/internal/pkg/response"
	service "decora-admin/internal/service/dashboard"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService *service.Service
}

func NewDashboardHandler(dashboardService *service.Service) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Stats returns the landing-page counters.
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to compute stats", err)
		return
	}

	response.Success(c, http.StatusOK, "stats retrieved", stats)
}
