package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockflow-dashboard/internal/application/service"
	"github.com/sangkips/stockflow-dashboard/internal/domain/entity"
	"github.com/sangkips/stockflow-dashboard/internal/presentation/http/dto/response"
)

// DashboardHandler serves the landing page
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

type dashboardView struct {
	User  entity.User            `json:"user"`
	Stats *entity.DashboardStats `json:"stats"`
}

// GetStats returns the signed-in operator with today's store figures
func (h *DashboardHandler) GetStats(c *gin.Context) {
	sess, ok := GetSession(c)
	if !ok {
		return
	}

	stats, err := h.dashboardService.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard stats retrieved successfully", dashboardView{User: sess.User(), Stats: stats})
}
