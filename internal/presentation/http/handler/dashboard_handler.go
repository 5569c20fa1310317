package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/salonhq/salon-api/internal/application/service"
	"github.com/salonhq/salon-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetMetrics returns the dashboard header numbers
func (h *DashboardHandler) GetMetrics(c *gin.Context) {
	metrics, err := h.dashboardService.GetMetrics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard metrics retrieved successfully", metrics)
}

// GetUpcoming returns today's remaining appointments
func (h *DashboardHandler) GetUpcoming(c *gin.Context) {
	upcoming, err := h.dashboardService.GetUpcoming(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Upcoming appointments retrieved successfully", upcoming)
}

// GetNotifications returns low stock and overdue appointment alerts
func (h *DashboardHandler) GetNotifications(c *gin.Context) {
	notifications, err := h.dashboardService.GetNotifications(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Notifications retrieved successfully", notifications)
}
