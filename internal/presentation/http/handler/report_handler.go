package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/salonhq/salon-api/internal/application/service"
	"github.com/salonhq/salon-api/internal/presentation/http/dto/response"
)

// ReportHandler handles report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetPeriodReport builds the report for a date range given as
// start_date/end_date query parameters in YYYY-MM-DD format
func (h *ReportHandler) GetPeriodReport(c *gin.Context) {
	report, err := h.reportService.GetPeriodReport(c.Request.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report generated successfully", report)
}
