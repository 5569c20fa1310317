package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/salonhq/salon-api/internal/application/service"
	"github.com/salonhq/salon-api/internal/domain/enum"
	"github.com/salonhq/salon-api/internal/domain/repository"
	"github.com/salonhq/salon-api/internal/presentation/http/dto/response"
	"github.com/salonhq/salon-api/pkg/pagination"
)

// AppointmentHandler handles appointment-related HTTP requests
type AppointmentHandler struct {
	appointmentService *service.AppointmentService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(appointmentService *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

// List handles listing appointments
func (h *AppointmentHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.AppointmentFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}
	params.Pagination.Validate()

	if stateStr := c.Query("state"); stateStr != "" {
		state := enum.AppointmentState(stateStr)
		if state.Valid() {
			params.State = &state
		}
	}

	if clientIDStr := c.Query("client_id"); clientIDStr != "" {
		if clientID, err := uuid.Parse(clientIDStr); err == nil {
			params.ClientID = &clientID
		}
	}

	result, err := h.appointmentService.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Appointments retrieved successfully", result)
}

// Create handles booking an appointment
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req struct {
		ClientID  uuid.UUID `json:"client_id" binding:"required"`
		ServiceID uuid.UUID `json:"service_id" binding:"required"`
		Date      string    `json:"date" binding:"required"`
		Time      string    `json:"time" binding:"required"`
		Notes     *string   `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	appointment, err := h.appointmentService.Create(c.Request.Context(), &service.CreateAppointmentInput{
		ClientID:  req.ClientID,
		ServiceID: req.ServiceID,
		UserID:    GetUserID(c),
		Date:      req.Date,
		Time:      req.Time,
		Notes:     req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Appointment created successfully", appointment)
}

// Get handles getting a single appointment
func (h *AppointmentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid appointment ID")
		return
	}

	appointment, err := h.appointmentService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Appointment retrieved successfully", appointment)
}

// Cancel handles canceling a pending appointment
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid appointment ID")
		return
	}

	appointment, err := h.appointmentService.Cancel(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Appointment cancelled successfully", appointment)
}
