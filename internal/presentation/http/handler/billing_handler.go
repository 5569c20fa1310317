package handler

import (
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/salonhq/salon-api/internal/application/service"
	"github.com/salonhq/salon-api/internal/domain/enum"
	"github.com/salonhq/salon-api/internal/domain/repository"
	"github.com/salonhq/salon-api/internal/presentation/http/dto/request"
	"github.com/salonhq/salon-api/internal/presentation/http/dto/response"
	"github.com/salonhq/salon-api/pkg/pagination"
)

// BillingHandler handles billing finalization and invoice reads
type BillingHandler struct {
	billingService *service.BillingService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billingService *service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// Finalize handles finalizing a billing session into an invoice
func (h *BillingHandler) Finalize(c *gin.Context) {
	var req request.FinalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	lines := make([]service.LineInput, len(req.Lines))
	for i, line := range req.Lines {
		lines[i] = service.LineInput{
			ItemType:      enum.ItemType(line.ItemType),
			ItemID:        line.ItemID,
			Quantity:      line.Quantity,
			UnitPrice:     toCents(line.UnitPrice),
			Subtotal:      toCents(line.Subtotal),
			AppointmentID: line.AppointmentID,
		}
	}

	invoice, err := h.billingService.Finalize(c.Request.Context(), &service.FinalizeInput{
		ClientID:      req.ClientID,
		PaymentMethod: req.PaymentMethod,
		Lines:         lines,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}

// GetInvoice handles getting a single invoice with its lines
func (h *BillingHandler) GetInvoice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.billingService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// ListInvoices handles listing invoices
func (h *BillingHandler) ListInvoices(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.InvoiceFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
	}
	params.Pagination.Validate()

	if clientIDStr := c.Query("client_id"); clientIDStr != "" {
		if clientID, err := uuid.Parse(clientIDStr); err == nil {
			params.ClientID = &clientID
		}
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	result, err := h.billingService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// toCents converts a decimal currency amount to cents
func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
