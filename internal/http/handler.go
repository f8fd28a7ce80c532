package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/delivery-billing/internal/http/middleware"
	"github.com/nurpe/delivery-billing/internal/service"
)

type Handler struct {
	billing *service.BillingService
	log     zerolog.Logger
}

func NewHandler(billing *service.BillingService, log zerolog.Logger) *Handler {
	return &Handler{billing: billing, log: log}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := router.Group("/")
	protected.Use(authMiddleware)
	protected.GET("/customers/:id/calendar", h.monthCalendar)
	protected.GET("/customers/:id/calendar/export", h.exportCalendar)
	protected.GET("/customers/:id/invoices", h.listInvoices)
	protected.POST("/invoices/preview", h.previewInvoice)
	protected.POST("/invoices", h.issueInvoice)
	protected.GET("/invoices/:id/pdf", h.invoicePDF)
	protected.POST("/courses/:id/invoices", h.issueCourseInvoices)
}

func (h *Handler) monthCalendar(c *gin.Context) {
	input, ok := h.calendarInput(c)
	if !ok {
		return
	}

	result, err := h.billing.MonthCalendar(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) exportCalendar(c *gin.Context) {
	input, ok := h.calendarInput(c)
	if !ok {
		return
	}

	result, err := h.billing.ExportCalendar(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", result.Content)
}

func (h *Handler) calendarInput(c *gin.Context) (service.CalendarInput, bool) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return service.CalendarInput{}, false
	}

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
		return service.CalendarInput{}, false
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return service.CalendarInput{}, false
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return service.CalendarInput{}, false
	}

	return service.CalendarInput{
		CustomerID: customerID,
		Year:       year,
		Month:      time.Month(month),
		Principal:  principal,
	}, true
}

type invoiceRequest struct {
	CustomerID  string `json:"customer_id" binding:"required"`
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
	IssueDate   string `json:"issue_date"`
}

func (h *Handler) previewInvoice(c *gin.Context) {
	input, ok := h.invoiceInput(c, false)
	if !ok {
		return
	}

	draft, err := h.billing.PreviewInvoice(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *Handler) issueInvoice(c *gin.Context) {
	input, ok := h.invoiceInput(c, true)
	if !ok {
		return
	}

	saved, err := h.billing.IssueInvoice(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (h *Handler) invoiceInput(c *gin.Context, requireIssueDate bool) (service.InvoiceInput, bool) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return service.InvoiceInput{}, false
	}

	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return service.InvoiceInput{}, false
	}

	customerID, err := uuid.Parse(strings.TrimSpace(req.CustomerID))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer_id"})
		return service.InvoiceInput{}, false
	}

	start, err := parseDate(req.PeriodStart)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period_start"})
		return service.InvoiceInput{}, false
	}
	end, err := parseDate(req.PeriodEnd)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period_end"})
		return service.InvoiceInput{}, false
	}

	input := service.InvoiceInput{
		CustomerID:  customerID,
		PeriodStart: start,
		PeriodEnd:   end,
		Principal:   principal,
	}

	if req.IssueDate != "" {
		issueDate, err := parseDate(req.IssueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid issue_date"})
			return service.InvoiceInput{}, false
		}
		input.IssueDate = issueDate
	} else if requireIssueDate {
		// The engine never reads a clock; request time stands in when the
		// caller leaves the issue date out.
		input.IssueDate = time.Now().UTC()
	}

	return input, true
}

func (h *Handler) listInvoices(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
		return
	}

	invoices, err := h.billing.ListInvoices(c.Request.Context(), customerID, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

func (h *Handler) invoicePDF(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice id"})
		return
	}

	result, err := h.billing.InvoicePDF(c.Request.Context(), invoiceID, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", result.Content)
}

type courseInvoiceRequest struct {
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
	IssueDate   string `json:"issue_date"`
}

func (h *Handler) issueCourseInvoices(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
		return
	}

	var req courseInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := parseDate(req.PeriodStart)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period_start"})
		return
	}
	end, err := parseDate(req.PeriodEnd)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period_end"})
		return
	}

	issueDate := time.Now().UTC()
	if req.IssueDate != "" {
		issueDate, err = parseDate(req.IssueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid issue_date"})
			return
		}
	}

	batch, err := h.billing.IssueCourseInvoices(c.Request.Context(), service.CourseInvoiceInput{
		CourseID:    courseID,
		PeriodStart: start,
		PeriodEnd:   end,
		IssueDate:   issueDate,
		Principal:   principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, batch)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("billing request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}
