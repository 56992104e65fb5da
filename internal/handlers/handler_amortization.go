package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	portssvc "github.com/SscSPs/amortization_manager/internal/core/ports/services"
	"github.com/SscSPs/amortization_manager/internal/dto"
	"github.com/SscSPs/amortization_manager/internal/middleware"
	"github.com/SscSPs/amortization_manager/internal/utils/dates"
	"github.com/gin-gonic/gin"
)

// amortizationHandler handles HTTP requests related to amortizations.
type amortizationHandler struct {
	amortizationService portssvc.AmortizationSvcFacade
	now                 func() time.Time
}

// newAmortizationHandler creates a new amortizationHandler.
func newAmortizationHandler(as portssvc.AmortizationSvcFacade, now func() time.Time) *amortizationHandler {
	if now == nil {
		now = time.Now
	}
	return &amortizationHandler{
		amortizationService: as,
		now:                 now,
	}
}

// registerAmortizationRoutes registers routes related to amortizations.
func registerAmortizationRoutes(rg *gin.RouterGroup, amortizationService portssvc.AmortizationSvcFacade, now func() time.Time) {
	h := newAmortizationHandler(amortizationService, now)

	amortizations := rg.Group("/amortizations")
	{
		amortizations.GET("", h.listAmortizations)
		amortizations.POST("", h.createAmortization)
		amortizations.GET("/reports/summary", h.getSummary)
		amortizations.GET("/reports/aging", h.getAgingReport)
		amortizations.GET("/:id", h.getAmortization)
		amortizations.PUT("/:id", h.updateAmortization)
		amortizations.DELETE("/:id", h.deleteAmortization)
		amortizations.GET("/:id/installments", h.listInstallments)
		amortizations.POST("/:id/installments/:number/pay", h.recordPayment)
		amortizations.POST("/:id/generate-installments", h.generateInstallments)
	}
}

func (h *amortizationHandler) today() time.Time {
	return dates.Day(h.now())
}

// queryBool reads an optional boolean query parameter.
func queryBool(c *gin.Context, name string, def bool) (bool, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("query parameter %s must be a boolean", name)
	}
	return v, nil
}

// requestContext returns the request logger and the authenticated user, aborting with 401 when there is none.
func requestContext(c *gin.Context) (*slog.Logger, string, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return logger, "", false
	}
	return logger, userID, true
}

// listAmortizations godoc
// @Summary List amortizations
// @Description Lists amortizations with filters, sorting and pagination. Statuses reflect today's date.
// @Tags amortizations
// @Produce json
// @Param company_id query string false "Company ID"
// @Param entity_id query string false "Entity ID"
// @Param status query string false "Status" Enums(active, completed, overdue, suspended, cancelled)
// @Param amortization_method query string false "Method" Enums(linear, french, german, decreasing)
// @Param frequency query string false "Frequency" Enums(monthly, quarterly, biannual, annual)
// @Param date_from query string false "Start date from (YYYY-MM-DD)"
// @Param date_to query string false "Start date to (YYYY-MM-DD)"
// @Param amount_from query string false "Minimum total amount"
// @Param amount_to query string false "Maximum total amount"
// @Param overdue_only query bool false "Only amortizations with overdue installments"
// @Param include_inactive query bool false "Include soft deleted amortizations"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size (max 100)" default(20)
// @Param sort_by query string false "Sort field" default(created_at)
// @Param sort_order query string false "Sort order" Enums(asc, desc) default(desc)
// @Success 200 {object} dto.ListAmortizationsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list amortizations"
// @Security BearerAuth
// @Router /amortizations [get]
func (h *amortizationHandler) listAmortizations(c *gin.Context) {
	logger, _, ok := requestContext(c)
	if !ok {
		return
	}

	var params dto.ListAmortizationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListAmortizations", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.amortizationService.ListAmortizations(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list amortizations")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// createAmortization godoc
// @Summary Create an amortization
// @Description Creates an amortization for a company entity and, by default, generates its installment schedule
// @Tags amortizations
// @Accept json
// @Produce json
// @Param amortization body dto.CreateAmortizationRequest true "Amortization terms"
// @Param auto_generate_installments query bool false "Generate the schedule" default(true)
// @Success 201 {object} dto.AmortizationResponse
// @Failure 400 {object} map[string]string "Invalid input or schedule parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Company or entity not found"
// @Failure 409 {object} map[string]string "Reference already in use"
// @Failure 500 {object} map[string]string "Failed to create amortization"
// @Security BearerAuth
// @Router /amortizations [post]
func (h *amortizationHandler) createAmortization(c *gin.Context) {
	logger, userID, ok := requestContext(c)
	if !ok {
		return
	}

	autoGenerate, err := queryBool(c, "auto_generate_installments", true)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req dto.CreateAmortizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAmortization", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("company_id", req.CompanyID), slog.String("reference", req.Reference))
	logger.Info("Received request to create amortization")

	amortization, err := h.amortizationService.CreateAmortization(c.Request.Context(), req, autoGenerate, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create amortization")
		return
	}

	logger.Info("Amortization created successfully", slog.String("amortization_id", amortization.ID))
	c.JSON(http.StatusCreated, dto.ToAmortizationResponse(amortization, h.today()))
}

// getAmortization godoc
// @Summary Get an amortization
// @Description Retrieves an amortization, with its installments unless include_installments is false
// @Tags amortizations
// @Produce json
// @Param id path string true "Amortization ID"
// @Param include_installments query bool false "Include installments" default(true)
// @Success 200 {object} dto.AmortizationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Amortization not found"
// @Failure 500 {object} map[string]string "Failed to retrieve amortization"
// @Security BearerAuth
// @Router /amortizations/{id} [get]
func (h *amortizationHandler) getAmortization(c *gin.Context) {
	logger, _, ok := requestContext(c)
	if !ok {
		return
	}
	amortizationID := c.Param("id")

	includeInstallments, err := queryBool(c, "include_installments", true)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	amortization, err := h.amortizationService.GetAmortization(c.Request.Context(), amortizationID, includeInstallments)
	if err != nil {
		respondWithError(c, logger.With(slog.String("amortization_id", amortizationID)), err, "Failed to retrieve amortization")
		return
	}
	c.JSON(http.StatusOK, dto.ToAmortizationResponse(amortization, h.today()))
}

// updateAmortization godoc
// @Summary Update an amortization
// @Description Changes administrative fields and optionally regenerates the schedule
// @Tags amortizations
// @Accept json
// @Produce json
// @Param id path string true "Amortization ID"
// @Param amortization body dto.UpdateAmortizationRequest true "Fields to change"
// @Param recalculate_installments query bool false "Regenerate the schedule" default(false)
// @Success 200 {object} dto.AmortizationResponse
// @Failure 400 {object} map[string]string "Invalid input or status transition"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Amortization not found"
// @Failure 409 {object} map[string]string "Schedule has payments or concurrent modification"
// @Failure 500 {object} map[string]string "Failed to update amortization"
// @Security BearerAuth
// @Router /amortizations/{id} [put]
func (h *amortizationHandler) updateAmortization(c *gin.Context) {
	logger, userID, ok := requestContext(c)
	if !ok {
		return
	}
	amortizationID := c.Param("id")
	logger = logger.With(slog.String("amortization_id", amortizationID))

	recalculate, err := queryBool(c, "recalculate_installments", false)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req dto.UpdateAmortizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAmortization", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	amortization, err := h.amortizationService.UpdateAmortization(c.Request.Context(), amortizationID, req, recalculate, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update amortization")
		return
	}

	logger.Info("Amortization updated", slog.Bool("recalculated", recalculate))
	c.JSON(http.StatusOK, dto.ToAmortizationResponse(amortization, h.today()))
}

// deleteAmortization godoc
// @Summary Delete an amortization
// @Description Soft deletes an amortization, or removes it with its installments when force_delete is set
// @Tags amortizations
// @Param id path string true "Amortization ID"
// @Param force_delete query bool false "Physically delete" default(false)
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Amortization not found"
// @Failure 500 {object} map[string]string "Failed to delete amortization"
// @Security BearerAuth
// @Router /amortizations/{id} [delete]
func (h *amortizationHandler) deleteAmortization(c *gin.Context) {
	logger, userID, ok := requestContext(c)
	if !ok {
		return
	}
	amortizationID := c.Param("id")
	logger = logger.With(slog.String("amortization_id", amortizationID))

	force, err := queryBool(c, "force_delete", false)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.amortizationService.DeleteAmortization(c.Request.Context(), amortizationID, force, userID); err != nil {
		respondWithError(c, logger, err, "Failed to delete amortization")
		return
	}

	logger.Info("Amortization deleted", slog.Bool("force", force))
	c.Status(http.StatusNoContent)
}

// listInstallments godoc
// @Summary List installments
// @Description Lists the installments of an amortization, optionally filtered
// @Tags amortizations
// @Produce json
// @Param id path string true "Amortization ID"
// @Param status query string false "Installment status" Enums(pending, partial, paid, overdue)
// @Param overdue_only query bool false "Only past-due unpaid installments"
// @Success 200 {array} dto.InstallmentResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Amortization not found"
// @Failure 500 {object} map[string]string "Failed to list installments"
// @Security BearerAuth
// @Router /amortizations/{id}/installments [get]
func (h *amortizationHandler) listInstallments(c *gin.Context) {
	logger, _, ok := requestContext(c)
	if !ok {
		return
	}
	amortizationID := c.Param("id")

	var params dto.ListInstallmentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	installments, err := h.amortizationService.ListInstallments(c.Request.Context(), amortizationID, params)
	if err != nil {
		respondWithError(c, logger.With(slog.String("amortization_id", amortizationID)), err, "Failed to list installments")
		return
	}
	c.JSON(http.StatusOK, dto.ToInstallmentResponses(installments, h.today()))
}

// recordPayment godoc
// @Summary Record an installment payment
// @Description Applies a payment to one installment and optionally posts it to SAP.
// @Description A failed SAP posting does not undo the payment; the response then carries a warning.
// @Tags amortizations
// @Accept json
// @Produce json
// @Param id path string true "Amortization ID"
// @Param number path int true "Installment number"
// @Param payment body dto.RecordPaymentRequest true "Payment"
// @Success 200 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Invalid payment"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Amortization or installment not found"
// @Failure 409 {object} map[string]string "Concurrent modification"
// @Failure 422 {object} map[string]string "Payment exceeds outstanding amount"
// @Failure 500 {object} map[string]string "Failed to record payment"
// @Security BearerAuth
// @Router /amortizations/{id}/installments/{number}/pay [post]
func (h *amortizationHandler) recordPayment(c *gin.Context) {
	logger, userID, ok := requestContext(c)
	if !ok {
		return
	}
	amortizationID := c.Param("id")

	number, err := strconv.Atoi(c.Param("number"))
	if err != nil || number < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Installment number must be a positive integer"})
		return
	}
	logger = logger.With(slog.String("amortization_id", amortizationID), slog.Int("installment_number", number))

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.amortizationService.RecordPayment(c.Request.Context(), amortizationID, number, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to record payment")
		return
	}

	if result.Warning != nil {
		logger.Warn("Payment recorded without ledger posting", slog.String("warning", result.Warning.Error()))
	} else {
		logger.Info("Payment recorded", slog.String("sync_status", string(result.ExternalSyncStatus)))
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(result, h.today()))
}

// generateInstallments godoc
// @Summary Generate the installment schedule
// @Description Rebuilds the schedule from the current terms. Refused when payments exist unless overwrite_existing is set.
// @Tags amortizations
// @Produce json
// @Param id path string true "Amortization ID"
// @Param overwrite_existing query bool false "Discard payment history" default(false)
// @Success 200 {object} dto.AmortizationResponse
// @Failure 400 {object} map[string]string "Invalid schedule parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Amortization not found"
// @Failure 409 {object} map[string]string "Schedule has recorded payments"
// @Failure 500 {object} map[string]string "Failed to generate installments"
// @Security BearerAuth
// @Router /amortizations/{id}/generate-installments [post]
func (h *amortizationHandler) generateInstallments(c *gin.Context) {
	logger, userID, ok := requestContext(c)
	if !ok {
		return
	}
	amortizationID := c.Param("id")
	logger = logger.With(slog.String("amortization_id", amortizationID))

	overwrite, err := queryBool(c, "overwrite_existing", false)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	amortization, err := h.amortizationService.GenerateInstallments(c.Request.Context(), amortizationID, overwrite, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate installments")
		return
	}

	logger.Info("Installments generated", slog.Int("installments", len(amortization.Installments)))
	c.JSON(http.StatusOK, dto.ToAmortizationResponse(amortization, h.today()))
}
