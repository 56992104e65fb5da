package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/amortization_manager/internal/dto"
	"github.com/gin-gonic/gin"
)

// getSummary godoc
// @Summary Amortization portfolio summary
// @Description Counts amortizations by status and totals amounts, interest and overdue balances for a company
// @Tags reports
// @Produce json
// @Param company_id query string true "Company ID"
// @Param entity_id query string false "Entity ID"
// @Param amortization_method query string false "Method" Enums(linear, french, german, decreasing)
// @Param date_from query string false "Start date from (YYYY-MM-DD)"
// @Param date_to query string false "Start date to (YYYY-MM-DD)"
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build summary"
// @Security BearerAuth
// @Router /amortizations/reports/summary [get]
func (h *amortizationHandler) getSummary(c *gin.Context) {
	logger, _, ok := requestContext(c)
	if !ok {
		return
	}

	var params dto.ReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for summary report", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	summary, err := h.amortizationService.GetSummary(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, logger.With(slog.String("company_id", params.CompanyID)), err, "Failed to build summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary))
}

// getAgingReport godoc
// @Summary Aging report
// @Description Buckets outstanding installment amounts by days past due
// @Tags reports
// @Produce json
// @Param company_id query string true "Company ID"
// @Param entity_id query string false "Entity ID"
// @Param amortization_method query string false "Method" Enums(linear, french, german, decreasing)
// @Param periods query []int false "Bucket upper bounds in days" collectionFormat(multi)
// @Success 200 {object} dto.AgingReportResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build aging report"
// @Security BearerAuth
// @Router /amortizations/reports/aging [get]
func (h *amortizationHandler) getAgingReport(c *gin.Context) {
	logger, _, ok := requestContext(c)
	if !ok {
		return
	}

	var params dto.AgingReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for aging report", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.amortizationService.GetAgingReport(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, logger.With(slog.String("company_id", params.CompanyID)), err, "Failed to build aging report")
		return
	}
	c.JSON(http.StatusOK, dto.ToAgingReportResponse(report))
}
