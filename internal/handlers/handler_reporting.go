package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Gabriel4210/DRE/internal/core/domain"
	portssvc "github.com/Gabriel4210/DRE/internal/core/ports/services"
	"github.com/Gabriel4210/DRE/internal/dto"
	"github.com/Gabriel4210/DRE/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/dre", h.getDRE)
		reportingGroup.GET("/dre/export", h.exportDRE)
		reportingGroup.GET("/expenses", h.getExpenseBreakdown)
		reportingGroup.GET("/companies", h.compareCompanies)
	}
}

// getDRE godoc
// @Summary Generate the DRE (income statement)
// @Description Aggregates revenue, cost and expense per month and computes gross and net profit, plus period totals
// @Tags reports
// @Produce json
// @Param company query string false "Company name (exact match)"
// @Param fromDate query string false "Start date (YYYY-MM-DD), requires toDate"
// @Param toDate query string false "End date (YYYY-MM-DD), requires fromDate"
// @Success 200 {object} dto.DREReportResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /reports/dre [get]
func (h *reportingHandler) getDRE(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	filterParams, ok := bindFilterParams(c, logger)
	if !ok {
		return
	}
	filter, err := filterParams.ToFilter()
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate DRE report")
		return
	}

	logger = logger.With(
		slog.String("company", filter.Company),
		slog.String("fromDate", filterParams.FromDate),
		slog.String("toDate", filterParams.ToDate),
	)
	logger.Info("Received request to generate DRE report")

	report, err := h.reportingService.DRE(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate DRE report")
		return
	}

	logger.Info("DRE report generated successfully", slog.Int("month_count", len(report.Months)))
	c.JSON(http.StatusOK, dto.ToDREReportResponse(report))
}

// exportDRE godoc
// @Summary Download the monthly DRE as CSV
// @Description Columns mes, Receita, Custo, Despesa, Lucro Bruto and Lucro Líquido, one row per month. The file is named dre_{empresa}_{from}_{to}.csv
// @Tags reports
// @Produce text/csv
// @Param company query string true "Company name (exact match)"
// @Param fromDate query string true "Start date (YYYY-MM-DD)"
// @Param toDate query string true "End date (YYYY-MM-DD)"
// @Success 200 {string} string "CSV file"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to export report"
// @Router /reports/dre/export [get]
func (h *reportingHandler) exportDRE(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	filter, ok := h.parseFilter(c, logger, "Failed to export DRE report")
	if !ok {
		return
	}
	logger = logger.With(slog.String("company", filter.Company))
	logger.Info("Received request to export DRE report")

	var buf bytes.Buffer
	name, err := h.reportingService.ExportDRE(c.Request.Context(), &buf, filter)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to export DRE report")
		return
	}

	logger.Info("DRE report exported successfully", slog.String("file_name", name))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// getExpenseBreakdown godoc
// @Summary Break down expenses by description
// @Description Sums the Despesa amounts per description, largest first, with each description's share of the total
// @Tags reports
// @Produce json
// @Param company query string false "Company name (exact match)"
// @Param fromDate query string false "Start date (YYYY-MM-DD), requires toDate"
// @Param toDate query string false "End date (YYYY-MM-DD), requires fromDate"
// @Success 200 {object} dto.ExpenseBreakdownResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /reports/expenses [get]
func (h *reportingHandler) getExpenseBreakdown(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	filter, ok := h.parseFilter(c, logger, "Failed to generate expense breakdown")
	if !ok {
		return
	}
	logger = logger.With(slog.String("company", filter.Company))
	logger.Info("Received request for expense breakdown")

	breakdown, err := h.reportingService.ExpenseBreakdown(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate expense breakdown")
		return
	}

	logger.Info("Expense breakdown generated successfully", slog.Int("item_count", len(breakdown.Items)))
	c.JSON(http.StatusOK, dto.ToExpenseBreakdownResponse(breakdown))
}

// compareCompanies godoc
// @Summary Compare the DRE totals of every company
// @Description Computes revenue, cost, expense, gross and net profit per company over the period, ordered by company
// @Tags reports
// @Produce json
// @Param fromDate query string false "Start date (YYYY-MM-DD), requires toDate"
// @Param toDate query string false "End date (YYYY-MM-DD), requires fromDate"
// @Success 200 {object} dto.CompanyComparisonResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /reports/companies [get]
func (h *reportingHandler) compareCompanies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	filter, ok := h.parseFilter(c, logger, "Failed to compare companies")
	if !ok {
		return
	}
	logger.Info("Received request to compare companies")

	comparison, err := h.reportingService.CompareCompanies(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compare companies")
		return
	}

	logger.Info("Company comparison generated successfully", slog.Int("company_count", len(comparison.Companies)))
	c.JSON(http.StatusOK, dto.ToCompanyComparisonResponse(comparison))
}

// parseFilter binds the company and period query parameters, writing the error response on failure.
func (h *reportingHandler) parseFilter(c *gin.Context, logger *slog.Logger, failMsg string) (domain.TransactionFilter, bool) {
	params, ok := bindFilterParams(c, logger)
	if !ok {
		return domain.TransactionFilter{}, false
	}
	filter, err := params.ToFilter()
	if err != nil {
		respondServiceError(c, logger, err, failMsg)
		return domain.TransactionFilter{}, false
	}
	return filter, true
}
