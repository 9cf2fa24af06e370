package handlers

import (
	"bytes"
	"log/slog"
	"net/http"

	portssvc "github.com/Gabriel4210/DRE/internal/core/ports/services"
	"github.com/Gabriel4210/DRE/internal/dto"
	"github.com/Gabriel4210/DRE/internal/middleware"
	"github.com/gin-gonic/gin"
)

// importFormField is the multipart field carrying the CSV file.
const importFormField = "file"

// exportFileName is the download name of an export.
const exportFileName = "user_data.csv"

// transactionHandler handles HTTP requests related to the transaction log
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

// newTransactionHandler creates a new transactionHandler
func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
	}
}

// registerTransactionRoutes registers routes related to transactions.
// writeGuard runs before every route that changes the log.
func registerTransactionRoutes(rg *gin.RouterGroup, ts portssvc.TransactionSvcFacade, writeGuard ...gin.HandlerFunc) {
	h := newTransactionHandler(ts)

	rg.GET("/companies", h.listCompanies)

	txns := rg.Group("/transactions")
	{
		txns.GET("", h.listTransactions)
		txns.GET("/export", h.exportTransactions)
		txns.POST("", guarded(writeGuard, h.createTransaction)...)
		txns.POST("/import", guarded(writeGuard, h.importTransactions)...)
	}
}

func guarded(guard []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	chain := make([]gin.HandlerFunc, 0, len(guard)+1)
	return append(append(chain, guard...), h)
}

// createTransaction godoc
// @Summary Record a transaction
// @Description Validates and appends a revenue, cost or expense entry to the transaction log
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to save transaction"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.transactionService.AddTransaction(c.Request.Context(), req.ToNewTransaction())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to save transaction")
		return
	}

	logger.Info("Transaction created successfully", slog.Int64("transaction_id", txn.ID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(*txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists the transactions of a company and period, ordered by date
// @Tags transactions
// @Produce json
// @Param company query string false "Company name (exact match)"
// @Param fromDate query string false "Start date (YYYY-MM-DD), requires toDate"
// @Param toDate query string false "End date (YYYY-MM-DD), requires fromDate"
// @Param limit query int false "Page size (1-1000), all transactions when omitted"
// @Param nextToken query string false "Cursor returned by the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	filterParams, ok := bindFilterParams(c, logger)
	if !ok {
		return
	}
	filter, err := filterParams.ToFilter()
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list transactions")
		return
	}

	var page dto.PageParams
	if err := c.ShouldBindQuery(&page); err != nil {
		logger.Warn("Invalid paging query parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	txns, nextToken, err := h.transactionService.ListTransactionsPage(c.Request.Context(), filter, page.Limit, page.Token())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(txns, nextToken))
}

// listCompanies godoc
// @Summary List companies
// @Description Lists the distinct company names present in the transaction log
// @Tags transactions
// @Produce json
// @Success 200 {object} dto.ListCompaniesResponse
// @Failure 500 {object} map[string]string "Failed to list companies"
// @Router /companies [get]
func (h *transactionHandler) listCompanies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	companies, err := h.transactionService.ListCompanies(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list companies")
		return
	}
	if companies == nil {
		companies = []string{}
	}

	c.JSON(http.StatusOK, dto.ListCompaniesResponse{Companies: companies})
}

// importTransactions godoc
// @Summary Import transactions from CSV
// @Description Appends the rows of a CSV file, skipping ids that are already stored
// @Tags transactions
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file with id,empresa,data,tipo,descricao,valor columns"
// @Success 200 {object} dto.ImportTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid file"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to import transactions"
// @Security BearerAuth
// @Router /transactions/import [post]
func (h *transactionHandler) importTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fileHeader, err := c.FormFile(importFormField)
	if err != nil {
		logger.Warn("Import file missing", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "A CSV file is required in form field '" + importFormField + "'"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
		return
	}
	defer file.Close()

	logger = logger.With(slog.String("file_name", fileHeader.Filename), slog.Int64("file_size", fileHeader.Size))
	result, err := h.transactionService.ImportTransactions(c.Request.Context(), file)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to import transactions")
		return
	}

	logger.Info("Import finished", slog.Int("imported", result.Imported), slog.Int("skipped", result.Skipped))
	c.JSON(http.StatusOK, dto.ToImportTransactionsResponse(result))
}

// exportTransactions godoc
// @Summary Export transactions as CSV
// @Description Downloads the matching transactions in the import/export CSV format
// @Tags transactions
// @Produce text/csv
// @Param company query string false "Company name (exact match)"
// @Param fromDate query string false "Start date (YYYY-MM-DD), requires toDate"
// @Param toDate query string false "End date (YYYY-MM-DD), requires fromDate"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to export transactions"
// @Router /transactions/export [get]
func (h *transactionHandler) exportTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	filterParams, ok := bindFilterParams(c, logger)
	if !ok {
		return
	}
	filter, err := filterParams.ToFilter()
	if err != nil {
		respondServiceError(c, logger, err, "Failed to export transactions")
		return
	}

	// Buffered so a failure can still be reported as JSON.
	var buf bytes.Buffer
	count, err := h.transactionService.ExportTransactions(c.Request.Context(), &buf, filter)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to export transactions")
		return
	}

	logger.Info("Transactions exported", slog.Int("count", count))
	c.Header("Content-Disposition", `attachment; filename="`+exportFileName+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// bindFilterParams binds company/fromDate/toDate and answers 400 on failure.
func bindFilterParams(c *gin.Context, logger *slog.Logger) (dto.ListTransactionsParams, bool) {
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid filter query parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return params, false
	}
	return params, true
}
