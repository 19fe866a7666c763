package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ThreadBooks/thread_books_app/internal/apperrors"
	"github.com/ThreadBooks/thread_books_app/internal/core/domain"
	portssvc "github.com/ThreadBooks/thread_books_app/internal/core/ports/services"
	"github.com/ThreadBooks/thread_books_app/internal/dto"
	"github.com/ThreadBooks/thread_books_app/internal/middleware"
)

const dateLayout = "2006-01-02"

// reportingHandler exposes the derived read-only views.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(reportingService portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: reportingService}
}

// parseDateRange reads optional from/to query params. Missing params
// come back zero, meaning unbounded on that side.
func parseDateRange(c *gin.Context) (time.Time, time.Time, error) {
	var from, to time.Time
	var err error
	if v := c.Query("from"); v != "" {
		if from, err = time.Parse(dateLayout, v); err != nil {
			return from, to, err
		}
	}
	if v := c.Query("to"); v != "" {
		if to, err = time.Parse(dateLayout, v); err != nil {
			return from, to, err
		}
	}
	return from, to, nil
}

func (h *reportingHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	from, to, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	summary, err := h.reportingService.Summary(c.Request.Context(), companyID, from, to)
	if err != nil {
		logger.Error("Failed to compute summary", slog.String("error", err.Error()), slog.String("company_id", companyID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute summary"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary, from, to))
}

func (h *reportingHandler) getNetProfit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	from, to, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	net, err := h.reportingService.NetProfit(c.Request.Context(), companyID, from, to)
	if err != nil {
		logger.Error("Failed to compute net profit", slog.String("error", err.Error()), slog.String("company_id", companyID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute net profit"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"netProfit": net.Decimal()})
}

func (h *reportingHandler) getReferenceTypeTotal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	refType := domain.ReferenceType(c.Query("referenceType"))
	if refType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "referenceType query parameter is required"})
		return
	}
	from, to, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	total, err := h.reportingService.SummaryByReferenceType(c.Request.Context(), companyID, refType, from, to)
	if err != nil {
		logger.Error("Failed to total reference type", slog.String("error", err.Error()), slog.String("reference_type", string(refType)))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute total"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"referenceType": refType, "total": total.Decimal()})
}

func (h *reportingHandler) getReceivables(c *gin.Context) {
	h.counterpartReport(c, h.reportingService.Receivables, "receivables")
}

func (h *reportingHandler) getPayables(c *gin.Context) {
	h.counterpartReport(c, h.reportingService.Payables, "payables")
}

func (h *reportingHandler) counterpartReport(c *gin.Context, fetch func(ctx context.Context, companyID string) ([]domain.CounterpartOutstanding, error), name string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	rows, err := fetch(c.Request.Context(), companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// The role account was never configured, so there is
			// nothing outstanding to show.
			c.JSON(http.StatusOK, dto.ToOutstandingResponse(nil))
			return
		}
		logger.Error("Failed to build counterpart report", slog.String("error", err.Error()), slog.String("report", name))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build " + name + " report"})
		return
	}

	c.JSON(http.StatusOK, dto.ToOutstandingResponse(rows))
}

func (h *reportingHandler) getCashSummary(c *gin.Context) {
	h.classReport(c, h.reportingService.CashSummary, "cash")
}

func (h *reportingHandler) getBankSummary(c *gin.Context) {
	h.classReport(c, h.reportingService.BankSummary, "bank")
}

func (h *reportingHandler) classReport(c *gin.Context, fetch func(ctx context.Context, companyID string) ([]domain.AccountBalance, error), name string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	balances, err := fetch(c.Request.Context(), companyID)
	if err != nil {
		logger.Error("Failed to build class summary", slog.String("error", err.Error()), slog.String("report", name))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build " + name + " summary"})
		return
	}

	c.JSON(http.StatusOK, dto.ToClassSummaryResponse(balances))
}

func (h *reportingHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	accountID := c.Param("accountID")

	var asOf time.Time
	if v := c.Query("asOf"); v != "" {
		var err error
		if asOf, err = time.Parse(dateLayout, v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date, expected YYYY-MM-DD"})
			return
		}
	}

	balance, err := h.reportingService.RunningBalance(c.Request.Context(), companyID, accountID, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		logger.Error("Failed to compute balance", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance"})
		return
	}

	resp := dto.BalanceResponse{AccountID: accountID, Balance: balance.Decimal()}
	if !asOf.IsZero() {
		resp.AsOf = &asOf
	}
	c.JSON(http.StatusOK, resp)
}

func (h *reportingHandler) getAccountLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	accountID := c.Param("accountID")

	from, to, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	rows, next, err := h.reportingService.AccountLedger(c.Request.Context(), companyID, accountID, params.BranchID, from, to, params.Limit, params.NextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		logger.Error("Failed to build account ledger", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build account ledger"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountLedgerResponse(accountID, rows, next))
}

func (h *reportingHandler) getDayBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	from, to, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	entries, next, err := h.reportingService.DayBook(c.Request.Context(), companyID, params.BranchID, from, to, params.Limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list day book", slog.String("error", err.Error()), slog.String("company_id", companyID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}

	resp := dto.ListEntriesResponse{Entries: make([]dto.EntryResponse, len(entries)), NextToken: next}
	for i := range entries {
		resp.Entries[i] = dto.ToEntryResponse(&entries[i])
	}
	c.JSON(http.StatusOK, resp)
}

// registerReportingRoutes registers reporting routes on the company group.
func registerReportingRoutes(company *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := company.Group("/reports")
	{
		reports.GET("/summary", h.getSummary)
		reports.GET("/net-profit", h.getNetProfit)
		reports.GET("/reference-type-total", h.getReferenceTypeTotal)
		reports.GET("/receivables", h.getReceivables)
		reports.GET("/payables", h.getPayables)
		reports.GET("/cash-summary", h.getCashSummary)
		reports.GET("/bank-summary", h.getBankSummary)
		reports.GET("/day-book", h.getDayBook)
	}

	company.GET("/accounts/:accountID/balance", h.getBalance)
	company.GET("/accounts/:accountID/ledger", h.getAccountLedger)
}
