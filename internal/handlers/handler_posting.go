package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ThreadBooks/thread_books_app/internal/apperrors"
	"github.com/ThreadBooks/thread_books_app/internal/core/domain"
	portssvc "github.com/ThreadBooks/thread_books_app/internal/core/ports/services"
	"github.com/ThreadBooks/thread_books_app/internal/core/services"
	"github.com/ThreadBooks/thread_books_app/internal/dto"
	"github.com/ThreadBooks/thread_books_app/internal/middleware"
)

// postingHandler exposes the event posting endpoints. Every endpoint
// binds its request DTO, converts it to the matching domain event, and
// hands it to the ledger service.
type postingHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newPostingHandler(ledgerService portssvc.LedgerSvcFacade) *postingHandler {
	return &postingHandler{ledgerService: ledgerService}
}

// eventRequest is implemented by every posting request DTO.
type eventRequest interface {
	ToEvent(companyID string) domain.PostingEvent
}

// post runs the shared bind/post/respond cycle for one request shape.
func post[R eventRequest](h *postingHandler, c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var req R
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind posting request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.ledgerService.Post(c.Request.Context(), req.ToEvent(companyID), userID)
	if err != nil {
		respondPostingError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// respondPostingError maps service errors onto HTTP statuses.
func respondPostingError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "Source document already posted"})
	case errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrSameAccount),
		errors.Is(err, services.ErrMissingEntryDate),
		errors.Is(err, services.ErrAccountNotFound),
		errors.Is(err, services.ErrCompanyMismatch),
		errors.Is(err, services.ErrInactiveAccount),
		errors.Is(err, services.ErrRoleNotConfigured):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrPostingExhausted):
		logger.Error("Posting exhausted allocation retries", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Posting conflicted with concurrent activity, retry"})
	default:
		logger.Error("Failed to post entry", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post entry"})
	}
}

func (h *postingHandler) postManualJournal(c *gin.Context)   { post[dto.ManualJournalRequest](h, c) }
func (h *postingHandler) postTransfer(c *gin.Context)        { post[dto.TransferRequest](h, c) }
func (h *postingHandler) postSupplierPayment(c *gin.Context) { post[dto.SupplierPaymentRequest](h, c) }
func (h *postingHandler) postWorkerPayment(c *gin.Context)   { post[dto.WorkerPaymentRequest](h, c) }
func (h *postingHandler) postExpense(c *gin.Context)         { post[dto.ExpenseRequest](h, c) }
func (h *postingHandler) postCustomerReceipt(c *gin.Context) { post[dto.CustomerReceiptRequest](h, c) }
func (h *postingHandler) postSourceDocument(c *gin.Context)  { post[dto.SourceDocumentRequest](h, c) }

func (h *postingHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	entryID := c.Param("entryID")

	entry, err := h.ledgerService.GetEntry(c.Request.Context(), companyID, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		logger.Error("Failed to get entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve entry"})
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// lookupEntry resolves an entry either by document number (entryNo) or
// by source document (referenceType + referenceID) query parameters.
func (h *postingHandler) lookupEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	entryNo := c.Query("entryNo")
	refType := c.Query("referenceType")
	refID := c.Query("referenceID")

	var entry *domain.JournalEntry
	var err error
	switch {
	case entryNo != "":
		entry, err = h.ledgerService.GetEntryByNo(c.Request.Context(), companyID, entryNo)
	case refType != "" && refID != "":
		entry, err = h.ledgerService.GetEntryBySource(c.Request.Context(), companyID, domain.ReferenceType(refType), refID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "entryNo or referenceType and referenceID query parameters are required"})
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		case errors.Is(err, services.ErrInvalidEntryNo):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to look up entry", slog.String("error", err.Error()),
				slog.String("entry_no", entryNo), slog.String("reference_type", refType), slog.String("reference_id", refID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve entry"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *postingHandler) voidEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	entryID := c.Param("entryID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reversing, err := h.ledgerService.VoidEntry(c.Request.Context(), companyID, entryID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		case errors.Is(err, services.ErrEntryVoided),
			errors.Is(err, services.ErrVoidOfReversal),
			errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to void entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to void entry"})
		}
		return
	}

	logger.Info("Entry voided", slog.String("entry_id", entryID), slog.String("reversing_entry_id", reversing.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(reversing))
}

// registerPostingRoutes registers posting and entry routes on the
// company group.
func registerPostingRoutes(company *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newPostingHandler(ledgerService)

	postings := company.Group("/postings")
	{
		postings.POST("/manual-journals", h.postManualJournal)
		postings.POST("/transfers", h.postTransfer)
		postings.POST("/supplier-payments", h.postSupplierPayment)
		postings.POST("/worker-payments", h.postWorkerPayment)
		postings.POST("/expenses", h.postExpense)
		postings.POST("/customer-receipts", h.postCustomerReceipt)
		postings.POST("/source-documents", h.postSourceDocument)
	}

	entries := company.Group("/entries")
	{
		entries.GET("", h.lookupEntry)
		entries.GET("/:entryID", h.getEntry)
		entries.POST("/:entryID/void", h.voidEntry)
	}
}
