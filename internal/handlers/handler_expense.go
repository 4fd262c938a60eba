package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/triptab/tripledger/internal/apperrors"
	portssvc "github.com/triptab/tripledger/internal/core/ports/services"
	"github.com/triptab/tripledger/internal/dto"
	"github.com/triptab/tripledger/internal/middleware"
)

// ledgerHandler handles HTTP requests related to expenses and obligations.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ls,
	}
}

// registerLedgerRoutes registers routes related to the expense ledger.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	trips := rg.Group("/trips")
	{
		trips.POST("/:tripID/expenses", h.recordExpense)
		trips.GET("/:tripID/expenses", h.listExpenses)
		trips.GET("/:tripID/obligations", h.listObligations)
	}
	rg.POST("/expenses/:expenseID/complete", h.completeExpense)
	rg.POST("/obligations/:obligationID/settle", h.settleObligation)
}

// recordExpense godoc
// @Summary Record an expense
// @Description Validates, persists the expense, and persists the computed obligation batch. A store failure mid-batch returns 502 with the expense id so the caller can re-drive completion.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   tripID path string true "Trip ID"
// @Param   expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.RecordExpenseResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Trip not found"
// @Failure 502 {object} map[string]string "Obligation batch incomplete"
// @Security BearerAuth
// @Router /trips/{tripID}/expenses [post]
func (h *ledgerHandler) recordExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tripID := c.Param("tripID")

	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	expense, obligations, err := h.ledgerService.RecordExpense(c.Request.Context(), tripID, req)
	if err != nil {
		var partial *apperrors.PartialWriteError
		switch {
		case errors.As(err, &partial):
			logger.Error("Expense recorded with incomplete obligation batch",
				slog.String("expense_id", partial.ExpenseID),
				slog.Int("written", partial.Written),
				slog.Int("expected", partial.Expected))
			c.JSON(http.StatusBadGateway, gin.H{
				"error":     "Obligation batch incomplete; retry completion",
				"expenseId": partial.ExpenseID,
			})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		case errors.Is(err, apperrors.ErrUnknownCurrency), errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Expense rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to record expense", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record expense"})
		}
		return
	}

	middleware.ExpensesRecorded.Inc()
	logger.Info("Expense recorded successfully", slog.String("expense_id", expense.ExpenseID))

	obligationIDs := make([]string, len(obligations))
	for i, o := range obligations {
		obligationIDs[i] = o.ObligationID
	}
	c.JSON(http.StatusCreated, dto.RecordExpenseResponse{ExpenseID: expense.ExpenseID, ObligationIDs: obligationIDs})
}

// listExpenses godoc
// @Summary List a trip's expenses
// @Tags ledger
// @Produce  json
// @Param   tripID path string true "Trip ID"
// @Success 200 {array} dto.ExpenseResponse
// @Failure 404 {object} map[string]string "Trip not found"
// @Security BearerAuth
// @Router /trips/{tripID}/expenses [get]
func (h *ledgerHandler) listExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tripID := c.Param("tripID")

	expenses, err := h.ledgerService.ListExpenses(c.Request.Context(), tripID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
			return
		}
		logger.Error("Failed to list expenses", slog.String("error", err.Error()), slog.String("trip_id", tripID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list expenses"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListExpenseResponse(expenses))
}

// listObligations godoc
// @Summary List a trip's obligations
// @Description Retrieves obligations for a trip, optionally filtered by settlement state via ?settled=true|false
// @Tags ledger
// @Produce  json
// @Param   tripID path string true "Trip ID"
// @Param   settled query bool false "Filter by settlement state"
// @Success 200 {array} dto.ObligationResponse
// @Failure 404 {object} map[string]string "Trip not found"
// @Security BearerAuth
// @Router /trips/{tripID}/obligations [get]
func (h *ledgerHandler) listObligations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tripID := c.Param("tripID")

	var settled *bool
	if raw, exists := c.GetQuery("settled"); exists {
		val, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "settled must be true or false"})
			return
		}
		settled = &val
	}

	obligations, err := h.ledgerService.ListObligations(c.Request.Context(), tripID, settled)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
			return
		}
		logger.Error("Failed to list obligations", slog.String("error", err.Error()), slog.String("trip_id", tripID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list obligations"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListObligationResponse(obligations))
}

// completeExpense godoc
// @Summary Complete an expense's obligation batch
// @Description Idempotently re-drives obligation creation for an expense whose batch may be incomplete, then returns the full set
// @Tags ledger
// @Produce  json
// @Param   expenseID path string true "Expense ID"
// @Success 200 {array} dto.ObligationResponse
// @Failure 404 {object} map[string]string "Expense not found"
// @Security BearerAuth
// @Router /expenses/{expenseID}/complete [post]
func (h *ledgerHandler) completeExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("expenseID")

	obligations, err := h.ledgerService.CompleteExpense(c.Request.Context(), expenseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
			return
		}
		logger.Error("Failed to complete expense", slog.String("error", err.Error()), slog.String("expense_id", expenseID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete expense"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListObligationResponse(obligations))
}

// settleObligation godoc
// @Summary Settle an obligation
// @Description Marks an obligation settled. Settling twice is a no-op.
// @Tags ledger
// @Produce  json
// @Param   obligationID path string true "Obligation ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Obligation not found"
// @Security BearerAuth
// @Router /obligations/{obligationID}/settle [post]
func (h *ledgerHandler) settleObligation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	obligationID := c.Param("obligationID")

	if err := h.ledgerService.SettleObligation(c.Request.Context(), obligationID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Obligation not found"})
			return
		}
		logger.Error("Failed to settle obligation", slog.String("error", err.Error()), slog.String("obligation_id", obligationID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to settle obligation"})
		return
	}

	middleware.ObligationsSettled.Inc()
	c.JSON(http.StatusOK, gin.H{"status": "settled"})
}
