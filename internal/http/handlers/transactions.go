package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"ledger_service/internal/domain"
	"ledger_service/internal/logger"
	"ledger_service/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CreateTransaction applies a signed transaction to the user's balance
// in the given currency. Positive deposits, negative withdraws.
func (h *Handler) CreateTransaction(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil || userID <= 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "user id must be a positive integer"})
		return
	}

	var req struct {
		Currency domain.Currency `json:"currency" binding:"required"`
		Amount   decimal.Decimal `json:"amount"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "bad request body"})
		return
	}
	if !req.Currency.IsValid() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": domain.ErrInvalidCurrency.Error()})
		return
	}
	if req.Amount.IsZero() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": domain.ErrInvalidAmount.Error()})
		return
	}

	transaction, err := h.Ledger.Apply(c.Request.Context(), userID, req.Currency, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUserBlocked):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrInsufficientBalance):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrInvalidCurrency):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrBalanceMissing):
			// integrity fault: the row should exist for every user
			logger.Error("balance row missing", "user_id", userID, "currency", req.Currency)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "balance integrity fault"})
		default:
			logger.Error("apply transaction", "error", err, "user_id", userID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		}
		return
	}

	h.Hub.Broadcast(ws.Event{Type: ws.EventTransactionApplied, Transaction: transaction})

	c.JSON(http.StatusOK, transaction)
}

// ListTransactions returns transactions newest first, paginated,
// optionally scoped to one user.
func (h *Handler) ListTransactions(c *gin.Context) {
	var userID *int64
	if v := c.Query("user_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "user_id must be a positive integer"})
			return
		}
		userID = &id
	}

	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	transactions, err := h.Ledger.List(c.Request.Context(), userID, skip, limit)
	if err != nil {
		logger.Error("list transactions", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	if transactions == nil {
		transactions = []*domain.Transaction{}
	}

	c.JSON(http.StatusOK, transactions)
}

// RollbackTransaction reverses a previously applied transaction
func (h *Handler) RollbackTransaction(c *gin.Context) {
	transactionID, err := strconv.ParseInt(c.Param("transactionId"), 10, 64)
	if err != nil || transactionID <= 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "transaction id must be a positive integer"})
		return
	}
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil || userID <= 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "user id must be a positive integer"})
		return
	}

	transaction, err := h.Ledger.Rollback(c.Request.Context(), userID, transactionID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUserBlocked):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrTransactionNotFound),
			errors.Is(err, domain.ErrTransactionNotOwned),
			errors.Is(err, domain.ErrTransactionRolledBack):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("rollback transaction", "error", err, "transaction_id", transactionID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		}
		return
	}

	h.Hub.Broadcast(ws.Event{Type: ws.EventTransactionRollbacked, Transaction: transaction})

	c.JSON(http.StatusOK, transaction)
}
