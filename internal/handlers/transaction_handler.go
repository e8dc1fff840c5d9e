package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "moneybook/internal/errors"
	"moneybook/internal/models"
	"moneybook/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the request payload for creating a
// transaction. Any owner field in the body is ignored; the owner always comes
// from the session.
type CreateTransactionRequest struct {
	Date        string           `json:"date" binding:"required,calendar_date"`
	Description string           `json:"description" binding:"required,max=500"`
	Amount      *int64           `json:"amount" binding:"required,gte=0"`
	Category    string           `json:"category" binding:"required,max=100"`
	Kind        models.EntryKind `json:"kind" binding:"required,entry_kind"`
}

// ListTransactions returns all transactions owned by the session identity.
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactions, err := h.transactionService.ListTransactions(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// CreateTransaction inserts a new transaction stamped with the session's
// owner key.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.CreateTransaction(
		userID, req.Date, req.Description, *req.Amount, req.Category, req.Kind)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

// UpdateTransactionRequest represents a partial transaction update.
type UpdateTransactionRequest struct {
	Date        *string           `json:"date" binding:"omitempty,calendar_date"`
	Description *string           `json:"description" binding:"omitempty,max=500"`
	Amount      *int64            `json:"amount" binding:"omitempty,gte=0"`
	Category    *string           `json:"category" binding:"omitempty,max=100"`
	Kind        *models.EntryKind `json:"kind" binding:"omitempty,entry_kind"`
}

// UpdateTransaction applies a partial update to a transaction owned by the
// session identity. Records owned by other users report NOT_FOUND.
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := getPathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(userID, transactionID, services.TransactionUpdateFields{
		Date:        req.Date,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Kind:        req.Kind,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// DeleteTransaction deletes a transaction owned by the session identity.
// Missing targets are a silent success.
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := getPathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(userID, transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted."})
}
