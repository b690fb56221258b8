package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Record an income or expense. Type defaults to expense and date to now.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body services.TransactionInput true "Transaction details"
// @Success     201 {object} Response{data=models.Transaction} "Transaction created"
// @Failure     400 {object} ErrorResponse "Validation failed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	in, ok := decodeBody[services.TransactionInput](c)
	if !ok {
		return
	}

	tx, err := h.transactionService.CreateTransaction(c.Request.Context(), in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), services.AuditCreateTransaction, "transaction", tx.ID, c.ClientIP(),
		map[string]interface{}{"type": tx.Type, "amount": tx.Amount, "category": tx.Category})

	respond(c, http.StatusCreated, tx, "Transaction created successfully")
}

// ListTransactions handles listing transactions
// @Summary     List transactions
// @Description Paginated transactions, newest first. Filters combine with AND.
// @Tags        transactions
// @Produce     json
// @Param       page      query int    false "Page number (default 1)"
// @Param       limit     query int    false "Items per page (default 10, max 100)"
// @Param       category  query string false "Filter by category id"
// @Param       type      query string false "Filter by type (income, expense)"
// @Param       startDate query string false "Earliest date, inclusive (RFC3339 or YYYY-MM-DD)"
// @Param       endDate   query string false "Latest date, inclusive (RFC3339 or YYYY-MM-DD)"
// @Success     200 {object} Response{data=services.TransactionList} "Transactions"
// @Failure     400 {object} ErrorResponse "Validation failed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	var filter services.TransactionFilter
	if !bindQuery(c, &filter) {
		return
	}

	list, err := h.transactionService.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respond(c, http.StatusOK, list, "")
}

// GetTransaction handles retrieving a single transaction
// @Summary     Get a transaction
// @Tags        transactions
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Success     200 {object} Response{data=models.Transaction} "Transaction"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	tx, err := h.transactionService.GetTransaction(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respond(c, http.StatusOK, tx, "")
}

// UpdateTransaction handles partial updates of a transaction
// @Summary     Update a transaction
// @Description Only the fields present in the body are changed.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id      path string                   true "Transaction ID"
// @Param       request body services.TransactionPatch true "Fields to change"
// @Success     200 {object} Response{data=models.Transaction} "Transaction updated"
// @Failure     400 {object} ErrorResponse "Invalid ID or validation failed"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/transactions/{id} [patch]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	patch, ok := decodeBody[services.TransactionPatch](c)
	if !ok {
		return
	}

	tx, err := h.transactionService.UpdateTransaction(c.Request.Context(), id, patch)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), services.AuditUpdateTransaction, "transaction", tx.ID, c.ClientIP(), patchChanges(patch))

	respond(c, http.StatusOK, tx, "Transaction updated successfully")
}

// DeleteTransaction handles deleting a transaction
// @Summary     Delete a transaction
// @Tags        transactions
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Success     200 {object} Response "Transaction deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), services.AuditDeleteTransaction, "transaction", id, c.ClientIP(), nil)

	respond(c, http.StatusOK, nil, "Transaction deleted successfully")
}

func patchChanges(patch services.TransactionPatch) map[string]interface{} {
	changes := make(map[string]interface{})
	if patch.Amount != nil {
		changes["amount"] = *patch.Amount
	}
	if patch.Description != nil {
		changes["description"] = *patch.Description
	}
	if patch.Category != nil {
		changes["category"] = *patch.Category
	}
	if patch.Date != nil {
		changes["date"] = *patch.Date
	}
	if patch.Type != nil {
		changes["type"] = *patch.Type
	}
	return changes
}
