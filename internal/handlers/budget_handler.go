package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/services"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	auditService  services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService}
}

// CreateBudget handles the creation of a new budget
// @Summary     Create a budget
// @Description Set a spending ceiling for one category in one month
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Param       request body services.BudgetInput true "Budget details"
// @Success     201 {object} Response{data=services.BudgetView} "Budget created"
// @Failure     400 {object} ErrorResponse "Validation failed"
// @Failure     409 {object} ErrorResponse "Budget for this category and month already exists"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/budgets [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	in, ok := decodeBody[services.BudgetInput](c)
	if !ok {
		return
	}

	budget, err := h.budgetService.CreateBudget(c.Request.Context(), in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), services.AuditCreateBudget, "budget", budget.ID, c.ClientIP(),
		map[string]interface{}{"category": budget.Category, "amount": budget.Amount, "month": budget.Month, "year": budget.Year})

	respond(c, http.StatusCreated, budget, "Budget created successfully")
}

// ListBudgets handles listing budgets with reconciled spending
// @Summary     List budgets
// @Description Budgets ordered by category, with spent recomputed from transactions
// @Tags        budgets
// @Produce     json
// @Param       month query int false "Filter by month (1-12)"
// @Param       year  query int false "Filter by year (>= 2020)"
// @Success     200 {object} Response{data=[]services.BudgetView} "Budgets"
// @Failure     400 {object} ErrorResponse "Validation failed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/budgets [get]
func (h *BudgetHandler) ListBudgets(c *gin.Context) {
	var filter services.BudgetFilter
	if !bindQuery(c, &filter) {
		return
	}

	budgets, err := h.budgetService.ListBudgets(c.Request.Context(), filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respond(c, http.StatusOK, budgets, "")
}

// GetBudget handles retrieving a single budget
// @Summary     Get a budget
// @Tags        budgets
// @Produce     json
// @Param       id path string true "Budget ID"
// @Success     200 {object} Response{data=services.BudgetView} "Budget"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/budgets/{id} [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.GetBudget(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respond(c, http.StatusOK, budget, "")
}

// UpdateBudget handles partial updates of a budget
// @Summary     Update a budget
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Param       id      path string              true "Budget ID"
// @Param       request body services.BudgetPatch true "Fields to change"
// @Success     200 {object} Response{data=services.BudgetView} "Budget updated"
// @Failure     400 {object} ErrorResponse "Invalid ID or validation failed"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     409 {object} ErrorResponse "Budget for this category and month already exists"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/budgets/{id} [patch]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	patch, ok := decodeBody[services.BudgetPatch](c)
	if !ok {
		return
	}

	budget, err := h.budgetService.UpdateBudget(c.Request.Context(), id, patch)
	if err != nil {
		respondWithError(c, err)
		return
	}

	changes := make(map[string]interface{})
	if patch.Category != nil {
		changes["category"] = *patch.Category
	}
	if patch.Amount != nil {
		changes["amount"] = *patch.Amount
	}
	if patch.Month != nil {
		changes["month"] = *patch.Month
	}
	if patch.Year != nil {
		changes["year"] = *patch.Year
	}
	h.auditService.Log(c.Request.Context(), services.AuditUpdateBudget, "budget", id, c.ClientIP(), changes)

	respond(c, http.StatusOK, budget, "Budget updated successfully")
}

// DeleteBudget handles deleting a budget
// @Summary     Delete a budget
// @Tags        budgets
// @Produce     json
// @Param       id path string true "Budget ID"
// @Success     200 {object} Response "Budget deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.budgetService.DeleteBudget(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), services.AuditDeleteBudget, "budget", id, c.ClientIP(), nil)

	respond(c, http.StatusOK, nil, "Budget deleted successfully")
}
