package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/services"
)

// CategoryHandler serves the predefined category registry.
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// ListCategories handles listing categories
// @Summary     List categories
// @Tags        categories
// @Produce     json
// @Param       type query string false "Filter by type (income, expense)"
// @Success     200 {object} Response{data=[]models.Category} "Categories"
// @Failure     400 {object} ErrorResponse "Validation failed"
// @Router      /v1/categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	var filter services.CategoryFilter
	if !bindQuery(c, &filter) {
		return
	}

	respond(c, http.StatusOK, h.categoryService.ListCategories(filter), "")
}

// GetCategory handles retrieving a single category
// @Summary     Get a category
// @Tags        categories
// @Produce     json
// @Param       id path string true "Category ID, e.g. food"
// @Success     200 {object} Response{data=models.Category} "Category"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /v1/categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	category, err := h.categoryService.GetCategory(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	respond(c, http.StatusOK, category, "")
}
