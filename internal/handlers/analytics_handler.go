package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/services"
)

// AnalyticsHandler serves the dashboard.
type AnalyticsHandler struct {
	analyticsService services.AnalyticsServicer
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService services.AnalyticsServicer) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GetDashboard handles the analytics dashboard
// @Summary     Get dashboard analytics
// @Description Monthly totals, expense breakdown by category, 5 most recent transactions and a 6-month expense trend
// @Tags        analytics
// @Produce     json
// @Param       month query int false "Month (1-12, default current)"
// @Param       year  query int false "Year (default current)"
// @Success     200 {object} Response{data=services.Dashboard} "Dashboard"
// @Failure     400 {object} ErrorResponse "Validation failed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/analytics [get]
func (h *AnalyticsHandler) GetDashboard(c *gin.Context) {
	var q services.DashboardQuery
	if !bindQuery(c, &q) {
		return
	}

	dash, err := h.analyticsService.GetDashboard(c.Request.Context(), q.Month, q.Year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respond(c, http.StatusOK, dash, "")
}
