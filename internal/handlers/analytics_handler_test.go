package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"
)

type mockAnalyticsService struct {
	getDashboardFn func(month, year int) (*services.Dashboard, error)
}

func (m *mockAnalyticsService) GetDashboard(_ context.Context, month, year int) (*services.Dashboard, error) {
	if m.getDashboardFn != nil {
		return m.getDashboardFn(month, year)
	}
	return &services.Dashboard{}, nil
}

var _ services.AnalyticsServicer = (*mockAnalyticsService)(nil)

func setupAnalyticsRouter(handler *AnalyticsHandler) *gin.Engine {
	r := gin.New()
	r.GET("/analytics", handler.GetDashboard)
	return r
}

func TestAnalyticsHandler_GetDashboard(t *testing.T) {
	t.Run("returns 200", func(t *testing.T) {
		var gotMonth, gotYear int
		svc := &mockAnalyticsService{
			getDashboardFn: func(month, year int) (*services.Dashboard, error) {
				gotMonth, gotYear = month, year
				return &services.Dashboard{
					Summary: services.Summary{
						TotalIncome:      decimal.NewFromInt(1000),
						TotalExpenses:    decimal.NewFromInt(50),
						NetIncome:        decimal.NewFromInt(950),
						TransactionCount: 2,
					},
					CategoryBreakdown:  []services.CategoryTotal{{Category: "food", Name: "Food & Dining", Total: decimal.NewFromInt(50), Count: 1}},
					RecentTransactions: []models.Transaction{},
					MonthlyTrend:       []services.TrendPoint{{Month: "2024-03", Total: decimal.NewFromInt(50)}},
				}, nil
			},
		}
		r := setupAnalyticsRouter(NewAnalyticsHandler(svc))

		rec := doRequest(r, "GET", "/analytics?month=3&year=2024", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotMonth != 3 || gotYear != 2024 {
			t.Errorf("expected 3/2024, got %d/%d", gotMonth, gotYear)
		}
		data := parseJSON(t, rec)["data"].(map[string]interface{})
		summary := data["summary"].(map[string]interface{})
		if summary["netIncome"].(float64) != 950 || summary["transactionCount"].(float64) != 2 {
			t.Errorf("unexpected summary %v", summary)
		}
		trend := data["monthlyTrend"].([]interface{})
		if trend[0].(map[string]interface{})["month"] != "2024-03" {
			t.Errorf("unexpected trend %v", trend)
		}
	})

	t.Run("defaults are left to the service", func(t *testing.T) {
		gotMonth, gotYear := -1, -1
		svc := &mockAnalyticsService{
			getDashboardFn: func(month, year int) (*services.Dashboard, error) {
				gotMonth, gotYear = month, year
				return &services.Dashboard{}, nil
			},
		}
		r := setupAnalyticsRouter(NewAnalyticsHandler(svc))

		rec := doRequest(r, "GET", "/analytics", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotMonth != 0 || gotYear != 0 {
			t.Errorf("expected zero month and year, got %d/%d", gotMonth, gotYear)
		}
	})

	t.Run("returns 400 on month 13", func(t *testing.T) {
		r := setupAnalyticsRouter(NewAnalyticsHandler(&mockAnalyticsService{}))

		rec := doRequest(r, "GET", "/analytics?month=13", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 500 on service error", func(t *testing.T) {
		svc := &mockAnalyticsService{
			getDashboardFn: func(int, int) (*services.Dashboard, error) {
				return nil, apperrors.ErrInternalServer
			},
		}
		r := setupAnalyticsRouter(NewAnalyticsHandler(svc))

		rec := doRequest(r, "GET", "/analytics", "")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}
