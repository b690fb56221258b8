package services

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

const (
	recentTransactionsLimit = 5
	trendMonths             = 6
)

// analyticsService builds the dashboard from aggregate queries.
type analyticsService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewAnalyticsService creates a new AnalyticsServicer.
func NewAnalyticsService(db *gorm.DB) AnalyticsServicer {
	return &analyticsService{db: db, now: time.Now}
}

// GetDashboard aggregates the given month. Zero month or year default to
// the current UTC month and year. The four sections are queried concurrently.
func (s *analyticsService) GetDashboard(ctx context.Context, month, year int) (*Dashboard, error) {
	now := s.now().UTC()
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	if month < 1 || month > 12 {
		return nil, apperrors.WithMessage(apperrors.ErrValidationFailed, "month must be between 1 and 12")
	}

	var dash Dashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		summary, err := s.summary(gctx, year, month)
		dash.Summary = summary
		return err
	})
	g.Go(func() error {
		breakdown, err := s.categoryBreakdown(gctx, year, month)
		dash.CategoryBreakdown = breakdown
		return err
	})
	g.Go(func() error {
		recent, err := s.recentTransactions(gctx)
		dash.RecentTransactions = recent
		return err
	})
	g.Go(func() error {
		trend, err := s.monthlyTrend(gctx, year, month)
		dash.MonthlyTrend = trend
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &dash, nil
}

type typeTotal struct {
	Type  models.TransactionType
	Total decimal.Decimal
	Count int64
}

func (s *analyticsService) summary(ctx context.Context, year, month int) (Summary, error) {
	start, end := models.MonthWindow(year, month)

	var rows []typeTotal
	err := s.db.WithContext(ctx).Model(&models.Transaction{}).
		Select("type, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("date >= ? AND date < ?", start, end).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return Summary{}, err
	}

	out := Summary{TotalIncome: decimal.Zero, TotalExpenses: decimal.Zero}
	for _, r := range rows {
		switch r.Type {
		case models.TransactionTypeIncome:
			out.TotalIncome = r.Total.Round(2)
		case models.TransactionTypeExpense:
			out.TotalExpenses = r.Total.Round(2)
		}
		out.TransactionCount += r.Count
	}
	out.NetIncome = out.TotalIncome.Sub(out.TotalExpenses)
	return out, nil
}

type categoryRow struct {
	Category string
	Total    decimal.Decimal
	Count    int64
}

func (s *analyticsService) categoryBreakdown(ctx context.Context, year, month int) ([]CategoryTotal, error) {
	start, end := models.MonthWindow(year, month)

	var rows []categoryRow
	err := s.db.WithContext(ctx).Model(&models.Transaction{}).
		Select("category, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("type = ? AND date >= ? AND date < ?", models.TransactionTypeExpense, start, end).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]CategoryTotal, 0, len(rows))
	for _, r := range rows {
		item := CategoryTotal{
			Category: r.Category,
			Name:     models.CategoryName(r.Category),
			Total:    r.Total.Round(2),
			Count:    r.Count,
		}
		if c, ok := models.LookupCategory(r.Category); ok {
			item.Color = c.Color
		}
		out = append(out, item)
	}

	// Largest total first; ties by category id.
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}

func (s *analyticsService) recentTransactions(ctx context.Context) ([]models.Transaction, error) {
	recent := make([]models.Transaction, 0, recentTransactionsLimit)
	err := s.db.WithContext(ctx).
		Order("date DESC").Order("id DESC").
		Limit(recentTransactionsLimit).
		Find(&recent).Error
	return recent, err
}

type monthTotal struct {
	Total decimal.Decimal
	Count int64
}

// monthlyTrend totals expenses for each of the trendMonths calendar months
// ending at the target month, oldest first. Months without expenses are
// left out.
func (s *analyticsService) monthlyTrend(ctx context.Context, year, month int) ([]TrendPoint, error) {
	out := make([]TrendPoint, 0, trendMonths)
	for i := trendMonths - 1; i >= 0; i-- {
		start, end := models.MonthWindow(year, month-i)

		var row monthTotal
		err := s.db.WithContext(ctx).Model(&models.Transaction{}).
			Select("COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
			Where("type = ? AND date >= ? AND date < ?", models.TransactionTypeExpense, start, end).
			Scan(&row).Error
		if err != nil {
			return nil, err
		}
		if row.Count == 0 {
			continue
		}

		out = append(out, TrendPoint{
			Month: models.MonthLabel(start.Year(), int(start.Month())),
			Total: row.Total.Round(2),
		})
	}
	return out, nil
}
