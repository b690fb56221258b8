package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/validator"
)

// Spending thresholds, in percent of the budget amount.
const (
	warningThreshold  = 80
	exceededThreshold = 100
)

var hundred = decimal.NewFromInt(100)

// budgetService handles budget-related business logic.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// CreateBudget stores a budget for a category and month. A second budget
// for the same category, month and year is rejected.
func (s *budgetService) CreateBudget(ctx context.Context, in BudgetInput) (*BudgetView, error) {
	if violations := validator.Check(&in); violations != nil {
		return nil, apperrors.Wrap(apperrors.ErrValidationFailed, violations)
	}

	budget := &models.Budget{
		Category: in.Category,
		Amount:   in.Amount,
		Month:    in.Month,
		Year:     in.Year,
		Spent:    decimal.Zero,
	}

	if err := s.db.WithContext(ctx).Create(budget).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, apperrors.ErrDuplicateBudget
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.reconcile(ctx, budget.ID)
}

// ListBudgets reconciles and returns every budget in scope, ordered by
// category, then year and month.
func (s *budgetService) ListBudgets(ctx context.Context, filter BudgetFilter) ([]BudgetView, error) {
	if violations := validator.Check(&filter); violations != nil {
		return nil, apperrors.Wrap(apperrors.ErrValidationFailed, violations)
	}

	q := s.db.WithContext(ctx).Model(&models.Budget{})
	if filter.Month != 0 {
		q = q.Where("month = ?", filter.Month)
	}
	if filter.Year != 0 {
		q = q.Where("year = ?", filter.Year)
	}

	var ids []string
	if err := q.Order("category ASC").Order("year ASC").Order("month ASC").Pluck("id", &ids).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	views := make([]BudgetView, 0, len(ids))
	for _, id := range ids {
		view, err := s.reconcile(ctx, id)
		if errors.Is(err, apperrors.ErrBudgetNotFound) {
			// Deleted after the listing query.
			continue
		}
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// GetBudget returns the reconciled view of one budget.
func (s *budgetService) GetBudget(ctx context.Context, id string) (*BudgetView, error) {
	return s.reconcile(ctx, id)
}

// UpdateBudget applies the fields present in patch. Moving a budget onto a
// category and month that already has one is rejected.
func (s *budgetService) UpdateBudget(ctx context.Context, id string, patch BudgetPatch) (*BudgetView, error) {
	if violations := validator.Check(&patch); violations != nil {
		return nil, apperrors.Wrap(apperrors.ErrValidationFailed, violations)
	}

	var budget models.Budget
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := make(map[string]interface{})
	if patch.Category != nil {
		updates["category"] = *patch.Category
	}
	if patch.Amount != nil {
		updates["amount"] = *patch.Amount
	}
	if patch.Month != nil {
		updates["month"] = *patch.Month
	}
	if patch.Year != nil {
		updates["year"] = *patch.Year
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&budget).Updates(updates).Error; err != nil {
			if isDuplicateKey(err) {
				return nil, apperrors.ErrDuplicateBudget
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.reconcile(ctx, id)
}

// DeleteBudget permanently removes a budget.
func (s *budgetService) DeleteBudget(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Budget{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrBudgetNotFound
	}
	return nil
}

// reconcile recomputes the spent amount of one budget from the expense
// transactions in its month and persists it. The budget row is locked for
// the duration so concurrent reads write back a consistent value.
func (s *budgetService) reconcile(ctx context.Context, id string) (*BudgetView, error) {
	var budget models.Budget
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).First(&budget).Error; err != nil {
			return err
		}

		start, end := budget.Window()
		spent, err := sumExpenses(tx, budget.Category, start, end)
		if err != nil {
			return err
		}
		if budget.Spent.Equal(spent) {
			return nil
		}

		if err := tx.Model(&budget).UpdateColumn("spent", spent).Error; err != nil {
			return err
		}
		budget.Spent = spent
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	view := NewBudgetView(budget)
	return &view, nil
}

// sumExpenses totals the expense transactions of category within [start, end).
func sumExpenses(db *gorm.DB, category string, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("category = ? AND type = ? AND date >= ? AND date < ?",
			category, models.TransactionTypeExpense, start, end).
		Row().Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total.Round(2), nil
}

// NewBudgetView derives remaining, percentage and status from a budget's
// amount and spent values.
func NewBudgetView(b models.Budget) BudgetView {
	view := BudgetView{
		Budget:    b,
		Remaining: models.MaxDecimal(decimal.Zero, b.Amount.Sub(b.Spent)),
		Status:    BudgetStatusGood,
	}

	if !b.Amount.IsPositive() {
		if b.Spent.IsPositive() {
			view.Status = BudgetStatusExceeded
		}
		return view
	}

	view.Percentage = b.Spent.Div(b.Amount).Mul(hundred).Round(2).InexactFloat64()
	switch {
	case view.Percentage >= exceededThreshold:
		view.Status = BudgetStatusExceeded
	case view.Percentage >= warningThreshold:
		view.Status = BudgetStatusWarning
	}
	return view
}

// isDuplicateKey reports whether err is a unique constraint violation.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value")
}
