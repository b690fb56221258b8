package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// TransactionInput is the payload for recording a transaction.
type TransactionInput struct {
	Amount      decimal.Decimal        `json:"amount" binding:"required,money"`
	Description string                 `json:"description" binding:"required,min=1,max=200"`
	Category    string                 `json:"category" binding:"required,category_id"`
	Date        *string                `json:"date,omitempty" binding:"omitempty,flexdate"`
	Type        models.TransactionType `json:"type" binding:"required,transaction_type"`
}

// Normalize trims the description and defaults the type to expense.
func (in *TransactionInput) Normalize() {
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	if in.Type == "" {
		in.Type = models.TransactionTypeExpense
	}
}

// TransactionPatch is a partial transaction update. Nil fields are left unchanged.
type TransactionPatch struct {
	Amount      *decimal.Decimal        `json:"amount,omitempty" binding:"omitempty,money"`
	Description *string                 `json:"description,omitempty" binding:"omitempty,min=1,max=200"`
	Category    *string                 `json:"category,omitempty" binding:"omitempty,category_id"`
	Date        *string                 `json:"date,omitempty" binding:"omitempty,flexdate"`
	Type        *models.TransactionType `json:"type,omitempty" binding:"omitempty,transaction_type"`
}

// Normalize trims string fields that are present.
func (p *TransactionPatch) Normalize() {
	if p.Description != nil {
		d := strings.TrimSpace(*p.Description)
		p.Description = &d
	}
	if p.Category != nil {
		c := strings.TrimSpace(*p.Category)
		p.Category = &c
	}
}

// TransactionFilter holds the query parameters for listing transactions.
// Date bounds are inclusive; a bare YYYY-MM-DD end date covers the whole day.
type TransactionFilter struct {
	pagination.PageRequest
	Category  string `form:"category" binding:"omitempty,max=64"`
	Type      string `form:"type" binding:"omitempty,transaction_type"`
	StartDate string `form:"startDate" binding:"omitempty,flexdate"`
	EndDate   string `form:"endDate" binding:"omitempty,flexdate"`
}

// TransactionList is one page of transactions.
type TransactionList struct {
	Transactions []models.Transaction `json:"transactions"`
	Pagination   pagination.Meta      `json:"pagination"`
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(ctx context.Context, in TransactionInput) (*models.Transaction, error)
	ListTransactions(ctx context.Context, filter TransactionFilter) (*TransactionList, error)
	GetTransaction(ctx context.Context, id string) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, patch TransactionPatch) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
}

// BudgetInput is the payload for creating a budget.
type BudgetInput struct {
	Category string          `json:"category" binding:"required,category_id"`
	Amount   decimal.Decimal `json:"amount" binding:"required,money"`
	Month    int             `json:"month" binding:"required,min=1,max=12"`
	Year     int             `json:"year" binding:"required,min=2020"`
}

// Normalize trims the category.
func (in *BudgetInput) Normalize() {
	in.Category = strings.TrimSpace(in.Category)
}

// BudgetPatch is a partial budget update. Nil fields are left unchanged.
type BudgetPatch struct {
	Category *string          `json:"category,omitempty" binding:"omitempty,category_id"`
	Amount   *decimal.Decimal `json:"amount,omitempty" binding:"omitempty,money"`
	Month    *int             `json:"month,omitempty" binding:"omitempty,min=1,max=12"`
	Year     *int             `json:"year,omitempty" binding:"omitempty,min=2020"`
}

// Normalize trims the category when present.
func (p *BudgetPatch) Normalize() {
	if p.Category != nil {
		c := strings.TrimSpace(*p.Category)
		p.Category = &c
	}
}

// BudgetFilter narrows a budget listing to a month and/or year.
type BudgetFilter struct {
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
	Year  int `form:"year" binding:"omitempty,min=2020"`
}

// BudgetStatus classifies how much of a budget has been used.
type BudgetStatus string

const (
	BudgetStatusGood     BudgetStatus = "good"
	BudgetStatusWarning  BudgetStatus = "warning"
	BudgetStatusExceeded BudgetStatus = "exceeded"
)

// BudgetView is a budget with its reconciled spending figures.
type BudgetView struct {
	models.Budget
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage float64         `json:"percentage"`
	Status     BudgetStatus    `json:"status"`
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(ctx context.Context, in BudgetInput) (*BudgetView, error)
	ListBudgets(ctx context.Context, filter BudgetFilter) ([]BudgetView, error)
	GetBudget(ctx context.Context, id string) (*BudgetView, error)
	UpdateBudget(ctx context.Context, id string, patch BudgetPatch) (*BudgetView, error)
	DeleteBudget(ctx context.Context, id string) error
}

// CategoryFilter narrows the category listing to one type.
type CategoryFilter struct {
	Type string `form:"type" binding:"omitempty,category_type"`
}

// CategoryServicer defines the contract for category lookups.
type CategoryServicer interface {
	ListCategories(filter CategoryFilter) []models.Category
	GetCategory(id string) (*models.Category, error)
}

// DashboardQuery selects the month the dashboard reports on. Zero values
// default to the current UTC month and year.
type DashboardQuery struct {
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
	Year  int `form:"year" binding:"omitempty,min=2000,max=9999"`
}

// Summary holds the monthly income and expense totals.
type Summary struct {
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	NetIncome        decimal.Decimal `json:"netIncome"`
	TransactionCount int64           `json:"transactionCount"`
}

// CategoryTotal is the expense total for one category in the month.
type CategoryTotal struct {
	Category string          `json:"category"`
	Name     string          `json:"name"`
	Color    string          `json:"color,omitempty"`
	Total    decimal.Decimal `json:"total"`
	Count    int64           `json:"count"`
}

// TrendPoint is the expense total for one month, labelled YYYY-MM.
type TrendPoint struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// Dashboard is the aggregated analytics payload.
type Dashboard struct {
	Summary            Summary              `json:"summary"`
	CategoryBreakdown  []CategoryTotal      `json:"categoryBreakdown"`
	RecentTransactions []models.Transaction `json:"recentTransactions"`
	MonthlyTrend       []TrendPoint         `json:"monthlyTrend"`
}

// AnalyticsServicer defines the contract for the dashboard aggregation.
type AnalyticsServicer interface {
	GetDashboard(ctx context.Context, month, year int) (*Dashboard, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(ctx context.Context, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
