package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a per-category monthly spending ceiling. Spent is a cache
// recomputed from transactions whenever budgets are read.
type Budget struct {
	Base
	Category string          `gorm:"size:64;not null;uniqueIndex:idx_budgets_category_period" json:"category"`
	Amount   decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Month    int             `gorm:"not null;uniqueIndex:idx_budgets_category_period" json:"month"`
	Year     int             `gorm:"not null;uniqueIndex:idx_budgets_category_period" json:"year"`
	Spent    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"spent"`
}

// Window returns the month interval the budget applies to.
func (b *Budget) Window() (start, end time.Time) {
	return MonthWindow(b.Year, b.Month)
}
