package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the two supported transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction represents a single recorded income or expense event.
type Transaction struct {
	Base
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Description string          `gorm:"size:200;not null" json:"description"`
	Category    string          `gorm:"size:64;not null;index" json:"category"`
	Date        time.Time       `gorm:"not null;index:idx_transactions_date,sort:desc" json:"date"`
	Type        TransactionType `gorm:"size:16;not null;default:expense;index" json:"type"`
}
