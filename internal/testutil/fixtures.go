package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Date returns midnight UTC on the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CreateTestTransaction stores a transaction with the given type, category,
// amount (a decimal string such as "12.50") and date.
func CreateTestTransaction(t *testing.T, db *gorm.DB, txType models.TransactionType, category, amount string, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Amount:      decimal.RequireFromString(amount),
		Description: fmt.Sprintf("Test Transaction %d", nextID()),
		Category:    category,
		Date:        date.UTC(),
		Type:        txType,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestExpense stores an expense transaction.
func CreateTestExpense(t *testing.T, db *gorm.DB, category, amount string, date time.Time) *models.Transaction {
	t.Helper()
	return CreateTestTransaction(t, db, models.TransactionTypeExpense, category, amount, date)
}

// CreateTestIncome stores an income transaction.
func CreateTestIncome(t *testing.T, db *gorm.DB, category, amount string, date time.Time) *models.Transaction {
	t.Helper()
	return CreateTestTransaction(t, db, models.TransactionTypeIncome, category, amount, date)
}

// CreateTestBudget stores a budget for category in the given month.
func CreateTestBudget(t *testing.T, db *gorm.DB, category, amount string, month, year int) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		Category: category,
		Amount:   decimal.RequireFromString(amount),
		Month:    month,
		Year:     year,
		Spent:    decimal.Zero,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}
