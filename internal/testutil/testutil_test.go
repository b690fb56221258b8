package testutil_test

import (
	"testing"

	"fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"transactions", "budgets", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestSetupTestDBIsolation(t *testing.T) {
	first := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, first)
	second := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, second)

	testutil.CreateTestExpense(t, first, "food", "10", testutil.Date(2024, 3, 1))

	if n := testutil.CountRows(t, second, &models.Transaction{}); n != 0 {
		t.Errorf("expected isolated database, found %d rows", n)
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	tx := testutil.CreateTestIncome(t, db, "salary", "1000.50", testutil.Date(2024, 3, 1))
	if tx.ID == "" {
		t.Fatal("transaction should have an ID")
	}
	testutil.AssertDecimal(t, "1000.5", tx.Amount)
	if tx.Type != models.TransactionTypeIncome {
		t.Errorf("expected income, got %s", tx.Type)
	}

	budget := testutil.CreateTestBudget(t, db, "food", "100", 3, 2024)
	if budget.ID == "" {
		t.Fatal("budget should have an ID")
	}

	var stored models.Transaction
	if err := db.First(&stored, "id = ?", tx.ID).Error; err != nil {
		t.Fatalf("failed to reload transaction: %v", err)
	}
	testutil.AssertDecimal(t, "1000.50", stored.Amount)
	if !stored.Date.Equal(tx.Date) {
		t.Errorf("expected date %s, got %s", tx.Date, stored.Date)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrBudgetNotFound, "custom message")
	testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
