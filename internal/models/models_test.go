package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestPredefinedCategories(t *testing.T) {
	var income, expense int
	seen := map[string]bool{}
	for _, c := range PredefinedCategories {
		if seen[c.ID] {
			t.Errorf("duplicate category id %q", c.ID)
		}
		seen[c.ID] = true
		switch c.Type {
		case CategoryTypeIncome:
			income++
		case CategoryTypeExpense:
			expense++
		default:
			t.Errorf("category %q has invalid type %q", c.ID, c.Type)
		}
	}
	if expense != 10 || income != 5 {
		t.Errorf("expected 10 expense and 5 income categories, got %d and %d", expense, income)
	}
}

func TestLookupCategory(t *testing.T) {
	c, ok := LookupCategory("food")
	if !ok {
		t.Fatal("expected food to exist")
	}
	if c.Name != "Food & Dining" {
		t.Errorf("unexpected name %q", c.Name)
	}

	if IsCategoryID("groceries") {
		t.Error("groceries is not a predefined category")
	}
	if got := CategoryName("groceries"); got != "groceries" {
		t.Errorf("expected raw id fallback, got %q", got)
	}
}

func TestMonthWindow(t *testing.T) {
	start, end := MonthWindow(2024, 2)
	if !start.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start %s", start)
	}
	if !end.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected end %s", end)
	}

	start, _ = MonthWindow(2024, 0)
	if start.Year() != 2023 || start.Month() != time.December {
		t.Errorf("expected December 2023, got %s", start)
	}

	if got := MonthLabel(2024, 3); got != "2024-03" {
		t.Errorf("expected 2024-03, got %s", got)
	}
}

func TestBudgetWindow(t *testing.T) {
	b := Budget{Month: 12, Year: 2024}

	start, end := b.Window()
	if !start.Equal(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start %s", start)
	}
	if !end.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected end %s", end)
	}
}

func TestAmountJSON(t *testing.T) {
	tx := Transaction{Amount: decimal.RequireFromString("12.50")}
	data, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["amount"] != 12.5 {
		t.Errorf("expected numeric amount 12.5, got %#v", out["amount"])
	}
}
