package services

import (
	"testing"

	"fintrack/internal/models"
	"fintrack/internal/testutil"
)

func TestListCategories(t *testing.T) {
	svc := NewCategoryService()

	tests := []struct {
		name   string
		filter CategoryFilter
		want   int
	}{
		{"all", CategoryFilter{}, 15},
		{"expense", CategoryFilter{Type: "expense"}, 10},
		{"income", CategoryFilter{Type: "income"}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.ListCategories(tt.filter)
			if len(got) != tt.want {
				t.Fatalf("expected %d categories, got %d", tt.want, len(got))
			}
			for _, c := range got {
				if tt.filter.Type != "" && string(c.Type) != tt.filter.Type {
					t.Errorf("category %s has type %s, want %s", c.ID, c.Type, tt.filter.Type)
				}
			}
		})
	}

	if first := svc.ListCategories(CategoryFilter{})[0]; first.ID != "food" {
		t.Errorf("expected display order to start with food, got %s", first.ID)
	}
}

func TestGetCategory(t *testing.T) {
	svc := NewCategoryService()

	c, err := svc.GetCategory("salary")
	testutil.AssertNoError(t, err)
	if c.Type != models.CategoryTypeIncome {
		t.Errorf("expected income, got %s", c.Type)
	}

	_, err = svc.GetCategory("groceries")
	testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
}
