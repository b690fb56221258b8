package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Valid reports whether t is income or expense.
func (t CategoryType) Valid() bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense
}

// Category is a fixed classification tag. Categories are compiled into the
// binary and never stored.
type Category struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Icon  string       `json:"icon"`
	Color string       `json:"color"`
	Type  CategoryType `json:"type"`
}

// PredefinedCategories is the closed set of categories transactions and
// budgets may reference. Order is the display order.
var PredefinedCategories = []Category{
	// Expense categories
	{ID: "food", Name: "Food & Dining", Icon: "🍽️", Color: "#FF6B6B", Type: CategoryTypeExpense},
	{ID: "transportation", Name: "Transportation", Icon: "🚗", Color: "#4ECDC4", Type: CategoryTypeExpense},
	{ID: "shopping", Name: "Shopping", Icon: "🛍️", Color: "#45B7D1", Type: CategoryTypeExpense},
	{ID: "entertainment", Name: "Entertainment", Icon: "🎬", Color: "#96CEB4", Type: CategoryTypeExpense},
	{ID: "bills", Name: "Bills & Utilities", Icon: "💡", Color: "#FFEAA7", Type: CategoryTypeExpense},
	{ID: "healthcare", Name: "Healthcare", Icon: "🏥", Color: "#DDA0DD", Type: CategoryTypeExpense},
	{ID: "education", Name: "Education", Icon: "📚", Color: "#98D8C8", Type: CategoryTypeExpense},
	{ID: "travel", Name: "Travel", Icon: "✈️", Color: "#F7DC6F", Type: CategoryTypeExpense},
	{ID: "fitness", Name: "Fitness & Sports", Icon: "💪", Color: "#BB8FCE", Type: CategoryTypeExpense},
	{ID: "other-expense", Name: "Other Expenses", Icon: "📦", Color: "#AED6F1", Type: CategoryTypeExpense},

	// Income categories
	{ID: "salary", Name: "Salary", Icon: "💰", Color: "#58D68D", Type: CategoryTypeIncome},
	{ID: "freelance", Name: "Freelance", Icon: "💻", Color: "#5DADE2", Type: CategoryTypeIncome},
	{ID: "investment", Name: "Investment", Icon: "📈", Color: "#F8C471", Type: CategoryTypeIncome},
	{ID: "business", Name: "Business", Icon: "🏢", Color: "#85C1E9", Type: CategoryTypeIncome},
	{ID: "other-income", Name: "Other Income", Icon: "💎", Color: "#82E0AA", Type: CategoryTypeIncome},
}

var categoriesByID = func() map[string]Category {
	m := make(map[string]Category, len(PredefinedCategories))
	for _, c := range PredefinedCategories {
		m[c.ID] = c
	}
	return m
}()

// LookupCategory returns the registry entry for id.
func LookupCategory(id string) (Category, bool) {
	c, ok := categoriesByID[id]
	return c, ok
}

// IsCategoryID reports whether id names a predefined category.
func IsCategoryID(id string) bool {
	_, ok := categoriesByID[id]
	return ok
}

// CategoryName returns the display name for id, or id itself when the
// category is unknown.
func CategoryName(id string) string {
	if c, ok := categoriesByID[id]; ok {
		return c.Name
	}
	return id
}
