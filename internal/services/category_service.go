package services

import (
	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// categoryService serves the compiled-in category registry.
type categoryService struct {
	categories []models.Category
}

// NewCategoryService creates a new CategoryServicer over the predefined categories.
func NewCategoryService() CategoryServicer {
	return &categoryService{categories: models.PredefinedCategories}
}

// ListCategories returns the registry in display order, optionally narrowed to one type.
func (s *categoryService) ListCategories(filter CategoryFilter) []models.Category {
	out := make([]models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		if filter.Type != "" && string(c.Type) != filter.Type {
			continue
		}
		out = append(out, c)
	}
	return out
}

// GetCategory returns a single registry entry.
func (s *categoryService) GetCategory(id string) (*models.Category, error) {
	c, ok := models.LookupCategory(id)
	if !ok {
		return nil, apperrors.ErrCategoryNotFound
	}
	return &c, nil
}
