package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"fintrack/internal/services"
)

func setupCategoryRouter(handler *CategoryHandler) *gin.Engine {
	r := gin.New()
	r.GET("/categories", handler.ListCategories)
	r.GET("/categories/:id", handler.GetCategory)
	return r
}

func TestCategoryHandler_ListCategories(t *testing.T) {
	r := setupCategoryRouter(NewCategoryHandler(services.NewCategoryService()))

	tests := []struct {
		query string
		want  int
	}{
		{"", 15},
		{"?type=expense", 10},
		{"?type=income", 5},
	}
	for _, tt := range tests {
		rec := doRequest(r, "GET", "/categories"+tt.query, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%q: expected 200, got %d", tt.query, rec.Code)
		}
		data := parseJSON(t, rec)["data"].([]interface{})
		if len(data) != tt.want {
			t.Errorf("%q: expected %d categories, got %d", tt.query, tt.want, len(data))
		}
	}

	rec := doRequest(r, "GET", "/categories?type=transfer", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	assertErrorCode(t, parseJSON(t, rec), "VALIDATION_FAILED")
}

func TestCategoryHandler_GetCategory(t *testing.T) {
	r := setupCategoryRouter(NewCategoryHandler(services.NewCategoryService()))

	rec := doRequest(r, "GET", "/categories/food", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data := parseJSON(t, rec)["data"].(map[string]interface{})
	if data["name"] != "Food & Dining" || data["color"] != "#FF6B6B" || data["type"] != "expense" {
		t.Errorf("unexpected category %v", data)
	}

	rec = doRequest(r, "GET", "/categories/groceries", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	assertErrorCode(t, parseJSON(t, rec), "CATEGORY_NOT_FOUND")
}
