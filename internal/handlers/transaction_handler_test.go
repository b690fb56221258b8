package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// --- mock transaction service ---

type mockTransactionService struct {
	createTransactionFn func(in services.TransactionInput) (*models.Transaction, error)
	listTransactionsFn  func(filter services.TransactionFilter) (*services.TransactionList, error)
	getTransactionFn    func(id string) (*models.Transaction, error)
	updateTransactionFn func(id string, patch services.TransactionPatch) (*models.Transaction, error)
	deleteTransactionFn func(id string) error
}

func (m *mockTransactionService) CreateTransaction(_ context.Context, in services.TransactionInput) (*models.Transaction, error) {
	if m.createTransactionFn != nil {
		return m.createTransactionFn(in)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) ListTransactions(_ context.Context, filter services.TransactionFilter) (*services.TransactionList, error) {
	if m.listTransactionsFn != nil {
		return m.listTransactionsFn(filter)
	}
	return &services.TransactionList{Transactions: []models.Transaction{}, Pagination: pagination.NewMeta(1, 10, 0)}, nil
}

func (m *mockTransactionService) GetTransaction(_ context.Context, id string) (*models.Transaction, error) {
	if m.getTransactionFn != nil {
		return m.getTransactionFn(id)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) UpdateTransaction(_ context.Context, id string, patch services.TransactionPatch) (*models.Transaction, error) {
	if m.updateTransactionFn != nil {
		return m.updateTransactionFn(id, patch)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) DeleteTransaction(_ context.Context, id string) error {
	if m.deleteTransactionFn != nil {
		return m.deleteTransactionFn(id)
	}
	return nil
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	r.POST("/transactions", handler.CreateTransaction)
	r.GET("/transactions", handler.ListTransactions)
	r.GET("/transactions/:id", handler.GetTransaction)
	r.PATCH("/transactions/:id", handler.UpdateTransaction)
	r.DELETE("/transactions/:id", handler.DeleteTransaction)
	return r
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var got services.TransactionInput
		txSvc := &mockTransactionService{
			createTransactionFn: func(in services.TransactionInput) (*models.Transaction, error) {
				got = in
				return &models.Transaction{
					Base:        models.Base{ID: validID},
					Amount:      in.Amount,
					Description: in.Description,
					Category:    in.Category,
					Type:        in.Type,
					Date:        time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
				}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupTransactionRouter(NewTransactionHandler(txSvc, audit))

		rec := doRequest(r, "POST", "/transactions",
			`{"amount":12.5,"description":" Lunch ","category":"food","date":"2024-03-05"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Description != "Lunch" || got.Type != models.TransactionTypeExpense {
			t.Errorf("expected normalized input, got %+v", got)
		}
		result := parseJSON(t, rec)
		if result["success"] != true {
			t.Errorf("expected success true, got %v", result["success"])
		}
		if result["message"] != "Transaction created successfully" {
			t.Errorf("unexpected message %v", result["message"])
		}
		tx := result["data"].(map[string]interface{})
		if tx["amount"].(float64) != 12.5 {
			t.Errorf("expected amount 12.5, got %v", tx["amount"])
		}
		if len(audit.entries) != 1 || audit.entries[0].action != services.AuditCreateTransaction {
			t.Errorf("expected one create audit entry, got %+v", audit.entries)
		}
	})

	invalid := map[string]string{
		"zero amount":      `{"amount":0,"description":"x","category":"food"}`,
		"negative amount":  `{"amount":-3,"description":"x","category":"food"}`,
		"missing category": `{"amount":3,"description":"x"}`,
		"unknown category": `{"amount":3,"description":"x","category":"groceries"}`,
		"blank desc":       `{"amount":3,"description":"  ","category":"food"}`,
		"bad type":         `{"amount":3,"description":"x","category":"food","type":"transfer"}`,
		"bad date":         `{"amount":3,"description":"x","category":"food","date":"03/05/2024"}`,
		"malformed json":   `{"amount":`,
		"empty body":       ``,
	}
	for name, body := range invalid {
		t.Run("returns 400 on "+name, func(t *testing.T) {
			called := false
			txSvc := &mockTransactionService{
				createTransactionFn: func(services.TransactionInput) (*models.Transaction, error) {
					called = true
					return &models.Transaction{}, nil
				},
			}
			r := setupTransactionRouter(NewTransactionHandler(txSvc, &mockAuditService{}))

			rec := doRequest(r, "POST", "/transactions", body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			result := parseJSON(t, rec)
			assertErrorCode(t, result, "VALIDATION_FAILED")
			if result["error"] != "Validation failed" {
				t.Errorf("expected generic message, got %v", result["error"])
			}
			if called {
				t.Error("service should not be called for invalid input")
			}
		})
	}

	t.Run("returns 500 on service error", func(t *testing.T) {
		txSvc := &mockTransactionService{
			createTransactionFn: func(services.TransactionInput) (*models.Transaction, error) {
				return nil, apperrors.ErrInternalServer
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/transactions", `{"amount":3,"description":"x","category":"food"}`)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INTERNAL_ERROR")
	})
}

func TestTransactionHandler_ListTransactions(t *testing.T) {
	t.Run("passes filters", func(t *testing.T) {
		var got services.TransactionFilter
		txSvc := &mockTransactionService{
			listTransactionsFn: func(filter services.TransactionFilter) (*services.TransactionList, error) {
				got = filter
				return &services.TransactionList{
					Transactions: []models.Transaction{{Amount: decimal.NewFromInt(5)}},
					Pagination:   pagination.NewMeta(2, 10, 15),
				}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/transactions?page=2&limit=10&category=food&type=expense&startDate=2024-03-01&endDate=2024-03-31", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Page != 2 || got.Limit != 10 || got.Category != "food" || got.Type != "expense" ||
			got.StartDate != "2024-03-01" || got.EndDate != "2024-03-31" {
			t.Errorf("unexpected filter %+v", got)
		}
		data := parseJSON(t, rec)["data"].(map[string]interface{})
		p := data["pagination"].(map[string]interface{})
		if p["hasNext"] != false || p["hasPrev"] != true || p["totalPages"].(float64) != 2 {
			t.Errorf("unexpected pagination %v", p)
		}
		if len(data["transactions"].([]interface{})) != 1 {
			t.Errorf("expected one transaction, got %v", data["transactions"])
		}
	})

	for _, q := range []string{"limit=101", "limit=-1", "page=-2", "page=abc", "type=transfer", "startDate=yesterday"} {
		t.Run("returns 400 on "+q, func(t *testing.T) {
			r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, &mockAuditService{}))

			rec := doRequest(r, "GET", "/transactions?"+q, "")

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			assertErrorCode(t, parseJSON(t, rec), "VALIDATION_FAILED")
		})
	}
}

func TestTransactionHandler_GetTransaction(t *testing.T) {
	t.Run("returns 200", func(t *testing.T) {
		txSvc := &mockTransactionService{
			getTransactionFn: func(id string) (*models.Transaction, error) {
				return &models.Transaction{Base: models.Base{ID: id}}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/transactions/"+validID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		data := parseJSON(t, rec)["data"].(map[string]interface{})
		if data["id"] != validID {
			t.Errorf("expected id %s, got %v", validID, data["id"])
		}
	})

	t.Run("returns 400 on invalid id", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/transactions/42", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_ID")
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		txSvc := &mockTransactionService{
			getTransactionFn: func(string) (*models.Transaction, error) {
				return nil, apperrors.ErrTransactionNotFound
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/transactions/"+validID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "TRANSACTION_NOT_FOUND")
	})
}

func TestTransactionHandler_UpdateTransaction(t *testing.T) {
	t.Run("returns 200 with partial patch", func(t *testing.T) {
		var got services.TransactionPatch
		txSvc := &mockTransactionService{
			updateTransactionFn: func(id string, patch services.TransactionPatch) (*models.Transaction, error) {
				got = patch
				return &models.Transaction{Base: models.Base{ID: id}, Amount: *patch.Amount}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupTransactionRouter(NewTransactionHandler(txSvc, audit))

		rec := doRequest(r, "PATCH", "/transactions/"+validID, `{"amount":"20.25"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Amount == nil || got.Amount.String() != "20.25" {
			t.Errorf("expected amount 20.25, got %v", got.Amount)
		}
		if got.Description != nil || got.Category != nil || got.Type != nil || got.Date != nil {
			t.Errorf("expected other fields nil, got %+v", got)
		}
		if len(audit.entries) != 1 || audit.entries[0].changes["amount"] == nil {
			t.Errorf("expected audit entry with amount change, got %+v", audit.entries)
		}
	})

	t.Run("returns 400 on invalid field", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, &mockAuditService{}))

		rec := doRequest(r, "PATCH", "/transactions/"+validID, `{"description":""}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "VALIDATION_FAILED")
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		txSvc := &mockTransactionService{
			updateTransactionFn: func(string, services.TransactionPatch) (*models.Transaction, error) {
				return nil, apperrors.ErrTransactionNotFound
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc, &mockAuditService{}))

		rec := doRequest(r, "PATCH", "/transactions/"+validID, `{"type":"income"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	t.Run("returns 200", func(t *testing.T) {
		audit := &mockAuditService{}
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, audit))

		rec := doRequest(r, "DELETE", "/transactions/"+validID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["message"] != "Transaction deleted successfully" {
			t.Errorf("unexpected message %v", result["message"])
		}
		if _, ok := result["data"]; ok {
			t.Errorf("expected no data, got %v", result["data"])
		}
		if len(audit.entries) != 1 || audit.entries[0].resourceID != validID {
			t.Errorf("expected delete audit entry, got %+v", audit.entries)
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		txSvc := &mockTransactionService{
			deleteTransactionFn: func(string) error { return apperrors.ErrTransactionNotFound },
		}
		audit := &mockAuditService{}
		r := setupTransactionRouter(NewTransactionHandler(txSvc, audit))

		rec := doRequest(r, "DELETE", "/transactions/"+validID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		if len(audit.entries) != 0 {
			t.Error("failed delete should not be audited")
		}
	})
}
