package services

import (
	"context"
	"testing"

	"fintrack/internal/models"
	"fintrack/internal/testutil"
)

func TestAuditLog(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuditService(db)

	id := "01900000-0000-7000-8000-000000000001"
	svc.Log(context.Background(), AuditUpdateBudget, "budget", id, "10.0.0.1", map[string]interface{}{"amount": "300"})

	var entry models.AuditLog
	if err := db.First(&entry).Error; err != nil {
		t.Fatalf("expected audit entry: %v", err)
	}
	if entry.Action != AuditUpdateBudget || entry.ResourceID != id || entry.IPAddress != "10.0.0.1" {
		t.Errorf("unexpected entry %+v", entry)
	}
	if entry.Changes != `{"amount":"300"}` {
		t.Errorf("unexpected changes %s", entry.Changes)
	}
}

func TestAuditLogFailureIsSwallowed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewAuditService(db)
	testutil.TeardownTestDB(t, db)

	// Must not panic on a closed database.
	svc.Log(context.Background(), AuditDeleteTransaction, "transaction", "x", "", nil)
}
