package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"nextgenaccounts/backend/models"
	"nextgenaccounts/backend/storage"
)

func newTestService() (*TransactionService, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	return NewTransactionService(store), store
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tx := validTransaction()
	tx.Category = "Sales"
	tx.Notes = "first sale of the quarter"

	id, err := svc.Create(ctx, &tx)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected a generated id")
	}

	got, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("expected server-assigned timestamps")
	}
	if !got.CreatedAt.Equal(got.UpdatedAt) {
		t.Error("expected createdAt == updatedAt on a fresh record")
	}
	if got.Amount != tx.Amount || got.Description != tx.Description ||
		got.Type != tx.Type || got.Category != tx.Category || got.Notes != tx.Notes {
		t.Errorf("stored record differs from input: %+v", got)
	}
}

func TestCreateAssignsServerID(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	first := validTransaction()
	first.ID = "client-chosen"
	firstID, err := svc.Create(ctx, &first)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if firstID == "client-chosen" {
		t.Error("expected caller-supplied id to be replaced")
	}

	second := validTransaction()
	second.ID = "client-chosen"
	secondID, err := svc.Create(ctx, &second)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if secondID == firstID {
		t.Errorf("expected distinct ids, both creates returned %q", secondID)
	}

	if _, err := svc.Get(ctx, "client-chosen"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected no record under the client-chosen id, got %v", err)
	}
}

func TestCreateInvalidRecordNeverPersists(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tx := validTransaction()
	tx.Amount = -10

	if _, err := svc.Create(ctx, &tx); err == nil {
		t.Fatal("expected validation error")
	}

	list, err := svc.List(ctx, tx.OrganizationID, models.TransactionFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty store after failed create, got %d records", len(list))
	}
}

func TestListSortedByDateDescending(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	dates := []time.Time{
		time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC),
	}
	for i, d := range dates {
		tx := validTransaction()
		tx.Date = d
		tx.Description = "tx " + d.Format("2006-01-02")
		tx.Amount = float64(100 * (i + 1))
		if _, err := svc.Create(ctx, &tx); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	list, err := svc.List(ctx, "org-1", models.TransactionFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 records, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i].Date.After(list[i-1].Date) {
			t.Errorf("list not sorted by date descending at index %d", i)
		}
	}
}

func TestListDateTiesKeepInsertionOrder(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	descriptions := []string{"first", "second", "third"}
	for _, desc := range descriptions {
		tx := validTransaction()
		tx.Date = date
		tx.Description = desc
		if _, err := svc.Create(ctx, &tx); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	list, err := svc.List(ctx, "org-1", models.TransactionFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	for i, desc := range descriptions {
		if list[i].Description != desc {
			t.Errorf("expected %q at index %d, got %q", desc, i, list[i].Description)
		}
	}
}

func TestListFiltersCompose(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	base := validTransaction()
	sell := base
	sell.Type = models.TypeSell
	sell.PaymentMethod = "Cash"
	sell.Description = "Counter sale"

	buy := base
	buy.Type = models.TypeBuy
	buy.PaymentMethod = "UPI"
	buy.Description = "Stock purchase"
	buy.Reference = "INV-2024-091"

	other := base
	other.OrganizationID = "org-2"
	other.Description = "Different org sale"

	for _, tx := range []models.Transaction{sell, buy, other} {
		record := tx
		if _, err := svc.Create(ctx, &record); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	// Organization scoping
	list, err := svc.List(ctx, "org-1", models.TransactionFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 org-1 records, got %d", len(list))
	}

	// Type filter
	list, _ = svc.List(ctx, "org-1", models.TransactionFilter{Type: models.TypeBuy})
	if len(list) != 1 || list[0].Description != "Stock purchase" {
		t.Errorf("type filter failed: %+v", list)
	}

	// Case-insensitive search across description and reference
	list, _ = svc.List(ctx, "org-1", models.TransactionFilter{Search: "inv-2024"})
	if len(list) != 1 || list[0].Reference != "INV-2024-091" {
		t.Errorf("search filter failed: %+v", list)
	}

	// No match returns an empty slice, not nil
	list, _ = svc.List(ctx, "org-1", models.TransactionFilter{Search: "no such text"})
	if list == nil || len(list) != 0 {
		t.Errorf("expected empty non-nil list, got %v", list)
	}
}

func TestUpdateMergesPatch(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tx := validTransaction()
	id, err := svc.Create(ctx, &tx)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := svc.Update(ctx, id, map[string]json.RawMessage{
		"amount": json.RawMessage(`30000`),
		"notes":  json.RawMessage(`"revised invoice"`),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.Amount != 30000 {
		t.Errorf("expected amount 30000, got %f", updated.Amount)
	}
	if updated.Notes != "revised invoice" {
		t.Errorf("expected notes to be patched, got %q", updated.Notes)
	}
	if updated.Description != tx.Description {
		t.Errorf("unpatched field changed: %q", updated.Description)
	}
	if !updated.CreatedAt.Equal(tx.CreatedAt) {
		t.Error("createdAt changed on update")
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) && !updated.UpdatedAt.Equal(updated.CreatedAt) {
		t.Error("updatedAt not refreshed")
	}
}

func TestUpdateInvalidAmountLeavesRecordUnchanged(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tx := validTransaction()
	id, err := svc.Create(ctx, &tx)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err = svc.Update(ctx, id, map[string]json.RawMessage{
		"amount": json.RawMessage(`-5`),
	})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	got, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Amount != tx.Amount {
		t.Errorf("stored amount changed after failed update: %f", got.Amount)
	}
}

func TestUpdateRejectsImmutableFields(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tx := validTransaction()
	id, err := svc.Create(ctx, &tx)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	for _, frozen := range []string{"id", "createdAt"} {
		_, err := svc.Update(ctx, id, map[string]json.RawMessage{
			frozen: json.RawMessage(`"tampered"`),
		})
		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected ValidationError for %s, got %v", frozen, err)
		}
		if !validationErr.HasField(frozen) {
			t.Errorf("expected violation naming %q, got %v", frozen, validationErr.Fields())
		}
	}
}

func TestUpdateMissingIDReturnsNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Update(context.Background(), "no-such-id", map[string]json.RawMessage{
		"amount": json.RawMessage(`10`),
	})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteMissingIDReturnsNotFound(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tx := validTransaction()
	if _, err := svc.Create(ctx, &tx); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Delete(ctx, "no-such-id"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	// The store is unchanged.
	list, _ := svc.List(ctx, "org-1", models.TransactionFilter{})
	if len(list) != 1 {
		t.Errorf("expected 1 record after failed delete, got %d", len(list))
	}
}

func TestDeleteRemovesRecord(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tx := validTransaction()
	id, err := svc.Create(ctx, &tx)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Delete(ctx, id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := svc.Get(ctx, id); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
