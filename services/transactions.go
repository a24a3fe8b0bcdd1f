package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"nextgenaccounts/backend/models"
	"nextgenaccounts/backend/storage"
)

// TransactionService is the public data-access API for transactions. All
// persistence goes through the injected store; validation always runs before
// any mutation reaches it.
type TransactionService struct {
	store storage.TransactionStore
	now   func() time.Time
}

func NewTransactionService(store storage.TransactionStore) *TransactionService {
	return &TransactionService{
		store: store,
		now:   time.Now,
	}
}

// Create validates the record, stamps server-assigned fields and inserts it.
// The id is always generated here; a caller-supplied id is overwritten so ids
// stay unique across the store's lifetime.
func (s *TransactionService) Create(ctx context.Context, t *models.Transaction) (string, error) {
	if err := ValidateTransaction(t); err != nil {
		return "", err
	}

	t.ID = uuid.NewString()
	now := s.now()
	t.CreatedAt = now
	t.UpdatedAt = now

	if err := s.store.Insert(ctx, t); err != nil {
		return "", err
	}

	log.Debug().Str("id", t.ID).Str("type", t.Type).Float64("amount", t.Amount).Msg("transaction created")
	return t.ID, nil
}

// List returns the organization's transactions matching the filter, newest
// first. The result is never nil.
func (s *TransactionService) List(ctx context.Context, organizationID string, f models.TransactionFilter) ([]models.Transaction, error) {
	results, err := s.store.Query(ctx, organizationID, f)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []models.Transaction{}
	}
	return results, nil
}

// Get looks up a single transaction. A missing id surfaces as
// storage.ErrNotFound, never a panic or a nil-nil pair.
func (s *TransactionService) Get(ctx context.Context, id string) (*models.Transaction, error) {
	return s.store.Get(ctx, id)
}

// Update merges the patch onto the stored record, re-validates the result and
// refreshes updatedAt. id and createdAt are immutable; a patch naming either
// is rejected outright.
func (s *TransactionService) Update(ctx context.Context, id string, patch map[string]json.RawMessage) (*models.Transaction, error) {
	for _, frozen := range []string{"id", "createdAt"} {
		if _, ok := patch[frozen]; ok {
			return nil, &ValidationError{Violations: []FieldViolation{
				{Field: frozen, Message: frozen + " cannot be modified"},
			}}
		}
	}

	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := *existing
	raw, err := json.Marshal(patch)
	if err != nil {
		return nil, &ValidationError{Violations: []FieldViolation{
			{Field: "patch", Message: err.Error()},
		}}
	}
	if err := json.Unmarshal(raw, &merged); err != nil {
		return nil, &ValidationError{Violations: []FieldViolation{
			{Field: "patch", Message: err.Error()},
		}}
	}
	merged.ID = existing.ID
	merged.CreatedAt = existing.CreatedAt

	if err := ValidateTransaction(&merged); err != nil {
		return nil, err
	}
	merged.UpdatedAt = s.now()

	if err := s.store.Update(ctx, &merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Delete removes the record for good. Deleting an id that does not exist
// reports storage.ErrNotFound.
func (s *TransactionService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	log.Debug().Str("id", id).Msg("transaction deleted")
	return nil
}
