package storage

import (
	"context"
	"errors"
	"fmt"

	"nextgenaccounts/backend/models"
)

// ErrNotFound is returned when an operation targets an id that does not exist.
var ErrNotFound = errors.New("record not found")

// StoreError wraps a transient backend failure. Callers may retry the
// operation; the input itself is not at fault.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// TransactionStore is the record store boundary. Implementations persist
// transactions under their id and answer organization-scoped queries. Query
// results are sorted by date descending, ties broken by insertion order.
type TransactionStore interface {
	Insert(ctx context.Context, t *models.Transaction) error
	Get(ctx context.Context, id string) (*models.Transaction, error)
	Update(ctx context.Context, t *models.Transaction) error
	Delete(ctx context.Context, id string) error
	Query(ctx context.Context, organizationID string, f models.TransactionFilter) ([]models.Transaction, error)
	All(ctx context.Context) ([]models.Transaction, error)
}

// ProfileStore persists user profiles keyed by the identity provider's
// user id.
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
	CreateProfile(ctx context.Context, p *models.UserProfile) error
	UpdateProfile(ctx context.Context, p *models.UserProfile) error
}
