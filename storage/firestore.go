package storage

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"nextgenaccounts/backend/models"
)

const (
	transactionsCollection = "transactions"
	profilesCollection     = "profiles"
)

// FirestoreStore persists records in Firestore document collections, the
// backend the hosted product runs against. Equality and range constraints on
// organizationId, type and date are pushed down to Firestore; substring
// search and the remaining equality filters run client-side because Firestore
// has no substring operator and composite indexes are not assumed.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) Insert(ctx context.Context, t *models.Transaction) error {
	_, err := s.client.Collection(transactionsCollection).Doc(t.ID).Set(ctx, t)
	if err != nil {
		return &StoreError{Op: "insert", Err: err}
	}
	return nil
}

func (s *FirestoreStore) Get(ctx context.Context, id string) (*models.Transaction, error) {
	snap, err := s.client.Collection(transactionsCollection).Doc(id).Get(ctx)
	if err != nil {
		if snap != nil && !snap.Exists() {
			return nil, ErrNotFound
		}
		return nil, &StoreError{Op: "get", Err: err}
	}

	var t models.Transaction
	if err := snap.DataTo(&t); err != nil {
		return nil, &StoreError{Op: "get", Err: err}
	}
	return &t, nil
}

func (s *FirestoreStore) Update(ctx context.Context, t *models.Transaction) error {
	ref := s.client.Collection(transactionsCollection).Doc(t.ID)

	snap, err := ref.Get(ctx)
	if err != nil {
		if snap != nil && !snap.Exists() {
			return ErrNotFound
		}
		return &StoreError{Op: "update", Err: err}
	}

	if _, err := ref.Set(ctx, t); err != nil {
		return &StoreError{Op: "update", Err: err}
	}
	return nil
}

func (s *FirestoreStore) Delete(ctx context.Context, id string) error {
	ref := s.client.Collection(transactionsCollection).Doc(id)

	// Firestore deletes are idempotent; the contract here is not, so check
	// existence first.
	snap, err := ref.Get(ctx)
	if err != nil {
		if snap != nil && !snap.Exists() {
			return ErrNotFound
		}
		return &StoreError{Op: "delete", Err: err}
	}

	if _, err := ref.Delete(ctx); err != nil {
		return &StoreError{Op: "delete", Err: err}
	}
	return nil
}

func (s *FirestoreStore) Query(ctx context.Context, organizationID string, f models.TransactionFilter) ([]models.Transaction, error) {
	q := s.client.Collection(transactionsCollection).Query.
		Where("OrganizationID", "==", organizationID)
	if f.Type != "" {
		q = q.Where("Type", "==", f.Type)
	}

	results, err := s.collectQuery(ctx, q)
	if err != nil {
		return nil, err
	}

	filtered := []models.Transaction{}
	for i := range results {
		if matchesFilter(&results[i], f) {
			filtered = append(filtered, results[i])
		}
	}

	// CreatedAt stands in for insertion order on date ties.
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.Before(filtered[j].CreatedAt)
	})
	sortByDateDesc(filtered)
	return filtered, nil
}

func (s *FirestoreStore) All(ctx context.Context) ([]models.Transaction, error) {
	results, err := s.collectQuery(ctx, s.client.Collection(transactionsCollection).Query)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CreatedAt.Before(results[j].CreatedAt)
	})
	return results, nil
}

func (s *FirestoreStore) collectQuery(ctx context.Context, q firestore.Query) ([]models.Transaction, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	results := []models.Transaction{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, &StoreError{Op: "query", Err: err}
		}

		var t models.Transaction
		if err := snap.DataTo(&t); err != nil {
			return nil, &StoreError{Op: "query", Err: err}
		}
		results = append(results, t)
	}
	return results, nil
}

func (s *FirestoreStore) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	snap, err := s.client.Collection(profilesCollection).Doc(userID).Get(ctx)
	if err != nil {
		if snap != nil && !snap.Exists() {
			return nil, ErrNotFound
		}
		return nil, &StoreError{Op: "get profile", Err: err}
	}

	var p models.UserProfile
	if err := snap.DataTo(&p); err != nil {
		return nil, &StoreError{Op: "get profile", Err: err}
	}
	return &p, nil
}

func (s *FirestoreStore) CreateProfile(ctx context.Context, p *models.UserProfile) error {
	_, err := s.client.Collection(profilesCollection).Doc(p.UserID).Set(ctx, p)
	if err != nil {
		return &StoreError{Op: "create profile", Err: err}
	}
	return nil
}

func (s *FirestoreStore) UpdateProfile(ctx context.Context, p *models.UserProfile) error {
	ref := s.client.Collection(profilesCollection).Doc(p.UserID)

	snap, err := ref.Get(ctx)
	if err != nil {
		if snap != nil && !snap.Exists() {
			return ErrNotFound
		}
		return &StoreError{Op: "update profile", Err: err}
	}

	if _, err := ref.Set(ctx, p); err != nil {
		return &StoreError{Op: "update profile", Err: err}
	}
	return nil
}
