package storage

import (
	"context"
	"sort"
	"strings"
	"sync"

	"nextgenaccounts/backend/models"
)

// MemoryStore keeps transactions and profiles in process memory. It backs
// tests and development seeds and preserves insertion order so that date ties
// sort the same way the SQL store's rowid ordering does.
type MemoryStore struct {
	mu           sync.Mutex
	transactions []models.Transaction
	profiles     map[string]models.UserProfile
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles: make(map[string]models.UserProfile),
	}
}

func (s *MemoryStore) Insert(ctx context.Context, t *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, cloneTransaction(t))
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.transactions {
		if s.transactions[i].ID == id {
			t := cloneTransaction(&s.transactions[i])
			return &t, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) Update(ctx context.Context, t *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.transactions {
		if s.transactions[i].ID == t.ID {
			s.transactions[i] = cloneTransaction(t)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.transactions {
		if s.transactions[i].ID == id {
			s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) Query(ctx context.Context, organizationID string, f models.TransactionFilter) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := []models.Transaction{}
	for i := range s.transactions {
		t := &s.transactions[i]
		if t.OrganizationID != organizationID {
			continue
		}
		if matchesFilter(t, f) {
			results = append(results, cloneTransaction(t))
		}
	}
	sortByDateDesc(results)
	return results, nil
}

func (s *MemoryStore) All(ctx context.Context) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]models.Transaction, 0, len(s.transactions))
	for i := range s.transactions {
		results = append(results, cloneTransaction(&s.transactions[i]))
	}
	return results, nil
}

func (s *MemoryStore) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *MemoryStore) CreateProfile(ctx context.Context, p *models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.UserID] = *p
	return nil
}

func (s *MemoryStore) UpdateProfile(ctx context.Context, p *models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[p.UserID]; !ok {
		return ErrNotFound
	}
	s.profiles[p.UserID] = *p
	return nil
}

// matchesFilter applies the composable filter fields to a single record.
// Shared by the in-memory store and the client-side half of the Firestore
// store's query path.
func matchesFilter(t *models.Transaction, f models.TransactionFilter) bool {
	if f.DateFrom != nil && t.Date.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && t.Date.After(*f.DateTo) {
		return false
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.PaymentMethod != "" && t.PaymentMethod != f.PaymentMethod {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if f.Account != "" && t.Account != f.Account {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Description), needle) &&
			!strings.Contains(strings.ToLower(t.Reference), needle) &&
			!strings.Contains(strings.ToLower(t.Notes), needle) {
			return false
		}
	}
	return true
}

// sortByDateDesc sorts newest first. The sort is stable so records sharing a
// date keep their insertion order.
func sortByDateDesc(ts []models.Transaction) {
	sort.SliceStable(ts, func(i, j int) bool {
		return ts[i].Date.After(ts[j].Date)
	})
}

// cloneTransaction copies a record including its details variant so callers
// cannot mutate stored state through returned pointers.
func cloneTransaction(t *models.Transaction) models.Transaction {
	c := *t
	if t.Details != nil {
		d := *t.Details
		if t.Details.Trade != nil {
			v := *t.Details.Trade
			d.Trade = &v
		}
		if t.Details.Expense != nil {
			v := *t.Details.Expense
			d.Expense = &v
		}
		if t.Details.Capital != nil {
			v := *t.Details.Capital
			d.Capital = &v
		}
		if t.Details.Bank != nil {
			v := *t.Details.Bank
			d.Bank = &v
		}
		if t.Details.Loan != nil {
			v := *t.Details.Loan
			d.Loan = &v
		}
		c.Details = &d
	}
	return c
}
