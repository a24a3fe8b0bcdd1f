package services

import (
	"context"
	"sort"

	"nextgenaccounts/backend/models"
)

// Stats aggregates the exact set a List call with the same filter returns, so
// stats and list can never disagree about what was counted.
func (s *TransactionService) Stats(ctx context.Context, organizationID string, f models.TransactionFilter) (*models.TransactionStats, error) {
	transactions, err := s.List(ctx, organizationID, f)
	if err != nil {
		return nil, err
	}

	stats := &models.TransactionStats{}
	var sum float64
	for _, t := range transactions {
		if models.IsIncomeType(t.Type) {
			stats.TotalIncome += t.Amount
		} else {
			stats.TotalExpenses += t.Amount
		}
		sum += t.Amount
	}
	stats.NetIncome = stats.TotalIncome - stats.TotalExpenses
	stats.TransactionCount = len(transactions)
	if len(transactions) > 0 {
		stats.AverageTransaction = sum / float64(len(transactions))
	}
	return stats, nil
}

// ByCategory groups the filtered set by (category, type), summing amounts and
// counting records per group, largest total first.
func (s *TransactionService) ByCategory(ctx context.Context, organizationID string, f models.TransactionFilter) ([]models.CategoryTotal, error) {
	transactions, err := s.List(ctx, organizationID, f)
	if err != nil {
		return nil, err
	}

	type groupKey struct {
		category string
		txType   string
	}
	groups := make(map[groupKey]*models.CategoryTotal)
	order := []groupKey{}
	for _, t := range transactions {
		key := groupKey{category: t.Category, txType: t.Type}
		g, ok := groups[key]
		if !ok {
			g = &models.CategoryTotal{Category: t.Category, Type: t.Type}
			groups[key] = g
			order = append(order, key)
		}
		g.Total += t.Amount
		g.Count++
	}

	results := make([]models.CategoryTotal, 0, len(groups))
	for _, key := range order {
		results = append(results, *groups[key])
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Total > results[j].Total
	})
	return results, nil
}
