package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"nextgenaccounts/backend/models"
	"nextgenaccounts/backend/storage"
)

// Export formats
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

const csvHeader = "ID,Date,Description,Amount,Type,Category,Account,Reference,Notes"

// Export serializes the full, unfiltered record set. JSON is the canonical
// round-trippable form; CSV is the fixed spreadsheet layout the dashboard
// downloads.
func (s *TransactionService) Export(ctx context.Context, format string) ([]byte, error) {
	transactions, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}

	switch format {
	case FormatJSON:
		return json.MarshalIndent(transactions, "", "  ")
	case FormatCSV:
		return buildCSV(transactions), nil
	default:
		return nil, &ValidationError{Violations: []FieldViolation{
			{Field: "format", Message: fmt.Sprintf("format must be %s or %s", FormatJSON, FormatCSV)},
		}}
	}
}

// buildCSV writes one line per record under the fixed header. Description and
// Notes are wrapped in double quotes; embedded quotes are not escaped beyond
// that, a documented limitation of the export format.
func buildCSV(transactions []models.Transaction) []byte {
	var b strings.Builder
	b.WriteString(csvHeader + "\n")
	for _, t := range transactions {
		b.WriteString(fmt.Sprintf("%s,%s,\"%s\",%.2f,%s,%s,%s,%s,\"%s\"\n",
			t.ID,
			t.Date.Format("2006-01-02"),
			t.Description,
			t.Amount,
			t.Type,
			t.Category,
			t.Account,
			t.Reference,
			t.Notes,
		))
	}
	return []byte(b.String())
}

// Import inserts records best-effort: each failure is reported in the result
// and the batch carries on. A record is skipped when it fails the
// required-field checks or its id already exists in the store.
func (s *TransactionService) Import(ctx context.Context, records []models.Transaction) (*models.ImportResult, error) {
	result := &models.ImportResult{Errors: []string{}}

	for i, record := range records {
		if violations := presenceViolations(&record); len(violations) > 0 {
			fields := make([]string, 0, len(violations))
			for _, v := range violations {
				fields = append(fields, v.Field)
			}
			result.Skipped++
			result.Errors = append(result.Errors,
				fmt.Sprintf("record %d: missing or invalid required fields: %s", i+1, strings.Join(fields, ", ")))
			continue
		}

		if record.ID == "" {
			record.ID = uuid.NewString()
		} else {
			_, err := s.store.Get(ctx, record.ID)
			if err == nil {
				result.Skipped++
				result.Errors = append(result.Errors,
					fmt.Sprintf("record %d: transaction %s already exists", i+1, record.ID))
				continue
			}
			if !errors.Is(err, storage.ErrNotFound) {
				result.Skipped++
				result.Errors = append(result.Errors,
					fmt.Sprintf("record %d: %v", i+1, err))
				continue
			}
		}

		if record.CreatedAt.IsZero() {
			record.CreatedAt = s.now()
		}
		if record.UpdatedAt.IsZero() {
			record.UpdatedAt = record.CreatedAt
		}

		if err := s.store.Insert(ctx, &record); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("record %d: %v", i+1, err))
			continue
		}
		result.Imported++
	}

	log.Info().Int("imported", result.Imported).Int("skipped", result.Skipped).Msg("import finished")
	return result, nil
}
