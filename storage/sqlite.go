package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"nextgenaccounts/backend/models"
)

// SQLStore persists transactions and profiles through database/sql. The
// type-specific details variant is stored as a JSON column; everything the
// query path filters or sorts on has its own column.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

const transactionColumns = `id, date, type, sub_type, amount, description, category, account, reference, notes,
		payment_method, gst_applicable, gst_percentage, gstn, gst_type, details, user_id, organization_id,
		created_at, updated_at`

func (s *SQLStore) Insert(ctx context.Context, t *models.Transaction) error {
	details, err := marshalDetails(t.Details)
	if err != nil {
		return &StoreError{Op: "insert", Err: err}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.Date, t.Type, t.SubType, t.Amount, t.Description, t.Category, t.Account, t.Reference, t.Notes,
		t.PaymentMethod, t.GSTApplicable, t.GSTPercentage, t.GSTN, t.GSTType, details, t.UserID, t.OrganizationID,
		t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return &StoreError{Op: "insert", Err: err}
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, id string) (*models.Transaction, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE id = ?
	`, id)

	t, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &StoreError{Op: "get", Err: err}
	}
	return t, nil
}

func (s *SQLStore) Update(ctx context.Context, t *models.Transaction) error {
	details, err := marshalDetails(t.Details)
	if err != nil {
		return &StoreError{Op: "update", Err: err}
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE transactions
		SET date = ?, type = ?, sub_type = ?, amount = ?, description = ?, category = ?, account = ?,
			reference = ?, notes = ?, payment_method = ?, gst_applicable = ?, gst_percentage = ?, gstn = ?,
			gst_type = ?, details = ?, user_id = ?, organization_id = ?, updated_at = ?
		WHERE id = ?
	`, t.Date, t.Type, t.SubType, t.Amount, t.Description, t.Category, t.Account,
		t.Reference, t.Notes, t.PaymentMethod, t.GSTApplicable, t.GSTPercentage, t.GSTN,
		t.GSTType, details, t.UserID, t.OrganizationID, t.UpdatedAt, t.ID)
	if err != nil {
		return &StoreError{Op: "update", Err: err}
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return &StoreError{Op: "update", Err: err}
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return &StoreError{Op: "delete", Err: err}
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return &StoreError{Op: "delete", Err: err}
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) Query(ctx context.Context, organizationID string, f models.TransactionFilter) ([]models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE organization_id = ?
	`
	args := []interface{}{organizationID}

	if f.DateFrom != nil {
		query += " AND date >= ?"
		args = append(args, *f.DateFrom)
	}
	if f.DateTo != nil {
		query += " AND date <= ?"
		args = append(args, *f.DateTo)
	}
	if f.Type != "" {
		query += " AND type = ?"
		args = append(args, f.Type)
	}
	if f.PaymentMethod != "" {
		query += " AND payment_method = ?"
		args = append(args, f.PaymentMethod)
	}
	if f.Category != "" {
		query += " AND category = ?"
		args = append(args, f.Category)
	}
	if f.Account != "" {
		query += " AND account = ?"
		args = append(args, f.Account)
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		query += " AND (LOWER(description) LIKE ? OR LOWER(reference) LIKE ? OR LOWER(notes) LIKE ?)"
		args = append(args, pattern, pattern, pattern)
	}

	// rowid preserves insertion order for records sharing a date
	query += " ORDER BY date DESC, rowid ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &StoreError{Op: "query", Err: err}
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func (s *SQLStore) All(ctx context.Context) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, &StoreError{Op: "all", Err: err}
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func (s *SQLStore) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	var p models.UserProfile
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, email, display_name, organization_id, created_at, updated_at
		FROM profiles
		WHERE user_id = ?
	`, userID).Scan(&p.UserID, &p.Email, &p.DisplayName, &p.OrganizationID, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &StoreError{Op: "get profile", Err: err}
	}
	return &p, nil
}

func (s *SQLStore) CreateProfile(ctx context.Context, p *models.UserProfile) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, email, display_name, organization_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.UserID, p.Email, p.DisplayName, p.OrganizationID, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return &StoreError{Op: "create profile", Err: err}
	}
	return nil
}

func (s *SQLStore) UpdateProfile(ctx context.Context, p *models.UserProfile) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE profiles
		SET email = ?, display_name = ?, organization_id = ?, updated_at = ?
		WHERE user_id = ?
	`, p.Email, p.DisplayName, p.OrganizationID, p.UpdatedAt, p.UserID)
	if err != nil {
		return &StoreError{Op: "update profile", Err: err}
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return &StoreError{Op: "update profile", Err: err}
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	var t models.Transaction
	var details sql.NullString
	err := row.Scan(&t.ID, &t.Date, &t.Type, &t.SubType, &t.Amount, &t.Description, &t.Category, &t.Account,
		&t.Reference, &t.Notes, &t.PaymentMethod, &t.GSTApplicable, &t.GSTPercentage, &t.GSTN, &t.GSTType,
		&details, &t.UserID, &t.OrganizationID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if details.Valid && details.String != "" {
		var d models.TransactionDetails
		if err := json.Unmarshal([]byte(details.String), &d); err != nil {
			return nil, fmt.Errorf("decode details for %s: %w", t.ID, err)
		}
		t.Details = &d
	}
	return &t, nil
}

func collectTransactions(rows *sql.Rows) ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, &StoreError{Op: "scan", Err: err}
		}
		transactions = append(transactions, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "scan", Err: err}
	}
	return transactions, nil
}

func marshalDetails(d *models.TransactionDetails) (sql.NullString, error) {
	if d == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}
