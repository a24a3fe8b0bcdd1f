package migrations

import "database/sql"

// BaseSchema creates the transactions and profiles tables. The type-specific
// details variant is a JSON column; everything the query path touches gets
// its own column.
func BaseSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS transactions (
			id TEXT PRIMARY KEY,
			date DATETIME NOT NULL,
			type TEXT NOT NULL,
			sub_type TEXT NOT NULL DEFAULT '',
			amount REAL NOT NULL,
			description TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			account TEXT NOT NULL DEFAULT '',
			reference TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			payment_method TEXT NOT NULL,
			gst_applicable BOOLEAN NOT NULL DEFAULT 0,
			gst_percentage REAL NOT NULL DEFAULT 0,
			gstn TEXT NOT NULL DEFAULT '',
			gst_type TEXT NOT NULL DEFAULT '',
			details TEXT,
			user_id TEXT NOT NULL,
			organization_id TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_transactions_org_date
		ON transactions (organization_id, date);
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS profiles (
			user_id TEXT PRIMARY KEY,
			email TEXT NOT NULL DEFAULT '',
			display_name TEXT NOT NULL DEFAULT '',
			organization_id TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);
	`)
	return err
}
