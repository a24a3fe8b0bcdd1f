package migrations

import (
	"database/sql"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// SeedTestData inserts sample transactions for development and PR
// deployments. Production databases are left alone.
func SeedTestData(db *sql.DB) error {
	isDev := os.Getenv("APP_ENV") != "production"
	isPR := os.Getenv("PR_DEPLOYMENT") == "true"
	if !isDev && !isPR {
		return nil
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM transactions").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Info().Msg("seeding sample transactions")

	now := time.Now()
	samples := []struct {
		date          time.Time
		txType        string
		amount        float64
		description   string
		category      string
		paymentMethod string
	}{
		{now.AddDate(0, 0, -1), "SELL", 25000, "Product sales revenue", "Sales", "Cash"},
		{now.AddDate(0, 0, -3), "BUY", 12000, "Raw material purchase", "Inventory", "Bank"},
		{now.AddDate(0, 0, -5), "EXPENDITURE", 3500, "Office electricity bill", "Utilities", "UPI"},
		{now.AddDate(0, 0, -8), "BANK", 50000, "Deposit to current account", "Banking", "NEFT"},
		{now.AddDate(0, 0, -12), "LOAN", 100000, "Working capital loan", "Financing", "RTGS"},
	}

	for _, s := range samples {
		_, err := db.Exec(`
			INSERT INTO transactions (id, date, type, amount, description, category, payment_method,
				gst_applicable, user_id, organization_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, ?, ?, ?)
		`, uuid.NewString(), s.date, s.txType, s.amount, s.description, s.category, s.paymentMethod,
			"dev-user", "dev-org", now, now)
		if err != nil {
			return err
		}
	}
	return nil
}
