package database

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var DB *sql.DB

// InitDB opens the sqlite database. The path comes from the environment: a
// mounted volume in deployment, in-memory for tests, a local file otherwise.
func InitDB() error {
	var dbPath string
	switch {
	case os.Getenv("FLY_APP_NAME") != "":
		dbPath = filepath.Join("/data", "accounts.db")
	case os.Getenv("TEST_DB") == "1":
		dbPath = ":memory:"
	default:
		dbPath = "./accounts.db"
	}

	var err error
	dsn := dbPath + "?_journal=WAL&_timeout=10000&_busy_timeout=10000"
	DB, err = sql.Open("sqlite3", dsn)
	if err != nil {
		return err
	}

	DB.SetMaxOpenConns(5)
	DB.SetMaxIdleConns(5)
	DB.SetConnMaxLifetime(time.Minute * 5)

	if _, err = DB.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return err
	}
	if _, err = DB.Exec("PRAGMA busy_timeout=5000;"); err != nil {
		return err
	}

	return DB.Ping()
}
