package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// connMaxLifetime keeps pooled connections younger than typical
// load-balancer idle timeouts.
const connMaxLifetime = 5 * time.Minute

// New opens a pgx-backed pool and verifies connectivity. Pool limits come
// from configuration so the API and the console can size them differently.
func New(connStr string, maxOpenConns, maxIdleConns int) (*sql.DB, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}
