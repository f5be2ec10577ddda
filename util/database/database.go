package database

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// New opens the SQLite database behind dsn and creates the schema.
// The default DSN is an in-memory database, so all state lives for the
// process lifetime only. A single connection is enforced: shared-cache
// in-memory SQLite is per-connection otherwise, and it also serializes
// writers, which is what the reservation commit relies on.
func New(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS users (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	username   TEXT NOT NULL UNIQUE,
	password   TEXT NOT NULL,
	role       TEXT NOT NULL CHECK (role IN ('owner','customer')),
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS cars (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	model          TEXT NOT NULL,
	category       TEXT NOT NULL,
	daily_rate     INTEGER NOT NULL CHECK (daily_rate >= 0),
	city           TEXT NOT NULL,
	owner_username TEXT NOT NULL REFERENCES users(username),
	status         TEXT NOT NULL DEFAULT 'AVAILABLE' CHECK (status IN ('AVAILABLE','BOOKED'))
);

CREATE TABLE IF NOT EXISTS bookings (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	customer_username TEXT NOT NULL REFERENCES users(username),
	car_id            INTEGER NOT NULL REFERENCES cars(id),
	car_model         TEXT NOT NULL,
	owner_username    TEXT NOT NULL,
	duration_days     INTEGER NOT NULL CHECK (duration_days > 0),
	total_cost        INTEGER NOT NULL,
	created_at        TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}
