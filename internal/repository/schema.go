package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("not found")
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
		user_id TEXT PRIMARY KEY,
		email TEXT NOT NULL DEFAULT '',
		username TEXT NOT NULL DEFAULT '',
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		phone_number TEXT NOT NULL DEFAULT '',
		profile_picture_url TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS favourites (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		flight_id TEXT NOT NULL,
		flight_number TEXT NOT NULL DEFAULT '',
		departure_airport TEXT NOT NULL DEFAULT '',
		arrival_airport TEXT NOT NULL DEFAULT '',
		departure_datetime TEXT NOT NULL DEFAULT '',
		reduced_price DOUBLE PRECISION NOT NULL DEFAULT 0,
		added_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (user_id, flight_id)
	)`,
	`CREATE TABLE IF NOT EXISTS alerts (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		criteria JSONB NOT NULL DEFAULT '{}'::jsonb,
		email_notifications BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS alerts_user_id_idx ON alerts (user_id, created_at)`,
}

// Migrate creates the account tables when they are missing.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate accounts schema: %w", err)
		}
	}
	return nil
}
