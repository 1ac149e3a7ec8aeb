package postgres

import (
	"context"
	"fmt"
)

// schema is idempotent. seq keeps insertion order for transactions sharing a date.
const schema = `
CREATE TABLE IF NOT EXISTS assets (
	id            UUID PRIMARY KEY,
	name          TEXT NOT NULL,
	ticker        TEXT NOT NULL DEFAULT '',
	current_price NUMERIC(20, 8) NOT NULL DEFAULT 0 CHECK (current_price >= 0)
);

CREATE TABLE IF NOT EXISTS transactions (
	seq        BIGSERIAL UNIQUE,
	id         UUID PRIMARY KEY,
	asset_id   UUID NOT NULL REFERENCES assets (id),
	type       TEXT NOT NULL CHECK (type IN ('BUY', 'SELL')),
	quantity   NUMERIC(20, 8) NOT NULL CHECK (quantity > 0),
	unit_price NUMERIC(20, 8) NOT NULL CHECK (unit_price >= 0),
	fee        NUMERIC(20, 8) NOT NULL DEFAULT 0 CHECK (fee >= 0),
	date       DATE NOT NULL
);

CREATE INDEX IF NOT EXISTS transactions_asset_date_idx ON transactions (asset_id, date, seq);

CREATE TABLE IF NOT EXISTS objectives (
	id                    UUID PRIMARY KEY,
	name                  TEXT NOT NULL DEFAULT '',
	target_amount         NUMERIC(20, 2) NOT NULL CHECK (target_amount > 0),
	target_years          DOUBLE PRECISION NOT NULL CHECK (target_years > 0),
	interest_rate_percent DOUBLE PRECISION NOT NULL DEFAULT 0,
	start_date            DATE
);
`

// EnsureSchema creates the tables used by the repositories if they are missing
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
