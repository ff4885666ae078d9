// Package store owns the engine's PostgreSQL schema. The aggregates live
// in the provider, attempt, and credential subpackages.
package store

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is idempotent DDL applied at startup. Attempt rows carry a serial
// sequence so creation order survives timestamp collisions; nothing in the
// engine updates or deletes an attempt row once written.
const schema = `
CREATE TABLE IF NOT EXISTS providers (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	trade TEXT NOT NULL,
	region TEXT NOT NULL,
	license_number TEXT NOT NULL DEFAULT '',
	active BOOLEAN NOT NULL DEFAULT TRUE,
	status TEXT NOT NULL DEFAULT 'unverified',
	last_verified_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS verification_attempts (
	seq BIGSERIAL PRIMARY KEY,
	id UUID NOT NULL UNIQUE,
	provider_id UUID NOT NULL REFERENCES providers(id) ON DELETE CASCADE,
	request_id TEXT NOT NULL DEFAULT '',
	credential_type TEXT NOT NULL,
	outcome TEXT NOT NULL,
	failure_detail TEXT NOT NULL DEFAULT '',
	matched_license TEXT NOT NULL DEFAULT '',
	raw_snapshot TEXT NOT NULL DEFAULT '',
	retry_count INT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_attempts_provider ON verification_attempts(provider_id, seq DESC);

CREATE TABLE IF NOT EXISTS insurance_records (
	provider_id UUID PRIMARY KEY REFERENCES providers(id) ON DELETE CASCADE,
	carrier TEXT NOT NULL DEFAULT '',
	policy_number TEXT NOT NULL DEFAULT '',
	coverage_amount BIGINT NOT NULL DEFAULT 0,
	expiration_date TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS bond_records (
	provider_id UUID PRIMARY KEY REFERENCES providers(id) ON DELETE CASCADE,
	surety TEXT NOT NULL DEFAULT '',
	bond_number TEXT NOT NULL DEFAULT '',
	bond_amount BIGINT NOT NULL DEFAULT 0,
	expiration_date TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
`

// EnsureSchema applies the engine schema. Safe to run on every start.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
