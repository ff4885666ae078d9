package credential

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"licensure/internal/verify/models"
	id "licensure/pkg/domain"
	"licensure/pkg/platform/sentinel"
)

// PostgresStore persists credentials in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed credential store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) UpsertInsurance(ctx context.Context, rec *models.InsuranceRecord) error {
	query := `
		INSERT INTO insurance_records (provider_id, carrier, policy_number, coverage_amount, expiration_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (provider_id) DO UPDATE SET
			carrier = EXCLUDED.carrier,
			policy_number = EXCLUDED.policy_number,
			coverage_amount = EXCLUDED.coverage_amount,
			expiration_date = EXCLUDED.expiration_date,
			updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(rec.ProviderID), rec.Carrier, rec.PolicyNumber, rec.CoverageAmount,
		nullTime(rec.ExpirationDate), rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert insurance record: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindInsurance(ctx context.Context, providerID id.ProviderID) (*models.InsuranceRecord, error) {
	query := `
		SELECT provider_id, carrier, policy_number, coverage_amount, expiration_date, created_at, updated_at
		FROM insurance_records
		WHERE provider_id = $1
	`
	var (
		rec        models.InsuranceRecord
		pid        uuid.UUID
		expiration sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, query, uuid.UUID(providerID)).Scan(
		&pid, &rec.Carrier, &rec.PolicyNumber, &rec.CoverageAmount,
		&expiration, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no insurance on file for provider %s: %w", providerID, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find insurance record: %w", err)
	}
	rec.ProviderID = id.ProviderID(pid)
	if expiration.Valid {
		rec.ExpirationDate = expiration.Time
	}
	return &rec, nil
}

func (s *PostgresStore) UpsertBond(ctx context.Context, rec *models.BondRecord) error {
	query := `
		INSERT INTO bond_records (provider_id, surety, bond_number, bond_amount, expiration_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (provider_id) DO UPDATE SET
			surety = EXCLUDED.surety,
			bond_number = EXCLUDED.bond_number,
			bond_amount = EXCLUDED.bond_amount,
			expiration_date = EXCLUDED.expiration_date,
			updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(rec.ProviderID), rec.Surety, rec.BondNumber, rec.BondAmount,
		nullTime(rec.ExpirationDate), rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert bond record: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindBond(ctx context.Context, providerID id.ProviderID) (*models.BondRecord, error) {
	query := `
		SELECT provider_id, surety, bond_number, bond_amount, expiration_date, created_at, updated_at
		FROM bond_records
		WHERE provider_id = $1
	`
	var (
		rec        models.BondRecord
		pid        uuid.UUID
		expiration sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, query, uuid.UUID(providerID)).Scan(
		&pid, &rec.Surety, &rec.BondNumber, &rec.BondAmount,
		&expiration, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no bond on file for provider %s: %w", providerID, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find bond record: %w", err)
	}
	rec.ProviderID = id.ProviderID(pid)
	if expiration.Valid {
		rec.ExpirationDate = expiration.Time
	}
	return &rec, nil
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
