package provider

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"licensure/internal/verify/models"
	id "licensure/pkg/domain"
	"licensure/pkg/platform/sentinel"
)

// PostgresStore persists providers in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed provider store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const providerColumns = `id, name, trade, region, license_number, active, status, last_verified_at, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, p *models.Provider) error {
	query := `
		INSERT INTO providers (` + providerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(p.ID), p.Name, string(p.Trade), string(p.Region), p.LicenseNumber,
		p.Active, string(p.Status), p.LastVerifiedAt, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("provider %s already exists: %w", p.ID, sentinel.ErrConflict)
		}
		return fmt.Errorf("create provider: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, providerID id.ProviderID) (*models.Provider, error) {
	query := `SELECT ` + providerColumns + ` FROM providers WHERE id = $1`
	p, err := scanProvider(s.db.QueryRowContext(ctx, query, uuid.UUID(providerID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("provider %s not found: %w", providerID, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find provider by id: %w", err)
	}
	return p, nil
}

// ListActive returns active providers in ascending id order, so repeated
// batch runs walk providers in the same sequence.
func (s *PostgresStore) ListActive(ctx context.Context) ([]*models.Provider, error) {
	query := `SELECT ` + providerColumns + ` FROM providers WHERE active ORDER BY id ASC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active providers: %w", err)
	}
	defer rows.Close()

	var out []*models.Provider
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, fmt.Errorf("scan provider row: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate provider rows: %w", err)
	}
	return out, nil
}

// UpdateVerification persists the verdict fields of a provider row: status,
// last verified timestamp, and updated timestamp. Claimed fields are owned
// by the directory service and left untouched.
func (s *PostgresStore) UpdateVerification(ctx context.Context, p *models.Provider) error {
	query := `
		UPDATE providers
		SET status = $2, last_verified_at = $3, updated_at = $4
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query, uuid.UUID(p.ID), string(p.Status), p.LastVerifiedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update provider verification: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update provider verification: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("provider %s not found: %w", p.ID, sentinel.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProvider(row rowScanner) (*models.Provider, error) {
	var (
		p              models.Provider
		providerID     uuid.UUID
		lastVerifiedAt sql.NullTime
	)
	err := row.Scan(
		&providerID, &p.Name, (*string)(&p.Trade), (*string)(&p.Region), &p.LicenseNumber,
		&p.Active, (*string)(&p.Status), &lastVerifiedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.ID = id.ProviderID(providerID)
	if lastVerifiedAt.Valid {
		t := lastVerifiedAt.Time
		p.LastVerifiedAt = &t
	}
	return &p, nil
}
