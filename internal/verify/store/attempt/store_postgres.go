package attempt

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

// PostgresStore persists the log in PostgreSQL. The seq column orders
// entries by creation even when timestamps collide.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed attempt log.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const attemptColumns = `id, provider_id, request_id, credential_type, outcome, failure_detail, matched_license, raw_snapshot, retry_count, created_at`

// Append writes one log entry. The entry must carry a terminal outcome.
func (s *PostgresStore) Append(ctx context.Context, a *models.VerificationAttempt) error {
	if err := a.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO verification_attempts (` + attemptColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(a.ID), uuid.UUID(a.ProviderID), a.RequestID, string(a.CredentialType),
		string(a.Outcome), a.FailureDetail, a.MatchedLicense, a.RawSnapshot,
		a.RetryCount, a.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("attempt %s already logged: %w", a.ID, sentinel.ErrConflict)
		}
		return fmt.Errorf("append attempt: %w", err)
	}
	return nil
}

// ListByProvider returns a provider's entries, newest first.
func (s *PostgresStore) ListByProvider(ctx context.Context, providerID id.ProviderID, limit int) ([]*models.VerificationAttempt, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	query := `
		SELECT ` + attemptColumns + `
		FROM verification_attempts
		WHERE provider_id = $1
		ORDER BY seq DESC
		LIMIT $2
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(providerID), limit)
	if err != nil {
		return nil, fmt.Errorf("list attempts by provider: %w", err)
	}
	return collectAttempts(rows)
}

// ListRecent returns the latest entries across all providers, newest first.
func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]*models.VerificationAttempt, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	query := `
		SELECT ` + attemptColumns + `
		FROM verification_attempts
		ORDER BY seq DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent attempts: %w", err)
	}
	return collectAttempts(rows)
}

func collectAttempts(rows *sql.Rows) ([]*models.VerificationAttempt, error) {
	defer rows.Close()

	var out []*models.VerificationAttempt
	for rows.Next() {
		var (
			a          models.VerificationAttempt
			attemptID  uuid.UUID
			providerID uuid.UUID
		)
		err := rows.Scan(
			&attemptID, &providerID, &a.RequestID, (*string)(&a.CredentialType),
			(*string)(&a.Outcome), &a.FailureDetail, &a.MatchedLicense, &a.RawSnapshot,
			&a.RetryCount, &a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan attempt row: %w", err)
		}
		a.ID = id.AttemptID(attemptID)
		a.ProviderID = id.ProviderID(providerID)
		out = append(out, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempt rows: %w", err)
	}
	return out, nil
}
