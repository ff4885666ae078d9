//go:build integration

package attempt_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"licensure/internal/verify/models"
	"licensure/internal/verify/store"
	"licensure/internal/verify/store/attempt"
	"licensure/internal/verify/store/provider"
	id "licensure/pkg/domain"
	dErrors "licensure/pkg/domain-errors"
	"licensure/pkg/platform/sentinel"
	"licensure/pkg/testutil/containers"
)

type PostgresLogSuite struct {
	suite.Suite
	postgres  *containers.PostgresContainer
	store     *attempt.PostgresStore
	providers *provider.PostgresStore
}

func TestPostgresLogSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresLogSuite))
}

func (s *PostgresLogSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.Require().NoError(store.EnsureSchema(context.Background(), s.postgres.DB))
	s.store = attempt.NewPostgres(s.postgres.DB)
	s.providers = provider.NewPostgres(s.postgres.DB)
}

func (s *PostgresLogSuite) SetupTest() {
	ctx := context.Background()
	err := s.postgres.TruncateTables(ctx, "verification_attempts", "providers")
	s.Require().NoError(err)
}

// seedProvider satisfies the attempt table's foreign key.
func (s *PostgresLogSuite) seedProvider() id.ProviderID {
	now := time.Now().UTC().Truncate(time.Microsecond)
	p := &models.Provider{
		ID:        id.NewProviderID(),
		Name:      "Seeded Roofing " + uuid.NewString(),
		Trade:     id.TradeRoofer,
		Region:    id.RegionVirginia,
		Active:    true,
		Status:    models.StatusUnverified,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Require().NoError(s.providers.Create(context.Background(), p))
	return p.ID
}

func newLogEntry(providerID id.ProviderID, outcome models.Outcome) *models.VerificationAttempt {
	return &models.VerificationAttempt{
		ID:             id.NewAttemptID(),
		ProviderID:     providerID,
		RequestID:      uuid.NewString(),
		CredentialType: models.CredentialLicense,
		Outcome:        outcome,
		CreatedAt:      time.Now().UTC().Truncate(time.Microsecond),
	}
}

func (s *PostgresLogSuite) TestAppendAndListByProvider() {
	ctx := context.Background()
	providerID := s.seedProvider()

	first := newLogEntry(providerID, models.OutcomeNotFound)
	first.FailureDetail = "no license on file"
	second := newLogEntry(providerID, models.OutcomeVerified)
	second.MatchedLicense = "2705081693"
	second.RetryCount = 2
	s.Require().NoError(s.store.Append(ctx, first))
	s.Require().NoError(s.store.Append(ctx, second))

	got, err := s.store.ListByProvider(ctx, providerID, 0)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal(second.ID, got[0].ID, "newest entry first")
	s.Equal("2705081693", got[0].MatchedLicense)
	s.Equal(2, got[0].RetryCount)
	s.Equal(first.ID, got[1].ID)
	s.Equal("no license on file", got[1].FailureDetail)
}

// Creation order must hold even when entries share a timestamp; the serial
// sequence, not created_at, decides it.
func (s *PostgresLogSuite) TestOrderSurvivesTimestampCollision() {
	ctx := context.Background()
	providerID := s.seedProvider()
	at := time.Date(2026, time.May, 1, 9, 30, 0, 0, time.UTC)

	var ids []id.AttemptID
	for i := 0; i < 5; i++ {
		e := newLogEntry(providerID, models.OutcomeVerified)
		e.CreatedAt = at
		s.Require().NoError(s.store.Append(ctx, e))
		ids = append(ids, e.ID)
	}

	got, err := s.store.ListByProvider(ctx, providerID, 10)
	s.Require().NoError(err)
	s.Require().Len(got, 5)
	for i, e := range got {
		s.Equal(ids[len(ids)-1-i], e.ID)
	}
}

func (s *PostgresLogSuite) TestAppendDuplicateID() {
	ctx := context.Background()
	providerID := s.seedProvider()

	e := newLogEntry(providerID, models.OutcomeVerified)
	s.Require().NoError(s.store.Append(ctx, e))
	s.ErrorIs(s.store.Append(ctx, e), sentinel.ErrConflict)

	got, err := s.store.ListByProvider(ctx, providerID, 10)
	s.Require().NoError(err)
	s.Len(got, 1, "duplicate append must not add a row")
}

func (s *PostgresLogSuite) TestAppendRejectsNonTerminal() {
	providerID := s.seedProvider()

	err := s.store.Append(context.Background(), newLogEntry(providerID, models.OutcomeTransientFailure))
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}

func (s *PostgresLogSuite) TestListByProviderLimit() {
	ctx := context.Background()
	providerID := s.seedProvider()

	for i := 0; i < 4; i++ {
		s.Require().NoError(s.store.Append(ctx, newLogEntry(providerID, models.OutcomeVerified)))
	}

	got, err := s.store.ListByProvider(ctx, providerID, 2)
	s.Require().NoError(err)
	s.Len(got, 2)
}

func (s *PostgresLogSuite) TestListRecentSpansProviders() {
	ctx := context.Background()
	a := s.seedProvider()
	b := s.seedProvider()

	s.Require().NoError(s.store.Append(ctx, newLogEntry(a, models.OutcomeVerified)))
	last := newLogEntry(b, models.OutcomeExpired)
	s.Require().NoError(s.store.Append(ctx, last))

	got, err := s.store.ListRecent(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal(last.ID, got[0].ID)
	s.Equal(models.OutcomeExpired, got[0].Outcome)
}
