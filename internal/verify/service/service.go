// Package service orchestrates license verification: board lookups with
// retry, identity matching, outcome classification, the append-only attempt
// log, and the pure-date insurance and bond checks.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"

	"licensure/internal/lookup"
	"licensure/internal/lookup/cache"
	"licensure/internal/verify/events"
	"licensure/internal/verify/metrics"
	"licensure/internal/verify/models"
	id "licensure/pkg/domain"
	dErrors "licensure/pkg/domain-errors"
	"licensure/pkg/platform/sentinel"
	"licensure/pkg/requestcontext"
)

var tracer = otel.Tracer("licensure/internal/verify/service")

// DefaultLookupTTL bounds how long on-demand lookup responses are cached.
const DefaultLookupTTL = 15 * time.Minute

type ProviderStore interface {
	FindByID(ctx context.Context, providerID id.ProviderID) (*models.Provider, error)
	UpdateVerification(ctx context.Context, p *models.Provider) error
}

type AttemptLog interface {
	Append(ctx context.Context, a *models.VerificationAttempt) error
	ListByProvider(ctx context.Context, providerID id.ProviderID, limit int) ([]*models.VerificationAttempt, error)
	ListRecent(ctx context.Context, limit int) ([]*models.VerificationAttempt, error)
}

type CredentialStore interface {
	FindInsurance(ctx context.Context, providerID id.ProviderID) (*models.InsuranceRecord, error)
	FindBond(ctx context.Context, providerID id.ProviderID) (*models.BondRecord, error)
}

// BoardRegistry routes lookups to portal adapters.
type BoardRegistry interface {
	Board(region id.Region, trade id.Trade) (lookup.Board, error)
	ByRegion(region id.Region) (lookup.Board, error)
}

// EventPublisher feeds logged attempts to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event events.AttemptEvent)
}

// Service runs verifications and reads the attempt log.
type Service struct {
	providers   ProviderStore
	attempts    AttemptLog
	credentials CredentialStore
	boards      BoardRegistry

	backoff   Backoff
	logger    *slog.Logger
	metrics   *metrics.Metrics
	publisher EventPublisher

	lookupCache cache.Cache
	lookupTTL   time.Duration

	// sleep is swapped out in tests so retry paths run without waiting.
	sleep func(ctx context.Context, d time.Duration) error
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithPublisher(publisher EventPublisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

// WithBackoff sets the retry schedule for transient lookup failures.
func WithBackoff(b Backoff) Option {
	return func(s *Service) {
		s.backoff = b
	}
}

// WithLookupCache backs the on-demand lookup endpoint with a short-TTL
// cache. Verification runs never read it.
func WithLookupCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *Service) {
		s.lookupCache = c
		if ttl > 0 {
			s.lookupTTL = ttl
		}
	}
}

// New constructs a Service.
func New(providers ProviderStore, attempts AttemptLog, credentials CredentialStore, boards BoardRegistry, opts ...Option) (*Service, error) {
	if providers == nil {
		return nil, errors.New("provider store is required")
	}
	if attempts == nil {
		return nil, errors.New("attempt log is required")
	}
	if credentials == nil {
		return nil, errors.New("credential store is required")
	}
	if boards == nil {
		return nil, errors.New("board registry is required")
	}

	s := &Service{
		providers:   providers,
		attempts:    attempts,
		credentials: credentials,
		boards:      boards,
		backoff:     NewBackoff(DefaultMaxAttempts, DefaultBackoffBase, DefaultBackoffCap),
		publisher:   events.Nop{},
		lookupTTL:   DefaultLookupTTL,
		sleep:       sleepContext,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ProviderAttempts returns a provider's verification history, newest first.
func (s *Service) ProviderAttempts(ctx context.Context, providerID id.ProviderID, limit int) ([]*models.VerificationAttempt, error) {
	if _, err := s.loadProvider(ctx, providerID); err != nil {
		return nil, err
	}
	list, err := s.attempts.ListByProvider(ctx, providerID, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list verification attempts")
	}
	return list, nil
}

// RecentAttempts returns the latest log entries across all providers.
func (s *Service) RecentAttempts(ctx context.Context, limit int) ([]*models.VerificationAttempt, error) {
	list, err := s.attempts.ListRecent(ctx, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list recent attempts")
	}
	return list, nil
}

func (s *Service) loadProvider(ctx context.Context, providerID id.ProviderID) (*models.Provider, error) {
	p, err := s.providers.FindByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "provider not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load provider")
	}
	return p, nil
}

// logAttempt appends the terminal entry, folds the outcome into the
// provider row when the credential and outcome allow it, and emits the
// event. Exactly one entry per terminal.
func (s *Service) logAttempt(ctx context.Context, p *models.Provider, credentialType models.CredentialType, res resolution) (*models.VerificationAttempt, error) {
	attempt := &models.VerificationAttempt{
		ID:             id.NewAttemptID(),
		ProviderID:     p.ID,
		RequestID:      requestcontext.RequestID(ctx),
		CredentialType: credentialType,
		Outcome:        res.outcome,
		FailureDetail:  res.detail,
		MatchedLicense: res.matched,
		RawSnapshot:    res.raw,
		RetryCount:     res.retries,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.attempts.Append(ctx, attempt); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to log verification attempt")
	}

	// Only the license standing is persisted on the provider, and lookup
	// errors never overwrite the last known one.
	if credentialType == models.CredentialLicense && p.ApplyOutcome(res.outcome, attempt.CreatedAt) {
		if err := s.providers.UpdateVerification(ctx, p); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update provider status")
		}
	}

	s.publisher.Publish(ctx, events.FromAttempt(attempt))
	s.metrics.IncrementOutcome(string(p.Region), string(res.outcome))
	s.log(ctx, "verification attempt logged",
		"provider_id", p.ID,
		"credential_type", credentialType,
		"outcome", res.outcome,
		"retries", res.retries,
	)
	return attempt, nil
}

func (s *Service) log(ctx context.Context, msg string, args ...any) {
	if s.logger != nil {
		s.logger.InfoContext(ctx, msg, args...)
	}
}

// resolution is a terminal outcome plus everything that rides on its log
// entry.
type resolution struct {
	outcome models.Outcome
	detail  string
	matched string
	raw     string
	retries int
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
