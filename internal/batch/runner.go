// Package batch sweeps providers through license verification on a
// schedule. The sweep is deliberately serial: state portals are shared
// public infrastructure, and one polite client is the price of staying
// welcome there.
package batch

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"licensure/internal/verify/models"
	id "licensure/pkg/domain"
	"licensure/pkg/requestcontext"
)

// DefaultDelay is the minimum spacing between consecutive provider
// verifications.
const DefaultDelay = 2 * time.Second

// ProviderLister lists the providers a sweep covers, in stable ascending-id
// order.
type ProviderLister interface {
	ListActive(ctx context.Context) ([]*models.Provider, error)
}

// Verifier runs one provider's license verification.
type Verifier interface {
	VerifyLicense(ctx context.Context, providerID id.ProviderID) (*models.VerificationAttempt, error)
}

// Summary tallies one sweep. Lookup errors and hard failures both land in
// Errors; the attempt log has the detail.
type Summary struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Processed  int       `json:"processed"`
	Verified   int       `json:"verified"`
	Expired    int       `json:"expired"`
	Mismatched int       `json:"mismatched"`
	NotFound   int       `json:"not_found"`
	Errors     int       `json:"errors"`
}

// Runner drives one serialized verification sweep.
type Runner struct {
	providers ProviderLister
	verifier  Verifier
	limiter   *rate.Limiter
	logger    *slog.Logger
}

type Option func(r *Runner)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithDelay sets the politeness spacing between providers.
func WithDelay(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.limiter = rate.NewLimiter(rate.Every(d), 1)
		}
	}
}

// New constructs a Runner.
func New(providers ProviderLister, verifier Verifier, opts ...Option) (*Runner, error) {
	if providers == nil {
		return nil, errors.New("provider lister is required")
	}
	if verifier == nil {
		return nil, errors.New("verifier is required")
	}
	r := &Runner{
		providers: providers,
		verifier:  verifier,
		limiter:   rate.NewLimiter(rate.Every(DefaultDelay), 1),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run verifies every active provider once and returns the tally. The whole
// sweep shares one asOf instant and one run ID, so every attempt it logs
// correlates and every expiration judgment agrees.
//
// One provider's failure never aborts the sweep. Cancellation is honored
// only between providers: a provider mid-verification finishes (or fails)
// before the runner checks the context again, and the partial Summary comes
// back alongside the context error.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
	ctx = requestcontext.WithRequestID(ctx, summary.RunID)
	ctx = requestcontext.WithTime(ctx, summary.StartedAt)

	providers, err := r.providers.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	r.log(ctx, "verification sweep started", "run_id", summary.RunID, "providers", len(providers))

	for _, p := range providers {
		if err := r.limiter.Wait(ctx); err != nil {
			summary.FinishedAt = time.Now().UTC()
			return summary, err
		}

		// The in-flight provider is shielded from the sweep's cancellation
		// so its attempt still reaches the log; stopping is checked between
		// providers.
		attempt, err := r.verifier.VerifyLicense(context.WithoutCancel(ctx), p.ID)
		summary.Processed++
		if err != nil {
			summary.Errors++
			if r.logger != nil {
				r.logger.WarnContext(ctx, "provider verification failed",
					"run_id", summary.RunID,
					"provider_id", p.ID,
					"error", err,
				)
			}
		} else {
			summary.tally(attempt.Outcome)
		}

		if err := ctx.Err(); err != nil {
			summary.FinishedAt = time.Now().UTC()
			return summary, err
		}
	}

	summary.FinishedAt = time.Now().UTC()
	r.log(ctx, "verification sweep finished",
		"run_id", summary.RunID,
		"processed", summary.Processed,
		"verified", summary.Verified,
		"expired", summary.Expired,
		"mismatched", summary.Mismatched,
		"not_found", summary.NotFound,
		"errors", summary.Errors,
	)
	return summary, nil
}

func (s *Summary) tally(outcome models.Outcome) {
	switch outcome {
	case models.OutcomeVerified:
		s.Verified++
	case models.OutcomeExpired:
		s.Expired++
	case models.OutcomeMismatch:
		s.Mismatched++
	case models.OutcomeNotFound:
		s.NotFound++
	default:
		s.Errors++
	}
}

func (r *Runner) log(ctx context.Context, msg string, args ...any) {
	if r.logger != nil {
		r.logger.InfoContext(ctx, msg, args...)
	}
}
