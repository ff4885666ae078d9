package service

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"licensure/internal/lookup"
	"licensure/internal/match"
	"licensure/internal/verify/classify"
	"licensure/internal/verify/models"
	id "licensure/pkg/domain"
	dErrors "licensure/pkg/domain-errors"
	"licensure/pkg/requestcontext"
)

// VerifyLicense runs one verification of the provider's claimed license
// against its licensing board and returns the logged attempt. Every run
// ends in exactly one log entry unless the context is cancelled first.
func (s *Service) VerifyLicense(ctx context.Context, providerID id.ProviderID) (*models.VerificationAttempt, error) {
	ctx, span := tracer.Start(ctx, "verify.license",
		trace.WithAttributes(attribute.String("provider.id", providerID.String())))
	defer span.End()

	start := time.Now()
	p, err := s.loadProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	board, err := s.boards.Board(p.Region, p.Trade)
	if err != nil {
		return nil, err
	}

	res, err := s.resolveLicense(ctx, board, p)
	if err != nil {
		// Interrupted, not terminated; no entry is logged.
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "verification interrupted")
	}

	attempt, err := s.logAttempt(ctx, p, models.CredentialLicense, res)
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveVerifyLatency(time.Since(start))
	span.SetAttributes(attribute.String("verify.outcome", string(attempt.Outcome)))
	return attempt, nil
}

// resolveLicense walks one run through lookup, match, and classify. All
// lookup failures fold into a LookupError resolution; the returned error is
// non-nil only when the context ended mid-run.
func (s *Service) resolveLicense(ctx context.Context, board lookup.Board, p *models.Provider) (resolution, error) {
	claim := match.Claim{Name: p.Name, LicenseNumber: p.LicenseNumber, Trade: p.Trade}
	asOf := requestcontext.Now(ctx)

	result, retries, err := s.fetchCandidates(ctx, board, claim)
	if err != nil {
		if ctx.Err() != nil {
			return resolution{}, ctx.Err()
		}
		return resolution{outcome: models.OutcomeLookupError, detail: err.Error(), retries: retries}, nil
	}

	best := match.Best(result.Records, claim)
	if best == nil {
		return resolution{
			outcome: models.OutcomeNotFound,
			detail:  noMatchDetail(claim),
			raw:     result.Raw,
			retries: retries,
		}, nil
	}

	// Name-search summary rows carry no standing. Refetch the detail page
	// for the candidate the matcher settled on.
	if best.Status == "" {
		refreshed, moreRetries, err := s.fetchDetail(ctx, board, best.LicenseNumber)
		retries += moreRetries
		if err != nil {
			if ctx.Err() != nil {
				return resolution{}, ctx.Err()
			}
			return resolution{outcome: models.OutcomeLookupError, detail: err.Error(), retries: retries}, nil
		}
		rec := pickByNumber(refreshed.Records, best.LicenseNumber)
		if rec == nil {
			// The row was in the search results a moment ago.
			return resolution{
				outcome: models.OutcomeNotFound,
				detail:  fmt.Sprintf("license %s not on file with the board", best.LicenseNumber),
				raw:     refreshed.Raw,
				retries: retries,
			}, nil
		}
		best = rec
		result = refreshed
	}

	outcome := classify.License(best, asOf)
	return resolution{
		outcome: outcome,
		detail:  outcomeDetail(outcome, best),
		matched: best.LicenseNumber,
		raw:     result.Raw,
		retries: retries,
	}, nil
}

// fetchCandidates queries by the claimed number when one is present and by
// name otherwise.
func (s *Service) fetchCandidates(ctx context.Context, board lookup.Board, claim match.Claim) (*lookup.Result, int, error) {
	if match.CanonicalNumber(claim.LicenseNumber) != "" {
		return s.withRetry(ctx, board, "lookup.number", func(ctx context.Context) (*lookup.Result, error) {
			return board.Lookup(ctx, claim.LicenseNumber)
		})
	}
	return s.withRetry(ctx, board, "lookup.name", func(ctx context.Context) (*lookup.Result, error) {
		return board.SearchByName(ctx, claim.Name)
	})
}

func (s *Service) fetchDetail(ctx context.Context, board lookup.Board, licenseNumber string) (*lookup.Result, int, error) {
	return s.withRetry(ctx, board, "lookup.detail", func(ctx context.Context) (*lookup.Result, error) {
		return board.Lookup(ctx, licenseNumber)
	})
}

// withRetry runs one portal operation under the backoff schedule. Transient
// failures retry until the schedule is exhausted; parse errors and client
// mistakes fail on the spot.
func (s *Service) withRetry(ctx context.Context, board lookup.Board, opName string, op func(ctx context.Context) (*lookup.Result, error)) (*lookup.Result, int, error) {
	region := string(board.Region())
	sched := s.backoff
	retries := 0
	for {
		opCtx, span := tracer.Start(ctx, opName,
			trace.WithAttributes(attribute.String("board.region", region)))
		fetchStart := time.Now()
		result, err := op(opCtx)
		s.metrics.ObserveLookupLatency(region, time.Since(fetchStart))
		if err != nil {
			span.RecordError(err)
		}
		span.End()

		if err == nil {
			return result, retries, nil
		}
		if !lookup.IsTransient(err) {
			return nil, retries, err
		}
		delay, ok := sched.Next()
		if !ok {
			return nil, retries, fmt.Errorf("lookup failed after %d attempts: %w", sched.Attempts(), err)
		}
		retries++
		s.metrics.IncrementRetry(region)
		s.log(ctx, "transient lookup failure, retrying",
			"region", region,
			"attempt", sched.Attempts(),
			"delay", delay,
			"error", err,
		)
		if err := s.sleep(ctx, delay); err != nil {
			return nil, retries, err
		}
	}
}

func pickByNumber(records []models.LicenseRecord, licenseNumber string) *models.LicenseRecord {
	want := match.CanonicalNumber(licenseNumber)
	for i := range records {
		if records[i].Found() && match.CanonicalNumber(records[i].LicenseNumber) == want {
			return &records[i]
		}
	}
	return nil
}

func noMatchDetail(claim match.Claim) string {
	if match.CanonicalNumber(claim.LicenseNumber) != "" {
		return fmt.Sprintf("license %s not on file with the board", claim.LicenseNumber)
	}
	return fmt.Sprintf("no candidate matched %q", claim.Name)
}

func outcomeDetail(outcome models.Outcome, matched *models.LicenseRecord) string {
	switch outcome {
	case models.OutcomeMismatch:
		return fmt.Sprintf("license %s is revoked or invalid", matched.LicenseNumber)
	case models.OutcomeExpired:
		if matched.ExpirationDate.IsZero() {
			return fmt.Sprintf("license %s reported expired by the board", matched.LicenseNumber)
		}
		return fmt.Sprintf("license %s expired %s", matched.LicenseNumber, matched.ExpirationDate.Format("2006-01-02"))
	default:
		return ""
	}
}
