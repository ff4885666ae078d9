package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"licensure/internal/verify/classify"
	"licensure/internal/verify/models"
	id "licensure/pkg/domain"
	dErrors "licensure/pkg/domain-errors"
	"licensure/pkg/platform/sentinel"
	"licensure/pkg/requestcontext"
)

// CheckInsurance verifies the provider's liability policy on file by
// expiration date alone and returns the logged attempt. No upstream calls.
func (s *Service) CheckInsurance(ctx context.Context, providerID id.ProviderID) (*models.VerificationAttempt, error) {
	p, err := s.loadProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	rec, err := s.credentials.FindInsurance(ctx, providerID)
	var res resolution
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		res = resolution{outcome: models.OutcomeNotFound, detail: "no insurance policy on file"}
	case err != nil:
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load insurance record")
	default:
		res = credentialResolution("policy "+rec.PolicyNumber, rec.ExpirationDate, requestcontext.Now(ctx))
	}
	return s.logAttempt(ctx, p, models.CredentialInsurance, res)
}

// CheckBond verifies the provider's surety bond on file by expiration date
// alone and returns the logged attempt.
func (s *Service) CheckBond(ctx context.Context, providerID id.ProviderID) (*models.VerificationAttempt, error) {
	p, err := s.loadProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	rec, err := s.credentials.FindBond(ctx, providerID)
	var res resolution
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		res = resolution{outcome: models.OutcomeNotFound, detail: "no surety bond on file"}
	case err != nil:
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load bond record")
	default:
		res = credentialResolution("bond "+rec.BondNumber, rec.ExpirationDate, requestcontext.Now(ctx))
	}
	return s.logAttempt(ctx, p, models.CredentialBond, res)
}

func credentialResolution(label string, expiration, asOf time.Time) resolution {
	switch classify.Credential(expiration, asOf) {
	case classify.CredentialExpired:
		return resolution{
			outcome: models.OutcomeExpired,
			detail:  fmt.Sprintf("%s expired %s", label, expiration.Format("2006-01-02")),
		}
	case classify.CredentialExpiringSoon:
		return resolution{
			outcome: models.OutcomeVerified,
			detail:  fmt.Sprintf("%s expires soon, on %s", label, expiration.Format("2006-01-02")),
		}
	default:
		return resolution{outcome: models.OutcomeVerified}
	}
}

// Report is the combined result of a full per-provider verification.
type Report struct {
	Provider  *models.Provider            `json:"provider"`
	License   *models.VerificationAttempt `json:"license"`
	Insurance *models.VerificationAttempt `json:"insurance"`
	Bond      *models.VerificationAttempt `json:"bond"`
}

// VerifyProvider runs the full check for one provider: license against the
// board, then insurance and bond by expiration date. Each check appends its
// own log entry.
func (s *Service) VerifyProvider(ctx context.Context, providerID id.ProviderID) (*Report, error) {
	ctx, span := tracer.Start(ctx, "verify.provider",
		trace.WithAttributes(attribute.String("provider.id", providerID.String())))
	defer span.End()

	license, err := s.VerifyLicense(ctx, providerID)
	if err != nil {
		return nil, err
	}
	insurance, err := s.CheckInsurance(ctx, providerID)
	if err != nil {
		return nil, err
	}
	bond, err := s.CheckBond(ctx, providerID)
	if err != nil {
		return nil, err
	}

	// Reload so the report carries the status the license check persisted.
	p, err := s.loadProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	return &Report{Provider: p, License: license, Insurance: insurance, Bond: bond}, nil
}
