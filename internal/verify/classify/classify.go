// Package classify maps gathered credential evidence to verification
// outcomes. Everything here is pure domain logic: no I/O, no clocks, every
// input arrives as an argument.
package classify

import (
	"time"

	"licensure/internal/verify/models"
)

// License applies the outcome rules to the matcher's pick.
// Rule priority (fail-fast):
//  1. No plausible match -> NotFound
//  2. Revoked standing -> Mismatch; a revoked license never corroborates
//     a claim, even when its dates have also lapsed
//  3. Lapsed -> Expired, whether the board says so outright or the
//     expiration date is behind asOf
//  4. Otherwise -> Verified
func License(matched *models.LicenseRecord, asOf time.Time) models.Outcome {
	if matched == nil || !matched.Found() {
		return models.OutcomeNotFound
	}
	if matched.Status == models.LicenseRevoked {
		return models.OutcomeMismatch
	}
	if matched.Status == models.LicenseExpired {
		return models.OutcomeExpired
	}
	// A zero expiration date is absence of evidence, not evidence of
	// lapse.
	if !matched.ExpirationDate.IsZero() && matched.ExpirationDate.Before(asOf) {
		return models.OutcomeExpired
	}
	return models.OutcomeVerified
}

// CredentialStanding is the result of a date-only credential check.
type CredentialStanding string

const (
	CredentialValid        CredentialStanding = "valid"
	CredentialExpiringSoon CredentialStanding = "expiring_soon"
	CredentialExpired      CredentialStanding = "expired"
)

// ExpiryWindow is how close an expiration date may get before a credential
// is flagged as expiring soon.
const ExpiryWindow = 30 * 24 * time.Hour

// Credential checks an insurance policy or bond by expiration date alone.
// A zero date reads as valid: an incomplete record cannot prove a lapse.
func Credential(expiration, asOf time.Time) CredentialStanding {
	if expiration.IsZero() {
		return CredentialValid
	}
	if expiration.Before(asOf) {
		return CredentialExpired
	}
	if expiration.Before(asOf.Add(ExpiryWindow)) {
		return CredentialExpiringSoon
	}
	return CredentialValid
}
