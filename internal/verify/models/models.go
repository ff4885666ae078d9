// Package models holds the verification domain model: providers, license
// records returned by licensing boards, and the append-only attempt log
// entries.
package models

import (
	"time"

	id "licensure/pkg/domain"
	dErrors "licensure/pkg/domain-errors"
)

// LicenseStatus is a board record's standing, normalized from portal
// wording. Parsers fold suspended/invalid/archived statuses into revoked;
// the classifier treats any revoked-bucket status as failing to corroborate
// the claim.
type LicenseStatus string

const (
	LicenseActive   LicenseStatus = "active"
	LicenseExpired  LicenseStatus = "expired"
	LicenseRevoked  LicenseStatus = "revoked"
	LicenseNotFound LicenseStatus = "not-found"
)

// Outcome is the result of one verification run.
//
// Invariants:
//   - Only terminal outcomes may be persisted; OutcomeTransientFailure is a
//     control-flow value inside a run and never reaches a store.
//   - OutcomeLookupError never overwrites a provider's persisted status.
type Outcome string

const (
	OutcomeVerified         Outcome = "verified"
	OutcomeExpired          Outcome = "expired"
	OutcomeMismatch         Outcome = "mismatch"
	OutcomeNotFound         Outcome = "not-found"
	OutcomeLookupError      Outcome = "lookup-error"
	OutcomeTransientFailure Outcome = "transient-failure"
)

// Terminal reports whether the outcome ends a verification run.
func (o Outcome) Terminal() bool {
	return o != OutcomeTransientFailure && o != ""
}

// ProviderStatus returns the persisted provider status this outcome maps to.
// The second return is false for outcomes that must not touch the provider
// row (lookup errors and non-terminal values).
func (o Outcome) ProviderStatus() (ProviderStatus, bool) {
	switch o {
	case OutcomeVerified:
		return StatusVerified, true
	case OutcomeExpired:
		return StatusExpired, true
	case OutcomeMismatch:
		return StatusMismatch, true
	case OutcomeNotFound:
		return StatusNotFound, true
	default:
		return "", false
	}
}

// ProviderStatus is a provider's persisted verification standing.
type ProviderStatus string

const (
	StatusUnverified ProviderStatus = "unverified"
	StatusVerified   ProviderStatus = "verified"
	StatusExpired    ProviderStatus = "expired"
	StatusMismatch   ProviderStatus = "mismatch"
	StatusNotFound   ProviderStatus = "not-found"
)

// Provider is a service provider whose license claim the engine verifies.
//
// Invariants:
//   - Status is always derived from the most recent attempt with a
//     non-lookup-error terminal outcome; lookup errors leave the last known
//     standing in place.
//   - LastVerifiedAt moves only together with Status.
type Provider struct {
	ID             id.ProviderID  `json:"id"`
	Name           string         `json:"name"`
	Trade          id.Trade       `json:"trade"`
	Region         id.Region      `json:"region"`
	LicenseNumber  string         `json:"license_number,omitempty"`
	Active         bool           `json:"active"`
	Status         ProviderStatus `json:"status"`
	LastVerifiedAt *time.Time     `json:"last_verified_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// ApplyOutcome folds a terminal outcome into the provider row. Returns false
// when the outcome must not touch persisted status (lookup errors).
func (p *Provider) ApplyOutcome(outcome Outcome, at time.Time) bool {
	status, ok := outcome.ProviderStatus()
	if !ok {
		return false
	}
	p.Status = status
	p.LastVerifiedAt = &at
	p.UpdatedAt = at
	return true
}

// LicenseRecord is one candidate returned by a board lookup. Transient:
// constructed per response, never persisted except as the snapshot riding on
// an attempt entry.
type LicenseRecord struct {
	HolderName     string        `json:"holder_name"`
	LicenseNumber  string        `json:"license_number"`
	Class          string        `json:"class,omitempty"`
	Status         LicenseStatus `json:"status"`
	ExpirationDate time.Time     `json:"expiration_date,omitzero"`
	InitialDate    time.Time     `json:"initial_date,omitzero"`
	FirmType       string        `json:"firm_type,omitempty"`
	Specialties    []string      `json:"specialties,omitempty"`
	Address        string        `json:"address,omitempty"`
	Violations     string        `json:"violations,omitempty"`
}

// Found reports whether the record represents an actual board row rather
// than the portal's not-found page.
func (r LicenseRecord) Found() bool {
	return r.Status != LicenseNotFound
}

// CredentialType distinguishes what an attempt entry verified.
type CredentialType string

const (
	CredentialLicense   CredentialType = "license"
	CredentialInsurance CredentialType = "insurance"
	CredentialBond      CredentialType = "bond"
)

// VerificationAttempt is one append-only log entry. Entries are immutable
// once written and ordered by creation time.
type VerificationAttempt struct {
	ID             id.AttemptID   `json:"id"`
	ProviderID     id.ProviderID  `json:"provider_id"`
	RequestID      string         `json:"request_id,omitempty"`
	CredentialType CredentialType `json:"credential_type"`
	Outcome        Outcome        `json:"outcome"`
	FailureDetail  string         `json:"failure_detail,omitempty"`
	MatchedLicense string         `json:"matched_license,omitempty"`
	RawSnapshot    string         `json:"raw_snapshot,omitempty"`
	RetryCount     int            `json:"retry_count"`
	CreatedAt      time.Time      `json:"created_at"`
}

// Validate rejects entries that would corrupt the log.
func (a *VerificationAttempt) Validate() error {
	if a.ProviderID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "attempt requires a provider id")
	}
	if !a.Outcome.Terminal() {
		return dErrors.New(dErrors.CodeInvariantViolation, "only terminal outcomes may be logged")
	}
	switch a.CredentialType {
	case CredentialLicense, CredentialInsurance, CredentialBond:
	default:
		return dErrors.New(dErrors.CodeValidation, "unknown credential type")
	}
	return nil
}

// InsuranceRecord is a provider's liability policy on file. Checked by date
// comparison only; no upstream calls.
type InsuranceRecord struct {
	ProviderID     id.ProviderID `json:"provider_id"`
	Carrier        string        `json:"carrier"`
	PolicyNumber   string        `json:"policy_number"`
	CoverageAmount int64         `json:"coverage_amount"`
	ExpirationDate time.Time     `json:"expiration_date"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// BondRecord is a provider's surety bond on file.
type BondRecord struct {
	ProviderID     id.ProviderID `json:"provider_id"`
	Surety         string        `json:"surety"`
	BondNumber     string        `json:"bond_number"`
	BondAmount     int64         `json:"bond_amount"`
	ExpirationDate time.Time     `json:"expiration_date"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
