// Package events feeds logged verification attempts to downstream consumers
// over Kafka. Emission is fail-open: the attempt log in Postgres is the
// authoritative record, and a broker outage never fails a verification.
package events

import (
	"context"
	"time"

	"licensure/internal/verify/models"
)

// AttemptEvent is the wire form of one logged verification attempt.
type AttemptEvent struct {
	AttemptID      string    `json:"attempt_id"`
	ProviderID     string    `json:"provider_id"`
	RequestID      string    `json:"request_id,omitempty"`
	CredentialType string    `json:"credential_type"`
	Outcome        string    `json:"outcome"`
	FailureDetail  string    `json:"failure_detail,omitempty"`
	MatchedLicense string    `json:"matched_license,omitempty"`
	RetryCount     int       `json:"retry_count"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// FromAttempt builds the event for a logged attempt. The raw portal snapshot
// stays out of the event; consumers that need it read the log.
func FromAttempt(a *models.VerificationAttempt) AttemptEvent {
	return AttemptEvent{
		AttemptID:      a.ID.String(),
		ProviderID:     a.ProviderID.String(),
		RequestID:      a.RequestID,
		CredentialType: string(a.CredentialType),
		Outcome:        string(a.Outcome),
		FailureDetail:  a.FailureDetail,
		MatchedLicense: a.MatchedLicense,
		RetryCount:     a.RetryCount,
		OccurredAt:     a.CreatedAt,
	}
}

// Publisher emits attempt events. Implementations must not block the caller.
type Publisher interface {
	Publish(ctx context.Context, event AttemptEvent)
	Close() error
}

// Nop discards every event. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, AttemptEvent) {}

func (Nop) Close() error { return nil }
