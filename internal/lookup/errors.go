package lookup

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// snippetLimit bounds how much portal body rides on an error. Enough to see
// what the portal said without dragging whole pages into logs.
const snippetLimit = 256

// TransportError wraps dial and transport failures, timeouts included.
// Always transient: the portal was never reached or never answered.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Timeout reports whether the failure was a deadline rather than a refusal.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}

// UpstreamError is a non-2xx portal response.
type UpstreamError struct {
	Op         string
	StatusCode int
	Status     string
	Snippet    string
}

func (e *UpstreamError) Error() string {
	if e.Snippet != "" {
		return fmt.Sprintf("%s: portal returned %s: %s", e.Op, e.Status, e.Snippet)
	}
	return fmt.Sprintf("%s: portal returned %s", e.Op, e.Status)
}

// Transient reports whether a retry could plausibly succeed. Rate limits
// and server-side failures qualify; other 4xx responses mean the request
// itself is wrong.
func (e *UpstreamError) Transient() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// ParseError marks markup the parser could not recognize. Never transient:
// the same page would fail the same way on every retry.
type ParseError struct {
	Reason  string
	Snippet string
}

func (e *ParseError) Error() string {
	if e.Snippet != "" {
		return fmt.Sprintf("parse portal response: %s: %s", e.Reason, e.Snippet)
	}
	return fmt.Sprintf("parse portal response: %s", e.Reason)
}

// IsTransient classifies an error for the orchestrator's retry policy.
func IsTransient(err error) bool {
	var te *TransportError
	if errors.As(err, &te) {
		return true
	}
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Transient()
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return false
}

// IsTimeout reports whether the error chain is a deadline failure.
func IsTimeout(err error) bool {
	var te *TransportError
	if errors.As(err, &te) && te.Timeout() {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// snippet collapses whitespace and truncates body text for error payloads
// and logs.
func snippet(body string) string {
	s := strings.Join(strings.Fields(body), " ")
	if len(s) > snippetLimit {
		s = s[:snippetLimit] + "..."
	}
	return s
}
