// Package attempt persists the append-only verification log. Entries are
// immutable once written: neither implementation has an update or delete
// path, and both refuse duplicate ids.
package attempt

import (
	"context"
	"fmt"
	"sync"

	"licensure/internal/verify/models"
	id "licensure/pkg/domain"
	"licensure/pkg/platform/sentinel"
)

// defaultListLimit bounds list reads when the caller does not.
const defaultListLimit = 50

// MemoryStore keeps the log in process memory for tests and dev setups.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []models.VerificationAttempt
	byID    map[id.AttemptID]struct{}
}

// NewMemory constructs an empty in-memory attempt log.
func NewMemory() *MemoryStore {
	return &MemoryStore{byID: make(map[id.AttemptID]struct{})}
}

// Append writes one log entry. The entry must carry a terminal outcome.
func (s *MemoryStore) Append(_ context.Context, a *models.VerificationAttempt) error {
	if err := a.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[a.ID]; exists {
		return fmt.Errorf("attempt %s already logged: %w", a.ID, sentinel.ErrConflict)
	}
	s.byID[a.ID] = struct{}{}
	s.entries = append(s.entries, *a)
	return nil
}

// ListByProvider returns a provider's entries, newest first.
func (s *MemoryStore) ListByProvider(_ context.Context, providerID id.ProviderID, limit int) ([]*models.VerificationAttempt, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.VerificationAttempt, 0, limit)
	for i := len(s.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if s.entries[i].ProviderID != providerID {
			continue
		}
		cp := s.entries[i]
		out = append(out, &cp)
	}
	return out, nil
}

// ListRecent returns the latest entries across all providers, newest first.
func (s *MemoryStore) ListRecent(_ context.Context, limit int) ([]*models.VerificationAttempt, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.VerificationAttempt, 0, limit)
	for i := len(s.entries) - 1; i >= 0 && len(out) < limit; i-- {
		cp := s.entries[i]
		out = append(out, &cp)
	}
	return out, nil
}
