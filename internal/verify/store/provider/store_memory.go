// Package provider persists the providers whose license claims the engine
// verifies.
//
// Error contract, both implementations:
//   - sentinel.ErrNotFound when the provider does not exist
//   - sentinel.ErrConflict when creating an id that already exists
//   - wrapped infrastructure errors otherwise
package provider

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"licensure/internal/verify/models"
	id "licensure/pkg/domain"
	"licensure/pkg/platform/sentinel"
)

// MemoryStore keeps providers in process memory for tests and dev setups.
type MemoryStore struct {
	mu        sync.RWMutex
	providers map[id.ProviderID]models.Provider
}

// NewMemory constructs an empty in-memory provider store.
func NewMemory() *MemoryStore {
	return &MemoryStore{providers: make(map[id.ProviderID]models.Provider)}
}

func (s *MemoryStore) Create(_ context.Context, p *models.Provider) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.providers[p.ID]; exists {
		return fmt.Errorf("provider %s already exists: %w", p.ID, sentinel.ErrConflict)
	}
	s.providers[p.ID] = *p
	return nil
}

func (s *MemoryStore) FindByID(_ context.Context, providerID id.ProviderID) (*models.Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.providers[providerID]
	if !ok {
		return nil, fmt.Errorf("provider %s not found: %w", providerID, sentinel.ErrNotFound)
	}
	return &p, nil
}

// ListActive returns active providers in ascending id order, so repeated
// batch runs walk providers in the same sequence.
func (s *MemoryStore) ListActive(_ context.Context) ([]*models.Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Provider, 0, len(s.providers))
	for _, p := range s.providers {
		if !p.Active {
			continue
		}
		cp := p
		out = append(out, &cp)
	}
	slices.SortFunc(out, func(a, b *models.Provider) int {
		ua, ub := uuid.UUID(a.ID), uuid.UUID(b.ID)
		return bytes.Compare(ua[:], ub[:])
	})
	return out, nil
}

// UpdateVerification persists the verdict fields of a provider row: status,
// last verified timestamp, and updated timestamp. Claimed fields are owned
// by the directory service and left untouched.
func (s *MemoryStore) UpdateVerification(_ context.Context, p *models.Provider) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.providers[p.ID]
	if !ok {
		return fmt.Errorf("provider %s not found: %w", p.ID, sentinel.ErrNotFound)
	}
	stored.Status = p.Status
	stored.LastVerifiedAt = p.LastVerifiedAt
	stored.UpdatedAt = p.UpdatedAt
	s.providers[p.ID] = stored
	return nil
}
