// Package credential persists insurance policies and surety bonds on file
// per provider. One record of each kind per provider; writes upsert.
//
// Error contract: sentinel.ErrNotFound when nothing is on file.
package credential

import (
	"context"
	"fmt"
	"sync"

	"licensure/internal/verify/models"
	id "licensure/pkg/domain"
	"licensure/pkg/platform/sentinel"
)

// MemoryStore keeps credentials in process memory for tests and dev setups.
type MemoryStore struct {
	mu        sync.RWMutex
	insurance map[id.ProviderID]models.InsuranceRecord
	bonds     map[id.ProviderID]models.BondRecord
}

// NewMemory constructs an empty in-memory credential store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		insurance: make(map[id.ProviderID]models.InsuranceRecord),
		bonds:     make(map[id.ProviderID]models.BondRecord),
	}
}

func (s *MemoryStore) UpsertInsurance(_ context.Context, rec *models.InsuranceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insurance[rec.ProviderID] = *rec
	return nil
}

func (s *MemoryStore) FindInsurance(_ context.Context, providerID id.ProviderID) (*models.InsuranceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.insurance[providerID]
	if !ok {
		return nil, fmt.Errorf("no insurance on file for provider %s: %w", providerID, sentinel.ErrNotFound)
	}
	return &rec, nil
}

func (s *MemoryStore) UpsertBond(_ context.Context, rec *models.BondRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bonds[rec.ProviderID] = *rec
	return nil
}

func (s *MemoryStore) FindBond(_ context.Context, providerID id.ProviderID) (*models.BondRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.bonds[providerID]
	if !ok {
		return nil, fmt.Errorf("no bond on file for provider %s: %w", providerID, sentinel.ErrNotFound)
	}
	return &rec, nil
}
