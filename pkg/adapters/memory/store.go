package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/campaignguide/pkg/domain"
)

// Store implements ports.Store in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Snapshot
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Snapshot),
	}
}

// Save persists the snapshot in memory.
func (s *Store) Save(ctx context.Context, campaignID string, snapshot *domain.Snapshot) error {
	copied := cloneSnapshot(snapshot)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[campaignID] = copied
	return nil
}

// Load retrieves the snapshot from memory.
func (s *Store) Load(ctx context.Context, campaignID string) (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot, ok := s.data[campaignID]
	if !ok {
		return nil, domain.ErrCampaignNotFound
	}

	// Copy on read so callers can't append into the stored slices.
	return cloneSnapshot(snapshot), nil
}

// Delete removes the snapshot.
func (s *Store) Delete(ctx context.Context, campaignID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, campaignID)
	return nil
}

// List returns all stored campaign IDs in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// cloneSnapshot copies the entry slices. Entries themselves are never
// mutated in place, so sharing their maps is safe.
func cloneSnapshot(s *domain.Snapshot) *domain.Snapshot {
	if s == nil {
		return &domain.Snapshot{}
	}
	return &domain.Snapshot{
		CampaignID: s.CampaignID,
		Entries:    append([]domain.Entry(nil), s.Entries...),
		Linked:     append([]domain.Entry(nil), s.Linked...),
		Sealed:     s.Sealed,
	}
}
