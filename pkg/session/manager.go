package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/campaignguide/internal/logging"
	"github.com/aretw0/campaignguide/pkg/adapters/memory"
	"github.com/aretw0/campaignguide/pkg/domain"
	"github.com/aretw0/campaignguide/pkg/ports"
)

// DefaultLockTTL bounds how long a crashed holder can block a campaign.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates snapshot access for many campaigns.
// Unused locks are garbage collected by reference counting.
type Manager struct {
	store ports.Store

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker  ports.DistributedLocker
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Manager over the given store.
func NewManager(store ports.Store, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller must lock entry.mu and call release after unlocking.
func (m *Manager) acquire(campaignID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[campaignID]
	if !exists {
		entry = &lockEntry{}
		m.locks[campaignID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry at zero.
func (m *Manager) release(campaignID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[campaignID]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, campaignID)
	}
}

// Load returns the stored decisions of a campaign.
func (m *Manager) Load(ctx context.Context, campaignID string) (*memory.Decisions, error) {
	var decisions *memory.Decisions
	err := m.WithLock(ctx, campaignID, func(ctx context.Context) error {
		snapshot, err := m.store.Load(ctx, campaignID)
		if err != nil {
			return err
		}
		decisions = memory.FromSnapshot(snapshot)
		return nil
	})
	return decisions, err
}

// LoadOrStart loads a campaign, creating an empty one on first use.
func (m *Manager) LoadOrStart(ctx context.Context, campaignID string) (*memory.Decisions, error) {
	var decisions *memory.Decisions
	err := m.WithLock(ctx, campaignID, func(ctx context.Context) error {
		var err error
		decisions, err = m.loadOrNew(ctx, campaignID)
		if err != nil {
			return err
		}
		if decisions.Len() == 0 {
			if err := m.store.Save(ctx, campaignID, decisions.Snapshot()); err != nil {
				return fmt.Errorf("failed to initialize campaign: %w", err)
			}
		}
		return nil
	})
	return decisions, err
}

// Update runs fn on the campaign's decisions and persists the result.
// Nothing is written when fn fails.
func (m *Manager) Update(ctx context.Context, campaignID string, fn func(*memory.Decisions) error) (*memory.Decisions, error) {
	var decisions *memory.Decisions
	err := m.WithLock(ctx, campaignID, func(ctx context.Context) error {
		var err error
		decisions, err = m.loadOrNew(ctx, campaignID)
		if err != nil {
			return err
		}
		if err := fn(decisions); err != nil {
			return err
		}
		return m.store.Save(ctx, campaignID, decisions.Snapshot())
	})
	if err != nil {
		return nil, err
	}
	return decisions, nil
}

func (m *Manager) loadOrNew(ctx context.Context, campaignID string) (*memory.Decisions, error) {
	snapshot, err := m.store.Load(ctx, campaignID)
	if err == nil {
		return memory.FromSnapshot(snapshot), nil
	}
	if !errors.Is(err, domain.ErrCampaignNotFound) {
		return nil, fmt.Errorf("failed to check campaign existence: %w", err)
	}
	return memory.NewDecisions(campaignID), nil
}

// Delete removes the campaign from the store.
func (m *Manager) Delete(ctx context.Context, campaignID string) error {
	return m.WithLock(ctx, campaignID, func(ctx context.Context) error {
		return m.store.Delete(ctx, campaignID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying store.
func (m *Manager) Store() ports.Store {
	return m.store
}

// WithLock executes fn while holding the lock for the campaign.
func (m *Manager) WithLock(ctx context.Context, campaignID string, fn func(context.Context) error) error {
	entry := m.acquire(campaignID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(campaignID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, campaignID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("failed to release distributed lock (will expire via TTL)",
					"campaign_id", campaignID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
