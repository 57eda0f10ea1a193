package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/aretw0/campaignguide/pkg/domain"
	"github.com/aretw0/campaignguide/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key the adapter writes.
const DefaultPrefix = "campaignguide:campaign:"

// farFuture is the index score of snapshots that never expire.
const farFuture = 4102444800 // 2100-01-01

var _ ports.Store = (*Store)(nil)

// Store implements ports.Store using Redis. Snapshots are JSON strings;
// a sorted set indexes campaign ids by expiry so List can prune lazily.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration of stored snapshots.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a Redis store with its own client.
func New(address, password string, db int, opts ...Option) *Store {
	return NewFromClient(backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	}), opts...)
}

// NewFromClient creates a Redis store over an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Client exposes the underlying client, e.g. to share it with a Locker.
func (s *Store) Client() *backend.Client {
	return s.client
}

func (s *Store) key(campaignID string) string {
	return s.prefix + campaignID
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the snapshot and refreshes its index entry.
func (s *Store) Save(ctx context.Context, campaignID string, snapshot *domain.Snapshot) error {
	if campaignID == "" {
		return fmt.Errorf("campaignID cannot be empty")
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	score := float64(farFuture)
	if s.ttl > 0 {
		score = float64(time.Now().Add(s.ttl).Unix())
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(campaignID), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: campaignID})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves a snapshot. Missing or expired keys yield domain.ErrCampaignNotFound.
func (s *Store) Load(ctx context.Context, campaignID string) (*domain.Snapshot, error) {
	val, err := s.client.Get(ctx, s.key(campaignID)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var snapshot domain.Snapshot
	if err := json.Unmarshal(val, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snapshot, nil
}

// Delete removes a snapshot and its index entry.
func (s *Store) Delete(ctx context.Context, campaignID string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(campaignID))
	pipe.ZRem(ctx, s.indexKey(), campaignID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

// List returns stored campaign ids in lexical order, pruning expired ones
// from the index first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := fmt.Sprintf("%d", time.Now().Unix())
	if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", "("+now).Err(); err != nil {
		return nil, fmt.Errorf("failed to prune expired campaigns: %w", err)
	}

	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	slices.Sort(ids)
	return ids, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
