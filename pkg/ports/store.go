package ports

import (
	"context"

	"github.com/aretw0/campaignguide/pkg/domain"
)

// Store defines the interface for persisting campaign decision snapshots.
type Store interface {
	// Save persists the snapshot for a given campaign ID.
	Save(ctx context.Context, campaignID string, snapshot *domain.Snapshot) error

	// Load retrieves the snapshot for a given campaign ID.
	// Returns domain.ErrCampaignNotFound if the campaign does not exist.
	Load(ctx context.Context, campaignID string) (*domain.Snapshot, error)

	// Delete removes the snapshot for a given campaign ID.
	Delete(ctx context.Context, campaignID string) error

	// List returns the IDs of all stored campaigns.
	List(ctx context.Context) ([]string, error)
}
