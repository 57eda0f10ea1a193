package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/campaignguide/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractSnapshot(campaignID string) *domain.Snapshot {
	return &domain.Snapshot{
		CampaignID: campaignID,
		Entries: []domain.Entry{
			{Kind: domain.EntryStartScenario, Scenario: "the_gathering"},
			{Kind: domain.EntryChoice, Scenario: "the_gathering", Step: "$play_scenario", Number: 1},
			{Kind: domain.EntryStringChoices, Scenario: "the_gathering", Step: "$play_scenario",
				Strings: domain.StringChoices{"campaign_log": {"lita_chantler"}}},
		},
	}
}

// RunStoreContract runs a suite of tests to verify that a Store implementation
// adheres to the defined interface contract.
func RunStoreContract(t *testing.T, store Store) {
	ctx := context.Background()
	campaignID := "contract-test-campaign-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		snapshot := contractSnapshot(campaignID)

		err := store.Save(ctx, campaignID, snapshot)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, campaignID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, snapshot.CampaignID, loaded.CampaignID)
		require.Len(t, loaded.Entries, 3)
		assert.Equal(t, domain.EntryChoice, loaded.Entries[1].Kind)
		assert.Equal(t, 1, loaded.Entries[1].Number)
		assert.Equal(t, []string{"lita_chantler"}, loaded.Entries[2].Strings["campaign_log"])
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		snapshot := contractSnapshot(campaignID)
		snapshot.Entries = snapshot.Entries[:1]
		require.NoError(t, store.Save(ctx, campaignID, snapshot))

		loaded, err := store.Load(ctx, campaignID)
		require.NoError(t, err)
		assert.Len(t, loaded.Entries, 1)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+campaignID)
		assert.ErrorIs(t, err, domain.ErrCampaignNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, campaignID, contractSnapshot(campaignID))
		require.NoError(t, err)

		err = store.Delete(ctx, campaignID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, campaignID)
		assert.ErrorIs(t, err, domain.ErrCampaignNotFound, "Load after Delete should return ErrCampaignNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := campaignID + "-1"
		id2 := campaignID + "-2"
		_ = store.Save(ctx, id1, contractSnapshot(id1))
		_ = store.Save(ctx, id2, contractSnapshot(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		campaigns, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, campaigns, id1)
		assert.Contains(t, campaigns, id2)
	})
}
