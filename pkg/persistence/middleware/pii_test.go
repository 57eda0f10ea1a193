package middleware_test

import (
	"context"
	"testing"

	"github.com/aretw0/campaignguide/pkg/adapters/memory"
	"github.com/aretw0/campaignguide/pkg/domain"
	"github.com/aretw0/campaignguide/pkg/persistence/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPIIMiddleware_Masking(t *testing.T) {
	underlying := memory.NewStore()
	secure := middleware.NewPIIMiddleware([]string{"^player_", "email"})(underlying)
	ctx := context.Background()

	original := &domain.Snapshot{
		CampaignID: "run",
		Entries: []domain.Entry{
			{Kind: domain.EntryText, Scenario: "a", Step: "player_name", Text: "Alice"},
			{Kind: domain.EntryText, Scenario: "a", Step: "contact", InputID: "email", Text: "alice@example.com"},
			{Kind: domain.EntryText, Scenario: "a", Step: "cult_name", Text: "The Silver Twilight"},
			{Kind: domain.EntryChoice, Scenario: "a", Step: "player_choice", Number: 1},
		},
	}

	require.NoError(t, secure.Save(ctx, "run", original))
	assert.Equal(t, "Alice", original.Entries[0].Text, "caller snapshot must not change")

	stored, err := underlying.Load(ctx, "run")
	require.NoError(t, err)
	var texts []string
	for _, e := range stored.Entries {
		texts = append(texts, e.Text)
	}
	assert.Equal(t, []string{middleware.Mask, middleware.Mask, "The Silver Twilight", ""}, texts)
	assert.Equal(t, 1, stored.Entries[3].Number)
}

func TestChain(t *testing.T) {
	underlying := memory.NewStore()
	key := generateKey(t)
	store := middleware.Chain(underlying,
		middleware.NewPIIMiddleware([]string{"name"}),
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key}),
	)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "run", snapshot("run", "Roland Banks")))

	raw, err := underlying.Load(ctx, "run")
	require.NoError(t, err)
	assert.NotEmpty(t, raw.Sealed)

	loaded, err := store.Load(ctx, "run")
	require.NoError(t, err)
	assert.Equal(t, middleware.Mask, loaded.Entries[1].Text)
}
