package middleware_test

import (
	"context"
	"crypto/rand"
	"io"
	"testing"

	"github.com/aretw0/campaignguide/pkg/adapters/memory"
	"github.com/aretw0/campaignguide/pkg/domain"
	"github.com/aretw0/campaignguide/pkg/persistence/middleware"
	"github.com/aretw0/campaignguide/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKey(t *testing.T) []byte {
	k := make([]byte, 32)
	_, err := io.ReadFull(rand.Reader, k)
	require.NoError(t, err)
	return k
}

func snapshot(id, text string) *domain.Snapshot {
	return &domain.Snapshot{
		CampaignID: id,
		Entries: []domain.Entry{
			{Kind: domain.EntryStartScenario, Scenario: domain.CampaignSetupID},
			{Kind: domain.EntryText, Scenario: domain.CampaignSetupID, Step: "name", Text: text},
		},
	}
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlying := memory.NewStore()
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	secure := mw(underlying)
	ctx := context.Background()

	require.NoError(t, secure.Save(ctx, "run", snapshot("run", "Roland Banks")))

	stored, err := underlying.Load(ctx, "run")
	require.NoError(t, err)
	assert.Equal(t, "run", stored.CampaignID)
	assert.Empty(t, stored.Entries)
	assert.NotEmpty(t, stored.Sealed)
	assert.NotContains(t, stored.Sealed, "Roland")

	loaded, err := secure.Load(ctx, "run")
	require.NoError(t, err)
	assert.Equal(t, snapshot("run", "Roland Banks"), loaded)

	ids, err := secure.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"run"}, ids)

	require.NoError(t, secure.Delete(ctx, "run"))
	_, err = secure.Load(ctx, "run")
	assert.ErrorIs(t, err, domain.ErrCampaignNotFound)
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlying := memory.NewStore()
	oldKey := generateKey(t)
	newKey := generateKey(t)
	ctx := context.Background()

	secureOld := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})(underlying)
	require.NoError(t, secureOld.Save(ctx, "run", snapshot("run", "old")))

	secureNew := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})(underlying)

	loaded, err := secureNew.Load(ctx, "run")
	require.NoError(t, err)
	assert.Equal(t, "old", loaded.Entries[1].Text)

	require.NoError(t, secureNew.Save(ctx, "run", snapshot("run", "new")))

	_, err = secureOld.Load(ctx, "run")
	assert.Error(t, err, "new-key snapshot must not open with the old key alone")
}

func TestEncryptionMiddleware_RefusesPlainSnapshots(t *testing.T) {
	underlying := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, underlying.Save(ctx, "run", snapshot("run", "plain")))

	secure := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlying)
	_, err := secure.Load(ctx, "run")
	assert.ErrorIs(t, err, middleware.ErrNotSealed)
}

func TestEncryptionConfig_Validate(t *testing.T) {
	assert.Error(t, middleware.EncryptionConfig{ActiveKey: []byte("short-key")}.Validate())
	assert.Error(t, middleware.EncryptionConfig{ActiveKey: make([]byte, 32), FallbackKeys: [][]byte{{1}}}.Validate())
	assert.NoError(t, middleware.EncryptionConfig{ActiveKey: make([]byte, 32)}.Validate())

	assert.Panics(t, func() {
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")})
	})
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	ports.RunStoreContract(t, mw(memory.NewStore()))
}
