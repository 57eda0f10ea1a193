package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/campaignguide/pkg/domain"
	"github.com/aretw0/campaignguide/pkg/ports"
)

// ErrNotSealed is returned when an encrypting store loads a snapshot that was
// written in the clear.
var ErrNotSealed = errors.New("snapshot is missing its sealed envelope")

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new data.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys are tried in order when the active key cannot open a
	// snapshot, so keys can be rotated without rewriting the store.
	FallbackKeys [][]byte
}

// Validate checks the key sizes.
func (c EncryptionConfig) Validate() error {
	if len(c.ActiveKey) != 32 {
		return fmt.Errorf("active key must be 32 bytes (AES-256), got %d", len(c.ActiveKey))
	}
	for i, k := range c.FallbackKeys {
		if len(k) != 32 {
			return fmt.Errorf("fallback key %d must be 32 bytes (AES-256), got %d", i, len(k))
		}
	}
	return nil
}

type encryptionMiddleware struct {
	next   ports.Store
	config EncryptionConfig
}

// NewEncryptionMiddleware creates a middleware that seals each snapshot with
// AES-GCM. Only the campaign id stays readable in the underlying store.
// It panics when the config does not validate.
func NewEncryptionMiddleware(config EncryptionConfig) Middleware {
	if err := config.Validate(); err != nil {
		panic(err)
	}
	return func(next ports.Store) ports.Store {
		return &encryptionMiddleware{
			next:   next,
			config: config,
		}
	}
}

func (m *encryptionMiddleware) Save(ctx context.Context, campaignID string, snapshot *domain.Snapshot) error {
	plainText, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	ciphertext, err := encrypt(plainText, m.config.ActiveKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt snapshot: %w", err)
	}

	return m.next.Save(ctx, campaignID, &domain.Snapshot{
		CampaignID: snapshot.CampaignID,
		Sealed:     base64.StdEncoding.EncodeToString(ciphertext),
	})
}

func (m *encryptionMiddleware) Load(ctx context.Context, campaignID string) (*domain.Snapshot, error) {
	envelope, err := m.next.Load(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	// Plain snapshots are refused rather than passed through.
	if envelope.Sealed == "" {
		return nil, fmt.Errorf("campaign %s: %w", campaignID, ErrNotSealed)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(envelope.Sealed)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext base64: %w", err)
	}

	plainText, err := decryptWithRotation(ciphertext, m.config.ActiveKey, m.config.FallbackKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt snapshot: %w", err)
	}

	var snapshot domain.Snapshot
	if err := json.Unmarshal(plainText, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal decrypted snapshot: %w", err)
	}
	return &snapshot, nil
}

func (m *encryptionMiddleware) Delete(ctx context.Context, campaignID string) error {
	return m.next.Delete(ctx, campaignID)
}

func (m *encryptionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

// Helpers

func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext []byte, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	if plain, err := decrypt(ciphertext, activeKey); err == nil {
		return plain, nil
	}
	for _, key := range fallbackKeys {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}
	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce := ciphertext[:gcm.NonceSize()]
	return gcm.Open(nil, nonce, ciphertext[gcm.NonceSize():], nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
