package config

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store backends accepted by StoreKind.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Config is the process configuration shared by every command.
// Flags override values loaded from the environment.
type Config struct {
	ContentDir string `env:"CONTENT_DIR" envDefault:"."`
	Locale     string `env:"LOCALE"      envDefault:"en"`
	LogLevel   string `env:"LOG_LEVEL"   envDefault:"info"`
	LogFormat  string `env:"LOG_FORMAT"  envDefault:"text"`

	StoreKind string `env:"STORE"    envDefault:"file"`
	DataDir   string `env:"DATA_DIR" envDefault:".campaignguide/campaigns"`

	Redis Redis `envPrefix:"REDIS_"`

	// EncryptionKey seals stored snapshots when set (base64, 32 bytes).
	EncryptionKey  string   `env:"ENCRYPTION_KEY"`
	FallbackKeys   []string `env:"ENCRYPTION_FALLBACK_KEYS" envSeparator:","`
	RedactPatterns []string `env:"REDACT_STEPS"             envSeparator:","`

	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
}

// Redis configures the redis decision store and locker.
type Redis struct {
	Addr     string        `env:"ADDR"     envDefault:"localhost:6379"`
	Password string        `env:"PASSWORD"`
	DB       int           `env:"DB"       envDefault:"0"`
	Prefix   string        `env:"PREFIX"   envDefault:"campaignguide:campaign:"`
	TTL      time.Duration `env:"TTL"      envDefault:"0s"`
	LockTTL  time.Duration `env:"LOCK_TTL" envDefault:"30s"`
}

// Prefix is prepended to every variable name.
const Prefix = "CAMPAIGNGUIDE_"

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return parse(env.Options{Prefix: Prefix})
}

// LoadFrom reads the configuration from the given variables only.
func LoadFrom(environment map[string]string) (Config, error) {
	return parse(env.Options{Prefix: Prefix, Environment: environment})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings no command can work with.
func (c Config) Validate() error {
	switch c.StoreKind {
	case StoreMemory, StoreFile, StoreRedis:
	default:
		return fmt.Errorf("unknown store %q (want %s, %s or %s)", c.StoreKind, StoreMemory, StoreFile, StoreRedis)
	}
	if c.ContentDir == "" {
		return fmt.Errorf("content dir cannot be empty")
	}
	if _, _, err := c.EncryptionKeys(); err != nil {
		return err
	}
	for _, p := range c.RedactPatterns {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("redact pattern %q: %w", p, err)
		}
	}
	return nil
}

// EncryptionKeys decodes the active and fallback keys. active is nil when
// encryption is off.
func (c Config) EncryptionKeys() (active []byte, fallback [][]byte, err error) {
	if c.EncryptionKey == "" {
		if len(c.FallbackKeys) > 0 {
			return nil, nil, fmt.Errorf("fallback keys need an active encryption key")
		}
		return nil, nil, nil
	}
	if active, err = decodeKey(c.EncryptionKey); err != nil {
		return nil, nil, fmt.Errorf("encryption key: %w", err)
	}
	for i, k := range c.FallbackKeys {
		key, err := decodeKey(k)
		if err != nil {
			return nil, nil, fmt.Errorf("fallback key %d: %w", i, err)
		}
		fallback = append(fallback, key)
	}
	return active, fallback, nil
}

func decodeKey(s string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("want 32 bytes, got %d", len(key))
	}
	return key, nil
}
