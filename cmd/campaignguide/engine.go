package main

import (
	"fmt"
	"io"

	"github.com/aretw0/campaignguide"
	"github.com/aretw0/campaignguide/internal/config"
	"github.com/aretw0/campaignguide/pkg/adapters/file"
	"github.com/aretw0/campaignguide/pkg/adapters/memory"
	"github.com/aretw0/campaignguide/pkg/adapters/redis"
	"github.com/aretw0/campaignguide/pkg/domain"
	"github.com/aretw0/campaignguide/pkg/observability"
	"github.com/aretw0/campaignguide/pkg/persistence/middleware"
	"github.com/aretw0/campaignguide/pkg/ports"
	"github.com/aretw0/campaignguide/pkg/session"
)

// openStore builds the configured decision store, wrapped with the privacy
// middlewares when configured. The closer releases network resources and is
// never nil.
func (a *app) openStore() (ports.Store, []campaignguide.Option, io.Closer, error) {
	store, opts, closer, err := a.openBackend()
	if err != nil {
		return nil, nil, nil, err
	}
	mws, err := a.middlewares()
	if err != nil {
		closer.Close()
		return nil, nil, nil, err
	}
	return middleware.Chain(store, mws...), opts, closer, nil
}

func (a *app) middlewares() ([]middleware.Middleware, error) {
	var mws []middleware.Middleware
	if len(a.cfg.RedactPatterns) > 0 {
		mws = append(mws, middleware.NewPIIMiddleware(a.cfg.RedactPatterns))
	}
	key, fallback, err := a.cfg.EncryptionKeys()
	if err != nil {
		return nil, err
	}
	if key != nil {
		mws = append(mws, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key, FallbackKeys: fallback}))
		a.logger.Debug("store encryption enabled", "fallback_keys", len(fallback))
	}
	return mws, nil
}

func (a *app) openBackend() (ports.Store, []campaignguide.Option, io.Closer, error) {
	switch a.cfg.StoreKind {
	case config.StoreMemory:
		return memory.NewStore(), nil, noClose, nil
	case config.StoreFile:
		return file.New(a.cfg.DataDir), nil, noClose, nil
	case config.StoreRedis:
		r := a.cfg.Redis
		store := redis.New(r.Addr, r.Password, r.DB, redis.WithPrefix(r.Prefix), redis.WithTTL(r.TTL))
		opts := []campaignguide.Option{
			campaignguide.WithLocker(redis.NewLocker(store.Client(), r.Prefix)),
			campaignguide.WithSessionOptions(session.WithLockTTL(r.LockTTL)),
		}
		return store, opts, store, nil
	}
	return nil, nil, nil, fmt.Errorf("unknown store %q", a.cfg.StoreKind)
}

// newEngine compiles the campaign of the configured directory against the
// configured store. extra hooks are combined with the log hooks.
func (a *app) newEngine(extra ...domain.WalkHooks) (*campaignguide.Engine, io.Closer, error) {
	store, storeOpts, closer, err := a.openStore()
	if err != nil {
		return nil, nil, err
	}
	hooks := observability.Combine(append([]domain.WalkHooks{observability.LogHooks(a.logger)}, extra...)...)
	opts := append([]campaignguide.Option{
		campaignguide.WithStore(store),
		campaignguide.WithLogger(a.logger),
		campaignguide.WithLocale(a.cfg.Locale),
		campaignguide.WithHooks(hooks),
	}, storeOpts...)

	eng, err := campaignguide.New(a.cfg.ContentDir, opts...)
	if err != nil {
		closer.Close()
		return nil, nil, err
	}
	a.logger.Debug("engine ready", "campaign", eng.Name, "store", a.cfg.StoreKind, "dir", a.cfg.ContentDir)
	return eng, closer, nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

var noClose io.Closer = closerFunc(func() error { return nil })
