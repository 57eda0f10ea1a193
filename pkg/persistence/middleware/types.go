package middleware

import "github.com/aretw0/campaignguide/pkg/ports"

// Middleware allows wrapping a Store to add behavior.
type Middleware func(ports.Store) ports.Store

// Chain wraps store with the middlewares. The first one is outermost, so it
// sees a snapshot before any of the others on Save.
func Chain(store ports.Store, mws ...Middleware) ports.Store {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
