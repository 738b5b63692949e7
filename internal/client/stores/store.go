// Package stores defines the key-value abstraction the credential layer is
// built on, plus its concrete backends. The session lives in two parallel
// stores, a persistent one and an ephemeral one, and any Store pair can
// play those roles: memory for the ephemeral side, sqlite or redis for the
// persistent side.
package stores

import "context"

// Store is a flat key-value store for session data. A missing key reads as
// (nil, nil), not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error

	// SetMany writes all pairs, atomically where the backend allows it.
	SetMany(ctx context.Context, values map[string][]byte) error

	Delete(ctx context.Context, key string) error

	// Clear removes every key. Clearing an empty store is a no-op.
	Clear(ctx context.Context) error
}
