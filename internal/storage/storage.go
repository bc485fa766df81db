// Package storage persists the storefront's client state slices (tokens,
// user, cart, wishlist) as JSON values in a durable key-value store. It is
// the engine's analog of the browser's localStorage.
package storage

import "context"

type Store interface {
	// Get unmarshals the value for key into dest. A missing key returns
	// (false, nil); a present but unreadable value returns an error.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	// Clear removes all given keys as one logical step. Logout depends on
	// this to never leave a partially cleared session behind.
	Clear(ctx context.Context, keys ...string) error
	Close() error
}

const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "user"
	KeyCart         = "cart"
	KeyWishlist     = "wishlist"
)

// SessionKeys lists every key logout must clear together.
func SessionKeys() []string {
	return []string{KeyAccessToken, KeyRefreshToken, KeyUser, KeyCart, KeyWishlist}
}
