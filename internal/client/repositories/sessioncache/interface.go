// Package sessioncache persists the authenticated session's token record
// between runs. Only the session controller reads or writes it.
package sessioncache

import "context"

// Repository is a small key/value store for session state. Get returns
// an empty string for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
