package driven

import "context"

// Storage is a string-keyed store of JSON values.
// Implementations must be safe for concurrent use. Writes are
// last-write-wins at whole-value granularity.
type Storage interface {
	// Get returns the value stored under key.
	// The boolean is false when the key has never been set or was removed.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}
