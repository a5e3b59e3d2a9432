package repositories

import "context"

// SequenceRepository hands out monotonically increasing values per key.
type SequenceRepository interface {
	// NextValue increments the counter for key under a row lock and returns the new value.
	// Unknown keys start at 1.
	NextValue(ctx context.Context, key string) (int64, error)
}
