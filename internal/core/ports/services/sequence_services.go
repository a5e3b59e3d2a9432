package services

import "context"

// SequenceSvc mints monotonic numbers per key.
type SequenceSvc interface {
	// Next returns the next value for key. Concurrent callers never observe the same value.
	Next(ctx context.Context, key string) (int64, error)

	// NextReference formats the next value of key as prefix + zero padded number, e.g. JE-000123.
	NextReference(ctx context.Context, key string, prefix string, width int) (string, error)
}
