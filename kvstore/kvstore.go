package kvstore

import (
	"context"
	"errors"
)

// ErrNoKey is returned by Get when the key has never been written.
var ErrNoKey = errors.New("kvstore: key not found")

// KV is the minimal persistence surface the device store needs: two
// string-valued entries, read once at startup, rewritten in full on every
// mutation. Backends must treat Set as a fast local write.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}
