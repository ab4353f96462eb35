// Package kvstore provides the persisted key-value store the directory and
// session layers sit on: get/set/remove of text values addressed by string
// keys, with SQLite and Postgres backends over a single kv table.
package kvstore

import "context"

// Store is the persistence contract. Get returns (nil, nil) for an absent
// key; a nil result always means "no value". Set replaces the whole value.
// Remove of an absent key is a successful no-op.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
