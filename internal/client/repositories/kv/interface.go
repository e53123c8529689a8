package kv

import (
	"context"
)

type Repository interface {
	// Get returns found == false and a nil error when the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}

// BatchRepository applies multi-key writes as a single unit: either every
// key is written (or removed) or none is.
type BatchRepository interface {
	Repository
	SetMany(ctx context.Context, items map[string]string) error
	DeleteMany(ctx context.Context, keys ...string) error
}
