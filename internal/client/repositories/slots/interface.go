package slots

import (
	"context"
)

// Repository is a durable key/value medium for slots. Get returns (nil, nil)
// for an absent key and Delete of an absent key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
}
