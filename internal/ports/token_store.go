package ports

import "context"

// TokenStore is the persistent key-value byte store the session survives
// process restarts in. Get returns domain.ErrSessionRecordNotFound (wrapped)
// when nothing is stored under key.
type TokenStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
