package repository

import "context"

// CacheRepository memoizes rendered summaries. A miss and a backend failure
// look the same to callers.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}
