package cache

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// List cache keys. Read caches shave the common "open the invoice list"
// round trip; every mutation invalidates its entity's keys.
const (
	ItemsKey     = "items:list"
	CustomersKey = "customers:list"
	InvoicesKey  = "invoices:list"
)

var client *redis.Client

// Init initializes the Redis connection. The cache is optional: when Redis
// is unreachable every Get returns a miss and Sets are no-ops.
func Init() error {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the failed client and set to nil for graceful degradation
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// InvalidateKeys removes specific cache keys
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// InvalidateItemCaches clears item caches after any item mutation.
func InvalidateItemCaches(ctx context.Context) {
	InvalidateKeys(ctx, ItemsKey)
}

// InvalidateCustomerCaches clears customer caches after any customer mutation.
func InvalidateCustomerCaches(ctx context.Context) {
	InvalidateKeys(ctx, CustomersKey)
}

// InvalidateInvoiceCaches clears invoice caches after create/update/delete/import.
func InvalidateInvoiceCaches(ctx context.Context) {
	InvalidateKeys(ctx, InvoicesKey)
}

// IsHealthy returns true if Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
