// Package sequence allocates flight numbers.
//
// Every allocator performs increment-and-return as one atomic step, so two
// concurrent schedule requests never receive the same number.
package sequence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"launchplane/internal/store"

	"github.com/redis/go-redis/v9"
)

// DefaultFlightNumber is the first number allocated on an empty store.
const DefaultFlightNumber = 100

// DefaultKey is the Redis key holding the launch counter.
const DefaultKey = "launchplane:flight_number"

// Allocator hands out strictly increasing flight numbers.
type Allocator interface {
	NextFlightNumber(ctx context.Context) (int, error)
}

// nextScript lifts the counter to the floor (the stored maximum) before
// incrementing it.
var nextScript = redis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
local floor = tonumber(ARGV[1])
if current < floor then
	current = floor
end
current = current + 1
redis.call('SET', KEYS[1], current)
return current
`)

// RedisAllocator keeps the counter in Redis. The launch store is consulted
// on each call so numbers written by the importer are skipped.
type RedisAllocator struct {
	client   redis.UniversalClient
	key      string
	launches store.LaunchStore
}

// NewRedisAllocator creates an allocator over an existing client.
func NewRedisAllocator(client redis.UniversalClient, key string, launches store.LaunchStore) *RedisAllocator {
	if key == "" {
		key = DefaultKey
	}
	return &RedisAllocator{client: client, key: key, launches: launches}
}

// NextFlightNumber returns max(counter, latest stored flight number, 99) + 1.
func (a *RedisAllocator) NextFlightNumber(ctx context.Context) (int, error) {
	floor := DefaultFlightNumber - 1
	latest, found, err := a.launches.LatestFlightNumber(ctx)
	if err != nil {
		return 0, err
	}
	if found && latest > floor {
		floor = latest
	}

	next, err := nextScript.Run(ctx, a.client, []string{a.key}, floor).Int()
	if err != nil {
		return 0, fmt.Errorf("failed to allocate flight number: %w", err)
	}
	return next, nil
}

// Connect parses a redis:// URL (or a bare host:port), opens a client and
// pings it.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	var opts *redis.Options
	if strings.HasPrefix(url, "redis://") || strings.HasPrefix(url, "rediss://") {
		parsed, err := redis.ParseURL(url)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: url}
	}

	if opts.DialTimeout == 0 {
		opts.DialTimeout = 5 * time.Second
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}
