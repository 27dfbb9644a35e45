// api/auth/limiter.go
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter is the keyed counter store behind the login lockout window.
type RateLimiter interface {
	// Hit increments the failure counter for a key, starting the decay window
	// on the first hit, and returns the post-increment count.
	Hit(ctx context.Context, key string, decay time.Duration) (int64, error)
	// TooManyAttempts reports whether the key has reached the max attempts.
	TooManyAttempts(ctx context.Context, key string, max int) (bool, error)
	// AvailableIn returns the remaining cooldown for a locked key.
	AvailableIn(ctx context.Context, key string) (time.Duration, error)
	// Clear resets the counter for a key.
	Clear(ctx context.Context, key string) error
}

// ThrottleKey builds the composite lockout key from a normalized email and IP.
func ThrottleKey(email, ip string) string {
	return strings.ToLower(strings.TrimSpace(email)) + "|" + ip
}

const throttlePrefix = "login:throttle:"

// hitScript increments and arms the TTL in one round trip so two
// near-simultaneous attempts from the same key cannot both observe a
// pre-increment count and slip past the threshold.
var hitScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
    redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// RedisRateLimiter implements RateLimiter on Redis.
type RedisRateLimiter struct {
	client *redis.Client
}

func NewRedisRateLimiter(client *redis.Client) *RedisRateLimiter {
	return &RedisRateLimiter{client: client}
}

func (r *RedisRateLimiter) Hit(ctx context.Context, key string, decay time.Duration) (int64, error) {
	count, err := hitScript.Run(ctx, r.client, []string{throttlePrefix + key}, decay.Milliseconds()).Int64()
	if err != nil {
		return 0, fmt.Errorf("failed to increment throttle counter: %w", err)
	}
	return count, nil
}

func (r *RedisRateLimiter) TooManyAttempts(ctx context.Context, key string, max int) (bool, error) {
	count, err := r.client.Get(ctx, throttlePrefix+key).Int64()
	if err == redis.Nil {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("failed to read throttle counter: %w", err)
	}
	return count >= int64(max), nil
}

func (r *RedisRateLimiter) AvailableIn(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := r.client.PTTL(ctx, throttlePrefix+key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read throttle TTL: %w", err)
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

func (r *RedisRateLimiter) Clear(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, throttlePrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to clear throttle counter: %w", err)
	}
	return nil
}
