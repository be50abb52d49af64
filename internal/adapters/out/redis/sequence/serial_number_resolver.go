// Package sequence produces order serial numbers from a daily Redis counter.
package sequence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	DefaultPrefix = "ORD"
	keyPrefix     = "order_sn:"

	// a counter expires two days after its first use
	counterTTL = 48 * time.Hour
)

// SerialNumberResolver returns <prefix>-<yyyyMMdd>-<6-digit sequence>, e.g.
// ORD-20250314-000042. The sequence restarts every UTC day.
type SerialNumberResolver struct {
	client redis.Cmdable
	prefix string
	now    func() time.Time
}

func NewSerialNumberResolver(client redis.Cmdable, prefix string) *SerialNumberResolver {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &SerialNumberResolver{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (r *SerialNumberResolver) WithClock(now func() time.Time) *SerialNumberResolver {
	r.now = now
	return r
}

func (r *SerialNumberResolver) Resolve(ctx context.Context) (string, error) {
	day := r.now().UTC().Format("20060102")
	key := keyPrefix + r.prefix + ":" + day

	n, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return "", err
	}
	if n == 1 {
		if err = r.client.Expire(ctx, key, counterTTL).Err(); err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("%s-%s-%06d", r.prefix, day, n), nil
}
