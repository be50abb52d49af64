package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TimestampSerialNumberResolver produces serial numbers of the form
// yyyyMMddHHmmss followed by eight upper-case hex characters of a random UUID,
// e.g. 20250314093000A1B2C3D4.
type TimestampSerialNumberResolver struct {
	now func() time.Time
}

func NewTimestampSerialNumberResolver() TimestampSerialNumberResolver {
	return TimestampSerialNumberResolver{now: time.Now}
}

// NewTimestampSerialNumberResolverWithClock is used by tests.
func NewTimestampSerialNumberResolverWithClock(now func() time.Time) TimestampSerialNumberResolver {
	return TimestampSerialNumberResolver{now: now}
}

func (r TimestampSerialNumberResolver) Resolve(_ context.Context) (string, error) {
	now := r.now
	if now == nil {
		now = time.Now
	}
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return now().UTC().Format("20060102150405") + suffix, nil
}
