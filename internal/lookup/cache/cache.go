// Package cache memoizes portal lookups for the read-side API. Verification
// runs never read through it: an attempt on the audit trail must reflect
// the portal as it is now, not as it was five minutes ago.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"licensure/internal/lookup"
	id "licensure/pkg/domain"
)

// Cache stores lookup results under a bounded TTL. Implementations return
// sentinel.ErrCacheMiss for absent or expired keys.
type Cache interface {
	Get(ctx context.Context, key string) (*lookup.Result, error)
	Set(ctx context.Context, key string, result *lookup.Result, ttl time.Duration) error
}

// Key builds the cache key for a board lookup.
func Key(region id.Region, licenseNumber string) string {
	return fmt.Sprintf("lookup:%s:%s", region, strings.ToUpper(strings.TrimSpace(licenseNumber)))
}
