package constants

import (
	"fmt"
	"time"
)

// Redis Cache Configuration
// This file centralizes all Redis cache keys and TTL values for the storefront.
// Pattern: stagepass:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

// Static Data (Long TTL: rarely changes)
const (
	TTL_STATIC_LONG   = 24 * time.Hour // product catalog
	TTL_STATIC_MEDIUM = 12 * time.Hour // seat map layout
)

// Dynamic Data (Short TTL: changes frequently)
const (
	TTL_DYNAMIC_SHORT = 5 * time.Minute // merchandise sold counters
)

// Highly Dynamic (Micro TTL: real-time sensitive)
const (
	TTL_REALTIME_SHORT = 15 * time.Second // reserved seat overlay
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "stagepass"
)

// ================== SEAT MAP MODULE ==================

const (
	CACHE_KEY_RESERVED_SEATS = CACHE_PREFIX + ":seatmap:reserved"
)

// ================== CATALOG MODULE ==================

const (
	CACHE_KEY_PRODUCT_CATALOG = CACHE_PREFIX + ":catalog:products"
)

// ================== CART MODULE ==================

// BuildCartSessionKey builds the cache key for a shopper's cart session
func BuildCartSessionKey(sessionID string) string {
	return fmt.Sprintf("%s:cart:session:%s", CACHE_PREFIX, sessionID)
}

// BuildCheckoutHandoffKey builds the cache key for a frozen checkout handoff
func BuildCheckoutHandoffKey(sessionID string) string {
	return fmt.Sprintf("%s:cart:handoff:%s", CACHE_PREFIX, sessionID)
}

/*
Cache invalidation notes:

1. When a booking commits:
   - Invalidate: stagepass:seatmap:reserved
   - Invalidate: stagepass:cart:session:{sid} and :handoff:{sid} (cleared)

2. When an admin deletes a booking:
   - Invalidate: stagepass:seatmap:reserved
*/
