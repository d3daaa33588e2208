package repository

import (
	"time"

	"github.com/LeifStrom/hiring/pkg/logger"
)

// Option applies a configuration option to the CachedStore.
type Option func(*CachedStore)

// WithTTL sets the maximum age of a cached worksheet snapshot.
func WithTTL(ttl time.Duration) Option {
	return func(s *CachedStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithRetry bounds connectivity-failure retries and sets the initial
// backoff delay. Only connectivity failures are retried; every other error
// kind surfaces immediately.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(s *CachedStore) {
		if maxAttempts > 0 {
			s.maxAttempts = maxAttempts
		}
		if baseDelay > 0 {
			s.baseDelay = baseDelay
		}
	}
}

// WithClock injects a time source, letting tests drive TTL expiry.
func WithClock(clock func() time.Time) Option {
	return func(s *CachedStore) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithMoveVerification toggles the post-move row-count check that detects
// concurrent edits to the source worksheet.
func WithMoveVerification(enabled bool) Option {
	return func(s *CachedStore) {
		s.verifyMoves = enabled
	}
}

// WithLogger sets a custom logger for the store.
func WithLogger(log logger.Logger) Option {
	return func(s *CachedStore) {
		if log != nil {
			s.log = log
		}
	}
}
