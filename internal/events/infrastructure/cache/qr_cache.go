// Package cache provides a Redis-backed lookup cache for QR code resolution.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/turnout/internal/events/application/queries"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"
)

// QRCache caches resolved event lookups by QR code. Scan traffic hits the
// same handful of codes repeatedly, so a short TTL takes most reads off the
// database. A circuit breaker keeps a flapping Redis from slowing scans
// down; while it is open every lookup goes straight to the database.
type QRCache struct {
	client  *redis.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	ttl     time.Duration
	logger  *slog.Logger
}

// NewQRCache creates a QRCache. A nil client disables caching entirely.
func NewQRCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *QRCache {
	if logger == nil {
		logger = slog.Default()
	}

	settings := gobreaker.Settings{
		Name:        "qr-cache",
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				"cache", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &QRCache{
		client:  client,
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
		ttl:     ttl,
		logger:  logger,
	}
}

// Enabled reports whether a Redis client is configured.
func (c *QRCache) Enabled() bool {
	return c != nil && c.client != nil
}

func cacheKey(qrCode string) string {
	return fmt.Sprintf("turnout:qr:%s", qrCode)
}

// Get returns the cached event for a QR code, or nil on a miss. Cache
// failures are logged and treated as misses.
func (c *QRCache) Get(ctx context.Context, qrCode string) *queries.EventDTO {
	if !c.Enabled() {
		return nil
	}

	payload, err := c.breaker.Execute(func() ([]byte, error) {
		return c.client.Get(ctx, cacheKey(qrCode)).Bytes()
	})
	if err != nil {
		if err != redis.Nil && err != gobreaker.ErrOpenState {
			c.logger.Warn("qr cache read failed", "error", err)
		}
		return nil
	}

	var dto queries.EventDTO
	if err := json.Unmarshal(payload, &dto); err != nil {
		c.logger.Warn("qr cache entry corrupt", "qr_code", qrCode, "error", err)
		return nil
	}
	return &dto
}

// Set stores a resolved event under a QR code for the configured TTL.
func (c *QRCache) Set(ctx context.Context, qrCode string, dto *queries.EventDTO) {
	if !c.Enabled() || dto == nil {
		return
	}

	payload, err := json.Marshal(dto)
	if err != nil {
		c.logger.Warn("qr cache marshal failed", "qr_code", qrCode, "error", err)
		return
	}

	_, err = c.breaker.Execute(func() ([]byte, error) {
		return nil, c.client.Set(ctx, cacheKey(qrCode), payload, c.ttl).Err()
	})
	if err != nil && err != gobreaker.ErrOpenState {
		c.logger.Warn("qr cache write failed", "error", err)
	}
}

// Invalidate drops the cached entries for the given QR codes. Used after
// QR renewal and event deactivation.
func (c *QRCache) Invalidate(ctx context.Context, qrCodes ...string) {
	if !c.Enabled() || len(qrCodes) == 0 {
		return
	}

	keys := make([]string, len(qrCodes))
	for i, code := range qrCodes {
		keys[i] = cacheKey(code)
	}

	_, err := c.breaker.Execute(func() ([]byte, error) {
		return nil, c.client.Del(ctx, keys...).Err()
	})
	if err != nil && err != gobreaker.ErrOpenState {
		c.logger.Warn("qr cache invalidation failed", "error", err)
	}
}

// CachedEventLookup wraps the QR code query handler with the cache.
type CachedEventLookup struct {
	inner *queries.GetEventByQRCodeHandler
	cache *QRCache
}

// NewCachedEventLookup creates a CachedEventLookup.
func NewCachedEventLookup(inner *queries.GetEventByQRCodeHandler, cache *QRCache) *CachedEventLookup {
	return &CachedEventLookup{inner: inner, cache: cache}
}

// Handle resolves a QR code, serving from the cache when possible.
func (h *CachedEventLookup) Handle(ctx context.Context, query queries.GetEventByQRCodeQuery) (*queries.EventDTO, error) {
	if dto := h.cache.Get(ctx, query.QRCode); dto != nil {
		return dto, nil
	}

	dto, err := h.inner.Handle(ctx, query)
	if err != nil {
		return nil, err
	}

	h.cache.Set(ctx, query.QRCode, dto)
	return dto, nil
}
