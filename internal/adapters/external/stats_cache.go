package external

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"newsdesk.app/internal/ports"
	"newsdesk.app/pkg/errors"
)

// generationTTL outlives any stats TTL. An expired generation only costs a miss.
const generationTTL = 24 * time.Hour

// StatsCacheAdapter stores aggregate responses as JSON in a CacheProvider.
// Entries live under key:<generation>; Invalidate replaces the generation,
// which orphans every entry stored under the old one. Backend failures are
// logged and treated as misses.
type StatsCacheAdapter struct {
	provider ports.CacheProvider
	ttl      time.Duration
	logger   ports.Logger
}

// NewStatsCacheAdapter creates a stats cache over provider
func NewStatsCacheAdapter(provider ports.CacheProvider, ttl time.Duration, logger ports.Logger) *StatsCacheAdapter {
	return &StatsCacheAdapter{
		provider: provider,
		ttl:      ttl,
		logger:   logger,
	}
}

func (s *StatsCacheAdapter) Load(ctx context.Context, key string, dest interface{}) (string, bool) {
	generation, err := s.generation(ctx, key)
	if err != nil {
		s.logger.Warn("Stats cache read failed", ports.F("key", key), ports.F("error", err))
		return "", false
	}

	entry := entryKey(key, generation)
	data, err := s.provider.Get(ctx, entry)
	if err != nil {
		if !errors.IsNotFoundError(err) {
			s.logger.Warn("Stats cache read failed", ports.F("key", key), ports.F("error", err))
		}
		return generation, false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		s.logger.Warn("Discarding undecodable stats cache entry", ports.F("key", key), ports.F("error", err))
		_ = s.provider.Delete(ctx, entry)
		return generation, false
	}

	s.logger.Debug("Stats served from cache", ports.F("key", key))
	return generation, true
}

// Store publishes value under generation. An empty generation means Load
// could not read one, and nothing is stored.
func (s *StatsCacheAdapter) Store(ctx context.Context, key, generation string, value interface{}) {
	if generation == "" {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("Failed to encode stats for cache", ports.F("key", key), ports.F("error", err))
		return
	}

	if err := s.provider.Set(ctx, entryKey(key, generation), data, s.ttl); err != nil {
		s.logger.Warn("Stats cache write failed", ports.F("key", key), ports.F("error", err))
	}
}

func (s *StatsCacheAdapter) Invalidate(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if _, err := s.rotate(ctx, key); err != nil {
			// A missing generation is replaced on the next Load
			if delErr := s.provider.Delete(ctx, generationKey(key)); delErr != nil {
				s.logger.Warn("Stats cache invalidation failed", ports.F("key", key), ports.F("error", err))
			}
		}
	}
}

// generation returns the current generation of key, starting one when none exists
func (s *StatsCacheAdapter) generation(ctx context.Context, key string) (string, error) {
	data, err := s.provider.Get(ctx, generationKey(key))
	if err == nil {
		return string(data), nil
	}
	if !errors.IsNotFoundError(err) {
		return "", err
	}
	return s.rotate(ctx, key)
}

func (s *StatsCacheAdapter) rotate(ctx context.Context, key string) (string, error) {
	generation := uuid.NewString()
	if err := s.provider.Set(ctx, generationKey(key), []byte(generation), generationTTL); err != nil {
		return "", err
	}
	return generation, nil
}

func generationKey(key string) string {
	return key + ":generation"
}

func entryKey(key, generation string) string {
	return key + ":" + generation
}

// DisabledStatsCache always misses. It is used when CACHE_TYPE is none.
type DisabledStatsCache struct{}

func (DisabledStatsCache) Load(context.Context, string, interface{}) (string, bool) {
	return "", false
}

func (DisabledStatsCache) Store(context.Context, string, string, interface{}) {}

func (DisabledStatsCache) Invalidate(context.Context, ...string) {}
