package dictionary

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/lushai-labs/mizodict/internal/translation"
)

// Result is the outcome of one successful translation.
type Result struct {
	Input     string
	Output    string
	Direction Direction
	Cached    bool
}

// Service looks up translations in the cache and delegates misses to the
// translation provider. Concurrent misses for the same (direction, key) pair
// are collapsed into a single upstream call.
type Service struct {
	provider translation.Provider
	cache    *Cache
	logger   zerolog.Logger
	timeout  time.Duration
	flight   singleflight.Group
}

func NewService(provider translation.Provider, cache *Cache, logger zerolog.Logger, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Service{
		provider: provider,
		cache:    cache,
		logger:   logger,
		timeout:  timeout,
	}
}

func (s *Service) Cache() *Cache {
	return s.cache
}

// Translate returns the cached translation for the normalized form of text,
// or asks the provider and caches the answer. Keys are the trimmed,
// lower-cased input; the trimmed original is what goes upstream and what the
// caller gets echoed back. A failed attempt caches nothing and is not retried.
func (s *Service) Translate(ctx context.Context, text string, dir Direction) (Result, error) {
	if s == nil || s.provider == nil || s.cache == nil {
		return Result{}, fmt.Errorf("dictionary service is not initialized")
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Result{}, fmt.Errorf("text is required")
	}
	key := strings.ToLower(trimmed)

	if translated, exists := s.cache.Lookup(dir, key); exists {
		s.logger.Debug().Str("word", trimmed).Str("direction", dir.String()).Msg("cache hit")
		return Result{
			Input:     trimmed,
			Output:    translated,
			Direction: dir,
			Cached:    true,
		}, nil
	}

	flightKey := dir.String() + "\x00" + key
	value, err, _ := s.flight.Do(flightKey, func() (any, error) {
		// Re-check under the flight: another caller may have populated the
		// cache between our lookup and joining the group.
		if translated, exists := s.cache.Lookup(dir, key); exists {
			return translated, nil
		}

		source, target := dir.Codes()
		s.logger.Info().
			Str("word", trimmed).
			Str("source", source).
			Str("target", target).
			Msg("translating")

		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		resp, callErr := s.provider.Translate(callCtx, translation.TranslateRequest{
			Text:       trimmed,
			SourceLang: source,
			TargetLang: target,
		})
		if callErr != nil {
			s.logger.Error().
				Err(callErr).
				Str("word", trimmed).
				Str("direction", dir.String()).
				Msg("translation failed")
			return nil, callErr
		}

		s.cache.Insert(dir, key, resp.Text)
		return resp.Text, nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("translate %q: %w", trimmed, err)
	}

	translated, ok := value.(string)
	if !ok {
		return Result{}, fmt.Errorf("unexpected flight result type %T", value)
	}

	return Result{
		Input:     trimmed,
		Output:    translated,
		Direction: dir,
		Cached:    false,
	}, nil
}
