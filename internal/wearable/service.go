package wearable

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/aresprotocol/internal/state"
	"github.com/2beens/aresprotocol/internal/telemetry/tracing"
)

const (
	DefaultCacheTTL    = 10 * time.Minute
	DefaultCacheSizeMB = 10
)

type Service struct {
	registry *Registry
	cache    *freecache.Cache
	ttl      time.Duration
}

func NewService(registry *Registry, cacheSizeMB int, ttl time.Duration) *Service {
	if cacheSizeMB <= 0 {
		cacheSizeMB = DefaultCacheSizeMB
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	megabyte := 1024 * 1024
	return &Service{
		registry: registry,
		cache:    freecache.NewCache(cacheSizeMB * megabyte),
		ttl:      ttl,
	}
}

// Fetch returns the latest reading of a provider for the user, nil for an
// unknown provider.
func (s *Service) Fetch(ctx context.Context, userID, providerID string) (_ *Telemetry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "wearable.fetch")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("provider", providerID))

	provider, err := s.registry.Get(providerID)
	if err != nil {
		if errors.Is(err, ErrUnknownProvider) {
			log.Debugf("wearable, unknown provider: %s", providerID)
			return nil, nil
		}
		return nil, err
	}

	cacheKey := []byte(fmt.Sprintf("telemetry::%s::%s", userID, providerID))
	if cached, err := s.cache.Get(cacheKey); err == nil {
		t := &Telemetry{}
		if err := json.Unmarshal(cached, t); err == nil {
			span.SetAttributes(attribute.Bool("cached", true))
			return t, nil
		}
		log.Errorf("wearable, unmarshal cached telemetry for %s: %s", providerID, err)
	}

	t, err := provider.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch from %s: %w", providerID, err)
	}

	if tBytes, err := json.Marshal(t); err == nil {
		if err := s.cache.Set(cacheKey, tBytes, int(s.ttl.Seconds())); err != nil {
			log.Errorf("wearable, cache telemetry for %s: %s", providerID, err)
		}
	}
	return t, nil
}

// FetchPrimary reads from the first connected wearable; nil when none is connected.
func (s *Service) FetchPrimary(ctx context.Context, userID string, appState *state.AppState) (*Telemetry, error) {
	if len(appState.ConnectedWearables) == 0 {
		return nil, nil
	}
	return s.Fetch(ctx, userID, appState.ConnectedWearables[0])
}

func (s *Service) Providers() []string {
	return s.registry.IDs()
}

// Toggle connects the provider when disconnected and the other way around.
// Returns whether it ends up connected.
func (s *Service) Toggle(appState *state.AppState, providerID string) (bool, error) {
	if _, err := s.registry.Get(providerID); err != nil {
		return false, err
	}

	if i := slices.Index(appState.ConnectedWearables, providerID); i >= 0 {
		appState.ConnectedWearables = slices.Delete(appState.ConnectedWearables, i, i+1)
		return false, nil
	}
	appState.ConnectedWearables = append(appState.ConnectedWearables, providerID)
	return true, nil
}

// Invalidate drops cached readings of the user for the provider.
func (s *Service) Invalidate(userID, providerID string) {
	s.cache.Del([]byte(fmt.Sprintf("telemetry::%s::%s", userID, providerID)))
}
