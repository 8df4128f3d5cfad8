package sqlstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	repositorycache "github.com/goliatone/go-repository-cache/cache"

	"github.com/paylinkhq/go-paylink/core"
)

const providerCacheKeyPrefix = "go-paylink::provider_catalog::v1"

// CachedProviderStore fronts the provider catalog with a read-through
// cache. The catalog only changes via migration, so entries never need
// invalidation during normal operation.
type CachedProviderStore struct {
	base  core.ProviderStore
	cache repositorycache.CacheService
}

func NewCachedProviderStore(base core.ProviderStore, cacheService repositorycache.CacheService) (*CachedProviderStore, error) {
	if base == nil {
		return nil, fmt.Errorf("sqlstore: base provider store is required")
	}
	if cacheService == nil {
		return nil, fmt.Errorf("sqlstore: provider cache service is required")
	}
	return &CachedProviderStore{base: base, cache: cacheService}, nil
}

// ProviderCacheKey returns the deterministic cache key for a catalog
// lookup: go-paylink::provider_catalog::v1::<name> with the name
// lowercased and URL-path escaped.
func ProviderCacheKey(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", fmt.Errorf("sqlstore: provider name is required")
	}
	return providerCacheKeyPrefix + "::" + url.PathEscape(name), nil
}

func (s *CachedProviderStore) FindByName(ctx context.Context, name string) (core.Provider, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return core.Provider{}, fmt.Errorf("sqlstore: cached provider store is not configured")
	}
	cacheKey, err := ProviderCacheKey(name)
	if err != nil {
		return core.Provider{}, err
	}

	return repositorycache.GetOrFetch(ctx, s.cache, cacheKey, func(ctx context.Context) (core.Provider, error) {
		return s.base.FindByName(ctx, name)
	})
}

func (s *CachedProviderStore) List(ctx context.Context) ([]core.Provider, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return nil, fmt.Errorf("sqlstore: cached provider store is not configured")
	}
	return repositorycache.GetOrFetch(ctx, s.cache, providerCacheKeyPrefix+"::list", func(ctx context.Context) ([]core.Provider, error) {
		return s.base.List(ctx)
	})
}

var _ core.ProviderStore = (*CachedProviderStore)(nil)
