package sqlstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repositorycache "github.com/goliatone/go-repository-cache/cache"

	"github.com/paylinkhq/go-paylink/core"
)

type stubProviderStore struct {
	mu            sync.Mutex
	providers     map[string]core.Provider
	findCalls     int
	listCalls     int
	findErr       error
	notFoundNames map[string]struct{}
}

func (s *stubProviderStore) FindByName(_ context.Context, name string) (core.Provider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.findCalls++
	if s.findErr != nil {
		return core.Provider{}, s.findErr
	}
	provider, ok := s.providers[name]
	if !ok {
		return core.Provider{}, goerrors.New("provider not found", goerrors.CategoryNotFound)
	}
	return provider, nil
}

func (s *stubProviderStore) List(_ context.Context) ([]core.Provider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	out := make([]core.Provider, 0, len(s.providers))
	for _, provider := range s.providers {
		out = append(out, provider)
	}
	return out, nil
}

func newTestProviderCacheService(t *testing.T) repositorycache.CacheService {
	t.Helper()
	config := repositorycache.DefaultConfig()
	config.TTL = time.Minute
	service, err := repositorycache.NewCacheService(config)
	if err != nil {
		t.Fatalf("new cache service: %v", err)
	}
	return service
}

func TestCachedProviderStore_FindByName_MissFetchThenHit(t *testing.T) {
	base := &stubProviderStore{
		providers: map[string]core.Provider{
			"paystack": {ID: "prov_1", Name: "paystack", DisplayName: "Paystack"},
		},
	}
	store, err := NewCachedProviderStore(base, newTestProviderCacheService(t))
	if err != nil {
		t.Fatalf("new cached provider store: %v", err)
	}

	provider, err := store.FindByName(context.Background(), "paystack")
	if err != nil {
		t.Fatalf("first find: %v", err)
	}
	if provider.ID != "prov_1" {
		t.Fatalf("unexpected provider %+v", provider)
	}
	if base.findCalls != 1 {
		t.Fatalf("expected one base read, got %d", base.findCalls)
	}

	if _, err := store.FindByName(context.Background(), "paystack"); err != nil {
		t.Fatalf("second find: %v", err)
	}
	if base.findCalls != 1 {
		t.Fatalf("expected second find to hit cache, base calls=%d", base.findCalls)
	}
}

func TestCachedProviderStore_PropagatesBaseErrors(t *testing.T) {
	sentinel := errors.New("catalog unavailable")
	base := &stubProviderStore{findErr: sentinel}
	store, err := NewCachedProviderStore(base, newTestProviderCacheService(t))
	if err != nil {
		t.Fatalf("new cached provider store: %v", err)
	}

	if _, err := store.FindByName(context.Background(), "paystack"); !errors.Is(err, sentinel) {
		t.Fatalf("expected base error propagation, got %v", err)
	}
}

func TestCachedProviderStore_List_CachesCatalog(t *testing.T) {
	base := &stubProviderStore{
		providers: map[string]core.Provider{
			"paystack":    {ID: "prov_1", Name: "paystack"},
			"flutterwave": {ID: "prov_2", Name: "flutterwave"},
		},
	}
	store, err := NewCachedProviderStore(base, newTestProviderCacheService(t))
	if err != nil {
		t.Fatalf("new cached provider store: %v", err)
	}

	first, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("first list: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 providers, got %d", len(first))
	}
	if _, err := store.List(context.Background()); err != nil {
		t.Fatalf("second list: %v", err)
	}
	if base.listCalls != 1 {
		t.Fatalf("expected one base list call, got %d", base.listCalls)
	}
}

func TestProviderCacheKey_Contract(t *testing.T) {
	key, err := ProviderCacheKey(" PayStack ")
	if err != nil {
		t.Fatalf("build cache key: %v", err)
	}
	const expected = "go-paylink::provider_catalog::v1::paystack"
	if key != expected {
		t.Fatalf("unexpected cache key contract: got %q want %q", key, expected)
	}

	if _, err := ProviderCacheKey("   "); err == nil {
		t.Fatalf("expected error for blank name")
	}
}
