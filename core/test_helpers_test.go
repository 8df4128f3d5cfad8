package core

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

type fakeTester struct {
	name   string
	schema CredentialSchema
	result ConnectionTestResult
	err    error
	calls  int
}

func (t *fakeTester) Name() string { return t.name }

func (t *fakeTester) Schema() CredentialSchema { return t.schema }

func (t *fakeTester) Test(context.Context, CredentialBundle) (ConnectionTestResult, error) {
	t.calls++
	if t.err != nil {
		return ConnectionTestResult{}, t.err
	}
	return t.result, nil
}

type fakeSecretStore struct {
	mu        sync.Mutex
	entries   map[string]CredentialBundle
	saveErr   error
	getErr    error
	deleteErr error

	saves   int
	gets    int
	deletes int
}

func newFakeSecretStore() *fakeSecretStore {
	return &fakeSecretStore{entries: map[string]CredentialBundle{}}
}

func secretKeyFor(provider string, tenantID int64) string {
	return fmt.Sprintf("%s/%d", strings.ToLower(provider), tenantID)
}

func (s *fakeSecretStore) Save(_ context.Context, provider string, tenantID int64, bundle CredentialBundle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.entries[secretKeyFor(provider, tenantID)] = bundle.Clone()
	return nil
}

func (s *fakeSecretStore) Get(_ context.Context, provider string, tenantID int64) (CredentialBundle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	if s.getErr != nil {
		return nil, s.getErr
	}
	bundle, ok := s.entries[secretKeyFor(provider, tenantID)]
	if !ok {
		return nil, goerrors.New("vault entry not found", goerrors.CategoryNotFound)
	}
	return bundle.Clone(), nil
}

func (s *fakeSecretStore) Exists(ctx context.Context, provider string, tenantID int64) bool {
	_, err := s.Get(ctx, provider, tenantID)
	return err == nil
}

func (s *fakeSecretStore) Delete(_ context.Context, provider string, tenantID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes++
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.entries, secretKeyFor(provider, tenantID))
	return nil
}

func (s *fakeSecretStore) UpdateField(ctx context.Context, provider string, tenantID int64, field string, value any) error {
	bundle, err := s.Get(ctx, provider, tenantID)
	if err != nil {
		return err
	}
	bundle[field] = value
	return s.Save(ctx, provider, tenantID, bundle)
}

type fakeProviderStore struct {
	byName  map[string]Provider
	findErr error
}

func newFakeProviderStore(providers ...Provider) *fakeProviderStore {
	store := &fakeProviderStore{byName: map[string]Provider{}}
	for _, provider := range providers {
		store.byName[strings.ToLower(provider.Name)] = provider
	}
	return store
}

func (s *fakeProviderStore) FindByName(_ context.Context, name string) (Provider, error) {
	if s.findErr != nil {
		return Provider{}, s.findErr
	}
	provider, ok := s.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Provider{}, goerrors.New(
			fmt.Sprintf("provider not found: %s", name),
			goerrors.CategoryNotFound,
		)
	}
	return provider, nil
}

func (s *fakeProviderStore) List(context.Context) ([]Provider, error) {
	out := make([]Provider, 0, len(s.byName))
	for _, provider := range s.byName {
		out = append(out, provider)
	}
	return out, nil
}

type fakeProviderConfigStore struct {
	mu      sync.Mutex
	byID    map[string]ProviderConfig
	findErr error
	nextID  int
	creates int
	updates int
}

func newFakeProviderConfigStore() *fakeProviderConfigStore {
	return &fakeProviderConfigStore{byID: map[string]ProviderConfig{}}
}

func (s *fakeProviderConfigStore) FindByID(_ context.Context, id string) (ProviderConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return ProviderConfig{}, s.findErr
	}
	config, ok := s.byID[id]
	if !ok {
		return ProviderConfig{}, goerrors.New(
			fmt.Sprintf("configuration not found: %s", id),
			goerrors.CategoryNotFound,
		)
	}
	return config, nil
}

func (s *fakeProviderConfigStore) FindByTenantAndProvider(_ context.Context, tenantID int64, providerID string) (ProviderConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return ProviderConfig{}, s.findErr
	}
	for _, config := range s.byID {
		if config.TenantID == tenantID && config.ProviderID == providerID {
			return config, nil
		}
	}
	return ProviderConfig{}, goerrors.New(
		fmt.Sprintf("configuration not found for tenant %d", tenantID),
		goerrors.CategoryNotFound,
	)
}

func (s *fakeProviderConfigStore) ListByTenant(_ context.Context, tenantID int64) ([]ProviderConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []ProviderConfig
	for _, config := range s.byID {
		if config.TenantID == tenantID {
			out = append(out, config)
		}
	}
	return out, nil
}

func (s *fakeProviderConfigStore) Create(_ context.Context, config ProviderConfig) (ProviderConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates++
	s.nextID++
	config.ID = fmt.Sprintf("cfg-%d", s.nextID)
	s.byID[config.ID] = config
	return config, nil
}

func (s *fakeProviderConfigStore) Update(_ context.Context, config ProviderConfig) (ProviderConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates++
	if _, ok := s.byID[config.ID]; !ok {
		return ProviderConfig{}, fmt.Errorf("configuration not found: %s", config.ID)
	}
	s.byID[config.ID] = config
	return config, nil
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}
