package core

import (
	"context"

	glog "github.com/goliatone/go-logger/glog"
)

// ConnectionTester validates a credential bundle against a provider's
// live API with a single read-only call.
//
// Remote rejection is not an error: implementations return a
// failure-flavored ConnectionTestResult for bad credentials, rate
// limits, and transport problems. The error return is reserved for
// programmer faults such as a missing dependency.
type ConnectionTester interface {
	Name() string
	Schema() CredentialSchema
	Test(ctx context.Context, bundle CredentialBundle) (ConnectionTestResult, error)
}

// Registry resolves connection testers by canonical provider name.
// Implementations are read-only after construction.
type Registry interface {
	Tester(name string) (ConnectionTester, error)
	Names() []string
}

// SecretStore is the capability the orchestrator uses to persist
// credential bundles outside the relational database. Paths are always
// derived via VaultPathFor; callers never supply raw paths.
type SecretStore interface {
	Save(ctx context.Context, providerName string, tenantID int64, bundle CredentialBundle) error
	Get(ctx context.Context, providerName string, tenantID int64) (CredentialBundle, error)
	// Exists is advisory: any backend failure degrades to false.
	Exists(ctx context.Context, providerName string, tenantID int64) bool
	Delete(ctx context.Context, providerName string, tenantID int64) error
	// UpdateField is read-modify-write without compare-and-set;
	// concurrent calls on the same pair can drop an update.
	UpdateField(ctx context.Context, providerName string, tenantID int64, field string, value any) error
}

// ProviderStore reads the immutable provider catalog.
type ProviderStore interface {
	FindByName(ctx context.Context, name string) (Provider, error)
	List(ctx context.Context) ([]Provider, error)
}

// ProviderConfigStore persists per-tenant provider bindings.
type ProviderConfigStore interface {
	FindByID(ctx context.Context, id string) (ProviderConfig, error)
	FindByTenantAndProvider(ctx context.Context, tenantID int64, providerID string) (ProviderConfig, error)
	ListByTenant(ctx context.Context, tenantID int64) ([]ProviderConfig, error)
	Create(ctx context.Context, config ProviderConfig) (ProviderConfig, error)
	Update(ctx context.Context, config ProviderConfig) (ProviderConfig, error)
}

// StoreProvider exposes the relational stores a repository factory
// builds.
type StoreProvider interface {
	ProviderStore() ProviderStore
	ProviderConfigStore() ProviderConfigStore
}

// RepositoryStoreFactory builds stores from a persistence client
// supplied at wiring time.
type RepositoryStoreFactory interface {
	BuildStores(persistenceClient any) (StoreProvider, error)
}

// OnboardingService is the inbound surface consumed by the
// authenticated request-handling layer. The tenant id always comes
// from the caller's auth context.
type OnboardingService interface {
	Configure(ctx context.Context, req ConfigureRequest) (ProviderConfig, error)
	TestExisting(ctx context.Context, configID string, tenantID int64) (ConnectionTestResult, error)
	DeleteCredentials(ctx context.Context, providerName string, tenantID int64) error
	GetProviderConfig(ctx context.Context, configID string, tenantID int64) (ProviderConfig, error)
	ListTenantConfigs(ctx context.Context, tenantID int64) ([]ProviderConfig, error)
	ListAvailableProviders(ctx context.Context) ([]AvailableProvider, error)
}

// MetricsRecorder receives operation counters and latency histograms.
type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger
