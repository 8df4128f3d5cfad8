package paylink

import "github.com/paylinkhq/go-paylink/core"

type Config = core.Config

type VaultConfig = core.VaultConfig

type ProvidersConfig = core.ProvidersConfig

type Option = core.Option

type Service = core.Service

type ServiceDependencies = core.ServiceDependencies
type OnboardingService = core.OnboardingService
type ConnectionTester = core.ConnectionTester
type Registry = core.Registry
type TesterRegistry = core.TesterRegistry
type SecretStore = core.SecretStore
type ProviderStore = core.ProviderStore
type ProviderConfigStore = core.ProviderConfigStore
type MetricsRecorder = core.MetricsRecorder

type Provider = core.Provider
type ProviderConfig = core.ProviderConfig
type AvailableProvider = core.AvailableProvider
type CredentialBundle = core.CredentialBundle
type CredentialSchema = core.CredentialSchema
type ConnectionTestResult = core.ConnectionTestResult

type ConfigureRequest = core.ConfigureRequest

var (
	WithLogger              = core.WithLogger
	WithLoggerProvider      = core.WithLoggerProvider
	WithMetricsRecorder     = core.WithMetricsRecorder
	WithErrorFactory        = core.WithErrorFactory
	WithErrorMapper         = core.WithErrorMapper
	WithPersistenceClient   = core.WithPersistenceClient
	WithRepositoryFactory   = core.WithRepositoryFactory
	WithConfigProvider      = core.WithConfigProvider
	WithOptionsResolver     = core.WithOptionsResolver
	WithRegistry            = core.WithRegistry
	WithSecretStore         = core.WithSecretStore
	WithProviderStore       = core.WithProviderStore
	WithProviderConfigStore = core.WithProviderConfigStore
	WithClock               = core.WithClock
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

func NewService(cfg Config, opts ...Option) (*Service, error) {
	return core.NewService(cfg, opts...)
}

func NewTesterRegistry(testers ...ConnectionTester) (*TesterRegistry, error) {
	return core.NewTesterRegistry(testers...)
}

func VaultPathFor(providerName string, tenantID int64) (string, error) {
	return core.VaultPathFor(providerName, tenantID)
}
