package core

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
)

// Service orchestrates provider onboarding for a tenant: payload
// validation, live connection testing, secret-store persistence, and
// the relational provider-config record, in that order.
//
// The secret store and the relational store are never written inside a
// shared transaction. A crash between the vault write and the row
// upsert leaves credentials stored with stale or missing metadata;
// TestExisting surfaces the inverse gap (row without vault entry) as a
// distinct reconciliation error instead of repairing it.
type Service struct {
	config              Config
	logger              Logger
	loggerProvider      LoggerProvider
	metricsRecorder     MetricsRecorder
	errorFactory        ErrorFactory
	errorMapper         ErrorMapper
	registry            Registry
	schemas             map[string]CredentialSchema
	secretStore         SecretStore
	providerStore       ProviderStore
	providerConfigStore ProviderConfigStore
	now                 func() time.Time
}

// ServiceDependencies reports the collaborators a built service ended
// up with, for host diagnostics and wiring checks.
type ServiceDependencies struct {
	Logger              Logger
	LoggerProvider      LoggerProvider
	MetricsRecorder     MetricsRecorder
	Registry            Registry
	SecretStore         SecretStore
	ProviderStore       ProviderStore
	ProviderConfigStore ProviderConfigStore
}

// ConfigureRequest carries one complete desired-state configuration for
// a (tenant, provider) pair. TenantID comes from the authenticated
// caller, never from the payload.
type ConfigureRequest struct {
	ProviderName string
	Credentials  CredentialBundle
	TenantID     int64
	RunLiveTest  bool
}

// AvailableProvider is a catalog row annotated with whether a
// connection tester is wired for it.
type AvailableProvider struct {
	Provider
	TesterRegistered bool
}

func NewService(cfg Config, options ...Option) (*Service, error) {
	builder := defaultServiceBuilder(cfg)
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("paylink", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("paylink"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.errorFactory == nil {
		builder.errorFactory = goerrors.New
	}
	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}
	if builder.registry == nil {
		builder.registry = emptyTesterRegistry()
	}
	if builder.credentialSchemas == nil {
		if registry, ok := builder.registry.(*TesterRegistry); ok {
			builder.credentialSchemas = registry.Schemas()
		}
	}
	if builder.now == nil {
		builder.now = func() time.Time { return time.Now().UTC() }
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	if (builder.providerStore == nil || builder.providerConfigStore == nil) && builder.repositoryFactory != nil {
		if storeFactory, ok := builder.repositoryFactory.(RepositoryStoreFactory); ok {
			storeProvider, buildErr := storeFactory.BuildStores(builder.persistenceClient)
			if buildErr != nil {
				return nil, mapBuildError(builder.errorMapper, buildErr)
			}
			if storeProvider != nil {
				if builder.providerStore == nil {
					builder.providerStore = storeProvider.ProviderStore()
				}
				if builder.providerConfigStore == nil {
					builder.providerConfigStore = storeProvider.ProviderConfigStore()
				}
			}
		} else if storeProvider, ok := builder.repositoryFactory.(StoreProvider); ok {
			if builder.providerStore == nil {
				builder.providerStore = storeProvider.ProviderStore()
			}
			if builder.providerConfigStore == nil {
				builder.providerConfigStore = storeProvider.ProviderConfigStore()
			}
		}
	}

	return &Service{
		config:              finalConfig,
		logger:              logger,
		loggerProvider:      provider,
		metricsRecorder:     builder.metricsRecorder,
		errorFactory:        builder.errorFactory,
		errorMapper:         builder.errorMapper,
		registry:            builder.registry,
		schemas:             builder.credentialSchemas,
		secretStore:         builder.secretStore,
		providerStore:       builder.providerStore,
		providerConfigStore: builder.providerConfigStore,
		now:                 builder.now,
	}, nil
}

func (s *Service) Config() Config {
	if s == nil {
		return Config{}
	}
	return s.config
}

// Dependencies exposes the resolved collaborators.
func (s *Service) Dependencies() ServiceDependencies {
	if s == nil {
		return ServiceDependencies{}
	}
	return ServiceDependencies{
		Logger:              s.logger,
		LoggerProvider:      s.loggerProvider,
		MetricsRecorder:     s.metricsRecorder,
		Registry:            s.registry,
		SecretStore:         s.secretStore,
		ProviderStore:       s.providerStore,
		ProviderConfigStore: s.providerConfigStore,
	}
}

func (s *Service) schemaFor(providerName string) (CredentialSchema, bool) {
	schema, ok := s.schemas[strings.ToLower(strings.TrimSpace(providerName))]
	return schema, ok
}

// Configure runs the onboarding pipeline for one provider. Failure
// ordering matters: structural validation happens before any I/O, a
// failed live test aborts before either store is touched, and a vault
// write failure leaves any existing config row unchanged.
func (s *Service) Configure(ctx context.Context, req ConfigureRequest) (ProviderConfig, error) {
	startedAt := time.Now()
	fields := map[string]any{
		"provider":  strings.ToLower(strings.TrimSpace(req.ProviderName)),
		"tenant_id": req.TenantID,
		"live_test": req.RunLiveTest,
	}

	config, err := s.configure(ctx, req)
	s.observeOperation(ctx, startedAt, "configure", err, fields)
	if err != nil {
		return ProviderConfig{}, s.mapError(err)
	}
	return config, nil
}

func (s *Service) configure(ctx context.Context, req ConfigureRequest) (ProviderConfig, error) {
	if s == nil {
		return ProviderConfig{}, fmt.Errorf("core: service is nil")
	}
	if s.providerStore == nil || s.providerConfigStore == nil {
		return ProviderConfig{}, internalError("core: provider stores are not configured")
	}
	if s.secretStore == nil {
		return ProviderConfig{}, internalError("core: secret store is not configured")
	}

	providerName := strings.ToLower(strings.TrimSpace(req.ProviderName))
	if providerName == "" {
		return ProviderConfig{}, badInputError("invalid configuration: provider name is required")
	}
	if req.Credentials.IsEmpty() {
		return ProviderConfig{}, badInputError("invalid configuration: credentials are required")
	}
	if req.TenantID <= 0 {
		return ProviderConfig{}, badInputError("invalid configuration: tenant id is required")
	}
	if !s.config.ProviderEnabled(providerName) {
		return ProviderConfig{}, badInputError(fmt.Sprintf("invalid configuration: provider %q is not enabled", providerName))
	}

	catalogProvider, err := s.providerStore.FindByName(ctx, providerName)
	if err != nil {
		if isNotFoundError(err) {
			return ProviderConfig{}, providerNotFoundError(providerName, err)
		}
		return ProviderConfig{}, storeFailureError("core: load provider catalog row", err)
	}

	schema, hasSchema := s.schemaFor(providerName)
	if hasSchema {
		if err := schema.Validate(req.Credentials); err != nil {
			return ProviderConfig{}, badInputError(err.Error())
		}
	}

	// The registry is consulted only for live tests; without one, a
	// catalog row with no wired tester is still configurable.
	liveTestPassed := false
	if req.RunLiveTest {
		if s.registry == nil {
			return ProviderConfig{}, badInputError(
				fmt.Sprintf("invalid configuration: no connection tester registered for provider %q", providerName))
		}
		tester, testerErr := s.registry.Tester(providerName)
		if testerErr != nil {
			return ProviderConfig{}, badInputError(
				fmt.Sprintf("invalid configuration: no connection tester registered for provider %q", providerName))
		}
		if !hasSchema {
			if err := tester.Schema().Validate(req.Credentials); err != nil {
				return ProviderConfig{}, badInputError(err.Error())
			}
		}
		result, err := tester.Test(ctx, req.Credentials)
		if err != nil {
			return ProviderConfig{}, internalError(fmt.Sprintf("core: connection tester crashed: %v", err))
		}
		if !result.Success {
			return ProviderConfig{}, goerrors.New(
				"connection test failed: "+result.Message,
				goerrors.CategoryOperation,
			).
				WithCode(http.StatusUnprocessableEntity).
				WithTextCode(ErrorTestFailed)
		}
		liveTestPassed = true
	}

	vaultPath, err := VaultPathFor(providerName, req.TenantID)
	if err != nil {
		return ProviderConfig{}, badInputError(err.Error())
	}

	if err := s.secretStore.Save(ctx, providerName, req.TenantID, req.Credentials); err != nil {
		return ProviderConfig{}, goerrors.Wrap(
			err,
			goerrors.CategoryExternal,
			"failed to store credentials",
		).
			WithCode(http.StatusBadGateway).
			WithTextCode(ErrorVaultFailed)
	}

	now := s.now()
	existing, findErr := s.providerConfigStore.FindByTenantAndProvider(ctx, req.TenantID, catalogProvider.ID)
	if findErr != nil && !isNotFoundError(findErr) {
		return ProviderConfig{}, storeFailureError("core: load provider config for upsert", findErr)
	}
	if findErr == nil {
		existing.VaultPath = vaultPath
		existing.ProviderName = catalogProvider.Name
		existing.UpdatedAt = now
		if liveTestPassed {
			existing.Enabled = true
			existing.LastVerifiedAt = &now
		}
		updated, err := s.providerConfigStore.Update(ctx, existing)
		if err != nil {
			return ProviderConfig{}, storeFailureError("core: update provider config", err)
		}
		return updated, nil
	}

	record := ProviderConfig{
		TenantID:     req.TenantID,
		ProviderID:   catalogProvider.ID,
		ProviderName: catalogProvider.Name,
		Enabled:      liveTestPassed,
		VaultPath:    vaultPath,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if liveTestPassed {
		record.LastVerifiedAt = &now
	}
	created, err := s.providerConfigStore.Create(ctx, record)
	if err != nil {
		return ProviderConfig{}, storeFailureError("core: create provider config", err)
	}
	return created, nil
}

// TestExisting re-runs the live connection test for a stored
// configuration. A failing test is a normal outcome, returned as a
// result; only infrastructure problems surface as errors.
func (s *Service) TestExisting(ctx context.Context, configID string, tenantID int64) (ConnectionTestResult, error) {
	startedAt := time.Now()
	fields := map[string]any{
		"config_id": strings.TrimSpace(configID),
		"tenant_id": tenantID,
	}

	result, err := s.testExisting(ctx, configID, tenantID)
	s.observeOperation(ctx, startedAt, "test_existing", err, fields)
	if err != nil {
		return ConnectionTestResult{}, s.mapError(err)
	}
	return result, nil
}

func (s *Service) testExisting(ctx context.Context, configID string, tenantID int64) (ConnectionTestResult, error) {
	if s == nil {
		return ConnectionTestResult{}, fmt.Errorf("core: service is nil")
	}
	if s.providerConfigStore == nil {
		return ConnectionTestResult{}, internalError("core: provider config store is not configured")
	}
	if s.secretStore == nil {
		return ConnectionTestResult{}, internalError("core: secret store is not configured")
	}

	configID = strings.TrimSpace(configID)
	if configID == "" {
		return ConnectionTestResult{}, badInputError("invalid request: config id is required")
	}

	config, err := s.providerConfigStore.FindByID(ctx, configID)
	if err != nil {
		if isNotFoundError(err) {
			return ConnectionTestResult{}, configNotFoundError(configID, err)
		}
		return ConnectionTestResult{}, storeFailureError("core: load provider config", err)
	}
	if config.TenantID != tenantID {
		// Same generic denial regardless of whether the row exists for
		// another tenant.
		return ConnectionTestResult{}, goerrors.New(
			"access denied",
			goerrors.CategoryAuthz,
		).
			WithCode(http.StatusForbidden).
			WithTextCode(ErrorForbidden)
	}

	bundle, err := s.secretStore.Get(ctx, config.ProviderName, config.TenantID)
	if err != nil {
		if isNotFoundError(err) {
			return ConnectionTestResult{}, goerrors.New(
				fmt.Sprintf("credentials missing from vault for configuration %s", configID),
				goerrors.CategoryConflict,
			).
				WithCode(http.StatusConflict).
				WithTextCode(ErrorVaultEntryMissing)
		}
		return ConnectionTestResult{}, goerrors.Wrap(
			err,
			goerrors.CategoryExternal,
			"core: read credentials from vault",
		).
			WithCode(http.StatusBadGateway).
			WithTextCode(ErrorVaultFailed)
	}

	tester, err := s.registry.Tester(config.ProviderName)
	if err != nil {
		return ConnectionTestResult{}, err
	}

	result, err := tester.Test(ctx, bundle)
	if err != nil {
		return ConnectionTestResult{}, internalError(fmt.Sprintf("core: connection tester crashed: %v", err))
	}
	if !result.Success {
		return result, nil
	}

	now := s.now()
	config.LastVerifiedAt = &now
	config.UpdatedAt = now
	if _, err := s.providerConfigStore.Update(ctx, config); err != nil {
		return ConnectionTestResult{}, storeFailureError("core: update last verified timestamp", err)
	}
	return result, nil
}

// DeleteCredentials removes the vault entry for a (tenant, provider)
// pair and disables the matching configuration row. A vault entry that
// is already gone counts as deleted.
func (s *Service) DeleteCredentials(ctx context.Context, providerName string, tenantID int64) error {
	startedAt := time.Now()
	name := strings.ToLower(strings.TrimSpace(providerName))
	fields := map[string]any{
		"provider":  name,
		"tenant_id": tenantID,
	}

	err := s.deleteCredentials(ctx, name, tenantID)
	s.observeOperation(ctx, startedAt, "delete_credentials", err, fields)
	if err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *Service) deleteCredentials(ctx context.Context, providerName string, tenantID int64) error {
	if s == nil {
		return fmt.Errorf("core: service is nil")
	}
	if s.providerStore == nil || s.providerConfigStore == nil {
		return internalError("core: provider stores are not configured")
	}
	if s.secretStore == nil {
		return internalError("core: secret store is not configured")
	}
	if providerName == "" {
		return badInputError("invalid request: provider name is required")
	}
	if tenantID <= 0 {
		return badInputError("invalid request: tenant id is required")
	}

	catalogProvider, err := s.providerStore.FindByName(ctx, providerName)
	if err != nil {
		if isNotFoundError(err) {
			return providerNotFoundError(providerName, err)
		}
		return storeFailureError("core: load provider catalog row", err)
	}
	config, err := s.providerConfigStore.FindByTenantAndProvider(ctx, tenantID, catalogProvider.ID)
	if err != nil {
		if isNotFoundError(err) {
			return configNotFoundError(providerName, err)
		}
		return storeFailureError("core: load provider config", err)
	}

	if err := s.secretStore.Delete(ctx, providerName, tenantID); err != nil && !isNotFoundError(err) {
		return goerrors.Wrap(
			err,
			goerrors.CategoryExternal,
			"failed to delete credentials",
		).
			WithCode(http.StatusBadGateway).
			WithTextCode(ErrorVaultFailed)
	}

	now := s.now()
	config.Enabled = false
	config.LastVerifiedAt = nil
	config.UpdatedAt = now
	if _, err := s.providerConfigStore.Update(ctx, config); err != nil {
		return storeFailureError("core: disable provider config", err)
	}
	return nil
}

// GetProviderConfig loads a configuration with the same ownership
// semantics as TestExisting.
func (s *Service) GetProviderConfig(ctx context.Context, configID string, tenantID int64) (ProviderConfig, error) {
	if s == nil || s.providerConfigStore == nil {
		return ProviderConfig{}, s.mapError(internalError("core: provider config store is not configured"))
	}
	config, err := s.providerConfigStore.FindByID(ctx, strings.TrimSpace(configID))
	if err != nil {
		if isNotFoundError(err) {
			return ProviderConfig{}, s.mapError(configNotFoundError(configID, err))
		}
		return ProviderConfig{}, s.mapError(storeFailureError("core: load provider config", err))
	}
	if config.TenantID != tenantID {
		return ProviderConfig{}, s.mapError(goerrors.New("access denied", goerrors.CategoryAuthz).
			WithCode(http.StatusForbidden).
			WithTextCode(ErrorForbidden))
	}
	return config, nil
}

func (s *Service) ListTenantConfigs(ctx context.Context, tenantID int64) ([]ProviderConfig, error) {
	if s == nil || s.providerConfigStore == nil {
		return nil, s.mapError(internalError("core: provider config store is not configured"))
	}
	configs, err := s.providerConfigStore.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, s.mapError(storeFailureError("core: list tenant configs", err))
	}
	return configs, nil
}

// ListAvailableProviders joins the catalog with the tester registry so
// callers can render provider lists and know which entries support a
// live test.
func (s *Service) ListAvailableProviders(ctx context.Context) ([]AvailableProvider, error) {
	if s == nil || s.providerStore == nil {
		return nil, s.mapError(internalError("core: provider store is not configured"))
	}
	catalog, err := s.providerStore.List(ctx)
	if err != nil {
		return nil, s.mapError(storeFailureError("core: list providers", err))
	}

	registered := map[string]struct{}{}
	if s.registry != nil {
		for _, name := range s.registry.Names() {
			registered[name] = struct{}{}
		}
	}

	available := make([]AvailableProvider, 0, len(catalog))
	for _, provider := range catalog {
		if !s.config.ProviderEnabled(provider.Name) {
			continue
		}
		_, hasTester := registered[strings.ToLower(provider.Name)]
		available = append(available, AvailableProvider{
			Provider:         provider,
			TesterRegistered: hasTester,
		})
	}
	return available, nil
}

func (s *Service) mapError(err error) error {
	if err == nil {
		return nil
	}
	if s == nil || s.errorMapper == nil {
		return onboardingErrorMapper(err)
	}
	if mapped := s.errorMapper(err); mapped != nil {
		return mapped
	}
	return err
}

func mapBuildError(mapper ErrorMapper, err error) error {
	if err == nil {
		return nil
	}
	if mapper != nil {
		if mapped := mapper(err); mapped != nil {
			return mapped
		}
	}
	return err
}

func badInputError(message string) error {
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(ErrorBadInput)
}

func internalError(message string) error {
	return goerrors.New(message, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(ErrorInternal)
}

func providerNotFoundError(name string, cause error) error {
	return goerrors.Wrap(
		cause,
		goerrors.CategoryNotFound,
		fmt.Sprintf("provider not found: %q", name),
	).
		WithCode(http.StatusNotFound).
		WithTextCode(ErrorProviderNotFound)
}

func configNotFoundError(id string, cause error) error {
	return goerrors.Wrap(
		cause,
		goerrors.CategoryNotFound,
		fmt.Sprintf("configuration not found: %q", strings.TrimSpace(id)),
	).
		WithCode(http.StatusNotFound).
		WithTextCode(ErrorConfigNotFound)
}

func storeFailureError(message string, cause error) error {
	return goerrors.Wrap(cause, goerrors.CategoryInternal, message).
		WithCode(http.StatusInternalServerError).
		WithTextCode(ErrorInternal)
}

func isNotFoundError(err error) bool {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.Category == goerrors.CategoryNotFound
	}
	return false
}

func emptyTesterRegistry() *TesterRegistry {
	registry, err := NewTesterRegistry()
	if err != nil {
		return &TesterRegistry{testers: map[string]ConnectionTester{}}
	}
	return registry
}
