package sqlstore

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"

	"github.com/paylinkhq/go-paylink/core"
)

// ProviderConfigStore persists per-tenant provider bindings. The
// (tenant_id, provider_id) pair carries a unique constraint, so a
// duplicate Create surfaces as a database error rather than a second
// row.
type ProviderConfigStore struct {
	db   *bun.DB
	repo repository.Repository[*providerConfigRecord]
}

func (s *ProviderConfigStore) FindByID(ctx context.Context, id string) (core.ProviderConfig, error) {
	if s == nil || s.repo == nil {
		return core.ProviderConfig{}, fmt.Errorf("sqlstore: provider config store is not configured")
	}
	trimmedID := strings.TrimSpace(id)
	if trimmedID == "" {
		return core.ProviderConfig{}, fmt.Errorf("sqlstore: config id is required")
	}

	records, _, err := s.repo.List(ctx,
		repository.SelectBy("id", "=", trimmedID),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return core.ProviderConfig{}, err
	}
	if len(records) == 0 {
		return core.ProviderConfig{}, configNotFound(trimmedID)
	}
	return records[0].toDomain(), nil
}

func (s *ProviderConfigStore) FindByTenantAndProvider(ctx context.Context, tenantID int64, providerID string) (core.ProviderConfig, error) {
	if s == nil || s.repo == nil {
		return core.ProviderConfig{}, fmt.Errorf("sqlstore: provider config store is not configured")
	}
	providerID = strings.TrimSpace(providerID)
	if providerID == "" {
		return core.ProviderConfig{}, fmt.Errorf("sqlstore: provider id is required")
	}

	records, _, err := s.repo.List(ctx,
		repository.SelectBy("tenant_id", "=", strconv.FormatInt(tenantID, 10)),
		repository.SelectBy("provider_id", "=", providerID),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return core.ProviderConfig{}, err
	}
	if len(records) == 0 {
		return core.ProviderConfig{}, goerrors.New(
			fmt.Sprintf("configuration not found for tenant %d and provider %q", tenantID, providerID),
			goerrors.CategoryNotFound,
		).WithTextCode(core.ErrorConfigNotFound)
	}
	return records[0].toDomain(), nil
}

func (s *ProviderConfigStore) ListByTenant(ctx context.Context, tenantID int64) ([]core.ProviderConfig, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("sqlstore: provider config store is not configured")
	}
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("tenant_id", "=", strconv.FormatInt(tenantID, 10)),
		repository.OrderBy("created_at ASC"),
	)
	if err != nil {
		return nil, err
	}

	out := make([]core.ProviderConfig, 0, len(records))
	for _, record := range records {
		out = append(out, record.toDomain())
	}
	return out, nil
}

func (s *ProviderConfigStore) Create(ctx context.Context, config core.ProviderConfig) (core.ProviderConfig, error) {
	if s == nil || s.repo == nil {
		return core.ProviderConfig{}, fmt.Errorf("sqlstore: provider config store is not configured")
	}
	if config.TenantID <= 0 {
		return core.ProviderConfig{}, fmt.Errorf("sqlstore: tenant id is required")
	}
	if strings.TrimSpace(config.ProviderID) == "" {
		return core.ProviderConfig{}, fmt.Errorf("sqlstore: provider id is required")
	}

	record := newProviderConfigRecord(config, time.Now().UTC())
	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return core.ProviderConfig{}, err
	}
	return created.toDomain(), nil
}

func (s *ProviderConfigStore) Update(ctx context.Context, config core.ProviderConfig) (core.ProviderConfig, error) {
	if s == nil || s.repo == nil {
		return core.ProviderConfig{}, fmt.Errorf("sqlstore: provider config store is not configured")
	}
	trimmedID := strings.TrimSpace(config.ID)
	if trimmedID == "" {
		return core.ProviderConfig{}, fmt.Errorf("sqlstore: config id is required")
	}

	current, err := s.FindByID(ctx, trimmedID)
	if err != nil {
		return core.ProviderConfig{}, err
	}

	config.ID = trimmedID
	config.TenantID = current.TenantID
	config.ProviderID = current.ProviderID
	config.CreatedAt = current.CreatedAt
	if config.UpdatedAt.IsZero() {
		config.UpdatedAt = time.Now().UTC()
	}

	record := newProviderConfigRecord(config, config.UpdatedAt)
	updated, err := s.repo.Update(ctx, record, repository.UpdateByID(trimmedID))
	if err != nil {
		return core.ProviderConfig{}, err
	}
	return updated.toDomain(), nil
}

func configNotFound(id string) error {
	return goerrors.New(
		fmt.Sprintf("configuration not found: %q", id),
		goerrors.CategoryNotFound,
	).WithTextCode(core.ErrorConfigNotFound)
}
