package sqlstore

import (
	"context"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"

	"github.com/paylinkhq/go-paylink/core"
)

// ProviderStore reads the seeded payment-provider catalog. The catalog
// is written only by migrations, so the store exposes no mutation
// methods.
type ProviderStore struct {
	db   *bun.DB
	repo repository.Repository[*providerRecord]
}

func (s *ProviderStore) FindByName(ctx context.Context, name string) (core.Provider, error) {
	if s == nil || s.repo == nil {
		return core.Provider{}, fmt.Errorf("sqlstore: provider store is not configured")
	}
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return core.Provider{}, fmt.Errorf("sqlstore: provider name is required")
	}

	records, _, err := s.repo.List(ctx,
		repository.SelectBy("name", "=", name),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return core.Provider{}, err
	}
	if len(records) == 0 {
		return core.Provider{}, goerrors.New(
			fmt.Sprintf("provider not found: %q", name),
			goerrors.CategoryNotFound,
		).WithTextCode(core.ErrorProviderNotFound)
	}
	return records[0].toDomain(), nil
}

func (s *ProviderStore) List(ctx context.Context) ([]core.Provider, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("sqlstore: provider store is not configured")
	}
	records, _, err := s.repo.List(ctx, repository.OrderBy("name ASC"))
	if err != nil {
		return nil, err
	}

	out := make([]core.Provider, 0, len(records))
	for _, record := range records {
		out = append(out, record.toDomain())
	}
	return out, nil
}
