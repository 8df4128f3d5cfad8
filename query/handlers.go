package query

import (
	"context"

	"github.com/paylinkhq/go-paylink/core"
)

type ProviderConfigReader interface {
	GetProviderConfig(ctx context.Context, configID string, tenantID int64) (core.ProviderConfig, error)
	ListTenantConfigs(ctx context.Context, tenantID int64) ([]core.ProviderConfig, error)
}

type ProviderCatalogReader interface {
	ListAvailableProviders(ctx context.Context) ([]core.AvailableProvider, error)
}

type GetProviderConfigQuery struct {
	reader ProviderConfigReader
}

func NewGetProviderConfigQuery(reader ProviderConfigReader) *GetProviderConfigQuery {
	return &GetProviderConfigQuery{reader: reader}
}

func (q *GetProviderConfigQuery) Query(ctx context.Context, msg GetProviderConfigMessage) (core.ProviderConfig, error) {
	if q == nil || q.reader == nil {
		return core.ProviderConfig{}, queryDependencyError("query: provider config reader is required")
	}
	return q.reader.GetProviderConfig(ctx, msg.ConfigID, msg.TenantID)
}

type ListTenantConfigsQuery struct {
	reader ProviderConfigReader
}

func NewListTenantConfigsQuery(reader ProviderConfigReader) *ListTenantConfigsQuery {
	return &ListTenantConfigsQuery{reader: reader}
}

func (q *ListTenantConfigsQuery) Query(ctx context.Context, msg ListTenantConfigsMessage) ([]core.ProviderConfig, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: provider config reader is required")
	}
	return q.reader.ListTenantConfigs(ctx, msg.TenantID)
}

type ListProvidersQuery struct {
	reader ProviderCatalogReader
}

func NewListProvidersQuery(reader ProviderCatalogReader) *ListProvidersQuery {
	return &ListProvidersQuery{reader: reader}
}

func (q *ListProvidersQuery) Query(ctx context.Context, msg ListProvidersMessage) ([]core.AvailableProvider, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: provider catalog reader is required")
	}
	return q.reader.ListAvailableProviders(ctx)
}
