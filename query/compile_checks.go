package query

import (
	gocmd "github.com/goliatone/go-command"

	"github.com/paylinkhq/go-paylink/core"
)

var (
	_ gocmd.Querier[GetProviderConfigMessage, core.ProviderConfig]   = (*GetProviderConfigQuery)(nil)
	_ gocmd.Querier[ListTenantConfigsMessage, []core.ProviderConfig] = (*ListTenantConfigsQuery)(nil)
	_ gocmd.Querier[ListProvidersMessage, []core.AvailableProvider]  = (*ListProvidersQuery)(nil)
)
