package query

import (
	"fmt"
	"strings"
)

const (
	TypeGetProviderConfig = "paylink.query.provider_config.get"
	TypeListTenantConfigs = "paylink.query.provider_config.list"
	TypeListProviders     = "paylink.query.provider.list"
)

type GetProviderConfigMessage struct {
	ConfigID string
	TenantID int64
}

func (GetProviderConfigMessage) Type() string { return TypeGetProviderConfig }

func (m GetProviderConfigMessage) Validate() error {
	if strings.TrimSpace(m.ConfigID) == "" {
		return fmt.Errorf("query: config id is required")
	}
	if m.TenantID <= 0 {
		return fmt.Errorf("query: tenant id is required")
	}
	return nil
}

type ListTenantConfigsMessage struct {
	TenantID int64
}

func (ListTenantConfigsMessage) Type() string { return TypeListTenantConfigs }

func (m ListTenantConfigsMessage) Validate() error {
	if m.TenantID <= 0 {
		return fmt.Errorf("query: tenant id is required")
	}
	return nil
}

type ListProvidersMessage struct{}

func (ListProvidersMessage) Type() string { return TypeListProviders }

func (ListProvidersMessage) Validate() error { return nil }
