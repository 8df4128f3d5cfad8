package sqlstore

import (
	"time"

	"github.com/uptrace/bun"
)

type providerRecord struct {
	bun.BaseModel `bun:"table:payment_providers,alias:pp"`

	ID          string    `bun:"id,pk"`
	Name        string    `bun:"name,notnull"`
	DisplayName string    `bun:"display_name,notnull"`
	BrandColor  string    `bun:"brand_color"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

type providerConfigRecord struct {
	bun.BaseModel `bun:"table:provider_configs,alias:pc"`

	ID             string     `bun:"id,pk"`
	TenantID       int64      `bun:"tenant_id,notnull"`
	ProviderID     string     `bun:"provider_id,notnull"`
	ProviderName   string     `bun:"provider_name,notnull"`
	Enabled        bool       `bun:"enabled,notnull"`
	LastVerifiedAt *time.Time `bun:"last_verified_at,nullzero"`
	VaultPath      string     `bun:"vault_path,notnull"`
	CreatedAt      time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt      time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
