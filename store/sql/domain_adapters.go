package sqlstore

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/paylinkhq/go-paylink/core"
)

func (r *providerRecord) toDomain() core.Provider {
	if r == nil {
		return core.Provider{}
	}
	return core.Provider{
		ID:          r.ID,
		Name:        r.Name,
		DisplayName: r.DisplayName,
		BrandColor:  r.BrandColor,
		CreatedAt:   r.CreatedAt,
	}
}

func (r *providerConfigRecord) toDomain() core.ProviderConfig {
	if r == nil {
		return core.ProviderConfig{}
	}
	return core.ProviderConfig{
		ID:             r.ID,
		TenantID:       r.TenantID,
		ProviderID:     r.ProviderID,
		ProviderName:   r.ProviderName,
		Enabled:        r.Enabled,
		LastVerifiedAt: cloneTimePointer(r.LastVerifiedAt),
		VaultPath:      r.VaultPath,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func newProviderConfigRecord(config core.ProviderConfig, now time.Time) *providerConfigRecord {
	id := strings.TrimSpace(config.ID)
	if id == "" {
		id = uuid.NewString()
	}
	createdAt := config.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	updatedAt := config.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = now
	}
	return &providerConfigRecord{
		ID:             id,
		TenantID:       config.TenantID,
		ProviderID:     strings.TrimSpace(config.ProviderID),
		ProviderName:   strings.ToLower(strings.TrimSpace(config.ProviderName)),
		Enabled:        config.Enabled,
		LastVerifiedAt: cloneTimePointer(config.LastVerifiedAt),
		VaultPath:      strings.TrimSpace(config.VaultPath),
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}
}

func cloneTimePointer(input *time.Time) *time.Time {
	if input == nil {
		return nil
	}
	value := input.UTC()
	return &value
}
