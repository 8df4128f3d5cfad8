package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidProviderName = errors.New("core: invalid provider name")
	ErrInvalidTenantID     = errors.New("core: invalid tenant id")
)

// Provider is a catalog row describing a supported payment provider.
// Catalog rows are seeded by migration and never mutated here.
type Provider struct {
	ID          string
	Name        string
	DisplayName string
	BrandColor  string
	CreatedAt   time.Time
}

// ProviderConfig binds one tenant to one Provider. At most one row
// exists per (TenantID, ProviderID) pair.
type ProviderConfig struct {
	ID             string
	TenantID       int64
	ProviderID     string
	ProviderName   string
	Enabled        bool
	LastVerifiedAt *time.Time
	VaultPath      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CredentialBundle is the provider-specific secret material a tenant
// supplies. It lives only in the secret store, never in the relational
// database.
type CredentialBundle map[string]any

func (b CredentialBundle) IsEmpty() bool {
	return len(b) == 0
}

func (b CredentialBundle) Clone() CredentialBundle {
	if b == nil {
		return nil
	}
	copied := make(CredentialBundle, len(b))
	for key, value := range b {
		copied[key] = value
	}
	return copied
}

// StringField returns the named field coerced to a trimmed string.
// Non-string scalars are formatted; absent fields return "".
func (b CredentialBundle) StringField(name string) string {
	if b == nil {
		return ""
	}
	value, ok := b[name]
	if !ok || value == nil {
		return ""
	}
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case fmt.Stringer:
		return strings.TrimSpace(typed.String())
	default:
		return strings.TrimSpace(fmt.Sprint(typed))
	}
}

// ConnectionTestResult reports the outcome of a single live credential
// check. It is transient: returned to the caller, never persisted.
type ConnectionTestResult struct {
	Success  bool
	Message  string
	Metadata map[string]any
	Elapsed  time.Duration
}

func TestSucceeded(message string, metadata map[string]any) ConnectionTestResult {
	if metadata == nil {
		metadata = map[string]any{}
	}
	return ConnectionTestResult{Success: true, Message: message, Metadata: metadata}
}

func TestFailed(message string) ConnectionTestResult {
	return ConnectionTestResult{Success: false, Message: message, Metadata: map[string]any{}}
}

// CredentialSchema lists the fields a provider requires, in the order
// they are validated and reported.
type CredentialSchema struct {
	Required []string
}

// Validate reports the first schema violation: a missing field, then a
// present-but-blank field. It performs no I/O.
func (s CredentialSchema) Validate(bundle CredentialBundle) error {
	for _, field := range s.Required {
		if bundle == nil {
			return fmt.Errorf("missing required field: %s", field)
		}
		value, ok := bundle[field]
		if !ok || value == nil {
			return fmt.Errorf("missing required field: %s", field)
		}
		if text, isString := value.(string); isString && strings.TrimSpace(text) == "" {
			return fmt.Errorf("field cannot be empty: %s", field)
		}
	}
	return nil
}

// VaultPathFor derives the deterministic secret-store path for a
// (provider, tenant) pair: providers/<name>/tenant-<id>. The provider
// name is lowercased and the tenant id rendered as a decimal integer so
// the path can be recomputed without consulting the backend.
func VaultPathFor(providerName string, tenantID int64) (string, error) {
	name := strings.ToLower(strings.TrimSpace(providerName))
	if name == "" {
		return "", ErrInvalidProviderName
	}
	if strings.ContainsAny(name, "/ \t\n") {
		return "", fmt.Errorf("%w: %q", ErrInvalidProviderName, providerName)
	}
	if tenantID <= 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidTenantID, tenantID)
	}
	return "providers/" + name + "/tenant-" + strconv.FormatInt(tenantID, 10), nil
}
