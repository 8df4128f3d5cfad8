package core

import (
	"errors"
	"testing"
)

func TestVaultPathFor_Deterministic(t *testing.T) {
	path, err := VaultPathFor("Paystack", 42)
	if err != nil {
		t.Fatalf("vault path: %v", err)
	}
	if path != "providers/paystack/tenant-42" {
		t.Fatalf("unexpected path %q", path)
	}
}

func TestVaultPathFor_RejectsBadInput(t *testing.T) {
	cases := []struct {
		name     string
		provider string
		tenantID int64
		want     error
	}{
		{"blank name", "   ", 1, ErrInvalidProviderName},
		{"slash in name", "pay/stack", 1, ErrInvalidProviderName},
		{"zero tenant", "paystack", 0, ErrInvalidTenantID},
		{"negative tenant", "paystack", -3, ErrInvalidTenantID},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := VaultPathFor(tc.provider, tc.tenantID); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCredentialSchema_Validate(t *testing.T) {
	schema := CredentialSchema{Required: []string{"publicKey", "secretKey", "encryptionKey"}}

	if err := schema.Validate(CredentialBundle{
		"publicKey":     "SBPUBK_x",
		"secretKey":     "SBSECK_y",
		"encryptionKey": "z",
	}); err != nil {
		t.Fatalf("valid bundle rejected: %v", err)
	}

	err := schema.Validate(CredentialBundle{"publicKey": "SBPUBK_x"})
	if err == nil || err.Error() != "missing required field: secretKey" {
		t.Fatalf("expected missing secretKey, got %v", err)
	}

	err = schema.Validate(CredentialBundle{
		"publicKey":     "SBPUBK_x",
		"secretKey":     "   ",
		"encryptionKey": "z",
	})
	if err == nil || err.Error() != "field cannot be empty: secretKey" {
		t.Fatalf("expected blank secretKey, got %v", err)
	}

	if err := schema.Validate(nil); err == nil || err.Error() != "missing required field: publicKey" {
		t.Fatalf("expected first field reported for nil bundle, got %v", err)
	}
}

func TestCredentialBundle_StringField(t *testing.T) {
	bundle := CredentialBundle{
		"secretKey": "  sk_test_abc  ",
		"attempts":  3,
		"nilValue":  nil,
	}
	if got := bundle.StringField("secretKey"); got != "sk_test_abc" {
		t.Fatalf("expected trimmed string, got %q", got)
	}
	if got := bundle.StringField("attempts"); got != "3" {
		t.Fatalf("expected formatted scalar, got %q", got)
	}
	if got := bundle.StringField("nilValue"); got != "" {
		t.Fatalf("expected empty for nil value, got %q", got)
	}
	if got := bundle.StringField("absent"); got != "" {
		t.Fatalf("expected empty for absent field, got %q", got)
	}
}

func TestCredentialBundle_CloneIsIndependent(t *testing.T) {
	original := CredentialBundle{"secretKey": "sk_live_1"}
	copied := original.Clone()
	copied["secretKey"] = "sk_live_2"
	if original["secretKey"] != "sk_live_1" {
		t.Fatalf("clone mutated the original bundle")
	}
}
