package core

import (
	"fmt"
	"strings"
)

type VaultConfig struct {
	Address  string `koanf:"address" mapstructure:"address"`
	Mount    string `koanf:"mount" mapstructure:"mount"`
	BasePath string `koanf:"base_path" mapstructure:"base_path"`
}

type ProvidersConfig struct {
	Enabled []string `koanf:"enabled" mapstructure:"enabled"`
}

type Config struct {
	ServiceName string          `koanf:"service_name" mapstructure:"service_name"`
	Vault       VaultConfig     `koanf:"vault" mapstructure:"vault"`
	Providers   ProvidersConfig `koanf:"providers" mapstructure:"providers"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "paylink",
		Vault: VaultConfig{
			Mount: "secret",
		},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	if strings.TrimSpace(c.Vault.Mount) == "" {
		return fmt.Errorf("core: vault.mount is required")
	}
	return nil
}

// ProviderEnabled reports whether a provider passes the configured
// allowlist. An empty allowlist enables everything.
func (c Config) ProviderEnabled(name string) bool {
	if len(c.Providers.Enabled) == 0 {
		return true
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, enabled := range c.Providers.Enabled {
		if strings.ToLower(strings.TrimSpace(enabled)) == normalized {
			return true
		}
	}
	return false
}
