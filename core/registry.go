package core

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// TesterRegistry maps canonical provider names to their connection
// testers. It is assembled once at wiring time from an explicit list
// of implementations and is read-only afterwards.
type TesterRegistry struct {
	testers map[string]ConnectionTester
}

func NewTesterRegistry(testers ...ConnectionTester) (*TesterRegistry, error) {
	registry := &TesterRegistry{testers: make(map[string]ConnectionTester, len(testers))}
	for _, tester := range testers {
		if tester == nil {
			return nil, fmt.Errorf("core: tester is nil")
		}
		name := strings.ToLower(strings.TrimSpace(tester.Name()))
		if name == "" {
			return nil, fmt.Errorf("core: tester name is required")
		}
		if _, exists := registry.testers[name]; exists {
			return nil, fmt.Errorf("core: tester already registered: %s", name)
		}
		registry.testers[name] = tester
	}
	return registry, nil
}

// Tester resolves a tester by name. Unknown names are a client error,
// not a fatal one.
func (r *TesterRegistry) Tester(name string) (ConnectionTester, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if r == nil || normalized == "" {
		return nil, unsupportedProviderError(name)
	}
	tester, ok := r.testers[normalized]
	if !ok {
		return nil, unsupportedProviderError(normalized)
	}
	return tester, nil
}

// Schemas snapshots every registered tester's credential schema, keyed
// by canonical name. The snapshot lets payload validation run without
// consulting the registry again.
func (r *TesterRegistry) Schemas() map[string]CredentialSchema {
	if r == nil {
		return map[string]CredentialSchema{}
	}
	schemas := make(map[string]CredentialSchema, len(r.testers))
	for name, tester := range r.testers {
		schemas[name] = tester.Schema()
	}
	return schemas
}

func (r *TesterRegistry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.testers))
	for name := range r.testers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func unsupportedProviderError(name string) error {
	return goerrors.New(
		fmt.Sprintf("core: unsupported provider: %q", strings.TrimSpace(name)),
		goerrors.CategoryNotFound,
	).
		WithCode(http.StatusNotFound).
		WithTextCode(ErrorProviderNotFound)
}

var _ Registry = (*TesterRegistry)(nil)
