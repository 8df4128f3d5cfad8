package paylink

import (
	"fmt"

	paylinkcommand "github.com/paylinkhq/go-paylink/command"
	"github.com/paylinkhq/go-paylink/core"
	paylinkquery "github.com/paylinkhq/go-paylink/query"
)

var _ CommandQueryService = (*core.Service)(nil)

type CommandQueryService interface {
	paylinkcommand.MutatingService
	paylinkcommand.CredentialDeleter
	paylinkquery.ProviderConfigReader
	paylinkquery.ProviderCatalogReader
}

type Commands struct {
	Configure         *paylinkcommand.ConfigureProviderCommand
	TestConnection    *paylinkcommand.TestConnectionCommand
	DeleteCredentials *paylinkcommand.DeleteCredentialsCommand
}

type Queries struct {
	GetProviderConfig *paylinkquery.GetProviderConfigQuery
	ListTenantConfigs *paylinkquery.ListTenantConfigsQuery
	ListProviders     *paylinkquery.ListProvidersQuery
}

// Facade bundles the command and query handlers behind one onboarding
// service so host applications wire a single dependency.
type Facade struct {
	service  CommandQueryService
	commands Commands
	queries  Queries
}

type FacadeOption func(*facadeOptions)

type facadeOptions struct {
	deleter paylinkcommand.CredentialDeleter
}

// WithCredentialDeleter overrides the deleter backing the
// DeleteCredentials command; by default the service itself is used.
func WithCredentialDeleter(deleter paylinkcommand.CredentialDeleter) FacadeOption {
	return func(options *facadeOptions) {
		options.deleter = deleter
	}
}

func NewFacade(service CommandQueryService, opts ...FacadeOption) (*Facade, error) {
	if service == nil {
		return nil, fmt.Errorf("paylink: command/query service is required")
	}
	cfg := facadeOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	deleter := cfg.deleter
	if deleter == nil {
		deleter = service
	}

	facade := &Facade{service: service}
	facade.commands = Commands{
		Configure:         paylinkcommand.NewConfigureProviderCommand(service),
		TestConnection:    paylinkcommand.NewTestConnectionCommand(service),
		DeleteCredentials: paylinkcommand.NewDeleteCredentialsCommand(deleter),
	}
	facade.queries = Queries{
		GetProviderConfig: paylinkquery.NewGetProviderConfigQuery(service),
		ListTenantConfigs: paylinkquery.NewListTenantConfigsQuery(service),
		ListProviders:     paylinkquery.NewListProvidersQuery(service),
	}

	return facade, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Service() CommandQueryService {
	if f == nil {
		return nil
	}
	return f.service
}
