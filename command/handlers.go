package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"

	"github.com/paylinkhq/go-paylink/core"
)

type MutatingService interface {
	Configure(ctx context.Context, req core.ConfigureRequest) (core.ProviderConfig, error)
	TestExisting(ctx context.Context, configID string, tenantID int64) (core.ConnectionTestResult, error)
}

// CredentialDeleter removes a tenant's stored credential bundle and
// disables the matching configuration row.
type CredentialDeleter interface {
	DeleteCredentials(ctx context.Context, providerName string, tenantID int64) error
}

type ConfigureProviderCommand struct {
	service MutatingService
}

func NewConfigureProviderCommand(service MutatingService) *ConfigureProviderCommand {
	return &ConfigureProviderCommand{service: service}
}

func (c *ConfigureProviderCommand) Execute(ctx context.Context, msg ConfigureProviderMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: configure service is required")
	}
	out, err := c.service.Configure(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type TestConnectionCommand struct {
	service MutatingService
}

func NewTestConnectionCommand(service MutatingService) *TestConnectionCommand {
	return &TestConnectionCommand{service: service}
}

func (c *TestConnectionCommand) Execute(ctx context.Context, msg TestConnectionMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: connection test service is required")
	}
	out, err := c.service.TestExisting(ctx, msg.ConfigID, msg.TenantID)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type DeleteCredentialsCommand struct {
	deleter CredentialDeleter
}

func NewDeleteCredentialsCommand(deleter CredentialDeleter) *DeleteCredentialsCommand {
	return &DeleteCredentialsCommand{deleter: deleter}
}

func (c *DeleteCredentialsCommand) Execute(ctx context.Context, msg DeleteCredentialsMessage) error {
	if c == nil || c.deleter == nil {
		return commandDependencyError("command: credential deleter is required")
	}
	return c.deleter.DeleteCredentials(ctx, msg.ProviderName, msg.TenantID)
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
