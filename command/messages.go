package command

import (
	"strings"

	"github.com/paylinkhq/go-paylink/core"
)

const (
	TypeConfigureProvider = "paylink.command.provider.configure"
	TypeTestConnection    = "paylink.command.connection.test"
	TypeDeleteCredentials = "paylink.command.credentials.delete"
)

type ConfigureProviderMessage struct {
	Request core.ConfigureRequest
}

func (ConfigureProviderMessage) Type() string { return TypeConfigureProvider }

func (m ConfigureProviderMessage) Validate() error {
	if strings.TrimSpace(m.Request.ProviderName) == "" {
		return commandInvalidInputError("command: provider name is required")
	}
	if m.Request.TenantID <= 0 {
		return commandInvalidInputError("command: tenant id is required")
	}
	if m.Request.Credentials.IsEmpty() {
		return commandInvalidInputError("command: credentials are required")
	}
	return nil
}

type TestConnectionMessage struct {
	ConfigID string
	TenantID int64
}

func (TestConnectionMessage) Type() string { return TypeTestConnection }

func (m TestConnectionMessage) Validate() error {
	if strings.TrimSpace(m.ConfigID) == "" {
		return commandInvalidInputError("command: config id is required")
	}
	if m.TenantID <= 0 {
		return commandInvalidInputError("command: tenant id is required")
	}
	return nil
}

type DeleteCredentialsMessage struct {
	ProviderName string
	TenantID     int64
}

func (DeleteCredentialsMessage) Type() string { return TypeDeleteCredentials }

func (m DeleteCredentialsMessage) Validate() error {
	if strings.TrimSpace(m.ProviderName) == "" {
		return commandInvalidInputError("command: provider name is required")
	}
	if m.TenantID <= 0 {
		return commandInvalidInputError("command: tenant id is required")
	}
	return nil
}
