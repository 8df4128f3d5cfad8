package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[ConfigureProviderMessage] = (*ConfigureProviderCommand)(nil)
	_ gocmd.Commander[TestConnectionMessage]    = (*TestConnectionCommand)(nil)
	_ gocmd.Commander[DeleteCredentialsMessage] = (*DeleteCredentialsCommand)(nil)
)
