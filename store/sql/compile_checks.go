package sqlstore

import "github.com/paylinkhq/go-paylink/core"

var (
	_ core.ProviderStore          = (*ProviderStore)(nil)
	_ core.ProviderConfigStore    = (*ProviderConfigStore)(nil)
	_ core.StoreProvider          = (*RepositoryFactory)(nil)
	_ core.RepositoryStoreFactory = (*RepositoryFactory)(nil)
)
