package sqlstore

import (
	"fmt"

	persistence "github.com/goliatone/go-persistence-bun"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"

	"github.com/paylinkhq/go-paylink/core"
)

type RepositoryFactory struct {
	db *bun.DB

	providerStore       *ProviderStore
	providerConfigStore *ProviderConfigStore
}

func NewRepositoryFactory() *RepositoryFactory {
	return &RepositoryFactory{}
}

func NewRepositoryFactoryFromPersistence(client *persistence.Client) (*RepositoryFactory, error) {
	factory := NewRepositoryFactory()
	if _, err := factory.BuildStores(client); err != nil {
		return nil, err
	}
	return factory, nil
}

func NewRepositoryFactoryFromDB(db *bun.DB) (*RepositoryFactory, error) {
	factory := NewRepositoryFactory()
	if _, err := factory.BuildStores(db); err != nil {
		return nil, err
	}
	return factory, nil
}

func (f *RepositoryFactory) BuildStores(persistenceClient any) (core.StoreProvider, error) {
	if f == nil {
		return nil, fmt.Errorf("sqlstore: repository factory is nil")
	}
	if f.db == nil {
		db, err := resolveBunDB(persistenceClient)
		if err != nil {
			return nil, err
		}
		f.db = db
	}
	if f.providerStore != nil && f.providerConfigStore != nil {
		return f, nil
	}
	if err := f.initStores(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *RepositoryFactory) ProviderStore() core.ProviderStore {
	if f == nil {
		return nil
	}
	return f.providerStore
}

func (f *RepositoryFactory) ProviderConfigStore() core.ProviderConfigStore {
	if f == nil {
		return nil
	}
	return f.providerConfigStore
}

func (f *RepositoryFactory) DB() *bun.DB {
	if f == nil {
		return nil
	}
	return f.db
}

func (f *RepositoryFactory) initStores() error {
	providerRepo := repository.NewRepository[*providerRecord](f.db, providerHandlers())
	if validator, ok := providerRepo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("sqlstore: invalid provider repository wiring: %w", err)
		}
	}

	providerConfigRepo := repository.NewRepository[*providerConfigRecord](f.db, providerConfigHandlers())
	if validator, ok := providerConfigRepo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("sqlstore: invalid provider config repository wiring: %w", err)
		}
	}

	f.providerStore = &ProviderStore{
		db:   f.db,
		repo: providerRepo,
	}
	f.providerConfigStore = &ProviderConfigStore{
		db:   f.db,
		repo: providerConfigRepo,
	}
	return nil
}

func resolveBunDB(candidate any) (*bun.DB, error) {
	switch typed := candidate.(type) {
	case nil:
		return nil, fmt.Errorf("sqlstore: persistence client is required")
	case *bun.DB:
		return typed, nil
	case interface{ DB() *bun.DB }:
		db := typed.DB()
		if db == nil {
			return nil, fmt.Errorf("sqlstore: persistence client returned nil bun db")
		}
		return db, nil
	default:
		return nil, fmt.Errorf("sqlstore: unsupported persistence client type %T", candidate)
	}
}
