// Package paylink onboards merchant payment-provider credentials: it
// validates a tenant's credential bundle against the provider's schema,
// proves it against the provider's live API with a read-only call,
// stores the bundle in a vault-style secret store, and persists the
// per-tenant configuration row.
//
// The root package re-exports the core service surface and bundles the
// command/query handlers behind a Facade. Provider connection testers
// live under providers/, the secret-store client under vault/, and the
// bun-backed stores under store/sql.
package paylink
