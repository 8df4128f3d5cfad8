// Package vault stores tenant credential bundles in HashiCorp Vault's
// KV v2 secrets engine over its HTTP API.
//
// The client never accepts raw secret paths. Every location is derived
// from the provider name and tenant id, which keeps tenant isolation a
// structural property instead of a caller convention.
package vault
