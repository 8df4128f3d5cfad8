// Package migrations exposes the embedded provider-onboarding schema
// migrations and feeds them to a persistence client, one dialect at a
// time.
package migrations

import (
	"context"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	paylink "github.com/paylinkhq/go-paylink"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"

	sourceLabel   = "go-paylink"
	migrationsDir = "data/sql/migrations"
)

// FilesystemSpec pairs one dialect with the filesystem holding its
// migration files.
type FilesystemSpec struct {
	Dialect string
	Path    string
	FS      fs.FS
}

// Registration reports what Register wired.
type Registration struct {
	SourceLabel       string
	ValidationTargets []string
	Filesystems       []FilesystemSpec
}

// RegisterFunc receives one dialect's migration filesystem. The
// persistence client's RegisterSQLMigrations is the usual target.
type RegisterFunc func(ctx context.Context, dialect string, sourceLabel string, fsys fs.FS) error

type Option func(*Registration)

// WithValidationTargets restricts registration to the named dialects.
func WithValidationTargets(targets ...string) Option {
	return func(r *Registration) {
		next := make([]string, 0, len(targets))
		for _, target := range targets {
			trimmed := strings.ToLower(strings.TrimSpace(target))
			if trimmed == "" || slices.Contains(next, trimmed) {
				continue
			}
			next = append(next, trimmed)
		}
		if len(next) > 0 {
			r.ValidationTargets = next
		}
	}
}

// Filesystems returns the embedded postgres and sqlite migration
// trees, verifying each carries at least one up migration.
func Filesystems() ([]FilesystemSpec, error) {
	base, err := fs.Sub(paylink.GetCoreMigrationsFS(), migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("migrations: resolve %s: %w", migrationsDir, err)
	}
	sqliteFS, err := fs.Sub(base, DialectSQLite)
	if err != nil {
		return nil, fmt.Errorf("migrations: resolve sqlite filesystem: %w", err)
	}

	filesystems := []FilesystemSpec{
		{Dialect: DialectPostgres, Path: migrationsDir, FS: base},
		{Dialect: DialectSQLite, Path: migrationsDir + "/sqlite", FS: sqliteFS},
	}
	for _, spec := range filesystems {
		matches, globErr := fs.Glob(spec.FS, "*.up.sql")
		if globErr != nil {
			return nil, fmt.Errorf("migrations: glob %s %s: %w", spec.Dialect, spec.Path, globErr)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("migrations: %s filesystem %q has no *.up.sql files", spec.Dialect, spec.Path)
		}
	}
	return filesystems, nil
}

// Register hands each requested dialect's filesystem to registerFn. By
// default both dialects are registered; WithValidationTargets narrows
// the set.
func Register(ctx context.Context, registerFn RegisterFunc, opts ...Option) (Registration, error) {
	reg := Registration{
		SourceLabel:       sourceLabel,
		ValidationTargets: []string{DialectPostgres, DialectSQLite},
	}
	if registerFn == nil {
		return reg, fmt.Errorf("migrations: register function is required")
	}

	filesystems, err := Filesystems()
	if err != nil {
		return reg, err
	}
	reg.Filesystems = filesystems

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&reg)
	}
	if len(reg.ValidationTargets) == 0 {
		return reg, fmt.Errorf("migrations: validation targets are required")
	}

	for _, spec := range reg.Filesystems {
		if !slices.Contains(reg.ValidationTargets, spec.Dialect) {
			continue
		}
		if err := registerFn(ctx, spec.Dialect, reg.SourceLabel, spec.FS); err != nil {
			return reg, fmt.Errorf("migrations: register %s (%s): %w", spec.Dialect, spec.Path, err)
		}
	}
	return reg, nil
}
