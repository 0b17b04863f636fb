package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations
var migrationFiles embed.FS

// Migrator applies the embedded SQL migrations for the connected dialect.
type Migrator struct {
	db     *sqlx.DB
	dir    string
	logger *zap.Logger
}

// NewMigrator creates a migrator for the driver the pool was opened with.
func NewMigrator(db *sqlx.DB, logger *zap.Logger) *Migrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Migrator{db: db, dir: path.Join("migrations", db.DriverName()), logger: logger}
}

// Up applies every pending migration in version order and returns the versions applied.
func (m *Migrator) Up(ctx context.Context) ([]string, error) {
	files, err := fs.ReadDir(migrationFiles, m.dir)
	if err != nil {
		return nil, fmt.Errorf("no migrations for driver %q: %w", m.db.DriverName(), err)
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		if !f.IsDir() && strings.HasSuffix(f.Name(), ".sql") {
			names = append(names, f.Name())
		}
	}
	sort.Strings(names)

	if err := m.ensureMigrationTable(ctx); err != nil {
		return nil, err
	}

	var applied []string
	for _, name := range names {
		version := strings.SplitN(name, "_", 2)[0]
		done, err := m.isApplied(ctx, version)
		if err != nil {
			return applied, err
		}
		if done {
			m.logger.Debug("migration already applied", zap.String("file", name))
			continue
		}
		if err := m.apply(ctx, name, version); err != nil {
			return applied, err
		}
		m.logger.Info("migration applied", zap.String("file", name))
		applied = append(applied, version)
	}
	return applied, nil
}

func (m *Migrator) ensureMigrationTable(ctx context.Context) error {
	const query = `CREATE TABLE IF NOT EXISTS schema_migrations (
        version VARCHAR(255) PRIMARY KEY,
        applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
    )`
	if _, err := m.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	return nil
}

func (m *Migrator) isApplied(ctx context.Context, version string) (bool, error) {
	var count int
	if err := m.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM schema_migrations WHERE version = $1`, version); err != nil {
		return false, fmt.Errorf("check migration %s: %w", version, err)
	}
	return count > 0, nil
}

func (m *Migrator) apply(ctx context.Context, name, version string) error {
	content, err := migrationFiles.ReadFile(path.Join(m.dir, name))
	if err != nil {
		return fmt.Errorf("read migration %s: %w", name, err)
	}
	return NewTransactor(m.db).WithinTx(ctx, func(exec sqlx.ExtContext) error {
		if _, err := exec.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		if _, err := exec.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
			return fmt.Errorf("record migration %s: %w", name, err)
		}
		return nil
	})
}
