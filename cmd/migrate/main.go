// Command migrate applies the SQL files in migrations/ to a postgres database.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/lib/pq"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-import/backend/internal/logger"
)

const rollbackSuffix = "_rollback.sql"

const createMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version    VARCHAR(32) PRIMARY KEY,
    name       VARCHAR(255) NOT NULL,
    applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

func main() {
	log, err := logger.New(logger.Config{Level: "info", Format: "console", ServiceName: "migrate"})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := newCommand(log).Run(context.Background(), os.Args); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
}

func newCommand(log *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply or roll back SQL migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "database-url",
				Usage:    "postgres connection URL",
				Sources:  cli.EnvVars("DATABASE_URL"),
				Required: true,
			},
			&cli.StringFlag{
				Name:  "dir",
				Value: "migrations",
				Usage: "directory holding the migration files",
			},
			&cli.BoolFlag{
				Name:  "rollback",
				Usage: "roll back the last applied migration",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			db, err := sql.Open("postgres", cmd.String("database-url"))
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()

			if err := db.PingContext(ctx); err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			if _, err := db.ExecContext(ctx, createMigrationsTable); err != nil {
				return fmt.Errorf("failed to create schema_migrations: %w", err)
			}

			m := &migrator{db: db, dir: cmd.String("dir"), log: log}
			if cmd.Bool("rollback") {
				return m.rollback(ctx)
			}
			return m.apply(ctx)
		},
	}
}

type migrator struct {
	db  *sql.DB
	dir string
	log *zap.Logger
}

func (m *migrator) apply(ctx context.Context) error {
	files, err := listMigrations(m.dir)
	if err != nil {
		return err
	}

	for _, file := range files {
		version, err := migrationVersion(file)
		if err != nil {
			return err
		}

		var applied bool
		err = m.db.QueryRowContext(ctx,
			"SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)", version).Scan(&applied)
		if err != nil {
			return fmt.Errorf("failed to check migration %s: %w", file, err)
		}
		if applied {
			m.log.Debug("migration already applied", zap.String("file", file))
			continue
		}

		m.log.Info("applying migration", zap.String("file", file))
		err = m.exec(ctx, file, "INSERT INTO schema_migrations (version, name) VALUES ($1, $2)", version, file)
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *migrator) rollback(ctx context.Context) error {
	var version, name string
	err := m.db.QueryRowContext(ctx,
		"SELECT version, name FROM schema_migrations ORDER BY version DESC LIMIT 1").Scan(&version, &name)
	if errors.Is(err, sql.ErrNoRows) {
		m.log.Info("no migrations to roll back")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get last migration: %w", err)
	}

	file := rollbackFile(name)
	m.log.Info("rolling back migration", zap.String("migration", name), zap.String("file", file))
	return m.exec(ctx, file, "DELETE FROM schema_migrations WHERE version = $1", version)
}

// exec runs the SQL file and the bookkeeping statement in one transaction.
func (m *migrator) exec(ctx context.Context, file, record string, args ...any) error {
	content, err := os.ReadFile(filepath.Join(m.dir, file))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", file, err)
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	if _, err := tx.ExecContext(ctx, string(content)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to execute %s: %w", file, err)
	}
	if _, err := tx.ExecContext(ctx, record, args...); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to record %s: %w", file, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", file, err)
	}
	return nil
}

// listMigrations returns the forward migration files of dir in apply order.
func listMigrations(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".sql" || strings.HasSuffix(name, rollbackSuffix) {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}

// migrationVersion extracts VERSION from VERSION_name.sql.
func migrationVersion(file string) (string, error) {
	version, _, ok := strings.Cut(file, "_")
	if !ok || version == "" {
		return "", fmt.Errorf("migration %q is not named VERSION_name.sql", file)
	}
	for _, r := range version {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("migration %q has a non-numeric version", file)
		}
	}
	return version, nil
}

func rollbackFile(name string) string {
	return strings.TrimSuffix(name, ".sql") + rollbackSuffix
}
