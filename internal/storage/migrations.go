package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a
// fatal error.
const ExpectedSchemaVersion = 1

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS scan_runs (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					pdf_path TEXT NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					start_page INTEGER NOT NULL,
					end_page INTEGER NOT NULL,
					apply_scaling INTEGER NOT NULL DEFAULT 1,
					hit_count INTEGER NOT NULL DEFAULT 0,
					vocab_version INTEGER NOT NULL DEFAULT 0
				)`,
				`CREATE INDEX idx_scan_runs_created ON scan_runs(created_at)`,

				`CREATE TABLE IF NOT EXISTS scan_hits (
					run_id INTEGER NOT NULL,
					rank INTEGER NOT NULL,
					page INTEGER NOT NULL,
					raw_text TEXT NOT NULL,
					raw_value REAL NOT NULL,
					scaled_value REAL NOT NULL,
					units TEXT NOT NULL,
					scale_name TEXT NOT NULL DEFAULT '',
					scale_phrase TEXT NOT NULL DEFAULT '',
					percent INTEGER NOT NULL DEFAULT 0,
					x0 REAL NOT NULL DEFAULT 0,
					top REAL NOT NULL DEFAULT 0,
					x1 REAL NOT NULL DEFAULT 0,
					bottom REAL NOT NULL DEFAULT 0,
					reading_order INTEGER NOT NULL DEFAULT 0,
					PRIMARY KEY (run_id, rank),
					FOREIGN KEY (run_id) REFERENCES scan_runs(id)
				)`,
				`CREATE INDEX idx_scan_hits_run ON scan_hits(run_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
