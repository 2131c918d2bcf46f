package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS player_state (
			save_key TEXT PRIMARY KEY,
			xp_values TEXT NOT NULL DEFAULT '{}',
			debt_values TEXT NOT NULL DEFAULT '{}',
			stats TEXT,
			daily_quests TEXT,
			derived TEXT,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS activity_log (
			id TEXT PRIMARY KEY,
			save_key TEXT NOT NULL,
			kind TEXT NOT NULL,
			payload TEXT,
			snapshot TEXT,
			created_at DATETIME NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_activity_log_save_key_created_at ON activity_log(save_key, created_at);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
