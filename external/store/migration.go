package store

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

var migrationStatements = []string{
	`CREATE TABLE IF NOT EXISTS timeline (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		position INTEGER NOT NULL,
		start_time TIMESTAMPTZ NOT NULL,
		end_time TIMESTAMPTZ NOT NULL,
		duration_min DOUBLE PRECISION NOT NULL,
		session_type TEXT NOT NULL,
		task_name TEXT NOT NULL,
		reason TEXT NOT NULL DEFAULT '',
		event_id TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_timeline_position ON timeline (position)`,
	`CREATE TABLE IF NOT EXISTS primary_log (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		seq BIGSERIAL,
		logged_at TIMESTAMPTZ NOT NULL,
		task_name TEXT NOT NULL,
		work_min DOUBLE PRECISION NOT NULL,
		break_min DOUBLE PRECISION NOT NULL,
		predicted_min DOUBLE PRECISION NOT NULL,
		gap TEXT NOT NULL,
		depth TEXT NOT NULL,
		status TEXT NOT NULL,
		switch_count INTEGER NOT NULL,
		interruptions TEXT NOT NULL,
		memo TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_primary_log_seq ON primary_log (seq)`,
	`CREATE TABLE IF NOT EXISTS user_state (
		user_id TEXT PRIMARY KEY,
		state BYTEA NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS feedback (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		created_at TIMESTAMPTZ NOT NULL,
		comment TEXT NOT NULL
	)`,
}

func RunMigration(ctx context.Context, pool *pgxpool.Pool) error {
	for _, s := range migrationStatements {
		stmt := strings.TrimSpace(s)
		if stmt == "" {
			continue
		}
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
