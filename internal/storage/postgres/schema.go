package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS simulation_reports (
		id              UUID PRIMARY KEY,
		report_id       TEXT NOT NULL UNIQUE,
		session_id      TEXT NOT NULL,
		simulation_id   TEXT NOT NULL,
		classification  TEXT NOT NULL,
		total_events    INTEGER NOT NULL DEFAULT 0,
		detection_rate  DOUBLE PRECISION NOT NULL DEFAULT 0,
		mitigation_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
		payload         JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_simulation_reports_session
		ON simulation_reports (session_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS simulation_metrics_timeseries (
		id           BIGSERIAL PRIMARY KEY,
		session_id   TEXT NOT NULL,
		time         TIMESTAMPTZ NOT NULL,
		metric_type  TEXT NOT NULL,
		metric_value DOUBLE PRECISION NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_simulation_metrics_session_time
		ON simulation_metrics_timeseries (session_id, time)`,
}

// EnsureSchema creates the report and metric tables when missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
