package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/domain"
)

// MetricsTimeseriesRepository stores sampled ThreatMetrics of running
// sessions so the trend of a simulation can be charted afterwards.
type MetricsTimeseriesRepository struct {
	db *sql.DB
}

// NewMetricsTimeseriesRepository creates a new MetricsTimeseriesRepository
func NewMetricsTimeseriesRepository(db *sql.DB) *MetricsTimeseriesRepository {
	return &MetricsTimeseriesRepository{db: db}
}

// InsertBatch inserts multiple metric points in a single transaction
func (r *MetricsTimeseriesRepository) InsertBatch(ctx context.Context, points []domain.MetricPoint) error {
	if len(points) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO simulation_metrics_timeseries (session_id, time, metric_type, metric_value)
		VALUES ($1, $2, $3, $4)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, p := range points {
		if p.Time.IsZero() {
			p.Time = time.Now()
		}
		if _, err := stmt.ExecContext(ctx, p.SessionID, p.Time, p.MetricType, p.MetricValue); err != nil {
			return fmt.Errorf("failed to insert metric point: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetBySession retrieves the points of a session within an optional time
// range, optionally filtered by metric type, oldest first.
func (r *MetricsTimeseriesRepository) GetBySession(
	ctx context.Context,
	sessionID string,
	fromTime *time.Time,
	toTime *time.Time,
	metricType string,
) ([]domain.MetricPoint, error) {
	query := `
		SELECT id, session_id, time, metric_type, metric_value
		FROM simulation_metrics_timeseries
		WHERE session_id = $1
	`
	args := []interface{}{sessionID}
	argIndex := 2

	if fromTime != nil {
		query += fmt.Sprintf(" AND time >= $%d", argIndex)
		args = append(args, *fromTime)
		argIndex++
	}
	if toTime != nil {
		query += fmt.Sprintf(" AND time <= $%d", argIndex)
		args = append(args, *toTime)
		argIndex++
	}
	if metricType != "" {
		query += fmt.Sprintf(" AND metric_type = $%d", argIndex)
		args = append(args, metricType)
	}
	query += " ORDER BY time ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query metrics: %w", err)
	}
	defer rows.Close()

	points := []domain.MetricPoint{}
	for rows.Next() {
		var p domain.MetricPoint
		if err := rows.Scan(&p.ID, &p.SessionID, &p.Time, &p.MetricType, &p.MetricValue); err != nil {
			return nil, fmt.Errorf("failed to scan metric point: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating metrics: %w", err)
	}
	return points, nil
}

// DeleteBySession removes every point of a session.
func (r *MetricsTimeseriesRepository) DeleteBySession(ctx context.Context, sessionID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM simulation_metrics_timeseries WHERE session_id = $1`, sessionID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete metrics: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted metrics: %w", err)
	}
	return n, nil
}
