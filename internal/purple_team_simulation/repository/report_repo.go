package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/domain"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ReportRepository handles PostgreSQL operations for archived reports
type ReportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

const reportColumns = `id, report_id, session_id, simulation_id, classification,
		       total_events, detection_rate, mitigation_rate, payload, created_at, updated_at`

// CreateOrUpdate archives a report. Uses ON CONFLICT to upsert based on
// report_id; a report id already filed under another session is never
// overwritten and yields ErrReportConflict.
func (r *ReportRepository) CreateOrUpdate(ctx context.Context, rec *domain.ReportRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	query := `
		INSERT INTO simulation_reports (
			id, report_id, session_id, simulation_id, classification,
			total_events, detection_rate, mitigation_rate, payload
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (report_id) DO UPDATE SET
			classification = EXCLUDED.classification,
			total_events = EXCLUDED.total_events,
			detection_rate = EXCLUDED.detection_rate,
			mitigation_rate = EXCLUDED.mitigation_rate,
			payload = EXCLUDED.payload,
			updated_at = NOW()
		WHERE simulation_reports.session_id = EXCLUDED.session_id
		  AND simulation_reports.simulation_id = EXCLUDED.simulation_id
		RETURNING id, created_at, updated_at
	`

	payload := []byte(rec.Payload)
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	var createdAt, updatedAt time.Time
	err := r.db.QueryRowContext(ctx, query,
		rec.ID,
		rec.ReportID,
		rec.SessionID,
		rec.SimulationID,
		rec.Classification,
		rec.TotalEvents,
		rec.DetectionRate,
		rec.MitigationRate,
		payload,
	).Scan(&rec.ID, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("report %s: %w", rec.ReportID, domain.ErrReportConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to create or update report: %w", err)
	}

	rec.CreatedAt = createdAt
	rec.UpdatedAt = updatedAt
	return nil
}

// GetByReportID retrieves an archived report including its payload.
func (r *ReportRepository) GetByReportID(ctx context.Context, reportID string) (*domain.ReportRecord, error) {
	query := `SELECT ` + reportColumns + ` FROM simulation_reports WHERE report_id = $1`

	rec, err := scanReport(r.db.QueryRowContext(ctx, query, reportID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return rec, nil
}

// ListBySessions returns the reports archived for any of the sessions,
// newest first. Payloads are omitted.
func (r *ReportRepository) ListBySessions(ctx context.Context, sessionIDs []string) ([]domain.ReportRecord, error) {
	if len(sessionIDs) == 0 {
		return []domain.ReportRecord{}, nil
	}

	query := `
		SELECT ` + reportColumns + `
		FROM simulation_reports
		WHERE session_id = ANY($1)
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(sessionIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	records := []domain.ReportRecord{}
	for rows.Next() {
		rec, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		rec.Payload = nil
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reports: %w", err)
	}
	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*domain.ReportRecord, error) {
	var rec domain.ReportRecord
	var payload []byte
	err := row.Scan(
		&rec.ID,
		&rec.ReportID,
		&rec.SessionID,
		&rec.SimulationID,
		&rec.Classification,
		&rec.TotalEvents,
		&rec.DetectionRate,
		&rec.MitigationRate,
		&payload,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(payload) > 0 {
		rec.Payload = payload
	}
	return &rec, nil
}
