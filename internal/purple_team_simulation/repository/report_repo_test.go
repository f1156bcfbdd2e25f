package repository_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/domain"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/repository"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reportCols = []string{
	"id", "report_id", "session_id", "simulation_id", "classification",
	"total_events", "detection_rate", "mitigation_rate", "payload", "created_at", "updated_at",
}

func setupReportRepo(t *testing.T) (*repository.ReportRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return repository.NewReportRepository(db), mock, db
}

func TestReportRepository_CreateOrUpdate(t *testing.T) {
	repo, mock, _ := setupReportRepo(t)
	ctx := context.Background()

	t.Run("creates new report", func(t *testing.T) {
		rec := &domain.ReportRecord{
			ReportID:       "RPT-1",
			SessionID:      "s-1",
			SimulationID:   "sim-1",
			Classification: "confidential",
			TotalEvents:    12,
			DetectionRate:  75,
			MitigationRate: 90,
			Payload:        json.RawMessage(`{"metadata":{}}`),
		}
		now := time.Now()

		mock.ExpectQuery(`INSERT INTO simulation_reports`).
			WithArgs(sqlmock.AnyArg(), "RPT-1", "s-1", "sim-1", "confidential", 12, 75.0, 90.0, []byte(`{"metadata":{}}`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("uuid-1", now, now))

		require.NoError(t, repo.CreateOrUpdate(ctx, rec))
		assert.Equal(t, "uuid-1", rec.ID)
		assert.False(t, rec.CreatedAt.IsZero())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty payload is stored as an object", func(t *testing.T) {
		rec := &domain.ReportRecord{ID: "uuid-2", ReportID: "RPT-2", SessionID: "s-1"}
		now := time.Now()

		mock.ExpectQuery(`INSERT INTO simulation_reports`).
			WithArgs("uuid-2", "RPT-2", "s-1", "", "", 0, 0.0, 0.0, []byte("{}")).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("uuid-2", now, now))

		require.NoError(t, repo.CreateOrUpdate(ctx, rec))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("same timestamp different sessions", func(t *testing.T) {
		now := time.Now()
		a := &domain.ReportRecord{ReportID: "RPT-1740819600000-a1", SessionID: "s-a", SimulationID: "sim-a"}
		b := &domain.ReportRecord{ReportID: "RPT-1740819600000-b2", SessionID: "s-b", SimulationID: "sim-b"}

		mock.ExpectQuery(`INSERT INTO simulation_reports`).
			WithArgs(sqlmock.AnyArg(), a.ReportID, "s-a", "sim-a", "", 0, 0.0, 0.0, []byte("{}")).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("uuid-a", now, now))
		mock.ExpectQuery(`INSERT INTO simulation_reports`).
			WithArgs(sqlmock.AnyArg(), b.ReportID, "s-b", "sim-b", "", 0, 0.0, 0.0, []byte("{}")).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("uuid-b", now, now))

		require.NoError(t, repo.CreateOrUpdate(ctx, a))
		require.NoError(t, repo.CreateOrUpdate(ctx, b))
		assert.Equal(t, "uuid-a", a.ID)
		assert.Equal(t, "uuid-b", b.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("report id owned by another session is not overwritten", func(t *testing.T) {
		mock.ExpectQuery(`(?s)ON CONFLICT \(report_id\) DO UPDATE SET.*WHERE simulation_reports\.session_id = EXCLUDED\.session_id`).
			WithArgs(sqlmock.AnyArg(), "RPT-9", "s-b", "sim-b", "", 0, 0.0, 0.0, []byte("{}")).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}))

		err := repo.CreateOrUpdate(ctx, &domain.ReportRecord{ReportID: "RPT-9", SessionID: "s-b", SimulationID: "sim-b"})
		assert.ErrorIs(t, err, domain.ErrReportConflict)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wraps database errors", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO simulation_reports`).WillReturnError(errors.New("connection refused"))

		err := repo.CreateOrUpdate(ctx, &domain.ReportRecord{ReportID: "RPT-3"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create or update report")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestReportRepository_GetByReportID(t *testing.T) {
	repo, mock, _ := setupReportRepo(t)
	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery(`SELECT .* FROM simulation_reports WHERE report_id = \$1`).
		WithArgs("RPT-1").
		WillReturnRows(sqlmock.NewRows(reportCols).
			AddRow("uuid-1", "RPT-1", "s-1", "sim-1", "secret", 4, 50.0, 100.0, []byte(`{"a":1}`), now, now))

	rec, err := repo.GetByReportID(ctx, "RPT-1")
	require.NoError(t, err)
	assert.Equal(t, "secret", rec.Classification)
	assert.JSONEq(t, `{"a":1}`, string(rec.Payload))

	mock.ExpectQuery(`SELECT .* FROM simulation_reports`).
		WithArgs("RPT-404").
		WillReturnError(sql.ErrNoRows)

	_, err = repo.GetByReportID(ctx, "RPT-404")
	assert.ErrorIs(t, err, domain.ErrReportNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_ListBySessions(t *testing.T) {
	repo, mock, _ := setupReportRepo(t)
	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery(`WHERE session_id = ANY\(\$1\)`).
		WithArgs(pq.Array([]string{"s-1", "s-2"})).
		WillReturnRows(sqlmock.NewRows(reportCols).
			AddRow("uuid-2", "RPT-2", "s-2", "sim-2", "internal", 9, 80.0, 95.0, []byte(`{}`), now, now).
			AddRow("uuid-1", "RPT-1", "s-1", "sim-1", "public", 3, 10.0, 0.0, []byte(`{}`), now, now))

	recs, err := repo.ListBySessions(ctx, []string{"s-1", "s-2"})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "RPT-2", recs[0].ReportID)
	assert.Nil(t, recs[0].Payload)

	none, err := repo.ListBySessions(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
	require.NoError(t, mock.ExpectationsWereMet())
}
