package jobs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vidbatch/internal/client/models"
	"github.com/dmitrijs2005/vidbatch/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const selectColumns = `SELECT id, kind, status, progress, message, output_files, error, total_jobs, created_at, updated_at FROM tracked_jobs`

func (r *SQLiteRepository) Upsert(ctx context.Context, j models.TrackedJob) error {
	if j.ID == "" {
		return errors.New("failed to upsert job: empty id")
	}
	outputs, err := json.Marshal(nonNil(j.OutputFiles))
	if err != nil {
		return fmt.Errorf("failed to encode output files: %w", err)
	}
	if j.UpdatedAt.IsZero() {
		j.UpdatedAt = time.Now()
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = j.UpdatedAt
	}

	query := `INSERT INTO tracked_jobs (id, kind, status, progress, message, output_files, error, total_jobs, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			progress = excluded.progress,
			message = excluded.message,
			output_files = excluded.output_files,
			error = excluded.error,
			total_jobs = CASE WHEN excluded.total_jobs > 0 THEN excluded.total_jobs ELSE tracked_jobs.total_jobs END,
			updated_at = excluded.updated_at`

	_, err = r.db.ExecContext(ctx, query,
		j.ID, string(j.Kind), string(j.Status), j.Progress, j.Message, string(outputs), j.Error,
		j.TotalJobs, j.CreatedAt.UnixNano(), j.UpdatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to upsert job %s: %w", j.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (models.TrackedJob, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	j, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.TrackedJob{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return models.TrackedJob{}, fmt.Errorf("failed to get job %s: %w", id, err)
	}
	return j, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.TrackedJob, error) {
	return r.query(ctx, selectColumns+` ORDER BY created_at DESC, id`)
}

func (r *SQLiteRepository) ListActive(ctx context.Context) ([]models.TrackedJob, error) {
	return r.query(ctx, selectColumns+` WHERE status NOT IN (?, ?) ORDER BY created_at DESC, id`,
		string(models.JobCompleted), string(models.JobFailed))
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tracked_jobs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete job %s: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) query(ctx context.Context, query string, args ...any) ([]models.TrackedJob, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select jobs: %w", err)
	}
	defer rows.Close()

	var result []models.TrackedJob
	for rows.Next() {
		j, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		result = append(result, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate jobs: %w", err)
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (models.TrackedJob, error) {
	var (
		j                models.TrackedJob
		kind, status     string
		outputs          string
		created, updated int64
	)
	err := s.Scan(&j.ID, &kind, &status, &j.Progress, &j.Message, &outputs, &j.Error, &j.TotalJobs, &created, &updated)
	if err != nil {
		return models.TrackedJob{}, err
	}
	j.Kind = models.JobKind(kind)
	j.Status = models.JobState(status)
	if err := json.Unmarshal([]byte(outputs), &j.OutputFiles); err != nil {
		return models.TrackedJob{}, fmt.Errorf("bad output files of %s: %w", j.ID, err)
	}
	if len(j.OutputFiles) == 0 {
		j.OutputFiles = nil
	}
	j.CreatedAt = time.Unix(0, created)
	j.UpdatedAt = time.Unix(0, updated)
	return j, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
