package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"bdcompass/internal/ports"
)

var _ ports.JobRepository = (*DB)(nil)

// ClaimNext selects the next queued job using SKIP LOCKED and marks it running.
func (db *DB) ClaimNext(ctx context.Context) (job ports.AnalysisJob, found bool, err error) {
	tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return job, false, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = tx.QueryRow(ctx, `
        SELECT id::text, run_id::text FROM analysis_jobs
        WHERE status = 'queued'
        ORDER BY queued_at
        FOR UPDATE SKIP LOCKED
        LIMIT 1
    `).Scan(&job.ID, &job.RunID)
	if errors.Is(err, pgx.ErrNoRows) {
		return job, false, nil
	}
	if err != nil {
		return job, false, err
	}

	if _, err = tx.Exec(ctx, `
        UPDATE analysis_jobs SET status='running', started_at=now(), attempts=attempts+1 WHERE id=$1
    `, job.ID); err != nil {
		return job, false, err
	}
	if _, err = tx.Exec(ctx, `
        UPDATE analysis_runs SET status='running', started_at=COALESCE(started_at, now()) WHERE id=$1
    `, job.RunID); err != nil {
		return job, false, err
	}
	return job, true, nil
}

func (db *DB) UpdateRunProgress(ctx context.Context, runID string, progress float64) error {
	progress = min(max(progress, 0), 1)
	_, err := db.Pool.Exec(ctx, `UPDATE analysis_runs SET progress=$2 WHERE id=$1`, runID, progress)
	return err
}

// MarkCompleted completes the job and its run atomically.
func (db *DB) MarkCompleted(ctx context.Context, jobID string) error {
	return db.finish(ctx, jobID, ports.RunCompleted, "")
}

func (db *DB) MarkFailed(ctx context.Context, jobID string, reason string) error {
	return db.finish(ctx, jobID, ports.RunFailed, reason)
}

func (db *DB) finish(ctx context.Context, jobID, status, reason string) (err error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	var runID string
	if err = tx.QueryRow(ctx, `SELECT run_id::text FROM analysis_jobs WHERE id=$1`, jobID).Scan(&runID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = ports.ErrNotFound
		}
		return err
	}
	if _, err = tx.Exec(ctx, `UPDATE analysis_jobs SET status=$2, finished_at=now() WHERE id=$1`, jobID, status); err != nil {
		return err
	}
	if status == ports.RunCompleted {
		_, err = tx.Exec(ctx, `UPDATE analysis_runs SET status=$2, progress=1, error=NULL, finished_at=now() WHERE id=$1`, runID, status)
	} else {
		_, err = tx.Exec(ctx, `UPDATE analysis_runs SET status=$2, error=$3, finished_at=now() WHERE id=$1`, runID, status, reason)
	}
	return err
}

// StartJobForRun marks the queued job of a specific run as running and
// returns the job id.
func (db *DB) StartJobForRun(ctx context.Context, runID string) (jobID string, err error) {
	tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = tx.QueryRow(ctx, `
        SELECT id::text FROM analysis_jobs
        WHERE run_id::text = $1 AND status = 'queued'
        FOR UPDATE SKIP LOCKED
    `, runID).Scan(&jobID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ports.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	if _, err = tx.Exec(ctx, `UPDATE analysis_jobs SET status='running', started_at=now(), attempts=attempts+1 WHERE id=$1`, jobID); err != nil {
		return "", err
	}
	if _, err = tx.Exec(ctx, `UPDATE analysis_runs SET status='running', started_at=COALESCE(started_at, now()) WHERE id=$1`, runID); err != nil {
		return "", err
	}
	return jobID, nil
}
