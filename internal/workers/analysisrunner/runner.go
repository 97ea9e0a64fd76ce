package analysisrunner

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"bdcompass/internal/ports"
)

// RunProcessor performs the analysis work for a job's run id.
type RunProcessor interface {
	Process(ctx context.Context, runID string) error
}

// Run starts a dispatcher that claims queued jobs and concurrency workers
// that process them. It blocks until ctx is cancelled and every worker has
// returned.
func Run(ctx context.Context, repo ports.JobRepository, processor RunProcessor, concurrency int, pollInterval time.Duration, log *zap.Logger) {
	if concurrency < 1 {
		return
	}
	if log == nil {
		log = zap.NewNop()
	}
	jobsCh := make(chan ports.AnalysisJob, concurrency)

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			wlog := log.With(zap.Int("worker", idx))
			for job := range jobsCh {
				if err := processor.Process(ctx, job.RunID); err != nil {
					wlog.Error("analysis failed", zap.String("job_id", job.ID), zap.String("run_id", job.RunID), zap.Error(err))
					if err := repo.MarkFailed(context.WithoutCancel(ctx), job.ID, err.Error()); err != nil {
						wlog.Error("mark failed", zap.String("job_id", job.ID), zap.Error(err))
					}
					continue
				}
				if err := repo.MarkCompleted(ctx, job.ID); err != nil {
					wlog.Error("mark completed", zap.String("job_id", job.ID), zap.Error(err))
				}
			}
		}(i)
	}

	dispatch(ctx, repo, jobsCh, pollInterval, log)
	close(jobsCh)
	wg.Wait()
}

// dispatch polls for queued jobs until ctx is done.
func dispatch(ctx context.Context, repo ports.JobRepository, jobsCh chan<- ports.AnalysisJob, pollInterval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for {
				job, found, err := repo.ClaimNext(ctx)
				if err != nil {
					if ctx.Err() == nil {
						log.Error("job claim", zap.Error(err))
					}
					break
				}
				if !found {
					break
				}
				select {
				case jobsCh <- job:
				case <-ctx.Done():
					_ = repo.MarkFailed(context.WithoutCancel(ctx), job.ID, "shutdown before processing")
					return
				}
			}
		}
	}
}

// ProcessInline starts and processes a specific run synchronously using the
// same processor as the background workers.
func ProcessInline(ctx context.Context, repo ports.JobRepository, processor RunProcessor, runID string) error {
	jobID, err := repo.StartJobForRun(ctx, runID)
	if err != nil {
		return err
	}
	if err := processor.Process(ctx, runID); err != nil {
		_ = repo.MarkFailed(context.WithoutCancel(ctx), jobID, err.Error())
		return err
	}
	return repo.MarkCompleted(ctx, jobID)
}
