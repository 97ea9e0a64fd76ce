package ports

import (
	"context"
	"time"

	"bdcompass/internal/domain"
)

// Run states stored on analysis_runs.status.
const (
	RunQueued    = "queued"
	RunRunning   = "running"
	RunCompleted = "completed"
	RunFailed    = "failed"
)

type RunStatus struct {
	ID        string  `json:"id"`
	AccountID string  `json:"account_id"`
	Status    string  `json:"status"`
	Progress  float64 `json:"progress"`
	Error     string  `json:"error,omitempty"`
}

// AnalysisRepository materializes the contact graph of one account.
type AnalysisRepository interface {
	LoadInput(ctx context.Context, accountID string) (domain.AnalysisInput, error)
}

// RunRepository manages analysis run records and their queued job.
type RunRepository interface {
	Create(ctx context.Context, runID, accountID string) error
	Status(ctx context.Context, runID string) (RunStatus, error)
}

// OpportunityRepository stores scored opportunities per run and serves the
// latest completed set for an account.
type OpportunityRepository interface {
	SaveOpportunities(ctx context.Context, runID, accountID string, opps []domain.ScoredOpportunity) error
	LatestOpportunities(ctx context.Context, accountID string) ([]domain.ScoredOpportunity, error)
}

// ActivityRepository aggregates BD activity events into weekly counters.
type ActivityRepository interface {
	ListAccounts(ctx context.Context) ([]string, error)
	WeeklyActivity(ctx context.Context, accountID string, from, to time.Time) (domain.WeeklyActivity, error)
}
