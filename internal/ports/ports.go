package ports

import (
	"context"
	"time"

	"bdcompass/internal/domain"
)

// ErrNotFound is returned by repositories and services for unknown ids.
var ErrNotFound = errString("not found")

type errString string

func (e errString) Error() string { return string(e) }

// Analyses enqueues and tracks account analyses.
type Analyses interface {
	Enqueue(ctx context.Context, accountID string) (runID string, err error)
	Status(ctx context.Context, runID string) (RunStatus, error)
	Opportunities(ctx context.Context, accountID string) ([]domain.ScoredOpportunity, error)
}

// Window is the half-open reporting interval [From, To).
type Window struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Publisher fans results out to downstream consumers.
type Publisher interface {
	PublishOpportunities(ctx context.Context, accountID string, opps []domain.ScoredOpportunity) error
	PublishDigest(ctx context.Context, accountID string, window Window, d domain.Digest) error
}
