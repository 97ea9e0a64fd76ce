// Package analysis runs the router and scorer over an account's stored
// contact graph as a queued, resumable job.
package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bdcompass/internal/domain"
	"bdcompass/internal/ports"
	"bdcompass/internal/services/router"
	"bdcompass/internal/services/scorer"
)

// Progress checkpoints reported while a run is processed.
const (
	progressLoaded = 0.1
	progressRouted = 0.2
	progressScored = 0.9
)

type Service struct {
	inputs ports.AnalysisRepository
	runs   ports.RunRepository
	opps   ports.OpportunityRepository
	jobs   ports.JobRepository
	pub    ports.Publisher
	log    *zap.Logger
}

func New(inputs ports.AnalysisRepository, runs ports.RunRepository, opps ports.OpportunityRepository,
	jobs ports.JobRepository, pub ports.Publisher, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{inputs: inputs, runs: runs, opps: opps, jobs: jobs, pub: pub, log: log}
}

func (s *Service) Enqueue(ctx context.Context, accountID string) (string, error) {
	if strings.TrimSpace(accountID) == "" {
		return "", &domain.ValidationError{Field: "account_id", Reason: "required"}
	}
	runID := uuid.NewString()
	if err := s.runs.Create(ctx, runID, accountID); err != nil {
		return "", fmt.Errorf("create run: %w", err)
	}
	s.log.Info("analysis queued", zap.String("account_id", accountID), zap.String("run_id", runID))
	return runID, nil
}

func (s *Service) Status(ctx context.Context, runID string) (ports.RunStatus, error) {
	return s.runs.Status(ctx, runID)
}

// Opportunities returns the scored opportunities of the latest completed run.
func (s *Service) Opportunities(ctx context.Context, accountID string) ([]domain.ScoredOpportunity, error) {
	return s.opps.LatestOpportunities(ctx, accountID)
}

// Process loads the account graph for runID, routes and scores it, stores the
// result and publishes it. The job status itself is owned by the caller.
func (s *Service) Process(ctx context.Context, runID string) error {
	run, err := s.runs.Status(ctx, runID)
	if err != nil {
		return fmt.Errorf("load run %s: %w", runID, err)
	}
	log := s.log.With(zap.String("run_id", runID), zap.String("account_id", run.AccountID))

	in, err := s.inputs.LoadInput(ctx, run.AccountID)
	if err != nil {
		return fmt.Errorf("load input: %w", err)
	}
	if err := in.Validate(); err != nil {
		return err
	}
	if err := s.jobs.UpdateRunProgress(ctx, runID, progressLoaded); err != nil {
		return err
	}

	routed := router.FindRoutes(in.Contacts, in.Targets, in.Companies)
	if err := s.jobs.UpdateRunProgress(ctx, runID, progressRouted); err != nil {
		return err
	}

	scored, err := s.score(ctx, runID, in, routed)
	if err != nil {
		return err
	}
	if err := s.opps.SaveOpportunities(ctx, runID, run.AccountID, scored); err != nil {
		return fmt.Errorf("save opportunities: %w", err)
	}
	log.Info("analysis scored",
		zap.Int("contacts", len(in.Contacts)),
		zap.Int("targets", len(in.Targets)),
		zap.Int("opportunities", len(scored)))

	if s.pub != nil && len(scored) > 0 {
		if err := s.pub.PublishOpportunities(ctx, run.AccountID, scored); err != nil {
			log.Warn("publish opportunities", zap.Error(err))
		}
	}
	return nil
}

// score scores routed opportunities one company at a time, keeping the
// router's ordering in the result.
func (s *Service) score(ctx context.Context, runID string, in domain.AnalysisInput, routed []domain.Opportunity) ([]domain.ScoredOpportunity, error) {
	companies := make(map[string]domain.Company, len(in.Companies))
	for _, c := range in.Companies {
		companies[c.ID] = c
	}
	var order []string
	groups := make(map[string][]int)
	for i, o := range routed {
		if _, ok := groups[o.CompanyID]; !ok {
			order = append(order, o.CompanyID)
		}
		groups[o.CompanyID] = append(groups[o.CompanyID], i)
	}

	out := make([]domain.ScoredOpportunity, len(routed))
	for n, companyID := range order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		company := companies[companyID]
		signals := in.Signals[companyID]
		for _, i := range groups[companyID] {
			o := routed[i]
			res := scorer.Score(company, in.Contacts, domain.InputFromOpportunity(o, company, signals))
			out[i] = domain.ScoredOpportunity{Opportunity: o, Scores: res.Scores, Explanation: res.Explanation}
		}
		p := progressRouted + (progressScored-progressRouted)*float64(n+1)/float64(len(order))
		if err := s.jobs.UpdateRunProgress(ctx, runID, p); err != nil {
			return nil, err
		}
	}
	return out, nil
}
