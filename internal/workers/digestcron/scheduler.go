// Package digestcron publishes the weekly digest of every account on a cron
// schedule.
package digestcron

import (
	"context"
	"fmt"
	"sync"
	"time"

	rcron "github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"bdcompass/internal/ports"
	"bdcompass/internal/services/digest"
)

// DefaultSchedule fires every Monday at 08:00 (seconds field enabled).
const DefaultSchedule = "0 0 8 * * MON"

const window = 7 * 24 * time.Hour

type Scheduler struct {
	activity ports.ActivityRepository
	pub      ports.Publisher
	log      *zap.Logger
	now      func() time.Time

	mu      sync.Mutex
	cron    *rcron.Cron
	stopped chan struct{}
}

func New(activity ports.ActivityRepository, pub ports.Publisher, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{activity: activity, pub: pub, log: log, now: time.Now}
}

// Start registers the schedule and runs it until ctx is done or Stop is
// called.
func (s *Scheduler) Start(ctx context.Context, spec string) error {
	if spec == "" {
		spec = DefaultSchedule
	}
	c := rcron.New(rcron.WithSeconds())
	if _, err := c.AddFunc(spec, func() {
		if _, err := s.RunOnce(ctx, s.now()); err != nil {
			s.log.Error("digest run", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("digest schedule %q: %w", spec, err)
	}

	stopped := make(chan struct{})
	s.mu.Lock()
	s.cron, s.stopped = c, stopped
	s.mu.Unlock()
	c.Start()
	s.log.Info("digest scheduler started", zap.String("schedule", spec))

	go func() {
		select {
		case <-ctx.Done():
			s.Stop()
		case <-stopped:
		}
	}()
	return nil
}

// Stop halts the schedule and waits for a running digest pass to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	c, stopped := s.cron, s.stopped
	s.cron, s.stopped = nil, nil
	s.mu.Unlock()
	if c == nil {
		return
	}
	close(stopped)
	<-c.Stop().Done()
	s.log.Info("digest scheduler stopped")
}

// RunOnce analyzes and publishes the digest of every account for the week
// ending at now. A failing account is logged and skipped. It returns the
// number of digests published.
func (s *Scheduler) RunOnce(ctx context.Context, now time.Time) (int, error) {
	accounts, err := s.activity.ListAccounts(ctx)
	if err != nil {
		return 0, fmt.Errorf("list accounts: %w", err)
	}
	w := ports.Window{From: now.Add(-window), To: now}
	published := 0
	for _, accountID := range accounts {
		if err := ctx.Err(); err != nil {
			return published, err
		}
		if err := s.runAccount(ctx, accountID, w); err != nil {
			s.log.Warn("digest skipped", zap.String("account_id", accountID), zap.Error(err))
			continue
		}
		published++
	}
	s.log.Info("digests published", zap.Int("accounts", len(accounts)), zap.Int("published", published))
	return published, nil
}

func (s *Scheduler) runAccount(ctx context.Context, accountID string, w ports.Window) error {
	activity, err := s.activity.WeeklyActivity(ctx, accountID, w.From, w.To)
	if err != nil {
		return fmt.Errorf("load activity: %w", err)
	}
	d := digest.Analyze(activity)
	if s.pub == nil {
		return nil
	}
	if err := s.pub.PublishDigest(ctx, accountID, w, d); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}
