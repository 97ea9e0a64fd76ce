package analysis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bdcompass/internal/domain"
	"bdcompass/internal/ports"
	"bdcompass/internal/services/scorer"
)

type memStore struct {
	mu       sync.Mutex
	inputs   map[string]domain.AnalysisInput
	runs     map[string]ports.RunStatus
	saved    map[string][]domain.ScoredOpportunity
	progress []float64
}

func newMemStore() *memStore {
	return &memStore{
		inputs: map[string]domain.AnalysisInput{},
		runs:   map[string]ports.RunStatus{},
		saved:  map[string][]domain.ScoredOpportunity{},
	}
}

func (m *memStore) LoadInput(_ context.Context, accountID string) (domain.AnalysisInput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inputs[accountID], nil
}

func (m *memStore) Create(_ context.Context, runID, accountID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[runID] = ports.RunStatus{ID: runID, AccountID: accountID, Status: ports.RunQueued}
	return nil
}

func (m *memStore) Status(_ context.Context, runID string) (ports.RunStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.runs[runID]
	if !ok {
		return r, ports.ErrNotFound
	}
	return r, nil
}

func (m *memStore) SaveOpportunities(_ context.Context, _ string, accountID string, opps []domain.ScoredOpportunity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved[accountID] = opps
	return nil
}

func (m *memStore) LatestOpportunities(_ context.Context, accountID string) ([]domain.ScoredOpportunity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	opps, ok := m.saved[accountID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return opps, nil
}

func (m *memStore) ClaimNext(context.Context) (ports.AnalysisJob, bool, error) {
	return ports.AnalysisJob{}, false, nil
}
func (m *memStore) MarkCompleted(context.Context, string) error      { return nil }
func (m *memStore) MarkFailed(context.Context, string, string) error { return nil }
func (m *memStore) StartJobForRun(_ context.Context, runID string) (string, error) {
	return "job-" + runID, nil
}

func (m *memStore) UpdateRunProgress(_ context.Context, _ string, p float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.progress = append(m.progress, p)
	return nil
}

type recordingPublisher struct {
	opps [][]domain.ScoredOpportunity
	err  error
}

func (p *recordingPublisher) PublishOpportunities(_ context.Context, _ string, opps []domain.ScoredOpportunity) error {
	p.opps = append(p.opps, opps)
	return p.err
}

func (p *recordingPublisher) PublishDigest(context.Context, string, ports.Window, domain.Digest) error {
	return nil
}

func sampleInput() domain.AnalysisInput {
	return domain.AnalysisInput{
		Companies: []domain.Company{
			{ID: "c1", Name: "ACME", Industry: "Retail", SizeBucket: "11-50"},
			{ID: "c2", Name: "Globex", Industry: "Banca"},
		},
		Contacts: []domain.Contact{
			{ID: "u1", Name: "Ana", CompanyID: "c9", Connections: []string{"t1"}},
			{ID: "u2", Name: "Luis", CompanyID: "c2", RoleTitle: "HR Manager"},
		},
		Targets: []domain.TargetContact{
			{ID: "t1", Name: "Laura", CompanyID: "c1", RoleTitle: "CEO", Seniority: "c-level"},
			{ID: "t2", Name: "Marta", CompanyID: "c2", RoleTitle: "CFO", Seniority: "c-level"},
		},
		Signals: map[string][]domain.BuyingSignal{
			"c1": {{Type: domain.SignalHiring, Strength: domain.StrengthHigh}},
		},
	}
}

func newService(store *memStore, pub ports.Publisher) *Service {
	return New(store, store, store, store, pub, nil)
}

func TestEnqueue(t *testing.T) {
	store := newMemStore()
	svc := newService(store, nil)

	id, err := svc.Enqueue(context.Background(), "acct-1")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	st, err := svc.Status(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "acct-1", st.AccountID)
	assert.Equal(t, ports.RunQueued, st.Status)

	_, err = svc.Enqueue(context.Background(), "  ")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "account_id", verr.Field)
}

func TestProcessScoresAndPublishes(t *testing.T) {
	store := newMemStore()
	store.inputs["acct-1"] = sampleInput()
	pub := &recordingPublisher{}
	svc := newService(store, pub)
	ctx := context.Background()

	id, err := svc.Enqueue(ctx, "acct-1")
	require.NoError(t, err)
	require.NoError(t, svc.Process(ctx, id))

	opps, err := svc.Opportunities(ctx, "acct-1")
	require.NoError(t, err)
	require.Len(t, opps, 2)

	first := opps[0]
	assert.Equal(t, "t1", first.Target.ID)
	assert.Equal(t, domain.RouteDirect, first.BestRoute.Type)
	assert.Equal(t, first.IntroStrengthScore, first.Scores.IntroStrength)

	in := sampleInput()
	want := scorer.Score(in.Companies[0], in.Contacts, domain.InputFromOpportunity(first.Opportunity, in.Companies[0], in.Signals["c1"]))
	assert.Equal(t, want.Scores, first.Scores)
	assert.Equal(t, want.Explanation, first.Explanation)

	second := opps[1]
	assert.Equal(t, "t2", second.Target.ID)
	assert.Equal(t, domain.RouteSecondLevel, second.BestRoute.Type)
	assert.Equal(t, 30, second.Scores.BuyingSignal)

	require.Len(t, pub.opps, 1)
	assert.Equal(t, opps, pub.opps[0])

	assert.IsIncreasing(t, store.progress)
	assert.InDelta(t, progressScored, store.progress[len(store.progress)-1], 1e-9)
}

func TestProcessPublishFailureIsNotFatal(t *testing.T) {
	store := newMemStore()
	store.inputs["acct-1"] = sampleInput()
	svc := newService(store, &recordingPublisher{err: errors.New("broker down")})

	id, err := svc.Enqueue(context.Background(), "acct-1")
	require.NoError(t, err)
	assert.NoError(t, svc.Process(context.Background(), id))
}

func TestProcessErrors(t *testing.T) {
	store := newMemStore()
	svc := newService(store, nil)
	ctx := context.Background()

	err := svc.Process(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrNotFound)

	bad := sampleInput()
	bad.Targets[0].Seniority = ""
	store.inputs["acct-2"] = bad
	id, err := svc.Enqueue(ctx, "acct-2")
	require.NoError(t, err)
	var verr *domain.ValidationError
	require.ErrorAs(t, svc.Process(ctx, id), &verr)
	assert.Equal(t, "target.seniority", verr.Field)
}

func TestProcessHonoursCancellation(t *testing.T) {
	store := newMemStore()
	store.inputs["acct-1"] = sampleInput()
	svc := newService(store, nil)

	id, err := svc.Enqueue(context.Background(), "acct-1")
	require.NoError(t, err)
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	assert.ErrorIs(t, svc.Process(ctx, id), context.DeadlineExceeded)
}
