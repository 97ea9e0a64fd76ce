package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bdcompass/internal/domain"
	"bdcompass/internal/ports"
)

type fakeAnalyses struct {
	runs map[string]ports.RunStatus
	opps map[string][]domain.ScoredOpportunity
}

func (f *fakeAnalyses) Enqueue(_ context.Context, accountID string) (string, error) {
	id := "run-" + accountID
	f.runs[id] = ports.RunStatus{ID: id, AccountID: accountID, Status: ports.RunQueued}
	return id, nil
}

func (f *fakeAnalyses) Status(_ context.Context, runID string) (ports.RunStatus, error) {
	st, ok := f.runs[runID]
	if !ok {
		return st, ports.ErrNotFound
	}
	return st, nil
}

func (f *fakeAnalyses) Opportunities(_ context.Context, accountID string) ([]domain.ScoredOpportunity, error) {
	opps, ok := f.opps[accountID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return opps, nil
}

// Process marks the run completed, standing in for both processor and job
// repository.
func (f *fakeAnalyses) Process(_ context.Context, runID string) error {
	st := f.runs[runID]
	if st.AccountID == "broken" {
		return errors.New("db gone")
	}
	st.Status, st.Progress = ports.RunCompleted, 1
	f.runs[runID] = st
	return nil
}

func (f *fakeAnalyses) ClaimNext(context.Context) (ports.AnalysisJob, bool, error) {
	return ports.AnalysisJob{}, false, nil
}
func (f *fakeAnalyses) UpdateRunProgress(context.Context, string, float64) error { return nil }
func (f *fakeAnalyses) MarkCompleted(context.Context, string) error              { return nil }
func (f *fakeAnalyses) MarkFailed(context.Context, string, string) error         { return nil }
func (f *fakeAnalyses) StartJobForRun(_ context.Context, runID string) (string, error) {
	return "job-" + runID, nil
}

func newTestServer() (*httptest.Server, *fakeAnalyses) {
	fa := &fakeAnalyses{runs: map[string]ports.RunStatus{}, opps: map[string][]domain.ScoredOpportunity{}}
	srv := httptest.NewServer(New(fa, fa, fa, nil).Routes())
	return srv, fa
}

func do(t *testing.T, method, url, body string) (int, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, rd)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer()
	defer srv.Close()

	code, body := do(t, http.MethodGet, srv.URL+"/healthz", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}

func TestStatelessEndpoints(t *testing.T) {
	srv, _ := newTestServer()
	defer srv.Close()

	tests := []struct {
		name, path, body string
		wantCode         int
		wantKey          string
	}{
		{"routes", "/v1/routes", `{"contacts":[{"id":"u1"}],"target_contacts":[{"id":"t1","company_id":"c1","role_title":"CEO","seniority":"c-level","connections":["u1"]}]}`, 200, "opportunities"},
		{"routes invalid", "/v1/routes", `{"target_contacts":[{"id":"t1","company_id":"c1","seniority":"c-level"}]}`, 400, "error"},
		{"score", "/v1/score", `{"company":{"name":"ACME","industry":"Retail","size_bucket":"1-10"},"opportunity":{}}`, 200, "scores"},
		{"score missing name", "/v1/score", `{"company":{"industry":"Retail"}}`, 400, "error"},
		{"outbound", "/v1/outbound", `{"company":{"name":"ACME"},"role":"Head of HR","signals":[{"type":"hiring","strength":"high"}]}`, 200, "outbound"},
		{"outbound role object", "/v1/outbound", `{"company":{"name":"ACME"},"role":{"title":"CFO","seniority":"c-level"}}`, 200, "score"},
		{"followups", "/v1/followups", `{"opportunity":{"company_name":"ACME"},"days_waiting":45}`, 200, "followups"},
		{"followups negative", "/v1/followups", `{"days_waiting":-2}`, 400, "error"},
		{"digest", "/v1/digest", `{}`, 200, "recommended_actions"},
		{"digest negative", "/v1/digest", `{"wins":-1}`, 400, "error"},
		{"malformed", "/v1/score", `{"company":`, 400, "error"},
		{"empty body", "/v1/digest", ``, 400, "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := do(t, http.MethodPost, srv.URL+tt.path, tt.body)
			assert.Equal(t, tt.wantCode, code, body)
			assert.Contains(t, body, tt.wantKey)
		})
	}
}

func TestAnalysisEndpoints(t *testing.T) {
	srv, fa := newTestServer()
	defer srv.Close()

	code, body := do(t, http.MethodPost, srv.URL+"/v1/accounts/acme/analyses", "")
	assert.Equal(t, http.StatusAccepted, code)
	assert.Equal(t, "run-acme", body["run_id"])

	code, body = do(t, http.MethodGet, srv.URL+"/v1/analyses/run-acme", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, ports.RunQueued, body["status"])

	code, body = do(t, http.MethodPost, srv.URL+"/v1/accounts/acme/analyses?wait=true&timeout=5", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, ports.RunCompleted, body["status"])
	assert.EqualValues(t, 1, body["progress"])

	code, _ = do(t, http.MethodPost, srv.URL+"/v1/accounts/broken/analyses?wait=true", "")
	assert.Equal(t, http.StatusInternalServerError, code)

	code, _ = do(t, http.MethodPost, srv.URL+"/v1/accounts/acme/analyses?wait=maybe", "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, http.MethodGet, srv.URL+"/v1/analyses/nope", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = do(t, http.MethodGet, srv.URL+"/v1/accounts/acme/opportunities", "")
	assert.Equal(t, http.StatusNotFound, code)

	fa.opps["acme"] = []domain.ScoredOpportunity{{Opportunity: domain.Opportunity{CompanyID: "c1"}}}
	code, body = do(t, http.MethodGet, srv.URL+"/v1/accounts/acme/opportunities", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, body["opportunities"], 1)
}

func TestAnalysisRoutesNeedDatabase(t *testing.T) {
	srv := httptest.NewServer(New(nil, nil, nil, nil).Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/analyses/x")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
