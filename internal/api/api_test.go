package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bdcompass/internal/domain"
	"bdcompass/internal/services/outreach"
)

func TestRoutesValidation(t *testing.T) {
	_, err := Routes(RoutesRequest{
		Targets: []domain.TargetContact{{ID: "t1", CompanyID: "c1", RoleTitle: "CEO"}},
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "target.seniority", verr.Field)

	resp, err := Routes(RoutesRequest{})
	require.NoError(t, err)
	assert.NotNil(t, resp.Opportunities)
}

func TestRoutesDirectScenario(t *testing.T) {
	var req RoutesRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"contacts": [{"id": "u1", "name": "Ana"}],
		"target_contacts": [{"id": "t1", "name": "Laura", "company_id": "c1", "role_title": "CEO", "seniority": "c-level", "connections": ["u1"]}],
		"companies": [{"id": "c1", "name": "ACME"}]
	}`), &req))

	resp, err := Routes(req)
	require.NoError(t, err)
	require.Len(t, resp.Opportunities, 1)
	assert.Equal(t, domain.RouteDirect, resp.Opportunities[0].BestRoute.Type)
	assert.GreaterOrEqual(t, resp.Opportunities[0].BestRoute.Confidence, 90)
}

func TestScore(t *testing.T) {
	_, err := Score(ScoreRequest{Company: domain.Company{Industry: "Retail"}})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "company.name", verr.Field)

	res, err := Score(ScoreRequest{Company: domain.Company{Name: "ACME", Industry: "Retail", SizeBucket: "1-10"}})
	require.NoError(t, err)
	assert.Equal(t, 20, res.Scores.IntroStrength)
	assert.Equal(t, 30, res.Scores.BuyingSignal)
	assert.NotEmpty(t, res.Explanation)
}

func TestOutboundRejectsUnknownSignal(t *testing.T) {
	_, err := Outbound(OutboundRequest{Signals: []domain.BuyingSignal{{Type: "rumour"}}})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "signal.type", verr.Field)

	res, err := Outbound(OutboundRequest{Company: domain.Company{Name: "ACME"}, Role: outreach.Role{Title: "CEO"}})
	require.NoError(t, err)
	assert.Contains(t, res.Outbound.Long, "ACME")
}

func TestFollowUps(t *testing.T) {
	_, err := FollowUps(FollowUpsRequest{DaysWaiting: -1})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "days_waiting", verr.Field)

	resp, err := FollowUps(FollowUpsRequest{DaysWaiting: 45})
	require.NoError(t, err)
	assert.Equal(t, outreach.ToneFor(45), resp.FollowUps.Tone)
}

func TestDigest(t *testing.T) {
	_, err := Digest(domain.WeeklyActivity{Wins: -1})
	require.Error(t, err)

	d, err := Digest(domain.WeeklyActivity{})
	require.NoError(t, err)
	assert.Len(t, d.Insights, 3)
	assert.Len(t, d.RecommendedActions, 3)
}
