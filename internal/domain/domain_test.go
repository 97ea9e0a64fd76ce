package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSize(t *testing.T) {
	tests := map[string]Size{
		"":            SizeUnknown,
		"unknown":     SizeUnknown,
		"1-10":        SizeStartup,
		"Startup":     SizeStartup,
		"11-50":       SizeSmall,
		"PYME":        SizeSmall,
		"51-200":      SizeMedium,
		"201-500":     SizeLarge,
		"1000":        SizeLarge,
		"1000+":       SizeEnterprise,
		"1.001-5.000": SizeEnterprise,
		"10,000+":     SizeEnterprise,
		" enterprise": SizeEnterprise,
		"mid-market":  SizeMedium,
	}
	for raw, want := range tests {
		assert.Equal(t, want, NormalizeSize(raw), "%q", raw)
	}
}

func TestStrengthRank(t *testing.T) {
	assert.Less(t, StrengthLow.Rank(), StrengthMedium.Rank())
	assert.Less(t, StrengthMedium.Rank(), StrengthHigh.Rank())
	assert.Equal(t, StrengthMedium.Rank(), SignalStrength("").Rank())
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-5))
	assert.Equal(t, 55, Clamp(55))
	assert.Equal(t, 100, Clamp(130))
}

func TestInputFromOpportunity(t *testing.T) {
	o := Opportunity{
		CompanyID: "c1",
		Target:    TargetRef{ID: "t1", Name: "Laura", RoleTitle: "CEO"},
		BestRoute: Route{Type: RouteSecondLevel, BridgeContact: &BridgeRef{ID: "u1", Name: "Ana"}, Confidence: 85},
	}
	signals := []BuyingSignal{{Type: SignalHiring}}

	in := InputFromOpportunity(o, Company{ID: "c1", Name: "ACME"}, signals)
	assert.Equal(t, "ACME", in.CompanyName)
	assert.Equal(t, "u1", in.BridgeContactID)
	assert.Equal(t, "Ana", in.BridgeName)
	assert.Equal(t, "CEO", in.TargetRole)
	require.NotNil(t, in.Confidence)
	assert.Equal(t, 85, *in.Confidence)
	assert.Equal(t, signals, in.BuyingSignals)

	o.BestRoute.BridgeContact = nil
	assert.Empty(t, InputFromOpportunity(o, Company{}, nil).BridgeContactID)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		field string
	}{
		{"company id", Company{Name: "ACME"}.Validate(), "company.id"},
		{"company name", Company{ID: "c1"}.Validate(), "company.name"},
		{"contact id", Contact{Name: "Ana"}.Validate(), "contact.id"},
		{"target role", TargetContact{ID: "t1", Seniority: "c-level", CompanyID: "c1"}.Validate(), "target.role_title"},
		{"target company", TargetContact{ID: "t1", RoleTitle: "CEO", Seniority: "c-level"}.Validate(), "target.company_id"},
		{"signal type", BuyingSignal{Type: "rumour"}.Validate(), "signal.type"},
		{"signal strength", BuyingSignal{Type: SignalGrowth, Strength: "huge"}.Validate(), "signal.strength"},
		{"counter", WeeklyActivity{Responses: -1}.Validate(), "responses"},
		{"input", AnalysisInput{Contacts: []Contact{{}}}.Validate(), "contact.id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var verr *ValidationError
			require.ErrorAs(t, tt.err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	assert.NoError(t, TargetContact{ID: "t1", RoleTitle: "CEO", Seniority: "c-level", CompanyID: "c1"}.Validate())
	assert.NoError(t, BuyingSignal{Type: SignalHiring}.Validate())
	assert.NoError(t, WeeklyActivity{}.Validate())
}
