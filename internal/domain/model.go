package domain

// Core domain records. They double as the JSON shapes accepted and returned
// at the boundary, so optional fields use omitempty and empty slices are
// treated the same as missing ones.

// Contact is a person the account already knows.
type Contact struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Email             string   `json:"email,omitempty"`
	CompanyID         string   `json:"company_id,omitempty"`
	RoleTitle         string   `json:"role_title,omitempty"`
	Seniority         string   `json:"seniority,omitempty"`
	PreviousCompanies []string `json:"previous_companies,omitempty"`
	PreviousRoles     []string `json:"previous_roles,omitempty"`
	Connections       []string `json:"connections,omitempty"`
	InteractionLog    string   `json:"interaction_log,omitempty"`
}

// TargetContact is a decision-maker at a company of interest. RoleTitle,
// Seniority and CompanyID are required (see Validate).
type TargetContact struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Email             string   `json:"email,omitempty"`
	CompanyID         string   `json:"company_id"`
	RoleTitle         string   `json:"role_title"`
	Seniority         string   `json:"seniority"`
	PreviousCompanies []string `json:"previous_companies,omitempty"`
	PreviousRoles     []string `json:"previous_roles,omitempty"`
	Connections       []string `json:"connections,omitempty"`
}

// Ref returns the compact descriptor stored on an Opportunity.
func (t TargetContact) Ref() TargetRef {
	return TargetRef{ID: t.ID, Name: t.Name, RoleTitle: t.RoleTitle, Seniority: t.Seniority}
}

type Company struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Industry   string `json:"industry,omitempty"`
	SizeBucket string `json:"size_bucket,omitempty"`
	Domain     string `json:"domain,omitempty"`
}

type SignalType string

const (
	SignalHiring           SignalType = "hiring"
	SignalGrowth           SignalType = "growth"
	SignalOperationalChaos SignalType = "operational_chaos"
	SignalHRShortage       SignalType = "hr_shortage"
	SignalExpansion        SignalType = "expansion"
	SignalCompliance       SignalType = "compliance_issues"
	SignalManualProcesses  SignalType = "manual_processes"
)

// SignalTypes lists every known signal type in declaration order.
var SignalTypes = []SignalType{
	SignalHiring, SignalGrowth, SignalOperationalChaos, SignalHRShortage,
	SignalExpansion, SignalCompliance, SignalManualProcesses,
}

type SignalStrength string

const (
	StrengthLow    SignalStrength = "low"
	StrengthMedium SignalStrength = "medium"
	StrengthHigh   SignalStrength = "high"
)

// Rank orders strengths low < medium < high. Unknown values rank as medium.
func (s SignalStrength) Rank() int {
	switch s {
	case StrengthLow:
		return 1
	case StrengthHigh:
		return 3
	default:
		return 2
	}
}

type BuyingSignal struct {
	Type        SignalType     `json:"type"`
	Description string         `json:"description,omitempty"`
	Strength    SignalStrength `json:"strength,omitempty"`
}

type RouteType string

const (
	RouteDirect      RouteType = "direct"
	RouteSecondLevel RouteType = "second_level"
	RouteInferred    RouteType = "inferred"
)

// BridgeRef identifies the known contact who can make the introduction.
type BridgeRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Route struct {
	Type          RouteType  `json:"type"`
	BridgeContact *BridgeRef `json:"bridge_contact,omitempty"`
	Confidence    int        `json:"confidence"`
	Justification string     `json:"justification"`
}

type TargetRef struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	RoleTitle string `json:"role_title"`
	Seniority string `json:"seniority"`
}

type Opportunity struct {
	CompanyID             string    `json:"company_id"`
	Target                TargetRef `json:"target"`
	BestRoute             Route     `json:"best_route"`
	SuggestedIntroMessage string    `json:"suggested_intro_message"`
	IntroStrengthScore    int       `json:"intro_strength_score"`
}

// OpportunityInput is the opportunity-like record consumed by the scorer and
// the follow-up composer. Every field is optional.
type OpportunityInput struct {
	CompanyID       string         `json:"company_id,omitempty"`
	CompanyName     string         `json:"company_name,omitempty"`
	TargetID        string         `json:"target_id,omitempty"`
	TargetName      string         `json:"target_name,omitempty"`
	TargetRole      string         `json:"target_role,omitempty"`
	BridgeContactID string         `json:"bridge_contact_id,omitempty"`
	BridgeName      string         `json:"bridge_name,omitempty"`
	RouteType       RouteType      `json:"type,omitempty"`
	Confidence      *int           `json:"confidence,omitempty"`
	BuyingSignals   []BuyingSignal `json:"buying_signals,omitempty"`
}

// InputFromOpportunity builds the scorer input for a routed opportunity.
func InputFromOpportunity(o Opportunity, company Company, signals []BuyingSignal) OpportunityInput {
	conf := o.BestRoute.Confidence
	in := OpportunityInput{
		CompanyID:     o.CompanyID,
		CompanyName:   company.Name,
		TargetID:      o.Target.ID,
		TargetName:    o.Target.Name,
		TargetRole:    o.Target.RoleTitle,
		RouteType:     o.BestRoute.Type,
		Confidence:    &conf,
		BuyingSignals: signals,
	}
	if b := o.BestRoute.BridgeContact; b != nil {
		in.BridgeContactID = b.ID
		in.BridgeName = b.Name
	}
	return in
}

type ScoreSet struct {
	IndustryFit   int `json:"industry_fit_score"`
	BuyingSignal  int `json:"buying_signal_score"`
	IntroStrength int `json:"intro_strength_score"`
	LeadPotential int `json:"lead_potential_score"`
}

type ScoreResult struct {
	Scores      ScoreSet `json:"scores"`
	Explanation string   `json:"explanation"`
}

type ScoredOpportunity struct {
	Opportunity
	Scores      ScoreSet `json:"scores"`
	Explanation string   `json:"explanation"`
}

// AnalysisInput is the fully materialized graph for one account.
type AnalysisInput struct {
	Companies []Company                 `json:"companies"`
	Contacts  []Contact                 `json:"contacts"`
	Targets   []TargetContact           `json:"target_contacts"`
	Signals   map[string][]BuyingSignal `json:"signals,omitempty"`
}

type IndustryActivity struct {
	Industry      string `json:"industry"`
	Opportunities int    `json:"opportunities"`
	Wins          int    `json:"wins"`
}

type WeeklyActivity struct {
	IntrosGenerated      int                `json:"intros_generated"`
	IntrosRequested      int                `json:"intros_requested"`
	Responses            int                `json:"responses"`
	OutboundSuggested    int                `json:"outbound_suggested"`
	OutboundExecuted     int                `json:"outbound_executed"`
	Wins                 int                `json:"wins"`
	Losses               int                `json:"losses"`
	OpportunitiesCreated int                `json:"opportunities_created"`
	Industries           []IndustryActivity `json:"industries,omitempty"`
}

type Digest struct {
	Summary            string   `json:"summary"`
	Insights           []string `json:"insights"`
	RecommendedActions []string `json:"recommended_actions"`
}

// Clamp bounds a score to [0,100].
func Clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
