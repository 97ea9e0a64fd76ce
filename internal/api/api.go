// Package api holds the request and response records of the stateless
// endpoints together with their boundary validation. The HTTP adapter and
// the CLI both call through here.
package api

import (
	"math"

	"bdcompass/internal/domain"
	"bdcompass/internal/services/digest"
	"bdcompass/internal/services/outreach"
	"bdcompass/internal/services/router"
	"bdcompass/internal/services/scorer"
)

type RoutesRequest struct {
	Contacts  []domain.Contact       `json:"contacts"`
	Targets   []domain.TargetContact `json:"target_contacts"`
	Companies []domain.Company       `json:"companies"`
}

type RoutesResponse struct {
	Opportunities []domain.Opportunity `json:"opportunities"`
}

type ScoreRequest struct {
	Company     domain.Company          `json:"company"`
	Contacts    []domain.Contact        `json:"contacts"`
	Opportunity domain.OpportunityInput `json:"opportunity"`
}

type OutboundRequest struct {
	Company domain.Company        `json:"company"`
	Role    outreach.Role         `json:"role"`
	Signals []domain.BuyingSignal `json:"signals"`
}

type FollowUpsRequest struct {
	Opportunity domain.OpportunityInput `json:"opportunity"`
	DaysWaiting float64                 `json:"days_waiting"`
}

type FollowUpsResponse struct {
	FollowUps outreach.FollowUps `json:"followups"`
}

func (r RoutesRequest) Validate() error {
	return domain.AnalysisInput{Contacts: r.Contacts, Targets: r.Targets, Companies: r.Companies}.Validate()
}

func (r ScoreRequest) Validate() error {
	if r.Company.Name == "" {
		return &domain.ValidationError{Field: "company.name", Reason: "required"}
	}
	for _, c := range r.Contacts {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return validateSignals(r.Opportunity.BuyingSignals)
}

func (r OutboundRequest) Validate() error {
	return validateSignals(r.Signals)
}

func (r FollowUpsRequest) Validate() error {
	if r.DaysWaiting < 0 || math.IsNaN(r.DaysWaiting) {
		return &domain.ValidationError{Field: "days_waiting", Reason: "must be a non-negative number"}
	}
	return validateSignals(r.Opportunity.BuyingSignals)
}

func validateSignals(signals []domain.BuyingSignal) error {
	for _, s := range signals {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func Routes(req RoutesRequest) (RoutesResponse, error) {
	if err := req.Validate(); err != nil {
		return RoutesResponse{}, err
	}
	opps := router.FindRoutes(req.Contacts, req.Targets, req.Companies)
	if opps == nil {
		opps = []domain.Opportunity{}
	}
	return RoutesResponse{Opportunities: opps}, nil
}

func Score(req ScoreRequest) (domain.ScoreResult, error) {
	if err := req.Validate(); err != nil {
		return domain.ScoreResult{}, err
	}
	return scorer.Score(req.Company, req.Contacts, req.Opportunity), nil
}

func Outbound(req OutboundRequest) (outreach.OutboundResult, error) {
	if err := req.Validate(); err != nil {
		return outreach.OutboundResult{}, err
	}
	return outreach.ComposeOutbound(req.Company, req.Role, req.Signals), nil
}

func FollowUps(req FollowUpsRequest) (FollowUpsResponse, error) {
	if err := req.Validate(); err != nil {
		return FollowUpsResponse{}, err
	}
	return FollowUpsResponse{FollowUps: outreach.ComposeFollowUps(req.Opportunity, req.DaysWaiting)}, nil
}

func Digest(activity domain.WeeklyActivity) (domain.Digest, error) {
	if err := activity.Validate(); err != nil {
		return domain.Digest{}, err
	}
	return digest.Analyze(activity), nil
}
