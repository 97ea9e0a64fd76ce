// Package scorer computes the commercial scores of an opportunity: industry
// fit, buying intent, introduction strength and the blended lead potential.
package scorer

import (
	"math"
	"strings"

	"bdcompass/internal/domain"
	"bdcompass/internal/matching"
)

// Score computes the four scores and their explanation. Missing optional
// inputs fall back to neutral values.
func Score(company domain.Company, contacts []domain.Contact, opp domain.OpportunityInput) domain.ScoreResult {
	set := domain.ScoreSet{
		IndustryFit:   IndustryFit(company),
		BuyingSignal:  BuyingSignal(opp.BuyingSignals),
		IntroStrength: IntroStrength(opp, contacts),
	}
	set.LeadPotential = LeadPotential(set.IndustryFit, set.BuyingSignal, set.IntroStrength)
	return domain.ScoreResult{Scores: set, Explanation: Explain(set)}
}

func IndustryFit(company domain.Company) int {
	score := industryBase + sizeAdjustment[domain.NormalizeSize(company.SizeBucket)]
	score += industryAdjustment(company.Industry)
	return domain.Clamp(score)
}

func industryAdjustment(industry string) int {
	norm := matching.Normalize(industry)
	if norm == "" {
		return 0
	}
	for _, rule := range industryRules {
		if strings.Contains(norm, rule.keyword) {
			return rule.adjustment
		}
	}
	return 0
}

func BuyingSignal(signals []domain.BuyingSignal) int {
	if len(signals) == 0 {
		return noSignalScore
	}
	var weighted, ceiling float64
	for _, s := range signals {
		w, ok := signalWeight[s.Type]
		if !ok {
			w = defaultSignalWeight
		}
		m, ok := strengthMultiplier[s.Strength]
		if !ok {
			m = defaultStrengthMultiplier
		}
		weighted += w * m
		ceiling += w
	}
	score := int(math.Round(signalFloor + signalSpan*(weighted/ceiling)))
	if len(signals) >= 2 {
		score += 5
	}
	if len(signals) >= 3 {
		score += 5
	}
	return domain.Clamp(score)
}

// IntroStrength scores how warm the introduction path is. Without a bridge
// contact only a direct route scores above the floor.
func IntroStrength(opp domain.OpportunityInput, contacts []domain.Contact) int {
	if opp.BridgeContactID == "" && opp.RouteType != domain.RouteDirect {
		return noBridgeScore
	}
	base, ok := routeBase[opp.RouteType]
	if !ok {
		base = routeBase[domain.RouteInferred]
	}
	score := base
	if opp.Confidence != nil {
		conf := domain.Clamp(*opp.Confidence)
		score = (base*baseBlendPct + conf*confBlendPct + 50) / 100
	}
	if bridge, ok := findContact(contacts, opp.BridgeContactID); ok {
		score += RoleBonus(bridge.RoleTitle, bridge.Seniority)
		score += connectivity(len(bridge.Connections))
	}
	return domain.Clamp(score)
}

// RoleBonus rewards bridges who can open doors: HR first, then C-level,
// then other directors and senior staff.
func RoleBonus(title, seniority string) int {
	text := " " + matching.Normalize(title+" "+seniority) + " "
	for _, group := range bridgeRoleBonuses {
		for _, kw := range group.keywords {
			if strings.Contains(text, " "+kw+" ") {
				return group.bonus
			}
		}
	}
	return 0
}

func connectivity(n int) int {
	for _, c := range connectivityBonuses {
		if n >= c.minConnections {
			return c.bonus
		}
	}
	return 0
}

// LeadPotential blends the three scores 30/40/30, rounding half up.
func LeadPotential(industryFit, buyingSignal, introStrength int) int {
	v := domain.Clamp(industryFit)*pctIndustryFit +
		domain.Clamp(buyingSignal)*pctBuyingSignal +
		domain.Clamp(introStrength)*pctIntroStrength
	return domain.Clamp((v + 50) / 100)
}

func findContact(contacts []domain.Contact, id string) (domain.Contact, bool) {
	if id == "" {
		return domain.Contact{}, false
	}
	for _, c := range contacts {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Contact{}, false
}
