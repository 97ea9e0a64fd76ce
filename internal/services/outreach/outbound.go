// Package outreach renders outbound and follow-up messages from fixed
// templates keyed by buyer persona, buying signal and elapsed time.
package outreach

import (
	"strings"

	"bdcompass/internal/domain"
)

type Outbound struct {
	Short     string `json:"short"`
	Long      string `json:"long"`
	CTA       string `json:"cta"`
	ReasonNow string `json:"reason_now"`
}

type OutboundScore struct {
	LeadPotentialScore int `json:"lead_potential_score"`
}

type OutboundResult struct {
	Outbound Outbound      `json:"outbound"`
	Score    OutboundScore `json:"score"`
}

// ComposeOutbound builds a cold message for a company and a buyer role. The
// strongest relevant signal picks the angle; without one the generic column
// of the template table is used.
func ComposeOutbound(company domain.Company, role Role, signals []domain.BuyingSignal) OutboundResult {
	kind := role.Kind()
	primary, hasPrimary := PrimarySignal(signals)
	col := noSignal
	if hasPrimary {
		col = primary.Type
	}

	name := strings.TrimSpace(company.Name)
	if name == "" {
		name = "tu empresa"
	}
	raw := hooks[hookKey{kind, col}]
	fill := func(t string) string { return strings.ReplaceAll(t, "{company}", name) }
	hook := fill(raw)
	cta := callToAction[kind]

	return OutboundResult{
		Outbound: Outbound{
			Short:     "Hola, " + fill(lowerFirst(raw)) + " " + cta,
			Long:      "Hola,\n\n" + hook + " " + valueProp[kind] + "\n\n" + cta + "\n\nUn saludo.",
			CTA:       cta,
			ReasonNow: reasonNow(company, signals, primary, hasPrimary),
		},
		Score: OutboundScore{LeadPotentialScore: OutboundLeadScore(company, kind, signals)},
	}
}

// PrimarySignal returns the strongest relevant signal. Equal strengths are
// broken by relevance order.
func PrimarySignal(signals []domain.BuyingSignal) (domain.BuyingSignal, bool) {
	var (
		best  domain.BuyingSignal
		found bool
	)
	for _, typ := range relevantSignals {
		for _, s := range signals {
			if s.Type != typ {
				continue
			}
			if !found || s.Strength.Rank() > best.Strength.Rank() {
				best, found = s, true
			}
		}
	}
	return best, found
}

func reasonNow(company domain.Company, signals []domain.BuyingSignal, primary domain.BuyingSignal, hasPrimary bool) string {
	if hasPrimary {
		return reasonBySignal[primary.Type]
	}
	// growth or expansion still justify urgency even if they don't pick the angle
	var strongest *domain.BuyingSignal
	for i := range signals {
		if _, ok := reasonBySignal[signals[i].Type]; !ok {
			continue
		}
		if strongest == nil || signals[i].Strength.Rank() > strongest.Strength.Rank() {
			strongest = &signals[i]
		}
	}
	if strongest != nil {
		return reasonBySignal[strongest.Type]
	}
	return reasonBySize[domain.NormalizeSize(company.SizeBucket)]
}

const (
	outboundBase        = 40
	extraSignalBonus    = 5
	maxExtraSignalBonus = 10
)

var outboundSizeWeight = map[domain.Size]int{
	domain.SizeStartup:    20,
	domain.SizeSmall:      20,
	domain.SizeMedium:     15,
	domain.SizeLarge:      5,
	domain.SizeEnterprise: 0,
}

var outboundRoleWeight = map[RoleKind]int{
	RoleHR:         20,
	RoleCEO:        15,
	RoleOperations: 10,
	RoleFinance:    10,
	RoleOther:      0,
}

var outboundStrengthWeight = map[domain.SignalStrength]int{
	domain.StrengthHigh:   20,
	domain.StrengthMedium: 12,
	domain.StrengthLow:    6,
}

// OutboundLeadScore rates a cold prospect from size, persona and signals
// alone, so it works before any opportunity or route exists.
func OutboundLeadScore(company domain.Company, kind RoleKind, signals []domain.BuyingSignal) int {
	score := outboundBase + outboundSizeWeight[domain.NormalizeSize(company.SizeBucket)] + outboundRoleWeight[kind]
	primary, ok := PrimarySignal(signals)
	if !ok {
		return domain.Clamp(score)
	}
	w, known := outboundStrengthWeight[primary.Strength]
	if !known {
		w = outboundStrengthWeight[domain.StrengthMedium]
	}
	score += w

	extra := 0
	for _, s := range signals {
		if isRelevant(s.Type) {
			extra += extraSignalBonus
		}
	}
	extra -= extraSignalBonus // the primary itself
	if extra > maxExtraSignalBonus {
		extra = maxExtraSignalBonus
	}
	return domain.Clamp(score + extra)
}

func isRelevant(t domain.SignalType) bool {
	for _, r := range relevantSignals {
		if r == t {
			return true
		}
	}
	return false
}

// lowerFirst lowercases the first letter of a template so it can follow a
// greeting. Templates opening with a placeholder are left alone.
func lowerFirst(s string) string {
	r := []rune(s)
	if len(r) == 0 || r[0] == '{' {
		return s
	}
	return strings.ToLower(string(r[0])) + string(r[1:])
}
