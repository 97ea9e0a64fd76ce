// Package router finds the warmest known path to each target decision-maker
// and turns it into a ranked list of opportunities.
package router

import (
	"sort"

	"bdcompass/internal/domain"
	"bdcompass/internal/services/scorer"
)

// MinConfidence is the lowest confidence at which a route is surfaced.
const MinConfidence = 30

// FindRoutes evaluates every target against the known contacts and returns
// one opportunity per (company, target) pair whose best route clears
// MinConfidence, sorted by descending intro strength. Ties keep input order.
func FindRoutes(contacts []domain.Contact, targets []domain.TargetContact, companies []domain.Company) []domain.Opportunity {
	g := newGraph(contacts, companies)
	seen := make(map[string]bool, len(targets))
	out := make([]domain.Opportunity, 0, len(targets))

	for _, t := range targets {
		key := t.CompanyID + "\x00" + t.ID
		if seen[key] {
			continue
		}
		seen[key] = true

		route, ok := g.bestRoute(t)
		if !ok {
			continue
		}
		out = append(out, g.opportunity(t, route))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].IntroStrengthScore > out[j].IntroStrengthScore
	})
	return out
}

// graph indexes the caller's records for one routing pass.
type graph struct {
	contacts  []domain.Contact
	companies map[string]domain.Company
}

func newGraph(contacts []domain.Contact, companies []domain.Company) *graph {
	idx := make(map[string]domain.Company, len(companies))
	for _, c := range companies {
		if _, dup := idx[c.ID]; !dup {
			idx[c.ID] = c
		}
	}
	return &graph{contacts: contacts, companies: idx}
}

func (g *graph) company(id string) (domain.Company, bool) {
	c, ok := g.companies[id]
	return c, ok
}

// companyName resolves a company id to its display name, falling back to the
// raw value for previous-employer entries that are stored as names.
func (g *graph) companyName(id string) string {
	if c, ok := g.companies[id]; ok && c.Name != "" {
		return c.Name
	}
	return id
}

// bestRoute runs the strategies in priority order and keeps the highest
// confidence; on equal confidence the earlier strategy wins.
func (g *graph) bestRoute(t domain.TargetContact) (domain.Route, bool) {
	var (
		best  domain.Route
		found bool
	)
	for _, strategy := range []func(domain.TargetContact) (domain.Route, bool){
		g.direct,
		g.secondLevel,
		g.inferred,
	} {
		r, ok := strategy(t)
		if !ok || r.Confidence < MinConfidence {
			continue
		}
		if !found || r.Confidence > best.Confidence {
			best, found = r, true
		}
	}
	return best, found
}

func (g *graph) opportunity(t domain.TargetContact, r domain.Route) domain.Opportunity {
	conf := r.Confidence
	in := domain.OpportunityInput{RouteType: r.Type, Confidence: &conf}
	if r.BridgeContact != nil {
		in.BridgeContactID = r.BridgeContact.ID
	}
	return domain.Opportunity{
		CompanyID:             t.CompanyID,
		Target:                t.Ref(),
		BestRoute:             r,
		SuggestedIntroMessage: g.introMessage(t, r),
		IntroStrengthScore:    scorer.IntroStrength(in, g.contacts),
	}
}

func bridgeOf(c domain.Contact) *domain.BridgeRef {
	return &domain.BridgeRef{ID: c.ID, Name: c.Name}
}
