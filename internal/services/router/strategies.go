package router

import (
	"fmt"
	"strings"

	"bdcompass/internal/domain"
	"bdcompass/internal/matching"
)

// Confidence assigned by each rule.
const (
	confDirect = 95

	confSameCompany    = 85
	confSharedPrevious = 75
	confMutual         = 70
	confCrossHistory   = 60

	confSimilarEmployer = 65
	confSimilarPrevious = 55
	confSharedDomain    = 50
	confSimilarRole     = 45
	confSharedIndustry  = 40
	confMentioned       = 35
)

// roleSimilarityThreshold is the minimum title similarity for an inferred
// role match.
const roleSimilarityThreshold = 0.5

func (g *graph) direct(t domain.TargetContact) (domain.Route, bool) {
	for _, c := range g.contacts {
		if !isDirect(c, t) {
			continue
		}
		return domain.Route{
			Type:          domain.RouteDirect,
			BridgeContact: bridgeOf(c),
			Confidence:    confDirect,
			Justification: fmt.Sprintf("Conexión directa: %s conoce personalmente a %s.", nameOr(c.Name, c.ID), nameOr(t.Name, t.ID)),
		}, true
	}
	return domain.Route{}, false
}

func isDirect(c domain.Contact, t domain.TargetContact) bool {
	if c.ID != "" && c.ID == t.ID {
		return true
	}
	ce, te := strings.TrimSpace(c.Email), strings.TrimSpace(t.Email)
	if ce != "" && te != "" && strings.EqualFold(ce, te) {
		return true
	}
	return contains(c.Connections, t.ID) || contains(t.Connections, c.ID)
}

func (g *graph) secondLevel(t domain.TargetContact) (domain.Route, bool) {
	var (
		best  domain.Route
		found bool
	)
	for _, c := range g.contacts {
		conf, why := g.secondLevelLink(c, t)
		if conf == 0 || (found && conf <= best.Confidence) {
			continue
		}
		best = domain.Route{
			Type:          domain.RouteSecondLevel,
			BridgeContact: bridgeOf(c),
			Confidence:    conf,
			Justification: why,
		}
		found = true
	}
	return best, found
}

// secondLevelLink returns the strongest structural link between a contact and
// a target, or 0 when there is none.
func (g *graph) secondLevelLink(c domain.Contact, t domain.TargetContact) (int, string) {
	cn, tn := nameOr(c.Name, c.ID), nameOr(t.Name, t.ID)
	if c.CompanyID != "" && c.CompanyID == t.CompanyID {
		return confSameCompany, fmt.Sprintf("%s trabaja actualmente en %s, la misma empresa que %s.", cn, g.companyName(t.CompanyID), tn)
	}
	if shared, ok := firstShared(c.PreviousCompanies, t.PreviousCompanies); ok {
		return confSharedPrevious, fmt.Sprintf("%s y %s coincidieron en %s.", cn, tn, g.companyName(shared))
	}
	if _, ok := firstShared(c.Connections, t.Connections); ok {
		return confMutual, fmt.Sprintf("%s y %s tienen contactos en común.", cn, tn)
	}
	if c.CompanyID != "" && containsFold(t.PreviousCompanies, c.CompanyID) {
		return confCrossHistory, fmt.Sprintf("%s trabajó antes en %s, donde ahora está %s.", tn, g.companyName(c.CompanyID), cn)
	}
	if containsFold(c.PreviousCompanies, t.CompanyID) {
		return confCrossHistory, fmt.Sprintf("%s trabajó antes en %s, donde ahora está %s.", cn, g.companyName(t.CompanyID), tn)
	}
	return 0, ""
}

// heuristic returns a confidence (0 for no match), a justification and
// whether the contact can act as the bridge.
type heuristic func(g *graph, c domain.Contact, t domain.TargetContact) (int, string, bool)

// inferredHeuristics run in this order. When two matches tie on confidence
// the earlier heuristic wins, then the earlier contact, which prefers
// employer evidence over industry or log mentions.
var inferredHeuristics = []heuristic{
	similarEmployer,
	similarPrevious,
	similarRole,
	sharedDomain,
	sharedIndustry,
	mentionedInLog,
}

func (g *graph) inferred(t domain.TargetContact) (domain.Route, bool) {
	var (
		best     domain.Route
		bestRank = len(inferredHeuristics)
		found    bool
	)
	for _, c := range g.contacts {
		for rank, h := range inferredHeuristics {
			conf, why, withBridge := h(g, c, t)
			if conf == 0 {
				continue
			}
			if found && (conf < best.Confidence || (conf == best.Confidence && rank >= bestRank)) {
				continue
			}
			best = domain.Route{Type: domain.RouteInferred, Confidence: conf, Justification: why}
			if withBridge {
				best.BridgeContact = bridgeOf(c)
			}
			bestRank, found = rank, true
		}
	}
	if !found || best.Confidence < MinConfidence {
		return domain.Route{}, false
	}
	return best, true
}

func similarEmployer(g *graph, c domain.Contact, t domain.TargetContact) (int, string, bool) {
	if c.CompanyID == "" || c.CompanyID == t.CompanyID {
		return 0, "", false
	}
	if matching.Similarity(g.companyName(c.CompanyID), g.companyName(t.CompanyID)) < matching.Contains {
		return 0, "", false
	}
	return confSimilarEmployer, fmt.Sprintf("%s trabaja en %s, que parece ser la misma empresa que %s.",
		nameOr(c.Name, c.ID), g.companyName(c.CompanyID), g.companyName(t.CompanyID)), true
}

func similarPrevious(g *graph, c domain.Contact, t domain.TargetContact) (int, string, bool) {
	for _, cp := range c.PreviousCompanies {
		for _, tp := range t.PreviousCompanies {
			if matching.Similarity(g.companyName(cp), g.companyName(tp)) >= matching.Contains {
				return confSimilarPrevious, fmt.Sprintf("%s y %s pasaron por empresas equivalentes (%s).",
					nameOr(c.Name, c.ID), nameOr(t.Name, t.ID), g.companyName(tp)), true
			}
		}
	}
	return 0, "", false
}

func similarRole(_ *graph, c domain.Contact, t domain.TargetContact) (int, string, bool) {
	if matching.Similarity(c.RoleTitle, t.RoleTitle) <= roleSimilarityThreshold {
		return 0, "", false
	}
	return confSimilarRole, fmt.Sprintf("%s ocupa un puesto similar al de %s (%s).",
		nameOr(c.Name, c.ID), nameOr(t.Name, t.ID), t.RoleTitle), true
}

func sharedDomain(g *graph, c domain.Contact, t domain.TargetContact) (int, string, bool) {
	cc, ok1 := g.company(c.CompanyID)
	tc, ok2 := g.company(t.CompanyID)
	if !ok1 || !ok2 {
		return 0, "", false
	}
	d := matching.RegistrableDomain(cc.Domain)
	if d == "" || d != matching.RegistrableDomain(tc.Domain) {
		return 0, "", false
	}
	return confSharedDomain, fmt.Sprintf("La empresa de %s comparte dominio con %s (%s).",
		nameOr(c.Name, c.ID), g.companyName(t.CompanyID), d), true
}

// sharedIndustry is company-level evidence only, so it names no bridge.
func sharedIndustry(g *graph, c domain.Contact, t domain.TargetContact) (int, string, bool) {
	cc, ok1 := g.company(c.CompanyID)
	tc, ok2 := g.company(t.CompanyID)
	if !ok1 || !ok2 {
		return 0, "", false
	}
	ind := matching.Normalize(cc.Industry)
	if ind == "" || ind != matching.Normalize(tc.Industry) {
		return 0, "", false
	}
	return confSharedIndustry, fmt.Sprintf("%s opera en el mismo sector que parte de tu red (%s).",
		g.companyName(t.CompanyID), tc.Industry), false
}

func mentionedInLog(g *graph, c domain.Contact, t domain.TargetContact) (int, string, bool) {
	if c.InteractionLog == "" {
		return 0, "", false
	}
	for _, needle := range []string{t.Name, g.companyName(t.CompanyID)} {
		if matching.Mentions(c.InteractionLog, needle) {
			return confMentioned, mentionNote(c, needle), true
		}
	}
	// ids are often short, so they only need to appear as a whole token
	if matching.HasToken(c.InteractionLog, t.CompanyID) {
		return confMentioned, mentionNote(c, t.CompanyID), true
	}
	return 0, "", false
}

func mentionNote(c domain.Contact, needle string) string {
	return fmt.Sprintf("%s mencionó a %s en sus interacciones.", nameOr(c.Name, c.ID), needle)
}

func contains(list []string, v string) bool {
	if v == "" {
		return false
	}
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func containsFold(list []string, v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return false
	}
	for _, x := range list {
		if strings.EqualFold(strings.TrimSpace(x), v) {
			return true
		}
	}
	return false
}

func firstShared(a, b []string) (string, bool) {
	for _, x := range a {
		if containsFold(b, x) {
			return x, true
		}
	}
	return "", false
}

func nameOr(name, fallback string) string {
	if strings.TrimSpace(name) != "" {
		return name
	}
	return fallback
}
