package outreach

import (
	"strings"

	"bdcompass/internal/domain"
)

type FollowUps struct {
	Tone          Tone   `json:"tone"`
	DaysWaiting   int    `json:"days_waiting"`
	BridgeContact string `json:"bridge_contact"`
	Prospect      string `json:"prospect"`
	Outbound      string `json:"outbound"`
}

// ComposeFollowUps renders one follow-up per audience for an opportunity
// that has been waiting daysWaiting days. Missing names fall back to generic
// nouns.
func ComposeFollowUps(opp domain.OpportunityInput, daysWaiting float64) FollowUps {
	days := WaitDays(daysWaiting)
	tone := ToneFor(daysWaiting)

	company := fallback(opp.CompanyName, "tu empresa")
	prospect := fallback(opp.TargetName, "la persona responsable")

	render := func(a Audience, greetName string) string {
		hola := "Hola,"
		if n := strings.TrimSpace(greetName); n != "" {
			hola = "Hola " + n + ","
		}
		return strings.NewReplacer(
			"{hola}", hola,
			"{prospect}", prospect,
			"{company}", company,
		).Replace(followUps[followUpKey{a, tone}])
	}

	return FollowUps{
		Tone:          tone,
		DaysWaiting:   days,
		BridgeContact: render(AudienceBridge, opp.BridgeName),
		Prospect:      render(AudienceProspect, opp.TargetName),
		Outbound:      render(AudienceOutbound, opp.TargetName),
	}
}

func fallback(v, def string) string {
	if s := strings.TrimSpace(v); s != "" {
		return s
	}
	return def
}
