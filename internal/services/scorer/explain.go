package scorer

import (
	"fmt"
	"strings"

	"bdcompass/internal/domain"
)

type tier string

const (
	tierHigh     tier = "high"
	tierModerate tier = "moderate"
	tierLimited  tier = "limited"
)

func tierOf(score int) tier {
	switch {
	case score >= 70:
		return tierHigh
	case score >= 50:
		return tierModerate
	default:
		return tierLimited
	}
}

var headline = map[tier]string{
	tierHigh:     "Oportunidad de alto potencial (%d/100).",
	tierModerate: "Oportunidad de potencial moderado (%d/100).",
	tierLimited:  "Oportunidad de potencial limitado (%d/100).",
}

var closing = map[tier]string{
	tierHigh:     "Conviene priorizarla esta semana.",
	tierModerate: "Merece avanzar si hay capacidad comercial.",
	tierLimited:  "Mejor mantenerla en seguimiento pasivo.",
}

type factor struct {
	label string
	score int
}

// Explain assembles a short explanation from the lead potential tier and
// the strongest and weakest contributing factors. Ties keep the first
// factor in industry, signals, introduction order.
func Explain(s domain.ScoreSet) string {
	factors := []factor{
		{"el encaje sectorial", s.IndustryFit},
		{"las señales de compra", s.BuyingSignal},
		{"la fuerza de la introducción", s.IntroStrength},
	}
	best, worst := factors[0], factors[0]
	for _, f := range factors[1:] {
		if f.score > best.score {
			best = f
		}
		if f.score < worst.score {
			worst = f
		}
	}

	t := tierOf(s.LeadPotential)
	parts := []string{fmt.Sprintf(headline[t], s.LeadPotential)}
	if best.score == worst.score {
		parts = append(parts, fmt.Sprintf("Los tres factores están equilibrados (%d).", best.score))
	} else {
		parts = append(parts, fmt.Sprintf("Destaca %s (%d).", best.label, best.score))
		switch tierOf(worst.score) {
		case tierLimited:
			parts = append(parts, fmt.Sprintf("El punto débil es %s (%d).", worst.label, worst.score))
		case tierModerate:
			parts = append(parts, fmt.Sprintf("Hay margen de mejora en %s (%d).", worst.label, worst.score))
		}
	}
	parts = append(parts, closing[t])
	return strings.Join(parts, " ")
}
