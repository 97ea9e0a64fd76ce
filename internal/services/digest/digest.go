// Package digest turns a week of activity counters into a short written
// report: summary lines, three insights and three recommended actions.
package digest

import (
	"fmt"
	"sort"
	"strings"

	"bdcompass/internal/domain"
)

// ListSize is the exact number of insights and actions in every digest.
const ListSize = 3

var fillerInsights = []string{
	"Mantener una cadencia semanal de introducciones hace el pipeline más predecible.",
	"Las introducciones a través de contactos comunes suelen obtener más respuesta que el outbound en frío.",
	"Registrar cada interacción ayuda a descubrir nuevas rutas de conexión.",
}

var fillerActions = []string{
	"Revisa las oportunidades con mayor puntuación y pide las introducciones pendientes.",
	"Actualiza las señales de compra de tus cuentas objetivo.",
	"Programa los seguimientos de las conversaciones abiertas.",
}

// Analyze builds the digest for one reporting window. It is total: sparse or
// all-zero activity still yields exactly ListSize insights and actions.
func Analyze(a domain.WeeklyActivity) domain.Digest {
	return domain.Digest{
		Summary:            Summary(a),
		Insights:           topN(insightCandidates(a), fillerInsights, ListSize),
		RecommendedActions: topN(actionCandidates(a), fillerActions, ListSize),
	}
}

// ResponseRate is responses/intros_requested as a rounded percentage, or 0
// when nothing was requested.
func ResponseRate(a domain.WeeklyActivity) int {
	return percent(a.Responses, a.IntrosRequested)
}

func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return (part*100 + whole/2) / whole
}

func Summary(a domain.WeeklyActivity) string {
	lines := []string{
		verb(a.IntrosGenerated, "Se generó", "Se generaron") + " " + count(a.IntrosGenerated, "introducción", "introducciones") + ".",
		verb(a.IntrosRequested, "Se solicitó", "Se solicitaron") + " " + count(a.IntrosRequested, "introducción", "introducciones") +
			" y " + verb(a.Responses, "se recibió", "se recibieron") + " " + count(a.Responses, "respuesta", "respuestas") +
			fmt.Sprintf(" (tasa de respuesta: %d%%).", ResponseRate(a)),
		fmt.Sprintf("Outbound: %d de %s.", a.OutboundExecuted, count(a.OutboundSuggested, "acción sugerida ejecutada", "acciones sugeridas ejecutadas")),
		verb(a.OpportunitiesCreated, "Se creó", "Se crearon") + " " + count(a.OpportunitiesCreated, "oportunidad nueva", "oportunidades nuevas") + ".",
		"Resultados: " + count(a.Wins, "ganada", "ganadas") + ", " + count(a.Losses, "perdida", "perdidas") + ".",
	}
	return strings.Join(lines, "\n")
}

func count(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return fmt.Sprintf("%d %s", n, plural)
}

func verb(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

// candidate is one generated observation. Higher weight sorts first; equal
// weights keep generation order.
type candidate struct {
	text   string
	weight int
}

const (
	weightNote    = 1
	weightWarning = 2
)

// topN ranks candidates, appends fillers in order and cuts to n.
func topN(cands []candidate, fillers []string, n int) []string {
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].weight > cands[j].weight })
	out := make([]string, 0, n)
	for _, c := range cands {
		if len(out) == n {
			return out
		}
		out = append(out, c.text)
	}
	for _, f := range fillers {
		if len(out) == n {
			break
		}
		out = append(out, f)
	}
	return out
}

// bestIndustry picks the industry with most wins, then most opportunities.
// Earlier entries win ties.
func bestIndustry(a domain.WeeklyActivity) (domain.IndustryActivity, bool) {
	var (
		best  domain.IndustryActivity
		found bool
	)
	for _, ind := range a.Industries {
		if strings.TrimSpace(ind.Industry) == "" || (ind.Wins == 0 && ind.Opportunities == 0) {
			continue
		}
		if !found || ind.Wins > best.Wins || (ind.Wins == best.Wins && ind.Opportunities > best.Opportunities) {
			best, found = ind, true
		}
	}
	return best, found
}
