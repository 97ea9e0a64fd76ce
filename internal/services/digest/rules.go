package digest

import (
	"fmt"

	"bdcompass/internal/domain"
)

const (
	highVolume        = 10
	steadyVolume      = 3
	targetVolume      = 5
	goodResponseRate  = 50
	fairResponseRate  = 25
	goodExecutionRate = 80
	poorExecutionRate = 40
	goodConversion    = 30
	stalledPipeline   = 3
)

func insightCandidates(a domain.WeeklyActivity) []candidate {
	var out []candidate
	add := func(text string, weight int) { out = append(out, candidate{text, weight}) }

	// volume
	switch n := a.IntrosGenerated; {
	case n >= highVolume:
		add(fmt.Sprintf("Semana de mucha actividad: %s.", count(n, "introducción generada", "introducciones generadas")), weightNote)
	case n >= steadyVolume:
		add(fmt.Sprintf("Actividad estable con %s.", count(n, "introducción generada", "introducciones generadas")), weightNote)
	case n > 0:
		add(fmt.Sprintf("Actividad baja: solo %s esta semana.", count(n, "introducción generada", "introducciones generadas")), weightWarning)
	}

	// response rate
	if a.IntrosRequested > 0 {
		rate := ResponseRate(a)
		switch {
		case rate >= goodResponseRate:
			add(fmt.Sprintf("Excelente tasa de respuesta (%d%%): tus introducciones están funcionando.", rate), weightNote)
		case rate >= fairResponseRate:
			add(fmt.Sprintf("Tasa de respuesta aceptable (%d%%), con margen de mejora.", rate), weightNote)
		default:
			add(fmt.Sprintf("Tasa de respuesta baja (%d%%): conviene revisar el enfoque de los mensajes.", rate), weightWarning)
		}
	}

	// outbound execution
	if a.OutboundSuggested > 0 {
		rate := percent(a.OutboundExecuted, a.OutboundSuggested)
		switch {
		case rate >= goodExecutionRate:
			add(fmt.Sprintf("Buen ritmo de ejecución outbound: %d de %d acciones sugeridas.", a.OutboundExecuted, a.OutboundSuggested), weightNote)
		case rate < poorExecutionRate:
			add(fmt.Sprintf("Solo se ejecutaron %d de %d acciones outbound sugeridas.", a.OutboundExecuted, a.OutboundSuggested), weightWarning)
		}
	}

	// conversion
	if a.OpportunitiesCreated > 0 {
		conv := percent(a.Wins, a.OpportunitiesCreated)
		switch {
		case conv >= goodConversion:
			add(fmt.Sprintf("Alta conversión: %d%% de las oportunidades de la semana se cerraron.", conv), weightNote)
		case a.Wins == 0 && a.OpportunitiesCreated >= stalledPipeline:
			add(fmt.Sprintf("Ninguna de las %d oportunidades creadas se ha cerrado todavía.", a.OpportunitiesCreated), weightWarning)
		}
	}

	// best industry
	if ind, ok := bestIndustry(a); ok {
		add(fmt.Sprintf("%s es el sector con mejor rendimiento (%s de %s).", ind.Industry,
			count(ind.Wins, "ganada", "ganadas"), count(ind.Opportunities, "oportunidad", "oportunidades")), weightNote)
	}

	// win/loss balance
	if a.Wins+a.Losses > 0 {
		switch {
		case a.Wins > a.Losses:
			add(fmt.Sprintf("Balance positivo: %d ganadas frente a %d perdidas.", a.Wins, a.Losses), weightNote)
		case a.Losses > a.Wins:
			add(fmt.Sprintf("Más oportunidades perdidas que ganadas (%d frente a %d).", a.Losses, a.Wins), weightWarning)
		default:
			add(fmt.Sprintf("Balance equilibrado: %d ganadas y %d perdidas.", a.Wins, a.Losses), weightNote)
		}
	}
	return out
}

func actionCandidates(a domain.WeeklyActivity) []candidate {
	var out []candidate
	add := func(text string) { out = append(out, candidate{text, weightNote}) }

	// volume
	switch pending := a.IntrosGenerated - a.IntrosRequested; {
	case a.IntrosGenerated == 0:
		add(fmt.Sprintf("Genera al menos %d introducciones nuevas a partir de tu red esta semana.", targetVolume))
	case a.IntrosGenerated < targetVolume:
		add(fmt.Sprintf("Aumenta el volumen: apunta a %d o más introducciones la próxima semana.", targetVolume))
	case pending > a.IntrosGenerated/2:
		add(fmt.Sprintf("Convierte en solicitudes las %d introducciones generadas que aún no has pedido.", pending))
	}

	// response rate or outbound backlog
	backlog := a.OutboundSuggested - a.OutboundExecuted
	switch {
	case a.IntrosRequested > 0 && ResponseRate(a) < fairResponseRate:
		add("Reescribe los mensajes de introducción y haz seguimiento de las solicitudes sin respuesta.")
	case backlog > 0:
		add(fmt.Sprintf("Ejecuta %s pendiente%s.", count(backlog, "acción outbound", "acciones outbound"), pluralS(backlog)))
	}

	// conversion or industry focus
	if ind, ok := bestIndustry(a); ok && ind.Wins > 0 {
		add(fmt.Sprintf("Concentra la prospección en %s, el sector con más cierres.", ind.Industry))
	} else if a.OpportunitiesCreated > 0 && a.Wins == 0 {
		phrase := "la oportunidad abierta"
		if a.OpportunitiesCreated != 1 {
			phrase = fmt.Sprintf("las %d oportunidades abiertas", a.OpportunitiesCreated)
		}
		add(fmt.Sprintf("Define el siguiente paso de %s.", phrase))
	} else if a.Losses > a.Wins {
		add("Analiza las oportunidades perdidas para ajustar la cualificación.")
	}
	return out
}

func pluralS(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
