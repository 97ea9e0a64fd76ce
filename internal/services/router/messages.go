package router

import (
	"fmt"

	"bdcompass/internal/domain"
)

const (
	introDirect = "Hola %[1]s, espero que estés muy bien. Me gustaría retomar el contacto y contarte " +
		"cómo estamos ayudando a equipos como el de %[3]s. ¿Tendrías 20 minutos esta semana?"
	introSecondLevel = "Hola %[2]s, ¿podrías presentarme a %[1]s (%[4]s en %[3]s)? Creo que podemos " +
		"aportarle valor y una introducción tuya marcaría la diferencia. Te paso un texto breve si te ayuda."
	introInferredBridge = "Hola %[2]s, he visto que tienes relación con el entorno de %[3]s. ¿Conoces a " +
		"%[1]s (%[4]s) o a alguien de su equipo que pueda presentarme?"
	introInferredCold = "Hola %[1]s, te escribo porque trabajamos con empresas como %[3]s en retos " +
		"similares a los vuestros. ¿Te encaja una llamada corta para ver si tiene sentido?"
)

// introMessage renders the suggested first message for a route. Direct and
// bridgeless routes address the target; the rest address the bridge.
func (g *graph) introMessage(t domain.TargetContact, r domain.Route) string {
	target := nameOr(t.Name, "equipo")
	company := g.companyName(t.CompanyID)
	if company == "" {
		company = "tu empresa"
	}
	role := nameOr(t.RoleTitle, "responsable")
	bridge := ""
	if r.BridgeContact != nil {
		bridge = nameOr(r.BridgeContact.Name, "equipo")
	}

	var tmpl string
	switch {
	case r.Type == domain.RouteDirect:
		tmpl = introDirect
	case r.Type == domain.RouteSecondLevel:
		tmpl = introSecondLevel
	case r.BridgeContact != nil:
		tmpl = introInferredBridge
	default:
		tmpl = introInferredCold
	}
	return fmt.Sprintf(tmpl, target, bridge, company, role)
}
