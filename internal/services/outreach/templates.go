package outreach

import "bdcompass/internal/domain"

// noSignal is the column used when no relevant signal is present.
const noSignal domain.SignalType = ""

// relevantSignals are the signals that can drive the outbound angle, most
// relevant first.
var relevantSignals = []domain.SignalType{
	domain.SignalHRShortage,
	domain.SignalOperationalChaos,
	domain.SignalManualProcesses,
	domain.SignalHiring,
	domain.SignalCompliance,
}

type hookKey struct {
	role   RoleKind
	signal domain.SignalType
}

// hooks holds the opening line for every role x signal pair, including the
// noSignal column. Placeholders: {company}.
var hooks = map[hookKey]string{
	{RoleCEO, domain.SignalHRShortage}:       "He visto que {company} tiene dificultades para cubrir puestos clave, y eso frena directamente el crecimiento.",
	{RoleCEO, domain.SignalOperationalChaos}: "Parece que {company} está creciendo más rápido que sus procesos internos.",
	{RoleCEO, domain.SignalManualProcesses}:  "En {company} todavía hay procesos manuales que consumen horas de dirección.",
	{RoleCEO, domain.SignalHiring}:           "{company} está contratando con fuerza, y cada incorporación pone a prueba la organización.",
	{RoleCEO, domain.SignalCompliance}:       "Los cambios normativos están poniendo presión sobre {company}.",
	{RoleCEO, noSignal}:                      "Trabajamos con equipos directivos de empresas como {company} para ganar foco y capacidad.",

	{RoleHR, domain.SignalHRShortage}:       "Sé que el equipo de personas de {company} va justo de manos ahora mismo.",
	{RoleHR, domain.SignalOperationalChaos}: "Cuando la operación se complica, RRHH suele ser el primero en notarlo, y en {company} parece que está pasando.",
	{RoleHR, domain.SignalManualProcesses}:  "Gestionar personas con hojas de cálculo en {company} es más caro de lo que parece.",
	{RoleHR, domain.SignalHiring}:           "Con tantas vacantes abiertas en {company}, el proceso de selección necesita escalar.",
	{RoleHR, domain.SignalCompliance}:       "Registro horario, convenios y auditorías: el cumplimiento laboral en {company} no admite errores.",
	{RoleHR, noSignal}:                      "Ayudamos a equipos de personas como el de {company} a quitarse trabajo administrativo.",

	{RoleOperations, domain.SignalHRShortage}:       "La falta de personal en {company} acaba impactando en turnos y entregas.",
	{RoleOperations, domain.SignalOperationalChaos}: "Coordinar turnos, incidencias y equipos en {company} parece estar siendo un reto.",
	{RoleOperations, domain.SignalManualProcesses}:  "Los procesos manuales en la operación de {company} generan errores y retrasos.",
	{RoleOperations, domain.SignalHiring}:           "Incorporar a tanta gente en {company} complica la planificación operativa.",
	{RoleOperations, domain.SignalCompliance}:       "Demostrar cumplimiento en la operación diaria de {company} exige trazabilidad.",
	{RoleOperations, noSignal}:                      "Trabajamos con responsables de operaciones de empresas como {company} para ganar visibilidad.",

	{RoleFinance, domain.SignalHRShortage}:       "Cada puesto sin cubrir en {company} tiene un coste que rara vez se mide.",
	{RoleFinance, domain.SignalOperationalChaos}: "El desorden operativo en {company} suele traducirse en horas extra y sobrecostes.",
	{RoleFinance, domain.SignalManualProcesses}:  "Los procesos manuales en {company} se comen horas que acaban en la cuenta de resultados.",
	{RoleFinance, domain.SignalHiring}:           "Con el ritmo de contratación de {company}, controlar el coste de personal es clave.",
	{RoleFinance, domain.SignalCompliance}:       "Una sanción por incumplimiento puede costar a {company} mucho más que prevenirla.",
	{RoleFinance, noSignal}:                      "Ayudamos a equipos financieros como el de {company} a controlar el coste de personal.",

	{RoleOther, domain.SignalHRShortage}:       "He visto que {company} está teniendo problemas para cubrir puestos.",
	{RoleOther, domain.SignalOperationalChaos}: "Parece que en {company} el día a día se ha vuelto difícil de coordinar.",
	{RoleOther, domain.SignalManualProcesses}:  "En {company} aún se hacen a mano tareas que podrían automatizarse.",
	{RoleOther, domain.SignalHiring}:           "{company} está ampliando su equipo a buen ritmo.",
	{RoleOther, domain.SignalCompliance}:       "{company} tiene por delante retos de cumplimiento normativo.",
	{RoleOther, noSignal}:                      "Trabajamos con empresas como {company} para simplificar la gestión de equipos.",
}

var valueProp = map[RoleKind]string{
	RoleCEO:        "Nuestros clientes recuperan tiempo de dirección y ganan visibilidad sobre su equipo en semanas, no en meses.",
	RoleHR:         "Automatizamos fichajes, ausencias y documentación para que el equipo de personas se centre en las personas.",
	RoleOperations: "Centralizamos turnos, incidencias y comunicación para que la operación funcione sin sobresaltos.",
	RoleFinance:    "Conectamos la gestión de personal con los costes reales para decidir con datos.",
	RoleOther:      "Centralizamos la gestión de personas y operaciones en una sola herramienta fácil de adoptar.",
}

var callToAction = map[RoleKind]string{
	RoleCEO:        "¿Te parece si lo vemos en 15 minutos esta semana?",
	RoleHR:         "¿Te enseño en 20 minutos cómo lo resuelven otros equipos de RRHH?",
	RoleOperations: "¿Agendamos una demo corta centrada en vuestra operación?",
	RoleFinance:    "¿Te comparto un cálculo rápido del ahorro estimado?",
	RoleOther:      "¿Quién sería la mejor persona para hablar de esto en vuestra empresa?",
}

var reasonBySignal = map[domain.SignalType]string{
	domain.SignalHRShortage:       "La falta de personal ya está afectando al servicio y cada semana sin resolverlo tiene coste.",
	domain.SignalHiring:           "Estáis contratando ahora: es el momento de ordenar procesos antes de que el equipo crezca más.",
	domain.SignalCompliance:       "Hay riesgos de cumplimiento abiertos y las inspecciones no avisan.",
	domain.SignalOperationalChaos: "El desorden operativo crece con cada nuevo turno y cada nueva persona.",
	domain.SignalManualProcesses:  "Cada mes con procesos manuales son horas perdidas que no se recuperan.",
	domain.SignalGrowth:           "El crecimiento actual multiplica la carga de gestión, así que conviene anticiparse.",
	domain.SignalExpansion:        "Abrir nuevas ubicaciones es el momento natural para estandarizar procesos.",
}

var reasonBySize = map[domain.Size]string{
	domain.SizeStartup:    "En esta fase, sentar buenas bases ahora evita rehacer procesos dentro de un año.",
	domain.SizeSmall:      "Con un equipo pequeño, cada hora administrativa ahorrada se nota de inmediato.",
	domain.SizeMedium:     "A este tamaño los procesos informales empiezan a romperse.",
	domain.SizeLarge:      "Con equipos grandes, las pequeñas ineficiencias se multiplican por cientos de personas.",
	domain.SizeEnterprise: "A escala corporativa, estandarizar procesos reduce riesgo y coste.",
	domain.SizeUnknown:    "Es buen momento para revisar cómo gestionáis hoy a vuestro equipo.",
}

// Audience is the recipient of a follow-up.
type Audience string

const (
	AudienceBridge   Audience = "bridge_contact"
	AudienceProspect Audience = "prospect"
	AudienceOutbound Audience = "outbound"
)

var Audiences = []Audience{AudienceBridge, AudienceProspect, AudienceOutbound}

type followUpKey struct {
	audience Audience
	tone     Tone
}

// followUps covers every audience x tone pair. Placeholders: {hola},
// {prospect}, {company}.
var followUps = map[followUpKey]string{
	{AudienceBridge, ToneGentle}:       "{hola} solo quería confirmar que te llegó mi mensaje sobre {prospect} de {company}. Sin prisa, cuando puedas.",
	{AudienceBridge, ToneFriendly}:     "{hola} ¿has tenido ocasión de ver lo de la introducción a {prospect}? Si te ayuda, te paso un texto ya redactado.",
	{AudienceBridge, ToneReminder}:     "{hola} te escribo de nuevo por la introducción a {prospect} en {company}. Entiendo que estás a tope; si no es buen momento, dímelo sin problema.",
	{AudienceBridge, ToneReengagement}: "{hola} hace unas semanas te pedí una introducción a {prospect}. ¿Sigue teniendo sentido o prefieres que busque otra vía en {company}?",
	{AudienceBridge, ToneClosure}:      "{hola} cierro el hilo sobre la introducción a {prospect} para no insistir más. Gracias igualmente, aquí me tienes para lo que necesites.",

	{AudienceProspect, ToneGentle}:       "{hola} te escribí hace poco sobre cómo ayudamos a equipos como el de {company}. ¿Te encaja hablarlo?",
	{AudienceProspect, ToneFriendly}:     "{hola} retomo mi mensaje anterior: creo que podemos ahorrar tiempo a {company} en la gestión del equipo. ¿Te va bien una llamada corta?",
	{AudienceProspect, ToneReminder}:     "{hola} sé que tu agenda está llena. Te dejo un caso de una empresa similar a {company} por si te resulta útil.",
	{AudienceProspect, ToneReengagement}: "{hola} ha pasado un tiempo desde mi último mensaje. ¿Han cambiado las prioridades en {company}? Me encantaría retomarlo.",
	{AudienceProspect, ToneClosure}:      "{hola} no quiero saturar tu bandeja, así que este será mi último mensaje. Si en algún momento {company} lo retoma, aquí estaré.",

	{AudienceOutbound, ToneGentle}:       "{hola} te dejo un recordatorio rápido de mi mensaje sobre {company}.",
	{AudienceOutbound, ToneFriendly}:     "{hola} vuelvo a escribirte por si mi mensaje anterior se perdió. ¿Te interesa ver cómo lo hacen empresas parecidas a {company}?",
	{AudienceOutbound, ToneReminder}:     "{hola} un último dato: nuestros clientes recuperan varias horas por semana. ¿Lo vemos para {company}?",
	{AudienceOutbound, ToneReengagement}: "{hola} han pasado unas semanas. Si la gestión del equipo sigue siendo un reto en {company}, sigo disponible.",
	{AudienceOutbound, ToneClosure}:      "{hola} doy por cerrado este hilo. Si más adelante {company} quiere explorarlo, estaré encantado de ayudar.",
}
