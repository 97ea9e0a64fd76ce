package scorer

import "bdcompass/internal/domain"

const (
	industryBase  = 50
	noSignalScore = 30
	signalFloor   = 30.0
	signalSpan    = 70.0
	noBridgeScore = 20

	// percentages, so blends round exactly in integer arithmetic
	baseBlendPct     = 60
	confBlendPct     = 40
	pctIndustryFit   = 30
	pctBuyingSignal  = 40
	pctIntroStrength = 30
)

var sizeAdjustment = map[domain.Size]int{
	domain.SizeStartup:    25,
	domain.SizeSmall:      25,
	domain.SizeMedium:     15,
	domain.SizeLarge:      -10,
	domain.SizeEnterprise: -20,
}

type industryRule struct {
	keyword    string
	adjustment int
}

// industryRules is evaluated top to bottom and the first keyword found in
// the normalized industry wins: high fit shadows low, and low shadows medium.
var industryRules = []industryRule{
	// high fit
	{"retail", 20},
	{"hospitality", 20},
	{"hosteleria", 20},
	{"restaura", 20},
	{"hotel", 20},
	{"manufactur", 20},
	{"logistic", 20},
	{"logistica", 20},
	{"transport", 20},
	{"healthcare", 20},
	{"health", 20},
	{"salud", 20},
	{"education", 20},
	{"educacion", 20},
	{"construction", 20},
	{"construccion", 20},
	// low fit
	{"banking", -15},
	{"banca", -15},
	{"bank", -15},
	{"government", -15},
	{"gobierno", -15},
	{"public sector", -15},
	{"sector publico", -15},
	// medium fit
	{"tech", 10},
	{"tecnologia", 10},
	{"software", 10},
	{"saas", 10},
	{"consulting", 10},
	{"consultoria", 10},
	{"marketing", 10},
	{"finance", 10},
	{"finanzas", 10},
}

var signalWeight = map[domain.SignalType]float64{
	domain.SignalHRShortage:       30,
	domain.SignalHiring:           25,
	domain.SignalCompliance:       25,
	domain.SignalOperationalChaos: 20,
	domain.SignalManualProcesses:  20,
	domain.SignalGrowth:           15,
	domain.SignalExpansion:        15,
}

const defaultSignalWeight = 10.0

var strengthMultiplier = map[domain.SignalStrength]float64{
	domain.StrengthHigh:   1.0,
	domain.StrengthMedium: 0.7,
	domain.StrengthLow:    0.4,
}

const defaultStrengthMultiplier = 0.7

var routeBase = map[domain.RouteType]int{
	domain.RouteDirect:      90,
	domain.RouteSecondLevel: 70,
	domain.RouteInferred:    40,
}

type roleBonus struct {
	keywords []string
	bonus    int
}

// bridgeRoleBonuses is checked in order; the first group with a matching
// keyword in the bridge's title or seniority applies.
var bridgeRoleBonuses = []roleBonus{
	{[]string{"hr", "rrhh", "human resources", "recursos humanos", "people", "talent", "talento"}, 10},
	{[]string{"ceo", "cto", "cfo", "coo", "cmo", "chief", "founder", "cofounder", "fundador", "owner", "c level", "president", "presidente"}, 8},
	{[]string{"director", "directora", "head", "vp", "vice president", "senior", "lead", "gerente"}, 5},
}

type connectivityBonus struct {
	minConnections int
	bonus          int
}

var connectivityBonuses = []connectivityBonus{
	{10, 5},
	{5, 3},
}
