package outreach

import (
	"bytes"
	"encoding/json"
	"strings"

	"bdcompass/internal/matching"
)

// RoleKind is the closed set of buyer personas the templates are written for.
type RoleKind string

const (
	RoleCEO        RoleKind = "ceo"
	RoleHR         RoleKind = "hr"
	RoleOperations RoleKind = "operations"
	RoleFinance    RoleKind = "finance"
	RoleOther      RoleKind = "other"
)

var RoleKinds = []RoleKind{RoleCEO, RoleHR, RoleOperations, RoleFinance, RoleOther}

type roleKeywords struct {
	kind     RoleKind
	keywords []string
}

// RoleTable is matched in order against the normalized title; extend it to
// teach the classifier new titles.
var RoleTable = []roleKeywords{
	{RoleHR, []string{"hr", "rrhh", "human resources", "recursos humanos", "people", "talent", "talento", "recruiting", "recruiter", "reclutamiento", "seleccion", "personas"}},
	{RoleFinance, []string{"cfo", "finance", "finanzas", "financiero", "financiera", "controller", "accounting", "contabilidad", "tesoreria", "treasury"}},
	{RoleOperations, []string{"coo", "operations", "operaciones", "ops", "logistics", "logistica", "supply chain", "produccion", "production", "plant", "planta"}},
	{RoleCEO, []string{"ceo", "founder", "cofounder", "co founder", "fundador", "fundadora", "cofundador", "owner", "propietario", "managing director", "director general", "directora general", "general manager", "gerente general", "president", "presidente", "chief executive"}},
}

var executiveSeniority = []string{"c level", "owner", "founder", "executive"}

// ClassifyRole maps a free-text title (and optional seniority) to a RoleKind.
// Titles without a known keyword fall back to ceo for executive seniority and
// to other otherwise.
func ClassifyRole(title, seniority string) RoleKind {
	text := " " + matching.Normalize(title) + " "
	for _, row := range RoleTable {
		for _, kw := range row.keywords {
			if strings.Contains(text, " "+kw+" ") {
				return row.kind
			}
		}
	}
	sen := " " + matching.Normalize(seniority) + " "
	for _, kw := range executiveSeniority {
		if strings.Contains(sen, " "+kw+" ") {
			return RoleCEO
		}
	}
	return RoleOther
}

// Role is accepted either as a bare title string or as {title, seniority}.
type Role struct {
	Title     string `json:"title"`
	Seniority string `json:"seniority,omitempty"`
}

func (r *Role) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.Title)
	}
	type plain Role
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = Role(p)
	return nil
}

func (r Role) Kind() RoleKind { return ClassifyRole(r.Title, r.Seniority) }
