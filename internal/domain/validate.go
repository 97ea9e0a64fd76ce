package domain

import "fmt"

// ValidationError reports a missing or malformed required field at the
// boundary. Core services assume validated input and never return it.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func missing(field string) error {
	return &ValidationError{Field: field, Reason: "required"}
}

func (c Company) Validate() error {
	if c.ID == "" {
		return missing("company.id")
	}
	if c.Name == "" {
		return missing("company.name")
	}
	return nil
}

func (c Contact) Validate() error {
	if c.ID == "" {
		return missing("contact.id")
	}
	return nil
}

func (t TargetContact) Validate() error {
	switch {
	case t.ID == "":
		return missing("target.id")
	case t.RoleTitle == "":
		return missing("target.role_title")
	case t.Seniority == "":
		return missing("target.seniority")
	case t.CompanyID == "":
		return missing("target.company_id")
	}
	return nil
}

func (s BuyingSignal) Validate() error {
	known := false
	for _, t := range SignalTypes {
		if s.Type == t {
			known = true
			break
		}
	}
	if !known {
		return &ValidationError{Field: "signal.type", Reason: fmt.Sprintf("unknown type %q", s.Type)}
	}
	switch s.Strength {
	case "", StrengthLow, StrengthMedium, StrengthHigh:
		return nil
	}
	return &ValidationError{Field: "signal.strength", Reason: fmt.Sprintf("unknown strength %q", s.Strength)}
}

func (a WeeklyActivity) Validate() error {
	counters := []struct {
		name string
		v    int
	}{
		{"intros_generated", a.IntrosGenerated},
		{"intros_requested", a.IntrosRequested},
		{"responses", a.Responses},
		{"outbound_suggested", a.OutboundSuggested},
		{"outbound_executed", a.OutboundExecuted},
		{"wins", a.Wins},
		{"losses", a.Losses},
		{"opportunities_created", a.OpportunitiesCreated},
	}
	for _, c := range counters {
		if c.v < 0 {
			return &ValidationError{Field: c.name, Reason: "must be non-negative"}
		}
	}
	for _, ind := range a.Industries {
		if ind.Opportunities < 0 || ind.Wins < 0 {
			return &ValidationError{Field: "industries." + ind.Industry, Reason: "must be non-negative"}
		}
	}
	return nil
}

// Validate checks every record of a routing request.
func (in AnalysisInput) Validate() error {
	for _, c := range in.Companies {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	for _, c := range in.Contacts {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	for _, t := range in.Targets {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	for _, sigs := range in.Signals {
		for _, s := range sigs {
			if err := s.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}
