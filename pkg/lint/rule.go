package lint

// RuleDef is a data-driven rule definition.
// The checker that owns a rule decides when it fires; the definition carries
// the message and metadata used for reporting and documentation.
type RuleDef struct {
	ID          string   `json:"id"`               // Unique identifier, e.g., "WS01"
	Name        string   `json:"name"`             // Human-readable name, e.g., "whitespace.header"
	Group       string   `json:"group"`            // Category, e.g., "whitespace", "ordering"
	Description string   `json:"description"`      // Human-readable description
	Message     string   `json:"message"`          // Text of the reported warning
	Severity    Severity `json:"default_severity"` // Default severity

	// Documentation fields for richer rule documentation
	Rationale   string `json:"rationale,omitempty"`
	BadExample  string `json:"bad_example,omitempty"`
	GoodExample string `json:"good_example,omitempty"`
}

// Warning builds a warning for this rule at the given source line.
// The severity is the rule default; Config.Apply may override it.
func (r RuleDef) Warning(text string, line int) Warning {
	return Warning{
		RuleID:   r.ID,
		Severity: r.Severity,
		Message:  r.Message,
		Text:     text,
		Line:     line,
	}
}
