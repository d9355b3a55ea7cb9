package lint

// Sink accumulates warnings in emission order.
// It has no side effects; printing is left to the caller.
type Sink struct {
	config   *Config
	warnings []Warning
}

// NewSink returns a sink that filters warnings through config.
// A nil config keeps every warning at its default severity.
func NewSink(config *Config) *Sink {
	return &Sink{config: config}
}

// Add records a warning unless its rule is disabled.
func (s *Sink) Add(w Warning) {
	w, ok := s.config.Apply(w)
	if !ok {
		return
	}
	s.warnings = append(s.warnings, w)
}

// Warnings returns a copy of the recorded warnings.
func (s *Sink) Warnings() []Warning {
	out := make([]Warning, len(s.warnings))
	copy(out, s.warnings)
	return out
}

// Len returns the number of recorded warnings.
func (s *Sink) Len() int {
	return len(s.warnings)
}

// Reset drops all recorded warnings.
func (s *Sink) Reset() {
	s.warnings = s.warnings[:0]
}

// CountBySeverity returns how many warnings were recorded at each severity.
func (s *Sink) CountBySeverity() map[Severity]int {
	counts := make(map[Severity]int)
	for _, w := range s.warnings {
		counts[w.Severity]++
	}
	return counts
}
