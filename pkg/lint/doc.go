// Package lint holds the shared contracts of the style checker: severities,
// warnings, the rule catalogue and the configuration that enables, disables
// or re-grades rules.
//
// # Rule Registration
//
// Rules are data. Checkers register their catalogue from init functions, so
// importing a checker package is enough to make its rules visible:
//
//	import _ "github.com/leapstack-labs/dtsstyle/pkg/lint/dts"
//
// # Using the Registry
//
//	rules := lint.GetAll()
//	rule, ok := lint.GetByID("WS01")
//	ordering := lint.GetByGroup("ordering")
//
// # Configuration
//
// Use Config to control which rules are reported and at which severity:
//
//	cfg := lint.NewConfig()
//	cfg.Disable("OR03")
//	cfg.SetSeverity("WS01", lint.SeverityError)
//
// # Warnings
//
// Checkers append Warnings to a Sink in the order they find them. A Sink is
// owned by one checker run and is never sorted or deduplicated.
package lint
