package dts

import "github.com/leapstack-labs/dtsstyle/pkg/lint"

// Rule groups.
const (
	GroupWhitespace  = "whitespace"
	GroupLabel       = "label"
	GroupNodeName    = "node-name"
	GroupUnitAddress = "unit-address"
	GroupOrdering    = "ordering"
	GroupNesting     = "nesting"
)

// WhitespaceRule flags irregular spacing around a node or label header.
var WhitespaceRule = lint.RuleDef{
	ID:          "WS01",
	Name:        "whitespace.header",
	Group:       GroupWhitespace,
	Description: "Node and label headers use single spaces and nothing follows the opening brace",
	Message:     "Whitespace error",
	Severity:    lint.SeverityWarning,
	Rationale:   "Uniform header spacing keeps sources greppable and diffs minimal.",
	BadExample:  "uart0:serial@1000  {",
	GoodExample: "uart0: serial@1000 {",
}

// LabelHyphenRule flags hyphens in labels.
var LabelHyphenRule = lint.RuleDef{
	ID:          "LB01",
	Name:        "label.underscores",
	Group:       GroupLabel,
	Description: "Labels use underscores, not hyphens",
	Message:     "Label: use underscores instead of hyphens",
	Severity:    lint.SeverityWarning,
	BadExample:  "intc-0: interrupt-controller@0 {",
	GoodExample: "intc_0: interrupt-controller@0 {",
}

// LabelCaseRule flags uppercase letters in labels.
var LabelCaseRule = lint.RuleDef{
	ID:          "LB02",
	Name:        "label.lowercase",
	Group:       GroupLabel,
	Description: "Labels use only lowercase letters",
	Message:     "Label: only lowercase letters",
	Severity:    lint.SeverityWarning,
	BadExample:  "intC: interrupt-controller@0 {",
	GoodExample: "intc: interrupt-controller@0 {",
}

// NodeNameUnderscoreRule flags underscores in node names.
var NodeNameUnderscoreRule = lint.RuleDef{
	ID:          "NN01",
	Name:        "node-name.hyphens",
	Group:       GroupNodeName,
	Description: "Node names use hyphens, not underscores",
	Message:     "Node name: use hyphens instead of underscores",
	Severity:    lint.SeverityWarning,
	BadExample:  "interrupt_controller@0 {",
	GoodExample: "interrupt-controller@0 {",
}

// NodeNameCaseRule flags uppercase letters in node names.
var NodeNameCaseRule = lint.RuleDef{
	ID:          "NN02",
	Name:        "node-name.lowercase",
	Group:       GroupNodeName,
	Description: "Node names use only lowercase letters",
	Message:     "Node name: only lowercase letters",
	Severity:    lint.SeverityWarning,
	BadExample:  "Serial@1000 {",
	GoodExample: "serial@1000 {",
}

// UnitAddressCaseRule flags uppercase hex digits in unit addresses.
var UnitAddressCaseRule = lint.RuleDef{
	ID:          "UA01",
	Name:        "unit-address.lowercase-hex",
	Group:       GroupUnitAddress,
	Description: "Unit addresses use lowercase hex digits",
	Message:     "Unit address: only lowercase hex",
	Severity:    lint.SeverityWarning,
	BadExample:  "serial@FE001000 {",
	GoodExample: "serial@fe001000 {",
}

// UnitAddressPrefixRule flags a "0x" prefix in unit addresses.
var UnitAddressPrefixRule = lint.RuleDef{
	ID:          "UA02",
	Name:        "unit-address.no-hex-prefix",
	Group:       GroupUnitAddress,
	Description: "Unit addresses are written without a 0x prefix",
	Message:     `Unit address: avoid "0x"`,
	Severity:    lint.SeverityWarning,
	BadExample:  "memory@0x80000000 {",
	GoodExample: "memory@80000000 {",
}

// UnitAddressLeadingZeroRule flags zero-padded unit addresses.
var UnitAddressLeadingZeroRule = lint.RuleDef{
	ID:          "UA03",
	Name:        "unit-address.no-leading-zero",
	Group:       GroupUnitAddress,
	Description: "Unit addresses have no leading zeros",
	Message:     `Unit address: avoid leading "0"`,
	Severity:    lint.SeverityWarning,
	BadExample:  "interrupt-controller@0a {",
	GoodExample: "interrupt-controller@a {",
}

// OverrideOrderRule flags label overrides that are not sorted by label.
var OverrideOrderRule = lint.RuleDef{
	ID:          "OR01",
	Name:        "ordering.overrides",
	Group:       GroupOrdering,
	Description: "Sibling label overrides are sorted alphanumerically",
	Message:     "Node overrides do not look sorted alphanumerically",
	Severity:    lint.SeverityWarning,
	BadExample:  "&uart0 { };\n&i2c1 { };",
	GoodExample: "&i2c1 { };\n&uart0 { };",
}

// UnitAddressOrderRule flags siblings that are not sorted by unit address.
var UnitAddressOrderRule = lint.RuleDef{
	ID:          "OR02",
	Name:        "ordering.unit-address",
	Group:       GroupOrdering,
	Description: "Sibling nodes with unit addresses are sorted by address",
	Message:     "Nodes do not look sorted by unit address",
	Severity:    lint.SeverityWarning,
	Rationale:   "Addresses are compared as hex numbers, so 10 sorts after 9.",
	BadExample:  "serial@10 { };\nserial@5 { };",
	GoodExample: "serial@5 { };\nserial@10 { };",
}

// NodeNameOrderRule flags top-level siblings that are not sorted by name.
var NodeNameOrderRule = lint.RuleDef{
	ID:          "OR03",
	Name:        "ordering.node-name",
	Group:       GroupOrdering,
	Description: "Sibling nodes without unit addresses are sorted by name",
	Message:     "Nodes do not look sorted alphanumerically",
	Severity:    lint.SeverityWarning,
	Rationale: "Only enforced for the two outermost levels outside of label overrides; " +
		"children of devices such as pin muxes or thermal trips follow their own order. " +
		"Names compare byte-wise, so \"-10\" sorts before \"-9\".",
	BadExample:  "thermal-zones { };\ncpus { };",
	GoodExample: "cpus { };\nthermal-zones { };",
}

// UnknownOrderRule flags sibling pairs whose shapes cannot be compared.
var UnknownOrderRule = lint.RuleDef{
	ID:          "OR04",
	Name:        "ordering.unknown",
	Group:       GroupOrdering,
	Description: "Sibling headers of different shapes (label override next to a named node)",
	Message:     "Dunno how to handle this yet",
	Severity:    lint.SeverityWarning,
	BadExample:  "&uart0 { };\nchosen { };",
}

// UnbalancedCloseRule flags a block close with no open block.
var UnbalancedCloseRule = lint.RuleDef{
	ID:          "NS01",
	Name:        "nesting.unbalanced-close",
	Group:       GroupNesting,
	Description: "Every \"};\" closes a block opened earlier in the file",
	Message:     "Unbalanced closing brace",
	Severity:    lint.SeverityError,
	Rationale:   "Lines that open and close a block on the same line count as an open only.",
}

// Rules returns the rule catalogue of the checker.
func Rules() []lint.RuleDef {
	return []lint.RuleDef{
		WhitespaceRule,
		LabelHyphenRule,
		LabelCaseRule,
		NodeNameUnderscoreRule,
		NodeNameCaseRule,
		UnitAddressCaseRule,
		UnitAddressPrefixRule,
		UnitAddressLeadingZeroRule,
		OverrideOrderRule,
		UnitAddressOrderRule,
		NodeNameOrderRule,
		UnknownOrderRule,
		UnbalancedCloseRule,
	}
}

func init() {
	for _, r := range Rules() {
		lint.Register(r)
	}
}
