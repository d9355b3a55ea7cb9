package dts

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/dtsstyle/pkg/source"
)

// leadingZeroRe matches a zero followed by more lowercase hex digits; a bare
// "0" is fine.
var leadingZeroRe = regexp.MustCompile(`^0[0-9a-f]+$`)

func hasUpper(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool {
		return r >= 'A' && r <= 'Z'
	})
}

func (c *Checker) checkLabelName(line source.Line, label string) {
	if strings.Contains(label, "-") {
		c.report(LabelHyphenRule, line)
	}
	if hasUpper(label) {
		c.report(LabelCaseRule, line)
	}
}

func (c *Checker) checkNodeName(line source.Line, name string) {
	if strings.Contains(name, "_") {
		c.report(NodeNameUnderscoreRule, line)
	}
	if hasUpper(name) {
		c.report(NodeNameCaseRule, line)
	}
}

func (c *Checker) checkUnitAddress(line source.Line, addr string) {
	if strings.ContainsAny(addr, "ABCDEF") {
		c.report(UnitAddressCaseRule, line)
	}
	if strings.ContainsAny(addr, "xX") {
		c.report(UnitAddressPrefixRule, line)
	}
	if leadingZeroRe.MatchString(addr) {
		c.report(UnitAddressLeadingZeroRule, line)
	}
}
