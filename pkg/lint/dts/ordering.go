package dts

import (
	"fmt"
	"log/slog"
	"math/big"

	"github.com/leapstack-labs/dtsstyle/pkg/source"
)

// checkOrder compares m with the previous header at the current depth.
// It must run before m is filed.
func (c *Checker) checkOrder(line source.Line, m Marker) {
	prev, ok := c.tracker.previous()
	if !ok {
		return
	}

	switch {
	case m.Label != "" && prev.Label != "":
		if m.Label < prev.Label {
			c.report(OverrideOrderRule, line)
		}

	case m.UnitAddress != "" && prev.UnitAddress != "":
		cur, err := parseUnitAddress(m.UnitAddress)
		if err != nil {
			c.skipOrder(line, err)
			return
		}
		before, err := parseUnitAddress(prev.UnitAddress)
		if err != nil {
			c.skipOrder(line, err)
			return
		}
		if cur.Cmp(before) < 0 {
			c.report(UnitAddressOrderRule, line)
		}

	case m.NodeName != "" && prev.NodeName != "":
		// Mixed groups such as /cpus put cpu-map after the cpu@N nodes.
		if prev.UnitAddress != "" {
			return
		}
		if m.NodeName < prev.NodeName && c.enforceNameOrder() {
			c.report(NodeNameOrderRule, line)
		}

	default:
		c.report(UnknownOrderRule, line)
	}
}

// enforceNameOrder reports whether node names must be sorted at the current
// depth. Only the two outermost levels are checked, and never the body of a
// label override.
func (c *Checker) enforceNameOrder() bool {
	if c.tracker.depth >= 2 {
		return false
	}
	if parent, ok := c.tracker.parent(); ok && parent.Label != "" {
		return false
	}
	return true
}

func (c *Checker) skipOrder(line source.Line, err error) {
	c.logger.Debug("skipping unit address ordering",
		slog.String("path", c.path),
		slog.Int("line", line.Number),
		slog.String("error", err.Error()))
}

// parseUnitAddress reads a unit address as an unbounded hex number. An
// optional 0x prefix is accepted.
func parseUnitAddress(s string) (*big.Int, error) {
	digits := s
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		digits = s[2:]
	}
	n, ok := new(big.Int).SetString(digits, 16)
	if !ok {
		return nil, fmt.Errorf("unit address %q is not a hex number", s)
	}
	return n, nil
}
