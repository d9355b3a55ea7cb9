package dts

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dtsstyle/internal/testutil"
	"github.com/leapstack-labs/dtsstyle/pkg/lint"
)

// finding is a warning reduced to what the tests compare.
type finding struct {
	Message string
	Line    int
}

func checkString(t *testing.T, src string, opts ...Option) []lint.Warning {
	t.Helper()
	opts = append([]Option{WithLogger(testutil.NewTestLogger(t))}, opts...)
	c, err := New("test.dts", opts...)
	require.NoError(t, err)
	require.NoError(t, c.CheckReader(context.Background(), strings.NewReader(src)))
	return c.Warnings()
}

func findings(warnings []lint.Warning) []finding {
	out := make([]finding, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, finding{Message: w.Message, Line: w.Line})
	}
	return out
}

func TestChecker_NodeNameFixture(t *testing.T) {
	c, err := New(filepath.Join("testdata", "nodename.dts"))
	require.NoError(t, err)
	require.NoError(t, c.Check(context.Background()))

	expected := []struct {
		message string
		text    string
		line    int
	}{
		{"Whitespace error", "\tinterrupt-controller-3  {", 10},
		{"Whitespace error", "\tintc_4: interrupt-controller-4  {", 12},
		{"Label: use underscores instead of hyphens", "\tintc-5: interrupt-controller-5  {", 14},
		{"Whitespace error", "\tintc-5: interrupt-controller-5  {", 14},
		{"Whitespace error", "\tintc_6:  interrupt-controller-6 {", 16},
		{"Whitespace error", "\tintc_7:interrupt_controller-7 {", 18},
		{"Node name: use hyphens instead of underscores", "\tintc_7:interrupt_controller-7 {", 18},
		{"Label: only lowercase letters", "\tintC_8: interrupt-controller-8 {", 20},
		{"Node name: only lowercase letters", "\tintc_9: interrupt-controlleR-9 {", 22},
		{"Node name: only lowercase letters", "\tinterrupt-controlleR-10 {", 24},
		{"Whitespace error", "\tinterrupt-controller@3  {", 30},
		{"Whitespace error", "\tintc_4_2: interrupt-controller@4  {", 32},
		{"Label: use underscores instead of hyphens", "\tintc-5_2: interrupt-controller@5  {", 34},
		{"Whitespace error", "\tintc-5_2: interrupt-controller@5  {", 34},
		{"Whitespace error", "\tintc_6_2:  interrupt-controller@6 {", 36},
		{"Whitespace error", "\tintc_7_2:interrupt_controller@7 {", 38},
		{"Node name: use hyphens instead of underscores", "\tintc_7_2:interrupt_controller@7 {", 38},
		{"Label: only lowercase letters", "\tintC_8_2: interrupt-controller@8 {", 40},
		{"Node name: only lowercase letters", "\tintc_9_2: interrupt-controlleR@9 {", 42},
		{`Unit address: avoid leading "0"`, "\tinterrupt-controller@0a {", 44},
	}

	got := c.Warnings()
	require.Len(t, got, len(expected))
	for i, want := range expected {
		assert.Equal(t, want.message, got[i].Message, "warning %d", i)
		assert.Equal(t, want.text, got[i].Text, "warning %d", i)
		assert.Equal(t, want.line, got[i].Line, "warning %d", i)
	}
}

func TestChecker_Whitespace(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		count int
	}{
		{"clean node", "node {", 0},
		{"clean labelled node", "lbl: node@1 {", 0},
		{"two spaces before brace", "node  {", 1},
		{"no space before brace", "node{", 1},
		{"tab before brace", "node\t{", 1},
		{"trailing space after brace", "node { ", 1},
		{"no space after label", "lbl:node {", 1},
		{"two spaces after label", "lbl:  node {", 1},
		{"label and brace spacing", "lbl:node  {", 2},
		{"clean override", "&uart0 {", 0},
		{"indented override", "\t&uart0 {", 1},
		{"override without space", "&uart0{", 1},
		{"override with trailing tab", "&uart0 {\t", 1},
		{"clean root", "/ {", 0},
		{"root without space", "/{", 1},
		{"indented root", " / {", 1},
		{"crlf line ending", "node {\r", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := checkString(t, tt.line+"\n")
			count := 0
			for _, w := range warnings {
				if w.RuleID == WhitespaceRule.ID {
					count++
				}
			}
			assert.Equal(t, tt.count, count)
		})
	}
}

func TestChecker_Casing(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"uppercase label", "Uart0: serial {", []string{LabelCaseRule.Message}},
		{"uppercase node name", "Serial {", []string{NodeNameCaseRule.Message}},
		{"uppercase override", "&UART0 {", []string{LabelCaseRule.Message}},
		{"several uppercase letters count once", "SERIAL {", []string{NodeNameCaseRule.Message}},
		{"hyphen in label", "uart-0: serial {", []string{LabelHyphenRule.Message}},
		{"hyphen in override", "&uart-0 {", []string{LabelHyphenRule.Message}},
		{"underscore in node name", "serial_port {", []string{NodeNameUnderscoreRule.Message}},
		{"underscore in label is fine", "uart_0: serial {", nil},
		{"hyphen in node name is fine", "serial-port {", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, w := range checkString(t, tt.line+"\n") {
				got = append(got, w.Message)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChecker_UnitAddress(t *testing.T) {
	tests := []struct {
		addr string
		want []string
	}{
		{"0", nil},
		{"1000", nil},
		{"fe001000", nil},
		{"0a", []string{UnitAddressLeadingZeroRule.Message}},
		{"00", []string{UnitAddressLeadingZeroRule.Message}},
		{"0001f", []string{UnitAddressLeadingZeroRule.Message}},
		{"FE00", []string{UnitAddressCaseRule.Message}},
		{"0A", []string{UnitAddressCaseRule.Message}},
		{"0x1000", []string{UnitAddressPrefixRule.Message}},
		{"0X1a", []string{UnitAddressPrefixRule.Message}},
		{"0xAB", []string{UnitAddressCaseRule.Message, UnitAddressPrefixRule.Message}},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			var got []string
			for _, w := range checkString(t, "node@"+tt.addr+" {\n") {
				got = append(got, w.Message)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChecker_RuleOrderOnOneLine(t *testing.T) {
	warnings := checkString(t, "Lbl-1:Node_A@0X0B  {\n")

	assert.Equal(t, []string{
		WhitespaceRule.ID,
		LabelHyphenRule.ID,
		LabelCaseRule.ID,
		WhitespaceRule.ID,
		NodeNameUnderscoreRule.ID,
		NodeNameCaseRule.ID,
		UnitAddressCaseRule.ID,
		UnitAddressPrefixRule.ID,
	}, ruleIDs(warnings))
}

func TestChecker_IgnoresOtherLines(t *testing.T) {
	src := `/dts-v1/;
#include <dt-bindings/gpio/gpio.h>

/ {
	model = "Board";
	compatible = "vendor,board";

	chosen {
		stdout-path = "serial0:115200n8";
	};
};
`
	assert.Empty(t, checkString(t, src))
}

func TestChecker_CRLFSource(t *testing.T) {
	src := "/ {\r\n\tchosen {\r\n\t};\r\n\tcpus {\r\n\t};\r\n};\r\n&uart0 {\r\n};\r\n"
	assert.Empty(t, checkString(t, src))

	warnings := checkString(t, "/ {\r\n\tb {\r\n\t};\r\n\ta {\r\n\t};\r\n};\r\n")
	require.Len(t, warnings, 1)
	assert.Equal(t, "\ta {", warnings[0].Text)
	assert.Equal(t, 4, warnings[0].Line)
}

func TestChecker_CheckTwiceIsStable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.dts")
	src := "&b {\n};\n&a {\n};\nnode@10 {\n};\nnode@5 {\n};\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0600))

	c, err := New(path)
	require.NoError(t, err)

	require.NoError(t, c.Check(context.Background()))
	first := c.Warnings()
	require.NoError(t, c.Check(context.Background()))
	second := c.Warnings()

	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestNew_RejectsPatchFiles(t *testing.T) {
	for _, name := range []string{"fix.patch", "board.dts.diff", "dir/0001-x.patch"} {
		t.Run(name, func(t *testing.T) {
			c, err := New(name)
			assert.Nil(t, c)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrPatchFile))
		})
	}
}

func TestNew_DoesNotOpenFile(t *testing.T) {
	c, err := New(filepath.Join(t.TempDir(), "missing.dts"))
	require.NoError(t, err)

	err = c.Check(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestChecker_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c, err := New("test.dts")
	require.NoError(t, err)
	err = c.CheckReader(ctx, strings.NewReader("node {\n};\n"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestChecker_WithConfig(t *testing.T) {
	cfg := lint.NewConfig().
		Disable(WhitespaceRule.ID).
		SetSeverity(NodeNameCaseRule.ID, lint.SeverityError)

	warnings := checkString(t, "Node  {\n", WithConfig(cfg))

	require.Len(t, warnings, 1)
	assert.Equal(t, NodeNameCaseRule.ID, warnings[0].RuleID)
	assert.Equal(t, lint.SeverityError, warnings[0].Severity)
}

func TestChecker_DisabledRuleKeepsTracking(t *testing.T) {
	cfg := lint.NewConfig().Disable(NodeNameOrderRule.ID)

	warnings := checkString(t, "b {\n};\na {\n};\n&y {\n};\n&x {\n};\n", WithConfig(cfg))

	assert.Equal(t, []finding{
		{UnknownOrderRule.Message, 5},
		{OverrideOrderRule.Message, 7},
	}, findings(warnings))
}

func TestRules_Registered(t *testing.T) {
	seen := make(map[string]bool)
	for _, r := range Rules() {
		assert.False(t, seen[r.ID], "duplicate rule ID %s", r.ID)
		seen[r.ID] = true

		registered, ok := lint.GetByID(r.ID)
		require.True(t, ok, "rule %s not registered", r.ID)
		assert.Equal(t, r.Message, registered.Message)
		assert.NotEmpty(t, r.Description)
		assert.NotEmpty(t, r.Group)
	}
}

func ruleIDs(warnings []lint.Warning) []string {
	ids := make([]string, 0, len(warnings))
	for _, w := range warnings {
		ids = append(ids, w.RuleID)
	}
	return ids
}
