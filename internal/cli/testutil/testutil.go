// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/dtsstyle/internal/cli/output"
	"github.com/leapstack-labs/dtsstyle/internal/testutil"
)

// CleanBoard is a source without style issues.
const CleanBoard = `/dts-v1/;

/ {
	model = "Example board";

	memory@80000000 {
		reg = <0x80000000 0x10000000>;
	};

	soc {
		gpio@1000 {
		};

		uart@2000 {
		};
	};
};
`

// MessyBoard is a source with two issues: a hyphenated label on line 3 and
// an underscore in a node name on line 6.
const MessyBoard = `/dts-v1/;

uart-0: serial@1000 {
};

bad_node {
};
`

// SetupTestProject creates a temporary tree of Devicetree sources:
//
//	boards/clean.dts     no issues
//	boards/messy.dts     two issues
//	include/soc.dtsi     no issues
//	README.md            not a source
func SetupTestProject(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{
		filepath.Join("boards", "clean.dts"): CleanBoard,
		filepath.Join("boards", "messy.dts"): MessyBoard,
		filepath.Join("include", "soc.dtsi"): "soc {\n\tsram@0 {\n\t};\n};\n",
		"README.md":                          "# boards\n",
	})
	return dir
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a test renderer with the given mode and TTY state.
func NewTestRenderer(mode output.Mode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// NewTestRendererText creates a test renderer in text mode (simulated TTY).
func NewTestRendererText() *TestRenderer {
	return NewTestRenderer(output.ModeText, true)
}

// NewTestRendererMarkdown creates a test renderer in markdown mode.
func NewTestRendererMarkdown() *TestRenderer {
	return NewTestRenderer(output.ModeMarkdown, false)
}

// NewTestRendererJSON creates a test renderer in JSON mode.
func NewTestRendererJSON() *TestRenderer {
	return NewTestRenderer(output.ModeJSON, false)
}

// Output returns the captured stdout.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the captured stderr.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripANSI removes ANSI escape codes.
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertValidMarkdown checks for unclosed code fences, empty headers and
// table rows whose column count differs from the header.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	if n := strings.Count(md, "```"); n%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", n)
	}

	columns := 0
	for i, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}

		if !strings.HasPrefix(trimmed, "|") {
			columns = 0
			continue
		}
		cells := strings.Count(strings.ReplaceAll(trimmed, `\|`, ""), "|") - 1
		if columns == 0 {
			columns = cells
		} else if cells != columns {
			t.Errorf("table row at line %d has %d columns, header has %d", i+1, cells, columns)
		}
	}
}
