package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(mode Mode, isTTY bool) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return NewRendererWithTTY(out, errOut, isTTY, mode), out, errOut
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "", want: ModeAuto},
		{in: "auto", want: ModeAuto},
		{in: "text", want: ModeText},
		{in: "markdown", want: ModeMarkdown},
		{in: "json", want: ModeJSON},
		{in: "yaml", wantErr: true},
		{in: "JSON", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderer_EffectiveMode(t *testing.T) {
	tests := []struct {
		name  string
		mode  Mode
		isTTY bool
		want  Mode
	}{
		{"auto on terminal", ModeAuto, true, ModeText},
		{"auto when piped", ModeAuto, false, ModeMarkdown},
		{"empty is auto", "", false, ModeMarkdown},
		{"explicit text when piped", ModeText, false, ModeText},
		{"explicit markdown on terminal", ModeMarkdown, true, ModeMarkdown},
		{"json", ModeJSON, true, ModeJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newTestRenderer(tt.mode, tt.isTTY)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestRenderer_SetPipedMode(t *testing.T) {
	tests := []struct {
		name  string
		mode  Mode
		isTTY bool
		piped Mode
		want  Mode
	}{
		{"auto when piped", ModeAuto, false, ModeText, ModeText},
		{"auto on terminal", ModeAuto, true, ModeJSON, ModeText},
		{"explicit markdown wins", ModeMarkdown, false, ModeText, ModeMarkdown},
		{"auto piped mode means markdown", ModeAuto, false, ModeAuto, ModeMarkdown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newTestRenderer(tt.mode, tt.isTTY)
			r.SetPipedMode(tt.piped)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestRenderer_Success(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeText, false)
		r.Success("No style issues found")
		assert.Equal(t, "✓ No style issues found\n", out.String())
	})

	t.Run("markdown", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeMarkdown, false)
		r.Success("No style issues found")
		assert.Equal(t, "**No style issues found**\n", out.String())
	})

	t.Run("json stays silent", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeJSON, false)
		r.Success("No style issues found")
		assert.Empty(t, out.String())
	})
}

func TestRenderer_NoColorWhenPiped(t *testing.T) {
	r, out, errOut := newTestRenderer(ModeText, false)

	r.Println(r.Styles().Error.Render("boom"))
	r.Warn("careful")

	assert.Equal(t, "boom\n", out.String())
	assert.Equal(t, "! careful\n", errOut.String())
	assert.NotContains(t, out.String(), "\x1b[")
}

func TestRenderer_Error(t *testing.T) {
	r, out, errOut := newTestRenderer(ModeText, false)

	r.Error("cannot open board.dts")

	assert.Empty(t, out.String())
	assert.Equal(t, "✗ cannot open board.dts\n", errOut.String())
}

func TestRenderer_JSON(t *testing.T) {
	r, out, _ := newTestRenderer(ModeJSON, false)

	doc := CheckOutput{
		Summary: CheckSummary{FilesChecked: 1, TotalIssues: 1, Warnings: 1},
		Files: []CheckFileResult{{
			Path: "board.dts",
			Warnings: []CheckWarning{{
				RuleID: "WS01", Severity: "warning", Message: "Whitespace error",
				Line: 3, Text: "node  {",
			}},
		}},
	}
	require.NoError(t, r.JSON(doc))

	var decoded CheckOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, doc, decoded)
	assert.NotContains(t, out.String(), `"error"`, "empty error is omitted")
}

func TestRenderer_Table(t *testing.T) {
	header := []string{"ID", "Message"}
	rows := [][]string{{"WS01", "Whitespace error"}, {"NS01", "Unbalanced closing brace"}}

	t.Run("markdown", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeMarkdown, false)
		r.Table(header, rows)

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 4)
		for _, line := range lines {
			assert.True(t, strings.HasPrefix(line, "|"), "markdown row %q", line)
		}
		assert.Contains(t, lines[2], "WS01")
		assert.Contains(t, lines[3], "Unbalanced closing brace")
	})

	t.Run("text", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeText, true)
		r.Table(header, rows)

		assert.Contains(t, out.String(), "┌")
		assert.Contains(t, out.String(), "WS01")
		assert.Contains(t, out.String(), "Unbalanced closing brace")
	})
}
