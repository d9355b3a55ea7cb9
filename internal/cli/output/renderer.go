// Package output renders command results for terminals, markdown consumers
// and machines.
//
// In auto mode a terminal gets styled text and anything else gets markdown,
// so piped output stays readable in issue trackers and CI logs. Commands whose
// plain output is itself a contract can pick another piped mode.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Mode selects how output is rendered.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// Modes lists the accepted output modes.
var Modes = []Mode{ModeAuto, ModeText, ModeMarkdown, ModeJSON}

// ParseMode validates an output mode name. An empty name means auto.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeAuto, nil
	}
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown output mode %q (valid: auto, text, markdown, json)", s)
}

// Renderer writes results to an output and an error stream.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	piped  Mode
	isTTY  bool
	styles *Styles
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(out), mode)
}

// NewRendererWithTTY creates a renderer with an explicit terminal state.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}

	// Colors only go to terminals; NO_COLOR and CLICOLOR_FORCE are honored.
	profile := termenv.Ascii
	if isTTY {
		profile = termenv.NewOutput(out).EnvColorProfile()
	}
	lr := lipgloss.NewRenderer(out)
	lr.SetColorProfile(profile)

	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		piped:  ModeMarkdown,
		isTTY:  isTTY,
		styles: NewStyles(lr),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}

// Mode returns the configured mode.
func (r *Renderer) Mode() Mode {
	return r.mode
}

// SetPipedMode sets what auto resolves to when the output is not a terminal.
func (r *Renderer) SetPipedMode(m Mode) {
	if m == ModeAuto || m == "" {
		m = ModeMarkdown
	}
	r.piped = m
}

// EffectiveMode resolves auto to text on a terminal and to the piped mode
// (markdown unless changed) otherwise.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return r.piped
}

// IsTTY reports whether the output stream is a terminal.
func (r *Renderer) IsTTY() bool {
	return r.isTTY
}

// Styles returns the styles bound to this renderer's color profile.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Writer returns the output stream.
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// ErrWriter returns the error stream.
func (r *Renderer) ErrWriter() io.Writer {
	return r.errOut
}

// Println writes a line to the output stream.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted text to the output stream.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Success reports a successful outcome. JSON mode stays silent so the
// stream remains a single document.
func (r *Renderer) Success(msg string) {
	switch r.EffectiveMode() {
	case ModeJSON:
		return
	case ModeMarkdown:
		r.Printf("**%s**\n", msg)
	default:
		r.Println(r.styles.Success.Render("✓ " + msg))
	}
}

// Warn writes a warning to the error stream.
func (r *Renderer) Warn(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Warning.Render("! "+msg))
}

// Error writes an error to the error stream.
func (r *Renderer) Error(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render("✗ "+msg))
}

// JSON writes v as indented JSON to the output stream.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
