package dts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/dtsstyle/pkg/lint"
	"github.com/leapstack-labs/dtsstyle/pkg/scan"
	"github.com/leapstack-labs/dtsstyle/pkg/source"
)

// ErrPatchFile is returned by New for diff and patch files.
var ErrPatchFile = errors.New("cannot handle diff/patch files, pass DTS/DTSI/DTSO only")

// Option configures a Checker.
type Option func(*Checker)

// WithConfig sets the rule configuration used to filter and re-grade warnings.
func WithConfig(cfg *lint.Config) Option {
	return func(c *Checker) {
		c.config = cfg
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Checker checks the style of one Devicetree source file.
// A Checker is not safe for concurrent use.
type Checker struct {
	path    string
	config  *lint.Config
	logger  *slog.Logger
	tracker tracker
	sink    *lint.Sink
}

// New creates a checker for the file at path. The file is not opened until
// Check is called.
func New(path string, opts ...Option) (*Checker, error) {
	if strings.HasSuffix(path, ".diff") || strings.HasSuffix(path, ".patch") {
		return nil, fmt.Errorf("%s: %w", path, ErrPatchFile)
	}

	c := &Checker{
		path:   path,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.sink = lint.NewSink(c.config)
	return c, nil
}

// Path returns the path of the checked file.
func (c *Checker) Path() string {
	return c.path
}

// Check scans the whole file. Warnings from a previous run are discarded.
func (c *Checker) Check(ctx context.Context) error {
	return c.run(ctx, source.NewFile(c.path).Lines())
}

// CheckReader scans r as if it were the contents of the checker's file.
func (c *Checker) CheckReader(ctx context.Context, r io.Reader) error {
	return c.run(ctx, source.Lines(r))
}

// Warnings returns the warnings of the last run in the order they were found.
func (c *Checker) Warnings() []lint.Warning {
	return c.sink.Warnings()
}

func (c *Checker) run(ctx context.Context, lines iter.Seq2[source.Line, error]) error {
	c.tracker.reset()
	c.sink.Reset()

	for line, err := range lines {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		c.checkLine(line)
	}

	c.logger.Debug("checked file",
		slog.String("path", c.path),
		slog.Int("warnings", c.sink.Len()),
		slog.Int("final_depth", c.tracker.depth))
	return nil
}

func (c *Checker) checkLine(line source.Line) {
	shape := scan.Classify(line.Text)
	switch shape.Kind {
	case scan.NodeOpen:
		c.checkNode(line, shape)
	case scan.LabelOpen:
		c.checkLabel(line, shape)
	case scan.GenericOpen:
		c.tracker.open(nil)
	case scan.Close:
		if !c.tracker.close() {
			c.report(UnbalancedCloseRule, line)
		}
	}
}

// checkNode handles "label: name@addr {" headers.
func (c *Checker) checkNode(line source.Line, s scan.Shape) {
	if s.Label != "" {
		if s.S1 != " " {
			c.report(WhitespaceRule, line)
		}
		c.checkLabelName(line, s.Label)
	}
	if s.S2 != " " || s.S3 != "" {
		c.report(WhitespaceRule, line)
	}
	c.checkNodeName(line, s.NodeName)
	if s.UnitAddress != "" {
		c.checkUnitAddress(line, s.UnitAddress)
	}

	m := Marker{NodeName: s.NodeName, UnitAddress: s.UnitAddress}
	c.checkOrder(line, m)
	c.tracker.open(&m)
}

// checkLabel handles "&label {" overrides and the "/ {" root extension.
func (c *Checker) checkLabel(line source.Line, s scan.Shape) {
	if s.S1 != "" || s.S2 != " " || s.S3 != "" {
		c.report(WhitespaceRule, line)
	}
	if s.IsRoot() {
		c.tracker.open(nil)
		return
	}
	c.checkLabelName(line, s.Label)

	m := Marker{Label: s.Label}
	c.checkOrder(line, m)
	c.tracker.open(&m)
}

func (c *Checker) report(rule lint.RuleDef, line source.Line) {
	c.sink.Add(rule.Warning(line.Text, line.Number))
}
