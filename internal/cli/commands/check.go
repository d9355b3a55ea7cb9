package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/dtsstyle/internal/cli/config"
	"github.com/leapstack-labs/dtsstyle/internal/cli/output"
	"github.com/leapstack-labs/dtsstyle/internal/discover"
	"github.com/leapstack-labs/dtsstyle/pkg/lint"
	"github.com/leapstack-labs/dtsstyle/pkg/lint/dts"
)

// Errors returned by the check command. The CLI maps both to exit status 1.
var (
	ErrIssuesFound = errors.New("style issues found")
	ErrCheckFailed = errors.New("some paths could not be checked")
)

// stdinName names standard input in reports.
const stdinName = "<stdin>"

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Format      string // Output format override: text, markdown, json
	MinSeverity string // Minimum severity reported: error, warning, info, hint
	Watch       bool   // Re-check when sources change
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:     "check [paths...]",
		Aliases: []string{"lint"},
		Short:   "Check Devicetree sources for style issues",
		Long: `Check .dts, .dtsi and .dtso files for style issues.

Directories are searched recursively (hidden entries are skipped) and are
checked before files named explicitly. Use "-" to read standard input.
Arguments can also be passed in a file prefixed with a "@" character, one
argument per line.

Each header line of the form "label: node@address {" or "&label {" is
checked for whitespace, label and node name conventions, unit address
format, and sibling ordering. Rules can be disabled or re-graded in
dtsstyle.yaml or with --disable and --severity.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Plain "file:line: message" lines
  - Markdown: Tables per file (-f markdown)
  - JSON: Machine-readable format`,
		Example: `  # Check the current directory
  dtsstyle check

  # Check a board file and a directory of includes
  dtsstyle check arch/arm64/boot/dts/vendor/board.dts include/

  # Plain "file:line: message" output for editors
  dtsstyle check -o text arch/

  # Skip ordering rules and make underscores in node names an error
  dtsstyle check --disable OR03,OR04 --severity NN01=error

  # Check the files listed in a file
  dtsstyle check @boards.txt

  # Re-check whenever a source changes
  dtsstyle check --watch arch/arm64/boot/dts/vendor`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().StringVar(&opts.MinSeverity, "min-severity", "warning", "Minimum severity reported: error, warning, info, hint")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Watch the given paths and re-check on changes")

	// These flags override configuration keys and are read by the config loader.
	cmd.Flags().IntP("jobs", "j", 0, "Files checked in parallel (default: number of CPUs)")
	cmd.Flags().Bool("exit-zero", false, "Exit with status 0 even if issues are found")
	cmd.Flags().StringSlice("disable", nil, "Rule IDs to disable")
	cmd.Flags().StringSlice("severity", nil, "Severity overrides as RULE=level")
	cmd.Flags().StringSlice("exclude", nil, "Glob patterns skipped while walking directories")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, opts *CheckOptions) error {
	cmdCtx, err := NewCommandContext(cmd, opts.Format)
	if err != nil {
		return err
	}
	// Piped reports keep the "file:line: message" form scripts parse.
	cmdCtx.Renderer.SetPipedMode(output.ModeText)

	threshold, ok := lint.ParseSeverity(opts.MinSeverity)
	if !ok {
		return fmt.Errorf("invalid --min-severity %q (valid: error, warning, info, hint)", opts.MinSeverity)
	}

	args, err = discover.ExpandArgFiles(args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"."}
	}

	run := newCheckRun(cmdCtx, cmd.InOrStdin(), threshold)
	if opts.Watch {
		return run.watch(cmd.Context(), args)
	}
	return run.once(cmd.Context(), args)
}

// fileResult holds the outcome of checking one file.
type fileResult struct {
	Path     string
	Warnings []lint.Warning
	Err      error
}

// checkRun carries what every file check of one invocation shares.
type checkRun struct {
	cfg       *config.Config
	ruleCfg   *lint.Config
	logger    *slog.Logger
	renderer  *output.Renderer
	stdin     io.Reader
	threshold lint.Severity
}

func newCheckRun(cmdCtx *CommandContext, stdin io.Reader, threshold lint.Severity) *checkRun {
	return &checkRun{
		cfg:       cmdCtx.Cfg,
		ruleCfg:   cmdCtx.Cfg.RuleConfig(),
		logger:    cmdCtx.Logger,
		renderer:  cmdCtx.Renderer,
		stdin:     stdin,
		threshold: threshold,
	}
}

// once discovers, checks and reports args a single time.
func (c *checkRun) once(ctx context.Context, args []string) error {
	paths, discoverErr := discover.Files(args, discover.Options{
		Exclude: c.cfg.ExcludePatterns(),
		Logger:  c.logger,
	})
	if discoverErr != nil {
		c.renderer.Error(discoverErr.Error())
	}
	if len(paths) == 0 && discoverErr == nil {
		c.renderer.Warn("no Devicetree sources found")
	}

	results, err := c.checkFiles(ctx, paths)
	if err != nil {
		return err
	}
	results = filterBySeverity(results, c.threshold)

	summary := renderCheckResults(c.renderer, results, c.cfg.Verbose)

	if discoverErr != nil || summary.FilesFailed > 0 {
		return ErrCheckFailed
	}
	if summary.TotalIssues > 0 && !c.cfg.ExitZero {
		return ErrIssuesFound
	}
	return nil
}

// checkFiles checks paths with at most cfg.Jobs checkers running at once.
// Results are returned in the order of paths.
func (c *checkRun) checkFiles(ctx context.Context, paths []string) ([]fileResult, error) {
	results := make([]fileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(c.cfg.Jobs, 1))
	for i, path := range paths {
		g.Go(func() error {
			results[i] = c.checkFile(gctx, path)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *checkRun) checkFile(ctx context.Context, path string) fileResult {
	fromStdin := path == discover.StdinPath
	if fromStdin {
		path = stdinName
	}

	checker, err := dts.New(path, dts.WithConfig(c.ruleCfg), dts.WithLogger(c.logger))
	if err != nil {
		return fileResult{Path: path, Err: err}
	}

	if fromStdin {
		err = checker.CheckReader(ctx, c.stdin)
	} else {
		err = checker.Check(ctx)
	}
	if err != nil {
		return fileResult{Path: path, Err: err}
	}
	return fileResult{Path: path, Warnings: checker.Warnings()}
}

// filterBySeverity drops warnings less severe than threshold.
func filterBySeverity(results []fileResult, threshold lint.Severity) []fileResult {
	filtered := make([]fileResult, 0, len(results))
	for _, r := range results {
		var warnings []lint.Warning
		for _, w := range r.Warnings {
			if w.Severity <= threshold {
				warnings = append(warnings, w)
			}
		}
		r.Warnings = warnings
		filtered = append(filtered, r)
	}
	return filtered
}

func summarize(results []fileResult) output.CheckSummary {
	summary := output.CheckSummary{FilesChecked: len(results)}
	for _, res := range results {
		if res.Err != nil {
			summary.FilesFailed++
			continue
		}
		if len(res.Warnings) > 0 {
			summary.FilesWithIssues++
		}
		summary.TotalIssues += len(res.Warnings)
		for _, w := range res.Warnings {
			switch w.Severity {
			case lint.SeverityError:
				summary.Errors++
			case lint.SeverityWarning:
				summary.Warnings++
			case lint.SeverityInfo:
				summary.Info++
			case lint.SeverityHint:
				summary.Hints++
			}
		}
	}
	return summary
}

// renderCheckResults reports results in the renderer's mode and returns
// the summary.
func renderCheckResults(r *output.Renderer, results []fileResult, verbose bool) output.CheckSummary {
	summary := summarize(results)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		_ = r.JSON(checkJSON(results, summary))
		return summary
	case output.ModeMarkdown:
		renderCheckMarkdown(r, results, verbose)
	default:
		renderCheckText(r, results, verbose)
	}

	switch {
	case summary.TotalIssues > 0:
		line := summaryLine(summary)
		if r.EffectiveMode() == output.ModeMarkdown {
			r.Printf("**Summary:** %s\n", line)
		} else {
			r.Println(r.Styles().Muted.Render("Summary: " + line))
		}
	case summary.FilesFailed == 0:
		r.Success(fmt.Sprintf("No style issues found in %s", plural(summary.FilesChecked, "file")))
	}
	return summary
}

// renderCheckText prints "file:line: message" followed by the offending
// line, the format editors and grep understand.
func renderCheckText(r *output.Renderer, results []fileResult, verbose bool) {
	styles := r.Styles()
	for _, res := range results {
		if verbose {
			r.Println("Check:  " + res.Path)
		}
		if res.Err != nil {
			r.Error(res.Err.Error())
			continue
		}
		for _, w := range res.Warnings {
			r.Printf("%s:%d: %s\n",
				styles.FilePath.Render(res.Path),
				w.Line,
				severityStyle(styles, w.Severity).Render(w.Message),
			)
			r.Printf("%s | %s\n", styles.LineNumber.Render(fmt.Sprintf("%4d", w.Line)), w.Text)
		}
	}
}

func renderCheckMarkdown(r *output.Renderer, results []fileResult, verbose bool) {
	for _, res := range results {
		if verbose {
			r.Printf("Check:  %s\n\n", res.Path)
		}
		if res.Err != nil {
			r.Error(res.Err.Error())
			continue
		}
		if len(res.Warnings) == 0 {
			continue
		}

		r.Printf("## %s\n\n", res.Path)
		rows := make([][]string, 0, len(res.Warnings))
		for _, w := range res.Warnings {
			rows = append(rows, []string{
				fmt.Sprintf("%d", w.Line),
				w.RuleID,
				w.Severity.String(),
				w.Message,
				"`" + strings.TrimSpace(w.Text) + "`",
			})
		}
		r.Table([]string{"Line", "Rule", "Severity", "Message", "Source"}, rows)
		r.Println("")
	}
}

func checkJSON(results []fileResult, summary output.CheckSummary) output.CheckOutput {
	doc := output.CheckOutput{
		Summary: summary,
		Files:   make([]output.CheckFileResult, 0, len(results)),
	}
	for _, res := range results {
		fr := output.CheckFileResult{
			Path:     res.Path,
			Warnings: make([]output.CheckWarning, 0, len(res.Warnings)),
		}
		if res.Err != nil {
			fr.Error = res.Err.Error()
		}
		for _, w := range res.Warnings {
			fr.Warnings = append(fr.Warnings, output.CheckWarning{
				RuleID:   w.RuleID,
				Severity: w.Severity.String(),
				Message:  w.Message,
				Line:     w.Line,
				Text:     w.Text,
			})
		}
		doc.Files = append(doc.Files, fr)
	}
	return doc
}

func summaryLine(s output.CheckSummary) string {
	parts := []string{plural(s.TotalIssues, "issue")}
	if s.Errors > 0 {
		parts = append(parts, plural(s.Errors, "error"))
	}
	if s.Warnings > 0 {
		parts = append(parts, plural(s.Warnings, "warning"))
	}
	if s.Info > 0 {
		parts = append(parts, fmt.Sprintf("%d info", s.Info))
	}
	if s.Hints > 0 {
		parts = append(parts, plural(s.Hints, "hint"))
	}
	return fmt.Sprintf("%s in %s", strings.Join(parts, ", "), plural(s.FilesWithIssues, "file"))
}

// plural formats n with noun, adding "s" unless n is 1.
func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func severityStyle(styles *output.Styles, sev lint.Severity) lipgloss.Style {
	switch sev {
	case lint.SeverityError:
		return styles.Error
	case lint.SeverityWarning:
		return styles.Warning
	case lint.SeverityInfo:
		return styles.Info
	default:
		return styles.Muted
	}
}
