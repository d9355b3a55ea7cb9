package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/dtsstyle/internal/cli/output"
	"github.com/leapstack-labs/dtsstyle/pkg/lint"
	_ "github.com/leapstack-labs/dtsstyle/pkg/lint/dts" // register checker rules
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group   string // Filter by group
	Verbose bool   // Show descriptions
	Format  string // Output format
}

// RuleEntry is a rule with the configuration applied.
type RuleEntry struct {
	lint.RuleDef
	Enabled           bool          `json:"enabled"`
	EffectiveSeverity lint.Severity `json:"severity"`
}

// RulesJSONOutput is the JSON output structure for rules listing.
type RulesJSONOutput struct {
	Rules []RuleEntry `json:"rules"`
	Count int         `json:"count"`
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List available style rules",
		Long: `List the style rules with their group and severity.

Severities and enabled state reflect dtsstyle.yaml, DTSSTYLE_ environment
variables and flags. Pass a rule ID for its full documentation.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # List all rules
  dtsstyle rules

  # Show details for a specific rule
  dtsstyle rules OR02

  # List unit address rules with descriptions
  dtsstyle rules --group unit-address -V

  # Output as JSON
  dtsstyle rules --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "V", false, "Show rule descriptions")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")

	return cmd
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	cmdCtx, err := NewCommandContext(cmd, opts.Format)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	var rules []lint.RuleDef
	if opts.Group != "" {
		rules = lint.GetByGroup(opts.Group)
		if len(rules) == 0 {
			return fmt.Errorf("unknown rule group %q (valid: %s)", opts.Group, strings.Join(lint.Groups(), ", "))
		}
	} else {
		rules = lint.GetAll()
	}
	entries := ruleEntries(rules, cmdCtx.Cfg.RuleConfig())

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(RulesJSONOutput{Rules: entries, Count: len(entries)})
	case output.ModeMarkdown:
		r.Println("# Style Rules")
		r.Println("")
		for _, group := range groupEntries(entries) {
			r.Println("## " + groupTitle(group[0].Group))
			r.Println("")
			r.Table(rulesHeader(opts.Verbose), rulesRows(group, opts.Verbose))
			r.Println("")
		}
	default:
		styles := r.Styles()
		r.Println("")
		r.Println(styles.Header1.Render(fmt.Sprintf("Style Rules (%d)", len(entries))))
		r.Println("")
		for _, group := range groupEntries(entries) {
			r.Println(styles.Header2.Render(groupTitle(group[0].Group)))
			r.Table(rulesHeader(opts.Verbose), rulesRows(group, opts.Verbose))
			r.Println("")
		}
		r.Println(styles.Muted.Render("Use 'dtsstyle rules <rule-id>' for detailed documentation"))
	}
	return nil
}

func ruleEntries(rules []lint.RuleDef, cfg *lint.Config) []RuleEntry {
	entries := make([]RuleEntry, 0, len(rules))
	for _, rule := range rules {
		entries = append(entries, RuleEntry{
			RuleDef:           rule,
			Enabled:           !cfg.IsDisabled(rule.ID),
			EffectiveSeverity: cfg.GetSeverity(rule.ID, rule.Severity),
		})
	}
	return entries
}

// groupEntries splits entries by group, ordered by group name, keeping the
// ID order inside each group.
func groupEntries(entries []RuleEntry) [][]RuleEntry {
	byGroup := make(map[string][]RuleEntry)
	var names []string
	for _, e := range entries {
		if _, ok := byGroup[e.Group]; !ok {
			names = append(names, e.Group)
		}
		byGroup[e.Group] = append(byGroup[e.Group], e)
	}
	sort.Strings(names)

	groups := make([][]RuleEntry, 0, len(names))
	for _, name := range names {
		groups = append(groups, byGroup[name])
	}
	return groups
}

func groupTitle(group string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(group, "-", " "))
}

func rulesHeader(verbose bool) []string {
	header := []string{"ID", "Name", "Severity", "Message"}
	if verbose {
		header = append(header, "Description")
	}
	return header
}

func rulesRows(entries []RuleEntry, verbose bool) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		severity := e.EffectiveSeverity.String()
		if !e.Enabled {
			severity = "off"
		}
		row := []string{e.ID, e.Name, severity, e.Message}
		if verbose {
			row = append(row, e.Description)
		}
		rows = append(rows, row)
	}
	return rows
}

func showRule(cmd *cobra.Command, query string, opts *RulesOptions) error {
	cmdCtx, err := NewCommandContext(cmd, opts.Format)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	rule, err := findRule(query)
	if err != nil {
		return err
	}
	entry := ruleEntries([]lint.RuleDef{rule}, cmdCtx.Cfg.RuleConfig())[0]

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(entry)
	case output.ModeMarkdown:
		r.Printf("%s", ruleMarkdown(entry))
		return nil
	default:
		return showRuleText(r, entry)
	}
}

// findRule looks a rule up by ID (any case) or name. Unknown queries get
// the closest IDs and names as suggestions.
func findRule(query string) (lint.RuleDef, error) {
	if rule, ok := lint.GetByID(strings.ToUpper(query)); ok {
		return rule, nil
	}

	all := lint.GetAll()
	keys := make([]string, 0, 2*len(all))
	for _, rule := range all {
		if rule.Name == query {
			return rule, nil
		}
		keys = append(keys, rule.ID, rule.Name)
	}

	var suggestions []string
	matches := fuzzy.Find(query, keys)
	matches = append(matches, fuzzy.Find(strings.ToUpper(query), keys)...)
	sort.Stable(matches)
	seen := make(map[string]bool)
	for _, m := range matches {
		if !seen[m.Str] && len(suggestions) < 3 {
			seen[m.Str] = true
			suggestions = append(suggestions, m.Str)
		}
	}
	if len(suggestions) > 0 {
		return lint.RuleDef{}, fmt.Errorf("rule %q not found (did you mean %s?)", query, strings.Join(suggestions, ", "))
	}
	return lint.RuleDef{}, fmt.Errorf("rule %q not found", query)
}

// showRuleText renders the rule documentation for a terminal. Without a
// terminal the plain-text style is used.
func showRuleText(r *output.Renderer, e RuleEntry) error {
	style := glamour.WithStandardStyle("notty")
	if r.IsTTY() {
		style = glamour.WithAutoStyle()
	}
	tr, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(100))
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := tr.Render(ruleMarkdown(e))
	if err != nil {
		return fmt.Errorf("failed to render rule documentation: %w", err)
	}
	r.Printf("%s", out)
	return nil
}

// ruleMarkdown documents a rule as markdown.
func ruleMarkdown(e RuleEntry) string {
	var b strings.Builder

	status := ""
	if !e.Enabled {
		status = " | **Status:** disabled"
	}
	fmt.Fprintf(&b, "# %s - %s\n\n", e.ID, e.Name)
	fmt.Fprintf(&b, "**Group:** %s | **Severity:** `%s`%s\n\n", e.Group, e.EffectiveSeverity.String(), status)
	fmt.Fprintf(&b, "Reports: `%s`\n\n", e.Message)
	fmt.Fprintf(&b, "%s\n\n", e.Description)

	if e.Rationale != "" {
		fmt.Fprintf(&b, "## Why This Matters\n\n%s\n\n", e.Rationale)
	}
	if e.BadExample != "" {
		fmt.Fprintf(&b, "## Bad Example\n\n```dts\n%s\n```\n\n", e.BadExample)
	}
	if e.GoodExample != "" {
		fmt.Fprintf(&b, "## Good Example\n\n```dts\n%s\n```\n\n", e.GoodExample)
	}
	return b.String()
}
