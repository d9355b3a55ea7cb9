// Package config provides configuration management for the dtsstyle CLI.
//
// Configuration is layered: built-in defaults, then dtsstyle.yaml, then
// DTSSTYLE_ environment variables, then explicitly set command-line flags.
package config

import (
	"strings"

	"github.com/leapstack-labs/dtsstyle/pkg/lint"
)

// Config holds all CLI configuration options.
type Config struct {
	Verbose      bool        `koanf:"verbose"`
	OutputFormat string      `koanf:"output"`
	Jobs         int         `koanf:"jobs"`
	ExitZero     bool        `koanf:"exit_zero"`
	Lint         *LintConfig `koanf:"lint"`
}

// LintConfig holds rule selection and file exclusion settings.
type LintConfig struct {
	// Disabled contains rule IDs to disable
	Disabled []string `koanf:"disabled"`

	// Severity maps rule ID to a severity override (error, warning, info, hint)
	Severity map[string]lint.Severity `koanf:"severity"`

	// Exclude contains glob patterns matched against discovered file paths
	Exclude []string `koanf:"exclude"`
}

// Default configuration values.
const (
	DefaultOutput = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	EnvPrefix     = "DTSSTYLE_"
)

// ConfigFileNames are searched in the working directory, in order.
var ConfigFileNames = []string{"dtsstyle.yaml", "dtsstyle.yml"}

// RuleConfig converts the lint section into a rule configuration.
// Rule IDs are matched case-insensitively since environment keys arrive
// lowercased.
func (c *Config) RuleConfig() *lint.Config {
	rc := lint.NewConfig()
	if c == nil || c.Lint == nil {
		return rc
	}
	for _, id := range c.Lint.Disabled {
		rc.Disable(strings.ToUpper(id))
	}
	for id, sev := range c.Lint.Severity {
		rc.SetSeverity(strings.ToUpper(id), sev)
	}
	return rc
}

// ExcludePatterns returns the configured exclusion globs.
func (c *Config) ExcludePatterns() []string {
	if c == nil || c.Lint == nil {
		return nil
	}
	return c.Lint.Exclude
}
