package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/leapstack-labs/dtsstyle/pkg/lint"
)

var validOutputs = []string{"auto", "text", "markdown", "json"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(validOutputs, c.OutputFormat) {
		errs = append(errs, fmt.Errorf("invalid output format %q (valid: %s)",
			c.OutputFormat, strings.Join(validOutputs, ", ")))
	}
	if c.Jobs < 1 {
		errs = append(errs, fmt.Errorf("jobs must be at least 1, got %d", c.Jobs))
	}

	if c.Lint != nil {
		for _, id := range c.Lint.Disabled {
			if _, ok := lint.GetByID(strings.ToUpper(id)); !ok {
				errs = append(errs, fmt.Errorf("lint.disabled: unknown rule %q", id))
			}
		}
		for id := range c.Lint.Severity {
			if _, ok := lint.GetByID(strings.ToUpper(id)); !ok {
				errs = append(errs, fmt.Errorf("lint.severity: unknown rule %q", id))
			}
		}
		for _, pattern := range c.Lint.Exclude {
			if !doublestar.ValidatePattern(pattern) {
				errs = append(errs, fmt.Errorf("lint.exclude: bad pattern %q", pattern))
			}
		}
	}

	return errors.Join(errs...)
}
