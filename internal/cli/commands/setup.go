package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dtsstyle/internal/cli/config"
	"github.com/leapstack-labs/dtsstyle/internal/cli/output"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the command's context.
// A non-empty format overrides the configured output mode.
func NewCommandContext(cmd *cobra.Command, format string) (*CommandContext, error) {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	if format == "" {
		format = cfg.OutputFormat
	}
	mode, err := output.ParseMode(format)
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode),
	}, nil
}
