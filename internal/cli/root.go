// Package cli provides the command-line interface for dtsstyle.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dtsstyle/internal/cli/commands"
	"github.com/leapstack-labs/dtsstyle/internal/cli/config"
	"github.com/leapstack-labs/dtsstyle/internal/cli/output"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "dtsstyle",
		Short: "dtsstyle - Devicetree source style checker",
		Long: `dtsstyle checks Devicetree sources (.dts, .dtsi, .dtso) for style issues.

It reads sources line by line without compiling them and reports irregular
whitespace around node headers, casing and hyphen/underscore conventions in
labels and node names, unit address format, and siblings that are not sorted
by name or unit address.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			logger := newLogger(cmd, cfg.Verbose)
			ctx := config.WithLogger(cmd.Context(), logger)
			ctx = config.WithConfig(ctx, cfg)
			cmd.SetContext(ctx)

			if file := config.GetConfigFileUsed(); file != "" {
				logger.Debug("using config file", slog.String("path", file))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
Devicetree source style checker
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./dtsstyle.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (auto|text|markdown|json)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		modes := make([]string, 0, len(output.Modes))
		for _, m := range output.Modes {
			modes = append(modes, string(m))
		}
		return modes, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(commands.NewRulesCommand())
	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// newLogger returns a logger writing styled records to the command's error
// stream.
func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return slog.New(log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Level:  level,
		Prefix: "dtsstyle",
	}))
}

// Execute runs the root command. Interrupts cancel the command context, which
// stops checks and watch mode.
func Execute(ctx context.Context) error {
	return fang.Execute(
		ctx,
		NewRootCmd(),
		fang.WithVersion(versionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(errorHandler),
	)
}

// errorHandler prints command errors the way fang does, except for found
// style issues: the report already shows them and only the exit status is
// left to convey.
func errorHandler(w io.Writer, styles fang.Styles, err error) {
	if errors.Is(err, commands.ErrIssuesFound) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

func versionString() string {
	if GitCommit == "unknown" {
		return Version
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate)
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for dtsstyle.

To load completions:

Bash:
  $ source <(dtsstyle completion bash)

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  $ dtsstyle completion zsh > "${fpath[1]}/_dtsstyle"

Fish:
  $ dtsstyle completion fish | source

PowerShell:
  PS> dtsstyle completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
