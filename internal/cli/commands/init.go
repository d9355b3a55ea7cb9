package commands

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/dtsstyle/internal/cli/config"
)

// initFileHeader heads the generated configuration file.
const initFileHeader = `dtsstyle configuration.
Values can be overridden with DTSSTYLE_ environment variables
(DTSSTYLE_LINT__DISABLED=OR03) and command line flags.`

// initComments documents keys of the generated file, by dotted path.
var initComments = map[string]string{
	"output":        "Output format: auto, text, markdown, json",
	"exit_zero":     "Exit with status 0 even if issues are found",
	"lint":          "Rule selection. List rules with 'dtsstyle rules'.",
	"lint.disabled": "Rule IDs to skip, e.g. [OR03, OR04]",
	"lint.severity": "Severity overrides by rule ID, e.g. {NN01: error}",
	"lint.exclude":  "Glob patterns skipped while walking directories, e.g. [\"*-overlay.dtso\"]",
}

type initConfig struct {
	Output   string         `yaml:"output"`
	ExitZero bool           `yaml:"exit_zero"`
	Lint     initLintConfig `yaml:"lint"`
}

type initLintConfig struct {
	Disabled []string          `yaml:"disabled"`
	Severity map[string]string `yaml:"severity"`
	Exclude  []string          `yaml:"exclude"`
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default dtsstyle.yaml",
		Long: `Write a commented dtsstyle.yaml with the default settings.

An existing file is left alone unless --force is given.`,
		Example: `  # Initialize in current directory
  dtsstyle init

  # Initialize next to a tree of board files
  dtsstyle init arch/arm64/boot/dts

  # Force overwrite existing config
  dtsstyle init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			cmdCtx, err := NewCommandContext(cmd, "")
			if err != nil {
				return err
			}

			path, err := writeDefaultConfig(dir, force)
			if err != nil {
				return err
			}
			cmdCtx.Logger.Debug("wrote configuration", "path", path)
			cmdCtx.Renderer.Success("Created " + path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

// writeDefaultConfig writes the default configuration into dir and returns
// the file's path.
func writeDefaultConfig(dir string, force bool) (string, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, config.ConfigFileNames[0])
	for _, name := range config.ConfigFileNames {
		existing := filepath.Join(dir, name)
		_, err := os.Stat(existing)
		if err == nil && !force {
			return "", fmt.Errorf("%s already exists. Use --force to overwrite", existing)
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
	}

	data, err := defaultConfigYAML()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// defaultConfigYAML renders the default configuration with a comment
// above every key.
func defaultConfigYAML() ([]byte, error) {
	defaults := config.Default()
	var body yaml.Node
	if err := body.Encode(initConfig{
		Output:   defaults.OutputFormat,
		ExitZero: defaults.ExitZero,
		Lint: initLintConfig{
			Disabled: []string{},
			Severity: map[string]string{},
			Exclude:  []string{},
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	annotate(&body, "")

	doc := &yaml.Node{
		Kind:        yaml.DocumentNode,
		HeadComment: commentLines(initFileHeader),
		Content:     []*yaml.Node{&body},
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func annotate(node *yaml.Node, prefix string) {
	if node.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		path := key.Value
		if prefix != "" {
			path = prefix + "." + key.Value
		}
		if c, ok := initComments[path]; ok {
			key.HeadComment = commentLines(c)
		}
		annotate(value, path)
	}
}

func commentLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = "# " + line
	}
	return strings.Join(lines, "\n")
}
