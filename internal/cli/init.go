package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdtok/internal/logging"
	"github.com/yaklabco/gomdtok/pkg/config"
	"github.com/yaklabco/gomdtok/pkg/fsutil"
)

// Default file names written by init.
const (
	defaultConfigYAML = ".gomdtok.yml"
	defaultConfigJSON = ".gomdtok.json"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new gomdtok configuration file",
		Long: `Create a new .gomdtok.yml configuration file in the current directory.
The file sets the tokenizer options (flavor, nesting limit, inline parsing,
language detection) and lists the block rules that can be disabled.

An existing file is only replaced with --force, which first copies it to a
.bak file next to it.

Examples:
  gomdtok init                      Create minimal .gomdtok.yml
  gomdtok init --full               Document every option and block rule
  gomdtok init --format json        Create .gomdtok.json instead
  gomdtok init --output custom.yml  Write to a custom file path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file (keeps a .bak copy)")
	cmd.Flags().BoolVar(&flags.full, "full", false, "generate a full template with every option documented")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file path (default: .gomdtok.yml or .gomdtok.json)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	ctx := commandContext(cmd)
	logger := logging.NewInteractive()

	if flags.format != "yaml" && flags.format != formatJSON {
		return usageError(fmt.Errorf("invalid format %q: must be yaml or json", flags.format))
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = defaultConfigYAML
		if flags.format == formatJSON {
			outputPath = defaultConfigJSON
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	_, statErr := os.Stat(absPath)
	switch {
	case statErr == nil:
		if !flags.force {
			return usageError(fmt.Errorf("file %q already exists; use --force to overwrite", outputPath))
		}
		backupPath, backupErr := fsutil.CreateBackup(ctx, absPath)
		if backupErr != nil {
			return withCode(ExitIOError, fmt.Errorf("back up %s: %w", outputPath, backupErr))
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath, "backup", backupPath)
	case !errors.Is(statErr, fs.ErrNotExist):
		return withCode(ExitIOError, fmt.Errorf("stat %s: %w", outputPath, statErr))
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteAtomic(ctx, absPath, content, fsutil.DefaultFileMode); err != nil {
		return withCode(ExitIOError, fmt.Errorf("write %s: %w", outputPath, err))
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)

	if flags.full {
		logger.Info("full template documents every option and block rule")
	}

	logger.Info("run 'gomdtok rules' to see the block rules and their order")

	return nil
}
