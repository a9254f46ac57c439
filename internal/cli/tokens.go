package cli

import (
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdtok/internal/logging"
	"github.com/yaklabco/gomdtok/pkg/config"
	"github.com/yaklabco/gomdtok/pkg/reporter"
	"github.com/yaklabco/gomdtok/pkg/runner"
)

// stdinPath is the path argument that reads a document from stdin.
const stdinPath = "-"

type tokensFlags struct {
	format          string
	flavor          string
	jobs            int
	maxNesting      int
	ignore          []string
	disable         []string
	noInline        bool
	detectLanguages bool
	showHidden      bool
	noChildren      bool
	perFile         bool
	compact         bool
	noSummary       bool
	followSymlinks  bool
}

func newTokensCommand() *cobra.Command {
	flags := &tokensFlags{}

	cmd := &cobra.Command{
		Use:     "tokens [paths...]",
		Aliases: []string{"tok"},
		Short:   "Tokenize Markdown files",
		Long:    tokensLongDescription,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, args, flags)
		},
	}

	addTokensFlags(cmd, flags)

	return cmd
}

const tokensLongDescription = `Tokenize Markdown files and print their block token streams.

By default, tokenizes all .md and .markdown files in the current directory
and subdirectories. Specify paths to tokenize specific files or directories,
or "-" to read a single document from stdin.

Examples:
  gomdtok tokens                         # Tokenize current directory
  gomdtok tokens docs/glossary.md        # Tokenize one file
  gomdtok tokens --show-hidden doc.md    # Include hidden paragraph tokens
  gomdtok tokens --format json docs/     # Output as JSON
  gomdtok tokens --format summary        # Token counts per type and file
  echo 'Term
: Description' | gomdtok tokens -`

// cliConfig maps explicitly set flags onto a config overlay. Unset flags
// stay zero so lower-precedence sources keep their values.
func cliConfig(cmd *cobra.Command, flags *tokensFlags) *config.Config {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if changed("flavor") {
		cfg.Flavor = config.Flavor(flags.flavor)
	}
	if changed("jobs") {
		cfg.Jobs = flags.jobs
	}
	if changed("max-nesting") {
		cfg.MaxNesting = config.Ptr(flags.maxNesting)
	}
	if changed("ignore") {
		cfg.Ignore = flags.ignore
	}
	if changed("no-inline") {
		cfg.Inline = config.Ptr(!flags.noInline)
	}
	if changed("detect-languages") {
		cfg.DetectLanguages = config.Ptr(flags.detectLanguages)
	}
	if len(flags.disable) > 0 {
		cfg.Rules = make(map[string]config.RuleConfig, len(flags.disable))
		for _, name := range flags.disable {
			cfg.Rules[name] = config.RuleConfig{Enabled: config.Ptr(false)}
		}
	}
	cfg.ShowHidden = flags.showHidden

	return cfg
}

func runTokens(cmd *cobra.Command, args []string, flags *tokensFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return usageError(err)
	}

	if slices.Contains(args, stdinPath) && len(args) > 1 {
		return usageError(fmt.Errorf("%q cannot be combined with other paths", stdinPath))
	}

	loadResult, err := loadConfig(cmd, cliConfig(cmd, flags))
	if err != nil {
		return err
	}
	cfg := loadResult.Config

	if cfg.Format != "" && !cmd.Flags().Changed("format") {
		format, err = reporter.ParseFormat(string(cfg.Format))
		if err != nil {
			return withCode(ExitConfigError, err)
		}
	}

	logger.Debug("configuration loaded",
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldFormat, format,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldMaxNesting, cfg.EffectiveMaxNesting(),
		logging.FieldInline, cfg.InlineEnabled(),
	)

	parser, err := runner.BuildParser(cfg)
	if err != nil {
		return withCode(ExitConfigError, err)
	}

	tokRunner := runner.New(parser)
	start := time.Now()

	var result *runner.Result
	if len(args) == 1 && args[0] == stdinPath {
		src, readErr := io.ReadAll(cmd.InOrStdin())
		if readErr != nil {
			return withCode(ExitIOError, fmt.Errorf("read stdin: %w", readErr))
		}
		result, err = tokRunner.RunSource(ctx, "<stdin>", src)
	} else {
		result, err = tokRunner.Run(ctx, runner.Options{
			Paths:          args,
			Extensions:     runner.DefaultExtensions(),
			FollowSymlinks: flags.followSymlinks,
			Jobs:           cfg.Jobs,
			Config:         cfg,
		})
	}
	if err != nil {
		return fmt.Errorf("tokenize: %w", err)
	}

	logger.Debug("tokenization finished",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
		logging.FieldTokensTotal, result.Stats.Tokens,
		logging.FieldLists, result.Stats.Lists,
		logging.FieldDuration, time.Since(start),
	)

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode,
		ShowSummary: !flags.noSummary,
		ShowHidden:  cfg.ShowHidden,
		ShowInline:  !flags.noChildren,
		Compact:     flags.compact,
		PerFile:     flags.perFile,
		WorkingDir:  workDir,
	})
	if err != nil {
		return usageError(fmt.Errorf("create reporter: %w", err))
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return withCode(ExitIOError, fmt.Errorf("report results: %w", err))
	}

	if code := exitCodeFromResult(result); code != ExitSuccess {
		return withCode(code, ErrFilesFailed)
	}

	return nil
}

func addTokensFlags(cmd *cobra.Command, flags *tokensFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json, summary")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "commonmark", "Markdown flavor for inline content: commonmark, gfm")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().IntVar(&flags.maxNesting, "max-nesting", config.DefaultMaxNesting, "maximum block nesting depth")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "block rules to disable")
	cmd.Flags().BoolVar(&flags.noInline, "no-inline", false, "leave inline tokens without children")
	cmd.Flags().BoolVar(&flags.detectLanguages, "detect-languages", false, "detect the language of fences without an info string")
	cmd.Flags().BoolVar(&flags.showHidden, "show-hidden", false, "list hidden tokens in text and table output")
	cmd.Flags().BoolVar(&flags.noChildren, "no-children", false, "omit inline children from text output")
	cmd.Flags().BoolVar(&flags.perFile, "per-file", false, "output a separate table for each file (table format)")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "omit the summary line")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "walk symlinked directories")
}
