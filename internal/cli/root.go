// Package cli provides the Cobra command structure for gomdtok.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdtok/internal/configloader"
	"github.com/yaklabco/gomdtok/internal/logging"
	"github.com/yaklabco/gomdtok/pkg/config"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root gomdtok command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var color string

	rootCmd := &cobra.Command{
		Use:   "gomdtok",
		Short: "A Markdown block tokenizer with definition lists",
		Long: `gomdtok splits Markdown documents into a flat stream of block tokens,
the way markdown-it does, and adds definition lists:

  Term
  : Description

Descriptions hold arbitrary block content, including nested lists. Tight
lists hide the paragraphs inside their descriptions. Inline content can be
parsed into child tokens with goldmark, and fences without an info string
can be tagged with a detected language.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
			cmd.SetContext(logging.WithLogger(commandContext(cmd), logging.Default()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "path to config file")
	rootCmd.PersistentFlags().BoolP("isolated", "I", false,
		"ignore system, user and project config files and GOMDTOK_* variables")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	rootCmd.AddCommand(newTokensCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig resolves the configuration for a command, with cliCfg taking
// precedence over every other source.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*configloader.LoadResult, error) {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	isolated, err := cmd.Flags().GetBool("isolated")
	if err != nil {
		return nil, fmt.Errorf("get isolated flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:          workDir,
		ExplicitPath:        configPath,
		IgnoreSystemConfig:  isolated,
		IgnoreUserConfig:    isolated,
		IgnoreProjectConfig: isolated,
		IgnoreEnv:           isolated,
		CLIConfig:           cliCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	return loadResult, nil
}
