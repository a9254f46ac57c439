// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support, and validation.
package configloader

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/gomdtok/internal/logging"
	"github.com/yaklabco/gomdtok/pkg/config"
	"github.com/yaklabco/gomdtok/pkg/fsutil"
)

// ErrInvalidConfig marks errors caused by the content of a configuration
// source rather than by I/O.
var ErrInvalidConfig = errors.New("invalid configuration")

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// KnownRules lists the rule names accepted under "rules". Defaults to
	// the built-in block rules.
	KnownRules []string

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// source is one configuration file in precedence order.
type source struct {
	kind string
	path string
	skip bool
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (GOMDTOK_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.gomdtok.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/gomdtok/config.yaml)
//  6. System config (/etc/gomdtok/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	sources := []source{
		{kind: "system", path: paths.System, skip: opts.IgnoreSystemConfig},
		{kind: "user", path: paths.User, skip: opts.IgnoreUserConfig},
		{kind: "project", path: paths.Project, skip: opts.IgnoreProjectConfig},
		{kind: "explicit", path: paths.Explicit},
	}

	for _, src := range sources {
		if src.skip || src.path == "" {
			continue
		}

		fileCfg, err := loadConfigFile(ctx, src.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", src.kind, err)
		}

		logger.Debug("loaded configuration", logging.FieldConfig, src.kind, logging.FieldPath, src.path)
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, src.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("%w: environment: %w", ErrInvalidConfig, err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	knownRules := opts.KnownRules
	if len(knownRules) == 0 {
		knownRules = config.RuleNames(config.BuiltinRules())
	}

	validation := ValidateRules(cfg, knownRules)
	if !validation.Valid() {
		errs := make([]error, 0, len(validation.Errors))
		for i := range validation.Errors {
			errs = append(errs, &validation.Errors[i])
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}

	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a configuration from a YAML file.
func loadConfigFile(ctx context.Context, path string) (*config.Config, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}

	return cfg, nil
}
