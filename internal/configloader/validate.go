package configloader

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/gomdtok/pkg/config"
)

// paragraphRule is the fallback block rule that cannot be disabled.
const paragraphRule = "paragraph"

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "rules.hr.enabled").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// Validate checks a configuration against the built-in block rules.
func Validate(cfg *config.Config) *ValidationResult {
	return ValidateRules(cfg, config.RuleNames(config.BuiltinRules()))
}

// ValidateRules checks a configuration, accepting only the given rule names
// under "rules".
func ValidateRules(cfg *config.Config, knownRules []string) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Flavor != "" && !cfg.Flavor.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "flavor",
			Value:   cfg.Flavor,
			Message: fmt.Sprintf("invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor),
		})
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, table, json, summary", cfg.Format),
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	if cfg.MaxNesting != nil && *cfg.MaxNesting < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "max_nesting",
			Value:   *cfg.MaxNesting,
			Message: "max_nesting must be >= 0",
		})
	}

	validateRules(cfg, knownRules, result)
	validateIgnorePatterns(cfg, result)

	return result
}

// validateRules checks rule names and the paragraph requirement.
func validateRules(cfg *config.Config, knownRules []string, result *ValidationResult) {
	names := make([]string, 0, len(cfg.Rules))
	for name := range cfg.Rules {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		ruleCfg := cfg.Rules[name]

		if !slices.Contains(knownRules, name) {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "rules." + name,
				Value:   name,
				Message: fmt.Sprintf("unknown rule %q; known rules: %s", name, strings.Join(knownRules, ", ")),
			})
			continue
		}

		if name == paragraphRule && ruleCfg.Enabled != nil && !*ruleCfg.Enabled {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "rules.paragraph.enabled",
				Value:   false,
				Message: "the paragraph rule cannot be disabled",
			})
		}

		if ruleCfg.Enabled == nil {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "rules." + name,
				Value:   name,
				Message: "rule entry has no effect without \"enabled\"",
			})
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
