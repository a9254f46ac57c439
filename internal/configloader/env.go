package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdtok/pkg/config"
)

// envVarPrefix is the prefix for all gomdtok environment variables.
const envVarPrefix = "GOMDTOK_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines an environment variable to config field mapping.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FLAVOR":           {field: "flavor", typ: envTypeString, description: "Markdown flavor: commonmark or gfm"},
	"FORMAT":           {field: "format", typ: envTypeString, description: "Output format: text, table, json, or summary"},
	"JOBS":             {field: "jobs", typ: envTypeInt, description: "Number of parallel workers (0 = auto)"},
	"MAX_NESTING":      {field: "max_nesting", typ: envTypeInt, description: "Maximum container nesting depth"},
	"INLINE":           {field: "inline", typ: envTypeBool, description: "Parse inline content: true or false"},
	"DETECT_LANGUAGES": {field: "detect_languages", typ: envTypeBool, description: "Detect bare fence languages: true or false"},
	"SHOW_HIDDEN":      {field: "show_hidden", typ: envTypeBool, description: "Print hidden tokens: true or false"},
	"IGNORE":           {field: "ignore", typ: envTypeSlice, description: "Comma-separated list of ignore patterns"},
	"DISABLE":          {field: "disable", typ: envTypeSlice, description: "Comma-separated list of block rules to disable"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with GOMDTOK_ (e.g., GOMDTOK_FLAVOR).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "flavor":
		cfg.Flavor = config.Flavor(value)
	case "format":
		cfg.Format = config.OutputFormat(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "inline":
		cfg.Inline = config.Ptr(value)
	case "detect_languages":
		cfg.DetectLanguages = config.Ptr(value)
	case "show_hidden":
		cfg.ShowHidden = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	case "max_nesting":
		cfg.MaxNesting = config.Ptr(value)
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	case "disable":
		if cfg.Rules == nil {
			cfg.Rules = make(map[string]config.RuleConfig)
		}
		for _, name := range value {
			cfg.Rules[name] = config.RuleConfig{Enabled: config.Ptr(false)}
		}
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
