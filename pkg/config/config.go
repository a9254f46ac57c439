// Package config defines core configuration types for gomdtok.
// These types are pure data structures with no dependency on how they are loaded.
package config

// RuleConfig holds per-rule configuration options.
type RuleConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`
}

// OutputFormat specifies how token streams are printed.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatSummary OutputFormat = "summary"
)

// Flavor specifies the Markdown flavor used for inline content.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// DefaultMaxNesting is the nesting limit used when none is configured.
const DefaultMaxNesting = 100

// Config is the root configuration structure for gomdtok.
type Config struct {
	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor,omitempty"`

	// Rules contains per-rule configuration keyed by block rule name.
	Rules map[string]RuleConfig `yaml:"rules,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// MaxNesting bounds how deep containers may nest.
	MaxNesting *int `yaml:"max_nesting,omitempty"`

	// Inline enables parsing of inline content into child tokens.
	Inline *bool `yaml:"inline,omitempty"`

	// DetectLanguages guesses the language of fences without an info string.
	DetectLanguages *bool `yaml:"detect_languages,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// ShowHidden prints hidden tokens as if they were visible.
	ShowHidden bool `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Flavor:          FlavorCommonMark,
		Rules:           make(map[string]RuleConfig),
		Ignore:          nil,
		MaxNesting:      Ptr(DefaultMaxNesting),
		Inline:          Ptr(true),
		DetectLanguages: Ptr(false),
		Format:          FormatText,
		Jobs:            0, // 0 means use GOMAXPROCS
	}
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// EffectiveMaxNesting returns the configured nesting limit or the default.
func (c *Config) EffectiveMaxNesting() int {
	if c == nil || c.MaxNesting == nil {
		return DefaultMaxNesting
	}
	return *c.MaxNesting
}

// InlineEnabled reports whether inline content should be parsed.
func (c *Config) InlineEnabled() bool {
	return c == nil || c.Inline == nil || *c.Inline
}

// DetectLanguagesEnabled reports whether fence language detection is on.
func (c *Config) DetectLanguagesEnabled() bool {
	return c != nil && c.DetectLanguages != nil && *c.DetectLanguages
}

// DisabledRules returns the names of rules explicitly disabled, in no
// particular order.
func (c *Config) DisabledRules() []string {
	if c == nil {
		return nil
	}

	var names []string
	for name, rc := range c.Rules {
		if rc.Enabled != nil && !*rc.Enabled {
			names = append(names, name)
		}
	}
	return names
}
