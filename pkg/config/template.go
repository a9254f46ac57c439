package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every block rule. If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string

	// Rules describes the block rules to document. If empty, the built-in
	// rule list is used.
	Rules []RuleInfo
}

// RuleInfo contains block rule metadata for template generation.
type RuleInfo struct {
	Name        string
	Description string
	Alt         []string
	Enabled     bool
}

// BuiltinRules describes the block rules gomdtok ships, in tokenizer order.
func BuiltinRules() []RuleInfo {
	interrupts := []string{"paragraph", "reference", "blockquote", "list"}

	return []RuleInfo{
		{Name: "code", Enabled: true, Description: "Indented code blocks (4 or more spaces)"},
		{Name: "fence", Enabled: true, Alt: interrupts, Description: "Fenced code blocks opened by ``` or ~~~"},
		{Name: "hr", Enabled: true, Alt: interrupts, Description: "Thematic breaks made of *, - or _"},
		{
			Name: "heading", Enabled: true, Alt: []string{"paragraph", "reference", "blockquote"},
			Description: "ATX headings from # to ######",
		},
		{
			Name: "deflist", Enabled: true, Alt: []string{"paragraph", "reference"},
			Description: "Definition lists: a term line followed by descriptions introduced by ':' or '~'",
		},
		{Name: "paragraph", Enabled: true, Description: "Paragraphs; always enabled"},
	}
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if len(opts.Rules) == 0 {
		opts.Rules = BuiltinRules()
	}

	if opts.Format == "json" {
		return templateToJSON(opts)
	}

	if opts.Full {
		return generateFullTemplate(opts), nil
	}
	return generateMinimalTemplate(), nil
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Markdown flavor for inline content: commonmark or gfm
flavor: commonmark

# Parse inline content (emphasis, links, code spans) into child tokens
# inline: true

# Guess the language of fenced code blocks without an info string
# detect_languages: false

# Maximum nesting depth of containers such as definition lists
# max_nesting: 100

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"

# Block rule configuration
# rules:
#   deflist:
#     enabled: true
`)

	return buf.Bytes()
}

// generateFullTemplate creates a full template with all rules documented.
func generateFullTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(`# gomdtok configuration - Full Template
# See: https://github.com/yaklabco/gomdtok
#
# This template lists every block rule with its default setting.
# Uncomment and modify settings as needed.

# Markdown flavor for inline content: commonmark or gfm
flavor: commonmark

# Parse inline content into child tokens
inline: true

# Guess the language of fenced code blocks without an info string
detect_languages: false

# Maximum nesting depth of containers such as definition lists
max_nesting: 100

# File patterns to ignore (glob patterns)
ignore:
  - "vendor/**"
  - "node_modules/**"
  - ".git/**"

# Block rules, in the order the tokenizer tries them
rules:
`)

	for _, rule := range opts.Rules {
		fmt.Fprintf(&buf, "\n  # %s\n", wrapComment(rule.Description, commentWrapWidth))
		if len(rule.Alt) > 0 {
			fmt.Fprintf(&buf, "  # Interrupts: %s\n", strings.Join(rule.Alt, ", "))
		}
		fmt.Fprintf(&buf, "  %s:\n", rule.Name)
		fmt.Fprintf(&buf, "    enabled: %t\n", rule.Enabled)
	}

	return buf.Bytes()
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}

// templateToJSON renders the template settings as JSON. JSON has no
// comments, so the minimal and full variants differ only in the rules
// they list.
func templateToJSON(opts TemplateOptions) ([]byte, error) {
	cfg := map[string]any{
		"flavor":           string(FlavorCommonMark),
		"inline":           true,
		"detect_languages": false,
		"max_nesting":      DefaultMaxNesting,
		"ignore":           []string{"vendor/**", "node_modules/**", ".git/**"},
	}

	if opts.Full {
		rules := make(map[string]any, len(opts.Rules))
		for _, r := range opts.Rules {
			rules[r.Name] = map[string]any{"enabled": r.Enabled}
		}
		cfg["rules"] = rules
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return append(jsonBytes, '\n'), nil
}

// RuleNames returns the names of the given rules, sorted.
func RuleNames(rules []RuleInfo) []string {
	names := make([]string, 0, len(rules))
	for _, r := range rules {
		names = append(names, r.Name)
	}
	slices.Sort(names)
	return names
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# gomdtok configuration
# See: https://github.com/yaklabco/gomdtok`
}
