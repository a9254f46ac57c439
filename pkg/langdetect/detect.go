// Package langdetect guesses the language of fenced code that has no info
// string. Detection is layered: interpreter lines and editor modelines
// first (go-enry), then a table of unmistakable leading signatures, then
// the go-enry classifier for snippets long enough to be classified.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Unknown is returned when no language could be determined.
const Unknown = ""

// defaultMinClassifierLines is the shortest snippet handed to the classifier.
const defaultMinClassifierLines = 3

// signature is a prefix of trimmed code that identifies a language.
// Folded prefixes match case-insensitively.
type signature struct {
	prefix string
	lang   string
	fold   bool
}

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	signatures = []signature{
		{prefix: "package ", lang: "go"},
		{prefix: "import (", lang: "go"},
		{prefix: "<?php", lang: "php"},
		{prefix: "<!doctype html", lang: "html", fold: true},
		{prefix: "<html", lang: "html", fold: true},
		{prefix: "<?xml", lang: "xml"},
		{prefix: "FROM ", lang: "dockerfile"},
		{prefix: "select ", lang: "sql", fold: true},
		{prefix: "insert into ", lang: "sql", fold: true},
		{prefix: "create table ", lang: "sql", fold: true},
		{prefix: "fn main()", lang: "rust"},
		{prefix: "use std::", lang: "rust"},
		{prefix: "def ", lang: "python"},
		{prefix: "$ ", lang: "console"},
	}

	defaultCandidates = []string{
		"Go", "Python", "Shell", "JavaScript", "TypeScript",
		"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
		"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
	}

	// aliases maps go-enry names to conventional fence info strings.
	aliases = map[string]string{
		"Shell": "bash",
		"C++":   "cpp",
		"C#":    "csharp",
	}
)

// Option configures a Detector.
type Option func(d *Detector)

// WithCandidates restricts the classifier to the given go-enry language names.
func WithCandidates(langs ...string) Option {
	return func(d *Detector) {
		d.candidates = append([]string(nil), langs...)
	}
}

// WithMinClassifierLines sets how many non-blank lines a snippet needs
// before the classifier is consulted. Zero disables the classifier.
func WithMinClassifierLines(n int) Option {
	return func(d *Detector) {
		d.minLines = n
	}
}

// Detector guesses code languages. It is safe for concurrent use.
type Detector struct {
	candidates []string
	minLines   int
}

// New creates a detector with the default candidate languages.
func New(opts ...Option) *Detector {
	d := &Detector{
		candidates: defaultCandidates,
		minLines:   defaultMinClassifierLines,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect returns a lower-case fence language for code, or Unknown.
func (d *Detector) Detect(code []byte) string {
	trimmed := bytes.TrimSpace(code)
	if len(trimmed) == 0 {
		return Unknown
	}

	if lang, safe := enry.GetLanguageByShebang(trimmed); safe {
		return alias(lang)
	}

	if lang, safe := enry.GetLanguageByModeline(trimmed); safe {
		return alias(lang)
	}

	if lang := bySignature(trimmed); lang != Unknown {
		return lang
	}

	if lang := byStructure(trimmed); lang != Unknown {
		return lang
	}

	if d.minLines > 0 && countLines(trimmed) >= d.minLines {
		// The classifier ranks every candidate, so its first answer is a
		// best guess rather than a certain match.
		if lang, _ := enry.GetLanguageByClassifier(trimmed, d.candidates); lang != "" {
			return alias(lang)
		}
	}

	return Unknown
}

// Detect guesses the language of code with a default Detector.
func Detect(code []byte) string {
	return New().Detect(code)
}

func bySignature(trimmed []byte) string {
	head := string(trimmed[:min(len(trimmed), 64)])
	lower := strings.ToLower(head)
	for _, sig := range signatures {
		subject := head
		if sig.fold {
			subject = lower
		}
		if strings.HasPrefix(subject, sig.prefix) {
			return sig.lang
		}
	}
	return Unknown
}

// byStructure recognizes data formats by their outer shape.
func byStructure(trimmed []byte) string {
	first, last := trimmed[0], trimmed[len(trimmed)-1]
	if (first == '{' && last == '}') || (first == '[' && last == ']') {
		if bytes.Contains(trimmed, []byte(`"`)) {
			return "json"
		}
	}

	if bytes.HasPrefix(trimmed, []byte("---\n")) {
		return "yaml"
	}

	return Unknown
}

func countLines(trimmed []byte) int {
	n := 0
	for line := range bytes.SplitSeq(trimmed, []byte("\n")) {
		if len(bytes.TrimSpace(line)) > 0 {
			n++
		}
	}
	return n
}

func alias(lang string) string {
	if a, ok := aliases[lang]; ok {
		return a
	}
	return strings.ToLower(lang)
}
