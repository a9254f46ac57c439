package block

import "strings"

// IsSpace reports whether ch is a space or a tab, the only characters that
// count as indentation.
func IsSpace(ch byte) bool {
	return ch == ' ' || ch == '\t'
}

// normalizer rewrites line endings to LF and NUL to the replacement character.
//
//nolint:gochecknoglobals // Read-only replacer.
var normalizer = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\x00", "�")

// Normalize prepares raw input for NewState.
func Normalize(src string) string {
	return normalizer.Replace(src)
}

func spaces(n int) string {
	return strings.Repeat(" ", n)
}

func joinStrings(parts []string) string {
	return strings.Join(parts, "")
}

// trimSpace trims Unicode whitespace from both ends, as inline content
// extraction expects.
func trimSpace(s string) string {
	return strings.TrimSpace(s)
}
