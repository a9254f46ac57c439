// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yaklabco/gomdtok/pkg/mdast"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Status styles
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Token components
	FilePath   lipgloss.Style
	Location   lipgloss.Style
	TokenOpen  lipgloss.Style
	TokenClose lipgloss.Style
	TokenSelf  lipgloss.Style
	Tag        lipgloss.Style
	Content    lipgloss.Style
	Markup     lipgloss.Style
	Meta       lipgloss.Style
	Hidden     lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableBorder    lipgloss.Style
	TableOpenRow   lipgloss.Style
	TableCloseRow  lipgloss.Style
	TableHiddenRow lipgloss.Style
	TableLegend    lipgloss.Style
	TableSeparator lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),

		FilePath:   lipgloss.NewStyle().Bold(true),
		Location:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		TokenOpen:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		TokenClose: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		TokenSelf:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Tag:        lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		Content:    lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Markup:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Meta:       lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Italic(true),
		Hidden:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Faint(true),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableBorder:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		TableOpenRow:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")), // Blue text
		TableCloseRow:  lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		TableHiddenRow: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		TableLegend:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		TableSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Error:          plain,
		Warning:        plain,
		Info:           plain,
		FilePath:       plain,
		Location:       plain,
		TokenOpen:      plain,
		TokenClose:     plain,
		TokenSelf:      plain,
		Tag:            plain,
		Content:        plain,
		Markup:         plain,
		Meta:           plain,
		Hidden:         plain,
		SummaryTitle:   plain,
		SummaryValue:   plain,
		Success:        plain,
		Failure:        plain,
		TableHeader:    plain,
		TableBorder:    plain,
		TableOpenRow:   plain,
		TableCloseRow:  plain,
		TableHiddenRow: plain,
		TableLegend:    plain,
		TableSeparator: plain,
		Dim:            plain,
		Bold:           plain,
	}
}

// TokenStyle returns the style for a token's type name.
func (s *Styles) TokenStyle(tok *mdast.Token) lipgloss.Style {
	switch {
	case tok.Hidden:
		return s.Hidden
	case tok.IsOpen():
		return s.TokenOpen
	case tok.IsClose():
		return s.TokenClose
	default:
		return s.TokenSelf
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
