package deflist

import (
	"fmt"

	"github.com/yaklabco/gomdtok/pkg/block"
)

// Name is the rule name the definition list registers under.
const Name = "deflist"

// Register inserts the definition list rule before the paragraph rule.
// Inside a description, a marker line may interrupt a paragraph.
func Register(p *block.Parser) error {
	err := p.Ruler().Before(block.RuleParagraph, Name, Rule, block.RuleOptions{
		Alt: []string{block.RuleParagraph, "reference"},
	})
	if err != nil {
		return fmt.Errorf("register %s: %w", Name, err)
	}
	return nil
}

type extender struct{}

// Extension enables definition lists through block.WithExtensions.
//
//nolint:gochecknoglobals // Stateless extension value.
var Extension block.Extension = extender{}

func (extender) Extend(p *block.Parser) error {
	return Register(p)
}
