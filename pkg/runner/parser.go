package runner

import (
	"fmt"
	"slices"

	"github.com/yaklabco/gomdtok/pkg/block"
	"github.com/yaklabco/gomdtok/pkg/config"
	"github.com/yaklabco/gomdtok/pkg/deflist"
	"github.com/yaklabco/gomdtok/pkg/langdetect"
	gmparser "github.com/yaklabco/gomdtok/pkg/parser/goldmark"
)

// BuildParser creates the block parser described by cfg: the core rules
// plus definition lists, with inline parsing and fence language detection
// when enabled. A nil cfg means the defaults.
func BuildParser(cfg *config.Config) (*block.Parser, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	disabled := cfg.DisabledRules()
	slices.Sort(disabled)

	opts := []block.Option{
		block.WithExtensions(deflist.Extension),
		block.WithMaxNesting(cfg.EffectiveMaxNesting()),
		block.WithDisabled(disabled...),
	}

	if cfg.InlineEnabled() {
		opts = append(opts, block.WithInline(gmparser.New(string(cfg.Flavor))))
	}

	if cfg.DetectLanguagesEnabled() {
		opts = append(opts, block.WithLanguageDetector(langdetect.New().Detect))
	}

	parser, err := block.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("build parser: %w", err)
	}

	return parser, nil
}
