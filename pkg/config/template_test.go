package config_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdtok/pkg/config"
)

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	t.Run("minimal yaml parses", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), config.DefaultTemplateHeader()))

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)
	})

	t.Run("full yaml lists every rule", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
		require.NoError(t, err)

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, config.RuleNames(config.BuiltinRules()), sortedKeys(cfg.Rules))
		assert.Equal(t, 100, cfg.EffectiveMaxNesting())
		assert.Contains(t, string(data), "# Interrupts: paragraph, reference\n  deflist:")
	})

	t.Run("custom rules", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{
			Full:  true,
			Rules: []config.RuleInfo{{Name: "paragraph", Enabled: true}},
		})
		require.NoError(t, err)

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, []string{"paragraph"}, sortedKeys(cfg.Rules))
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{Full: true, Format: "json"})
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "commonmark", decoded["flavor"])
		assert.Contains(t, decoded["rules"], "deflist")
	})

	t.Run("long descriptions wrap", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{
			Full: true,
			Rules: []config.RuleInfo{{
				Name:        "paragraph",
				Description: strings.Repeat("word ", 30),
			}},
		})
		require.NoError(t, err)

		for line := range strings.SplitSeq(string(data), "\n") {
			if strings.HasPrefix(line, "  # word") {
				assert.LessOrEqual(t, len(line), 74)
			}
		}
	})
}

func sortedKeys(rules map[string]config.RuleConfig) []string {
	names := make([]config.RuleInfo, 0, len(rules))
	for name := range rules {
		names = append(names, config.RuleInfo{Name: name})
	}
	return config.RuleNames(names)
}
