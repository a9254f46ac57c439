package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdtok/pkg/runner"
)

func TestRulesCommand_FormatFlag(t *testing.T) {
	cmd := newRulesCommand()
	flag := cmd.Flags().Lookup("format")
	require.NotNil(t, flag)
	assert.Equal(t, "text", flag.DefValue)
}

func TestDescribeRules(t *testing.T) {
	parser, err := runner.BuildParser(nil)
	require.NoError(t, err)

	infos := describeRules(parser.Ruler().All())
	require.Len(t, infos, 6)

	for _, info := range infos {
		assert.NotEmpty(t, info.Description, "rule %s has no description", info.Name)
		assert.NotNil(t, info.Alt, "rule %s", info.Name)
	}

	assert.Equal(t, "code", infos[0].Name)
	assert.Empty(t, infos[0].Alt)
	assert.Equal(t, "deflist", infos[4].Name)
	assert.Equal(t, []string{"paragraph", "reference"}, infos[4].Alt)
}

func TestOutputRulesText(t *testing.T) {
	var buf bytes.Buffer
	outputRulesText(&buf, []ruleInfo{
		{Name: "code", Alt: []string{}, Enabled: false},
		{Name: "fence", Alt: []string{"paragraph", "list"}, Enabled: true},
	})

	output := buf.String()
	assert.Contains(t, output, "block rules, in order")
	assert.Contains(t, output, "interrupts=-")
	assert.Contains(t, output, "interrupts=paragraph,list")
	assert.Contains(t, output, "enabled=false")
}

func TestOutputRulesJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, outputRulesJSON(&buf, []ruleInfo{{Name: "deflist", Alt: []string{"paragraph"}, Enabled: true}}))
	assert.JSONEq(t, `[{"name":"deflist","description":"","alt":["paragraph"],"enabled":true}]`, buf.String())
}
