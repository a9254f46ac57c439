package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdtok/internal/logging"
	"github.com/yaklabco/gomdtok/pkg/block"
	"github.com/yaklabco/gomdtok/pkg/config"
	"github.com/yaklabco/gomdtok/pkg/runner"
)

type rulesFlags struct {
	format string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Alt         []string `json:"alt"`
	Enabled     bool     `json:"enabled"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List block rules",
		Long: `List the block rules in the order the tokenizer tries them, the
chains they join (the rules they may interrupt), and whether the resolved
configuration enables them.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.format != "text" && flags.format != formatJSON {
				return usageError(fmt.Errorf("invalid format %q: must be text or json", flags.format))
			}

			loadResult, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}

			parser, err := runner.BuildParser(loadResult.Config)
			if err != nil {
				return withCode(ExitConfigError, err)
			}

			infos := describeRules(parser.Ruler().All())

			if flags.format == formatJSON {
				return outputRulesJSON(cmd.OutOrStdout(), infos)
			}
			outputRulesText(cmd.OutOrStdout(), infos)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

// describeRules pairs registered rules with their built-in descriptions.
func describeRules(rules []block.Rule) []ruleInfo {
	descriptions := make(map[string]string)
	for _, builtin := range config.BuiltinRules() {
		descriptions[builtin.Name] = builtin.Description
	}

	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		alt := rule.Alt
		if alt == nil {
			alt = []string{}
		}
		infos = append(infos, ruleInfo{
			Name:        rule.Name,
			Description: descriptions[rule.Name],
			Alt:         alt,
			Enabled:     rule.Enabled,
		})
	}
	return infos
}

func outputRulesText(w io.Writer, infos []ruleInfo) {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
		Level:           log.InfoLevel,
	})

	logger.Info("block rules, in order")

	for _, info := range infos {
		interrupts := "-"
		if len(info.Alt) > 0 {
			interrupts = strings.Join(info.Alt, ",")
		}

		logger.Info(info.Name,
			logging.FieldEnabled, info.Enabled,
			logging.FieldInterrupts, interrupts,
			logging.FieldDescription, info.Description,
		)
	}
}

// outputRulesJSON outputs rules as a JSON array.
func outputRulesJSON(w io.Writer, infos []ruleInfo) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
