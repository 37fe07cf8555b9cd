package commands

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pluqqy/prefpanel/internal/cli"
	"github.com/pluqqy/prefpanel/pkg/models"
)

// writeClipboard is replaced in tests
var writeClipboard = clipboard.WriteAll

// NewDefaultsCommand creates the defaults command
func NewDefaultsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Show the default preference record",
		Long: `Show every preference key with its kind, default value and allowed values.
With -o yaml or -o json the default record itself is printed.

Examples:
  # Show defaults as a table
  prefpanel defaults

  # Show the default record as YAML
  prefpanel defaults -o yaml

  # Copy the default record to the clipboard as YAML
  prefpanel defaults --copy`,
		Args: cobra.NoArgs,
		RunE: runDefaults,
	}

	addOutputFlag(cmd)
	cmd.Flags().Bool("copy", false, "Copy the default record to the clipboard as YAML")
	return cmd
}

func runDefaults(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	if copyFlag, _ := cmd.Flags().GetBool("copy"); copyFlag {
		data, err := yaml.Marshal(models.DefaultPreferences())
		if err != nil {
			return fmt.Errorf("failed to encode defaults: %w", err)
		}
		if err := writeClipboard(string(data)); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		cli.PrintSuccess(cmd.OutOrStdout(), "default preferences copied to clipboard")
		return nil
	}

	if format != cli.FormatText {
		return cli.OutputResults(cmd.OutOrStdout(), format, models.DefaultPreferences())
	}

	defs := models.Definitions()
	table := cli.NewTableFormatter(cmd.OutOrStdout())
	table.Header("KEY", "KIND", "DEFAULT", "ALLOWED")
	for _, def := range defs {
		table.Row(string(def.Key), def.Kind.String(), def.Default.String(), allowedValues(def))
	}
	table.Flush()

	cli.PrintInfo(cmd.OutOrStdout(), "%d preferences; use -o yaml for the record", len(defs))
	return nil
}

func allowedValues(def models.Definition) string {
	switch def.Kind {
	case models.KindInt:
		return fmt.Sprintf("%d-%d", def.Min, def.Max)
	case models.KindEnum:
		values := make([]string, 0, len(def.Options))
		for _, opt := range def.Options {
			values = append(values, opt.Value)
		}
		return strings.Join(values, ", ")
	default:
		return "true, false"
	}
}
