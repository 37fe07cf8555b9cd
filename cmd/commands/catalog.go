package commands

import (
	"github.com/spf13/cobra"

	"github.com/pluqqy/prefpanel/internal/cli"
	"github.com/pluqqy/prefpanel/pkg/catalog"
)

// CatalogCategory is one sidebar entry with its items
type CatalogCategory struct {
	ID    string        `json:"id" yaml:"id"`
	Title string        `json:"title" yaml:"title"`
	Items []CatalogItem `json:"items" yaml:"items"`
}

// CatalogItem is one setting row of the detail pane
type CatalogItem struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Control     string `json:"control" yaml:"control"`
	Key         string `json:"key,omitempty" yaml:"key,omitempty"`
	Action      string `json:"action,omitempty" yaml:"action,omitempty"`
}

// NewCatalogCommand creates the catalog command
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog [category]",
		Short: "List setting categories and their items",
		Long: `List the categories shown in the sidebar and the settings each one holds.

Examples:
  # List everything
  prefpanel catalog

  # List the privacy settings as JSON
  prefpanel catalog privacy -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCatalog,
	}

	addOutputFlag(cmd)
	return cmd
}

func runCatalog(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	var only string
	if len(args) == 1 {
		only = args[0]
		if err := cli.ValidateCategory(only); err != nil {
			return err
		}
	}

	result := make([]CatalogCategory, 0)
	for _, spec := range catalog.Categories() {
		if only != "" && spec.ID != only {
			continue
		}
		cat := CatalogCategory{ID: spec.ID, Title: spec.Title}
		for _, is := range spec.Items {
			cat.Items = append(cat.Items, CatalogItem{
				ID:          is.ID,
				Title:       is.Title,
				Description: is.Description,
				Control:     is.Kind.String(),
				Key:         string(is.Key),
				Action:      string(is.Action),
			})
		}
		result = append(result, cat)
	}

	if format != cli.FormatText {
		return cli.OutputResults(cmd.OutOrStdout(), format, result)
	}

	items := 0
	table := cli.NewTableFormatter(cmd.OutOrStdout())
	table.Header("CATEGORY", "ITEM", "CONTROL", "KEY/ACTION", "DESCRIPTION")
	for _, cat := range result {
		for _, item := range cat.Items {
			items++
			target := item.Key
			if target == "" {
				target = item.Action
			}
			table.Row(cat.ID, item.Title, item.Control, target, cli.TruncateString(item.Description, 40))
		}
	}
	table.Flush()

	cli.PrintInfo(cmd.OutOrStdout(), "%d categories, %d items", len(result), items)
	return nil
}
