package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/prefpanel/internal/cli"
	"github.com/pluqqy/prefpanel/pkg/appearance"
	"github.com/pluqqy/prefpanel/pkg/models"
)

// ThemeResult is the outcome of resolving a theme mode
type ThemeResult struct {
	Mode        string `json:"mode" yaml:"mode"`
	PrefersDark bool   `json:"prefers_dark" yaml:"prefers_dark"`
	Source      string `json:"source" yaml:"source"`
	Effective   string `json:"effective" yaml:"effective"`
}

// NewThemeCommand creates the theme command
func NewThemeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show the detected platform preference and the effective theme",
		Long: `Run platform dark-mode detection and show which theme a mode resolves to.

Detection consults, in order: the appearance.color_scheme config key,
PREFPANEL_COLOR_SCHEME and COLORFGBG, gsettings, then the terminal background.

Examples:
  # Show what "system" resolves to right now
  prefpanel theme

  # Check an explicit mode
  prefpanel theme --mode dark -o json`,
		Args: cobra.NoArgs,
		RunE: runTheme,
	}

	cmd.Flags().String("mode", string(models.ThemeSystem), "Theme mode to resolve (light, dark, system)")
	addOutputFlag(cmd)
	return cmd
}

func runTheme(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	modeFlag, _ := cmd.Flags().GetString("mode")
	mode, err := cli.ValidateThemeMode(modeFlag)
	if err != nil {
		return err
	}

	rt, err := cli.NewRuntime(RuntimeOptionsFromFlags(cmd))
	if err != nil {
		return err
	}
	defer rt.Close()

	pref := rt.Resolver.Refresh()
	result := ThemeResult{
		Mode:        string(mode),
		PrefersDark: pref.PrefersDark,
		Source:      pref.Source,
		Effective:   string(appearance.Effective(mode, pref.PrefersDark)),
	}
	rt.Logger.Debug().Str("source", result.Source).Str("effective", result.Effective).Msg("theme resolved")

	if format != cli.FormatText {
		return cli.OutputResults(cmd.OutOrStdout(), format, result)
	}

	platform := "light"
	if result.PrefersDark {
		platform = "dark"
	}
	out := cmd.OutOrStdout()
	cli.PrintInfo(out, "Platform preference: %s (from %s)", platform, result.Source)
	cli.PrintInfo(out, "Mode: %s", result.Mode)
	fmt.Fprintf(out, "Effective theme: %s\n", result.Effective)
	return nil
}
