package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pluqqy/prefpanel/cmd/commands"
	"github.com/pluqqy/prefpanel/internal/cli"
	"github.com/pluqqy/prefpanel/internal/config"
	"github.com/pluqqy/prefpanel/pkg/appearance"
	"github.com/pluqqy/prefpanel/pkg/modal"
	"github.com/pluqqy/prefpanel/pkg/store"
	"github.com/pluqqy/prefpanel/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var startCategory string

var rootCmd = &cobra.Command{
	Use:   "prefpanel",
	Short: "Terminal settings panel with light, dark and system themes",
	Long: `Prefpanel is an interactive settings panel for the terminal. Categories are
listed in a sidebar; each setting is a toggle, select, slider or button, and
destructive account actions ask for confirmation first.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runPanel(cmd); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func runPanel(cmd *cobra.Command) error {
	rt, err := cli.NewRuntime(commands.RuntimeOptionsFromFlags(cmd))
	if err != nil {
		return err
	}
	defer rt.Close()

	cfg := rt.Config.Get()
	category := cfg.UI.StartCategory
	if startCategory != "" {
		if err := cli.ValidateCategory(startCategory); err != nil {
			return err
		}
		category = startCategory
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A config edit may change the color scheme override
	rt.Config.OnChange(func(*config.Config) {
		rt.Resolver.Refresh()
	})
	rt.Config.Watch(func(err error) {
		rt.Logger.Warn().Err(err).Msg("ignoring invalid config change")
	})
	go appearance.NewPoller(rt.Resolver, cfg.Appearance.PollInterval, rt.Logger).Run(ctx)

	app := tui.NewApp(ctx, tui.Options{
		Store:         store.New(rt.Logger),
		Performer:     modal.NewSimulatedPerformer(rt.Logger),
		Platform:      rt.Resolver,
		StartCategory: category,
		StatusTimeout: cfg.UI.StatusTimeout,
		Logger:        rt.Logger,
	})
	defer app.Close()

	rt.Logger.Info().Str("version", version).Str("category", category).Msg("starting settings panel")

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start the terminal user interface: %w", err)
	}
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of prefpanel",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "prefpanel version %s\n", version)
	},
}

func init() {
	commands.RegisterPersistentFlags(rootCmd)
	rootCmd.Flags().StringVarP(&startCategory, "category", "c", "", "Category to open on start")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(commands.NewDefaultsCommand())
	rootCmd.AddCommand(commands.NewCatalogCommand())
	rootCmd.AddCommand(commands.NewThemeCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Command execution failed: %v\n", err)
		os.Exit(1)
	}
}
