package commands

import (
	"github.com/spf13/cobra"

	"github.com/pluqqy/prefpanel/internal/cli"
)

// Persistent flag names registered on the root command
const (
	FlagConfig   = "config"
	FlagLogLevel = "log-level"
	FlagLogFile  = "log-file"
	FlagQuiet    = "quiet"
	FlagNoColor  = "no-color"
)

// RegisterPersistentFlags adds the flags every command shares and applies
// the output flags before any command runs.
func RegisterPersistentFlags(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.String(FlagConfig, "", "Config file (default $XDG_CONFIG_HOME/prefpanel/config.yaml)")
	flags.String(FlagLogLevel, "", "Log level (trace, debug, info, warn, error)")
	flags.String(FlagLogFile, "", "Log file (default $XDG_STATE_HOME/prefpanel/prefpanel.log)")
	flags.BoolP(FlagQuiet, "q", false, "Suppress informational output")
	flags.Bool(FlagNoColor, false, "Disable symbols in output")

	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		q, _ := cmd.Flags().GetBool(FlagQuiet)
		nc, _ := cmd.Flags().GetBool(FlagNoColor)
		cli.SetGlobalFlags(q, nc)
	}
}

// RuntimeOptionsFromFlags reads the persistent flags. Flags missing from
// the command's flag set are left empty.
func RuntimeOptionsFromFlags(cmd *cobra.Command) cli.RuntimeOptions {
	configPath, _ := cmd.Flags().GetString(FlagConfig)
	logLevel, _ := cmd.Flags().GetString(FlagLogLevel)
	logFile, _ := cmd.Flags().GetString(FlagLogFile)
	return cli.RuntimeOptions{
		ConfigPath: configPath,
		LogLevel:   logLevel,
		LogFile:    logFile,
	}
}

func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "text", "Output format (text, json, yaml)")
}

func outputFormat(cmd *cobra.Command) (cli.OutputFormat, error) {
	s, _ := cmd.Flags().GetString("output")
	return cli.ParseOutputFormat(s)
}
