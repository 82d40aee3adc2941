package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/eramap/internal/cmd/output"
)

// Execute runs the eramap CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "eramap",
		Short:   "Chinese era-name year dataset builder",
		Version: a.version,
		Long: `eramap builds a dataset mapping Chinese era names of the period
between the Han and Sui dynasties to their AD year ranges.

It extracts era tables from the list of Chinese era names on Wikipedia,
reconciles them with an authoritative list of (regime, era) entries and
writes the merged records as JSON.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})

	c := a.config
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.ConfigFile, "config", "", "config file (default is $HOME/.eramap.yaml)")
	flags.BoolVarP(&c.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolVarP(&c.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.BoolVar(&c.NoColor, "no-color", false, "disable colored output")
	flags.StringVarP(&c.Format, "format", "o", "", "output format: table, json, yaml")
	flags.StringVar(&c.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	// Document source and window, shared by scrape and extract. Defaults
	// come from the loaded configuration.
	flags.StringVar(&c.APIURL, "api-url", c.APIURL, "MediaWiki api.php endpoint")
	flags.StringVar(&c.Page, "page", c.Page, "page title to extract")
	flags.StringVar(&c.Variant, "variant", c.Variant, "script variant requested from the API")
	flags.DurationVar(&c.Timeout, "timeout", c.Timeout, "document fetch timeout")
	flags.StringVarP(&c.InputPath, "input", "i", c.InputPath, "read markup from a local HTML file instead of fetching")
	flags.IntVar(&c.WindowMin, "window-min", c.WindowMin, "lowest plausible AD year")
	flags.IntVar(&c.WindowMax, "window-max", c.WindowMax, "highest plausible AD year")

	rootCmd.SetVersionTemplate("eramap {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	// These flags are defined as persistent flags in createRootCommand, so errors indicate programming errors
	verbose := mustGetBool(cmd, "verbose")
	quiet := mustGetBool(cmd, "quiet")
	noColor := mustGetBool(cmd, "no-color")
	format := mustGetString(cmd, "format")
	logLevel := mustGetString(cmd, "log-level")

	if cmd.Flags().Changed("config") {
		changed := func(flag string) bool { return flag != "" && cmd.Flags().Changed(flag) }
		if err := a.config.ApplyConfigFile(mustGetString(cmd, "config"), changed); err != nil {
			return err
		}
	}

	a.config.UpdateFromFlags(verbose, quiet, noColor, format, logLevel)

	if _, err := output.ParseFormat(a.config.Format); err != nil {
		return err
	}

	// Commands with a --report flag default it from report_path
	if f := cmd.Flags().Lookup("report"); f != nil && !f.Changed && a.config.ReportPath != "" {
		if err := f.Value.Set(a.config.ReportPath); err != nil {
			return err
		}
	}

	// Reinitialize logger with updated config
	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(a.CreateScrapeCommand())
	rootCmd.AddCommand(a.CreateExtractCommand())
	rootCmd.AddCommand(a.CreateVersionCommand())
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		//nolint:errcheck // Ignoring write error since we're exiting anyway
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
