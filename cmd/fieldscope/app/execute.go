package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/fieldscope/internal/cmd/output"
	"github.com/agentstation/fieldscope/pkg/errors"
)

// Execute runs the fieldscope CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(append([]string{}, args...))
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "fieldscope",
		Short:   "Search-field and standards lookup",
		Version: a.version,
		Long: `Fieldscope answers questions about the searchable fields of an
application suite: which fields an app/modal has, what a field's
attributes are, and which fields comply with each search standard.

The two catalogs are CSV tables read from local files or URLs. When
they cannot be loaded, fieldscope falls back to a small built-in sample.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands:",
	})

	// Flags are read back in setupCommand so values loaded from the
	// environment survive when a flag is not given.
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.fieldscope.yaml)")
	flags.BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.Bool("no-color", false, "disable colored output")
	flags.StringP("format", "o", "", "output format: table, json, yaml, markdown, wide")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	flags.String("search-data", "", "search-field table: file path or URL")
	flags.String("standards-data", "", "standards table: file path or URL")
	flags.Bool("sample", false, "use the built-in sample data")
	flags.Bool("no-fallback", false, "fail instead of falling back to the sample data")

	rootCmd.SetVersionTemplate("fieldscope {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("config") {
		config, err := loadConfig(mustGetString(cmd, "config"))
		if err != nil {
			return errors.NewConfigError("app", "failed to load config file", err)
		}
		a.config = config
	}

	// These flags are defined as persistent flags in createRootCommand, so errors indicate programming errors
	verbose := mustGetBool(cmd, "verbose")
	quiet := mustGetBool(cmd, "quiet")
	noColor := mustGetBool(cmd, "no-color")
	format := mustGetString(cmd, "format")
	logLevel := mustGetString(cmd, "log-level")

	var o Overrides
	if cmd.Flags().Changed("search-data") {
		v := mustGetString(cmd, "search-data")
		o.SearchData = &v
	}
	if cmd.Flags().Changed("standards-data") {
		v := mustGetString(cmd, "standards-data")
		o.StandardsData = &v
	}
	if cmd.Flags().Changed("sample") {
		v := mustGetBool(cmd, "sample")
		o.UseSample = &v
	}
	if cmd.Flags().Changed("no-fallback") {
		v := mustGetBool(cmd, "no-fallback")
		o.NoFallback = &v
	}

	a.config.UpdateFromFlags(verbose, quiet, noColor, format, logLevel, o)

	if _, err := output.ParseFormat(a.config.Format); err != nil {
		return errors.NewValidationError("format", a.config.Format, err.Error())
	}

	// Reinitialize logger with updated config
	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
