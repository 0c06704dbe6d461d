package main

import (
	"errors"
	"io"

	"github.com/lixenwraith/c2rust-config/internal/log"
	"github.com/lixenwraith/c2rust-config/internal/settings"
	"github.com/spf13/cobra"
)

// settingsFlags maps command-line flags to the settings paths they override.
var settingsFlags = map[string]string{
	"project-root": "project_root",
	"revision":     "revision",
	"log-level":    "log.level",
	"log-format":   "log.format",
}

// rootOptions is shared by every subcommand.
type rootOptions struct {
	stdout io.Writer
	stderr io.Writer

	settingsFile string
	projectRoot  string
	logLevel     string
	logFormat    string

	// loaded is populated before any subcommand runs
	loaded *settings.Loaded
}

// newRootCmd builds the command tree writing to the given streams.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:   "c2rust-config",
		Short: "C2Rust configuration tool",
		Long: `c2rust-config reads and rewrites the .c2rust/config.toml file of a
C2Rust translation project.

Values live in three kinds of sections: [global], [model] and one
[feature.<name>] table per build feature. Keys use dot notation
(build.dir, build.files.0) and hold a string or an array of strings.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.loadSettings(cmd)
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{msg: err.Error()}
	})

	// Global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&opts.settingsFile, "settings", "", "Settings file (default: $C2RUST_CONFIG_SETTINGS, then XDG config dirs)")
	rootCmd.PersistentFlags().StringVar(&opts.projectRoot, "project-root", "", "Project root containing .c2rust (default: $C2RUST_PROJECT_ROOT or the working directory)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Diagnostic log level: trace, debug, info, warn, error, disabled")
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Diagnostic log format: console or json")

	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd(opts))
	return rootCmd
}

// loadSettings assembles the tool settings and configures logging.
func (o *rootOptions) loadSettings(cmd *cobra.Command) error {
	builder := settings.NewBuilder().WithFileDiscovery(settings.DefaultDiscoveryOptions())
	if o.settingsFile != "" {
		builder.WithFile(o.settingsFile)
	}
	for flagName, path := range settingsFlags {
		if f := cmd.Flags().Lookup(flagName); f != nil && f.Changed {
			builder.WithOverride(path, f.Value.String())
		}
	}

	loaded, err := builder.Build()
	if err != nil {
		if errors.Is(err, settings.ErrInvalidSettings) {
			return usageError{msg: err.Error()}
		}
		return err
	}
	o.loaded = loaded

	log.Configure(log.Config{
		Level:  loaded.Settings.Log.Level,
		Format: loaded.Settings.Log.Format,
		Output: o.stderr,
	})

	logger := log.WithComponent("settings")
	logger.Debug().
		Str("file", loaded.File).
		Str("revision", loaded.Settings.Revision).
		Str("revision_source", string(loaded.Origin["revision"])).
		Str("project_root", loaded.Settings.ProjectRoot).
		Msg("settings loaded")
	return nil
}
