package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dirtbike/mkschroot/internal/utils/logger"
)

var version = "dev"

// Logging command flags
var (
	logLevel string // explicit level, wins over --verbose
	verbose  bool
)

func main() {
	root := createRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// createRootCommand creates the mkschroot root command
func createRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "mkschroot",
		Short: "provisions schroot build environments",
		Long: `mkschroot creates a chroot-based build environment for package
		building: it detects the host architecture and release codename,
		writes the schroot configuration, bootstraps a minimal root
		filesystem with debootstrap and enables the extra package
		repository inside the new chroot.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level: debug, info, warn, or error")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Shorthand for --log-level debug")

	root.AddCommand(createCreateCommand())
	root.AddCommand(createValidateCommand())
	root.AddCommand(createVersionCommand())

	attachLoggingHooks(root)
	return root
}

// attachLoggingHooks installs logger initialization on every subcommand so
// the level flags take effect before the first log line.
func attachLoggingHooks(root *cobra.Command) {
	for _, cmd := range root.Commands() {
		cmd.PersistentPreRunE = initLogging
	}
}

func initLogging(cmd *cobra.Command, args []string) error {
	level := resolveRequestedLogLevel(cmd)
	if level == "" {
		level = "info"
	}
	return logger.InitWithLevel(level)
}

// resolveRequestedLogLevel prefers an explicit --log-level and falls back
// to --verbose. Empty means the caller requested nothing.
func resolveRequestedLogLevel(cmd *cobra.Command) string {
	if logLevel != "" {
		return logLevel
	}
	if cmd != nil {
		if f := cmd.Flags().Lookup("verbose"); f != nil && f.Changed {
			return "debug"
		}
	}
	return ""
}

func createVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "prints the mkschroot version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "mkschroot "+version)
		},
	}
}
