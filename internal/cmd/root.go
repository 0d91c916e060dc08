package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/dendrascience/unitypackage/internal/config"
	"github.com/dendrascience/unitypackage/version"
	"github.com/spf13/cobra"
)

// env carries the loaded configuration and logger to every subcommand.
// It is filled in by the root command's PersistentPreRunE.
type env struct {
	cfg    config.Config
	logger *log.Logger
}

// NewRootCmd creates and returns the root cobra command for the unitypackage CLI.
// It sets up all subcommands, command groups, and basic configuration.
func NewRootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)
	e := &env{cfg: config.Default(), logger: log.Default()}

	rootCmd := &cobra.Command{
		Use:   "unitypackage",
		Short: "unitypackage - Extract Unity .unitypackage archives into a plain file tree",
		Long: `unitypackage unpacks Unity asset packages and lays their assets out as
ordinary files, using the path each asset declares for itself.

Use subcommands to perform different operations:
  - extract: Copy a package's assets into an output folder
  - inspect: Count a package's assets by file type
  - list: Find packages in the Unity Asset Store cache
  - validate: Report malformed asset folders in a package
  - mount: Serve a package's assets read-only over FUSE`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			level, err := log.ParseLevel(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
			}
			e.cfg = cfg
			e.logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
				Prefix: "unitypackage",
				Level:  level,
			})
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (defaults to the user config dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	groupPackages := "packages"
	groupUtilities := "utilities"

	// Add command groups for better organization
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupPackages,
		Title: "Package Operations",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	extractCmd := NewExtractCmd(e)
	inspectCmd := NewInspectCmd(e)
	listCmd := NewListCmd(e)
	validateCmd := NewValidateCmd(e)
	mountCmd := NewMountCmd(e)

	extractCmd.GroupID = groupPackages
	inspectCmd.GroupID = groupPackages
	mountCmd.GroupID = groupPackages
	listCmd.GroupID = groupUtilities
	validateCmd.GroupID = groupUtilities

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(mountCmd)

	return rootCmd
}
