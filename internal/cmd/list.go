package cmd

import (
	"fmt"

	"github.com/dendrascience/unitypackage/util"
	"github.com/spf13/cobra"
)

// NewListCmd creates and returns the list subcommand for the unitypackage CLI.
// It finds .unitypackage files below a folder, by default the Asset Store cache.
func NewListCmd(e *env) *cobra.Command {
	var assetsFolder string

	cmd := &cobra.Command{
		Use:   "list [FOLDER]",
		Short: "Lists unitypackages in the Unity Asset Store folder",
		Long: `Recursively search a folder for .unitypackage files and print each one.

The folder defaults to the Unity Asset Store download cache for this
platform. It can also be set with --assets-folder, the positional
argument, or UNITYPACKAGE_ASSETS_FOLDER.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder := stringSetting(cmd, "assets-folder", assetsFolder, e.cfg.AssetsFolder)
			if len(args) > 0 {
				folder = args[0]
			}
			return runList(cmd, e, folder)
		},
	}

	cmd.Flags().StringVar(&assetsFolder, "assets-folder", "", "Unity Asset Store folder")

	return cmd
}

func runList(cmd *cobra.Command, e *env, folder string) error {
	if folder == "" {
		return fmt.Errorf("no assets folder given and no default could be determined")
	}
	e.logger.Info("Listing unitypackages", "folder", folder)

	count := 0
	err := util.WalkPackages(folder, func(path string) error {
		count++
		_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
		return err
	})
	if err != nil {
		return fmt.Errorf("listing %s: %w", folder, err)
	}
	e.logger.Debug("Listing complete", "packages", count)
	return nil
}
