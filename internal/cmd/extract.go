package cmd

import (
	"fmt"

	"github.com/dendrascience/unitypackage/util"
	"github.com/spf13/cobra"
)

// NewExtractCmd creates and returns the extract subcommand for the unitypackage CLI.
// It unpacks a package and copies its assets into an output folder.
func NewExtractCmd(e *env) *cobra.Command {
	var (
		bundle  string
		out     string
		tmp     string
		include []string
		flatten bool
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract the contents of a unitypackage",
		Long: `Extract the assets of a .unitypackage into an output folder.

Each asset is written to the path it declares, relative to the output
folder. With --flatten every "/" in that path becomes "_" and all assets
land directly in the output folder. --include limits extraction to the
given file extensions. Assets without an extension are never extracted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := util.ProjectOptions{
				Destination: stringSetting(cmd, "out", out, e.cfg.Out),
				Flatten:     boolSetting(cmd, "flatten", flatten, e.cfg.Flatten),
				Include:     util.ParseExtensions(sliceSetting(cmd, "include", include, e.cfg.Include)),
				Logger:      e.logger,
			}
			return runExtract(cmd, e, bundle, stringSetting(cmd, "tmp", tmp, e.cfg.Tmp), opts, dryRun)
		},
	}

	cmd.Flags().StringVarP(&bundle, "bundle", "b", "", "Path to the .unitypackage (required)")
	cmd.Flags().StringVarP(&out, "out", "o", "out", "Output folder")
	cmd.Flags().BoolVarP(&flatten, "flatten", "f", false, "Flatten folder structure")
	cmd.Flags().StringVar(&tmp, "tmp", "", "Tmp folder to unpack to (defaults to a private system tmp folder)")
	cmd.Flags().StringSliceVarP(&include, "include", "i", nil, "Asset file extensions to extract (defaults to all)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be extracted without writing files")

	cmd.MarkFlagRequired("bundle")

	return cmd
}

func runExtract(cmd *cobra.Command, e *env, bundle, tmp string, opts util.ProjectOptions, dryRun bool) error {
	scratch, err := unpackBundle(cmd.Context(), e, bundle, tmp)
	if err != nil {
		return err
	}
	defer scratch.Close()

	if opts.Include.Active() {
		e.logger.Info("Only extracting", "extensions", opts.Include.Sorted())
	}

	if dryRun {
		plan, err := util.Plan(scratch.Path, opts)
		if err != nil {
			return err
		}
		for _, p := range plan {
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", p.Folder.Name(), p.Target(opts.Destination))
		}
		e.logger.Info("Would extract assets", "count", len(plan))
		return nil
	}

	e.logger.Info("Extracting assets", "out", opts.Destination, "flatten", opts.Flatten)
	count, err := util.Project(scratch.Path, opts)
	if err != nil {
		return fmt.Errorf("extracting %s (%d assets written before failure): %w", bundle, count, err)
	}
	e.logger.Info(fmt.Sprintf("Extracted %d assets", count))
	return nil
}
