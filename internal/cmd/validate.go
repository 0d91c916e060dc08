package cmd

import (
	"fmt"

	"github.com/dendrascience/unitypackage/util"
	"github.com/spf13/cobra"
)

// NewValidateCmd creates and returns the validate subcommand for the unitypackage CLI.
// It reports every malformed asset folder in a package.
func NewValidateCmd(e *env) *cobra.Command {
	var (
		bundle string
		tmp    string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a unitypackage for malformed asset folders",
		Long: `Validate every asset folder of a .unitypackage.

Unlike extract and inspect, which stop at the first malformed asset
folder, this command checks them all: a payload without a pathname
file, an empty declared path, a payload that is not a regular file,
or a declared path that escapes the output folder. It exits non-zero
when any problem is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, e, bundle, stringSetting(cmd, "tmp", tmp, e.cfg.Tmp))
		},
	}

	cmd.Flags().StringVarP(&bundle, "bundle", "b", "", "Path to the .unitypackage (required)")
	cmd.Flags().StringVar(&tmp, "tmp", "", "Tmp folder to unpack to (defaults to a private system tmp folder)")

	cmd.MarkFlagRequired("bundle")

	return cmd
}

func runValidate(cmd *cobra.Command, e *env, bundle, tmp string) error {
	scratch, err := unpackBundle(cmd.Context(), e, bundle, tmp)
	if err != nil {
		return err
	}
	defer scratch.Close()

	report, err := util.ValidateTree(scratch.Path)
	if err != nil {
		return fmt.Errorf("validating %s: %w", bundle, err)
	}

	w := cmd.OutOrStdout()
	for _, p := range report.Problems {
		fmt.Fprintf(w, "  - %s: %v\n", p.Folder, p.Err)
	}

	fmt.Fprintf(w, "\nValidation complete:\n")
	fmt.Fprintf(w, "  Folders checked: %d\n", report.Folders)
	fmt.Fprintf(w, "  Assets: %d\n", report.Assets)
	fmt.Fprintf(w, "  Total errors: %d\n", len(report.Problems))

	if !report.OK() {
		return fmt.Errorf("%s has %d malformed asset folders", bundle, len(report.Problems))
	}
	return nil
}
