package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/dendrascience/unitypackage/util"
	"github.com/spf13/cobra"
	"github.com/taigrr/colorhash"
)

// NewInspectCmd creates and returns the inspect subcommand for the unitypackage CLI.
// It reports how many assets of each file type a package holds.
func NewInspectCmd(e *env) *cobra.Command {
	var (
		bundle string
		tmp    string
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "List contents of a unitypackage",
		Long: `Unpack a .unitypackage and count its assets by file extension.

Counts use the extension of each asset's declared path. Assets whose
path has no extension are not counted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, e, bundle, stringSetting(cmd, "tmp", tmp, e.cfg.Tmp))
		},
	}

	cmd.Flags().StringVarP(&bundle, "bundle", "b", "", "Path to the .unitypackage (required)")
	cmd.Flags().StringVar(&tmp, "tmp", "", "Tmp folder to unpack to (defaults to a private system tmp folder)")

	cmd.MarkFlagRequired("bundle")

	return cmd
}

func runInspect(cmd *cobra.Command, e *env, bundle, tmp string) error {
	scratch, err := unpackBundle(cmd.Context(), e, bundle, tmp)
	if err != nil {
		return err
	}
	defer scratch.Close()

	tally, err := util.Summarize(scratch.Path)
	if err != nil {
		return fmt.Errorf("inspecting %s: %w", bundle, err)
	}

	printTally(cmd.OutOrStdout(), bundle, tally)
	return nil
}

// printTally writes the histogram, one colored extension per line.
func printTally(w io.Writer, bundle string, tally util.TypeTally) {
	r := lipgloss.NewRenderer(w)
	header := r.NewStyle().Bold(true)

	fmt.Fprintln(w, header.Render("Contents of unitypackage: "+bundle))
	for _, row := range tally.Sorted() {
		label := r.NewStyle().Foreground(extColor(row.Ext)).Render(row.Ext)
		fmt.Fprintf(w, "%s: %d\n", label, row.Count)
	}
	fmt.Fprintf(w, "Total: %d\n", tally.Total())
}

// extColor maps an extension to a stable color from the 6x6x6 ANSI cube.
func extColor(ext string) lipgloss.Color {
	h := int(colorhash.HashString(ext))
	if h < 0 {
		h = -h
	}
	return lipgloss.Color(strconv.Itoa(16 + h%216))
}
