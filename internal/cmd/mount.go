package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"github.com/dendrascience/unitypackage/assetfs"
	"github.com/dendrascience/unitypackage/util"
	"github.com/spf13/cobra"
)

// NewMountCmd creates and returns the mount subcommand for the unitypackage CLI.
// It serves a package's projected assets read-only at a mountpoint.
func NewMountCmd(e *env) *cobra.Command {
	var (
		bundle    string
		tmp       string
		include   []string
		flatten   bool
		cacheSize int
	)

	cmd := &cobra.Command{
		Use:   "mount MOUNTPOINT",
		Short: "Mount a unitypackage as a read-only filesystem",
		Long: `Mount the assets of a .unitypackage at MOUNTPOINT without copying them.

The mounted tree matches what extract would write with the same
--flatten and --include options. The package stays unpacked in the tmp
folder until the filesystem is unmounted or the command is interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := util.ProjectOptions{
				Destination: args[0],
				Flatten:     boolSetting(cmd, "flatten", flatten, e.cfg.Flatten),
				Include:     util.ParseExtensions(sliceSetting(cmd, "include", include, e.cfg.Include)),
				Logger:      e.logger,
			}
			return runMount(cmd, e, bundle, stringSetting(cmd, "tmp", tmp, e.cfg.Tmp), opts, cacheSize)
		},
	}

	cmd.Flags().StringVarP(&bundle, "bundle", "b", "", "Path to the .unitypackage (required)")
	cmd.Flags().BoolVarP(&flatten, "flatten", "f", false, "Flatten folder structure")
	cmd.Flags().StringVar(&tmp, "tmp", "", "Tmp folder to unpack to (defaults to a private system tmp folder)")
	cmd.Flags().StringSliceVarP(&include, "include", "i", nil, "Asset file extensions to expose (defaults to all)")
	cmd.Flags().IntVar(&cacheSize, "cache-size", assetfs.DefaultCacheSize, "Number of asset payloads kept in memory")

	cmd.MarkFlagRequired("bundle")

	return cmd
}

func runMount(cmd *cobra.Command, e *env, bundle, tmp string, opts util.ProjectOptions, cacheSize int) error {
	mountpoint := opts.Destination

	scratch, err := unpackBundle(cmd.Context(), e, bundle, tmp)
	if err != nil {
		return err
	}
	defer scratch.Close()

	if pathsOverlap(scratch.Path, mountpoint) {
		return fmt.Errorf("mountpoint %s overlaps tmp folder %s", mountpoint, scratch.Path)
	}

	plan, err := util.Plan(scratch.Path, opts)
	if err != nil {
		return err
	}
	filesystem, err := assetfs.New(plan, cacheSize)
	if err != nil {
		return err
	}

	c, err := fuse.Mount(
		mountpoint,
		fuse.FSName("unitypackage"),
		fuse.Subtype("unitypackage"),
		fuse.ReadOnly(),
	)
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	served := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			e.logger.Info("Received interrupt signal, unmounting", "mountpoint", mountpoint)
			if err := fuse.Unmount(mountpoint); err != nil {
				e.logger.Error("Unmount failed", "err", err)
			}
		case <-served:
		}
	}()

	e.logger.Info("Mounted", "bundle", bundle, "mountpoint", mountpoint, "assets", len(plan))
	err = fs.Serve(c, filesystem)
	close(served)
	return err
}

// pathsOverlap reports whether one path is the other or lies inside it.
func pathsOverlap(path1, path2 string) bool {
	abs1, err1 := filepath.Abs(path1)
	abs2, err2 := filepath.Abs(path2)
	if err1 != nil || err2 != nil {
		return filepath.Clean(path1) == filepath.Clean(path2)
	}
	if abs1 == abs2 {
		return true
	}
	sep := string(filepath.Separator)
	return strings.HasPrefix(abs1, abs2+sep) || strings.HasPrefix(abs2, abs1+sep)
}
