package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/dendrascience/unitypackage/util"
	"github.com/spf13/cobra"
)

// unpackBundle unpacks bundle into a scratch directory. The caller owns the
// returned scratch and must Close it on every path.
func unpackBundle(ctx context.Context, e *env, bundle, tmp string) (*util.Scratch, error) {
	info, err := os.Stat(bundle)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: expected a package file, got a directory", bundle)
	}
	if !util.IsPackage(bundle) {
		return nil, fmt.Errorf("%s: %w", bundle, util.ErrNotPackage)
	}

	unpacker, err := util.NewUnpacker(e.cfg.Unpacker)
	if err != nil {
		return nil, err
	}

	scratch, err := util.OpenScratch(tmp, e.logger)
	if err != nil {
		return nil, fmt.Errorf("creating tmp folder: %w", err)
	}

	e.logger.Info("Unpacking", "bundle", bundle, "to", scratch.Path)
	if err := unpacker.Unpack(ctx, bundle, scratch.Path); err != nil {
		scratch.Close()
		return nil, err
	}
	return scratch, nil
}

// stringSetting prefers an explicitly passed flag over the config value.
func stringSetting(cmd *cobra.Command, name, flagValue, configValue string) string {
	if cmd.Flags().Changed(name) {
		return flagValue
	}
	return configValue
}

func boolSetting(cmd *cobra.Command, name string, flagValue, configValue bool) bool {
	if cmd.Flags().Changed(name) {
		return flagValue
	}
	return configValue
}

func sliceSetting(cmd *cobra.Command, name string, flagValue, configValue []string) []string {
	if cmd.Flags().Changed(name) {
		return flagValue
	}
	return configValue
}
