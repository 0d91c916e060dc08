// Package cmd provides the command-line interface implementation for unitypackage.
//
// This package contains all the subcommand implementations for the unitypackage
// CLI tool. It uses the Cobra library for command structure and Fang for styling.
//
// The package is organized into the following commands:
//   - root: Main command coordinator, configuration and logging setup
//   - extract: Copy a package's assets into a plain file tree
//   - inspect: Histogram of asset types in a package
//   - list: Find packages below a folder, the Asset Store cache by default
//   - validate: Report every malformed asset folder in a package
//   - mount: Serve a package's projected assets read-only over FUSE
//
// Each command is implemented as a separate file with its own constructor function
// that returns a *cobra.Command. Settings resolve as flag, then environment
// (UNITYPACKAGE_*), then config file, then built-in default.
//
// The package leverages the util package for unpacking and projection and the
// assetfs package for the mounted filesystem.
package cmd
