// Package main provides the unitypackage command-line interface.
//
// unitypackage converts Unity .unitypackage archives into ordinary file trees.
// A package holds one folder per asset; each asset is written to the path it
// declares, optionally flattened into a single folder and filtered by file
// extension.
//
// The main binary supports multiple subcommands:
//   - extract: Copy a package's assets into an output folder
//   - inspect: Count a package's assets by file type
//   - list: Find packages in the Unity Asset Store cache
//   - validate: Report malformed asset folders in a package
//   - mount: Serve a package's assets read-only over FUSE
package main
