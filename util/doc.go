// Package util provides the core operations of the unitypackage tool.
//
// A .unitypackage is a gzip-compressed tar whose top level holds one folder
// per asset, usually named after the asset GUID. A folder is an asset when
// it contains a payload file named "asset"; its companion "pathname" file
// declares, on its first line, where the asset lives in the Unity project.
// Folders without a payload describe directories and are skipped.
//
// Key Components:
//
// Unpacking:
//   - Unpacker interface with an in-process gzip/tar implementation and one
//     that shells out to tar
//   - Scratch directories that are removed when the command finishes
//
// Asset Folders:
//   - ReadAssetFolder distinguishes NotAnAsset, IsAsset and malformed folders
//
// Projection:
//   - OutputPath keeps or flattens the declared path
//   - ExtensionSet filters by extension
//   - Plan and Project compute and materialize the output tree
//
// Reporting:
//   - Summarize builds a histogram of declared-path extensions
//   - ValidateTree collects every malformed folder
//   - WalkPackages locates packages below a directory, such as the Unity
//     Asset Store cache
//
// Every operation is sequential. The first malformed asset folder or
// filesystem failure aborts Project and Summarize; files already written
// stay on disk.
package util
