// Package assetfs serves an unpacked Unity package over FUSE.
//
// The mounted tree is exactly what util.Project would write for the same
// options: declared paths kept or flattened, extension-less and filtered
// assets left out. Nothing is copied; each file reads its payload from the
// scratch directory the package was unpacked into, through a small LRU
// cache shared by all files.
//
// The filesystem is read-only and its shape is fixed when New returns.
// Mount it with bazil.org/fuse and fs.Serve.
package assetfs
