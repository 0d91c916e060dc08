package util

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// PackageExt is the extension of Unity asset packages.
const PackageExt = "unitypackage"

// IsPackage reports whether path names a .unitypackage file.
func IsPackage(path string) bool {
	ext, ok := Extension(filepath.ToSlash(path))
	return ok && ext == PackageExt
}

// WalkPackages calls fn with every package file found anywhere below root,
// in filesystem walk order. A missing or unreadable root, or any directory
// that cannot be read during the walk, stops it with an error.
func WalkPackages(root string, fn func(path string) error) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", root, ErrExpectedDirectory)
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsPackage(path) {
			return nil
		}
		return fn(path)
	})
}
