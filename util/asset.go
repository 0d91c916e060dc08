package util

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	// PayloadName is the file holding an asset's bytes.
	PayloadName = "asset"
	// PathnameName is the file whose first line declares the asset's
	// relative output path.
	PathnameName = "pathname"
)

// FolderKind tells a real asset apart from a bookkeeping folder.
type FolderKind int

const (
	// NotAnAsset marks a folder without a payload. Unity packages carry
	// these for directories and they are skipped silently.
	NotAnAsset FolderKind = iota
	// IsAsset marks a folder with a payload and a declared path.
	IsAsset
)

func (k FolderKind) String() string {
	switch k {
	case IsAsset:
		return "asset"
	default:
		return "not-an-asset"
	}
}

// AssetFolder is the outcome of reading one top-level folder of an
// unpacked package. Pathname is only set when Kind is IsAsset.
type AssetFolder struct {
	Kind     FolderKind
	Dir      string
	Pathname string
}

// Name is the folder's base name, usually the asset GUID.
func (a AssetFolder) Name() string {
	return filepath.Base(a.Dir)
}

// Payload is the path of the payload file inside the folder.
func (a AssetFolder) Payload() string {
	return filepath.Join(a.Dir, PayloadName)
}

// ReadAssetFolder classifies dir. A folder without a payload file is
// reported as NotAnAsset with a nil error. A folder with a payload but no
// readable pathname file, or an empty declared path, is malformed and
// returns an error naming the folder.
func ReadAssetFolder(dir string) (AssetFolder, error) {
	folder := AssetFolder{Kind: NotAnAsset, Dir: dir}

	info, err := os.Stat(folder.Payload())
	if errors.Is(err, fs.ErrNotExist) {
		return folder, nil
	}
	if err != nil {
		return folder, fmt.Errorf("reading asset folder %s: %w", folder.Name(), err)
	}
	if !info.Mode().IsRegular() {
		return folder, fmt.Errorf("reading asset folder %s: %w", folder.Name(), ErrPayloadNotFile)
	}

	pathname, err := readFirstLine(filepath.Join(dir, PathnameName))
	if errors.Is(err, fs.ErrNotExist) {
		return folder, fmt.Errorf("reading asset folder %s: %w", folder.Name(), ErrMissingPathname)
	}
	if err != nil {
		return folder, fmt.Errorf("reading asset folder %s: %w", folder.Name(), err)
	}
	if pathname == "" {
		return folder, fmt.Errorf("reading asset folder %s: %w", folder.Name(), ErrEmptyPathname)
	}

	folder.Kind = IsAsset
	folder.Pathname = pathname
	return folder, nil
}

// readFirstLine returns the first line of the file without its line
// terminator. Nothing past the first newline is read into the result.
func readFirstLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

// assetDirs lists the immediate subdirectories of an unpacked tree in
// lexical order.
func assetDirs(tree string) ([]string, error) {
	entries, err := os.ReadDir(tree)
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(tree, e.Name()))
		}
	}
	return dirs, nil
}

// eachAsset calls fn for every asset folder in tree, skipping folders that
// are not assets. The first error from reading a folder or from fn stops the
// walk.
func eachAsset(tree string, fn func(AssetFolder) error) error {
	dirs, err := assetDirs(tree)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		folder, err := ReadAssetFolder(dir)
		if err != nil {
			return err
		}
		if folder.Kind != IsAsset {
			continue
		}
		if err := fn(folder); err != nil {
			return err
		}
	}
	return nil
}
