package util

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// ProjectOptions controls how an unpacked tree is laid out on disk.
type ProjectOptions struct {
	// Destination is the root every output path is placed under.
	Destination string
	// Flatten replaces every separator in the declared path with "_" so
	// all assets land directly in Destination.
	Flatten bool
	// Include restricts output to these extensions. Nil copies everything
	// that has an extension.
	Include ExtensionSet
	// Logger receives skip diagnostics. Nil uses log.Default().
	Logger *log.Logger
}

func (o ProjectOptions) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}

// Placement is one asset the projector will materialize.
type Placement struct {
	Folder AssetFolder
	// Output is the slash-separated path relative to the destination root.
	Output string
}

// Target joins the placement's output under root.
func (p Placement) Target(root string) string {
	return filepath.Join(root, filepath.FromSlash(p.Output))
}

// OutputPath computes the relative output path for a declared path. In
// flatten mode every "/" becomes "_". Otherwise the declared path is kept,
// and must not be absolute or climb out of the destination root.
func OutputPath(declared string, flatten bool) (string, error) {
	if flatten {
		out := strings.ReplaceAll(declared, "/", "_")
		if filepath.Separator != '/' {
			out = strings.ReplaceAll(out, string(filepath.Separator), "_")
		}
		return out, nil
	}
	if strings.HasPrefix(declared, "/") || !filepath.IsLocal(filepath.FromSlash(declared)) {
		return "", fmt.Errorf("%q: %w", declared, ErrUnsafePath)
	}
	return declared, nil
}

// place decides whether folder is projected and where. A false result with
// a nil error is an expected skip.
func place(folder AssetFolder, opts ProjectOptions) (Placement, bool, error) {
	out, err := OutputPath(folder.Pathname, opts.Flatten)
	if err != nil {
		return Placement{}, false, fmt.Errorf("asset folder %s: %w", folder.Name(), err)
	}

	ext, ok := Extension(out)
	if !ok || ext == "" {
		opts.logger().Debug("No extension, skipping", "folder", folder.Name(), "path", out)
		return Placement{}, false, nil
	}

	if !opts.Include.Allows(ext) {
		opts.logger().Info("Skipping", "folder", folder.Name(), "file", filepath.Base(filepath.FromSlash(out)))
		return Placement{}, false, nil
	}

	return Placement{Folder: folder, Output: out}, true, nil
}

// Plan returns, in folder order, every placement Project would copy from
// tree. It applies the same skip rules and fails on the same malformed
// folders, but writes nothing.
func Plan(tree string, opts ProjectOptions) ([]Placement, error) {
	var plan []Placement
	err := eachAsset(tree, func(folder AssetFolder) error {
		p, ok, err := place(folder, opts)
		if err != nil || !ok {
			return err
		}
		plan = append(plan, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// Project copies every eligible payload in tree to its output path under
// opts.Destination and returns how many files were copied. Existing files
// are overwritten. The first malformed folder or filesystem failure aborts
// the run; files already copied are left in place.
func Project(tree string, opts ProjectOptions) (int, error) {
	count := 0
	err := eachAsset(tree, func(folder AssetFolder) error {
		p, ok, err := place(folder, opts)
		if err != nil || !ok {
			return err
		}
		if err := Materialize(p.Folder.Payload(), p.Target(opts.Destination)); err != nil {
			return fmt.Errorf("handling %s: %w", folder.Name(), err)
		}
		count++
		return nil
	})
	return count, err
}

// Materialize creates the missing parents of dest and copies src over it.
func Materialize(src, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy asset failed: %w", err)
	}
	return out.Close()
}
