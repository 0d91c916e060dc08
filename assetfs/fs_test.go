package assetfs

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"github.com/charmbracelet/log"
	"github.com/dendrascience/unitypackage/util"
)

func writeAsset(t *testing.T, tree, folder, payload, pathname string) {
	t.Helper()
	dir := filepath.Join(tree, folder)
	os.MkdirAll(dir, 0o755)
	if err := os.WriteFile(filepath.Join(dir, util.PayloadName), []byte(payload), 0o644); err != nil {
		t.Fatalf("Failed to write payload: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, util.PathnameName), []byte(pathname), 0o644); err != nil {
		t.Fatalf("Failed to write pathname: %v", err)
	}
}

func buildFS(t *testing.T, tree string, opts util.ProjectOptions) *FS {
	t.Helper()
	opts.Logger = log.New(&bytes.Buffer{})
	plan, err := util.Plan(tree, opts)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	fsys, err := New(plan, 4)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return fsys
}

func lookup(t *testing.T, node fs.Node, names ...string) fs.Node {
	t.Helper()
	for _, name := range names {
		dir, ok := node.(*Dir)
		if !ok {
			t.Fatalf("Expected a directory before %q, got %T", name, node)
		}
		next, err := dir.Lookup(context.Background(), name)
		if err != nil {
			t.Fatalf("Lookup(%q) failed: %v", name, err)
		}
		node = next
	}
	return node
}

func scenarioTree(t *testing.T) string {
	tree := t.TempDir()
	writeAsset(t, tree, "A", "IMG-A", "Textures/Tree.png\n")
	writeAsset(t, tree, "B", "IMG-B", "Models/Tree.fbx")
	writeAsset(t, tree, "C", "license", "LICENSE")
	return tree
}

func TestFS_Preserve(t *testing.T) {
	fsys := buildFS(t, scenarioTree(t), util.ProjectOptions{})
	root, _ := fsys.Root()

	dirents, err := root.(*Dir).ReadDirAll(context.Background())
	if err != nil {
		t.Fatalf("ReadDirAll failed: %v", err)
	}
	if len(dirents) != 2 || dirents[0].Name != "Models" || dirents[1].Name != "Textures" {
		t.Fatalf("Root entries = %+v, expected [Models Textures]", dirents)
	}
	if dirents[0].Type != fuse.DT_Dir {
		t.Errorf("Models should be a directory, got %v", dirents[0].Type)
	}

	file := lookup(t, root, "Textures", "Tree.png").(*File)
	var a fuse.Attr
	if err := file.Attr(context.Background(), &a); err != nil {
		t.Fatalf("Attr failed: %v", err)
	}
	if a.Size != uint64(len("IMG-A")) || a.Mode != 0o444 {
		t.Errorf("Attr = size %d mode %v", a.Size, a.Mode)
	}
	data, err := file.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(data) != "IMG-A" {
		t.Errorf("ReadAll = %q, expected %q", data, "IMG-A")
	}

	if _, err := root.(*Dir).Lookup(context.Background(), "LICENSE"); !errors.Is(err, syscall.ENOENT) {
		t.Errorf("Extension-less asset should not be mounted, got %v", err)
	}
}

func TestFS_FlattenAndFilter(t *testing.T) {
	fsys := buildFS(t, scenarioTree(t), util.ProjectOptions{
		Flatten: true,
		Include: util.ParseExtensions([]string{"fbx"}),
	})
	root, _ := fsys.Root()

	dirents, err := root.(*Dir).ReadDirAll(context.Background())
	if err != nil {
		t.Fatalf("ReadDirAll failed: %v", err)
	}
	if len(dirents) != 1 || dirents[0].Name != "Models_Tree.fbx" || dirents[0].Type != fuse.DT_File {
		t.Fatalf("Root entries = %+v, expected [Models_Tree.fbx]", dirents)
	}
}

func TestFS_ReadAllCaches(t *testing.T) {
	tree := scenarioTree(t)
	fsys := buildFS(t, tree, util.ProjectOptions{Flatten: true})
	root, _ := fsys.Root()
	file := lookup(t, root, "Models_Tree.fbx").(*File)

	if _, err := file.ReadAll(context.Background()); err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	// Served from cache once loaded, even if the scratch copy goes away.
	os.Remove(filepath.Join(tree, "B", util.PayloadName))
	data, err := file.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("Cached ReadAll failed: %v", err)
	}
	if string(data) != "IMG-B" {
		t.Errorf("Cached ReadAll = %q, expected %q", data, "IMG-B")
	}
}

func TestFS_LaterPlacementWins(t *testing.T) {
	tree := t.TempDir()
	writeAsset(t, tree, "1", "first", "Assets/Tree.png")
	writeAsset(t, tree, "2", "second", "Assets/Tree.png")
	fsys := buildFS(t, tree, util.ProjectOptions{})
	root, _ := fsys.Root()

	data, err := lookup(t, root, "Assets", "Tree.png").(*File).ReadAll(context.Background())
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("ReadAll = %q, expected %q", data, "second")
	}
}

func TestFS_PathConflict(t *testing.T) {
	tree := t.TempDir()
	writeAsset(t, tree, "1", "x", "Assets/Tree.png")
	writeAsset(t, tree, "2", "y", "Assets/Tree.png/inner.png")
	plan, err := util.Plan(tree, util.ProjectOptions{Logger: log.New(&bytes.Buffer{})})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	if _, err := New(plan, 0); !errors.Is(err, ErrPathConflict) {
		t.Fatalf("Expected ErrPathConflict, got %v", err)
	}
}

func TestFS_UniqueInodes(t *testing.T) {
	fsys := buildFS(t, scenarioTree(t), util.ProjectOptions{})
	root, _ := fsys.Root()

	seen := map[uint64]string{1: "/"}
	var walk func(d *Dir, prefix string)
	walk = func(d *Dir, prefix string) {
		dirents, _ := d.ReadDirAll(context.Background())
		for _, de := range dirents {
			if other, dup := seen[de.Inode]; dup {
				t.Errorf("Inode %d shared by %s and %s", de.Inode, other, prefix+de.Name)
			}
			seen[de.Inode] = prefix + de.Name
			if sub, ok := d.children[de.Name].(*Dir); ok {
				walk(sub, prefix+de.Name+"/")
			}
		}
	}
	walk(root.(*Dir), "/")
	if len(seen) != 5 {
		t.Errorf("Expected 5 nodes (root, 2 dirs, 2 files), got %d", len(seen))
	}
}
