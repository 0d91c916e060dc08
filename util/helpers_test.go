package util

import (
	"os"
	"path/filepath"
	"testing"
)

// writeAsset creates tree/folder with a payload and, unless pathname is
// nil, a pathname file holding *pathname verbatim.
func writeAsset(t *testing.T, tree, folder, payload string, pathname *string) {
	t.Helper()
	dir := filepath.Join(tree, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("Failed to create asset folder: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, PayloadName), []byte(payload), 0o644); err != nil {
		t.Fatalf("Failed to write payload: %v", err)
	}
	if pathname == nil {
		return
	}
	if err := os.WriteFile(filepath.Join(dir, PathnameName), []byte(*pathname), 0o644); err != nil {
		t.Fatalf("Failed to write pathname: %v", err)
	}
}

func ptr(s string) *string { return &s }

// treeScenario builds the two-asset tree used across the projector and
// summarizer tests: A declares Textures/Tree.png, B declares
// Models/Tree.fbx without a trailing newline.
func treeScenario(t *testing.T) string {
	t.Helper()
	tree := t.TempDir()
	writeAsset(t, tree, "A", "IMG", ptr("Textures/Tree.png\n"))
	writeAsset(t, tree, "B", "IMG", ptr("Models/Tree.fbx"))
	return tree
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(b)
}

// listFiles returns every regular file under root, relative and
// slash-separated.
func listFiles(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to walk %s: %v", root, err)
	}
	return files
}
