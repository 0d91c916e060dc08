package util

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestIsPackage(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"Trees.unitypackage", true},
		{"/store/Publisher/Category/Trees.unitypackage", true},
		{"Trees.UNITYPACKAGE", false},
		{"Trees.unitypackage.part", false},
		{"unitypackage", false},
		{".unitypackage", false},
		{"Trees.zip", false},
	}
	for _, tt := range tests {
		if got := IsPackage(tt.path); got != tt.expected {
			t.Errorf("IsPackage(%q) = %v, expected %v", tt.path, got, tt.expected)
		}
	}
}

// collectPackages gathers every path WalkPackages reports.
func collectPackages(root string) ([]string, error) {
	var found []string
	err := WalkPackages(root, func(path string) error {
		found = append(found, path)
		return nil
	})
	return found, err
}

func TestWalkPackages(t *testing.T) {
	root := t.TempDir()
	files := []string{
		"Top.unitypackage",
		"Publisher/Trees.unitypackage",
		"Publisher/Category/Deep/Rocks.unitypackage",
		"Publisher/readme.txt",
		"Other/Trees.unitypackage.tmp",
	}
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		os.MkdirAll(filepath.Dir(p), 0o755)
		os.WriteFile(p, []byte("x"), 0o644)
	}
	// A directory named like a package is not a match.
	os.MkdirAll(filepath.Join(root, "Fake.unitypackage"), 0o755)

	found, err := collectPackages(root)
	if err != nil {
		t.Fatalf("WalkPackages failed: %v", err)
	}
	var rel []string
	for _, f := range found {
		r, _ := filepath.Rel(root, f)
		rel = append(rel, filepath.ToSlash(r))
	}
	slices.Sort(rel)
	want := []string{
		"Publisher/Category/Deep/Rocks.unitypackage",
		"Publisher/Trees.unitypackage",
		"Top.unitypackage",
	}
	if !slices.Equal(rel, want) {
		t.Errorf("WalkPackages = %v, expected %v", rel, want)
	}
}

func TestWalkPackages_Empty(t *testing.T) {
	found, err := collectPackages(t.TempDir())
	if err != nil {
		t.Fatalf("WalkPackages failed: %v", err)
	}
	if len(found) != 0 {
		t.Errorf("Expected no packages, got %v", found)
	}
}

func TestWalkPackages_BadRoot(t *testing.T) {
	t.Run("nonexistent root", func(t *testing.T) {
		_, err := collectPackages(filepath.Join(t.TempDir(), "nonexistent"))
		if !os.IsNotExist(err) {
			t.Errorf("Expected error of type IsNotExist but got %v", err)
		}
	})
	t.Run("file root", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "Trees.unitypackage")
		os.WriteFile(path, []byte("x"), 0o644)
		_, err := collectPackages(path)
		if !errors.Is(err, ErrExpectedDirectory) {
			t.Errorf("Expected ErrExpectedDirectory but got %v", err)
		}
	})
}

func TestWalkPackages_StopsOnCallbackError(t *testing.T) {
	root := t.TempDir()
	os.WriteFile(filepath.Join(root, "a.unitypackage"), []byte("x"), 0o644)
	os.WriteFile(filepath.Join(root, "b.unitypackage"), []byte("x"), 0o644)
	stop := errors.New("stop")

	calls := 0
	err := WalkPackages(root, func(string) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) {
		t.Errorf("Expected callback error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected walk to stop after 1 call, got %d", calls)
	}
}
