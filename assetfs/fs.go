package assetfs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"
	"syscall"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"github.com/dendrascience/unitypackage/util"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of payloads kept in memory.
const DefaultCacheSize = 128

// ErrPathConflict is returned when one planned output needs a directory
// where another needs a file.
var ErrPathConflict = errors.New("output path is both a file and a directory")

var (
	_ fs.FS                 = (*FS)(nil)
	_ fs.Node               = (*Dir)(nil)
	_ fs.NodeStringLookuper = (*Dir)(nil)
	_ fs.HandleReadDirAller = (*Dir)(nil)
	_ fs.Node               = (*File)(nil)
	_ fs.HandleReadAller    = (*File)(nil)
)

// FS is a read-only view of a projected package
type FS struct {
	root  *Dir
	cache *lru.Cache[string, []byte] // payload path -> content
	built time.Time
}

// New builds the directory tree for plan. Later placements replace earlier
// ones at the same path, as a copy would.
func New(plan []util.Placement, cacheSize int) (*FS, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, []byte](cacheSize)
	if err != nil {
		return nil, err
	}

	fsys := &FS{cache: cache, built: time.Now()}
	fsys.root = fsys.newDir("", 1)

	for _, p := range plan {
		if err := fsys.add(p); err != nil {
			return nil, err
		}
	}
	return fsys, nil
}

func (fsys *FS) newDir(name string, inode uint64) *Dir {
	return &Dir{fs: fsys, name: name, inode: inode, children: make(map[string]fs.Node)}
}

func (fsys *FS) add(p util.Placement) error {
	var parts []string
	for _, part := range strings.Split(p.Output, "/") {
		if part != "" && part != "." {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return fmt.Errorf("asset folder %s: %q: %w", p.Folder.Name(), p.Output, util.ErrUnsafePath)
	}

	dir := fsys.root
	for _, part := range parts[:len(parts)-1] {
		switch child := dir.children[part].(type) {
		case nil:
			next := fsys.newDir(part, util.GetNewInode())
			dir.children[part] = next
			dir = next
		case *Dir:
			dir = child
		default:
			return fmt.Errorf("asset folder %s: %s: %w", p.Folder.Name(), p.Output, ErrPathConflict)
		}
	}

	name := parts[len(parts)-1]
	if _, isDir := dir.children[name].(*Dir); isDir {
		return fmt.Errorf("asset folder %s: %s: %w", p.Folder.Name(), p.Output, ErrPathConflict)
	}

	info, err := os.Stat(p.Folder.Payload())
	if err != nil {
		return fmt.Errorf("asset folder %s: %w", p.Folder.Name(), err)
	}
	dir.children[name] = &File{
		fs:       fsys,
		name:     name,
		inode:    util.GetNewInode(),
		source:   p.Folder.Payload(),
		size:     uint64(info.Size()),
		modified: info.ModTime(),
	}
	return nil
}

// Root returns the root directory node
func (fsys *FS) Root() (fs.Node, error) {
	return fsys.root, nil
}

// Dir is a directory implied by the declared paths. The tree is fixed once
// built, so no locking is needed.
type Dir struct {
	fs       *FS
	name     string
	inode    uint64
	children map[string]fs.Node
}

// Attr returns directory attributes
func (d *Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Inode = d.inode
	a.Mode = os.ModeDir | 0o555
	a.Mtime = d.fs.built
	a.Ctime = d.fs.built
	a.Atime = time.Now()
	return nil
}

// Lookup resolves file/directory names to nodes
func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	if node, ok := d.children[name]; ok {
		return node, nil
	}
	return nil, syscall.ENOENT
}

func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	names := make([]string, 0, len(d.children))
	for name := range d.children {
		names = append(names, name)
	}
	slices.Sort(names)

	dirents := make([]fuse.Dirent, 0, len(names))
	for _, name := range names {
		switch node := d.children[name].(type) {
		case *Dir:
			dirents = append(dirents, fuse.Dirent{Inode: node.inode, Name: name, Type: fuse.DT_Dir})
		case *File:
			dirents = append(dirents, fuse.Dirent{Inode: node.inode, Name: name, Type: fuse.DT_File})
		}
	}
	return dirents, nil
}

// File serves one payload under its projected name
type File struct {
	fs       *FS
	name     string
	inode    uint64
	source   string
	size     uint64
	modified time.Time
	mu       sync.Mutex
}

// Attr returns file attributes
func (f *File) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Inode = f.inode
	a.Mode = 0o444
	a.Size = f.size
	a.Mtime = f.modified
	a.Ctime = f.modified
	a.Atime = time.Now()
	return nil
}

// ReadAll reads the entire payload, through the shared cache
func (f *File) ReadAll(ctx context.Context) ([]byte, error) {
	if data, ok := f.fs.cache.Get(f.source); ok {
		return data, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if data, ok := f.fs.cache.Get(f.source); ok {
		return data, nil
	}

	data, err := os.ReadFile(f.source)
	if err != nil {
		return nil, err
	}
	f.fs.cache.Add(f.source, data)
	return data, nil
}
