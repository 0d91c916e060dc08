package util

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Scratch is the directory a package is unpacked into for one command.
// A directory supplied by the caller is kept; a private one is removed by
// Close.
type Scratch struct {
	Path   string
	owned  bool
	logger *log.Logger
}

// OpenScratch prepares dir for unpacking, creating it if needed. When dir
// is empty a fresh private directory is created under os.TempDir().
func OpenScratch(dir string, logger *log.Logger) (*Scratch, error) {
	if logger == nil {
		logger = log.Default()
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		return &Scratch{Path: dir, logger: logger}, nil
	}

	path := filepath.Join(os.TempDir(), "unitypackage-"+uuid.NewString())
	if err := os.Mkdir(path, 0o700); err != nil {
		return nil, err
	}
	return &Scratch{Path: path, owned: true, logger: logger}, nil
}

// Owned reports whether Close will delete the directory.
func (s *Scratch) Owned() bool {
	return s.owned
}

// Close removes a private scratch directory. It is safe to call more than
// once.
func (s *Scratch) Close() error {
	if !s.owned {
		return nil
	}
	s.owned = false
	s.logger.Info("Cleaning up tmp folder", "path", s.Path)
	return os.RemoveAll(s.Path)
}
