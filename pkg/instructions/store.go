package instructions

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store abstracts document lookup so the walker never touches the
// filesystem directly. Paths are store-relative and slash-separated.
// Implementations may be backed by a local directory, an embedded archive,
// or a remote service.
type Store interface {
	// ReadDocument returns the whitespace-trimmed text of the document at
	// relPath. The second return value is false when no document exists
	// there or it cannot be read.
	ReadDocument(relPath string) (string, bool)

	// DirExists reports whether relPath exists as a directory.
	DirExists(relPath string) bool

	// TopLevelDirs returns the names of the store's top-level directories
	// in lexicographic order.
	TopLevelDirs() []string
}

// Logger receives diagnostics for failures the resolver absorbs, such as
// unreadable documents or invalid set configurations. *logging.Logger
// satisfies it. A nil Logger silences diagnostics without changing behavior.
type Logger interface {
	Warnf(format string, args ...interface{})
}

// DirStore is a Store backed by a directory on the local filesystem.
type DirStore struct {
	root   string
	logger Logger
}

// NewDirStore creates a store rooted at dir. The logger may be nil.
func NewDirStore(dir string, logger Logger) *DirStore {
	return &DirStore{root: dir, logger: logger}
}

// Root returns the store's root directory.
func (s *DirStore) Root() string {
	return s.root
}

// resolvePath converts a store-relative slash path to a filesystem path,
// rejecting anything that would escape the root.
func (s *DirStore) resolvePath(relPath string) (string, bool) {
	for _, part := range strings.Split(relPath, "/") {
		if part == ".." {
			return "", false
		}
	}
	return filepath.Join(s.root, filepath.FromSlash(relPath)), true
}

// ReadDocument reads and trims the document at relPath. Missing files are
// a normal outcome; read failures are logged and reported as not found.
func (s *DirStore) ReadDocument(relPath string) (string, bool) {
	path, ok := s.resolvePath(relPath)
	if !ok {
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) && s.logger != nil {
			s.logger.Warnf("instruction document %s unreadable: %v", relPath, err)
		}
		return "", false
	}
	return strings.TrimSpace(string(data)), true
}

// DirExists reports whether relPath is a directory under the store root.
func (s *DirStore) DirExists(relPath string) bool {
	path, ok := s.resolvePath(relPath)
	if !ok {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// TopLevelDirs lists the store's immediate subdirectories in lexicographic
// order, which keeps instruction-set enumeration deterministic.
func (s *DirStore) TopLevelDirs() []string {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if !os.IsNotExist(err) && s.logger != nil {
			s.logger.Warnf("instruction store %s unreadable: %v", s.root, err)
		}
		return nil
	}
	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry.Name())
		}
	}
	sort.Strings(dirs)
	return dirs
}
