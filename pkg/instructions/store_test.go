package instructions

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// recordingLogger captures resolver diagnostics for assertions.
type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Warnf(format string, args ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

func TestDirStoreReadDocument(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "seo/_base.md", "  seo instructions\n")
	store := NewDirStore(root, nil)

	t.Run("trims document content", func(t *testing.T) {
		text, ok := store.ReadDocument("seo/_base.md")
		if !ok {
			t.Fatal("expected document to be found")
		}
		if text != "seo instructions" {
			t.Errorf("expected trimmed content, got %q", text)
		}
	})

	t.Run("missing document is not found", func(t *testing.T) {
		if _, ok := store.ReadDocument("seo/missing.md"); ok {
			t.Error("expected missing document to report not found")
		}
	})

	t.Run("missing document is silent", func(t *testing.T) {
		logger := &recordingLogger{}
		logged := NewDirStore(root, logger)
		logged.ReadDocument("nowhere.md")
		if len(logger.warnings) != 0 {
			t.Errorf("missing documents must not log, got %v", logger.warnings)
		}
	})

	t.Run("read failure is logged and not found", func(t *testing.T) {
		logger := &recordingLogger{}
		logged := NewDirStore(root, logger)
		// "seo" is a directory: reading it fails with something other
		// than not-exist.
		if _, ok := logged.ReadDocument("seo"); ok {
			t.Error("expected directory read to report not found")
		}
		if len(logger.warnings) != 1 {
			t.Errorf("expected one warning, got %v", logger.warnings)
		}
	})

	t.Run("rejects path traversal", func(t *testing.T) {
		outside := filepath.Join(filepath.Dir(root), "outside.md")
		if err := os.WriteFile(outside, []byte("secret"), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, ok := store.ReadDocument("../outside.md"); ok {
			t.Error("expected traversal to be rejected")
		}
	})
}

func TestDirStoreDirExists(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "seo/reports.md", "x")
	store := NewDirStore(root, nil)

	if !store.DirExists("seo") {
		t.Error("expected seo directory to exist")
	}
	if store.DirExists("seo/reports.md") {
		t.Error("a file must not count as a directory")
	}
	if store.DirExists("absent") {
		t.Error("expected absent directory to not exist")
	}
}

func TestDirStoreTopLevelDirs(t *testing.T) {
	root := t.TempDir()
	mkDir(t, root, "zeta")
	mkDir(t, root, "alpha")
	writeDoc(t, root, "stray.md", "not a set")
	store := NewDirStore(root, nil)

	dirs := store.TopLevelDirs()
	if len(dirs) != 2 || dirs[0] != "alpha" || dirs[1] != "zeta" {
		t.Errorf("expected sorted directories [alpha zeta], got %v", dirs)
	}
}

func TestDirStoreMissingRoot(t *testing.T) {
	store := NewDirStore(filepath.Join(t.TempDir(), "nope"), nil)
	if dirs := store.TopLevelDirs(); dirs != nil {
		t.Errorf("expected no directories for missing root, got %v", dirs)
	}
}
