package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// Files maps slash-separated paths to file sizes. A path ending in "/"
// creates an empty directory.
type Files map[string]int64

// WriteTree materialises files below a fresh temporary directory and returns
// its path. File contents are zero bytes of the requested size.
func WriteTree(t *testing.T, files Files) string {
	t.Helper()
	root := t.TempDir()
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if strings.HasSuffix(p, "/") {
			if err := os.MkdirAll(full, 0o755); err != nil {
				t.Fatalf("mkdir %s: %v", p, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", p, err)
		}
		writeSized(t, full, files[p])
	}
	return root
}

func writeSized(t *testing.T, path string, size int64) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if size > 0 {
		if err := f.Truncate(size); err != nil {
			t.Fatalf("size %s: %v", path, err)
		}
	}
}

// Unreadable removes all permissions from path for the rest of the test.
// Tests relying on permission failures are skipped when running as root.
func Unreadable(t *testing.T, path string) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("skipping: permission checks do not apply to root")
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}
	if err := os.Chmod(path, 0); err != nil {
		t.Fatalf("chmod %s: %v", path, err)
	}
	t.Cleanup(func() {
		_ = os.Chmod(path, info.Mode().Perm())
	})
}
