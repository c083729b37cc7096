package scan

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/atomicstack/tiledu/internal/testutil"
)

func TestScanBuildsTree(t *testing.T) {
	root := testutil.WriteTree(t, testutil.Files{
		"file1":                     4000,
		"file2":                     5000,
		"subfolder1/file3":          6000,
		"subfolder1/nested/file4":   4000,
		"subfolder1/nested/deeper/": 0,
	})
	s := New(Options{Workers: 2})
	node, err := s.Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.Name() != root {
		t.Fatalf("expected root named %q, got %q", root, node.Name())
	}
	if node.Size() != 19000 {
		t.Fatalf("expected total 19000, got %d", node.Size())
	}
	children := node.Children()
	if len(children) != 3 || children[0].Name() != "subfolder1" || children[0].Size() != 10000 {
		t.Fatalf("expected subfolder1 first with 10000 bytes, got %+v", children)
	}
	file4, ok := node.Find("subfolder1", "nested", "file4")
	if !ok || file4.Size() != 4000 {
		t.Fatalf("expected nested file4 of 4000 bytes")
	}
	deeper, ok := node.Find("subfolder1", "nested", "deeper")
	if !ok || !deeper.IsDir() || deeper.Len() != 0 {
		t.Fatalf("expected empty deeper directory")
	}

	p := s.Progress()
	if p.Files != 4 || p.Dirs != 4 || p.Bytes != 19000 || p.Failures != 0 {
		t.Fatalf("unexpected progress %+v", p)
	}
}

func TestScanInaccessibleRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	_, err := New(Options{}).Scan(context.Background(), missing)
	if !errors.Is(err, ErrRootInaccessible) {
		t.Fatalf("expected ErrRootInaccessible, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped not-exist cause, got %v", err)
	}
}

func TestScanRootIsFile(t *testing.T) {
	root := testutil.WriteTree(t, testutil.Files{"plain": 10})
	_, err := New(Options{}).Scan(context.Background(), filepath.Join(root, "plain"))
	if !errors.Is(err, ErrRootInaccessible) {
		t.Fatalf("expected ErrRootInaccessible for a file root, got %v", err)
	}
}

func TestScanToleratesUnreadableDirectory(t *testing.T) {
	root := testutil.WriteTree(t, testutil.Files{
		"ok":            100,
		"locked/secret": 500,
	})
	testutil.Unreadable(t, filepath.Join(root, "locked"))

	s := New(Options{Workers: 1})
	node, err := s.Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("expected unreadable entries to be tolerated, got %v", err)
	}
	locked, ok := node.Find("locked")
	if !ok || locked.Size() != 0 || locked.Len() != 0 {
		t.Fatalf("expected locked to appear as an empty directory")
	}
	if node.Size() != 100 {
		t.Fatalf("expected only readable bytes counted, got %d", node.Size())
	}
	if s.Progress().Failures != 1 {
		t.Fatalf("expected one failure, got %d", s.Progress().Failures)
	}
}

func TestScanDoesNotFollowSymlinks(t *testing.T) {
	root := testutil.WriteTree(t, testutil.Files{"target/big": 100000})
	if err := os.Symlink(filepath.Join(root, "target"), filepath.Join(root, "link")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	node, err := New(Options{}).Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	link, ok := node.Find("link")
	if !ok || link.IsDir() {
		t.Fatalf("expected link recorded as a non-directory entry")
	}
	if node.Size() >= 200000 {
		t.Fatalf("expected link target not to be counted twice, got %d", node.Size())
	}
}

func TestScanCancelled(t *testing.T) {
	root := testutil.WriteTree(t, testutil.Files{"a/b/c": 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(Options{}).Scan(ctx, root); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDefaultWorkersBounds(t *testing.T) {
	n := DefaultWorkers()
	if n < minWorkers || n > maxWorkers {
		t.Fatalf("expected workers within [%d, %d], got %d", minWorkers, maxWorkers, n)
	}
	if New(Options{Workers: -1}).workers != n {
		t.Fatalf("expected non-positive workers to use the default")
	}
}
