// Package scan walks a directory concurrently and builds an immutable tree.
//
// Unreadable entries never abort a scan: files that cannot be stat'ed are
// left out, directories that cannot be listed become empty, and both are
// counted in Progress.Failures. Only an inaccessible root is an error.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/atomicstack/tiledu/internal/logging/events"
	"github.com/atomicstack/tiledu/internal/tree"
	"golang.org/x/sync/errgroup"
)

// ErrRootInaccessible reports that the scan root cannot be read.
var ErrRootInaccessible = errors.New("root directory is not accessible")

const (
	minWorkers = 8
	maxWorkers = 64
)

// DefaultWorkers scales with the CPU count within fixed bounds.
func DefaultWorkers() int {
	n := runtime.NumCPU() * 2
	if n < minWorkers {
		n = minWorkers
	}
	if n > maxWorkers {
		n = maxWorkers
	}
	return n
}

// Options tunes a Scanner.
type Options struct {
	Workers int
}

// Progress is a snapshot of the scanner's counters.
type Progress struct {
	Files    int64
	Dirs     int64
	Bytes    int64
	Failures int64
}

// Scanner builds trees from the filesystem. A Scanner is used for one scan
// at a time; Progress may be read concurrently.
type Scanner struct {
	workers int

	files    atomic.Int64
	dirs     atomic.Int64
	bytes    atomic.Int64
	failures atomic.Int64
}

func New(opts Options) *Scanner {
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	return &Scanner{workers: workers}
}

// Progress returns the current counters.
func (s *Scanner) Progress() Progress {
	return Progress{
		Files:    s.files.Load(),
		Dirs:     s.dirs.Load(),
		Bytes:    s.bytes.Load(),
		Failures: s.failures.Load(),
	}
}

// Scan walks root and returns its tree. The root node is named after root as
// given, so headers show the path the user asked for.
func (s *Scanner) Scan(ctx context.Context, root string) (*tree.Node, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRootInaccessible, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrRootInaccessible, root)
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRootInaccessible, root, err)
	}

	started := time.Now()
	events.Scan.Start(root, s.workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	var node *tree.Node
	g.Go(func() error {
		node = s.buildDir(gctx, g, root, filepath.Clean(root), entries)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p := s.Progress()
	events.Scan.Done(p.Files, p.Dirs, p.Bytes, p.Failures, time.Since(started))
	return node, nil
}

func (s *Scanner) scanDir(ctx context.Context, g *errgroup.Group, path string) *tree.Node {
	name := filepath.Base(path)
	if ctx.Err() != nil {
		return tree.NewDirectory(name)
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		s.fail(path, err)
		// entries read before the failure are still usable
		if len(entries) == 0 {
			s.dirs.Add(1)
			return tree.NewDirectory(name)
		}
	}
	return s.buildDir(ctx, g, name, path, entries)
}

// buildDir turns listed entries into a directory node. Subdirectories run on
// the worker group when a slot is free and inline otherwise, so a parent
// waiting on its children can never starve the pool.
func (s *Scanner) buildDir(ctx context.Context, g *errgroup.Group, name, path string, entries []fs.DirEntry) *tree.Node {
	s.dirs.Add(1)
	children := make([]*tree.Node, len(entries))
	var wg sync.WaitGroup
	for i, entry := range entries {
		full := filepath.Join(path, entry.Name())
		if entry.IsDir() {
			wg.Add(1)
			run := func() {
				defer wg.Done()
				children[i] = s.scanDir(ctx, g, full)
			}
			if !g.TryGo(func() error { run(); return nil }) {
				run()
			}
			continue
		}
		info, err := entry.Info()
		if err != nil {
			s.fail(full, err)
			continue
		}
		size := info.Size()
		s.files.Add(1)
		s.bytes.Add(size)
		children[i] = tree.NewFile(entry.Name(), size)
	}
	wg.Wait()
	return tree.NewDirectory(name, children...)
}

func (s *Scanner) fail(path string, err error) {
	s.failures.Add(1)
	events.Scan.EntryError(path, err)
}
