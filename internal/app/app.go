package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/atomicstack/tiledu/internal/backend"
	"github.com/atomicstack/tiledu/internal/format"
	"github.com/atomicstack/tiledu/internal/layout"
	"github.com/atomicstack/tiledu/internal/scan"
	"github.com/atomicstack/tiledu/internal/terminal"
	"github.com/atomicstack/tiledu/internal/theme"
	"github.com/atomicstack/tiledu/internal/tree"
	"github.com/atomicstack/tiledu/internal/ui"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
)

const progressInterval = 100 * time.Millisecond

// Config describes user-provided application options.
type Config struct {
	Root          string
	Width         int
	Height        int
	MinTileWidth  int
	MinTileHeight int
	IdleTick      time.Duration
	Workers       int
	ShowProgress  bool
}

func (c Config) constraints() layout.Constraints {
	return layout.Constraints{MinWidth: c.MinTileWidth, MinHeight: c.MinTileHeight}
}

// Run scans the root, takes over the terminal and browses until the user
// quits or ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	var progress io.Writer
	if cfg.ShowProgress {
		progress = os.Stderr
	}
	root, err := Scan(ctx, cfg, progress)
	if err != nil {
		return err
	}

	keys := ui.DefaultKeyMap()
	screen, err := terminal.OpenScreen(os.Stdout, cfg.Width, cfg.Height, ui.NewRenderer(theme.Default(), keys))
	if err != nil {
		return fmt.Errorf("open screen: %w", err)
	}
	defer screen.Close()

	input, err := terminal.StartInput(ctx, os.Stdin, os.Stdout, keys, cfg.IdleTick)
	if err != nil {
		return fmt.Errorf("start input: %w", err)
	}
	defer input.Close()

	return Browse(ctx, cfg, root, screen, input)
}

// Start scans the root and runs the event loop against the given backend and
// event source. A scan failure returns before the backend is touched.
func Start(ctx context.Context, cfg Config, b ui.Backend, src ui.EventSource) error {
	root, err := Scan(ctx, cfg, nil)
	if err != nil {
		return err
	}
	return Browse(ctx, cfg, root, b, src)
}

// Browse runs the event loop over an already scanned tree.
func Browse(ctx context.Context, cfg Config, root *tree.Node, b ui.Backend, src ui.EventSource) error {
	model := ui.NewModel(root, cfg.constraints())
	return ui.NewLoop(model, b, src).Run(ctx)
}

// Scan builds the tree for cfg.Root. When progress is non-nil a status line
// is kept up to date on it while the scan runs.
func Scan(ctx context.Context, cfg Config, progress io.Writer) (*tree.Node, error) {
	scanner := scan.New(scan.Options{Workers: cfg.Workers})
	if progress != nil {
		watcher := backend.NewWatcher(scanner, progressInterval)
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ev := range watcher.Events() {
				writeProgress(progress, ev)
			}
		}()
		defer func() {
			watcher.Stop()
			wg.Wait()
			clearProgress(progress)
		}()
	}
	root, err := scanner.Scan(ctx, cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", cfg.Root, err)
	}
	return root, nil
}

// writeProgress redraws the status line. The final snapshot is skipped since
// the line is cleared once the watcher has drained.
func writeProgress(w io.Writer, ev backend.Event) {
	if ev.Final {
		return
	}
	fmt.Fprint(w, "\r"+ansi.EraseEntireLine+progressLine(ev.Progress))
}

func clearProgress(w io.Writer) {
	fmt.Fprint(w, "\r"+ansi.EraseEntireLine)
}

func progressLine(p scan.Progress) string {
	line := fmt.Sprintf("scanning: %s files, %s dirs, %s",
		humanize.Comma(p.Files), humanize.Comma(p.Dirs), format.Size(p.Bytes))
	if p.Failures > 0 {
		line += fmt.Sprintf(" (%s unreadable)", humanize.Comma(p.Failures))
	}
	return line
}
