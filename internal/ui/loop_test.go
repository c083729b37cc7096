package ui

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/atomicstack/tiledu/internal/layout"
	"github.com/atomicstack/tiledu/internal/tree"
)

func e2eTree() *tree.Node {
	return tree.NewDirectory("root",
		tree.NewDirectory("subfolder1",
			tree.NewFile("file3", 6000),
			tree.NewDirectory("nested", tree.NewFile("file4", 4000)),
		),
		tree.NewFile("file2", 5000),
		tree.NewFile("file1", 4000),
	)
}

func assertCalls(t *testing.T, got []string, want ...string) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected calls %v, got %v", want, got)
	}
}

func TestLoopQuitImmediately(t *testing.T) {
	h := NewHarness(e2eTree(), 190, 50)
	if err := h.Run(Press(KeyQuit)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertCalls(t, h.Calls(),
		CallClear, CallHideCursor, CallDraw, CallFlush,
		CallClear, CallShowCursor,
	)
}

func TestLoopEndToEndSequence(t *testing.T) {
	h := NewHarness(e2eTree(), 190, 50)
	err := h.Run(Idle(), Press(KeyDown), Idle(), Press(KeyEnter), Idle(), Press(KeyQuit))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertCalls(t, h.Calls(),
		CallClear, CallHideCursor, CallDraw, CallFlush,
		CallDraw, CallFlush,
		CallClear, CallShowCursor,
	)
	frames := h.Frames()
	if frames[0].Path != "root" || frames[1].Path != "root/subfolder1" {
		t.Fatalf("expected root then subfolder1 frames, got %q and %q", frames[0].Path, frames[1].Path)
	}
}

func TestLoopNoOpsNeverRedraw(t *testing.T) {
	root := tree.NewDirectory("root",
		tree.NewFile("a", 16000),
		tree.NewFile("b", 2000),
		tree.NewFile("c", 2000),
	)
	h := NewHarness(root, 190, 50)
	err := h.Run(Press(KeyRight), Press(KeyRight), Press(KeyEnter), Press(KeyAscend), Idle(), Press(KeyNone), Press(KeyQuit))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertCalls(t, h.Calls(),
		CallClear, CallHideCursor, CallDraw, CallFlush,
		CallDraw, CallFlush,
		CallClear, CallShowCursor,
	)
}

func TestLoopRendersOncePerStateChange(t *testing.T) {
	h := NewHarness(e2eTree(), 190, 50)
	err := h.Run(Press(KeyEnter), Press(KeyAscend), Press(KeyRight), Press(KeyQuit))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	draws := 0
	for _, call := range h.Calls() {
		if call == CallDraw {
			draws++
		}
	}
	if draws != 4 {
		t.Fatalf("expected 4 draws (setup plus three transitions), got %d", draws)
	}
	last := h.Frames()[3]
	if last.Layout.Tiles[last.Selected].Name() != "file2" {
		t.Fatalf("expected file2 selected in the last frame")
	}
}

func TestLoopEnterAscendRestoresLayout(t *testing.T) {
	h := NewHarness(e2eTree(), 190, 50)
	if err := h.Run(Press(KeyEnter), Press(KeyAscend), Press(KeyQuit)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	frames := h.Frames()
	if len(frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(frames))
	}
	if !reflect.DeepEqual(frames[0].Layout, frames[2].Layout) {
		t.Fatalf("expected identical root layout after round trip")
	}
	if frames[2].Selected != frames[0].Selected {
		t.Fatalf("expected subfolder1 reselected, got %d", frames[2].Selected)
	}
}

func TestLoopExhaustedSourceTearsDown(t *testing.T) {
	h := NewHarness(e2eTree(), 190, 50)
	if err := h.Run(Idle()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertCalls(t, h.Calls(),
		CallClear, CallHideCursor, CallDraw, CallFlush,
		CallClear, CallShowCursor,
	)
}

func TestLoopResize(t *testing.T) {
	h := NewHarness(e2eTree(), 190, 50)
	if err := h.Run(Resize(190, 50), Resize(80, 24), Press(KeyQuit)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertCalls(t, h.Calls(),
		CallClear, CallHideCursor, CallDraw, CallFlush,
		CallClear, CallDraw, CallFlush,
		CallClear, CallShowCursor,
	)
	last := h.Frames()[1]
	if last.Width != 80 || last.Layout.Bounds != (layout.Rect{X: 0, Y: 1, Width: 80, Height: 22}) {
		t.Fatalf("expected relayout for 80x24, got %+v", last.Layout.Bounds)
	}
}

func TestLoopDrawErrorStillTearsDown(t *testing.T) {
	h := NewHarness(e2eTree(), 190, 50)
	h.Recorder().FailOn = CallDraw
	err := h.Run(Press(KeyQuit))
	if !errors.Is(err, ErrInjected) {
		t.Fatalf("expected injected error, got %v", err)
	}
	assertCalls(t, h.Calls(),
		CallClear, CallHideCursor, CallDraw,
		CallClear, CallShowCursor,
	)
}

func TestLoopSetupFailureSkipsTeardown(t *testing.T) {
	h := NewHarness(e2eTree(), 190, 50)
	h.Recorder().FailOn = CallHideCursor
	err := h.Run(Press(KeyQuit))
	if !errors.Is(err, ErrInjected) {
		t.Fatalf("expected injected error, got %v", err)
	}
	assertCalls(t, h.Calls(), CallClear, CallHideCursor)
}

type clampingRecorder struct {
	*Recorder
}

func (clampingRecorder) Clamp(int, int) (int, int) { return 80, 24 }

func TestLoopResizeClampedByBackend(t *testing.T) {
	rec := clampingRecorder{NewRecorder(80, 24)}
	m := NewModel(e2eTree(), layout.DefaultConstraints)
	src := NewScript(Resize(200, 60), Press(KeyQuit))
	if err := NewLoop(m, rec, src).Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertCalls(t, rec.Calls,
		CallClear, CallHideCursor, CallDraw, CallFlush,
		CallClear, CallShowCursor,
	)
	if f := m.Frame(); f.Width != 80 || f.Height != 24 {
		t.Fatalf("expected clamped 80x24 viewport, got %dx%d", f.Width, f.Height)
	}
}

type blockingSource struct{}

func (blockingSource) Next(ctx context.Context) (Event, error) {
	select {
	case <-ctx.Done():
		return Event{}, ctx.Err()
	case <-time.After(time.Millisecond):
		return Idle(), nil
	}
}

func TestLoopCancelledContext(t *testing.T) {
	rec := NewRecorder(80, 24)
	m := NewModel(e2eTree(), layout.DefaultConstraints)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewLoop(m, rec, blockingSource{}).Run(ctx); err != nil {
		t.Fatalf("expected clean exit on cancellation, got %v", err)
	}
	assertCalls(t, rec.Calls,
		CallClear, CallHideCursor, CallDraw, CallFlush,
		CallClear, CallShowCursor,
	)
}
