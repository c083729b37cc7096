package terminal

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/atomicstack/tiledu/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

func TestForwarderTranslatesMessages(t *testing.T) {
	in := newInput(time.Second)
	fwd := forwarder{keys: ui.DefaultKeyMap(), events: in.events, closing: in.closing}

	fwd.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	fwd.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}})
	fwd.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	fwd.Update(tea.FocusMsg{})

	ctx := context.Background()
	first, err := in.Next(ctx)
	if err != nil || first != ui.Press(ui.KeyRight) {
		t.Fatalf("expected right key event, got %+v (%v)", first, err)
	}
	second, err := in.Next(ctx)
	if err != nil || second != ui.Resize(100, 40) {
		t.Fatalf("expected resize event, got %+v (%v)", second, err)
	}
}

func TestForwarderUnblocksOnClose(t *testing.T) {
	in := newInput(time.Second)
	in.events = make(chan ui.Event)
	fwd := forwarder{keys: ui.DefaultKeyMap(), events: in.events, closing: in.closing}
	if err := in.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	done := make(chan struct{})
	go func() {
		fwd.Update(tea.KeyMsg{Type: tea.KeyEnter})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("expected update to return after close")
	}
}

func TestNextIdleTick(t *testing.T) {
	in := newInput(5 * time.Millisecond)
	ev, err := in.Next(context.Background())
	if err != nil || ev.Kind != ui.EventIdle {
		t.Fatalf("expected idle event, got %+v (%v)", ev, err)
	}
}

func TestNextAfterProgramExit(t *testing.T) {
	in := newInput(time.Hour)
	close(in.done)
	if _, err := in.Next(context.Background()); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestNextCancelled(t *testing.T) {
	in := newInput(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := in.Next(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestStartInputRequiresTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "stdin")
	if err != nil {
		t.Fatalf("temp file: %v", err)
	}
	defer f.Close()
	if _, err := StartInput(context.Background(), f, f, ui.DefaultKeyMap(), 0); !errors.Is(err, ErrNotTerminal) {
		t.Fatalf("expected ErrNotTerminal, got %v", err)
	}
}
