package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/atomicstack/tiledu/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

const DefaultIdleTick = 250 * time.Millisecond

// Input is a ui.EventSource fed by a Bubble Tea program that only decodes
// keys and window sizes; it never renders.
type Input struct {
	program *tea.Program
	events  chan ui.Event
	closing chan struct{}
	done    chan struct{}
	idle    time.Duration

	closeOnce sync.Once
	err       error
}

// StartInput puts in into raw mode and starts decoding. Key presses are
// resolved through keys; unbound keys are dropped.
func StartInput(ctx context.Context, in, out *os.File, keys ui.KeyMap, idle time.Duration) (*Input, error) {
	if !term.IsTerminal(int(in.Fd())) {
		return nil, fmt.Errorf("%w: %s", ErrNotTerminal, in.Name())
	}
	i := newInput(idle)
	fwd := forwarder{keys: keys, events: i.events, closing: i.closing}
	i.program = tea.NewProgram(fwd,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithoutRenderer(),
		tea.WithoutSignalHandler(),
	)
	go func() {
		defer close(i.done)
		if _, err := i.program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			i.err = err
		}
	}()
	return i, nil
}

func newInput(idle time.Duration) *Input {
	if idle <= 0 {
		idle = DefaultIdleTick
	}
	return &Input{
		events:  make(chan ui.Event, 64),
		closing: make(chan struct{}),
		done:    make(chan struct{}),
		idle:    idle,
	}
}

// Next waits for the next event. When nothing arrives within the idle
// interval it returns an idle event.
func (i *Input) Next(ctx context.Context) (ui.Event, error) {
	select {
	case ev := <-i.events:
		return ev, nil
	default:
	}

	timer := time.NewTimer(i.idle)
	defer timer.Stop()
	select {
	case ev := <-i.events:
		return ev, nil
	case <-timer.C:
		return ui.Idle(), nil
	case <-ctx.Done():
		return ui.Event{}, ctx.Err()
	case <-i.done:
		if i.err != nil {
			return ui.Event{}, fmt.Errorf("keyboard input: %w", i.err)
		}
		return ui.Event{}, io.EOF
	}
}

// Close stops decoding and restores the terminal mode.
func (i *Input) Close() error {
	i.closeOnce.Do(func() {
		close(i.closing)
		if i.program != nil {
			i.program.Quit()
		}
	})
	if i.program != nil {
		<-i.done
	}
	return i.err
}

type forwarder struct {
	keys    ui.KeyMap
	events  chan<- ui.Event
	closing <-chan struct{}
}

func (f forwarder) Init() tea.Cmd { return nil }

func (f forwarder) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var ev ui.Event
	switch msg := msg.(type) {
	case tea.KeyMsg:
		k := f.keys.Resolve(msg)
		if k == ui.KeyNone {
			return f, nil
		}
		ev = ui.Press(k)
	case tea.WindowSizeMsg:
		ev = ui.Resize(msg.Width, msg.Height)
	default:
		return f, nil
	}
	select {
	case f.events <- ev:
	case <-f.closing:
	}
	return f, nil
}

func (f forwarder) View() string { return "" }
