package ui

import (
	"context"
	"errors"
	"io"

	"github.com/atomicstack/tiledu/internal/layout"
	"github.com/atomicstack/tiledu/internal/tree"
)

// Names of the backend calls a Recorder captures.
const (
	CallClear      = "clear"
	CallHideCursor = "hide_cursor"
	CallShowCursor = "show_cursor"
	CallDraw       = "draw"
	CallFlush      = "flush"
)

// ErrInjected is returned by a Recorder for the call named in FailOn.
var ErrInjected = errors.New("injected backend failure")

// Recorder is a Backend that records every call and the frames drawn.
type Recorder struct {
	Width  int
	Height int
	Calls  []string
	Frames []Frame
	FailOn string
}

func NewRecorder(width, height int) *Recorder {
	return &Recorder{Width: width, Height: height}
}

func (r *Recorder) Size() (int, int, error) { return r.Width, r.Height, nil }

func (r *Recorder) Clear() error      { return r.record(CallClear) }
func (r *Recorder) HideCursor() error { return r.record(CallHideCursor) }
func (r *Recorder) ShowCursor() error { return r.record(CallShowCursor) }
func (r *Recorder) Flush() error      { return r.record(CallFlush) }

func (r *Recorder) Draw(f Frame) error {
	if err := r.record(CallDraw); err != nil {
		return err
	}
	r.Frames = append(r.Frames, f)
	return nil
}

func (r *Recorder) record(call string) error {
	r.Calls = append(r.Calls, call)
	if r.FailOn == call {
		return ErrInjected
	}
	return nil
}

// Script is an EventSource replaying a fixed sequence, then io.EOF.
type Script struct {
	events []Event
	pos    int
}

func NewScript(events ...Event) *Script {
	return &Script{events: events}
}

func (s *Script) Next(ctx context.Context) (Event, error) {
	if s.pos >= len(s.events) {
		return Event{}, io.EOF
	}
	ev := s.events[s.pos]
	s.pos++
	return ev, nil
}

// Harness drives a Model through a Loop with a Recorder and scripted input.
type Harness struct {
	model    *Model
	recorder *Recorder
}

// NewHarness creates a harness for root with a terminal of width by height.
func NewHarness(root *tree.Node, width, height int) *Harness {
	return &Harness{
		model:    NewModel(root, layout.DefaultConstraints),
		recorder: NewRecorder(width, height),
	}
}

// Run feeds events through a fresh loop.
func (h *Harness) Run(events ...Event) error {
	return NewLoop(h.model, h.recorder, NewScript(events...)).Run(context.Background())
}

func (h *Harness) Model() *Model { return h.model }

func (h *Harness) Recorder() *Recorder { return h.recorder }

// Calls returns the recorded backend call names.
func (h *Harness) Calls() []string { return h.recorder.Calls }

// Frames returns the frames drawn so far.
func (h *Harness) Frames() []Frame { return h.recorder.Frames }
