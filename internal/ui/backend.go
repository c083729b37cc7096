package ui

import "context"

// Backend is the output capability the loop draws through.
type Backend interface {
	Size() (width, height int, err error)
	Clear() error
	HideCursor() error
	ShowCursor() error
	Draw(Frame) error
	Flush() error
}

// Clamper is implemented by backends with a fixed viewport. The loop passes
// resize events through Clamp before relayout.
type Clamper interface {
	Clamp(width, height int) (int, int)
}

// EventKind distinguishes the inputs an EventSource yields.
type EventKind int

const (
	// EventIdle means no input arrived within the idle interval.
	EventIdle EventKind = iota
	EventKey
	EventResize
)

// Event is one input delivered to the loop.
type Event struct {
	Kind   EventKind
	Key    Key
	Width  int
	Height int
}

// EventSource yields input events in arrival order. Next returns io.EOF once
// the source is exhausted.
type EventSource interface {
	Next(ctx context.Context) (Event, error)
}

func Idle() Event { return Event{Kind: EventIdle} }

func Press(k Key) Event { return Event{Kind: EventKey, Key: k} }

func Resize(width, height int) Event {
	return Event{Kind: EventResize, Width: width, Height: height}
}
