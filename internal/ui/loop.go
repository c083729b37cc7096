package ui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/atomicstack/tiledu/internal/logging/events"
)

// Loop drives a Model from an EventSource and draws through a Backend. It
// renders once during setup and afterwards only when a transition marked the
// model dirty.
type Loop struct {
	model   *Model
	backend Backend
	source  EventSource
	frames  int
}

func NewLoop(model *Model, backend Backend, source EventSource) *Loop {
	return &Loop{model: model, backend: backend, source: source}
}

// Frames reports how many frames have been drawn.
func (l *Loop) Frames() int { return l.frames }

// Run performs setup, processes events until quit, an exhausted source or a
// cancelled context, and then tears the screen down.
func (l *Loop) Run(ctx context.Context) (err error) {
	width, height, err := l.backend.Size()
	if err != nil {
		return fmt.Errorf("query viewport: %w", err)
	}

	if err := l.backend.Clear(); err != nil {
		return fmt.Errorf("clear screen: %w", err)
	}
	if err := l.backend.HideCursor(); err != nil {
		return fmt.Errorf("hide cursor: %w", err)
	}
	defer func() {
		if terr := l.teardown(); terr != nil && err == nil {
			err = terr
		}
	}()
	l.model.SetViewport(width, height)
	if err := l.render(); err != nil {
		return err
	}

	for {
		ev, err := l.source.Next(ctx)
		if err != nil {
			switch {
			case errors.Is(err, io.EOF):
				events.App.Stop("input closed")
				return nil
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				events.App.Stop("cancelled")
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}

		switch ev.Kind {
		case EventIdle:
			if ctx.Err() != nil {
				events.App.Stop("cancelled")
				return nil
			}
			continue
		case EventKey:
			if l.model.Apply(ev.Key) {
				events.App.Stop("quit")
				return nil
			}
		case EventResize:
			width, height := ev.Width, ev.Height
			if c, ok := l.backend.(Clamper); ok {
				width, height = c.Clamp(width, height)
			}
			if l.model.SetViewport(width, height) {
				if err := l.backend.Clear(); err != nil {
					return fmt.Errorf("clear screen: %w", err)
				}
			}
		}

		if l.model.Dirty() {
			if err := l.render(); err != nil {
				return err
			}
		}
	}
}

func (l *Loop) render() error {
	frame := l.model.Frame()
	if err := l.backend.Draw(frame); err != nil {
		events.Render.Error(err)
		return fmt.Errorf("draw frame: %w", err)
	}
	if err := l.backend.Flush(); err != nil {
		events.Render.Error(err)
		return fmt.Errorf("flush frame: %w", err)
	}
	l.frames++
	l.model.MarkClean()
	events.Render.Frame(l.frames, len(frame.Layout.Tiles), frame.Selected)
	return nil
}

func (l *Loop) teardown() error {
	var errs []error
	if err := l.backend.Clear(); err != nil {
		errs = append(errs, fmt.Errorf("clear screen: %w", err))
	}
	if err := l.backend.ShowCursor(); err != nil {
		errs = append(errs, fmt.Errorf("show cursor: %w", err))
	}
	return errors.Join(errs...)
}
