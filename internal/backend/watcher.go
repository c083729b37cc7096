package backend

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/tiledu/internal/scan"
)

// ProgressSource exposes scanner counters.
type ProgressSource interface {
	Progress() scan.Progress
}

// Event conveys a progress snapshot. Final is set on the snapshot emitted
// while the watcher stops.
type Event struct {
	Progress scan.Progress
	Final    bool
}

// Watcher polls a progress source at a fixed interval and publishes changed
// snapshots.
type Watcher struct {
	source   ProgressSource
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher that polls source every interval.
func NewWatcher(source ProgressSource, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		source:   source,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	w.wg.Add(1)
	go w.poll()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of progress events. It is closed after Stop once
// the final snapshot has been delivered.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. The poller emits one final snapshot before it
// exits; use Wait if a clean drain is required.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller has exited and the events channel is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) poll() {
	defer w.wg.Done()

	gate := newThrottle()
	emit := func(final bool) bool {
		snapshot := w.source.Progress()
		if !gate.changed(snapshot) && !final {
			return true
		}
		evt := Event{Progress: snapshot, Final: final}
		if final {
			select {
			case w.events <- evt:
			default:
			}
			return false
		}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit(false) {
		emit(true)
		return
	}

	interval := w.interval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			emit(true)
			return
		case <-ticker.C:
			if !emit(false) {
				emit(true)
				return
			}
		}
	}
}
