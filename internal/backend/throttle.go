package backend

import (
	"sync"

	"github.com/atomicstack/tiledu/internal/scan"
)

// throttle suppresses snapshots identical to the last one let through.
type throttle struct {
	mu   sync.Mutex
	last scan.Progress
	seen bool
}

func newThrottle() *throttle {
	return &throttle{}
}

func (t *throttle) changed(p scan.Progress) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.seen && p == t.last {
		return false
	}
	t.last = p
	t.seen = true
	return true
}
