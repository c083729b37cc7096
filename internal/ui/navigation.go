package ui

import (
	"github.com/atomicstack/tiledu/internal/logging/events"
	uistate "github.com/atomicstack/tiledu/internal/ui/state"
)

// Move selects the nearest tile in direction d. Without a candidate it is a
// no-op and the frame stays clean.
func (m *Model) Move(d uistate.Direction) bool {
	from := m.current.Selected
	if !m.current.Move(d) {
		events.Nav.NoOp(d.String(), "no candidate")
		return false
	}
	m.dirty = true
	events.Nav.Move(d.String(), from, m.current.Selected)
	return true
}

// Enter descends into the selected directory. Files, aggregates and empty
// directories are no-ops; an empty directory would leave the new level
// without a selectable tile.
func (m *Model) Enter() bool {
	tile, ok := m.current.Current()
	switch {
	case !ok:
		events.Nav.NoOp("enter", "no selection")
		return false
	case tile.Aggregate():
		events.Nav.NoOp("enter", "aggregate")
		return false
	case !tile.Node.IsDir():
		events.Nav.NoOp("enter", "file")
		return false
	case tile.Node.Len() == 0:
		events.Nav.NoOp("enter", "empty directory")
		return false
	}
	m.stack = append(m.stack, tile.Node)
	m.current = uistate.NewLevel(tile.Node, m.bounds(), m.limits)
	m.dirty = true
	events.Nav.Enter(m.Path(), len(m.current.Layout.Tiles))
	return true
}

// Ascend returns to the parent directory and selects the tile holding the
// directory just left. At the root it is a no-op.
func (m *Model) Ascend() bool {
	if len(m.stack) <= 1 {
		events.Nav.NoOp("ascend", "at root")
		return false
	}
	exited := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	m.current = uistate.NewLevel(m.Dir(), m.bounds(), m.limits)
	m.current.Select(exited)
	m.dirty = true
	events.Nav.Ascend(m.Path(), m.current.Selected)
	return true
}
