package ui

import (
	"path/filepath"

	"github.com/atomicstack/tiledu/internal/layout"
	"github.com/atomicstack/tiledu/internal/logging/events"
	"github.com/atomicstack/tiledu/internal/tree"
	uistate "github.com/atomicstack/tiledu/internal/ui/state"
)

const (
	headerRows = 1
	footerRows = 1
)

type level = uistate.Level

type keyHandler func() bool

// Model is the navigation state machine: the directory stack from the root
// to the active directory, the active level's layout and selection, and the
// dirty flag that decides whether the loop renders.
type Model struct {
	stack   []*tree.Node
	current *level
	limits  layout.Constraints

	width  int
	height int
	sized  bool
	dirty  bool

	handlers map[Key]keyHandler
}

// NewModel starts navigation at root. The layout is empty until the first
// SetViewport call.
func NewModel(root *tree.Node, limits layout.Constraints) *Model {
	m := &Model{
		stack:  []*tree.Node{root},
		limits: limits,
	}
	m.current = uistate.NewLevel(root, layout.Rect{}, limits)
	m.registerHandlers()
	return m
}

func (m *Model) registerHandlers() {
	m.handlers = map[Key]keyHandler{
		KeyLeft:   func() bool { return m.Move(uistate.Left) },
		KeyDown:   func() bool { return m.Move(uistate.Down) },
		KeyUp:     func() bool { return m.Move(uistate.Up) },
		KeyRight:  func() bool { return m.Move(uistate.Right) },
		KeyEnter:  m.Enter,
		KeyAscend: m.Ascend,
	}
}

// Apply runs the transition bound to k and reports whether k asks to quit.
func (m *Model) Apply(k Key) (quit bool) {
	if k == KeyQuit {
		return true
	}
	handler, ok := m.handlers[k]
	if !ok {
		events.Nav.NoOp(k.String(), "unbound")
		return false
	}
	handler()
	return false
}

// SetViewport sizes the treemap for a terminal of width by height cells. It
// reports whether the size changed; unchanged sizes leave the frame clean.
func (m *Model) SetViewport(width, height int) bool {
	if m.sized && width == m.width && height == m.height {
		events.Nav.NoOp("resize", "unchanged")
		return false
	}
	m.width, m.height, m.sized = width, height, true
	m.current.Relayout(m.bounds(), m.limits)
	m.dirty = true
	events.Nav.Resize(width, height, len(m.current.Layout.Tiles))
	return true
}

// bounds reserves the header and footer rows around the treemap.
func (m *Model) bounds() layout.Rect {
	h := m.height - headerRows - footerRows
	if h < 0 {
		h = 0
	}
	w := m.width
	if w < 0 {
		w = 0
	}
	return layout.Rect{X: 0, Y: headerRows, Width: w, Height: h}
}

func (m *Model) Dirty() bool { return m.dirty }

// MarkClean records that the current state has been rendered.
func (m *Model) MarkClean() { m.dirty = false }

// Depth returns the number of directories on the stack.
func (m *Model) Depth() int { return len(m.stack) }

// Dir returns the active directory.
func (m *Model) Dir() *tree.Node { return m.stack[len(m.stack)-1] }

// Layout returns the active layout.
func (m *Model) Layout() layout.Layout { return m.current.Layout }

// Selected returns the selected tile index, or -1 for an empty layout.
func (m *Model) Selected() int { return m.current.Selected }

// SelectedTile returns the selected tile.
func (m *Model) SelectedTile() (layout.Tile, bool) { return m.current.Current() }

// Names returns the names on the directory stack from the root down.
func (m *Model) Names() []string {
	names := make([]string, len(m.stack))
	for i, n := range m.stack {
		names[i] = n.Name()
	}
	return names
}

// Path joins the stack names into a filesystem path.
func (m *Model) Path() string {
	return filepath.Join(m.Names()...)
}

// Frame snapshots everything the renderer needs.
func (m *Model) Frame() Frame {
	return Frame{
		Width:    m.width,
		Height:   m.height,
		Path:     m.Path(),
		Dir:      m.Dir(),
		Layout:   m.current.Layout,
		Selected: m.current.Selected,
	}
}

// Frame is an immutable snapshot of the navigation state for drawing.
type Frame struct {
	Width    int
	Height   int
	Path     string
	Dir      *tree.Node
	Layout   layout.Layout
	Selected int
}
