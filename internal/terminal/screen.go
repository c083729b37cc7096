// Package terminal connects the event loop to a real terminal.
package terminal

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atomicstack/tiledu/internal/ui"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
)

// ErrNotTerminal reports that a descriptor is not attached to a terminal.
var ErrNotTerminal = errors.New("not a terminal")

// Screen is a ui.Backend writing control sequences and frames to a terminal.
// Frames are built by Draw and written by Flush.
type Screen struct {
	out      io.Writer
	fd       int
	width    int
	height   int
	renderer *ui.Renderer
	pending  string
	alt      bool
}

// OpenScreen switches out to the alternate screen. A positive width or
// height overrides the terminal's own size on that axis.
func OpenScreen(out *os.File, width, height int, renderer *ui.Renderer) (*Screen, error) {
	fd := int(out.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("%w: %s", ErrNotTerminal, out.Name())
	}
	s := &Screen{out: out, fd: fd, width: width, height: height, renderer: renderer}
	if _, err := io.WriteString(out, ansi.SetAltScreenSaveCursorMode); err != nil {
		return nil, fmt.Errorf("enter alternate screen: %w", err)
	}
	s.alt = true
	return s, nil
}

// NewScreen writes to an arbitrary writer with a fixed size.
func NewScreen(out io.Writer, width, height int, renderer *ui.Renderer) *Screen {
	return &Screen{out: out, fd: -1, width: width, height: height, renderer: renderer}
}

// Size returns the viewport, preferring configured overrides.
func (s *Screen) Size() (int, int, error) {
	if s.width > 0 && s.height > 0 {
		return s.width, s.height, nil
	}
	if s.fd < 0 {
		return 0, 0, fmt.Errorf("%w: size unknown", ErrNotTerminal)
	}
	width, height, err := term.GetSize(s.fd)
	if err != nil {
		return 0, 0, fmt.Errorf("query terminal size: %w", err)
	}
	if s.width > 0 {
		width = s.width
	}
	if s.height > 0 {
		height = s.height
	}
	return width, height, nil
}

// Clamp replaces each reported dimension with its configured override.
func (s *Screen) Clamp(width, height int) (int, int) {
	if s.width > 0 {
		width = s.width
	}
	if s.height > 0 {
		height = s.height
	}
	return width, height
}

func (s *Screen) Clear() error {
	return s.write(ansi.EraseEntireScreen + ansi.CursorHomePosition)
}

func (s *Screen) HideCursor() error { return s.write(ansi.HideCursor) }

func (s *Screen) ShowCursor() error { return s.write(ansi.ShowCursor) }

// Draw renders f into the pending buffer without writing it.
func (s *Screen) Draw(f ui.Frame) error {
	s.pending = s.renderer.Render(f)
	return nil
}

// Flush writes the pending frame from the home position. Lines end in CRLF
// because the terminal is in raw mode while input is read.
func (s *Screen) Flush() error {
	var b bytes.Buffer
	b.WriteString(ansi.CursorHomePosition)
	b.WriteString(strings.ReplaceAll(s.pending, "\n", "\r\n"))
	s.pending = ""
	return s.write(b.String())
}

// Close leaves the alternate screen when OpenScreen entered it.
func (s *Screen) Close() error {
	if !s.alt {
		return nil
	}
	s.alt = false
	return s.write(ansi.ResetAltScreenSaveCursorMode)
}

func (s *Screen) write(seq string) error {
	if _, err := io.WriteString(s.out, seq); err != nil {
		return fmt.Errorf("write terminal: %w", err)
	}
	return nil
}
