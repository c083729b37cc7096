package ui

import (
	"strings"
	"testing"

	"github.com/atomicstack/tiledu/internal/format"
	"github.com/atomicstack/tiledu/internal/layout"
	"github.com/atomicstack/tiledu/internal/theme"
	"github.com/atomicstack/tiledu/internal/tree"
)

func renderModel(t *testing.T, root *tree.Node, width, height int) (string, *Model) {
	t.Helper()
	m := NewModel(root, layout.DefaultConstraints)
	m.SetViewport(width, height)
	return NewRenderer(theme.Default(), DefaultKeyMap()).Render(m.Frame()), m
}

func TestRenderDimensions(t *testing.T) {
	out, _ := renderModel(t, e2eTree(), 120, 30)
	lines := strings.Split(out, "\n")
	if len(lines) != 30 {
		t.Fatalf("expected 30 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if w := format.Width(line); w != 120 {
			t.Fatalf("line %d: expected width 120, got %d: %q", i, w, line)
		}
	}
}

func TestRenderShowsTilesAndHeader(t *testing.T) {
	out, _ := renderModel(t, e2eTree(), 190, 50)
	lines := strings.Split(out, "\n")
	if !strings.Contains(lines[0], "root") {
		t.Fatalf("expected header to show the path, got %q", lines[0])
	}
	if !strings.Contains(lines[0], "4 files") {
		t.Fatalf("expected header to count files, got %q", lines[0])
	}
	for _, name := range []string{"subfolder1/", "file2", "file1"} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %s in output", name)
		}
	}
	if !strings.HasPrefix(lines[1], "┏") {
		t.Fatalf("expected selected tile drawn with a heavy border, got %q", lines[1])
	}
	footer := lines[len(lines)-1]
	if !strings.Contains(footer, "subfolder1/") || !strings.Contains(footer, "52.6%") {
		t.Fatalf("expected footer to describe the selection, got %q", footer)
	}
}

func TestRenderAggregateLabel(t *testing.T) {
	children := []*tree.Node{tree.NewFile("big", 1000000)}
	for _, name := range []string{"s1", "s2", "s3"} {
		children = append(children, tree.NewFile(name, 1))
	}
	m := NewModel(tree.NewDirectory("root", children...), layout.Constraints{MinWidth: 10, MinHeight: 4})
	m.SetViewport(40, 12)
	frame := m.Frame()
	if !frame.Layout.Tiles[len(frame.Layout.Tiles)-1].Aggregate() {
		t.Fatalf("expected trailing aggregate tile")
	}
	if got := tileLabel(frame.Layout.Tiles[len(frame.Layout.Tiles)-1]); got != "(3 small items)" {
		t.Fatalf("unexpected aggregate label %q", got)
	}
}

func TestRenderEmptyDirectory(t *testing.T) {
	out, _ := renderModel(t, tree.NewDirectory("void"), 40, 10)
	if !strings.Contains(out, emptyMessage) {
		t.Fatalf("expected empty marker, got %q", out)
	}
}

func TestRenderTinyViewport(t *testing.T) {
	r := NewRenderer(nil, DefaultKeyMap())
	if out := r.Render(Frame{}); out != "" {
		t.Fatalf("expected nothing for a zero viewport, got %q", out)
	}
	out, _ := renderModel(t, e2eTree(), 30, 1)
	if strings.Contains(out, "\n") {
		t.Fatalf("expected a single header line, got %q", out)
	}
}

func TestCanvasWideRunes(t *testing.T) {
	c := newCanvas(6, 1)
	c.text(0, 0, 6, "日本x", 0)
	lines := c.lines()
	if lines[0] != "日本x " {
		t.Fatalf("unexpected wide rune placement %q", lines[0])
	}
	c = newCanvas(3, 1)
	c.text(0, 0, 3, "日本", 0)
	if got := c.lines()[0]; got != "日 " {
		t.Fatalf("expected clipped wide rune, got %q", got)
	}
}
