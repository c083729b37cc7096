package events

import "github.com/atomicstack/tiledu/internal/logging"

type NavTracer struct{}

type RenderTracer struct{}

var (
	Nav    = NavTracer{}
	Render = RenderTracer{}
)

func (NavTracer) Move(direction string, from, to int) {
	logging.Trace("nav.move", map[string]interface{}{"direction": direction, "from": from, "to": to})
}

func (NavTracer) Enter(path string, tiles int) {
	logging.Trace("nav.enter", map[string]interface{}{"path": path, "tiles": tiles})
}

func (NavTracer) Ascend(path string, selected int) {
	logging.Trace("nav.ascend", map[string]interface{}{"path": path, "selected": selected})
}

func (NavTracer) Resize(width, height, tiles int) {
	logging.Trace("nav.resize", map[string]interface{}{"width": width, "height": height, "tiles": tiles})
}

// NoOp records an input that left the state untouched.
func (NavTracer) NoOp(action, reason string) {
	logging.Trace("nav.noop", map[string]interface{}{"action": action, "reason": reason})
}

func (RenderTracer) Frame(seq, tiles, selected int) {
	logging.Trace("render.frame", map[string]interface{}{"seq": seq, "tiles": tiles, "selected": selected})
}

func (RenderTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("render.error", map[string]interface{}{"error": err.Error()})
}
