package events

import (
	"time"

	"github.com/atomicstack/tiledu/internal/logging"
)

type ScanTracer struct{}

var Scan = ScanTracer{}

func (ScanTracer) Start(root string, workers int) {
	logging.Trace("scan.start", map[string]interface{}{"root": root, "workers": workers})
}

func (ScanTracer) EntryError(path string, err error) {
	if err == nil {
		return
	}
	logging.Trace("scan.entry_error", map[string]interface{}{"path": path, "error": err.Error()})
}

func (ScanTracer) Done(files, dirs int64, bytes int64, failures int64, elapsed time.Duration) {
	logging.Trace("scan.done", map[string]interface{}{
		"files":    files,
		"dirs":     dirs,
		"bytes":    bytes,
		"failures": failures,
		"elapsed":  elapsed.String(),
	})
}
