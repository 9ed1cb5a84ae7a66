package events

import "github.com/atomicstack/cli-launcher/internal/logging"

type TabTracer struct{}

var Tab = TabTracer{}

func (TabTracer) Activate(tab string, width, height int) {
	logging.Trace("tab.activate", map[string]interface{}{"tab": tab, "width": width, "height": height})
}

func (TabTracer) Unknown(tab string) {
	logging.Trace("tab.unknown", map[string]interface{}{"tab": tab})
}

func (TabTracer) Targets(tab string, count int) {
	logging.Trace("tab.targets", map[string]interface{}{"tab": tab, "count": count})
}

// ResizeFailed is logged as a warning as well as traced: resize failures are
// never surfaced to the user.
func (TabTracer) ResizeFailed(tab string, err error) {
	if err == nil {
		return
	}
	logging.Warn("resize for tab %s failed: %v", tab, err)
	logging.Trace("tab.resize.error", map[string]interface{}{"tab": tab, "error": err.Error()})
}
