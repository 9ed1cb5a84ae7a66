package events

import "github.com/atomicstack/cli-launcher/internal/logging"

type LaunchTracer struct{}

type DropTracer struct{}

var (
	Launch = LaunchTracer{}
	Drop   = DropTracer{}
)

func (LaunchTracer) Request(tool string, slot int, path string) {
	logging.Trace("launch.request", map[string]interface{}{"tool": tool, "slot": slot, "path": path})
}

func (LaunchTracer) MissingPath(tool string, slot int) {
	logging.Trace("launch.missing-path", map[string]interface{}{"tool": tool, "slot": slot})
}

func (LaunchTracer) Result(tool, path string, err error) {
	payload := map[string]interface{}{"tool": tool, "path": path}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("launch.result", payload)
}

func (DropTracer) Received(paths int, x, y int) {
	logging.Trace("drop.received", map[string]interface{}{"paths": paths, "x": x, "y": y})
}

func (DropTracer) NoTarget(x, y int) {
	logging.Trace("drop.no-target", map[string]interface{}{"x": x, "y": y})
}

func (DropTracer) Resolved(tool, path string) {
	logging.Trace("drop.resolved", map[string]interface{}{"tool": tool, "path": path})
}
