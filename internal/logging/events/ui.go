package events

import "github.com/atomicstack/cli-launcher/internal/logging"

type UITracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

// ElementMissing is emitted by the binding layer when a view lacks an
// element it was asked to update. Missing elements are never fatal.
func (UITracer) ElementMissing(id string) {
	logging.Trace("ui.element.missing", map[string]interface{}{"id": id})
}

func (UITracer) SelectSlot(tool string, index int) {
	logging.Trace("ui.select.slot", map[string]interface{}{"tool": tool, "index": index})
}

func (UITracer) Focus(id string) {
	logging.Trace("ui.focus", map[string]interface{}{"id": id})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
