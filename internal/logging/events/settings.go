package events

import "github.com/atomicstack/cli-launcher/internal/logging"

type SettingsTracer struct{}

var Settings = SettingsTracer{}

func (SettingsTracer) Load(key string, found bool) {
	logging.Trace("settings.load", map[string]interface{}{"key": key, "found": found})
}

func (SettingsTracer) ParseFailed(key string, err error) {
	logging.Trace("settings.parse-failed", map[string]interface{}{"key": key, "error": err.Error()})
}

func (SettingsTracer) FieldReset(field, reason string) {
	logging.Trace("settings.field-reset", map[string]interface{}{"field": field, "reason": reason})
}

func (SettingsTracer) Open() {
	logging.Trace("settings.open", nil)
}

func (SettingsTracer) Preview(opacity int) {
	logging.Trace("settings.preview", map[string]interface{}{"opacity": opacity})
}

func (SettingsTracer) Save(err error) {
	payload := map[string]interface{}{}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("settings.save", payload)
}

func (SettingsTracer) Discard() {
	logging.Trace("settings.discard", nil)
}

func (SettingsTracer) Browse(target string, path string, cancelled bool) {
	logging.Trace("settings.browse", map[string]interface{}{"target": target, "path": path, "cancelled": cancelled})
}
