package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/atomicstack/cli-launcher/internal/logging/events"
)

// ErrConfigParse marks persisted state that could not be parsed at all. The
// Configuration returned alongside it is always usable (the defaults).
var ErrConfigParse = errors.New("settings: persisted config unreadable")

// Decode merges persisted JSON over the defaults.
//
// Each top-level field is taken from data when present, non-null and
// decodable, otherwise from Default(). Slot arrays of the wrong length are
// repaired per index from the default at the same index; extra entries are
// dropped and an empty array counts as absent. Opacity is rounded and clamped.
// Only a document that is not a JSON object at all yields ErrConfigParse.
func Decode(data []byte) (Configuration, error) {
	cfg := Default()
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return cfg, nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	for _, tool := range Tools {
		defaults, _ := cfg.Slots(tool)
		msg, ok := present(raw, string(tool))
		if !ok {
			continue
		}
		slots, reason := decodeSlots(msg, defaults[:])
		if reason != "" {
			events.Settings.FieldReset(string(tool), reason)
		}
		var fixed [SlotsPerTool]ToolSlot
		copy(fixed[:], slots)
		cfg.SetSlots(tool, fixed)
	}

	if msg, ok := present(raw, "gitRepos"); ok {
		slots, reason := decodeSlots(msg, cfg.GitRepos[:])
		if reason != "" {
			events.Settings.FieldReset("gitRepos", reason)
		}
		copy(cfg.GitRepos[:], slots)
	}

	if msg, ok := present(raw, "opacity"); ok {
		var v float64
		if err := json.Unmarshal(msg, &v); err != nil || math.IsNaN(v) {
			events.Settings.FieldReset("opacity", "not a number")
		} else {
			cfg.Opacity = ClampOpacity(int(math.Round(math.Max(MinOpacity, math.Min(MaxOpacity, v)))))
		}
	}
	return cfg, nil
}

// Encode serializes the full Configuration in the persisted shape.
func Encode(cfg Configuration) ([]byte, error) {
	data, err := json.Marshal(Normalize(cfg))
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	return data, nil
}

func present(raw map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	msg, ok := raw[key]
	if !ok {
		return nil, false
	}
	if bytes.Equal(bytes.TrimSpace(msg), []byte("null")) {
		return nil, false
	}
	return msg, true
}

// decodeSlots returns a slice of exactly len(defaults) entries and a non-empty
// reason whenever any entry had to come from defaults.
func decodeSlots[T any](msg json.RawMessage, defaults []T) ([]T, string) {
	out := make([]T, len(defaults))
	copy(out, defaults)

	var items []json.RawMessage
	if err := json.Unmarshal(msg, &items); err != nil {
		return out, "not an array"
	}
	if len(items) == 0 {
		return out, "empty array"
	}
	reason := ""
	if len(items) != len(defaults) {
		reason = fmt.Sprintf("expected %d slots, got %d", len(defaults), len(items))
	}
	for i := range out {
		if i >= len(items) {
			break
		}
		var slot T
		if bytes.Equal(bytes.TrimSpace(items[i]), []byte("null")) {
			reason = fmt.Sprintf("slot %d missing", i)
			continue
		}
		if err := json.Unmarshal(items[i], &slot); err != nil {
			reason = fmt.Sprintf("slot %d malformed", i)
			continue
		}
		out[i] = slot
	}
	return out, reason
}
