// Package binding projects a settings.Configuration onto a view and reads
// edited form values back. It holds no state of its own: every call works
// from the Configuration it is given.
//
// Views are reached through the View capability. An element the view does
// not have is reported in the returned Report and otherwise skipped, so a
// partial view never aborts a render.
package binding

import (
	"strconv"
	"strings"

	"github.com/atomicstack/cli-launcher/internal/logging/events"
	"github.com/atomicstack/cli-launcher/internal/settings"
)

// Handle is one addressable element of a view.
type Handle interface {
	SetText(string)
	SetTitle(string)
	SetValue(string)
	Value() string
}

// View looks up elements by id.
type View interface {
	Get(id string) (Handle, bool)
}

// OptionList is implemented by handles that present a selectable list.
type OptionList interface {
	SetOptions([]Option)
}

// Surface is implemented by handles that carry the background tint.
type Surface interface {
	SetTint(settings.Tint)
}

// Option is one entry of the git repository list. Index is the slot index,
// which stays stable when unset slots are skipped.
type Option struct {
	Index int
	Label string
	Path  string
}

const (
	GitSelectID     = "gitRepoSelect"
	OpacitySliderID = "opacitySlider"
	OpacityValueID  = "opacityVal"
	BackgroundID    = "background"
)

func LabelID(tool settings.Tool, slot int) string {
	return "lbl" + tool.Title() + strconv.Itoa(slot)
}

func NameInputID(tool settings.Tool, slot int) string {
	return "in" + tool.Title() + "Name" + strconv.Itoa(slot)
}

func PathInputID(tool settings.Tool, slot int) string {
	return "in" + tool.Title() + "Path" + strconv.Itoa(slot)
}

func GitNameInputID(slot int) string {
	return "inGitName" + strconv.Itoa(slot)
}

func GitPathInputID(slot int) string {
	return "inGitPath" + strconv.Itoa(slot)
}

// Report lists the element ids a pass could not find.
type Report struct {
	Missing []string
}

func (r Report) OK() bool { return len(r.Missing) == 0 }

func (r *Report) merge(other Report) {
	r.Missing = append(r.Missing, other.Missing...)
}

type binder struct {
	view   View
	report Report
}

func (b *binder) get(id string) (Handle, bool) {
	if b.view == nil {
		b.miss(id)
		return nil, false
	}
	h, ok := b.view.Get(id)
	if !ok || h == nil {
		b.miss(id)
		return nil, false
	}
	return h, true
}

func (b *binder) miss(id string) {
	b.report.Missing = append(b.report.Missing, id)
	events.UI.ElementMissing(id)
}

// Render writes cfg into every element of view it can find.
func Render(cfg settings.Configuration, view View) Report {
	b := &binder{view: view}
	for _, tool := range settings.Tools {
		slots, _ := cfg.Slots(tool)
		for i, slot := range slots {
			if h, ok := b.get(LabelID(tool, i)); ok {
				h.SetText(SlotLabel(slot.Name, i))
				h.SetTitle(slot.Path)
			}
			if h, ok := b.get(NameInputID(tool, i)); ok {
				h.SetValue(slot.Name)
			}
			if h, ok := b.get(PathInputID(tool, i)); ok {
				h.SetValue(slot.Path)
			}
		}
	}
	for i, slot := range cfg.GitRepos {
		if h, ok := b.get(GitNameInputID(i)); ok {
			h.SetValue(slot.Name)
		}
		if h, ok := b.get(GitPathInputID(i)); ok {
			h.SetValue(slot.Path)
		}
	}
	if h, ok := b.get(GitSelectID); ok {
		if list, ok := h.(OptionList); ok {
			list.SetOptions(GitOptions(cfg))
		} else {
			b.miss(GitSelectID)
		}
	}
	b.report.merge(ApplyOpacity(cfg.Opacity, view))
	return b.report
}

// ApplyOpacity updates the background tint, the slider and its readout.
func ApplyOpacity(opacity int, view View) Report {
	b := &binder{view: view}
	tint := settings.TintFor(opacity)
	if h, ok := b.get(BackgroundID); ok {
		if surface, ok := h.(Surface); ok {
			surface.SetTint(tint)
		} else {
			b.miss(BackgroundID)
		}
	}
	if h, ok := b.get(OpacitySliderID); ok {
		value := strconv.Itoa(tint.Opacity)
		if h.Value() != value {
			h.SetValue(value)
		}
	}
	if h, ok := b.get(OpacityValueID); ok {
		h.SetText(tint.Label())
	}
	return b.report
}

// SlotLabel is the radio label for a tool slot: its name, or "Path N".
func SlotLabel(name string, slot int) string {
	if name != "" {
		return name
	}
	return "Path " + strconv.Itoa(slot+1)
}

// GitOptions lists the usable git slots in slot order.
func GitOptions(cfg settings.Configuration) []Option {
	var out []Option
	for i, slot := range cfg.GitRepos {
		if slot.Unset() {
			continue
		}
		label := slot.Name
		if label == "" {
			label = lastSegment(slot.Path)
		}
		out = append(out, Option{Index: i, Label: label, Path: slot.Path})
	}
	return out
}

func lastSegment(path string) string {
	parts := strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' })
	for i := len(parts) - 1; i >= 0; i-- {
		if seg := strings.TrimSpace(parts[i]); seg != "" {
			return seg
		}
	}
	return strings.TrimSpace(path)
}

// CollectEdits starts from prior and overwrites every field whose input is
// present in view. An absent or unparsable opacity slider keeps
// prior.Opacity.
func CollectEdits(view View, prior settings.Configuration) settings.Configuration {
	cfg := prior
	read := func(id string) (string, bool) {
		if view == nil {
			return "", false
		}
		h, ok := view.Get(id)
		if !ok || h == nil {
			return "", false
		}
		return h.Value(), true
	}
	for _, tool := range settings.Tools {
		slots, _ := cfg.Slots(tool)
		for i := range slots {
			if v, ok := read(NameInputID(tool, i)); ok {
				slots[i].Name = v
			}
			if v, ok := read(PathInputID(tool, i)); ok {
				slots[i].Path = v
			}
		}
		cfg.SetSlots(tool, slots)
	}
	for i := range cfg.GitRepos {
		if v, ok := read(GitNameInputID(i)); ok {
			cfg.GitRepos[i].Name = v
		}
		if v, ok := read(GitPathInputID(i)); ok {
			cfg.GitRepos[i].Path = v
		}
	}
	if v, ok := read(OpacitySliderID); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			cfg.Opacity = settings.ClampOpacity(n)
		}
	}
	return cfg
}
