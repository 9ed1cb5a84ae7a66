package binding

import "github.com/atomicstack/cli-launcher/internal/settings"

// Element is a plain in-memory Handle. It also implements OptionList and
// Surface, so one type can stand in for any element of a view.
type Element struct {
	Text    string
	Title   string
	Val     string
	Options []Option
	Tint    settings.Tint
	HasTint bool
}

func (e *Element) SetText(s string)            { e.Text = s }
func (e *Element) SetTitle(s string)           { e.Title = s }
func (e *Element) SetValue(s string)           { e.Val = s }
func (e *Element) Value() string               { return e.Val }
func (e *Element) SetOptions(options []Option) { e.Options = append([]Option(nil), options...) }
func (e *Element) SetTint(t settings.Tint)     { e.Tint, e.HasTint = t, true }

// Elements is a View over a fixed set of Elements keyed by id.
type Elements map[string]*Element

func (m Elements) Get(id string) (Handle, bool) {
	el, ok := m[id]
	if !ok || el == nil {
		return nil, false
	}
	return el, true
}

// NewElements returns a view holding every element id the launcher uses.
func NewElements() Elements {
	m := Elements{}
	for _, id := range AllIDs() {
		m[id] = &Element{}
	}
	return m
}

// AllIDs lists every element id a full render touches.
func AllIDs() []string {
	var ids []string
	for _, tool := range settings.Tools {
		for i := 0; i < settings.SlotsPerTool; i++ {
			ids = append(ids, LabelID(tool, i), NameInputID(tool, i), PathInputID(tool, i))
		}
	}
	for i := 0; i < settings.GitSlots; i++ {
		ids = append(ids, GitNameInputID(i), GitPathInputID(i))
	}
	return append(ids, GitSelectID, OpacitySliderID, OpacityValueID, BackgroundID)
}
