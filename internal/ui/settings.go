package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/atomicstack/cli-launcher/internal/binding"
	"github.com/atomicstack/cli-launcher/internal/logging/events"
	"github.com/atomicstack/cli-launcher/internal/settings"
	"github.com/atomicstack/cli-launcher/internal/ui/command"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type settingsSavedMsg struct {
	gen int
	cfg settings.Configuration
	err error
}

type formField struct {
	id    string
	label string
	path  bool
	input textinput.Model
}

// settingsForm holds the editable inputs. The opacity slider sits after the
// last text field in focus order.
type settingsForm struct {
	fields  []formField
	focus   int
	opacity int
}

func newSettingsForm() *settingsForm {
	f := &settingsForm{}
	for _, tool := range settings.Tools {
		for i := 0; i < settings.SlotsPerTool; i++ {
			f.add(binding.NameInputID(tool, i), fmt.Sprintf("%s %d name", tool.Title(), i+1), false)
			f.add(binding.PathInputID(tool, i), fmt.Sprintf("%s %d path", tool.Title(), i+1), true)
		}
	}
	for i := 0; i < settings.GitSlots; i++ {
		f.add(binding.GitNameInputID(i), fmt.Sprintf("Repo %d name", i+1), false)
		f.add(binding.GitPathInputID(i), fmt.Sprintf("Repo %d path", i+1), true)
	}
	f.setFocus(0)
	return f
}

func (f *settingsForm) add(id, label string, path bool) {
	placeholder := "name"
	if path {
		placeholder = "path"
	}
	f.fields = append(f.fields, formField{id: id, label: label, path: path, input: newInput(placeholder, 1024)})
}

func (f *settingsForm) index(id string) int {
	for i := range f.fields {
		if f.fields[i].id == id {
			return i
		}
	}
	return -1
}

func (f *settingsForm) onSlider() bool { return f.focus == len(f.fields) }

func (f *settingsForm) setFocus(idx int) {
	count := len(f.fields) + 1
	idx = ((idx % count) + count) % count
	for i := range f.fields {
		f.fields[i].input.Blur()
	}
	f.focus = idx
	if idx < len(f.fields) {
		f.fields[idx].input.Focus()
		events.UI.Focus(f.fields[idx].id)
	} else {
		events.UI.Focus(binding.OpacitySliderID)
	}
}

func (f *settingsForm) move(delta int) { f.setFocus(f.focus + delta) }

func (f *settingsForm) updateFocused(msg tea.Msg) tea.Cmd {
	if f.onSlider() {
		return nil
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

// formView exposes the form inputs through the binding layer's View and
// falls back to the launcher's own elements for labels, the repository list
// and the background.
type formView struct {
	form *settingsForm
	base binding.Elements
}

func (v formView) Get(id string) (binding.Handle, bool) {
	if v.form != nil {
		if idx := v.form.index(id); idx >= 0 {
			return inputHandle{input: &v.form.fields[idx].input}, true
		}
		if id == binding.OpacitySliderID {
			return sliderHandle{form: v.form}, true
		}
	}
	return v.base.Get(id)
}

type inputHandle struct {
	input *textinput.Model
}

func (h inputHandle) SetText(string)  {}
func (h inputHandle) SetTitle(string) {}
func (h inputHandle) Value() string   { return h.input.Value() }

func (h inputHandle) SetValue(s string) {
	h.input.SetValue(s)
	h.input.CursorEnd()
}

type sliderHandle struct {
	form *settingsForm
}

func (h sliderHandle) SetText(string)  {}
func (h sliderHandle) SetTitle(string) {}
func (h sliderHandle) Value() string   { return strconv.Itoa(h.form.opacity) }

func (h sliderHandle) SetValue(s string) {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		h.form.opacity = settings.ClampOpacity(n)
	}
}

func (m *Model) surface() binding.View {
	return formView{form: m.form, base: m.elements}
}

// openSettings starts a fresh draft and re-renders the form from the
// committed configuration, which also resets the opacity slider.
func (m *Model) openSettings() {
	m.form = newSettingsForm()
	m.formGen++
	m.editor.Begin()
	binding.Render(m.editor.Committed(), m.surface())
	m.mode = ModeSettings
	m.errMsg = ""
	events.Settings.Open()
}

func (m *Model) closeSettings() {
	m.form = nil
	if m.mode == ModeSettings || m.mode == ModeBrowse {
		m.mode = ModeMain
	}
}

func (m *Model) handleSettingsMode(msg tea.Msg) (bool, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.form == nil {
		return false, nil
	}
	switch {
	case key.Matches(keyMsg, keys.Save):
		return true, m.saveSettings()
	case key.Matches(keyMsg, keys.Cancel):
		m.discardSettings()
		return true, nil
	case key.Matches(keyMsg, keys.Browse):
		return true, m.openBrowser()
	case key.Matches(keyMsg, keys.NextField):
		m.form.move(1)
		return true, nil
	case key.Matches(keyMsg, keys.PrevField):
		m.form.move(-1)
		return true, nil
	case keyMsg.Type == tea.KeyEnter:
		if m.form.onSlider() {
			return true, m.saveSettings()
		}
		m.form.move(1)
		return true, nil
	}
	if m.form.onSlider() {
		step := 0
		switch keyMsg.String() {
		case "left", "h", "-":
			step = -1
		case "right", "l", "+", "=":
			step = 1
		case "shift+left", "pgdown":
			step = -10
		case "shift+right", "pgup":
			step = 10
		case "home":
			step = -settings.MaxOpacity
		case "end":
			step = settings.MaxOpacity
		}
		if step != 0 {
			m.previewOpacity(m.form.opacity + step)
		}
		return true, nil
	}
	return true, m.form.updateFocused(keyMsg)
}

// previewOpacity applies v to the draft and to the live background without
// touching the committed configuration.
func (m *Model) previewOpacity(v int) {
	v = m.editor.PreviewOpacity(v)
	binding.ApplyOpacity(v, m.surface())
	events.Settings.Preview(v)
}

func (m *Model) saveSettings() tea.Cmd {
	cfg := binding.CollectEdits(m.surface(), m.editor.Draft())
	m.editor.Stage(cfg)
	pending, _ := m.editor.Pending()
	ctx, store, gen := m.ctx, m.store, m.formGen
	m.pending++
	m.setInfo("Saving…")
	return m.bus.Execute(command.Request{
		ID:    "settings:save",
		Label: settings.Key,
		Run: func() tea.Msg {
			var err error
			if store != nil {
				err = store.Save(ctx, pending)
			}
			return settingsSavedMsg{gen: gen, cfg: pending, err: err}
		},
	})
}

func (m *Model) handleSettingsSavedMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(settingsSavedMsg)
	if !ok {
		return nil
	}
	if m.pending > 0 {
		m.pending--
	}
	if res.err != nil {
		events.Action.Error(res.err)
		m.setError(res.err)
		return nil
	}
	if m.form != nil && res.gen != m.formGen {
		// A form opened after this save is still being edited: only the
		// committed side moves.
		m.editor.SetCommitted(res.cfg)
		m.renderCommitted()
		binding.ApplyOpacity(m.editor.Draft().Opacity, m.surface())
	} else {
		m.editor.Accept(res.cfg)
		m.closeSettings()
		m.renderCommitted()
	}
	m.selection.ResetTools()
	m.ensureRepoSelection()
	if m.backend != nil {
		m.backend.SetRepos(WatchedRepos(m.editor.Committed()))
	}
	m.setInfo("Settings saved")
	return nil
}

// discardSettings drops the draft and restores the committed opacity.
func (m *Model) discardSettings() {
	m.editor.Discard()
	binding.ApplyOpacity(m.editor.Committed().Opacity, m.elements)
	m.closeSettings()
	m.errMsg = ""
	events.Settings.Discard()
}

func (m *Model) openBrowser() tea.Cmd {
	f := m.form
	if f == nil || f.onSlider() || !f.fields[f.focus].path {
		return nil
	}
	start := strings.TrimSpace(f.fields[f.focus].input.Value())
	if info, err := os.Stat(start); err != nil || !info.IsDir() {
		start, _ = os.UserHomeDir()
	}
	if start == "" {
		start = "."
	}
	if abs, err := filepath.Abs(start); err == nil {
		start = abs
	}
	p := filepicker.New()
	p.CurrentDirectory = start
	p.DirAllowed = true
	p.FileAllowed = false
	p.ShowPermissions = false
	p.ShowSize = false
	p.AutoHeight = false
	p.KeyMap.Back = key.NewBinding(key.WithKeys("h", "backspace", "left"))
	p.SetHeight(m.pickerHeight())
	m.picker = p
	m.browseField = f.focus
	m.mode = ModeBrowse
	return m.picker.Init()
}

func (m *Model) handleBrowseMode(msg tea.Msg) (bool, tea.Cmd) {
	if m.form == nil {
		m.mode = ModeMain
		return false, nil
	}
	field := &m.form.fields[m.browseField]
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case keyMsg.Type == tea.KeyEsc:
			events.Settings.Browse(field.id, "", true)
			m.mode = ModeSettings
			return true, nil
		case key.Matches(keyMsg, keys.Pick):
			dir := m.picker.CurrentDirectory
			field.input.SetValue(dir)
			field.input.CursorEnd()
			events.Settings.Browse(field.id, dir, false)
			m.mode = ModeSettings
			return true, nil
		}
	}
	switch msg.(type) {
	case settingsSavedMsg, backendEventMsg, backendDoneMsg, tea.WindowSizeMsg, tea.MouseMsg:
		return false, nil
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return true, cmd
}

func (m *Model) pickerHeight() int {
	h := m.height - 6
	if h < 5 {
		h = 5
	}
	return h
}
