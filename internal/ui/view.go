package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/cli-launcher/internal/binding"
	"github.com/atomicstack/cli-launcher/internal/format/table"
	"github.com/atomicstack/cli-launcher/internal/layout"
	"github.com/atomicstack/cli-launcher/internal/settings"
	"github.com/atomicstack/cli-launcher/internal/theme"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	radioOn      = "(•)"
	radioOff     = "( )"
	focusMarker  = "›"
	dropMarker   = "▌"
	outputMinRow = 3
)

// View implements tea.Model.
func (m *Model) View() string {
	var body []string
	switch m.mode {
	case ModeSettings:
		body = m.viewSettings()
	case ModeBrowse:
		body = m.viewBrowse()
	default:
		body = append(body, m.viewTabs(), "")
		if m.layout.Active() == layout.TabGit {
			body = append(body, m.viewGit()...)
		} else {
			body = append(body, m.viewLauncher()...)
		}
	}
	body = append(body, m.viewStatus()...)
	body = limitHeight(body, m.height, m.width)
	body = applyWidth(body, m.width)
	out := m.frame(strings.Join(body, "\n"))
	if m.zones != nil {
		return m.zones.Scan(out)
	}
	return out
}

// tint is the background currently shown: the live preview while the
// settings form is open, the committed opacity otherwise.
func (m *Model) tint() settings.Tint {
	if el, ok := m.elements[binding.BackgroundID]; ok && el != nil && el.HasTint {
		return el.Tint
	}
	return settings.TintFor(m.editor.Committed().Opacity)
}

func (m *Model) frame(content string) string {
	if m.width <= 0 || m.height <= 0 {
		return content
	}
	bg := theme.Background(m.tint()).GetBackground()
	return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, content, lipgloss.WithWhitespaceBackground(bg))
}

func (m *Model) viewTabs() string {
	parts := make([]string, 0, len(layout.Tabs)+1)
	for _, tab := range layout.Tabs {
		label := tabTitle(tab)
		style := styles.Tab
		if m.layout.Active() == tab {
			style = styles.ActiveTab
		}
		parts = append(parts, m.mark(zoneTab(tab), style.Render(label)))
	}
	parts = append(parts, m.mark(zoneSettings, styles.Muted.Render("⚙ settings")))
	return strings.Join(parts, " ")
}

func tabTitle(tab layout.Tab) string {
	switch tab {
	case layout.TabGit:
		return "Git"
	default:
		return "Launcher"
	}
}

func (m *Model) viewLauncher() []string {
	lines := make([]string, 0, len(settings.Tools)*3)
	for i, tool := range settings.Tools {
		lines = append(lines, m.viewToolGroup(i, tool), "")
	}
	return lines
}

func (m *Model) viewToolGroup(i int, tool settings.Tool) string {
	checked := m.selection.ToolIndex(tool)
	prefix := " "
	switch {
	case m.hoverIndex == i:
		prefix = styles.DragOver.Render(dropMarker)
	case m.focusTool == i:
		prefix = styles.DragOver.Render(focusMarker)
	}
	title := prefix + styles.Title.Render(tool.Title())
	if el, ok := m.elements[binding.LabelID(tool, checked)]; ok && el != nil && el.Title != "" {
		title += "  " + styles.Muted.Render(el.Title)
	}
	radios := make([]string, 0, settings.SlotsPerTool)
	for slot := 0; slot < settings.SlotsPerTool; slot++ {
		label := binding.SlotLabel("", slot)
		if el, ok := m.elements[binding.LabelID(tool, slot)]; ok && el != nil && el.Text != "" {
			label = el.Text
		}
		text := styles.Radio.Render(radioOff + " " + label)
		if slot == checked {
			text = styles.ActiveRadio.Render(radioOn + " " + label)
		}
		radios = append(radios, m.mark(zoneRadio(tool, slot), text))
	}
	button := styles.Button.Render("launch")
	if m.hoverIndex == i {
		button = styles.HoverButton.Render("launch")
	}
	row := "   " + strings.Join(radios, "   ") + "   " + m.mark(zoneLaunch(tool), button)
	return m.mark(zoneTarget(tool), title+"\n"+row)
}

func (m *Model) viewGit() []string {
	lines := []string{}
	options := m.gitOptions()
	selected, hasSelection := m.selection.Repo()
	if len(options) == 0 {
		lines = append(lines, styles.Muted.Render("No repository configured. Press s to add one."))
	} else {
		rows := make([][]string, 0, len(options))
		for _, opt := range options {
			marker := radioOff
			if hasSelection && opt.Index == selected {
				marker = radioOn
			}
			branch, status := "", ""
			if st, ok := m.repos.Lookup(opt.Index); ok {
				branch = st.Branch
				switch {
				case st.Err != "":
					status = styles.Error.Render("error")
				case st.Dirty:
					status = styles.Dirty.Render("dirty")
				default:
					status = styles.Clean.Render("clean")
				}
			}
			rows = append(rows, []string{fmt.Sprintf("%d %s", opt.Index+1, marker), opt.Label, branch, status, styles.Muted.Render(opt.Path)})
		}
		for i, line := range table.Format(rows, nil) {
			lines = append(lines, m.mark(zoneRepo(options[i].Index), line))
		}
	}
	if !hasSelection {
		lines = append(lines, styles.Muted.Render("No repository selected."))
	}
	lines = append(lines, "")

	switch m.mode {
	case ModeGitFilter:
		lines = append(lines, styles.FilterPrompt.Render(m.filter.View()))
	case ModeGitPrompt:
		lines = append(lines, styles.FilterPrompt.Render(m.gitPrompt.View()))
	default:
		if m.palette.Filter != "" {
			lines = append(lines, styles.Muted.Render("/ "+m.palette.Filter))
		}
	}
	items, offset := m.palette.Visible(m.paletteHeight())
	if len(items) == 0 {
		lines = append(lines, styles.Info.Render(fmt.Sprintf("No matches for %q", m.palette.Filter)))
	}
	for i, cmd := range items {
		text := "  " + cmd.Label
		style := styles.Item
		if offset+i == m.palette.Cursor {
			text = focusMarker + " " + cmd.Label
			style = styles.SelectedItem
		}
		lines = append(lines, m.mark(zoneCommand(cmd.ID), style.Render(text)))
	}

	if m.outputTitle != "" {
		lines = append(lines, "", styles.Label.Render("── "+m.outputTitle+" ──"))
		start := m.outputOffset
		if start > len(m.output) {
			start = len(m.output)
		}
		end := start + m.outputHeight()
		if end > len(m.output) {
			end = len(m.output)
		}
		for _, line := range m.output[start:end] {
			lines = append(lines, styles.Output.Render(line))
		}
	}
	return lines
}

func (m *Model) paletteHeight() int {
	if m.height <= 0 {
		return 0
	}
	h := m.height / 3
	if h < outputMinRow {
		h = outputMinRow
	}
	return h
}

// outputHeight is the number of output rows left under the palette.
func (m *Model) outputHeight() int {
	if m.height <= 0 {
		return maxOutputLines
	}
	used := 4 + settings.GitSlots + m.paletteHeight() + 4
	if m.showFooter {
		used++
	}
	h := m.height - used
	if h < outputMinRow {
		h = outputMinRow
	}
	return h
}

func (m *Model) viewSettings() []string {
	lines := []string{styles.Title.Render("Settings"), ""}
	if m.form == nil {
		return lines
	}
	rows := make([][]string, 0, len(m.form.fields))
	for i, field := range m.form.fields {
		marker := " "
		if i == m.form.focus {
			marker = focusMarker
		}
		input := styles.Input.Render(field.input.View())
		if i == m.form.focus {
			input = styles.FocusedInput.Render(field.input.View())
		}
		rows = append(rows, []string{marker, styles.Label.Render(field.label), input})
	}
	lines = append(lines, table.Format(rows, nil)...)
	lines = append(lines, "", m.viewOpacity())
	return lines
}

func (m *Model) viewOpacity() string {
	const width = 20
	v := settings.ClampOpacity(m.form.opacity)
	filled := v * width / settings.MaxOpacity
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	readout := settings.TintFor(v).Label()
	if el, ok := m.elements[binding.OpacityValueID]; ok && el != nil && el.Text != "" {
		readout = el.Text
	}
	marker := " "
	if m.form.onSlider() {
		marker = focusMarker
	}
	return marker + " " + styles.Label.Render("Opacity") + "  ◀ " + bar + " ▶ " + readout
}

func (m *Model) viewBrowse() []string {
	label := ""
	if m.form != nil && m.browseField < len(m.form.fields) {
		label = m.form.fields[m.browseField].label
	}
	lines := []string{
		styles.Title.Render("Choose directory for " + label),
		styles.Muted.Render(m.picker.CurrentDirectory),
		"",
	}
	lines = append(lines, strings.Split(strings.TrimRight(m.picker.View(), "\n"), "\n")...)
	return lines
}

func (m *Model) viewStatus() []string {
	lines := []string{""}
	switch {
	case m.errMsg != "":
		lines = append(lines, styles.Error.Render(m.errMsg))
	case m.infoMsg != "":
		lines = append(lines, styles.Info.Render(m.infoMsg))
	case m.backendErr != "" && m.verbose:
		lines = append(lines, styles.Muted.Render("repo status: "+m.backendErr))
	default:
		lines = append(lines, "")
	}
	if m.showFooter {
		lines = append(lines, styles.Footer.Render(m.footerText()))
	}
	return lines
}

func (m *Model) footerText() string {
	switch m.mode {
	case ModeSettings:
		return helpLine(keys.Save, keys.Cancel, keys.Browse) + "  tab next field  ←/→ opacity"
	case ModeBrowse:
		return "enter open  h back  " + helpLine(keys.Pick) + "  esc cancel"
	case ModeGitFilter, ModeGitPrompt:
		return "enter run  esc cancel"
	}
	if m.layout.Active() == layout.TabGit {
		return helpLine(keys.Launch, keys.Filter, keys.Custom, keys.NextTab, keys.Settings, keys.Quit) + "  ←/→ repo"
	}
	return helpLine(keys.Up, keys.Toggle, keys.Launch, keys.NextTab, keys.Settings, keys.Quit) + "  1-3 launch  paste a path to drop"
}

func limitHeight(lines []string, height, width int) []string {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []string{truncateText("…", width)}
	}
	trimmed := make([]string, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	return append(trimmed, truncateText("…", width))
}

// applyWidth truncates every line to width cells. Lines holding a marked
// group keep one entry per rendered row.
func applyWidth(lines []string, width int) []string {
	if width <= 0 {
		return lines
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		rows := strings.Split(line, "\n")
		for i, row := range rows {
			rows[i] = truncateText(row, width)
		}
		out = append(out, strings.Join(rows, "\n"))
	}
	return out
}

func truncateText(text string, width int) string {
	if width <= 0 || lipgloss.Width(text) <= width {
		return text
	}
	return truncate.StringWithTail(text, uint(width), "…")
}
