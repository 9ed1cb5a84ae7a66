package ui

import (
	"errors"
	"strconv"

	"github.com/atomicstack/cli-launcher/internal/dispatch"
	"github.com/atomicstack/cli-launcher/internal/layout"
	"github.com/atomicstack/cli-launcher/internal/settings"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

// regionFunc reports where a marked zone was last rendered.
type regionFunc func(id string) (layout.Rect, bool)

var noRect = layout.Rect{X1: -1, Y1: -1}

func zoneRegions(z *zone.Manager) regionFunc {
	return func(id string) (layout.Rect, bool) {
		info := z.Get(id)
		if info.IsZero() {
			return layout.Rect{}, false
		}
		return layout.Rect{X0: info.StartX, Y0: info.StartY, X1: info.EndX, Y1: info.EndY}, true
	}
}

func zoneTarget(tool settings.Tool) string { return "target:" + string(tool) }

func zoneLaunch(tool settings.Tool) string { return "launch:" + string(tool) }

func zoneRadio(tool settings.Tool, slot int) string {
	return "radio:" + string(tool) + ":" + strconv.Itoa(slot)
}

func zoneTab(tab layout.Tab) string { return "tab:" + string(tab) }

func zoneRepo(slot int) string { return "repo:" + strconv.Itoa(slot) }

func zoneCommand(id string) string { return "cmd:" + id }

const zoneSettings = "settings"

func (m *Model) mark(id, s string) string {
	if m.zones == nil {
		return s
	}
	return m.zones.Mark(id, s)
}

func (m *Model) inZone(id string, p layout.Point) bool {
	r, ok := m.regions(id)
	return ok && r.Contains(p)
}

// syncTargets hands the rendered launch-target regions to the layout, in
// tool order. A target that is not on screen gets an empty region.
func (m *Model) syncTargets() {
	rects := make([]layout.Rect, len(settings.Tools))
	for i, tool := range settings.Tools {
		if r, ok := m.regions(zoneTarget(tool)); ok {
			rects[i] = r
		} else {
			rects[i] = noRect
		}
	}
	if sameRects(rects, m.targets) {
		return
	}
	m.targets = rects
	m.layout.SetTargets(layout.TabLauncher, rects)
}

func sameRects(a, b []layout.Rect) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (m *Model) updateHover() {
	m.hoverIndex = -1
	if !m.haveMouse {
		return
	}
	if t, ok := m.layout.TargetAt(m.mouse); ok {
		m.hoverIndex = t.Index
	}
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok || m.mode != ModeMain {
		return nil
	}
	m.mouse = layout.Point{X: ev.X, Y: ev.Y}
	m.haveMouse = true
	m.syncTargets()
	m.updateHover()
	if tea.MouseEvent(ev).IsWheel() {
		if m.layout.Active() == layout.TabGit {
			switch ev.Button {
			case tea.MouseButtonWheelUp:
				m.scrollOutput(-3)
			case tea.MouseButtonWheelDown:
				m.scrollOutput(3)
			}
		}
		return nil
	}
	if ev.Action != tea.MouseActionPress || ev.Button != tea.MouseButtonLeft {
		return nil
	}
	return m.handleClick(m.mouse)
}

func (m *Model) handleClick(p layout.Point) tea.Cmd {
	for _, tab := range layout.Tabs {
		if m.inZone(zoneTab(tab), p) {
			return m.activateTab(tab)
		}
	}
	if m.inZone(zoneSettings, p) {
		m.openSettings()
		return nil
	}
	switch m.layout.Active() {
	case layout.TabLauncher:
		for i, tool := range settings.Tools {
			for slot := 0; slot < settings.SlotsPerTool; slot++ {
				if m.inZone(zoneRadio(tool, slot), p) {
					m.focusTool = i
					m.selectSlot(tool, slot)
					return nil
				}
			}
			if m.inZone(zoneLaunch(tool), p) {
				m.focusTool = i
				return m.launchTool(tool)
			}
		}
	case layout.TabGit:
		for _, opt := range m.gitOptions() {
			if m.inZone(zoneRepo(opt.Index), p) {
				m.selectRepo(opt.Index)
				return nil
			}
		}
		for i, cmd := range m.palette.Items {
			if m.inZone(zoneCommand(cmd.ID), p) {
				m.palette.Cursor = i
				return m.runPaletteCommand()
			}
		}
	}
	return nil
}

// handlePaste treats a bracketed paste on the launcher tab as a file drop at
// the last known pointer position. Without pointer reports the drop lands
// on the keyboard-focused target.
func (m *Model) handlePaste(text string) tea.Cmd {
	if m.layout.Active() != layout.TabLauncher {
		return nil
	}
	m.syncTargets()
	drop := dispatch.Drop{Paths: dispatch.ParseDropPayload(text), Position: m.mouse}
	if !m.haveMouse {
		if p, ok := m.focusedTargetCenter(); ok {
			drop.Position = p
		}
	}
	launch, err := m.resolver.ResolveDragDrop(drop.Position, drop.Paths)
	m.hoverIndex = -1
	if err != nil {
		if !errors.Is(err, dispatch.ErrNoTarget) {
			m.setError(err)
		}
		return nil
	}
	return m.forwardLaunch(launch)
}

func (m *Model) focusedTargetCenter() (layout.Point, bool) {
	for _, t := range m.layout.Targets(layout.TabLauncher) {
		if t.Index == m.focusTool && t.Rect.Area() > 0 {
			return layout.Point{X: (t.Rect.X0 + t.Rect.X1) / 2, Y: (t.Rect.Y0 + t.Rect.Y1) / 2}, true
		}
	}
	return layout.Point{}, false
}
