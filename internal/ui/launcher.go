package ui

import (
	"errors"
	"strconv"

	"github.com/atomicstack/cli-launcher/internal/dispatch"
	"github.com/atomicstack/cli-launcher/internal/layout"
	"github.com/atomicstack/cli-launcher/internal/logging/events"
	"github.com/atomicstack/cli-launcher/internal/settings"
	"github.com/atomicstack/cli-launcher/internal/ui/command"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type launchResultMsg struct {
	launch dispatch.Launch
	err    error
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if keyMsg.Paste {
		return m.handlePaste(string(keyMsg.Runes))
	}
	switch {
	case key.Matches(keyMsg, keys.Quit):
		return tea.Quit
	case key.Matches(keyMsg, keys.NextTab), key.Matches(keyMsg, keys.PrevTab):
		return m.toggleTab()
	case key.Matches(keyMsg, keys.Settings):
		m.openSettings()
		return nil
	}
	if m.layout.Active() == layout.TabGit {
		return m.handleGitKey(keyMsg)
	}
	return m.handleLauncherKey(keyMsg)
}

func (m *Model) handleLauncherKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Up):
		if m.focusTool > 0 {
			m.focusTool--
		}
	case key.Matches(msg, keys.Down):
		if m.focusTool < len(settings.Tools)-1 {
			m.focusTool++
		}
	case key.Matches(msg, keys.Left):
		m.selectSlot(settings.Tools[m.focusTool], 0)
	case key.Matches(msg, keys.Right):
		m.selectSlot(settings.Tools[m.focusTool], 1)
	case key.Matches(msg, keys.Toggle):
		tool := settings.Tools[m.focusTool]
		m.selectSlot(tool, 1-m.selection.ToolIndex(tool))
	case key.Matches(msg, keys.Launch):
		return m.launchTool(settings.Tools[m.focusTool])
	default:
		if idx, ok := digitKey(msg); ok && idx < len(settings.Tools) {
			m.focusTool = idx
			return m.launchTool(settings.Tools[idx])
		}
	}
	return nil
}

func (m *Model) selectSlot(tool settings.Tool, slot int) {
	if m.selection.SetToolIndex(tool, slot) {
		events.UI.SelectSlot(string(tool), slot)
	}
}

// launchTool resolves synchronously so a missing path is reported at once;
// only the host call runs off the event loop.
func (m *Model) launchTool(tool settings.Tool) tea.Cmd {
	launch, err := m.resolver.ResolveLaunch(tool)
	if err != nil {
		m.setError(err)
		return nil
	}
	return m.forwardLaunch(launch)
}

func (m *Model) forwardLaunch(launch dispatch.Launch) tea.Cmd {
	if m.host == nil {
		m.setError(errors.New("no host configured"))
		return nil
	}
	ctx, h := m.ctx, m.host
	m.pending++
	m.setInfo("Launching " + launch.Command + " in " + launch.Path + "…")
	return m.bus.Execute(command.Request{
		ID:    "launch:" + launch.Command,
		Label: launch.Path,
		Run: func() tea.Msg {
			return launchResultMsg{launch: launch, err: dispatch.Forward(ctx, h, launch)}
		},
	})
}

func (m *Model) handleLaunchResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(launchResultMsg)
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
	events.Action.Success(res.launch.Command)
	m.setInfo("Launched " + res.launch.Command + " in " + res.launch.Path)
	return nil
}

// digitKey maps "1".."9" to a zero-based index.
func digitKey(msg tea.KeyMsg) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	n, err := strconv.Atoi(string(msg.Runes))
	if err != nil || n < 1 {
		return 0, false
	}
	return n - 1, true
}
