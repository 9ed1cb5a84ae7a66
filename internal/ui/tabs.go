package ui

import (
	"github.com/atomicstack/cli-launcher/internal/layout"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) toggleTab() tea.Cmd {
	next := layout.TabGit
	if m.layout.Active() == layout.TabGit {
		next = layout.TabLauncher
	}
	return m.activateTab(next)
}

// activateTab switches the visible section. The coordinator requests the
// tab's window size in the background; the terminal answers with a
// WindowSizeMsg once it has resized.
func (m *Model) activateTab(tab layout.Tab) tea.Cmd {
	if _, ok := m.layout.Activate(m.ctx, tab); !ok {
		return nil
	}
	m.hoverIndex = -1
	m.errMsg = ""
	if tab == layout.TabGit {
		m.ensureRepoSelection()
	}
	return nil
}
