package ui

import (
	"github.com/atomicstack/cli-launcher/internal/backend"
	"github.com/atomicstack/cli-launcher/internal/settings"
	tea "github.com/charmbracelet/bubbletea"
)

// WatchedRepos lists the configured repositories the status watcher polls.
func WatchedRepos(cfg settings.Configuration) []backend.Repo {
	var repos []backend.Repo
	for i, slot := range cfg.GitRepos {
		if slot.Unset() {
			continue
		}
		repos = append(repos, backend.Repo{Index: i, Path: slot.Path})
	}
	return repos
}

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

func (m *Model) applyBackendEvent(evt backend.Event) {
	if evt.Err != nil {
		m.backendErr = evt.Err.Error()
		return
	}
	if res := m.dispatcher.Handle(evt); res.ReposUpdated {
		m.backendErr = ""
	}
}
