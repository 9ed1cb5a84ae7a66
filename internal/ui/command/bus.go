package command

import (
	"fmt"

	"github.com/atomicstack/cli-launcher/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Request describes one host invocation queued from the UI.
type Request struct {
	ID    string
	Label string
	Run   func() tea.Msg
}

// Bus turns requests into Bubble Tea commands while emitting trace logs.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps req into a tea.Cmd. A request without Run is skipped.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	if req.Run == nil {
		events.Command.Skip(req.ID, req.Label)
		return nil
	}
	return func() tea.Msg {
		msg := req.Run()
		if msg == nil {
			events.Command.NoOp(req.ID, req.Label)
			return nil
		}
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}
