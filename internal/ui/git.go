package ui

import (
	"errors"
	"strings"

	"github.com/anmitsu/go-shlex"
	"github.com/atomicstack/cli-launcher/internal/binding"
	"github.com/atomicstack/cli-launcher/internal/dispatch"
	"github.com/atomicstack/cli-launcher/internal/logging/events"
	"github.com/atomicstack/cli-launcher/internal/ui/command"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const maxOutputLines = 500

type gitResultMsg struct {
	git    dispatch.Git
	output string
	err    error
}

// gitOptions is the repository list as last rendered by the binding layer.
func (m *Model) gitOptions() []binding.Option {
	el, ok := m.elements[binding.GitSelectID]
	if !ok || el == nil {
		return nil
	}
	return el.Options
}

func (m *Model) selectRepo(slot int) {
	for _, opt := range m.gitOptions() {
		if opt.Index == slot {
			if m.selection.SetRepo(slot) {
				events.Git.Select(slot, opt.Label)
			}
			m.errMsg = ""
			return
		}
	}
}

// ensureRepoSelection keeps the selection pointing at a listed repository,
// falling back to the first one like a native select box.
func (m *Model) ensureRepoSelection() {
	options := m.gitOptions()
	if idx, ok := m.selection.Repo(); ok {
		for _, opt := range options {
			if opt.Index == idx {
				return
			}
		}
		m.selection.ClearRepo()
	}
	if len(options) > 0 {
		m.selectRepo(options[0].Index)
	}
}

func (m *Model) cycleRepo(delta int) {
	options := m.gitOptions()
	if len(options) == 0 {
		return
	}
	pos := 0
	if idx, ok := m.selection.Repo(); ok {
		for i, opt := range options {
			if opt.Index == idx {
				pos = i
				break
			}
		}
		pos = (pos + delta + len(options)) % len(options)
	}
	m.selectRepo(options[pos].Index)
}

func (m *Model) handleGitKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Up):
		m.palette.MoveCursor(-1)
	case key.Matches(msg, keys.Down):
		m.palette.MoveCursor(1)
	case key.Matches(msg, keys.Left):
		m.cycleRepo(-1)
	case key.Matches(msg, keys.Right):
		m.cycleRepo(1)
	case key.Matches(msg, keys.Launch):
		return m.runPaletteCommand()
	case key.Matches(msg, keys.Filter):
		m.mode = ModeGitFilter
		m.filter.Focus()
	case key.Matches(msg, keys.Custom):
		m.mode = ModeGitPrompt
		m.gitPrompt.SetValue("")
		m.gitPrompt.Focus()
	case key.Matches(msg, keys.ClearOutput):
		m.output = nil
		m.outputTitle = ""
		m.outputOffset = 0
	case key.Matches(msg, keys.PageUp):
		m.scrollOutput(-m.outputHeight())
	case key.Matches(msg, keys.PageDown):
		m.scrollOutput(m.outputHeight())
	default:
		if idx, ok := digitKey(msg); ok {
			m.selectRepo(idx)
		}
	}
	return nil
}

func (m *Model) handleGitFilterMode(msg tea.Msg) (bool, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}
	switch keyMsg.Type {
	case tea.KeyEsc:
		m.filter.SetValue("")
		m.palette.SetFilter("")
		m.filter.Blur()
		m.mode = ModeMain
		return true, nil
	case tea.KeyEnter:
		m.filter.Blur()
		m.mode = ModeMain
		return true, m.runPaletteCommand()
	case tea.KeyUp:
		m.palette.MoveCursor(-1)
		return true, nil
	case tea.KeyDown:
		m.palette.MoveCursor(1)
		return true, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(keyMsg)
	m.palette.SetFilter(m.filter.Value())
	return true, cmd
}

func (m *Model) handleGitPromptMode(msg tea.Msg) (bool, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}
	switch keyMsg.Type {
	case tea.KeyEsc:
		m.gitPrompt.Blur()
		m.mode = ModeMain
		return true, nil
	case tea.KeyEnter:
		line := m.gitPrompt.Value()
		m.gitPrompt.Blur()
		m.mode = ModeMain
		args, err := shlex.Split(line, true)
		if err != nil {
			m.setError(err)
			return true, nil
		}
		if len(args) > 0 && args[0] == "git" {
			args = args[1:]
		}
		if len(args) == 0 {
			m.setError(dispatch.ErrEmptyCommand)
			return true, nil
		}
		return true, m.runGit(args[0], args[1:])
	}
	var cmd tea.Cmd
	m.gitPrompt, cmd = m.gitPrompt.Update(keyMsg)
	return true, cmd
}

func (m *Model) runPaletteCommand() tea.Cmd {
	cmd, ok := m.palette.Current()
	if !ok {
		return nil
	}
	argv := cmd.Argv()
	if len(argv) == 0 {
		return nil
	}
	return m.runGit(argv[0], argv[1:])
}

// runGit resolves against the selected repository. A missing selection is
// reported inline in the output pane rather than on the status line.
func (m *Model) runGit(subcommand string, args []string) tea.Cmd {
	git, err := m.resolver.ResolveGitCommand(subcommand, args)
	if err != nil {
		if errors.Is(err, dispatch.ErrNoRepoSelected) {
			m.outputTitle = "git " + strings.Join(append([]string{subcommand}, args...), " ")
			m.setOutput(dispatch.Message(err))
			return nil
		}
		m.setError(err)
		return nil
	}
	if m.host == nil {
		m.setError(errors.New("no host configured"))
		return nil
	}
	ctx, h := m.ctx, m.host
	m.pending++
	m.outputTitle = "git " + strings.Join(git.Args, " ")
	m.setOutput("running…")
	return m.bus.Execute(command.Request{
		ID:    "git:" + subcommand,
		Label: git.Cwd,
		Run: func() tea.Msg {
			out, err := dispatch.ForwardGit(ctx, h, git)
			return gitResultMsg{git: git, output: out, err: err}
		},
	})
}

func (m *Model) handleGitResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(gitResultMsg)
	if !ok {
		return nil
	}
	if m.pending > 0 {
		m.pending--
	}
	m.outputTitle = "git " + strings.Join(res.git.Args, " ")
	if res.err != nil {
		events.Action.Error(res.err)
		text := res.err.Error()
		m.setOutput(text)
		m.setError(res.err)
		return nil
	}
	out := strings.TrimRight(res.output, "\n")
	if strings.TrimSpace(out) == "" {
		out = "(no output)"
	}
	m.setOutput(out)
	m.errMsg = ""
	return nil
}

func (m *Model) setOutput(text string) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if len(lines) > maxOutputLines {
		lines = lines[len(lines)-maxOutputLines:]
	}
	m.output = lines
	m.outputOffset = 0
}

func (m *Model) scrollOutput(delta int) {
	m.outputOffset += delta
	maxOffset := len(m.output) - m.outputHeight()
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.outputOffset > maxOffset {
		m.outputOffset = maxOffset
	}
	if m.outputOffset < 0 {
		m.outputOffset = 0
	}
}
