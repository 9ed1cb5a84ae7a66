package host

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Process opens tools in a new terminal window of the desktop session.
type Process struct {
	// Terminal is the argv prefix that opens a terminal running the
	// command appended to it. Ignored on Windows.
	Terminal []string
	Commands Commands
	// Out receives the window resize escape sequence.
	Out io.Writer

	start func(*exec.Cmd) error
}

// NewProcess returns a Process with the platform's default terminal when
// terminal is empty.
func NewProcess(terminal []string, commands Commands) *Process {
	if len(terminal) == 0 {
		terminal = defaultTerminal()
	}
	if commands == nil {
		commands = DefaultCommands()
	}
	return &Process{Terminal: terminal, Commands: commands, Out: os.Stdout, start: startDetached}
}

func (p *Process) Launch(ctx context.Context, command, path string) error {
	if err := checkDir(path); err != nil {
		return err
	}
	argv, err := p.Commands.resolve(command)
	if err != nil {
		return err
	}
	cmd := p.terminalCommand(ctx, path, argv)
	start := p.start
	if start == nil {
		start = startDetached
	}
	if err := start(cmd); err != nil {
		return &CommandError{Op: "launch", Args: cmd.Args, Err: err}
	}
	return nil
}

func (p *Process) RunGit(ctx context.Context, cwd string, args []string) (string, error) {
	return RunGit(ctx, cwd, args)
}

// ResizeWindow asks the terminal emulator to resize itself (xterm window
// manipulation, CSI 8 ; rows ; cols t). Terminals that ignore it are fine.
func (p *Process) ResizeWindow(_ context.Context, width, height int) error {
	if p.Out == nil {
		return nil
	}
	_, err := fmt.Fprintf(p.Out, "\x1b[8;%d;%dt", height, width)
	return err
}

// startDetached starts cmd and reaps it in the background so the launcher
// never waits on the spawned terminal.
func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
