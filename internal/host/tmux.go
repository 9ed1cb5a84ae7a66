package host

import (
	"context"
	"path/filepath"

	"github.com/atomicstack/cli-launcher/internal/tmux"
)

// Tmux opens tools in new windows of a tmux session and resizes the pane
// the launcher runs in.
type Tmux struct {
	Socket   string
	Session  string
	Commands Commands
}

// NewTmux targets socket (resolved the way tmux does when empty) and the
// session the launcher runs in.
func NewTmux(socket string, commands Commands) (*Tmux, error) {
	resolved, err := tmux.ResolveSocketPath(socket)
	if err != nil {
		return nil, err
	}
	session, _ := tmux.CurrentSession(resolved)
	if commands == nil {
		commands = DefaultCommands()
	}
	return &Tmux{Socket: resolved, Session: session, Commands: commands}, nil
}

func (t *Tmux) Launch(ctx context.Context, command, path string) error {
	if err := checkDir(path); err != nil {
		return err
	}
	argv, err := t.Commands.resolve(command)
	if err != nil {
		return err
	}
	err = tmux.NewWindow(ctx, t.Socket, tmux.WindowOptions{
		Session: t.Session,
		Name:    command + ":" + filepath.Base(path),
		Dir:     path,
		Command: argv,
	})
	if err != nil {
		return &CommandError{Op: "launch", Args: argv, Err: err}
	}
	return nil
}

func (t *Tmux) RunGit(ctx context.Context, cwd string, args []string) (string, error) {
	return RunGit(ctx, cwd, args)
}

func (t *Tmux) ResizeWindow(ctx context.Context, width, height int) error {
	return tmux.ResizePane(ctx, t.Socket, width, height)
}
