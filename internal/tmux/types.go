package tmux

import (
	"context"
	"os/exec"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

var (
	newTmux = func(socketPath string) (tmuxClient, error) {
		if socketPath != "" {
			return gotmux.NewTmux(socketPath)
		}
		return gotmux.DefaultTmux()
	}

	runExecCommand = func(ctx context.Context, name string, args ...string) commander {
		return realCommander{cmd: exec.CommandContext(ctx, name, args...)}
	}
)

type tmuxClient interface {
	DisplayMessage(target, format string) (string, error)
	ListClients() ([]*gotmux.Client, error)
	Close() error
}

type commander interface {
	Run() error
	CombinedOutput() ([]byte, error)
}

type realCommander struct {
	cmd *exec.Cmd
}

func (r realCommander) Run() error {
	return r.cmd.Run()
}

func (r realCommander) CombinedOutput() ([]byte, error) {
	return r.cmd.CombinedOutput()
}
